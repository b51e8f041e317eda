package switchuser

import (
	"testing"

	"github.com/abhisek/codeleveling/internal/notify"
	"github.com/abhisek/codeleveling/internal/screen"
	"github.com/abhisek/codeleveling/internal/screen/screentest"
)

func TestSwitchToNewUser(t *testing.T) {
	s := New(screentest.NewSession(t, "ada"))

	msg := s.submit("grace")()
	changed, ok := msg.(screen.UserChangedMsg)
	if !ok {
		t.Fatalf("expected UserChangedMsg, got %T", msg)
	}
	if changed.User.Username != "grace" {
		t.Errorf("expected grace, got %q", changed.User.Username)
	}
	if changed.Event.Kind != notify.UserSwitched {
		t.Errorf("expected UserSwitched, got %s", changed.Event.Kind)
	}
}

func TestSwitchRejectsBlankName(t *testing.T) {
	s := New(screentest.NewSession(t, "ada"))

	msg := s.submit("   ")()
	failed, ok := msg.(switchFailedMsg)
	if !ok {
		t.Fatalf("expected switchFailedMsg, got %T", msg)
	}

	_, cmd := s.Update(failed)
	if s.err == nil {
		t.Error("expected error to be shown")
	}
	if cmd == nil {
		t.Fatal("expected status command")
	}
	status := cmd().(screen.StatusMsg)
	if !notify.Has(status.Events, notify.UserSwitchFailed) {
		t.Errorf("expected UserSwitchFailed, got %+v", status.Events)
	}
}

func TestKnownUsersListed(t *testing.T) {
	sess := screentest.NewSession(t, "ada")
	s := New(sess)
	s.submit("grace")()

	s.Update(s.loadUsers()())
	if len(s.users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(s.users))
	}
	if s.users[0].Username != "ada" || s.users[1].Username != "grace" {
		t.Errorf("expected ada then grace, got %q and %q", s.users[0].Username, s.users[1].Username)
	}
}
