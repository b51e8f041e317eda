package quests

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/codeleveling/internal/router"
	"github.com/abhisek/codeleveling/internal/screen/screentest"
)

func TestLockedQuestsDisabled(t *testing.T) {
	s := New(screentest.NewSession(t, "ada"))
	s.Update(s.Init()())

	if len(s.menu.Items) != 3 {
		t.Fatalf("expected 3 quests, got %d", len(s.menu.Items))
	}
	if s.menu.Items[0].Disabled {
		t.Error("first quest should be playable")
	}
	for i := 1; i < 3; i++ {
		if !s.menu.Items[i].Disabled {
			t.Errorf("quest %d should be locked", i+1)
		}
	}

	// Locked items cannot be selected.
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.menu.Selected != 0 {
		t.Errorf("expected selection to stay on the only unlocked quest, got %d", s.menu.Selected)
	}
}

func TestEnterOpensQuestSession(t *testing.T) {
	s := New(screentest.NewSession(t, "ada"))
	s.Update(s.Init()())

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected push command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if push.Screen.Title() != "Arrays I: Basics" {
		t.Errorf("unexpected quest session %q", push.Screen.Title())
	}
}
