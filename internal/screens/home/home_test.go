package home

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/codeleveling/internal/router"
	"github.com/abhisek/codeleveling/internal/screen"
	"github.com/abhisek/codeleveling/internal/screen/screentest"
)

func TestDashboardLoads(t *testing.T) {
	sess := screentest.NewSession(t, "ada")
	h := New(sess)

	_, cmd := h.Update(h.Init()())
	if h.err != nil {
		t.Fatalf("load dashboard: %v", h.err)
	}
	if h.data.questsTotal != 3 || h.data.questsDone != 0 {
		t.Errorf("expected 0/3 quests, got %d/%d", h.data.questsDone, h.data.questsTotal)
	}
	if h.data.dailyTotal != 3 || h.data.dailyDone != 0 {
		t.Errorf("expected 0/3 daily tasks, got %d/%d", h.data.dailyDone, h.data.dailyTotal)
	}
	if cmd == nil {
		t.Fatal("expected status command with stats")
	}
	status, ok := cmd().(screen.StatusMsg)
	if !ok || status.Stats == nil || status.Stats.Level != 1 {
		t.Errorf("expected level 1 stats, got %+v", status)
	}
}

func TestResumeReflectsProgress(t *testing.T) {
	sess := screentest.NewSession(t, "ada")
	h := New(sess)
	h.Update(h.Init()())

	if _, err := sess.Engine.CompleteQuest(context.Background(), sess.User.ID, 1, 50, 80); err != nil {
		t.Fatalf("complete quest: %v", err)
	}
	h.Update(h.Resume()())

	if h.data.questsDone != 1 {
		t.Errorf("expected 1 completed quest, got %d", h.data.questsDone)
	}
	if h.data.stats.TotalXP != 50 {
		t.Errorf("expected 50 XP, got %d", h.data.stats.TotalXP)
	}
}

func TestMenuPushesQuests(t *testing.T) {
	h := New(screentest.NewSession(t, "ada"))

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected push command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if push.Screen.Title() != "Quests" {
		t.Errorf("expected quests screen, got %q", push.Screen.Title())
	}
}
