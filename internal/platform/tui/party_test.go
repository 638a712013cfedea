package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-party/internal/config"
	"github.com/vovakirdan/tui-party/internal/core"
	"github.com/vovakirdan/tui-party/internal/ranking"

	_ "github.com/vovakirdan/tui-party/internal/games/balloons"
	_ "github.com/vovakirdan/tui-party/internal/games/feeding"
	_ "github.com/vovakirdan/tui-party/internal/games/memory"
)

func newTestParty(store ranking.Persistence, stages ...string) PartyModel {
	party := config.DefaultPartyConfig()
	if len(stages) > 0 {
		party.Session.Stages = stages
	}
	runtime := core.DefaultConfig()
	runtime.Seed = 7
	return NewPartyModel(PartyOptions{
		Runtime:      runtime,
		Party:        party,
		Store:        store,
		RememberName: true,
	})
}

func update(t *testing.T, m PartyModel, msg tea.Msg) PartyModel {
	t.Helper()
	next, _ := m.Update(msg)
	pm, ok := next.(PartyModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return pm
}

func typeName(t *testing.T, m PartyModel, name string) PartyModel {
	t.Helper()
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)})
	return update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
}

func TestPartySkipsUnknownStages(t *testing.T) {
	m := newTestParty(ranking.NewMemoryStore(), "memory", "nope", "feeding")

	if len(m.stages) != 2 || m.stages[0] != "memory" || m.stages[1] != "feeding" {
		t.Fatalf("stages = %v", m.stages)
	}
	if got := m.nextStage("memory"); got != "feeding" {
		t.Errorf("nextStage(memory) = %q, want feeding", got)
	}
	if got := m.nextStage("feeding"); got != StageRanking {
		t.Errorf("last stage should hand off to the ranking, got %q", got)
	}
	if got := m.nextStage("nope"); got != StageRanking {
		t.Errorf("unknown stage should hand off to the ranking, got %q", got)
	}
}

func TestPartyWelcomeNeedsName(t *testing.T) {
	m := newTestParty(ranking.NewMemoryStore())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Stage() != StageWelcome {
		t.Fatalf("blank name should stay on welcome, got %q", m.Stage())
	}

	m = typeName(t, m, "ana")
	if m.Stage() != "memory" {
		t.Fatalf("stage = %q, want memory", m.Stage())
	}
	if m.opts.Runtime.PlayerName != "ana" {
		t.Errorf("player name = %q, want ana", m.opts.Runtime.PlayerName)
	}
}

func TestPartyRemembersName(t *testing.T) {
	store := ranking.NewMemoryStore()
	if err := ranking.SavePlayerName(store, "zoe"); err != nil {
		t.Fatal(err)
	}

	m := newTestParty(store)
	if got := m.welcome.input.Value(); got != "zoe" {
		t.Fatalf("welcome prefill = %q, want zoe", got)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.opts.Runtime.PlayerName != "zoe" {
		t.Errorf("player name = %q, want zoe", m.opts.Runtime.PlayerName)
	}
}

func TestPartySavesName(t *testing.T) {
	store := ranking.NewMemoryStore()
	m := newTestParty(store)
	typeName(t, m, "ana")

	if got := ranking.LoadPlayerName(store); got != "ana" {
		t.Errorf("saved name = %q, want ana", got)
	}
}

func TestPartyFollowsStageRequests(t *testing.T) {
	m := newTestParty(ranking.NewMemoryStore())
	m = typeName(t, m, "ana")
	now := time.Unix(1000, 0)

	m.router.GoToStage("balloons")
	m = update(t, m, FrameMsg(now))
	if m.Stage() != "balloons" {
		t.Fatalf("stage = %q, want balloons", m.Stage())
	}
	if m.game == nil || m.game.Game().ID() != "balloons" {
		t.Fatal("balloons game should be hosted")
	}

	m.router.GoToStage(StageRanking)
	m = update(t, m, FrameMsg(now.Add(time.Second)))
	if m.Stage() != StageRanking {
		t.Fatalf("stage = %q, want ranking", m.Stage())
	}
	if m.game != nil {
		t.Error("game should be closed on the ranking")
	}
	if m.View() == "" {
		t.Error("ranking view should not be empty")
	}

	m.opts.Scores.RecordGameScore("memory", 40)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	if m.Stage() != "memory" {
		t.Fatalf("play again should restart at memory, got %q", m.Stage())
	}
	if total := m.opts.Scores.AggregateTotal(); total != 0 {
		t.Errorf("play again should reset the tally, total = %d", total)
	}
}

func TestPartyQuitFromGame(t *testing.T) {
	m := newTestParty(ranking.NewMemoryStore())
	m = typeName(t, m, "ana")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !next.(PartyModel).quitting {
		t.Error("ctrl+c should quit the party")
	}
	if cmd == nil {
		t.Error("quit should return a command")
	}
}

func TestStageRouterTake(t *testing.T) {
	r := &StageRouter{}
	if _, ok := r.take(); ok {
		t.Fatal("empty router should have nothing pending")
	}
	r.GoToStage("feeding")
	r.GoToStage("ranking")
	stage, ok := r.take()
	if !ok || stage != "ranking" {
		t.Errorf("take = %q, %v; want latest request", stage, ok)
	}
	if _, ok := r.take(); ok {
		t.Error("take should clear the request")
	}
}
