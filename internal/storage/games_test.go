package storage

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/aliskhannn/flipquiz-bot/internal/clock"
	"github.com/aliskhannn/flipquiz-bot/internal/domain/entities"
	"github.com/aliskhannn/flipquiz-bot/internal/service"
	"github.com/aliskhannn/flipquiz-bot/internal/testutil"
)

type bankStub struct{}

func (bankStub) Bank() (entities.Bank, error) {
	answer := 0
	b := entities.Bank{}
	b.Add("Go", entities.DifficultyEasy, entities.Question{ID: "1", Options: []string{"a"}, Answer: &answer})
	return b, nil
}

func newRunningGame(t *testing.T) *Game {
	t.Helper()

	loop := clock.NewLoop()
	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = loop.Run(ctx) }()

	session := service.NewSession(bankStub{}, loop, testutil.NewScriptedRand(), nil, nil, service.DefaultGameSettings())
	g := NewGame(uuid.New(), "Go", entities.DifficultyEasy, loop, session, cancel)
	t.Cleanup(g.Close)
	return g
}

func TestGameStorageStoreReplaces(t *testing.T) {
	s := NewGameStorage()
	first := newRunningGame(t)
	second := newRunningGame(t)

	if prev := s.Store(1, first); prev != nil {
		t.Fatal("Store on empty slot returned a game")
	}
	if prev := s.Store(1, second); prev != first {
		t.Fatal("Store did not return the replaced game")
	}

	got, ok := s.Get(1)
	if !ok || got != second {
		t.Fatal("Get returned the wrong game")
	}
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}

	if s.Remove(1, first) {
		t.Fatal("Remove deleted a game that was already replaced")
	}
	if s.Delete(1) != second {
		t.Fatal("Delete returned the wrong game")
	}
	if _, ok := s.Get(1); ok {
		t.Fatal("game still stored after Delete")
	}
}

func TestGameMatchesToken(t *testing.T) {
	g := newRunningGame(t)

	if !g.Matches(g.Token.String()) {
		t.Fatal("own token rejected")
	}
	if g.Matches("not-a-uuid") {
		t.Fatal("garbage token accepted")
	}
	if other := newRunningGame(t); g.Matches(other.Token.String()) {
		t.Fatal("token of another game accepted")
	}
}

func TestGameCloseStopsSession(t *testing.T) {
	g := newRunningGame(t)

	ctx := testutil.Context(t, testutil.DefaultTimeout)
	if err := g.Loop.Call(ctx, func() {
		if err := g.Session.Start(g.Course, g.Difficulty); err != nil {
			t.Errorf("start: %v", err)
		}
	}); err != nil {
		t.Fatalf("call: %v", err)
	}

	g.Close()
	g.Close()

	select {
	case <-g.Loop.Done():
	case <-time.After(testutil.DefaultTimeout):
		t.Fatal("loop did not stop")
	}
	if g.Session.Phase() != service.PhaseIdle {
		t.Fatalf("phase = %s after Close", g.Session.Phase())
	}
}

func TestCloseAll(t *testing.T) {
	s := NewGameStorage()
	a, b := newRunningGame(t), newRunningGame(t)
	s.Store(1, a)
	s.Store(2, b)

	s.CloseAll()

	if s.Len() != 0 {
		t.Fatalf("Len() = %d after CloseAll", s.Len())
	}
	for _, g := range []*Game{a, b} {
		select {
		case <-g.Loop.Done():
		case <-time.After(testutil.DefaultTimeout):
			t.Fatal("loop did not stop")
		}
	}
}
