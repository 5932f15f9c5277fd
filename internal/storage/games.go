package storage

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aliskhannn/flipquiz-bot/internal/clock"
	"github.com/aliskhannn/flipquiz-bot/internal/domain/entities"
	"github.com/aliskhannn/flipquiz-bot/internal/service"
)

const closeTimeout = time.Second

// Game is a session running for one chat.
type Game struct {
	Token      uuid.UUID           // tags callbacks of this game
	Course     string              // course being played
	Difficulty entities.Difficulty // difficulty being played
	Loop       *clock.Loop         // loop the session runs on
	Session    *service.Session    // accessed only through Loop

	stop func()
}

// NewGame wraps session and its loop. stop is called by Close once the
// session has been stopped and must end the loop.
func NewGame(token uuid.UUID, course string, d entities.Difficulty, loop *clock.Loop, session *service.Session, stop func()) *Game {
	return &Game{
		Token:      token,
		Course:     course,
		Difficulty: d,
		Loop:       loop,
		Session:    session,
		stop:       stop,
	}
}

// Close stops the session and its loop. It is safe to call more than once
// but must not be called from the game's own loop.
func (g *Game) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	_ = g.Loop.Call(ctx, g.Session.Stop)
	if g.stop != nil {
		g.stop()
	}
}

// Matches reports whether token belongs to this game.
func (g *Game) Matches(token string) bool {
	id, err := uuid.Parse(token)
	return err == nil && id == g.Token
}

// GameStorage provides in-memory storage for running games by chat ID.
type GameStorage struct {
	mu    sync.RWMutex
	games map[int64]*Game
}

// NewGameStorage creates a new GameStorage.
func NewGameStorage() *GameStorage {
	return &GameStorage{
		games: make(map[int64]*Game),
	}
}

// Store saves the game for chatID and returns the one it replaced, if any.
func (s *GameStorage) Store(chatID int64, g *Game) *Game {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.games[chatID]
	s.games[chatID] = g
	return prev
}

// Get retrieves the game for chatID.
func (s *GameStorage) Get(chatID int64) (*Game, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.games[chatID]
	return g, ok
}

// Delete removes the game for chatID and returns it.
func (s *GameStorage) Delete(chatID int64) *Game {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := s.games[chatID]
	delete(s.games, chatID)
	return g
}

// Remove deletes the game for chatID only if it is still g.
func (s *GameStorage) Remove(chatID int64, g *Game) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.games[chatID] != g {
		return false
	}
	delete(s.games, chatID)
	return true
}

// CloseAll closes and removes every stored game.
func (s *GameStorage) CloseAll() {
	s.mu.Lock()
	games := s.games
	s.games = make(map[int64]*Game)
	s.mu.Unlock()

	for _, g := range games {
		g.Close()
	}
}

// Len returns the number of stored games.
func (s *GameStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}
