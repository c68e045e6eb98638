package game

import (
	"context"
	"errors"
	"sync"
)

var ErrGameNotFound = errors.New("game not found")

type Store interface {
	Create(ctx context.Context, g *GameState) error
	Get(ctx context.Context, id string) (*GameState, error)
	Update(ctx context.Context, g *GameState) error
}

// MemoryStore 一个简单的内存对局存储：本地跑、测试都够用
type MemoryStore struct {
	mu    sync.RWMutex
	games map[string]*GameState
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{games: make(map[string]*GameState)}
}

func (s *MemoryStore) Create(_ context.Context, g *GameState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[g.ID] = g.clone()
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.games[id]
	if !ok {
		return nil, ErrGameNotFound
	}
	return g.clone(), nil
}

func (s *MemoryStore) Update(_ context.Context, g *GameState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[g.ID]; !ok {
		return ErrGameNotFound
	}
	s.games[g.ID] = g.clone()
	return nil
}
