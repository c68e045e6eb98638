package game

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"raichu/internal/raichu"
)

var (
	ErrIllegalMove = errors.New("illegal move")
	ErrGameOver    = errors.New("game is over")
)

type Manager struct {
	mu    sync.Mutex // 串行化 Play，避免同一局并发落子
	store Store
	log   *zap.SugaredLogger
	now   func() time.Time
}

func NewManager(store Store, log *zap.SugaredLogger) *Manager {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Manager{store: store, log: log, now: time.Now}
}

func (m *Manager) NewGame(ctx context.Context, n int) (*GameState, error) {
	pos, err := raichu.NewInitialPosition(n)
	if err != nil {
		return nil, err
	}
	now := m.now()
	g := &GameState{
		ID:        uuid.NewString(),
		N:         n,
		Pos:       pos,
		Status:    StatusOf(pos),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := m.store.Create(ctx, g); err != nil {
		return nil, err
	}
	m.log.Infow("new game", "game_id", g.ID, "n", n)
	return g, nil
}

func (m *Manager) Get(ctx context.Context, id string) (*GameState, error) {
	return m.store.Get(ctx, id)
}

// Play 走一步。只比对 From/To，吃子格由合法招决定。
func (m *Manager) Play(ctx context.Context, id string, mv raichu.Move) (*GameState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	g, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if g.Status != StatusOngoing {
		return nil, ErrGameOver
	}

	var found *raichu.Move
	legal := g.Pos.GenerateMoves()
	for i := range legal {
		if legal[i].From == mv.From && legal[i].To == mv.To {
			found = &legal[i]
			break
		}
	}
	if found == nil {
		return nil, ErrIllegalMove
	}

	next, ok := g.Pos.ApplyMove(*found)
	if !ok {
		return nil, ErrIllegalMove
	}
	g.Pos = next
	g.History = append(g.History, *found)
	g.Status = StatusOf(next)
	g.UpdatedAt = m.now()

	if err := m.store.Update(ctx, g); err != nil {
		return nil, err
	}
	m.log.Debugw("move played", "game_id", id, "from", found.From, "to", found.To, "status", g.Status)
	return g, nil
}
