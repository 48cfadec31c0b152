package auth

import (
	"context"
	"errors"
	"sync"

	"github.com/FACorreiaa/finance-chat-assistant/internal/domain/user"
	"github.com/FACorreiaa/finance-chat-assistant/pkg/db"
)

// MemoryStore keeps sessions in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]Session)}
}

func (m *MemoryStore) Get(_ context.Context, senderID string) (Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[senderID]; ok {
		return s, nil
	}
	return Session{State: StateAnonymous}, nil
}

func (m *MemoryStore) Set(_ context.Context, senderID string, s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[senderID] = s
	return nil
}

type userStateRepository interface {
	GetByPhone(ctx context.Context, phone string) (*user.User, error)
	SetAuthState(ctx context.Context, phone, state, login string) error
}

// PostgresStore keeps sessions on the users row so logins survive restarts.
type PostgresStore struct {
	users userStateRepository
}

func NewPostgresStore(users userStateRepository) *PostgresStore {
	return &PostgresStore{users: users}
}

func (p *PostgresStore) Get(ctx context.Context, senderID string) (Session, error) {
	u, err := p.users.GetByPhone(ctx, senderID)
	if errors.Is(err, db.ErrNotFound) {
		return Session{State: StateAnonymous}, nil
	}
	if err != nil {
		return Session{}, err
	}
	state := State(u.AuthState)
	if state == "" {
		state = StateAnonymous
	}
	return Session{State: state, Login: u.Login}, nil
}

func (p *PostgresStore) Set(ctx context.Context, senderID string, s Session) error {
	return p.users.SetAuthState(ctx, senderID, string(s.State), s.Login)
}
