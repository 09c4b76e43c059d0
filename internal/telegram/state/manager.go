package state

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Manager manages per-chat state
type Manager struct {
	storage Storage
	mu      sync.Mutex
}

// NewManager creates a new state manager
func NewManager(storage Storage) *Manager {
	return &Manager{
		storage: storage,
	}
}

// Get returns the chat state, or an empty one for a new chat
func (m *Manager) Get(ctx context.Context, chatID int64) (*ChatState, error) {
	st, err := m.storage.Get(ctx, chatID)
	if errors.Is(err, ErrStateNotFound) {
		return &ChatState{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get chat state from storage: %w", err)
	}
	return st, nil
}

// SetFolder stores the upload folder for the chat
func (m *Manager) SetFolder(ctx context.Context, chatID int64, folder string) (*ChatState, error) {
	return m.update(ctx, chatID, func(st *ChatState) {
		st.Folder = strings.TrimSpace(folder)
	})
}

// ToggleSpecific flips whether /reindex is limited to the chat's folder
func (m *Manager) ToggleSpecific(ctx context.Context, chatID int64) (*ChatState, error) {
	return m.update(ctx, chatID, func(st *ChatState) {
		st.Specific = !st.Specific
	})
}

// SetLastQuery remembers the query the export buttons re-run
func (m *Manager) SetLastQuery(ctx context.Context, chatID int64, query string) (*ChatState, error) {
	return m.update(ctx, chatID, func(st *ChatState) {
		st.LastQuery = strings.TrimSpace(query)
	})
}

// Reset forgets everything about the chat
func (m *Manager) Reset(ctx context.Context, chatID int64) error {
	if err := m.storage.Delete(ctx, chatID); err != nil {
		return fmt.Errorf("delete chat state from storage: %w", err)
	}
	return nil
}

func (m *Manager) update(ctx context.Context, chatID int64, apply func(*ChatState)) (*ChatState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, err := m.Get(ctx, chatID)
	if err != nil {
		return nil, err
	}

	apply(st)
	st.UpdatedAt = time.Now()

	if err := m.storage.Set(ctx, chatID, st); err != nil {
		return nil, fmt.Errorf("save chat state to storage: %w", err)
	}
	return st, nil
}
