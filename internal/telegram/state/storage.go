package state

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
)

var ErrStateNotFound = errors.New("chat state not found")

// ChatState is what the bot remembers about one chat between updates.
type ChatState struct {
	// Folder is the product folder documents are uploaded into
	Folder string `json:"folder,omitempty"`

	// Specific limits /reindex to Folder
	Specific bool `json:"specific,omitempty"`

	// LastQuery is re-run by the export buttons
	LastQuery string `json:"last_query,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

// Storage defines the interface for chat state persistence
type Storage interface {
	// Get retrieves chat state, ErrStateNotFound when there is none
	Get(ctx context.Context, chatID int64) (*ChatState, error)

	// Set saves chat state
	Set(ctx context.Context, chatID int64, st *ChatState) error

	// Delete removes chat state
	Delete(ctx context.Context, chatID int64) error
}

// MemoryStorage keeps chat state in process memory. Entries idle for longer
// than the TTL are dropped.
type MemoryStorage struct {
	cache *cache.Cache
}

func NewMemoryStorage(ttl time.Duration) *MemoryStorage {
	return &MemoryStorage{
		cache: cache.New(ttl, ttl/2),
	}
}

func (s *MemoryStorage) Get(ctx context.Context, chatID int64) (*ChatState, error) {
	v, ok := s.cache.Get(chatKey(chatID))
	if !ok {
		return nil, ErrStateNotFound
	}
	st := *v.(*ChatState)
	return &st, nil
}

func (s *MemoryStorage) Set(ctx context.Context, chatID int64, st *ChatState) error {
	cp := *st
	s.cache.SetDefault(chatKey(chatID), &cp)
	return nil
}

func (s *MemoryStorage) Delete(ctx context.Context, chatID int64) error {
	s.cache.Delete(chatKey(chatID))
	return nil
}

func chatKey(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}
