package auth

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// JwtBlacklistStore remembers revoked token ids until the token would expire anyway.
type JwtBlacklistStore interface {
	// IsBlacklisted checks if the given JWT ID (jti) is blacklisted.
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
	// AddToBlacklist adds the given JWT ID (jti) to the blacklist with an expiration time.
	AddToBlacklist(ctx context.Context, jti string, exp time.Time) error
}

// CleanUpSchedule is how often the in-memory store drops expired entries
const CleanUpSchedule = "@every 5m"

// InMemoryBlacklistStore is a process local JwtBlacklistStore.
type InMemoryBlacklistStore struct {
	blacklist map[string]time.Time
	mu        sync.RWMutex
	cron      *cron.Cron
}

// NewInMemoryBlacklistStore starts the periodic clean up, call Stop to end it.
func NewInMemoryBlacklistStore(logger *slog.Logger) *InMemoryBlacklistStore {
	if logger == nil {
		logger = slog.Default()
	}
	store := &InMemoryBlacklistStore{
		blacklist: make(map[string]time.Time),
		cron:      cron.New(),
	}
	if _, err := store.cron.AddFunc(CleanUpSchedule, store.CleanUpExpired); err != nil {
		logger.Error("failed to schedule blacklist clean up", slog.Any("error", err))
	}
	store.cron.Start()
	return store
}

// Stop ends the clean up schedule
func (s *InMemoryBlacklistStore) Stop() {
	<-s.cron.Stop().Done()
}

func (s *InMemoryBlacklistStore) CleanUpExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for jti, exp := range s.blacklist {
		if exp.Before(now) {
			delete(s.blacklist, jti)
		}
	}
}

func (s *InMemoryBlacklistStore) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.blacklist[jti]
	return exists, nil
}

func (s *InMemoryBlacklistStore) AddToBlacklist(_ context.Context, jti string, exp time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.blacklist[jti] = exp
	return nil
}

// Len returns the number of remembered ids
func (s *InMemoryBlacklistStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blacklist)
}
