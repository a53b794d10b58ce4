package store

import (
	"context"
	"fmt"

	"github.com/KamilaKuyanova/FITBOT-sub000/internal/domain"
)

// SessionsForUser returns every session belonging to a user.
// Wardrobe servers have a handful of sessions at most, so a prefix scan
// beats maintaining another index.
func (s *Store) SessionsForUser(ctx context.Context, userID string) ([]*domain.Session, error) {
	var sessions []*domain.Session
	for session, err := range s.Sessions.List(ctx) {
		if err != nil {
			return nil, fmt.Errorf("failed to list sessions: %w", err)
		}
		if session.UserID == userID {
			sessions = append(sessions, session)
		}
	}
	return sessions, nil
}

// DeleteExpiredSessions removes every session past its expiry.
// Returns how many were removed.
func (s *Store) DeleteExpiredSessions(ctx context.Context) (int, error) {
	var expired []string
	for session, err := range s.Sessions.List(ctx) {
		if err != nil {
			return 0, fmt.Errorf("failed to list sessions: %w", err)
		}
		if session.IsExpired() {
			expired = append(expired, session.ID)
		}
	}

	for _, id := range expired {
		if err := s.Sessions.Delete(ctx, id); err != nil {
			return 0, fmt.Errorf("failed to delete session %s: %w", id, err)
		}
	}
	return len(expired), nil
}
