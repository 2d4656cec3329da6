package service

import (
	"time"

	"github.com/ghostform/ghostform/internal/config"
	"github.com/ghostform/ghostform/internal/constants"
	"github.com/ghostform/ghostform/internal/models"
	"github.com/ghostform/ghostform/internal/repository"

	"github.com/google/uuid"
)

// SessionService manages opaque login sessions. Tokens are random UUIDs
// stored server side; expiry is enforced lazily on lookup.
type SessionService struct {
	sessionRepo repository.SessionRepository
	userRepo    repository.UserRepository
	cfg         *config.SessionConfig
}

// NewSessionService creates a session service.
func NewSessionService(sessionRepo repository.SessionRepository, userRepo repository.UserRepository, cfg *config.SessionConfig) *SessionService {
	return &SessionService{sessionRepo: sessionRepo, userRepo: userRepo, cfg: cfg}
}

// TTL returns the configured session lifetime.
func (s *SessionService) TTL() time.Duration {
	days := constants.SessionDefaultExpireDays
	if s.cfg != nil && s.cfg.ExpireDays > 0 {
		days = s.cfg.ExpireDays
	}
	return time.Duration(days) * 24 * time.Hour
}

// Issue creates a fresh session for the user and returns its token.
func (s *SessionService) Issue(userID uint) (*models.Session, error) {
	session := &models.Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(s.TTL()),
	}
	if err := s.sessionRepo.Create(session); err != nil {
		return nil, err
	}
	return session, nil
}

// Resolve validates a token and returns the owning user. Expired sessions
// are deleted on sight and reported as invalid.
func (s *SessionService) Resolve(token string) (*models.User, error) {
	if token == "" {
		return nil, ErrSessionInvalid
	}
	session, err := s.sessionRepo.GetByToken(token)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionInvalid
	}
	if session.Expired(time.Now()) {
		if err := s.sessionRepo.Delete(session.Token); err != nil {
			return nil, err
		}
		return nil, ErrSessionInvalid
	}

	user, err := s.userRepo.GetByID(session.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive() {
		return nil, ErrSessionInvalid
	}
	return user, nil
}

// Revoke deletes one session. Unknown tokens are not an error.
func (s *SessionService) Revoke(token string) error {
	if token == "" {
		return nil
	}
	return s.sessionRepo.Delete(token)
}

// RevokeAll deletes every session of the user.
func (s *SessionService) RevokeAll(userID uint) error {
	return s.sessionRepo.DeleteByUserID(userID)
}
