// Package session owns the identity of the operator currently logged
// in. A Session is created by a successful login and dropped at
// logout; nothing is persisted about it.
package session

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/chirpnet/chirp/internal/model"
	"github.com/chirpnet/chirp/internal/store"
)

// ErrBadCredentials reports an id/password pair with no matching
// user. There is no lockout and no retry limit.
var ErrBadCredentials = errors.New("bad credentials")

type Session struct {
	User      model.User
	StartedAt time.Time
}

type Service struct {
	store store.Store
	log   *zap.Logger
}

func NewService(st store.Store, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: st, log: log}
}

// Login checks the credential by plaintext equality against the user
// table, which is how this system stores credentials.
func (s *Service) Login(ctx context.Context, id int64, password string) (*Session, error) {
	user, err := s.store.Authenticate(ctx, id, password)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.log.Info("login failed", zap.Int64("user", id))
			return nil, ErrBadCredentials
		}
		return nil, err
	}
	s.log.Info("login", zap.Int64("user", user.ID))
	return &Session{User: user, StartedAt: time.Now()}, nil
}

// Signup creates the user and reports the allocated id.
func (s *Service) Signup(ctx context.Context, user *model.User, password string) (int64, error) {
	id, err := s.store.CreateUser(ctx, user, password)
	if err != nil {
		return 0, err
	}
	s.log.Info("signup", zap.Int64("user", id))
	return id, nil
}

// Logout drops the session.
func (s *Service) Logout(sess *Session) {
	if sess != nil {
		s.log.Info("logout", zap.Int64("user", sess.User.ID))
	}
}
