package auth

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidInput       = errors.New("invalid email or password")
	ErrDuplicateAccount   = errors.New("account already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const minPasswordLen = 4

// Session holds the current-user state for one application session, backed by
// an account store and a credential store for restart persistence.
type Session struct {
	users UserStore
	creds CredentialStore
	log   *logrus.Entry

	mu      sync.RWMutex
	current *User
}

// NewSession builds a session and restores the current user from the
// credential store, if one was persisted.
func NewSession(ctx context.Context, users UserStore, creds CredentialStore, log *logrus.Entry) *Session {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	s := &Session{users: users, creds: creds, log: log}
	if u, err := creds.Get(ctx); err == nil {
		s.current = u
		log.WithField("email", u.Email).Info("session restored")
	} else if !errors.Is(err, ErrNoCredentials) {
		log.WithError(err).Warn("credential restore failed, starting unauthenticated")
	}
	return s
}

// Register creates an account and signs it in.
func (s *Session) Register(ctx context.Context, email, password, name string) (*User, error) {
	email = strings.TrimSpace(email)
	if !emailPattern.MatchString(email) || len(password) < minPasswordLen {
		return nil, ErrInvalidInput
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, ErrAlreadyExist) {
			return nil, ErrDuplicateAccount
		}
		return nil, err
	}
	s.setCurrent(ctx, u)
	s.log.WithField("email", u.Email).Info("account registered")
	return u, nil
}

// Login authenticates against the account store and sets the current user.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *Session) Login(ctx context.Context, email, password string) (*User, error) {
	u, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !CheckPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	s.setCurrent(ctx, u)
	s.log.WithField("email", u.Email).Info("login")
	return u, nil
}

// Logout clears the session synchronously. It cannot fail; a credential store
// error only costs the persisted record, not the logout itself.
func (s *Session) Logout(ctx context.Context) {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	if err := s.creds.Clear(ctx); err != nil {
		s.log.WithError(err).Warn("clearing persisted credentials failed")
	}
}

func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}

// CurrentUser returns the signed-in user, or nil when unauthenticated.
func (s *Session) CurrentUser() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	cp := *s.current
	return &cp
}

func (s *Session) setCurrent(ctx context.Context, u *User) {
	s.mu.Lock()
	cp := *u
	s.current = &cp
	s.mu.Unlock()
	if err := s.creds.Put(ctx, *u); err != nil {
		s.log.WithError(err).Warn("persisting credentials failed")
	}
}
