package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"storefront/core/internal/client"
	"storefront/core/internal/domain"
	"storefront/core/internal/storage"

	log "github.com/sirupsen/logrus"
)

// Storage keys for the persisted session.
const (
	userKey   = "auth_user"
	tokenKey  = "auth_token"
	statusKey = "auth_status"
)

// Service implements mock authentication against the demo API. The demo API
// accepts any credentials and returns no real identity, so users are minted
// locally when the API is unreachable and tokens are mock values. The only
// consumer of this state is the checkout gate.
type Service struct {
	client client.StorefrontClient
	store  storage.Store

	mu      sync.RWMutex
	session *domain.Session
}

// NewService restores any persisted session. A missing or corrupted session
// simply starts the service logged out.
func NewService(ctx context.Context, client client.StorefrontClient, store storage.Store) *Service {
	s := &Service{
		client: client,
		store:  store,
	}

	data, err := store.Load(ctx, userKey)
	if err != nil {
		return s
	}

	var user domain.User
	if err := json.Unmarshal(data, &user); err != nil {
		log.Warnf("Discarding corrupted persisted session: %v", err)
		return s
	}

	token := ""
	if tokenData, err := store.Load(ctx, tokenKey); err == nil {
		token = string(tokenData)
	}

	s.session = &domain.Session{User: user, Token: token}
	log.Debugf("Restored session for user %s", user.Username)
	return s
}

// Signup registers the user with the demo API for demo persistence and falls
// back to a locally minted user when the API call fails. It never fails: the
// result is always a logged-in session with a mock token.
func (s *Service) Signup(ctx context.Context, form domain.SignupForm) (*domain.Session, error) {
	id, err := s.client.CreateUser(ctx, form)
	if err != nil {
		log.Warnf("API signup failed, using local auth: %v", err)
		id = 0
	}
	if id == 0 {
		id = int(time.Now().UnixMilli())
	}

	user := domain.User{
		ID:       id,
		Username: form.Username,
		Email:    form.Email,
	}

	session := &domain.Session{
		User:  user,
		Token: mockToken(user.ID),
	}

	s.setSession(ctx, session)
	return session, nil
}

// Login resolves the user in order: the persisted session (matching username),
// the demo API, then a locally minted demo user. Like Signup it never fails.
func (s *Service) Login(ctx context.Context, creds domain.Credentials) (*domain.Session, error) {
	if stored := s.CurrentUser(); stored != nil && stored.Username == creds.Username {
		session := &domain.Session{
			User:  *stored,
			Token: mockToken(stored.ID),
		}
		s.setSession(ctx, session)
		return session, nil
	}

	user := domain.User{
		ID:       int(time.Now().UnixMilli()),
		Username: creds.Username,
		Email:    fmt.Sprintf("%s@demo.com", creds.Username),
	}

	token, err := s.client.Login(ctx, creds)
	if err != nil {
		log.Warnf("API login failed, using local auth: %v", err)
		token = ""
	}
	if token == "" {
		token = mockToken(user.ID)
	}

	session := &domain.Session{User: user, Token: token}
	s.setSession(ctx, session)
	return session, nil
}

// Logout clears the in-memory and persisted session.
func (s *Service) Logout(ctx context.Context) {
	s.mu.Lock()
	s.session = nil
	s.mu.Unlock()

	for _, key := range []string{userKey, tokenKey, statusKey} {
		if err := s.store.Delete(ctx, key); err != nil {
			log.Errorf("Failed to clear session key %s: %v", key, err)
		}
	}
}

func (s *Service) CurrentUser() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil {
		return nil
	}
	user := s.session.User
	return &user
}

func (s *Service) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session != nil
}

func (s *Service) setSession(ctx context.Context, session *domain.Session) {
	s.mu.Lock()
	s.session = session
	s.mu.Unlock()

	// Persistence failures leave the in-memory session intact for this run
	data, err := json.Marshal(session.User)
	if err != nil {
		log.Errorf("Failed to encode session: %v", err)
		return
	}
	if err := s.store.Save(ctx, userKey, data); err != nil {
		log.Errorf("Failed to persist session user: %v", err)
	}
	if err := s.store.Save(ctx, tokenKey, []byte(session.Token)); err != nil {
		log.Errorf("Failed to persist session token: %v", err)
	}
	if err := s.store.Save(ctx, statusKey, []byte("true")); err != nil {
		log.Errorf("Failed to persist session status: %v", err)
	}

	log.Infof("User %s logged in", session.User.Username)
}

func mockToken(userID int) string {
	return fmt.Sprintf("mock_token_%d_%d", time.Now().UnixMilli(), userID)
}
