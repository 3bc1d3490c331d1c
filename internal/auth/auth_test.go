package auth

import (
	"context"
	"errors"
	"testing"

	"storefront/core/internal/domain"
	"storefront/core/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockClient struct {
	token     string
	loginErr  error
	userID    int
	signupErr error

	loginCalls int
}

func (m *mockClient) ListProducts(context.Context) ([]domain.Product, error) {
	return nil, errors.New("not implemented")
}
func (m *mockClient) GetProduct(context.Context, int) (*domain.Product, error) {
	return nil, errors.New("not implemented")
}
func (m *mockClient) ListCategories(context.Context) ([]string, error) {
	return nil, errors.New("not implemented")
}
func (m *mockClient) CreateProduct(context.Context, domain.ProductInput) (*domain.Product, error) {
	return nil, errors.New("not implemented")
}
func (m *mockClient) Login(context.Context, domain.Credentials) (string, error) {
	m.loginCalls++
	return m.token, m.loginErr
}
func (m *mockClient) CreateUser(context.Context, domain.SignupForm) (int, error) {
	return m.userID, m.signupErr
}

func TestSignupViaAPI(t *testing.T) {
	ctx := context.Background()
	svc := NewService(ctx, &mockClient{userID: 11}, storage.NewMemoryStore())

	session, err := svc.Signup(ctx, domain.SignupForm{
		Username: "demo",
		Email:    "demo@demo.com",
		Password: "secret",
	})

	require.NoError(t, err)
	assert.Equal(t, 11, session.User.ID)
	assert.Equal(t, "demo", session.User.Username)
	assert.NotEmpty(t, session.Token)
	assert.True(t, svc.IsAuthenticated())
}

func TestSignupFallsBackToLocalUser(t *testing.T) {
	ctx := context.Background()
	svc := NewService(ctx, &mockClient{signupErr: errors.New("HTTP error: 500")}, storage.NewMemoryStore())

	session, err := svc.Signup(ctx, domain.SignupForm{Username: "demo", Email: "demo@demo.com"})

	require.NoError(t, err, "signup never fails, a local demo user is minted")
	assert.NotZero(t, session.User.ID)
	assert.True(t, svc.IsAuthenticated())
}

func TestLoginPrefersStoredSession(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	client := &mockClient{userID: 11}

	first := NewService(ctx, client, store)
	_, err := first.Signup(ctx, domain.SignupForm{Username: "demo", Email: "demo@demo.com"})
	require.NoError(t, err)

	second := NewService(ctx, client, store)
	session, err := second.Login(ctx, domain.Credentials{Username: "demo", Password: "whatever"})

	require.NoError(t, err)
	assert.Equal(t, 11, session.User.ID, "stored user wins over the API")
	assert.Zero(t, client.loginCalls)
}

func TestLoginViaAPI(t *testing.T) {
	ctx := context.Background()
	client := &mockClient{token: "api-token"}
	svc := NewService(ctx, client, storage.NewMemoryStore())

	session, err := svc.Login(ctx, domain.Credentials{Username: "mor_2314", Password: "83r5^_"})

	require.NoError(t, err)
	assert.Equal(t, "api-token", session.Token)
	assert.Equal(t, "mor_2314", session.User.Username)
	assert.Equal(t, "mor_2314@demo.com", session.User.Email)
}

func TestLoginFallsBackToLocalDemoUser(t *testing.T) {
	ctx := context.Background()
	client := &mockClient{loginErr: errors.New("HTTP error: 503")}
	svc := NewService(ctx, client, storage.NewMemoryStore())

	session, err := svc.Login(ctx, domain.Credentials{Username: "ghost"})

	require.NoError(t, err)
	assert.Contains(t, session.Token, "mock_token_")
	assert.True(t, svc.IsAuthenticated())
}

func TestSessionRestoredAcrossRestarts(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	client := &mockClient{userID: 11}

	first := NewService(ctx, client, store)
	_, err := first.Signup(ctx, domain.SignupForm{Username: "demo", Email: "demo@demo.com"})
	require.NoError(t, err)

	second := NewService(ctx, client, store)
	require.True(t, second.IsAuthenticated())
	assert.Equal(t, "demo", second.CurrentUser().Username)
}

func TestCorruptedSessionStartsLoggedOut(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Save(ctx, "auth_user", []byte("{broken")))

	svc := NewService(ctx, &mockClient{}, store)
	assert.False(t, svc.IsAuthenticated())
	assert.Nil(t, svc.CurrentUser())
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	client := &mockClient{userID: 11}

	svc := NewService(ctx, client, store)
	_, err := svc.Signup(ctx, domain.SignupForm{Username: "demo", Email: "demo@demo.com"})
	require.NoError(t, err)

	svc.Logout(ctx)

	assert.False(t, svc.IsAuthenticated())
	_, err = store.Load(ctx, "auth_user")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	restarted := NewService(ctx, client, store)
	assert.False(t, restarted.IsAuthenticated())
}
