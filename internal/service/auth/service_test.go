package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/shiftpoint/attendance-backend-go/internal/domain/auth"
	"github.com/shiftpoint/attendance-backend-go/internal/domain/user"
	"github.com/shiftpoint/attendance-backend-go/internal/pkg/jwt"
)

type fakeUserRepo struct {
	users  map[string]user.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]user.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	f.nextID++
	u.ID = string(rune('0' + f.nextID))
	f.users[u.ID] = u
	return u, nil
}
func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}
func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}
func (f *fakeUserRepo) Update(ctx context.Context, u user.User) error { return nil }
func (f *fakeUserRepo) List(ctx context.Context) ([]user.User, error) { return nil, nil }
func (f *fakeUserRepo) ListByCampaigns(ctx context.Context, campaignIDs []string) ([]user.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) ListByRole(ctx context.Context, role user.Role) ([]user.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) ListTeamLeaders(ctx context.Context, campaignID string) ([]user.User, error) {
	return nil, nil
}

type fakeRefreshTokenRepo struct {
	stored  map[string]string // token -> userID
	revoked map[string]bool
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{stored: make(map[string]string), revoked: make(map[string]bool)}
}

func (f *fakeRefreshTokenRepo) Store(ctx context.Context, userID, token string, expiresAt int64) error {
	f.stored[token] = userID
	return nil
}
func (f *fakeRefreshTokenRepo) IsRevoked(ctx context.Context, token string) (bool, error) {
	if _, ok := f.stored[token]; !ok {
		return true, nil
	}
	return f.revoked[token], nil
}
func (f *fakeRefreshTokenRepo) Revoke(ctx context.Context, token string) error {
	f.revoked[token] = true
	return nil
}

func newAuthFixture() (*Service, *fakeUserRepo, *fakeRefreshTokenRepo) {
	users := newFakeUserRepo()
	tokens := newFakeRefreshTokenRepo()
	svc := NewService(users, tokens, jwt.NewJWTService("test-secret", "15m", "168h"), nil)
	return svc, users, tokens
}

func registered(t *testing.T, svc *Service) user.User {
	t.Helper()
	created, err := svc.Register(context.Background(), auth.RegisterRequest{
		Email:    "ada@example.com",
		Password: "correct horse",
		FullName: "Ada Lovelace",
	})
	require.NoError(t, err)
	return created
}

func TestRegister(t *testing.T) {
	t.Parallel()

	svc, users, _ := newAuthFixture()
	created := registered(t, svc)

	assert.Equal(t, user.RoleEmployee, created.Role)
	assert.Equal(t, "UTC", created.Timezone)
	assert.Empty(t, created.PasswordHash, "hash must not leak in the response")

	stored := users.users[created.ID]
	require.NotEmpty(t, stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword(
		[]byte(stored.PasswordHash), []byte("correct horse")))

	_, err := svc.Register(context.Background(), auth.RegisterRequest{
		Email:    "ada@example.com",
		Password: "another pass",
		FullName: "Ada Again",
	})
	assert.ErrorIs(t, err, user.ErrEmailExists)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	svc, _, tokens := newAuthFixture()
	created := registered(t, svc)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email: "ada@example.com", Password: "wrong",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), auth.LoginRequest{
		Email: "nobody@example.com", Password: "correct horse",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	resp, err := svc.Login(context.Background(), auth.LoginRequest{
		Email: "ada@example.com", Password: "correct horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, created.ID, resp.UserID)
	assert.Equal(t, "EMPLOYEE", resp.Role)
	assert.Equal(t, created.ID, tokens.stored[resp.RefreshToken])
}

func TestRefresh_RotatesTokens(t *testing.T) {
	t.Parallel()

	svc, _, tokens := newAuthFixture()
	registered(t, svc)

	login, err := svc.Login(context.Background(), auth.LoginRequest{
		Email: "ada@example.com", Password: "correct horse",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.True(t, tokens.revoked[login.RefreshToken], "old refresh token must be revoked")

	// The rotated-out token cannot be replayed.
	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	t.Parallel()

	svc, _, tokens := newAuthFixture()
	registered(t, svc)

	login, err := svc.Login(context.Background(), auth.LoginRequest{
		Email: "ada@example.com", Password: "correct horse",
	})
	require.NoError(t, err)

	// An access token is not acceptable on the refresh path even if it
	// somehow ended up stored.
	tokens.stored[login.AccessToken] = login.UserID
	_, err = svc.Refresh(context.Background(), login.AccessToken)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestLogout(t *testing.T) {
	t.Parallel()

	svc, _, tokens := newAuthFixture()
	registered(t, svc)

	login, err := svc.Login(context.Background(), auth.LoginRequest{
		Email: "ada@example.com", Password: "correct horse",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), login.AccessToken, login.RefreshToken))
	assert.True(t, tokens.revoked[login.RefreshToken])

	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}
