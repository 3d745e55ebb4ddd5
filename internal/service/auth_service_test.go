package service_test

import (
	"context"
	"testing"

	"github.com/Foreversengine/Bespoke-Inventory-management-system/internal/apierror"
	"github.com/Foreversengine/Bespoke-Inventory-management-system/internal/config"
	"github.com/Foreversengine/Bespoke-Inventory-management-system/internal/dto"
	"github.com/Foreversengine/Bespoke-Inventory-management-system/internal/model"
	"github.com/Foreversengine/Bespoke-Inventory-management-system/internal/repository"
	"github.com/Foreversengine/Bespoke-Inventory-management-system/internal/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type stubUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) List(_ context.Context, includeInactive bool) ([]model.User, error) {
	var result []model.User
	for _, u := range r.users {
		if !includeInactive && !u.Active {
			continue
		}
		result = append(result, *u)
	}
	return result, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	u, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Active = false
	return nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

func testAuthConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
		JWTRefreshHours:    24,
	}
}

func seedUser(t *testing.T, repo *stubUserRepo, username, password string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &model.User{
		ID:           uuid.New(),
		Username:     username,
		Name:         "Test User",
		PasswordHash: string(hash),
		Role:         model.RoleStaff,
		Active:       true,
	}
	repo.users[u.ID] = u
	return u
}

func TestLogin(t *testing.T) {
	repo := newStubUserRepo()
	u := seedUser(t, repo, "maria", "correct horse")
	svc := service.NewAuthService(repo, testAuthConfig())

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "maria", Password: "correct horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 3600, resp.ExpiresIn)
	assert.Equal(t, u.ID.String(), resp.User.ID)

	// The access token carries the identity claims the middleware reads.
	token, err := jwt.Parse(resp.AccessToken, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, u.ID.String(), claims["user_id"])
	assert.Equal(t, "maria", claims["username"])
	assert.Equal(t, model.RoleStaff, claims["role"])
}

func TestLoginBadCredentials(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "maria", "correct horse")
	svc := service.NewAuthService(repo, testAuthConfig())

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "maria", Password: "wrong"})
	require.Error(t, err)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Username: "nobody", Password: "whatever"})
	require.Error(t, err)
}

func TestSignup(t *testing.T) {
	repo := newStubUserRepo()
	svc := service.NewAuthService(repo, testAuthConfig())

	resp, err := svc.Signup(context.Background(), dto.SignupRequest{
		Username: "maria",
		Name:     "Maria Lopez",
		Password: "a long password",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleStaff, resp.Role, "public signup never grants admin")

	stored, err := repo.FindByUsername(context.Background(), "maria")
	require.NoError(t, err)
	assert.True(t, stored.Active)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("a long password")))

	_, err = svc.Signup(context.Background(), dto.SignupRequest{
		Username: "maria",
		Name:     "Someone Else",
		Password: "another password",
	})
	var conflict *apierror.IntegrityViolation
	require.ErrorAs(t, err, &conflict)
}

func TestRefresh(t *testing.T) {
	repo := newStubUserRepo()
	u := seedUser(t, repo, "maria", "correct horse")
	svc := service.NewAuthService(repo, testAuthConfig())

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "maria", Password: "correct horse"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, u.ID.String(), refreshed.User.ID)

	_, err = svc.Refresh(context.Background(), "not.a.token")
	require.Error(t, err)

	// Deactivated users cannot refresh even with a valid token.
	require.NoError(t, repo.Deactivate(context.Background(), u.ID))
	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	require.Error(t, err)
}
