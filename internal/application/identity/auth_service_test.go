package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "github.com/gestock/backend/internal/domain/identity"
	"github.com/gestock/backend/internal/domain/shared"
	"github.com/gestock/backend/internal/infrastructure/auth"
	"github.com/gestock/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memoryUserRepository struct {
	byEmail map[string]*domain.User
	saveErr error
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{byEmail: make(map[string]*domain.User)}
}

func (r *memoryUserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return user, nil
}

func (r *memoryUserRepository) FindByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	for _, user := range r.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memoryUserRepository) Save(_ context.Context, user *domain.User) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.byEmail[user.Email] = user
	return nil
}

func (r *memoryUserRepository) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.byEmail[user.Email]; !ok {
		return shared.ErrNotFound
	}
	r.byEmail[user.Email] = user
	return nil
}

type memoryTenantRepository struct {
	byID map[uuid.UUID]*domain.Tenant
}

func newMemoryTenantRepository() *memoryTenantRepository {
	return &memoryTenantRepository{byID: make(map[uuid.UUID]*domain.Tenant)}
}

func (r *memoryTenantRepository) FindByID(_ context.Context, id uuid.UUID) (*domain.Tenant, error) {
	tenant, ok := r.byID[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return tenant, nil
}

func (r *memoryTenantRepository) Save(_ context.Context, tenant *domain.Tenant) error {
	r.byID[tenant.ID] = tenant
	return nil
}

func (r *memoryTenantRepository) Update(_ context.Context, tenant *domain.Tenant) error {
	if _, ok := r.byID[tenant.ID]; !ok {
		return shared.ErrNotFound
	}
	r.byID[tenant.ID] = tenant
	return nil
}

func (r *memoryTenantRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.byID[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func testTokenService() *auth.TokenService {
	return auth.NewTokenService(config.JWTConfig{
		Secret:                 "test-secret-key-with-enough-length",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "gestock-test",
	})
}

func newTestAuthService() (*AuthService, *memoryUserRepository, *memoryTenantRepository) {
	users := newMemoryUserRepository()
	tenants := newMemoryTenantRepository()
	return NewAuthService(users, tenants, testTokenService(), zap.NewNop()), users, tenants
}

func TestRegisterCreatesTenantAndAdminUser(t *testing.T) {
	service, users, tenants := newTestAuthService()

	result, err := service.Register(context.Background(), RegisterInput{
		Email:       "Owner@Example.com",
		Password:    "correct-horse",
		DisplayName: "Awa Diallo",
		CompanyName: "Boutique Centrale",
		Plan:        "PREMIUM",
	})
	require.NoError(t, err)

	assert.Equal(t, "owner@example.com", result.User.Email)
	assert.True(t, result.User.Admin)
	assert.Equal(t, "PREMIUM", result.Tenant.Plan)
	assert.Equal(t, result.Tenant.ID, result.User.TenantID)
	assert.NotEmpty(t, result.Tokens.AccessToken)

	stored, err := users.FindByEmail(context.Background(), "owner@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored.TenantID)
	_, err = tenants.FindByID(context.Background(), *stored.TenantID)
	require.NoError(t, err)
}

func TestRegisterDefaultsToBasicPlan(t *testing.T) {
	service, _, _ := newTestAuthService()

	result, err := service.Register(context.Background(), RegisterInput{
		Email:       "owner@example.com",
		Password:    "correct-horse",
		DisplayName: "Awa Diallo",
		CompanyName: "Boutique Centrale",
	})
	require.NoError(t, err)
	assert.Equal(t, "BASIC", result.Tenant.Plan)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	service, _, _ := newTestAuthService()

	input := RegisterInput{
		Email:       "owner@example.com",
		Password:    "correct-horse",
		DisplayName: "Awa Diallo",
		CompanyName: "Boutique Centrale",
	}
	_, err := service.Register(context.Background(), input)
	require.NoError(t, err)

	input.CompanyName = "Another Shop"
	_, err = service.Register(context.Background(), input)
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "EMAIL_TAKEN", domainErr.Code)
}

func TestRegisterRejectsUnknownPlan(t *testing.T) {
	service, _, _ := newTestAuthService()

	_, err := service.Register(context.Background(), RegisterInput{
		Email:       "owner@example.com",
		Password:    "correct-horse",
		DisplayName: "Awa Diallo",
		CompanyName: "Boutique Centrale",
		Plan:        "PLATINUM",
	})
	require.Error(t, err)
}

func TestRegisterRemovesTenantWhenUserSaveFails(t *testing.T) {
	service, users, tenants := newTestAuthService()
	users.saveErr = errors.New("duplicate key value violates unique constraint")

	_, err := service.Register(context.Background(), RegisterInput{
		Email:       "owner@example.com",
		Password:    "correct-horse",
		DisplayName: "Awa Diallo",
		CompanyName: "Boutique Centrale",
	})
	require.Error(t, err)

	assert.Empty(t, tenants.byID, "a failed registration must not leave an orphan tenant")
	assert.Empty(t, users.byEmail)
}

func TestLoginSuccess(t *testing.T) {
	service, users, _ := newTestAuthService()

	registered, err := service.Register(context.Background(), RegisterInput{
		Email:       "owner@example.com",
		Password:    "correct-horse",
		DisplayName: "Awa Diallo",
		CompanyName: "Boutique Centrale",
	})
	require.NoError(t, err)

	result, err := service.Login(context.Background(), LoginInput{
		Email:    "owner@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, result.User.ID)
	assert.NotEmpty(t, result.Tokens.AccessToken)
	assert.NotEmpty(t, result.Tokens.RefreshToken)

	stored, err := users.FindByEmail(context.Background(), "owner@example.com")
	require.NoError(t, err)
	assert.NotNil(t, stored.LastLoginAt)
}

func TestLoginWrongPasswordAndUnknownEmailAreIndistinguishable(t *testing.T) {
	service, _, _ := newTestAuthService()

	_, err := service.Register(context.Background(), RegisterInput{
		Email:       "owner@example.com",
		Password:    "correct-horse",
		DisplayName: "Awa Diallo",
		CompanyName: "Boutique Centrale",
	})
	require.NoError(t, err)

	_, wrongPassword := service.Login(context.Background(), LoginInput{
		Email:    "owner@example.com",
		Password: "battery-staple",
	})
	_, unknownEmail := service.Login(context.Background(), LoginInput{
		Email:    "nobody@example.com",
		Password: "correct-horse",
	})

	require.Error(t, wrongPassword)
	require.Error(t, unknownEmail)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestLoginDeactivatedAccount(t *testing.T) {
	service, users, _ := newTestAuthService()

	_, err := service.Register(context.Background(), RegisterInput{
		Email:       "owner@example.com",
		Password:    "correct-horse",
		DisplayName: "Awa Diallo",
		CompanyName: "Boutique Centrale",
	})
	require.NoError(t, err)

	stored, err := users.FindByEmail(context.Background(), "owner@example.com")
	require.NoError(t, err)
	stored.Active = false

	_, err = service.Login(context.Background(), LoginInput{
		Email:    "owner@example.com",
		Password: "correct-horse",
	})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ACCOUNT_DEACTIVATED", domainErr.Code)
}

func TestRefreshIssuesNewPair(t *testing.T) {
	service, _, _ := newTestAuthService()

	registered, err := service.Register(context.Background(), RegisterInput{
		Email:       "owner@example.com",
		Password:    "correct-horse",
		DisplayName: "Awa Diallo",
		CompanyName: "Boutique Centrale",
	})
	require.NoError(t, err)

	pair, err := service.Refresh(context.Background(), RefreshInput{
		RefreshToken: registered.Tokens.RefreshToken,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	service, _, _ := newTestAuthService()

	registered, err := service.Register(context.Background(), RegisterInput{
		Email:       "owner@example.com",
		Password:    "correct-horse",
		DisplayName: "Awa Diallo",
		CompanyName: "Boutique Centrale",
	})
	require.NoError(t, err)

	_, err = service.Refresh(context.Background(), RefreshInput{
		RefreshToken: registered.Tokens.AccessToken,
	})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_TOKEN", domainErr.Code)
}

func TestRefreshRejectsGarbage(t *testing.T) {
	service, _, _ := newTestAuthService()

	_, err := service.Refresh(context.Background(), RefreshInput{RefreshToken: "not.a.token"})
	require.Error(t, err)
}
