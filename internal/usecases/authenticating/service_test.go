package authenticating

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/affiliate-campaign-api/infrastructure/repository"
	"github.com/vfg2006/affiliate-campaign-api/infrastructure/repository/mocks"
	"github.com/vfg2006/affiliate-campaign-api/internal/config"
	"github.com/vfg2006/affiliate-campaign-api/internal/domain"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T) (*Service, *mocks.MockUserRepository) {
	ctrl := gomock.NewController(t)
	userRepo := mocks.NewMockUserRepository(ctrl)

	return NewService(userRepo, &config.Config{SecretKey: "segredo-de-teste"}), userRepo
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestService_CreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("deve cadastrar com senha em hash e perfil de afiliado", func(t *testing.T) {
		service, userRepo := newTestService(t)

		userRepo.EXPECT().GetUserByEmail(ctx, "ana@example.com").Return(nil, nil)
		userRepo.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, u *domain.User) (*domain.User, error) {
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("Senha123")))
			assert.Equal(t, 3, u.RoleID)
			assert.True(t, u.Active)
			u.ID = 10
			return u, nil
		})

		user, err := service.CreateUser(ctx, &domain.User{
			Name:         "Ana",
			Email:        " Ana@Example.com ",
			PasswordHash: "Senha123",
			RoleID:       1,
		})

		require.NoError(t, err)
		assert.Equal(t, 10, user.ID)
		assert.Empty(t, user.PasswordHash)
	})

	t.Run("email já cadastrado", func(t *testing.T) {
		service, userRepo := newTestService(t)
		userRepo.EXPECT().GetUserByEmail(ctx, "ana@example.com").Return(&domain.User{ID: 1}, nil)

		_, err := service.CreateUser(ctx, &domain.User{Name: "Ana", Email: "ana@example.com", PasswordHash: "Senha123"})

		assert.ErrorIs(t, err, ErrUserAlreadyExists)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("corrida na constraint de email", func(t *testing.T) {
		service, userRepo := newTestService(t)
		userRepo.EXPECT().GetUserByEmail(ctx, "ana@example.com").Return(nil, nil)
		userRepo.EXPECT().CreateUser(ctx, gomock.Any()).Return(nil, repository.ErrEmailTaken)

		_, err := service.CreateUser(ctx, &domain.User{Name: "Ana", Email: "ana@example.com", PasswordHash: "Senha123"})

		assert.ErrorIs(t, err, ErrUserAlreadyExists)
	})

	t.Run("senha fraca", func(t *testing.T) {
		service, _ := newTestService(t)

		_, err := service.CreateUser(ctx, &domain.User{Name: "Ana", Email: "ana@example.com", PasswordHash: "senha"})

		assert.ErrorIs(t, err, ErrWeakPassword)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("dados obrigatórios", func(t *testing.T) {
		service, _ := newTestService(t)

		_, err := service.CreateUser(ctx, &domain.User{Email: "ana@example.com"})

		assert.ErrorIs(t, err, ErrMissingRequiredData)
	})
}

func TestService_LoginUser(t *testing.T) {
	ctx := context.Background()

	t.Run("deve gerar token válido", func(t *testing.T) {
		service, userRepo := newTestService(t)
		userRepo.EXPECT().GetUserByEmail(ctx, "ana@example.com").Return(&domain.User{
			ID:           5,
			Name:         "Ana",
			Email:        "ana@example.com",
			PasswordHash: hashed(t, "Senha123"),
			Active:       true,
			RoleID:       3,
		}, nil)

		token, err := service.LoginUser(ctx, "ANA@example.com", "Senha123")
		require.NoError(t, err)

		claims, err := service.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, 5, claims.UserID)
		assert.Equal(t, 3, claims.UserRoleID)
	})

	tests := []struct {
		name     string
		user     *domain.User
		password string
		wantErr  error
	}{
		{name: "usuário inexistente", user: nil, password: "Senha123", wantErr: ErrUserNotFound},
		{name: "usuário desativado", user: &domain.User{ID: 1, Active: false}, password: "Senha123", wantErr: ErrUserDisabled},
		{name: "senha incorreta", user: &domain.User{ID: 1, Active: true, PasswordHash: "$2a$04$invalid"}, password: "Errada123", wantErr: ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, userRepo := newTestService(t)
			userRepo.EXPECT().GetUserByEmail(ctx, "ana@example.com").Return(tt.user, nil)

			_, err := service.LoginUser(ctx, "ana@example.com", tt.password)

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestService_ValidateToken(t *testing.T) {
	service, _ := newTestService(t)

	t.Run("token expirado", func(t *testing.T) {
		service.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }
		defer func() { service.now = time.Now }()

		token, err := service.generateJWT(&domain.User{ID: 1, Active: true})
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("assinatura de outra chave", func(t *testing.T) {
		other := jwt.NewWithClaims(jwt.SigningMethodHS256, domain.Claims{UserID: 1, UserActive: true})
		token, err := other.SignedString([]byte("outra-chave"))
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("texto qualquer", func(t *testing.T) {
		_, err := service.ValidateToken("não-é-jwt")
		assert.True(t, IsTokenError(err))
	})
}

func TestService_GetUserProfile(t *testing.T) {
	ctx := context.Background()
	service, userRepo := newTestService(t)

	userRepo.EXPECT().GetUserByID(ctx, 5).Return(&domain.User{ID: 5, PasswordHash: "hash"}, nil)
	userRepo.EXPECT().GetUserByID(ctx, 6).Return(nil, nil)

	user, err := service.GetUserProfile(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, user.PasswordHash)

	_, err = service.GetUserProfile(ctx, 6)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
