package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"portfolio-api/internal/apperr"
	"portfolio-api/internal/model"
	repoMocks "portfolio-api/internal/repository/mocks"
	"portfolio-api/internal/token"
)

const testUserID = "3f8e9a4c-1b2d-4e5f-8a9b-0c1d2e3f4a5b"

func hashFor(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return string(h)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	tokens := token.NewManager("0123456789abcdef0123456789abcdef", time.Hour)

	tests := []struct {
		name       string
		email      string
		password   string
		setupMocks func(mUsers *repoMocks.MockUserRepository)
		wantErr    *apperr.Error
	}{
		{
			name:     "happy path",
			email:    "admin@example.com",
			password: "correct horse",
			setupMocks: func(mUsers *repoMocks.MockUserRepository) {
				mUsers.On("FindByEmail", ctx, "admin@example.com").Return(&model.User{
					ID:       testUserID,
					Email:    "admin@example.com",
					Password: hashFor(t, "correct horse"),
				}, nil)
			},
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: "whatever",
			setupMocks: func(mUsers *repoMocks.MockUserRepository) {
				mUsers.On("FindByEmail", ctx, "nobody@example.com").Return(nil, sql.ErrNoRows)
			},
			wantErr: apperr.Unauthorized("Invalid credentials"),
		},
		{
			name:     "wrong password",
			email:    "admin@example.com",
			password: "wrong",
			setupMocks: func(mUsers *repoMocks.MockUserRepository) {
				mUsers.On("FindByEmail", ctx, "admin@example.com").Return(&model.User{
					ID:       testUserID,
					Email:    "admin@example.com",
					Password: hashFor(t, "correct horse"),
				}, nil)
			},
			wantErr: apperr.Unauthorized("Invalid credentials"),
		},
		{
			name:     "repository error",
			email:    "admin@example.com",
			password: "correct horse",
			setupMocks: func(mUsers *repoMocks.MockUserRepository) {
				mUsers.On("FindByEmail", ctx, "admin@example.com").Return(nil, errors.New("db fail"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mUsers := new(repoMocks.MockUserRepository)
			svc := NewAuthService(mUsers, tokens)

			tt.setupMocks(mUsers)

			signed, user, err := svc.Login(ctx, tt.email, tt.password)

			switch {
			case tt.wantErr != nil:
				var appErr *apperr.Error
				assert.ErrorAs(t, err, &appErr)
				assert.Equal(t, tt.wantErr.Code, appErr.Code)
				assert.Equal(t, tt.wantErr.Message, appErr.Message)
				assert.Empty(t, signed)
			case tt.name == "repository error":
				assert.Error(t, err)
			default:
				assert.NoError(t, err)
				assert.NotEmpty(t, signed)
				assert.Equal(t, testUserID, user.ID)

				subject, err := tokens.Verify(signed)
				assert.NoError(t, err)
				assert.Equal(t, testUserID, subject)
			}
			mUsers.AssertExpectations(t)
		})
	}
}

func TestAuthService_GetUser(t *testing.T) {
	ctx := context.Background()
	tokens := token.NewManager("0123456789abcdef0123456789abcdef", time.Hour)

	t.Run("happy path", func(t *testing.T) {
		mUsers := new(repoMocks.MockUserRepository)
		mUsers.On("FindByID", ctx, testUserID).Return(&model.User{ID: testUserID}, nil)
		svc := NewAuthService(mUsers, tokens)

		user, err := svc.GetUser(ctx, testUserID)

		assert.NoError(t, err)
		assert.Equal(t, testUserID, user.ID)
	})

	t.Run("malformed id", func(t *testing.T) {
		mUsers := new(repoMocks.MockUserRepository)
		svc := NewAuthService(mUsers, tokens)

		user, err := svc.GetUser(ctx, "not-a-uuid")

		var appErr *apperr.Error
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Code)
		assert.Nil(t, user)
		mUsers.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("missing user", func(t *testing.T) {
		mUsers := new(repoMocks.MockUserRepository)
		mUsers.On("FindByID", ctx, testUserID).Return(nil, sql.ErrNoRows)
		svc := NewAuthService(mUsers, tokens)

		_, err := svc.GetUser(ctx, testUserID)

		var appErr *apperr.Error
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Code)
	})
}

func TestAuthService_UpdatePassword(t *testing.T) {
	ctx := context.Background()
	tokens := token.NewManager("0123456789abcdef0123456789abcdef", time.Hour)

	t.Run("happy path", func(t *testing.T) {
		mUsers := new(repoMocks.MockUserRepository)
		mUsers.On("FindByID", ctx, testUserID).Return(&model.User{
			ID:       testUserID,
			Password: hashFor(t, "old password"),
		}, nil)
		mUsers.On("UpdatePassword", ctx, testUserID, mock.MatchedBy(func(hash string) bool {
			return bcrypt.CompareHashAndPassword([]byte(hash), []byte("new password")) == nil
		})).Return(nil)
		svc := NewAuthService(mUsers, tokens)

		err := svc.UpdatePassword(ctx, testUserID, "old password", "new password")

		assert.NoError(t, err)
		mUsers.AssertExpectations(t)
	})

	t.Run("wrong current password", func(t *testing.T) {
		mUsers := new(repoMocks.MockUserRepository)
		mUsers.On("FindByID", ctx, testUserID).Return(&model.User{
			ID:       testUserID,
			Password: hashFor(t, "old password"),
		}, nil)
		svc := NewAuthService(mUsers, tokens)

		err := svc.UpdatePassword(ctx, testUserID, "guess", "new password")

		var appErr *apperr.Error
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 401, appErr.Code)
		assert.Equal(t, "Current password is incorrect", appErr.Message)
		mUsers.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
	})
}
