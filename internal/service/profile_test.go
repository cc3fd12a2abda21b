package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"portfolio-api/internal/model"
	repoMocks "portfolio-api/internal/repository/mocks"
)

func TestProfileService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("existing profile", func(t *testing.T) {
		mRepo := new(repoMocks.MockProfileRepository)
		mRepo.On("Get", ctx).Return(&model.Profile{ID: "p1", Name: "Jane"}, nil)
		svc := NewProfileService(mRepo)

		p, err := svc.Get(ctx)

		assert.NoError(t, err)
		assert.Equal(t, "Jane", p.Name)
	})

	t.Run("empty table reads as blank profile", func(t *testing.T) {
		mRepo := new(repoMocks.MockProfileRepository)
		mRepo.On("Get", ctx).Return(nil, sql.ErrNoRows)
		svc := NewProfileService(mRepo)

		p, err := svc.Get(ctx)

		assert.NoError(t, err)
		assert.NotNil(t, p)
		assert.Empty(t, p.ID)
	})
}

func TestProfileService_SetAvatarURL(t *testing.T) {
	ctx := context.Background()

	t.Run("patches only the avatar field", func(t *testing.T) {
		mRepo := new(repoMocks.MockProfileRepository)
		mRepo.On("Get", ctx).Return(&model.Profile{ID: "p1", Name: "Jane", ResumeURL: "/uploads/documents/cv.pdf"}, nil)
		mRepo.On("Upsert", ctx, mock.MatchedBy(func(p *model.Profile) bool {
			return p.AvatarURL == "/uploads/images/new.png" &&
				p.Name == "Jane" &&
				p.ResumeURL == "/uploads/documents/cv.pdf"
		})).Return(&model.Profile{ID: "p1", AvatarURL: "/uploads/images/new.png"}, nil)
		svc := NewProfileService(mRepo)

		p, err := svc.SetAvatarURL(ctx, "/uploads/images/new.png")

		assert.NoError(t, err)
		assert.Equal(t, "/uploads/images/new.png", p.AvatarURL)
		mRepo.AssertExpectations(t)
	})

	t.Run("bootstraps the document when none exists", func(t *testing.T) {
		mRepo := new(repoMocks.MockProfileRepository)
		mRepo.On("Get", ctx).Return(nil, sql.ErrNoRows)
		mRepo.On("Upsert", ctx, mock.MatchedBy(func(p *model.Profile) bool {
			return p.AvatarURL == "/uploads/images/first.png"
		})).Return(&model.Profile{ID: "new", AvatarURL: "/uploads/images/first.png"}, nil)
		svc := NewProfileService(mRepo)

		p, err := svc.SetAvatarURL(ctx, "/uploads/images/first.png")

		assert.NoError(t, err)
		assert.Equal(t, "new", p.ID)
	})
}

func TestAboutService_Get_DefaultsCollections(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockAboutRepository)
	mRepo.On("Get", ctx).Return(nil, sql.ErrNoRows)
	svc := NewAboutService(mRepo)

	a, err := svc.Get(ctx)

	assert.NoError(t, err)
	assert.NotNil(t, a.Interests)
	assert.NotNil(t, a.Experience)
	assert.NotNil(t, a.Education)
}
