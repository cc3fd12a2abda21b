package service

import (
	"context"

	"portfolio-api/internal/model"
	"portfolio-api/internal/repository"
)

// TestimonialService defines the use cases for testimonials.
type TestimonialService interface {
	Create(ctx context.Context, tm *model.Testimonial) (*model.Testimonial, error)
	Get(ctx context.Context, id string) (*model.Testimonial, error)
	Update(ctx context.Context, id string, tm *model.Testimonial) (*model.Testimonial, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]model.Testimonial, error)
}

type testimonialService struct {
	repo repository.TestimonialRepository
}

// NewTestimonialService constructs a new TestimonialService.
func NewTestimonialService(repo repository.TestimonialRepository) TestimonialService {
	return &testimonialService{repo: repo}
}

func (s *testimonialService) Create(ctx context.Context, tm *model.Testimonial) (*model.Testimonial, error) {
	return s.repo.Create(ctx, tm)
}

func (s *testimonialService) Get(ctx context.Context, id string) (*model.Testimonial, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *testimonialService) Update(ctx context.Context, id string, tm *model.Testimonial) (*model.Testimonial, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	tm.ID = id
	return s.repo.Update(ctx, tm)
}

func (s *testimonialService) Delete(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *testimonialService) List(ctx context.Context) ([]model.Testimonial, error) {
	return s.repo.List(ctx)
}
