package repository

import (
	"context"

	"portfolio-api/internal/model"
)

// TestimonialRepository defines persistence for testimonials, ordered by sort
// order on List.
type TestimonialRepository interface {
	Create(ctx context.Context, tm *model.Testimonial) (*model.Testimonial, error)
	FindByID(ctx context.Context, id string) (*model.Testimonial, error)
	Update(ctx context.Context, tm *model.Testimonial) (*model.Testimonial, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]model.Testimonial, error)
}
