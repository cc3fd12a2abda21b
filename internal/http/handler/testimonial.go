package handler

import (
	"github.com/gofiber/fiber/v2"

	"portfolio-api/internal/model"
	"portfolio-api/internal/service"
)

type testimonialRequest struct {
	Name     string `json:"name"`
	Position string `json:"position"`
	Company  string `json:"company"`
	Content  string `json:"content"`
	ImageURL string `json:"imageUrl"`
	Featured bool   `json:"featured"`
	Order    int    `json:"order"`
}

func (r *testimonialRequest) validate() error {
	var v fieldErrors
	v.required("name", r.Name)
	v.maxLen("name", r.Name, 100)
	v.required("content", r.Content)
	v.maxLen("content", r.Content, 1000)
	return v.err()
}

func (r *testimonialRequest) toModel() *model.Testimonial {
	return &model.Testimonial{
		Name:     r.Name,
		Position: r.Position,
		Company:  r.Company,
		Content:  r.Content,
		ImageURL: r.ImageURL,
		Featured: r.Featured,
		Order:    r.Order,
	}
}

// ListTestimonials returns every testimonial by sort order.
func ListTestimonials(svc service.TestimonialService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.List(c.UserContext())
		if err != nil {
			return err
		}
		return respond(c, fiber.StatusOK, items)
	}
}

// GetTestimonial returns one testimonial by id.
func GetTestimonial(svc service.TestimonialService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tm, err := svc.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return err
		}
		return respond(c, fiber.StatusOK, tm)
	}
}

// CreateTestimonial creates a testimonial from a validated JSON body.
func CreateTestimonial(svc service.TestimonialService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req testimonialRequest
		if err := parseBody(c, &req); err != nil {
			return err
		}
		if err := req.validate(); err != nil {
			return err
		}

		tm, err := svc.Create(c.UserContext(), req.toModel())
		if err != nil {
			return err
		}
		return respond(c, fiber.StatusCreated, tm)
	}
}

// UpdateTestimonial replaces a testimonial's fields.
func UpdateTestimonial(svc service.TestimonialService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req testimonialRequest
		if err := parseBody(c, &req); err != nil {
			return err
		}
		if err := req.validate(); err != nil {
			return err
		}

		tm, err := svc.Update(c.UserContext(), c.Params("id"), req.toModel())
		if err != nil {
			return err
		}
		return respond(c, fiber.StatusOK, tm)
	}
}

// DeleteTestimonial removes a testimonial by id.
func DeleteTestimonial(svc service.TestimonialService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), c.Params("id")); err != nil {
			return err
		}
		return respondMessage(c, fiber.StatusOK, "Testimonial deleted successfully")
	}
}
