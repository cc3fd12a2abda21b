package handler

import (
	"github.com/gofiber/fiber/v2"

	"portfolio-api/internal/model"
	"portfolio-api/internal/service"
)

type aboutRequest struct {
	About             string             `json:"about"`
	Location          string             `json:"location"`
	YearsOfExperience int                `json:"yearsOfExperience"`
	Interests         []string           `json:"interests"`
	Experience        []model.Experience `json:"experience"`
	Education         []model.Education  `json:"education"`
}

func (r *aboutRequest) validate() error {
	var v fieldErrors
	v.required("about", r.About)
	v.intRange("yearsOfExperience", r.YearsOfExperience, 0, 100)
	return v.err()
}

func (r *aboutRequest) toModel() *model.About {
	interests := r.Interests
	if interests == nil {
		interests = []string{}
	}
	experience := r.Experience
	if experience == nil {
		experience = []model.Experience{}
	}
	education := r.Education
	if education == nil {
		education = []model.Education{}
	}
	return &model.About{
		About:             r.About,
		Location:          r.Location,
		YearsOfExperience: r.YearsOfExperience,
		Interests:         interests,
		Experience:        experience,
		Education:         education,
	}
}

// GetAbout returns the about-page document; an unset document reads as blank.
func GetAbout(svc service.AboutService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		a, err := svc.Get(c.UserContext())
		if err != nil {
			return err
		}
		return respond(c, fiber.StatusOK, a)
	}
}

// UpdateAbout overwrites the about-page document.
func UpdateAbout(svc service.AboutService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req aboutRequest
		if err := parseBody(c, &req); err != nil {
			return err
		}
		if err := req.validate(); err != nil {
			return err
		}

		a, err := svc.Update(c.UserContext(), req.toModel())
		if err != nil {
			return err
		}
		return respond(c, fiber.StatusOK, a)
	}
}
