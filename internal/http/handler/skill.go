package handler

import (
	"github.com/gofiber/fiber/v2"

	"portfolio-api/internal/model"
	"portfolio-api/internal/service"
)

type skillRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Proficiency int    `json:"proficiency"`
	Order       int    `json:"order"`
}

func (r *skillRequest) validate() error {
	var v fieldErrors
	v.required("name", r.Name)
	v.maxLen("name", r.Name, 50)
	v.required("category", r.Category)
	if r.Category != "" {
		v.oneOf("category", r.Category, model.SkillCategories)
	}
	v.intRange("proficiency", r.Proficiency, 0, 100)
	return v.err()
}

func (r *skillRequest) toModel() *model.Skill {
	return &model.Skill{
		Name:        r.Name,
		Category:    r.Category,
		Proficiency: r.Proficiency,
		Order:       r.Order,
	}
}

// ListSkills returns every skill grouped by category.
func ListSkills(svc service.SkillService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.List(c.UserContext())
		if err != nil {
			return err
		}
		return respond(c, fiber.StatusOK, items)
	}
}

// GetSkill returns one skill by id.
func GetSkill(svc service.SkillService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sk, err := svc.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return err
		}
		return respond(c, fiber.StatusOK, sk)
	}
}

// CreateSkill creates a skill from a validated JSON body.
func CreateSkill(svc service.SkillService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req skillRequest
		if err := parseBody(c, &req); err != nil {
			return err
		}
		if err := req.validate(); err != nil {
			return err
		}

		sk, err := svc.Create(c.UserContext(), req.toModel())
		if err != nil {
			return err
		}
		return respond(c, fiber.StatusCreated, sk)
	}
}

// UpdateSkill replaces a skill's fields.
func UpdateSkill(svc service.SkillService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req skillRequest
		if err := parseBody(c, &req); err != nil {
			return err
		}
		if err := req.validate(); err != nil {
			return err
		}

		sk, err := svc.Update(c.UserContext(), c.Params("id"), req.toModel())
		if err != nil {
			return err
		}
		return respond(c, fiber.StatusOK, sk)
	}
}

// DeleteSkill removes a skill by id.
func DeleteSkill(svc service.SkillService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), c.Params("id")); err != nil {
			return err
		}
		return respondMessage(c, fiber.StatusOK, "Skill deleted successfully")
	}
}
