package handler

import (
	"github.com/gofiber/fiber/v2"

	"portfolio-api/internal/model"
	"portfolio-api/internal/service"
	"portfolio-api/internal/upload"
)

type projectRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	ImageURL     string   `json:"imageUrl"`
	GithubURL    string   `json:"githubUrl"`
	LiveURL      string   `json:"liveUrl"`
	Featured     bool     `json:"featured"`
	Order        int      `json:"order"`
}

func (r *projectRequest) validate() error {
	var v fieldErrors
	v.required("title", r.Title)
	v.maxLen("title", r.Title, 100)
	v.required("description", r.Description)
	v.maxLen("description", r.Description, 2000)
	v.httpURL("githubUrl", r.GithubURL)
	v.httpURL("liveUrl", r.LiveURL)
	return v.err()
}

func (r *projectRequest) toModel() *model.Project {
	techs := r.Technologies
	if techs == nil {
		techs = []string{}
	}
	return &model.Project{
		Title:        r.Title,
		Description:  r.Description,
		Technologies: techs,
		ImageURL:     r.ImageURL,
		GithubURL:    r.GithubURL,
		LiveURL:      r.LiveURL,
		Featured:     r.Featured,
		Order:        r.Order,
	}
}

func pageParams(c *fiber.Ctx) (page, limit int) {
	page = c.QueryInt("page", 1)
	limit = c.QueryInt("limit", 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

// ListProjects returns a paginated project list, optionally filtered to
// featured entries via ?featured=true|false.
func ListProjects(svc service.ProjectService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, limit := pageParams(c)

		var featured *bool
		switch c.Query("featured") {
		case "true":
			t := true
			featured = &t
		case "false":
			f := false
			featured = &f
		}

		res, err := svc.List(c.UserContext(), limit, (page-1)*limit, featured)
		if err != nil {
			return err
		}
		return respondPage(c, res.Items, newPagination(page, limit, res.Total))
	}
}

// SearchProjects runs the full-text search behind ?q=.
func SearchProjects(svc service.ProjectService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, limit := pageParams(c)

		res, err := svc.Search(c.UserContext(), c.Query("q"), limit, (page-1)*limit)
		if err != nil {
			return err
		}
		return respondPage(c, res.Items, newPagination(page, limit, res.Total))
	}
}

// GetProject returns one project by id.
func GetProject(svc service.ProjectService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := svc.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return err
		}
		return respond(c, fiber.StatusOK, p)
	}
}

// CreateProject creates a project from a validated JSON body.
func CreateProject(svc service.ProjectService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req projectRequest
		if err := parseBody(c, &req); err != nil {
			return err
		}
		if err := req.validate(); err != nil {
			return err
		}

		p, err := svc.Create(c.UserContext(), req.toModel())
		if err != nil {
			return err
		}
		return respond(c, fiber.StatusCreated, p)
	}
}

// UpdateProject replaces a project's fields, last write wins.
func UpdateProject(svc service.ProjectService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req projectRequest
		if err := parseBody(c, &req); err != nil {
			return err
		}
		if err := req.validate(); err != nil {
			return err
		}

		p, err := svc.Update(c.UserContext(), c.Params("id"), req.toModel())
		if err != nil {
			return err
		}
		return respond(c, fiber.StatusOK, p)
	}
}

// DeleteProject removes a project; deleting an already-deleted id is a 404.
func DeleteProject(svc service.ProjectService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), c.Params("id")); err != nil {
			return err
		}
		return respondMessage(c, fiber.StatusOK, "Project deleted successfully")
	}
}

// UploadProjectImage stores an image upload and points the project at it.
func UploadProjectImage(svc service.ProjectService, up *upload.Processor) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := svc.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return err
		}

		form, err := c.MultipartForm()
		if err != nil {
			return upload.ErrFileRequired().WithCause(err)
		}

		file, err := up.Single(c.UserContext(), form, "image")
		if err != nil {
			return err
		}

		p.ImageURL = file.URL
		updated, err := svc.Update(c.UserContext(), p.ID, p)
		if err != nil {
			return err
		}
		return respond(c, fiber.StatusOK, updated)
	}
}
