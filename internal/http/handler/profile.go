package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"portfolio-api/internal/model"
	"portfolio-api/internal/service"
	"portfolio-api/internal/upload"
)

type profileRequest struct {
	Name      string            `json:"name"`
	Title     string            `json:"title"`
	Bio       string            `json:"bio"`
	Email     string            `json:"email"`
	Phone     string            `json:"phone"`
	ResumeURL string            `json:"resumeUrl"`
	AvatarURL string            `json:"avatarUrl"`
	Social    model.SocialLinks `json:"social"`
}

func (r *profileRequest) validate() error {
	var v fieldErrors
	v.required("name", r.Name)
	v.required("title", r.Title)
	v.required("bio", r.Bio)
	v.maxLen("bio", r.Bio, 2000)
	v.required("email", r.Email)
	v.email("email", r.Email)
	v.httpURL("social.github", r.Social.Github)
	v.httpURL("social.linkedin", r.Social.Linkedin)
	v.httpURL("social.twitter", r.Social.Twitter)
	v.httpURL("social.instagram", r.Social.Instagram)
	return v.err()
}

func (r *profileRequest) toModel() *model.Profile {
	return &model.Profile{
		Name:      r.Name,
		Title:     r.Title,
		Bio:       r.Bio,
		Email:     r.Email,
		Phone:     r.Phone,
		ResumeURL: r.ResumeURL,
		AvatarURL: r.AvatarURL,
		Social:    r.Social,
	}
}

// GetProfile returns the profile document; an unset profile reads as blank.
func GetProfile(svc service.ProfileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := svc.Get(c.UserContext())
		if err != nil {
			return err
		}
		return respond(c, fiber.StatusOK, p)
	}
}

// UpdateProfile overwrites the profile document.
func UpdateProfile(svc service.ProfileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req profileRequest
		if err := parseBody(c, &req); err != nil {
			return err
		}
		if err := req.validate(); err != nil {
			return err
		}

		p, err := svc.Update(c.UserContext(), req.toModel())
		if err != nil {
			return err
		}
		return respond(c, fiber.StatusOK, p)
	}
}

// UploadAvatar stores an image upload as the profile avatar. The service is
// resolved inside the request closure so registering the route never touches
// it.
func UploadAvatar(svc service.ProfileService, up *upload.Processor) fiber.Handler {
	return uploadProfileFile(up, "image", func(ctx context.Context, url string) (*model.Profile, error) {
		return svc.SetAvatarURL(ctx, url)
	})
}

// UploadResume stores a PDF upload as the profile resume.
func UploadResume(svc service.ProfileService, up *upload.Processor) fiber.Handler {
	return uploadProfileFile(up, "document", func(ctx context.Context, url string) (*model.Profile, error) {
		return svc.SetResumeURL(ctx, url)
	})
}

func uploadProfileFile(up *upload.Processor, expectType string, apply func(ctx context.Context, url string) (*model.Profile, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		form, err := c.MultipartForm()
		if err != nil {
			return upload.ErrFileRequired().WithCause(err)
		}

		file, err := up.Single(c.UserContext(), form, expectType)
		if err != nil {
			return err
		}

		p, err := apply(c.UserContext(), file.URL)
		if err != nil {
			return err
		}
		return respond(c, fiber.StatusOK, p)
	}
}
