package handler

import (
	"github.com/gofiber/fiber/v2"

	"portfolio-api/internal/apperr"
	"portfolio-api/internal/http/middleware"
	"portfolio-api/internal/service"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func parseBody(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return apperr.New(400, "Invalid request body").WithCause(err)
	}
	return nil
}

// Login verifies credentials and issues the auth token.
func Login(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if err := parseBody(c, &req); err != nil {
			return err
		}

		var v fieldErrors
		v.required("email", req.Email)
		v.email("email", req.Email)
		v.required("password", req.Password)
		if err := v.err(); err != nil {
			return err
		}

		signed, user, err := svc.Login(c.UserContext(), req.Email, req.Password)
		if err != nil {
			return err
		}

		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "success",
			"token":  signed,
			"data":   user,
		})
	}
}

// GetMe returns the account behind the presented token.
func GetMe(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := svc.GetUser(c.UserContext(), middleware.Identity(c))
		if err != nil {
			return err
		}
		return respond(c, fiber.StatusOK, user)
	}
}

// UpdatePassword rotates the admin password after re-checking the current one.
func UpdatePassword(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req updatePasswordRequest
		if err := parseBody(c, &req); err != nil {
			return err
		}

		var v fieldErrors
		v.required("currentPassword", req.CurrentPassword)
		v.required("newPassword", req.NewPassword)
		if req.NewPassword != "" {
			v.password("newPassword", req.NewPassword)
		}
		if err := v.err(); err != nil {
			return err
		}

		if err := svc.UpdatePassword(c.UserContext(), middleware.Identity(c), req.CurrentPassword, req.NewPassword); err != nil {
			return err
		}
		return respondMessage(c, fiber.StatusOK, "Password updated successfully")
	}
}
