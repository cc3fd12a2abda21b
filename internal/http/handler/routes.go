package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"portfolio-api/internal/http/middleware"
	"portfolio-api/internal/service"
	"portfolio-api/internal/token"
	"portfolio-api/internal/upload"
)

// Services bundles the use-case layer for route registration.
type Services struct {
	Auth         service.AuthService
	Projects     service.ProjectService
	Skills       service.SkillService
	Testimonials service.TestimonialService
	Profile      service.ProfileService
	About        service.AboutService
}

// RegisterRoutes attaches the API surface under /api/v1 with an /api alias
// for clients that predate versioning. Reads are public; every mutation sits
// behind the token check. loginLimiter may be nil to disable the tighter
// login ceiling (tests do this).
func RegisterRoutes(app *fiber.App, db *sql.DB, svc Services, tokens *token.Manager, uploads *upload.Processor, loginLimiter fiber.Handler) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	auth := middleware.RequireAuth(tokens)

	register := func(r fiber.Router) {
		r.Get("/health", HealthCheck(db))

		login := []fiber.Handler{Login(svc.Auth)}
		if loginLimiter != nil {
			login = append([]fiber.Handler{loginLimiter}, login...)
		}
		r.Post("/auth/login", login...)
		r.Get("/auth/me", auth, GetMe(svc.Auth))
		r.Put("/auth/password", auth, UpdatePassword(svc.Auth))

		// /projects/search must precede /projects/:id.
		r.Get("/projects", ListProjects(svc.Projects))
		r.Get("/projects/search", SearchProjects(svc.Projects))
		r.Get("/projects/:id", GetProject(svc.Projects))
		r.Post("/projects", auth, CreateProject(svc.Projects))
		r.Put("/projects/:id", auth, UpdateProject(svc.Projects))
		r.Delete("/projects/:id", auth, DeleteProject(svc.Projects))
		r.Post("/projects/:id/image", auth, UploadProjectImage(svc.Projects, uploads))

		r.Get("/skills", ListSkills(svc.Skills))
		r.Get("/skills/:id", GetSkill(svc.Skills))
		r.Post("/skills", auth, CreateSkill(svc.Skills))
		r.Put("/skills/:id", auth, UpdateSkill(svc.Skills))
		r.Delete("/skills/:id", auth, DeleteSkill(svc.Skills))

		r.Get("/testimonials", ListTestimonials(svc.Testimonials))
		r.Get("/testimonials/:id", GetTestimonial(svc.Testimonials))
		r.Post("/testimonials", auth, CreateTestimonial(svc.Testimonials))
		r.Put("/testimonials/:id", auth, UpdateTestimonial(svc.Testimonials))
		r.Delete("/testimonials/:id", auth, DeleteTestimonial(svc.Testimonials))

		r.Get("/profile", GetProfile(svc.Profile))
		r.Put("/profile", auth, UpdateProfile(svc.Profile))
		r.Post("/profile/avatar", auth, UploadAvatar(svc.Profile, uploads))
		r.Post("/profile/resume", auth, UploadResume(svc.Profile, uploads))

		r.Get("/about", GetAbout(svc.About))
		r.Put("/about", auth, UpdateAbout(svc.About))
	}

	register(app.Group("/api/v1"))
	register(app.Group("/api"))
}
