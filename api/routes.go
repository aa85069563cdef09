package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/student-portfolio-backend/models"
)

// setupRoutes registers the public login routes and everything behind the bearer token
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Post("/admin_login", handlers.authHandler.login(models.RoleAdmin))
		r.Post("/student_login", handlers.authHandler.login(models.RoleStudent))
	})

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(authMiddleware.authenticate)

		r.Post("/logout", handlers.authHandler.logout())

		r.Get("/dashboard", handlers.dashboardHandler.getDashboard())
		r.Post("/dashboard", handlers.dashboardHandler.uploadProject())

		r.Get("/edit-profile", handlers.profileHandler.getProfile())
		r.Post("/edit-profile", handlers.profileHandler.updateProfile())

		r.With(authMiddleware.requireAdmin).Post("/create_student", handlers.studentHandler.createStudent())
		r.Get("/student/{profileID}/projects", handlers.studentHandler.getStudentProjects())

		r.Get("/projects/all", handlers.projectHandler.getAllProjects())
		r.Get("/project/{projectID}", handlers.projectHandler.getProject())
		r.Post("/project/{projectID}", handlers.projectHandler.postProject())
		r.Delete("/project/{projectID}", handlers.projectHandler.deleteProject())
		r.Post("/project/{projectID}/hire", handlers.projectHandler.hire())

		r.Get("/messages", handlers.messageHandler.getInbox())
	})
}
