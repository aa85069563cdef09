package api

import (
	"github.com/rpupo63/student-portfolio-backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(auth *services.Authenticator, maxUploadBytes int64) *routeHandlers {
	return &routeHandlers{
		authHandler:      newAuthHandler(auth),
		dashboardHandler: newDashboardHandler(maxUploadBytes),
		profileHandler:   newProfileHandler(maxUploadBytes),
		studentHandler:   newStudentHandler(),
		projectHandler:   newProjectHandler(),
		messageHandler:   newMessageHandler(),
	}
}
