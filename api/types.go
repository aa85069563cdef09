package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	authHandler      authHandler
	dashboardHandler dashboardHandler
	profileHandler   profileHandler
	studentHandler   studentHandler
	projectHandler   projectHandler
	messageHandler   messageHandler
}
