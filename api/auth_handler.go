package api

import (
	"net/http"

	"github.com/rpupo63/student-portfolio-backend/errs"
	"github.com/rpupo63/student-portfolio-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	auth      *services.Authenticator
}

func newAuthHandler(auth *services.Authenticator) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		auth:      auth,
	}
}

// login signs a user in through the entry point of role
// @Summary Log in
// @Description Checks username and password and returns a bearer token. Administrators must use /admin_login and students /student_login.
// @Tags Auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Username"
// @Param password formData string true "Password"
// @Success 200 {object} services.LoginResult
// @Failure 400 {object} map[string]interface{} "Validation error"
// @Failure 401 {object} map[string]interface{} "Invalid credentials"
// @Router /student_login [post]
// @Router /admin_login [post]
func (h authHandler) login(role string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := parseForm(w, r, 1<<20); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		result, err := h.auth.Login(services.LoginForm{
			Username: r.FormValue("username"),
			Password: r.FormValue("password"),
		}, role)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().Str("username", result.User.Username).Str("role", role).Msg("user logged in")
		h.responder.WriteJSON(w, result)
	}
}

// logout revokes the session behind the bearer token
// @Summary Log out
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /logout [post]
func (h authHandler) logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := ctxGetSession(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		if err := h.auth.Logout(session.ID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]interface{}{"message": "Logged out"})
	}
}
