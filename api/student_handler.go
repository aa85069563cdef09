package api

import (
	"net/http"

	"github.com/rpupo63/student-portfolio-backend/errs"
	"github.com/rpupo63/student-portfolio-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type studentHandler struct {
	responder Responder
	logger    zerolog.Logger
}

func newStudentHandler() studentHandler {
	logger := log.With().Str("handlerName", "studentHandler").Logger()

	return studentHandler{
		responder: NewResponder(logger),
		logger:    logger,
	}
}

// createStudent adds a student account
// @Summary Create student
// @Tags Students
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Username"
// @Param password formData string true "Password"
// @Success 201 {object} models.User
// @Failure 403 {object} map[string]interface{} "Administrators only"
// @Failure 409 {object} map[string]interface{} "Username already exists"
// @Router /create_student [post]
func (h studentHandler) createStudent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := ctxGetView(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}
		if err := parseForm(w, r, 1<<20); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		user, err := view.CreateStudent(r.Context(), services.CreateStudentForm{
			Username: r.FormValue("username"),
			Password: r.FormValue("password"),
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, map[string]interface{}{
			"message": "Student " + user.Username + " created successfully!",
			"user":    user,
		})
	}
}

// getStudentProjects returns a student's profile page
// @Summary Student portfolio
// @Tags Students
// @Produce json
// @Param profileID path string true "Profile ID" format(uuid)
// @Success 200 {object} services.StudentPortfolio
// @Failure 404 {object} map[string]interface{} "Profile not found"
// @Router /student/{profileID}/projects [get]
func (h studentHandler) getStudentProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := ctxGetView(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}
		profileID, err := uuidParam(r, "profileID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		page, err := view.StudentPortfolio(r.Context(), profileID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, page)
	}
}
