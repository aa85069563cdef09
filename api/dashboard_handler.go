package api

import (
	"net/http"

	"github.com/rpupo63/student-portfolio-backend/errs"
	"github.com/rpupo63/student-portfolio-backend/models"
	"github.com/rpupo63/student-portfolio-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type dashboardHandler struct {
	responder      Responder
	logger         zerolog.Logger
	maxUploadBytes int64
}

func newDashboardHandler(maxUploadBytes int64) dashboardHandler {
	logger := log.With().Str("handlerName", "dashboardHandler").Logger()

	return dashboardHandler{
		responder:      NewResponder(logger),
		logger:         logger,
		maxUploadBytes: maxUploadBytes,
	}
}

// getDashboard returns the role-dependent dashboard
// @Summary Dashboard
// @Description Administrators get recently active students (or every student matching student_name) with their latest projects and site totals. Students get their profile state and own projects.
// @Tags Dashboard
// @Produce json
// @Param student_name query string false "Student name search (administrators)"
// @Success 200 {object} services.Dashboard
// @Failure 401 {object} map[string]interface{}
// @Router /dashboard [get]
func (h dashboardHandler) getDashboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := ctxGetView(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		dashboard, err := view.Dashboard(r.Context(), services.DashboardQuery{
			StudentName: r.URL.Query().Get("student_name"),
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, dashboard)
	}
}

// uploadProject creates a project from the student dashboard form
// @Summary Upload project
// @Tags Dashboard
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title"
// @Param category formData string true "Category"
// @Param description formData string false "Description"
// @Param tags formData string false "Comma separated tags"
// @Param visibility formData string false "Public or Private" default(Public)
// @Param license formData string false "License" default(All Rights Reserved)
// @Param allow_downloads formData string false "on to allow downloads"
// @Param images formData file true "Project images"
// @Success 201 {object} models.Project
// @Failure 400 {object} map[string]interface{} "Validation error with the submitted input"
// @Failure 403 {object} map[string]interface{} "Administrators cannot upload"
// @Router /dashboard [post]
func (h dashboardHandler) uploadProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := ctxGetView(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}
		if view.Role() != models.RoleStudent {
			h.responder.WriteError(w, errs.NewInsufficientRoleError(models.RoleStudent))
			return
		}

		if err := parseForm(w, r, h.maxUploadBytes); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		images, closeImages, err := formFiles(r, "images")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		defer closeImages()

		project, err := view.UploadProject(r.Context(), services.UploadForm{
			Title:          r.FormValue("title"),
			Category:       r.FormValue("category"),
			Description:    r.FormValue("description"),
			Tags:           r.FormValue("tags"),
			Visibility:     models.Visibility(r.FormValue("visibility")),
			License:        models.License(r.FormValue("license")),
			AllowDownloads: formBool(r, "allow_downloads"),
			Images:         images,
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, map[string]interface{}{
			"message": "Project uploaded successfully!",
			"project": project,
		})
	}
}
