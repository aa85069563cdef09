package api

import (
	"net/http"

	"github.com/rpupo63/student-portfolio-backend/errs"
	"github.com/rpupo63/student-portfolio-backend/models"
	"github.com/rpupo63/student-portfolio-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type projectHandler struct {
	responder Responder
	logger    zerolog.Logger
}

func newProjectHandler() projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder: NewResponder(logger),
		logger:    logger,
	}
}

// StudentProjectsCollection is the grouped project listing
type StudentProjectsCollection struct {
	Students []services.StudentProjects `json:"students"`
	Total    int                        `json:"total"`
}

// getAllProjects lists projects grouped by student
// @Summary List projects
// @Description Administrators see every student's projects and may filter them. Students see their own projects followed by other students' public projects.
// @Tags Projects
// @Produce json
// @Param name query string false "Student full name contains (administrators)"
// @Param project query string false "Title contains (administrators)"
// @Param sort query string false "asc for oldest first (administrators)"
// @Param recent_days query string false "Only projects created in the last N days (administrators)"
// @Success 200 {object} StudentProjectsCollection
// @Failure 401 {object} map[string]interface{}
// @Router /projects/all [get]
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := ctxGetView(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		q := r.URL.Query()
		students, err := view.Projects(r.Context(), services.ProjectFilter{
			Name:       q.Get("name"),
			Project:    q.Get("project"),
			Sort:       q.Get("sort"),
			RecentDays: q.Get("recent_days"),
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, StudentProjectsCollection{Students: students, Total: len(students)})
	}
}

// getProject returns a project with its owner and like state, counting one view
// @Summary Get project
// @Tags Projects
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} services.ProjectDetail
// @Failure 400 {object} map[string]interface{} "Invalid projectID"
// @Failure 404 {object} map[string]interface{} "Project not found"
// @Router /project/{projectID} [get]
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := ctxGetView(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}
		projectID, err := uuidParam(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		detail, err := view.ViewProject(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, detail)
	}
}

// postProject toggles the user's like when action=like; any other post
// behaves like a plain view. Both count one view.
// @Summary Like or unlike a project
// @Tags Projects
// @Accept x-www-form-urlencoded
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Param action formData string false "like"
// @Success 200 {object} services.LikeResult
// @Failure 404 {object} map[string]interface{} "Project not found"
// @Router /project/{projectID} [post]
func (h projectHandler) postProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := ctxGetView(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}
		projectID, err := uuidParam(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := parseForm(w, r, 1<<20); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if r.FormValue("action") != "like" {
			detail, err := view.ViewProject(r.Context(), projectID)
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			h.responder.WriteJSON(w, detail)
			return
		}

		result, err := view.ToggleLike(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, result)
	}
}

// deleteProject deletes a project with its images, likes, inquiries and messages
// @Summary Delete project
// @Description Owners may delete their own projects, administrators any project.
// @Tags Projects
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{} "Not the owner"
// @Failure 404 {object} map[string]interface{} "Project not found"
// @Router /project/{projectID} [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := ctxGetView(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}
		projectID, err := uuidParam(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := view.DeleteProject(r.Context(), projectID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]interface{}{
			"message": "Project deleted successfully",
			"id":      projectID,
		})
	}
}

// hire sends a hiring inquiry to the project's owner
// @Summary Hire the project's owner
// @Tags Projects
// @Accept x-www-form-urlencoded
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Param hiring_for formData string false "What the hire is for"
// @Param categories formData string false "Categories"
// @Param budget formData string false "Budget"
// @Param description formData string false "Description"
// @Param note formData string false "Note"
// @Param hiring_type formData string true "Freelancing or Company"
// @Success 201 {object} models.HiringInquiry
// @Failure 400 {object} map[string]interface{} "Validation error"
// @Failure 404 {object} map[string]interface{} "Project not found"
// @Router /project/{projectID}/hire [post]
func (h projectHandler) hire() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := ctxGetView(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}
		projectID, err := uuidParam(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := parseForm(w, r, 1<<20); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		inquiry, err := view.Hire(r.Context(), projectID, services.HireForm{
			HiringFor:   r.FormValue("hiring_for"),
			Categories:  r.FormValue("categories"),
			Budget:      r.FormValue("budget"),
			Description: r.FormValue("description"),
			Note:        r.FormValue("note"),
			HiringType:  models.HiringType(r.FormValue("hiring_type")),
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, map[string]interface{}{
			"message": "Inquiry sent and appreciation added!",
			"inquiry": inquiry,
		})
	}
}
