package api

import (
	"net/http"

	"github.com/rpupo63/student-portfolio-backend/errs"
	"github.com/rpupo63/student-portfolio-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type profileHandler struct {
	responder      Responder
	logger         zerolog.Logger
	maxUploadBytes int64
}

func newProfileHandler(maxUploadBytes int64) profileHandler {
	logger := log.With().Str("handlerName", "profileHandler").Logger()

	return profileHandler{
		responder:      NewResponder(logger),
		logger:         logger,
		maxUploadBytes: maxUploadBytes,
	}
}

// @Summary Get own profile
// @Tags Profile
// @Produce json
// @Success 200 {object} models.Profile
// @Router /edit-profile [get]
func (h profileHandler) getProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := ctxGetView(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		profile, err := view.Profile(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, profile)
	}
}

// updateProfile overwrites the profile fields; profile_image is optional
// @Summary Update own profile
// @Tags Profile
// @Accept multipart/form-data
// @Produce json
// @Param first_name formData string false "First name"
// @Param last_name formData string false "Last name"
// @Param course formData string false "Course"
// @Param mobile formData string false "Mobile number"
// @Param location formData string false "Location"
// @Param address formData string false "Address"
// @Param profile_image formData file false "New avatar"
// @Success 200 {object} models.Profile
// @Failure 400 {object} map[string]interface{} "Validation error"
// @Router /edit-profile [post]
func (h profileHandler) updateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := ctxGetView(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		if err := parseForm(w, r, h.maxUploadBytes); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		avatars, closeAvatars, err := formFiles(r, "profile_image")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		defer closeAvatars()

		form := services.ProfileForm{
			FirstName: r.FormValue("first_name"),
			LastName:  r.FormValue("last_name"),
			Course:    r.FormValue("course"),
			Mobile:    r.FormValue("mobile"),
			Location:  r.FormValue("location"),
			Address:   r.FormValue("address"),
		}
		if len(avatars) > 0 {
			form.Avatar = &avatars[0]
		}

		profile, err := view.UpdateProfile(r.Context(), form)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, profile)
	}
}
