package services

import (
	"errors"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rpupo63/student-portfolio-backend/errs"
	"github.com/rpupo63/student-portfolio-backend/models"
)

// File is an uploaded file handed over by the transport layer
type File struct {
	Name        string
	ContentType string
	Body        io.Reader
}

// UploadForm is the student dashboard's project upload
type UploadForm struct {
	Title          string            `form:"title" validate:"required"`
	Category       string            `form:"category" validate:"required"`
	Description    string            `form:"description"`
	Tags           string            `form:"tags"`
	Visibility     models.Visibility `form:"visibility" validate:"oneof=Public Private"`
	License        models.License    `form:"license" validate:"oneof='All Rights Reserved' 'Creative Commons' MIT"`
	AllowDownloads bool              `form:"allow_downloads"`
	Images         []File            `form:"images" validate:"required,min=1"`
}

func (f *UploadForm) applyDefaults() {
	f.Title = strings.TrimSpace(f.Title)
	f.Category = strings.TrimSpace(f.Category)
	if f.Visibility == "" {
		f.Visibility = models.VisibilityPublic
	}
	if f.License == "" {
		f.License = models.LicenseAllRightsReserved
	}
}

// input echoes the text fields back so the client can re-render the form
func (f *UploadForm) input() map[string]string {
	allow := "false"
	if f.AllowDownloads {
		allow = "true"
	}
	return map[string]string{
		"title":           f.Title,
		"category":        f.Category,
		"description":     f.Description,
		"tags":            f.Tags,
		"visibility":      string(f.Visibility),
		"license":         string(f.License),
		"allow_downloads": allow,
	}
}

// ParseTags splits the free-text tag field on commas
func ParseTags(raw string) []string {
	tags := []string{}
	for _, tag := range strings.Split(raw, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// HireForm is a hiring inquiry. Description is expected but, as before, not enforced.
type HireForm struct {
	HiringFor   string            `form:"hiring_for"`
	Categories  string            `form:"categories"`
	Budget      string            `form:"budget"`
	Description string            `form:"description"`
	Note        string            `form:"note"`
	HiringType  models.HiringType `form:"hiring_type" validate:"required,oneof=Freelancing Company"`
}

func (f *HireForm) input() map[string]string {
	return map[string]string{
		"hiring_for":  f.HiringFor,
		"categories":  f.Categories,
		"budget":      f.Budget,
		"description": f.Description,
		"note":        f.Note,
		"hiring_type": string(f.HiringType),
	}
}

// ProfileForm overwrites the editable profile fields; Avatar is optional
type ProfileForm struct {
	FirstName string `form:"first_name" validate:"max=150"`
	LastName  string `form:"last_name" validate:"max=150"`
	Course    string `form:"course" validate:"max=100"`
	Mobile    string `form:"mobile" validate:"max=15"`
	Location  string `form:"location" validate:"max=100"`
	Address   string `form:"address"`
	Avatar    *File  `form:"profile_image"`
}

func (f *ProfileForm) input() map[string]string {
	return map[string]string{
		"first_name": f.FirstName,
		"last_name":  f.LastName,
		"course":     f.Course,
		"mobile":     f.Mobile,
		"location":   f.Location,
		"address":    f.Address,
	}
}

type CreateStudentForm struct {
	Username string `form:"username" validate:"required,max=150"`
	Password string `form:"password" validate:"required"`
}

type LoginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return v
}

// validateForm runs the struct tags and folds every failure into one
// errs.ValidationError. required and min failures count as missing fields.
func validateForm(form any, input map[string]string) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	v := &errs.ValidationError{Input: input}
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required", "min":
			v.AddMissing(fe.Field())
		case "oneof":
			v.AddInvalid(fe.Field(), "must be one of: "+fe.Param())
		case "max":
			v.AddInvalid(fe.Field(), "must be at most "+fe.Param()+" characters")
		default:
			v.AddInvalid(fe.Field(), "failed on "+fe.Tag())
		}
	}
	return v.OrNil()
}
