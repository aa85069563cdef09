package api

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/student-portfolio-backend/errs"
	"github.com/rpupo63/student-portfolio-backend/services"
)

// multipartMemory is how much of a multipart body is buffered in memory; the
// rest spills to temporary files
const multipartMemory = 8 << 20

// parseForm reads a urlencoded or multipart body of at most maxBytes
func parseForm(w http.ResponseWriter, r *http.Request, maxBytes int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	var err error
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		err = r.ParseMultipartForm(multipartMemory)
	} else {
		err = r.ParseForm()
	}
	if err == nil {
		return nil
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return errs.NewMaxBodySizeExceededError(maxBytes)
	}
	return errs.NewMalformedPayloadError("form", err)
}

// formFiles opens every file uploaded under field. The returned function
// closes them and must be called once the files have been consumed.
func formFiles(r *http.Request, field string) ([]services.File, func(), error) {
	if r.MultipartForm == nil {
		return nil, func() {}, nil
	}

	var opened []multipart.File
	closeAll := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}

	headers := r.MultipartForm.File[field]
	files := make([]services.File, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			closeAll()
			return nil, func() {}, errs.NewMalformedPayloadError(field, err)
		}
		opened = append(opened, f)
		files = append(files, services.File{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Body:        f,
		})
	}
	return files, closeAll, nil
}

// formBool treats checkbox values ("on") and "true" as set
func formBool(r *http.Request, field string) bool {
	switch strings.ToLower(r.FormValue(field)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

// uuidParam parses the named URL parameter
func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return uuid.Nil, errs.NewBadRequestError("missing " + name)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.NewInvalidFieldError(name, "not a valid id")
	}
	return id, nil
}
