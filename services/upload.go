package services

import (
	"context"
	"fmt"
	"html"

	"github.com/rpupo63/student-portfolio-backend/database"
	"github.com/rpupo63/student-portfolio-backend/errs"
	"github.com/rpupo63/student-portfolio-backend/models"
	"github.com/rpupo63/student-portfolio-backend/storage"
)

// UploadProject is only available from the student dashboard
func (v *adminView) UploadProject(ctx context.Context, form UploadForm) (*models.Project, error) {
	return nil, errs.NewInsufficientRoleError(models.RoleStudent)
}

// UploadProject stores the images, then creates the project, its images and
// the admin notification in one transaction. The uploader's profile is created
// first if missing, as on the dashboard.
func (v *studentView) UploadProject(ctx context.Context, form UploadForm) (*models.Project, error) {
	if _, err := v.db.ProfileRepo().GetOrCreate(v.user.ID); err != nil {
		return nil, errs.NewDatabaseError("load", "profile", err)
	}

	form.applyDefaults()
	if err := validateForm(&form, form.input()); err != nil {
		return nil, err
	}

	refs := make([]string, 0, len(form.Images))
	for _, img := range form.Images {
		ref, err := v.store.Put(ctx, storage.Key("projects", img.Name), img.ContentType, img.Body)
		if err != nil {
			v.removeObjects(ctx, refs)
			return nil, errs.NewInternalErrorWithCause("failed to store project image", err)
		}
		refs = append(refs, ref)
	}

	project := &models.Project{
		UserID:         v.user.ID,
		Title:          form.Title,
		Category:       form.Category,
		Description:    form.Description,
		Tags:           ParseTags(form.Tags),
		Visibility:     form.Visibility,
		License:        form.License,
		AllowDownloads: form.AllowDownloads,
		CreatedAt:      v.now(),
	}
	for _, ref := range refs {
		project.Images = append(project.Images, models.ProjectImage{Image: ref})
	}

	err := v.db.Transaction(func(tx database.Database) error {
		if err := tx.ProjectRepo().Add(project); err != nil {
			return err
		}
		if v.notifyAdmin == nil {
			v.logger.Warn().Str("projectId", project.ID.String()).Msg("no administrator to notify about upload")
			return nil
		}
		return tx.MessageRepo().Add(&models.Message{
			ProjectID:   &project.ID,
			SenderID:    v.user.ID,
			RecipientID: v.notifyAdmin.ID,
			Content:     uploadMessage(v.user.Username, project.Title),
			CreatedAt:   v.now(),
		})
	})
	if err != nil {
		v.removeObjects(ctx, refs)
		return nil, errs.NewTransactionFailedError("upload project", err)
	}

	v.logger.Info().Str("projectId", project.ID.String()).Str("username", v.user.Username).Int("images", len(refs)).Msg("project uploaded")
	v.emailUpload(ctx, project)
	return project, nil
}

func uploadMessage(username, title string) string {
	return fmt.Sprintf("%s uploaded project '%s'.", username, title)
}

func (v *studentView) emailUpload(ctx context.Context, project *models.Project) {
	if v.emailer == nil || v.adminEmail == "" {
		return
	}
	body := fmt.Sprintf("<p>%s</p><p>Category: %s</p>",
		html.EscapeString(uploadMessage(v.user.Username, project.Title)),
		html.EscapeString(project.Category))
	if err := v.emailer.SendEmail(ctx, "New project upload", body, []string{v.adminEmail}); err != nil {
		v.logger.Warn().Err(err).Str("projectId", project.ID.String()).Msg("failed to email upload notification")
	}
}
