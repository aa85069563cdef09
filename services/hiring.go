package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rpupo63/student-portfolio-backend/database"
	"github.com/rpupo63/student-portfolio-backend/errs"
	"github.com/rpupo63/student-portfolio-backend/models"
)

// Hire records a hiring inquiry for the project, messages its owner and adds
// one to the owner's appreciation counter, all in one transaction. Owners
// without a profile simply receive no appreciation.
func (b *base) Hire(ctx context.Context, projectID uuid.UUID, form HireForm) (*models.HiringInquiry, error) {
	project, err := b.project(projectID)
	if err != nil {
		return nil, err
	}
	if err := validateForm(&form, form.input()); err != nil {
		return nil, err
	}

	inquiry := &models.HiringInquiry{
		ProjectID:   project.ID,
		SenderID:    b.user.ID,
		HiringFor:   form.HiringFor,
		Categories:  form.Categories,
		Budget:      form.Budget,
		Description: form.Description,
		HiringType:  form.HiringType,
		CreatedAt:   b.now(),
	}
	if note := strings.TrimSpace(form.Note); note != "" {
		inquiry.Note = &note
	}

	var owner *models.Profile
	err = b.db.Transaction(func(tx database.Database) error {
		if err := tx.InquiryRepo().Add(inquiry); err != nil {
			return err
		}
		if err := tx.MessageRepo().Add(&models.Message{
			ProjectID:   &project.ID,
			SenderID:    b.user.ID,
			RecipientID: project.UserID,
			Content:     hireMessage(b.user.Username, project.Title),
			CreatedAt:   b.now(),
		}); err != nil {
			return err
		}

		appreciated, err := tx.ProfileRepo().IncrementAppreciation(project.UserID)
		if err != nil {
			return err
		}
		if !appreciated {
			b.logger.Debug().Str("ownerId", project.UserID.String()).Msg("project owner has no profile, appreciation skipped")
			return nil
		}
		owner, err = tx.ProfileRepo().FindByUserID(project.UserID)
		return err
	})
	if err != nil {
		return nil, errs.NewTransactionFailedError("hiring inquiry", err)
	}

	b.logger.Info().Str("projectId", project.ID.String()).Str("sender", b.user.Username).Str("hiringType", string(inquiry.HiringType)).Msg("hiring inquiry sent")
	b.textOwner(ctx, owner, project)
	return inquiry, nil
}

func hireMessage(username, title string) string {
	return fmt.Sprintf("%s sent a hiring inquiry for your project '%s'.", username, title)
}

func (b *base) textOwner(ctx context.Context, owner *models.Profile, project *models.Project) {
	if b.sms == nil || owner == nil || owner.Mobile == "" {
		return
	}
	if err := b.sms.SendSMS(ctx, owner.Mobile, hireMessage(b.user.Username, project.Title)); err != nil {
		b.logger.Warn().Err(err).Str("projectId", project.ID.String()).Msg("failed to text hiring inquiry")
	}
}
