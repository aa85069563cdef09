package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rpupo63/student-portfolio-backend/database"
	"github.com/rpupo63/student-portfolio-backend/errs"
	"github.com/rpupo63/student-portfolio-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHireRecordsInquiryMessageAndAppreciation(t *testing.T) {
	sms := &fakeSMS{}
	f := newFixture(t, WithSMS(sms))
	a := f.addStudent("A", "Ann", "Lee")
	b := f.addStudent("B", "Ben", "Kim")
	project := f.addProject(a, "Poster", models.VisibilityPublic)
	ctx := context.Background()

	profile, err := f.db.ProfileRepo().FindByUserID(a.ID)
	require.NoError(t, err)
	profile.Mobile = "+15550001"
	require.NoError(t, f.db.ProfileRepo().Update(profile))

	inquiry, err := f.view(b).Hire(ctx, project.ID, HireForm{
		HiringFor:   "Brand refresh",
		Categories:  "Logo",
		Budget:      "500",
		Description: "Need a logo",
		HiringType:  models.HiringFreelancing,
	})
	require.NoError(t, err)
	assert.Nil(t, inquiry.Note)

	inquiries, err := f.db.InquiryRepo().FindByProject(project.ID)
	require.NoError(t, err)
	require.Len(t, inquiries, 1)
	assert.Equal(t, b.ID, inquiries[0].SenderID)

	messages, err := f.db.MessageRepo().List(database.InboxFilter{RecipientID: a.ID}, 0)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "B sent a hiring inquiry for your project 'Poster'.", messages[0].Content)
	assert.Equal(t, b.ID, messages[0].SenderID)

	profile, err = f.db.ProfileRepo().FindByUserID(a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), profile.AppreciationCount)

	require.Len(t, sms.sent, 1)
	assert.Equal(t, "+15550001", sms.sent[0].to)
}

func TestHireWithoutOwnerProfile(t *testing.T) {
	sms := &fakeSMS{}
	f := newFixture(t, WithSMS(sms))
	owner := f.addUser("noprofile", false)
	project := f.addProject(owner, "Poster", models.VisibilityPublic)

	note := "call me"
	inquiry, err := f.view(f.admin).Hire(context.Background(), project.ID, HireForm{HiringType: models.HiringCompany, Note: note})
	require.NoError(t, err)
	require.NotNil(t, inquiry.Note)
	assert.Equal(t, note, *inquiry.Note)

	assert.Equal(t, int64(1), f.unreadFor(owner))
	profile, err := f.db.ProfileRepo().FindByUserID(owner.ID)
	require.NoError(t, err)
	assert.Nil(t, profile)
	assert.Empty(t, sms.sent)
}

func TestHireAfterFirstUploadCountsAppreciation(t *testing.T) {
	f := newFixture(t)
	owner := f.addUser("fresh", false)
	hirer := f.addStudent("B", "Ben", "Kim")
	ctx := context.Background()

	project, err := f.view(owner).UploadProject(ctx, UploadForm{
		Title:    "Poster",
		Category: "Print",
		Images:   []File{image("a.png")},
	})
	require.NoError(t, err)

	profile, err := f.db.ProfileRepo().FindByUserID(owner.ID)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Zero(t, profile.AppreciationCount)

	_, err = f.view(hirer).Hire(ctx, project.ID, HireForm{HiringType: models.HiringCompany})
	require.NoError(t, err)

	profile, err = f.db.ProfileRepo().FindByUserID(owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), profile.AppreciationCount)
}

func TestHireValidation(t *testing.T) {
	f := newFixture(t)
	a := f.addStudent("A", "Ann", "Lee")
	project := f.addProject(a, "Poster", models.VisibilityPublic)
	ctx := context.Background()

	_, err := f.view(f.admin).Hire(ctx, project.ID, HireForm{HiringType: "Volunteer"})
	var verr *errs.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Invalid, "hiring_type")

	_, err = f.view(f.admin).Hire(ctx, project.ID, HireForm{})
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"hiring_type"}, verr.Missing)

	_, err = f.view(f.admin).Hire(ctx, uuid.New(), HireForm{HiringType: models.HiringCompany})
	assert.True(t, errs.IsNotFound(err))

	inquiries, err := f.db.InquiryRepo().FindByProject(project.ID)
	require.NoError(t, err)
	assert.Empty(t, inquiries)
	assert.Zero(t, f.unreadFor(a))
}

func TestInquiriesAreImmutable(t *testing.T) {
	f := newFixture(t)
	a := f.addStudent("A", "Ann", "Lee")
	project := f.addProject(a, "Poster", models.VisibilityPublic)

	inquiry, err := f.view(f.admin).Hire(context.Background(), project.ID, HireForm{HiringType: models.HiringCompany})
	require.NoError(t, err)

	inquiry.Budget = "1000"
	assert.Error(t, f.db.GetDB().Save(inquiry).Error)
}
