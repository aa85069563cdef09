package services

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/rpupo63/student-portfolio-backend/errs"
	"github.com/rpupo63/student-portfolio-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewProjectCountsEveryVisit(t *testing.T) {
	f := newFixture(t)
	owner := f.addStudent("owner", "Own", "Er")
	visitor := f.addStudent("visitor", "Vis", "Itor")
	project := f.addProject(owner, "Poster", models.VisibilityPublic)
	ctx := context.Background()

	detail, err := f.view(visitor).ViewProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), detail.Project.Views)
	assert.Equal(t, "owner", detail.Owner.Username)
	assert.Equal(t, "Own", detail.Profile.FirstName)
	assert.False(t, detail.IsLiked)
	assert.Len(t, detail.Project.Images, 1)

	detail, err = f.view(owner).ViewProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), detail.Project.Views)

	_, err = f.view(visitor).ToggleLike(ctx, project.ID)
	require.NoError(t, err)

	stored, err := f.db.ProjectRepo().FindByID(project.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stored.Views)
}

func TestToggleLikeAlternates(t *testing.T) {
	f := newFixture(t)
	owner := f.addStudent("owner", "Own", "Er")
	fan := f.addStudent("fan", "F", "An")
	project := f.addProject(owner, "Poster", models.VisibilityPublic)
	ctx := context.Background()

	want := []bool{true, false, true, false}
	for i, liked := range want {
		res, err := f.view(fan).ToggleLike(ctx, project.ID)
		require.NoError(t, err)
		assert.Equal(t, liked, res.Liked, "toggle %d", i)
		if liked {
			assert.Equal(t, int64(1), res.LikeCount)
		} else {
			assert.Zero(t, res.LikeCount)
		}
	}

	res, err := f.view(fan).ToggleLike(ctx, project.ID)
	require.NoError(t, err)
	require.True(t, res.Liked)
	res, err = f.view(f.admin).ToggleLike(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.LikeCount)

	detail, err := f.view(fan).ViewProject(ctx, project.ID)
	require.NoError(t, err)
	assert.True(t, detail.IsLiked)
	assert.Equal(t, int64(2), detail.LikeCount)
}

func TestDuplicateLikeInsertIsIgnored(t *testing.T) {
	f := newFixture(t)
	owner := f.addStudent("owner", "Own", "Er")
	project := f.addProject(owner, "Poster", models.VisibilityPublic)

	require.NoError(t, f.db.LikeRepo().Add(&models.Like{ProjectID: project.ID, UserID: f.admin.ID}))
	err := f.db.LikeRepo().Add(&models.Like{ProjectID: project.ID, UserID: f.admin.ID})
	require.Error(t, err)
	assert.True(t, errs.IsUniqueViolation(err))
}

func TestConcurrentToggleLike(t *testing.T) {
	const toggles = 40

	db := newFileTestDB(t)
	clock := newTestClock()
	owner := &models.User{Username: "owner", PasswordHash: "x", CreatedAt: clock.Now()}
	fan := &models.User{Username: "fan", PasswordHash: "x", CreatedAt: clock.Now()}
	require.NoError(t, db.UserRepo().Add(owner))
	require.NoError(t, db.UserRepo().Add(fan))
	project := &models.Project{
		UserID:     owner.ID,
		Title:      "Poster",
		Category:   "Print",
		Visibility: models.VisibilityPublic,
		License:    models.LicenseMIT,
		CreatedAt:  clock.Now(),
	}
	require.NoError(t, db.ProjectRepo().Add(project))

	view := NewPortfolio(db, newMemoryStore(), WithClock(clock.Now)).ViewFor(fan)

	var wg sync.WaitGroup
	errc := make(chan error, toggles)
	for i := 0; i < toggles; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := view.ToggleLike(context.Background(), project.ID); err != nil {
				errc <- err
			}
		}()
	}
	wg.Wait()
	close(errc)
	for err := range errc {
		assert.NoError(t, err)
	}

	likes, err := db.LikeRepo().CountForProjects(project.ID)
	require.NoError(t, err)
	assert.LessOrEqual(t, likes, int64(1))

	stored, err := db.ProjectRepo().FindByID(project.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(toggles), stored.Views)
}

func TestPrivateProjectHiddenFromOtherStudents(t *testing.T) {
	f := newFixture(t)
	owner := f.addStudent("owner", "Own", "Er")
	other := f.addStudent("other", "Oth", "Er")
	project := f.addProject(owner, "Secret", models.VisibilityPrivate)
	ctx := context.Background()

	_, err := f.view(other).ViewProject(ctx, project.ID)
	assert.True(t, errs.IsNotFound(err))
	_, err = f.view(other).ToggleLike(ctx, project.ID)
	assert.True(t, errs.IsNotFound(err))

	stored, err := f.db.ProjectRepo().FindByID(project.ID)
	require.NoError(t, err)
	assert.Zero(t, stored.Views)

	_, err = f.view(owner).ViewProject(ctx, project.ID)
	require.NoError(t, err)
	_, err = f.view(f.admin).ViewProject(ctx, project.ID)
	require.NoError(t, err)
}

func TestViewUnknownProject(t *testing.T) {
	f := newFixture(t)
	_, err := f.view(f.admin).ViewProject(context.Background(), uuid.New())
	assert.True(t, errs.IsNotFound(err))
}

func TestDeleteProject(t *testing.T) {
	f := newFixture(t)
	owner := f.addStudent("owner", "Own", "Er")
	other := f.addStudent("other", "Oth", "Er")
	ctx := context.Background()

	project, err := f.view(owner).UploadProject(ctx, UploadForm{Title: "Poster", Category: "Art", Images: []File{image("a.png"), image("b.png")}})
	require.NoError(t, err)
	_, err = f.view(other).ToggleLike(ctx, project.ID)
	require.NoError(t, err)
	_, err = f.view(other).Hire(ctx, project.ID, HireForm{HiringFor: "job", HiringType: models.HiringCompany})
	require.NoError(t, err)

	err = f.view(other).DeleteProject(ctx, project.ID)
	assert.True(t, errs.IsForbidden(err))

	require.NoError(t, f.view(owner).DeleteProject(ctx, project.ID))
	assert.Zero(t, f.store.len())

	_, err = f.db.ProjectRepo().FindByID(project.ID)
	assert.Error(t, err)
	inquiries, err := f.db.InquiryRepo().FindByProject(project.ID)
	require.NoError(t, err)
	assert.Empty(t, inquiries)
	likes, err := f.db.LikeRepo().CountForProjects(project.ID)
	require.NoError(t, err)
	assert.Zero(t, likes)

	second := f.addProject(other, "Other", models.VisibilityPrivate)
	require.NoError(t, f.view(f.admin).DeleteProject(ctx, second.ID))
	assert.True(t, errs.IsNotFound(f.view(f.admin).DeleteProject(ctx, second.ID)))
}

func TestStudentPortfolioTotals(t *testing.T) {
	f := newFixture(t)
	owner := f.addStudent("owner", "Own", "Er")
	other := f.addStudent("other", "Oth", "Er")
	public := f.addProject(owner, "Public", models.VisibilityPublic)
	private := f.addProject(owner, "Private", models.VisibilityPrivate)
	ctx := context.Background()

	_, err := f.view(other).ToggleLike(ctx, public.ID)
	require.NoError(t, err)
	_, err = f.view(owner).ToggleLike(ctx, private.ID)
	require.NoError(t, err)
	_, err = f.view(owner).ViewProject(ctx, private.ID)
	require.NoError(t, err)

	profile, err := f.db.ProfileRepo().FindByUserID(owner.ID)
	require.NoError(t, err)

	page, err := f.view(other).StudentPortfolio(ctx, profile.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Public"}, titles(page.Projects))
	assert.Equal(t, int64(1), page.TotalLikes)
	assert.Equal(t, int64(1), page.TotalViews)

	page, err = f.view(owner).StudentPortfolio(ctx, profile.ID)
	require.NoError(t, err)
	assert.Len(t, page.Projects, 2)
	assert.Equal(t, int64(2), page.TotalLikes)
	assert.Equal(t, int64(3), page.TotalViews)

	page, err = f.view(f.admin).StudentPortfolio(ctx, profile.ID)
	require.NoError(t, err)
	assert.Len(t, page.Projects, 2)
	assert.Equal(t, "owner", page.Profile.User.Username)

	_, err = f.view(f.admin).StudentPortfolio(ctx, uuid.New())
	assert.True(t, errs.IsNotFound(err))
}
