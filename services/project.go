package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rpupo63/student-portfolio-backend/database"
	"github.com/rpupo63/student-portfolio-backend/errs"
	"github.com/rpupo63/student-portfolio-backend/models"
	"gorm.io/gorm"
)

type ProjectDetail struct {
	Project   *models.Project `json:"project"`
	Owner     *models.User    `json:"owner"`
	Profile   *models.Profile `json:"profile"`
	IsLiked   bool            `json:"isLiked"`
	LikeCount int64           `json:"likeCount"`
}

// LikeResult is the like button's response. Its keys match what the site's
// like script already reads, hence snake_case.
type LikeResult struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"like_count"`
}

// StudentPortfolio is one student's public page
type StudentPortfolio struct {
	Profile    *models.Profile   `json:"profile"`
	Projects   []*models.Project `json:"projects"`
	TotalLikes int64             `json:"totalLikes"`
	TotalViews int64             `json:"totalViews"`
}

// project loads a project the user may see. Private projects of other
// students are reported as missing.
func (b *base) project(id uuid.UUID) (*models.Project, error) {
	project, err := b.db.ProjectRepo().FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFound("project")
	}
	if err != nil {
		return nil, errs.NewDatabaseError("find", "project", err)
	}
	if !b.canSee(project) {
		return nil, errs.NewNotFound("project")
	}
	return project, nil
}

// recordView counts one view of the project, the owner's own visits included
func (b *base) recordView(project *models.Project) error {
	views, err := b.db.ProjectRepo().IncrementViews(project.ID)
	if err != nil {
		return errs.NewDatabaseError("update", "project", err)
	}
	project.Views = views
	return nil
}

func (b *base) ViewProject(ctx context.Context, projectID uuid.UUID) (*ProjectDetail, error) {
	project, err := b.project(projectID)
	if err != nil {
		return nil, err
	}
	if err := b.recordView(project); err != nil {
		return nil, err
	}

	detail := &ProjectDetail{Project: project}
	if detail.Owner, err = b.db.UserRepo().FindByID(project.UserID); err != nil {
		return nil, errs.NewDatabaseError("find", "user", err)
	}
	if detail.Profile, err = b.db.ProfileRepo().FindByUserID(project.UserID); err != nil {
		return nil, errs.NewDatabaseError("find", "profile", err)
	}
	if detail.IsLiked, err = b.db.LikeRepo().Exists(project.ID, b.user.ID); err != nil {
		return nil, errs.NewDatabaseError("find", "like", err)
	}
	if detail.LikeCount, err = b.db.LikeRepo().CountForProjects(project.ID); err != nil {
		return nil, errs.NewDatabaseError("count", "likes", err)
	}
	return detail, nil
}

// ToggleLike removes the user's like if there is one and adds it otherwise.
// Losing an insert race to a concurrent toggle counts as liked.
func (b *base) ToggleLike(ctx context.Context, projectID uuid.UUID) (*LikeResult, error) {
	project, err := b.project(projectID)
	if err != nil {
		return nil, err
	}
	if err := b.recordView(project); err != nil {
		return nil, err
	}

	result := &LikeResult{}
	removed, err := b.db.LikeRepo().Delete(project.ID, b.user.ID)
	if err != nil {
		return nil, errs.NewDatabaseError("delete", "like", err)
	}
	if !removed {
		err := b.db.LikeRepo().Add(&models.Like{ProjectID: project.ID, UserID: b.user.ID, CreatedAt: b.now()})
		if err != nil && !errs.IsUniqueViolation(err) {
			return nil, errs.NewDatabaseError("create", "like", err)
		}
		result.Liked = true
	}

	if result.LikeCount, err = b.db.LikeRepo().CountForProjects(project.ID); err != nil {
		return nil, errs.NewDatabaseError("count", "likes", err)
	}
	return result, nil
}

// StudentPortfolio returns a student's profile page with like and view totals
// over the projects shown
func (b *base) StudentPortfolio(ctx context.Context, profileID uuid.UUID) (*StudentPortfolio, error) {
	profile, err := b.db.ProfileRepo().FindByID(profileID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFound("profile")
	}
	if err != nil {
		return nil, errs.NewDatabaseError("find", "profile", err)
	}

	q := database.ProjectQuery{PublicOnly: !b.seesPrivate && profile.UserID != b.user.ID}
	projects, err := b.db.ProjectRepo().ListByUser(profile.UserID, q)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "projects", err)
	}

	page := &StudentPortfolio{Profile: profile, Projects: projects}
	ids := make([]uuid.UUID, 0, len(projects))
	for _, p := range projects {
		ids = append(ids, p.ID)
		page.TotalViews += p.Views
	}
	if page.TotalLikes, err = b.db.LikeRepo().CountForProjects(ids...); err != nil {
		return nil, errs.NewDatabaseError("count", "likes", err)
	}
	return page, nil
}

// DeleteProject removes any project
func (v *adminView) DeleteProject(ctx context.Context, projectID uuid.UUID) error {
	project, err := v.project(projectID)
	if err != nil {
		return err
	}
	return v.deleteProject(ctx, project)
}

// DeleteProject removes one of the student's own projects
func (v *studentView) DeleteProject(ctx context.Context, projectID uuid.UUID) error {
	project, err := v.project(projectID)
	if err != nil {
		return err
	}
	if project.UserID != v.user.ID {
		return errs.NewForbiddenError("only the owner can delete this project")
	}
	return v.deleteProject(ctx, project)
}

func (b *base) deleteProject(ctx context.Context, project *models.Project) error {
	if err := b.db.ProjectRepo().Delete(project.ID); err != nil {
		return errs.NewDatabaseError("delete", "project", err)
	}

	refs := make([]string, 0, len(project.Images))
	for _, img := range project.Images {
		refs = append(refs, img.Image)
	}
	b.removeObjects(ctx, refs)

	b.logger.Info().Str("projectId", project.ID.String()).Str("deletedBy", b.user.Username).Msg("project deleted")
	return nil
}
