package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/student-portfolio-backend/models"
)

// View is what a signed-in user can do. ViewFor picks the administrator or
// student implementation once per request so handlers never branch on the role.
type View interface {
	User() *models.User
	Role() string

	Dashboard(ctx context.Context, q DashboardQuery) (*Dashboard, error)
	UploadProject(ctx context.Context, form UploadForm) (*models.Project, error)
	Projects(ctx context.Context, f ProjectFilter) ([]StudentProjects, error)
	StudentPortfolio(ctx context.Context, profileID uuid.UUID) (*StudentPortfolio, error)
	Inbox(ctx context.Context) (*Inbox, error)
	CreateStudent(ctx context.Context, form CreateStudentForm) (*models.User, error)
	DeleteProject(ctx context.Context, projectID uuid.UUID) error

	ViewProject(ctx context.Context, projectID uuid.UUID) (*ProjectDetail, error)
	ToggleLike(ctx context.Context, projectID uuid.UUID) (*LikeResult, error)
	Hire(ctx context.Context, projectID uuid.UUID, form HireForm) (*models.HiringInquiry, error)
	Profile(ctx context.Context) (*models.Profile, error)
	UpdateProfile(ctx context.Context, form ProfileForm) (*models.Profile, error)
}

// ViewFor returns the role view of user
func (p *Portfolio) ViewFor(user *models.User) View {
	b := base{Portfolio: p, user: user, seesPrivate: user.IsAdmin}
	if user.IsAdmin {
		return &adminView{b}
	}
	return &studentView{b}
}

// base carries the operations that behave the same for both roles
type base struct {
	*Portfolio
	user *models.User
	// seesPrivate grants access to other users' private projects
	seesPrivate bool
}

func (b *base) User() *models.User {
	return b.user
}

func (b *base) Role() string {
	return b.user.Role()
}

func (b *base) canSee(project *models.Project) bool {
	return b.seesPrivate || project.UserID == b.user.ID || project.Public()
}

type adminView struct {
	base
}

type studentView struct {
	base
}

var (
	_ View = (*adminView)(nil)
	_ View = (*studentView)(nil)
)
