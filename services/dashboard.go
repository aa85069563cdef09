package services

import (
	"context"
	"strings"

	"github.com/rpupo63/student-portfolio-backend/database"
	"github.com/rpupo63/student-portfolio-backend/errs"
	"github.com/rpupo63/student-portfolio-backend/models"
	"golang.org/x/sync/errgroup"
)

const (
	dashboardStudents        = 3
	dashboardProjectsPerUser = 3
	dashboardMessages        = 3
)

type DashboardQuery struct {
	StudentName string
}

// MessageStats summarises the signed-in user's messages
type MessageStats struct {
	Recent      []*models.Message `json:"recentMessages"`
	UnreadCount int64             `json:"unreadCount"`
	Total       int64             `json:"totalNotifications"`
}

type Dashboard struct {
	Role     string       `json:"role"`
	Messages MessageStats `json:"messages"`

	// administrator
	Students      []StudentProjects `json:"students,omitempty"`
	TotalProjects int64             `json:"totalProjects"`
	TotalStudents int64             `json:"totalStudents,omitempty"`
	SearchName    string            `json:"searchName,omitempty"`

	// student
	Profile           *models.Profile   `json:"profile,omitempty"`
	ProfileIncomplete bool              `json:"profileIncomplete,omitempty"`
	Projects          []*models.Project `json:"projects,omitempty"`
}

// messageStats fans the three inbox queries out on g
func (b *base) messageStats(g *errgroup.Group, db database.Database, out *MessageStats) {
	f := database.InboxFilter{RecipientID: b.user.ID}
	g.Go(func() (err error) {
		out.Recent, err = db.MessageRepo().List(f, dashboardMessages)
		return
	})
	g.Go(func() (err error) {
		out.UnreadCount, err = db.MessageRepo().CountUnread(f)
		return
	})
	g.Go(func() (err error) {
		out.Total, err = db.MessageRepo().Count(f)
		return
	})
}

// Dashboard shows the most recently active students, or every student
// matching q.StudentName, each with their latest projects
func (v *adminView) Dashboard(ctx context.Context, q DashboardQuery) (*Dashboard, error) {
	search := strings.TrimSpace(q.StudentName)
	d := &Dashboard{Role: models.RoleAdmin, SearchName: search}

	g, gctx := errgroup.WithContext(ctx)
	db := v.db.WithContext(gctx)
	v.messageStats(g, db, &d.Messages)
	g.Go(func() (err error) {
		d.TotalProjects, err = db.ProjectRepo().Count()
		return
	})
	g.Go(func() (err error) {
		d.TotalStudents, err = db.UserRepo().CountStudents()
		return
	})
	g.Go(func() error {
		var users []*models.User
		var err error
		if search != "" {
			users, err = db.UserRepo().SearchStudents(search)
		} else {
			users, err = db.UserRepo().RecentlyActiveStudents(dashboardStudents)
		}
		if err != nil {
			return err
		}
		d.Students, err = v.collectStudents(db, users, database.ProjectQuery{Limit: dashboardProjectsPerUser}, true)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, errs.NewDatabaseError("load", "dashboard", err)
	}
	return d, nil
}

// Dashboard shows the student's own projects of every visibility
func (v *studentView) Dashboard(ctx context.Context, _ DashboardQuery) (*Dashboard, error) {
	profile, err := v.db.WithContext(ctx).ProfileRepo().GetOrCreate(v.user.ID)
	if err != nil {
		return nil, errs.NewDatabaseError("load", "profile", err)
	}
	d := &Dashboard{
		Role:              models.RoleStudent,
		Profile:           profile,
		ProfileIncomplete: profile.Incomplete(),
	}

	g, gctx := errgroup.WithContext(ctx)
	db := v.db.WithContext(gctx)
	v.messageStats(g, db, &d.Messages)
	g.Go(func() (err error) {
		d.Projects, err = db.ProjectRepo().ListByUser(v.user.ID, database.ProjectQuery{})
		return
	})

	if err := g.Wait(); err != nil {
		return nil, errs.NewDatabaseError("load", "dashboard", err)
	}
	d.TotalProjects = int64(len(d.Projects))
	return d, nil
}
