package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/student-portfolio-backend/database"
	"github.com/rpupo63/student-portfolio-backend/errs"
	"github.com/rpupo63/student-portfolio-backend/models"
)

// ProjectFilter holds the raw listing parameters as they arrive in the query string
type ProjectFilter struct {
	Name       string
	Project    string
	Sort       string
	RecentDays string
}

// StudentProjects groups a student's projects under their account and profile.
// Profile is nil for students who never opened their profile.
type StudentProjects struct {
	User     *models.User      `json:"user"`
	Profile  *models.Profile   `json:"profile"`
	Projects []*models.Project `json:"projects"`
}

// query turns the filter into a repository query. recent_days is only honoured
// when it is a plain non-negative integer.
func (f ProjectFilter) query(now time.Time) database.ProjectQuery {
	q := database.ProjectQuery{
		TitleContains: strings.TrimSpace(f.Project),
		Ascending:     f.Sort == "asc",
	}
	if days, ok := parseDays(strings.TrimSpace(f.RecentDays)); ok {
		since := now.AddDate(0, 0, -days)
		q.CreatedSince = &since
	}
	return q
}

func parseDays(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	days, err := strconv.Atoi(s)
	return days, err == nil
}

// collectStudents loads the projects matching q for each user, keeping the
// order of users. Users left without projects are dropped unless keepEmpty.
func (b *base) collectStudents(db database.Database, users []*models.User, q database.ProjectQuery, keepEmpty bool) ([]StudentProjects, error) {
	profiles, err := db.ProfileRepo().FindByUserIDs(userIDs(users))
	if err != nil {
		return nil, err
	}

	out := make([]StudentProjects, 0, len(users))
	for _, u := range users {
		projects, err := db.ProjectRepo().ListByUser(u.ID, q)
		if err != nil {
			return nil, err
		}
		if len(projects) == 0 && !keepEmpty {
			continue
		}
		out = append(out, StudentProjects{User: u, Profile: profiles[u.ID], Projects: projects})
	}
	return out, nil
}

// Projects lists every student's projects of any visibility. Name matches
// against "first last"; students without a match or without projects are skipped.
func (v *adminView) Projects(ctx context.Context, f ProjectFilter) ([]StudentProjects, error) {
	db := v.db.WithContext(ctx)
	students, err := db.UserRepo().FindStudents()
	if err != nil {
		return nil, errs.NewDatabaseError("list", "students", err)
	}

	if name := strings.ToLower(strings.TrimSpace(f.Name)); name != "" {
		profiles, err := db.ProfileRepo().FindByUserIDs(userIDs(students))
		if err != nil {
			return nil, errs.NewDatabaseError("list", "profiles", err)
		}
		matched := students[:0:0]
		for _, s := range students {
			if strings.Contains(strings.ToLower(profiles[s.ID].FullName()), name) {
				matched = append(matched, s)
			}
		}
		students = matched
	}

	out, err := v.collectStudents(db, students, f.query(v.now()), false)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "projects", err)
	}
	return out, nil
}

// Projects lists the student's own projects first, then the public projects
// of every other student. Filters do not apply.
func (v *studentView) Projects(ctx context.Context, _ ProjectFilter) ([]StudentProjects, error) {
	db := v.db.WithContext(ctx)
	if _, err := db.ProfileRepo().GetOrCreate(v.user.ID); err != nil {
		return nil, errs.NewDatabaseError("load", "profile", err)
	}

	own, err := v.collectStudents(db, []*models.User{v.user}, database.ProjectQuery{}, false)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "projects", err)
	}

	students, err := db.UserRepo().FindStudents()
	if err != nil {
		return nil, errs.NewDatabaseError("list", "students", err)
	}
	others := students[:0:0]
	for _, s := range students {
		if s.ID != v.user.ID {
			others = append(others, s)
		}
	}

	public, err := v.collectStudents(db, others, database.ProjectQuery{PublicOnly: true}, false)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "projects", err)
	}
	return append(own, public...), nil
}

func userIDs(users []*models.User) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return ids
}
