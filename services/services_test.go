package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/rpupo63/student-portfolio-backend/database"
	"github.com/rpupo63/student-portfolio-backend/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) database.Database {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	d := database.New(db)
	require.NoError(t, d.Migrate())
	return d
}

// newFileTestDB opens a WAL-mode database file so several connections can
// write concurrently, each waiting on the others' locks
func newFileTestDB(t *testing.T) database.Database {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(10000)",
		filepath.Join(t.TempDir(), "portfolio.db"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(8)
	t.Cleanup(func() { _ = sqlDB.Close() })

	d := database.New(db)
	require.NoError(t, d.Migrate())
	return d
}

// testClock advances one minute on every reading so rows get distinct timestamps
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Minute)
	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

type memoryStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	failPut int // the n-th Put (1-based) fails; 0 never
	puts    int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{objects: map[string][]byte{}}
}

func (s *memoryStore) Put(_ context.Context, key, _ string, body io.Reader) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.puts++
	if s.failPut > 0 && s.puts == s.failPut {
		return "", errors.New("disk full")
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	ref := "mem://" + key
	s.objects[ref] = data
	return ref, nil
}

func (s *memoryStore) Delete(_ context.Context, ref string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, ref)
	return nil
}

func (s *memoryStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

type sentEmail struct {
	subject    string
	body       string
	recipients []string
}

type fakeEmailer struct {
	sent []sentEmail
	err  error
}

func (f *fakeEmailer) SendEmail(_ context.Context, subject, body string, recipients []string) error {
	f.sent = append(f.sent, sentEmail{subject, body, recipients})
	return f.err
}

type sentSMS struct {
	to   string
	body string
}

type fakeSMS struct {
	sent []sentSMS
}

func (f *fakeSMS) SendSMS(_ context.Context, to, body string) error {
	f.sent = append(f.sent, sentSMS{to, body})
	return nil
}

// fixture is a portfolio with one administrator and helpers to add students and projects
type fixture struct {
	t     *testing.T
	db    database.Database
	store *memoryStore
	clock *testClock
	admin *models.User
	p     *Portfolio
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	f := &fixture{
		t:     t,
		db:    newTestDB(t),
		store: newMemoryStore(),
		clock: newTestClock(),
	}
	f.admin = f.addUser("admin", true)
	opts = append([]Option{WithNotifyAdmin(f.admin), WithClock(f.clock.Now)}, opts...)
	f.p = NewPortfolio(f.db, f.store, opts...)
	return f
}

func (f *fixture) addUser(username string, admin bool) *models.User {
	f.t.Helper()
	hash, err := HashPassword("secret-" + username)
	require.NoError(f.t, err)
	user := &models.User{Username: username, PasswordHash: hash, IsAdmin: admin, CreatedAt: f.clock.Now()}
	require.NoError(f.t, f.db.UserRepo().Add(user))
	return user
}

func (f *fixture) addStudent(username, first, last string) *models.User {
	f.t.Helper()
	user := f.addUser(username, false)
	profile := &models.Profile{UserID: user.ID, FirstName: first, LastName: last}
	require.NoError(f.t, f.db.GetDB().Create(profile).Error)
	return user
}

func (f *fixture) addProject(owner *models.User, title string, visibility models.Visibility) *models.Project {
	f.t.Helper()
	project := &models.Project{
		UserID:     owner.ID,
		Title:      title,
		Category:   "Design",
		Visibility: visibility,
		License:    models.LicenseMIT,
		CreatedAt:  f.clock.Now(),
		Images:     []models.ProjectImage{{Image: "mem://projects/" + uuid.NewString() + ".png"}},
	}
	require.NoError(f.t, f.db.ProjectRepo().Add(project))
	return project
}

func (f *fixture) view(user *models.User) View {
	return f.p.ViewFor(user)
}

func (f *fixture) unreadFor(user *models.User) int64 {
	f.t.Helper()
	n, err := f.db.MessageRepo().CountUnread(database.InboxFilter{RecipientID: user.ID})
	require.NoError(f.t, err)
	return n
}

func image(name string) File {
	return File{Name: name, ContentType: "image/png", Body: strings.NewReader("png:" + name)}
}
