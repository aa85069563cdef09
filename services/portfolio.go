package services

import (
	"context"
	"errors"
	"time"

	"github.com/rpupo63/student-portfolio-backend/database"
	"github.com/rpupo63/student-portfolio-backend/models"
	"github.com/rpupo63/student-portfolio-backend/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Portfolio holds everything the role views need: stores, object storage and
// the optional out-of-band notifiers
type Portfolio struct {
	db          database.Database
	store       storage.Store
	logger      zerolog.Logger
	notifyAdmin *models.User
	emailer     EmailSender
	adminEmail  string
	sms         SMSSender
	now         func() time.Time
}

type Option func(*Portfolio)

// WithNotifyAdmin sets the account that receives upload notifications
func WithNotifyAdmin(admin *models.User) Option {
	return func(p *Portfolio) {
		p.notifyAdmin = admin
	}
}

// WithEmailer mails adminEmail whenever a project is uploaded
func WithEmailer(emailer EmailSender, adminEmail string) Option {
	return func(p *Portfolio) {
		p.emailer = emailer
		p.adminEmail = adminEmail
	}
}

// WithSMS texts project owners when they receive a hiring inquiry
func WithSMS(sms SMSSender) Option {
	return func(p *Portfolio) {
		p.sms = sms
	}
}

func WithClock(now func() time.Time) Option {
	return func(p *Portfolio) {
		p.now = now
	}
}

func NewPortfolio(db database.Database, store storage.Store, opts ...Option) *Portfolio {
	p := &Portfolio{
		db:     db,
		store:  store,
		logger: log.With().Str("service", "portfolio").Logger(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NotifyAdmin returns the configured notification recipient, if any
func (p *Portfolio) NotifyAdmin() *models.User {
	return p.notifyAdmin
}

// ResolveNotifyAdmin picks the upload notification recipient once at startup:
// the named admin when username is set, otherwise the oldest admin account.
// It returns nil without error when no admin exists.
func ResolveNotifyAdmin(db database.Database, username string) (*models.User, error) {
	if username != "" {
		user, err := db.UserRepo().FindByUsername(username)
		if err != nil {
			return nil, err
		}
		if !user.IsAdmin {
			return nil, errors.New("NOTIFY_ADMIN_USERNAME does not name an administrator")
		}
		return user, nil
	}

	user, err := db.UserRepo().FirstAdmin()
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return user, err
}

// removeObjects deletes stored images after a failed or completed delete; failures are only logged
func (p *Portfolio) removeObjects(ctx context.Context, refs []string) {
	for _, ref := range refs {
		if err := p.store.Delete(ctx, ref); err != nil {
			p.logger.Warn().Err(err).Str("ref", ref).Msg("failed to remove stored object")
		}
	}
}
