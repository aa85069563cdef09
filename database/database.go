package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/rpupo63/student-portfolio-backend/config"
	"github.com/rpupo63/student-portfolio-backend/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

type Database struct {
	db          *gorm.DB
	userRepo    *UserRepo
	sessionRepo *SessionRepo
	profileRepo *ProfileRepo
	projectRepo *ProjectRepo
	likeRepo    *LikeRepo
	inquiryRepo *InquiryRepo
	messageRepo *MessageRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:          db,
		userRepo:    NewUserRepo(db),
		sessionRepo: NewSessionRepo(db),
		profileRepo: NewProfileRepo(db),
		projectRepo: NewProjectRepo(db),
		likeRepo:    NewLikeRepo(db),
		inquiryRepo: NewInquiryRepo(db),
		messageRepo: NewMessageRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) SessionRepo() *SessionRepo {
	return d.sessionRepo
}

func (d Database) ProfileRepo() *ProfileRepo {
	return d.profileRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) LikeRepo() *LikeRepo {
	return d.likeRepo
}

func (d Database) InquiryRepo() *InquiryRepo {
	return d.inquiryRepo
}

func (d Database) MessageRepo() *MessageRepo {
	return d.messageRepo
}

// GetDB returns the underlying database connection
func (d Database) GetDB() *gorm.DB {
	return d.db
}

// WithContext returns a Database whose queries are bound to ctx and abort
// when it is cancelled
func (d Database) WithContext(ctx context.Context) Database {
	return New(d.db.WithContext(ctx))
}

// Transaction runs fn with a Database whose repositories all share one transaction
func (d Database) Transaction(fn func(tx Database) error) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}

// Migrate creates or updates every table
func (d Database) Migrate() error {
	return d.db.AutoMigrate(models.All()...)
}

// Open connects to postgres using the DB_* settings. Read replicas listed in
// DB_REPLICA_DSNS are registered with dbresolver so plain reads are spread over them.
func Open(c map[string]string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		config.GetString(c, "DB_HOST", "localhost"),
		config.GetString(c, "DB_USER", "postgres"),
		config.GetString(c, "DB_PASSWORD", ""),
		config.GetString(c, "DB_NAME", "portfolio"),
		config.GetString(c, "DB_PORT", "5432"),
		config.GetString(c, "DB_SSLMODE", "disable"),
	)

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             2 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  config.GetBool(c, "LOG_PRETTY", false),
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger:         newLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if replicas := config.GetList(c, "DB_REPLICA_DSNS"); len(replicas) > 0 {
		dialectors := make([]gorm.Dialector, 0, len(replicas))
		for _, replica := range replicas {
			dialectors = append(dialectors, postgres.Open(strings.TrimSpace(replica)))
		}
		if err := db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: dialectors,
			Policy:   dbresolver.RandomPolicy{},
		})); err != nil {
			return nil, fmt.Errorf("register read replicas: %w", err)
		}
	}

	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		return nil, fmt.Errorf("test database connection: %w", err)
	}

	return db, nil
}
