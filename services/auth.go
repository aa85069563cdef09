package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/student-portfolio-backend/database"
	"github.com/rpupo63/student-portfolio-backend/errs"
	"github.com/rpupo63/student-portfolio-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Authenticator checks credentials and issues JWTs that point at server-side sessions
type Authenticator struct {
	db     database.Database
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	logger zerolog.Logger
}

type sessionClaims struct {
	Admin bool `json:"admin"`
	jwt.RegisteredClaims
}

// LoginResult is returned on a successful login
type LoginResult struct {
	Token     string       `json:"accessToken"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      *models.User `json:"user"`
}

func NewAuthenticator(db database.Database, secret string, ttl time.Duration) (*Authenticator, error) {
	if secret == "" {
		return nil, errors.New("JWT secret is required")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Authenticator{
		db:     db,
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
		logger: log.With().Str("service", "auth").Logger(),
	}, nil
}

// HashPassword returns the bcrypt hash stored for a password
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Login verifies the credentials for the given role entry point. Unknown users,
// wrong passwords and accounts of the other role all fail the same way.
func (a *Authenticator) Login(form LoginForm, role string) (*LoginResult, error) {
	if err := validateForm(&form, map[string]string{"username": form.Username}); err != nil {
		return nil, err
	}

	user, err := a.db.UserRepo().FindByUsername(form.Username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewInvalidCredentialsError(role)
	}
	if err != nil {
		return nil, errs.NewDatabaseError("find", "user", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(form.Password)) != nil {
		return nil, errs.NewInvalidCredentialsError(role)
	}
	if user.Role() != role {
		a.logger.Info().Str("username", user.Username).Str("entryPoint", role).Msg("rejected login through the other role's entry point")
		return nil, errs.NewInvalidCredentialsError(role)
	}

	issuedAt := a.now()
	session := &models.Session{
		UserID:    user.ID,
		ExpiresAt: issuedAt.Add(a.ttl),
	}
	if err := a.db.SessionRepo().Add(session); err != nil {
		return nil, errs.NewDatabaseError("create", "session", err)
	}

	claims := sessionClaims{
		Admin: user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.ID.String(),
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return nil, errs.NewInternalErrorWithCause("failed to sign access token", err)
	}

	return &LoginResult{Token: token, ExpiresAt: session.ExpiresAt, User: user}, nil
}

// Authenticate resolves a bearer token to its live session (with user loaded)
func (a *Authenticator) Authenticate(token string) (*models.Session, error) {
	if token == "" {
		return nil, errs.NewMissingTokenError()
	}

	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(a.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errs.NewSessionExpiredError()
		}
		return nil, errs.NewInvalidTokenError(err)
	}
	if !parsed.Valid {
		return nil, errs.NewInvalidTokenError(nil)
	}

	sessionID, err := uuid.Parse(claims.ID)
	if err != nil {
		return nil, errs.NewInvalidTokenError(err)
	}

	session, err := a.db.SessionRepo().FindByID(sessionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewSessionExpiredError()
	}
	if err != nil {
		return nil, errs.NewDatabaseError("find", "session", err)
	}
	if !session.Active(a.now()) || session.User == nil {
		return nil, errs.NewSessionExpiredError()
	}
	if session.User.ID.String() != claims.Subject || session.User.IsAdmin != claims.Admin {
		return nil, errs.NewInvalidTokenError(errors.New("token role no longer matches account"))
	}

	return session, nil
}

// Logout revokes the session; logging out twice is not an error
func (a *Authenticator) Logout(sessionID uuid.UUID) error {
	if err := a.db.SessionRepo().Revoke(sessionID, a.now()); err != nil {
		return errs.NewDatabaseError("revoke", "session", err)
	}
	return nil
}

// EnsureAdmin creates the bootstrap administrator when it does not exist yet.
// It reports whether an account was created.
func (a *Authenticator) EnsureAdmin(username, password string) (bool, error) {
	exists, err := a.db.UserRepo().ExistsByUsername(username)
	if err != nil || exists {
		return false, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return false, err
	}
	if err := a.db.UserRepo().Add(&models.User{Username: username, PasswordHash: hash, IsAdmin: true}); err != nil {
		return false, err
	}
	a.logger.Info().Str("username", username).Msg("created bootstrap administrator")
	return true, nil
}
