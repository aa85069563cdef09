package services

import (
	"errors"
	"testing"
	"time"

	"github.com/rpupo63/student-portfolio-backend/errs"
	"github.com/rpupo63/student-portfolio-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthenticator(t *testing.T, f *fixture) *Authenticator {
	t.Helper()
	a, err := NewAuthenticator(f.db, "test-secret", time.Hour)
	require.NoError(t, err)
	a.now = f.clock.Now
	return a
}

func TestLoginIssuesTokenForMatchingRole(t *testing.T) {
	f := newFixture(t)
	student := f.addStudent("alice", "Alice", "Doe")
	a := newTestAuthenticator(t, f)

	res, err := a.Login(LoginForm{Username: "alice", Password: "secret-alice"}, models.RoleStudent)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, student.ID, res.User.ID)

	session, err := a.Authenticate(res.Token)
	require.NoError(t, err)
	assert.Equal(t, student.ID, session.UserID)
	assert.Equal(t, "alice", session.User.Username)
}

func TestLoginRejections(t *testing.T) {
	f := newFixture(t)
	f.addStudent("alice", "Alice", "Doe")
	a := newTestAuthenticator(t, f)

	tests := []struct {
		name     string
		form     LoginForm
		role     string
		validate bool
	}{
		{name: "unknown user", form: LoginForm{Username: "nobody", Password: "x"}, role: models.RoleStudent},
		{name: "wrong password", form: LoginForm{Username: "alice", Password: "nope"}, role: models.RoleStudent},
		{name: "student through admin login", form: LoginForm{Username: "alice", Password: "secret-alice"}, role: models.RoleAdmin},
		{name: "admin through student login", form: LoginForm{Username: "admin", Password: "secret-admin"}, role: models.RoleStudent},
		{name: "missing password", form: LoginForm{Username: "alice"}, role: models.RoleStudent, validate: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.Login(tt.form, tt.role)
			require.Error(t, err)
			if tt.validate {
				assert.True(t, errs.IsValidation(err))
				return
			}
			assert.True(t, errs.IsUnauthorized(err))
			assert.True(t, errors.Is(err, errs.ErrInvalidCredentials))
		})
	}
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	f := newFixture(t)
	f.addStudent("alice", "Alice", "Doe")
	a := newTestAuthenticator(t, f)

	_, err := a.Authenticate("")
	assert.ErrorIs(t, err, errs.ErrMissingToken)

	_, err = a.Authenticate("not-a-jwt")
	assert.ErrorIs(t, err, errs.ErrInvalidToken)

	other, err := NewAuthenticator(f.db, "another-secret", time.Hour)
	require.NoError(t, err)
	res, err := other.Login(LoginForm{Username: "alice", Password: "secret-alice"}, models.RoleStudent)
	require.NoError(t, err)
	_, err = a.Authenticate(res.Token)
	assert.ErrorIs(t, err, errs.ErrInvalidToken)
}

func TestLogoutRevokesSession(t *testing.T) {
	f := newFixture(t)
	f.addStudent("alice", "Alice", "Doe")
	a := newTestAuthenticator(t, f)

	res, err := a.Login(LoginForm{Username: "alice", Password: "secret-alice"}, models.RoleStudent)
	require.NoError(t, err)
	session, err := a.Authenticate(res.Token)
	require.NoError(t, err)

	require.NoError(t, a.Logout(session.ID))
	require.NoError(t, a.Logout(session.ID))

	_, err = a.Authenticate(res.Token)
	assert.ErrorIs(t, err, errs.ErrSessionExpired)
}

func TestExpiredSessionIsRejected(t *testing.T) {
	f := newFixture(t)
	f.addStudent("alice", "Alice", "Doe")
	a := newTestAuthenticator(t, f)

	res, err := a.Login(LoginForm{Username: "alice", Password: "secret-alice"}, models.RoleStudent)
	require.NoError(t, err)

	f.clock.Set(res.ExpiresAt.Add(time.Minute))
	_, err = a.Authenticate(res.Token)
	assert.ErrorIs(t, err, errs.ErrSessionExpired)
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	f := newFixture(t)
	a := newTestAuthenticator(t, f)

	created, err := a.EnsureAdmin("root", "pw")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = a.EnsureAdmin("root", "other")
	require.NoError(t, err)
	assert.False(t, created)

	res, err := a.Login(LoginForm{Username: "root", Password: "pw"}, models.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, res.User.IsAdmin)
}

func TestNewAuthenticatorRequiresSecret(t *testing.T) {
	_, err := NewAuthenticator(newTestDB(t), "", time.Hour)
	assert.Error(t, err)
}
