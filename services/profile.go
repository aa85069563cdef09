package services

import (
	"context"
	"strings"

	"github.com/rpupo63/student-portfolio-backend/errs"
	"github.com/rpupo63/student-portfolio-backend/models"
	"github.com/rpupo63/student-portfolio-backend/storage"
)

// Profile returns the user's profile, creating it on first access
func (b *base) Profile(ctx context.Context) (*models.Profile, error) {
	profile, err := b.db.ProfileRepo().GetOrCreate(b.user.ID)
	if err != nil {
		return nil, errs.NewDatabaseError("load", "profile", err)
	}
	return profile, nil
}

// UpdateProfile overwrites the editable fields. The avatar only changes when
// a new file is supplied; the previous image is then removed from storage.
func (b *base) UpdateProfile(ctx context.Context, form ProfileForm) (*models.Profile, error) {
	if err := validateForm(&form, form.input()); err != nil {
		return nil, err
	}

	profile, err := b.Profile(ctx)
	if err != nil {
		return nil, err
	}

	profile.FirstName = strings.TrimSpace(form.FirstName)
	profile.LastName = strings.TrimSpace(form.LastName)
	profile.Course = form.Course
	profile.Mobile = form.Mobile
	profile.Location = form.Location
	profile.Address = form.Address

	var previous string
	if form.Avatar != nil {
		ref, err := b.store.Put(ctx, storage.Key("profiles", form.Avatar.Name), form.Avatar.ContentType, form.Avatar.Body)
		if err != nil {
			return nil, errs.NewInternalErrorWithCause("failed to store profile image", err)
		}
		previous, profile.Avatar = profile.Avatar, ref
	}

	if err := b.db.ProfileRepo().Update(profile); err != nil {
		if form.Avatar != nil {
			b.removeObjects(ctx, []string{profile.Avatar})
		}
		return nil, errs.NewDatabaseError("update", "profile", err)
	}
	if previous != "" {
		b.removeObjects(ctx, []string{previous})
	}
	return profile, nil
}

// CreateStudent adds a non-admin account
func (v *adminView) CreateStudent(ctx context.Context, form CreateStudentForm) (*models.User, error) {
	form.Username = strings.TrimSpace(form.Username)
	if err := validateForm(&form, map[string]string{"username": form.Username}); err != nil {
		return nil, err
	}

	exists, err := v.db.UserRepo().ExistsByUsername(form.Username)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "user", err)
	}
	if exists {
		return nil, errs.NewConflictError("Username already exists!")
	}

	hash, err := HashPassword(form.Password)
	if err != nil {
		return nil, errs.NewInternalErrorWithCause("failed to hash password", err)
	}
	user := &models.User{Username: form.Username, PasswordHash: hash, CreatedAt: v.now()}
	if err := v.db.UserRepo().Add(user); err != nil {
		return nil, errs.NewDatabaseError("create", "user", err)
	}

	v.logger.Info().Str("username", user.Username).Str("createdBy", v.user.Username).Msg("student created")
	return user, nil
}

func (v *studentView) CreateStudent(ctx context.Context, form CreateStudentForm) (*models.User, error) {
	return nil, errs.NewInsufficientRoleError(models.RoleAdmin)
}
