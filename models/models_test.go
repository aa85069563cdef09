package models

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func TestColumnMismatches(t *testing.T) {
	db := openTestDB(t)

	mismatches, err := ColumnMismatches(db)
	require.NoError(t, err)
	assert.Empty(t, mismatches)

	require.NoError(t, db.AutoMigrate(All()...))
	require.NoError(t, db.Exec("ALTER TABLE users ADD COLUMN last_login TEXT").Error)

	mismatches, err = ColumnMismatches(db)
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"users": {"last_login"}}, mismatches)
}

func TestProfileIncomplete(t *testing.T) {
	p := &Profile{FirstName: "Ann", LastName: "Lee"}
	assert.True(t, p.Incomplete())

	p.Avatar = "/media/profiles/a.png"
	assert.False(t, p.Incomplete())

	p.LastName = "  "
	assert.True(t, p.Incomplete())

	var none *Profile
	assert.Equal(t, " ", none.FullName())
}

func TestEnums(t *testing.T) {
	assert.True(t, VisibilityPrivate.Valid())
	assert.False(t, Visibility("Hidden").Valid())
	assert.True(t, LicenseCreativeCommons.Valid())
	assert.False(t, License("GPL").Valid())
	assert.True(t, HiringCompany.Valid())
	assert.False(t, HiringType("Volunteer").Valid())
}

func TestUUIDsAssignedOnCreate(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.AutoMigrate(All()...))

	user := &User{Username: "u", PasswordHash: "h"}
	require.NoError(t, db.Create(user).Error)
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, RoleStudent, user.Role())
}
