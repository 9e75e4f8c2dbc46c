package profile

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/inkwell-blog/core/internal/database"
	"github.com/inkwell-blog/core/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return NewService(db), db
}

func seedUser(t *testing.T, db *gorm.DB, username string) string {
	t.Helper()
	u := models.UserModel{Email: username + "@example.com", Password: "x"}
	require.NoError(t, db.Create(&u).Error)
	require.NoError(t, db.Create(&models.ProfileModel{ID: u.ID, Username: username}).Error)
	return u.ID
}

func TestGetByUsername(t *testing.T) {
	svc, db := newTestService(t)
	alice := seedUser(t, db, "alice")

	require.NoError(t, db.Create(&models.PostModel{
		Title: "P", Slug: "p", AuthorID: alice, Status: models.PostPublished,
	}).Error)
	require.NoError(t, db.Create(&models.PostModel{
		Title: "D", Slug: "d", AuthorID: alice, Status: models.PostDraft,
	}).Error)

	p, err := svc.GetByUsername("alice")
	require.NoError(t, err)
	require.Equal(t, alice, p.ID)
	require.Equal(t, int64(1), p.PostCount)

	_, err = svc.GetByUsername("nobody")
	require.ErrorIs(t, err, errNotFound)
}

func TestUpdate(t *testing.T) {
	svc, db := newTestService(t)
	alice := seedUser(t, db, "alice")
	seedUser(t, db, "bob")

	_, err := svc.Update(alice, &UpdateDTO{Username: "bob"})
	require.ErrorIs(t, err, errUsernameTaken)

	p, err := svc.Update(alice, &UpdateDTO{
		Username: "alice", FullName: "Alice L", Bio: "writes about Go", Website: "https://alice.dev",
	})
	require.NoError(t, err)
	require.Equal(t, "Alice L", p.FullName)
	require.Equal(t, "writes about Go", p.Bio)

	p, err = svc.Update(alice, &UpdateDTO{Username: "alice2"})
	require.NoError(t, err)
	require.Equal(t, "alice2", p.Username)

	_, err = svc.Update("missing", &UpdateDTO{Username: "x"})
	require.ErrorIs(t, err, errNotFound)
}
