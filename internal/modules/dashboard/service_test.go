package dashboard

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
	return u.ID
}

func seedPost(t *testing.T, db *gorm.DB, authorID, slug string, status models.PostStatus, reads int) string {
	t.Helper()
	p := models.PostModel{Title: slug, Slug: slug, AuthorID: authorID, Status: status, ReadCount: reads}
	require.NoError(t, db.Create(&p).Error)
	return p.ID
}

func TestStats(t *testing.T) {
	svc, db := newTestService(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	p1 := seedPost(t, db, alice, "p1", models.PostPublished, 10)
	seedPost(t, db, alice, "p2", models.PostDraft, 0)
	seedPost(t, db, alice, "p3", models.PostArchived, 3)
	other := seedPost(t, db, bob, "other", models.PostPublished, 99)

	require.NoError(t, db.Create(&models.CommentModel{
		Content: "valid comment", AuthorID: bob, PostID: p1, Status: models.CommentApproved,
	}).Error)
	require.NoError(t, db.Create(&models.CommentModel{
		Content: "pending one", AuthorID: bob, PostID: p1, Status: models.CommentPending,
	}).Error)
	require.NoError(t, db.Create(&models.CommentModel{
		Content: "elsewhere", AuthorID: alice, PostID: other, Status: models.CommentApproved,
	}).Error)

	stats, err := svc.Stats(alice)
	require.NoError(t, err)
	require.Equal(t, int64(3), stats.Posts.Total)
	require.Equal(t, int64(1), stats.Posts.Published)
	require.Equal(t, int64(1), stats.Posts.Draft)
	require.Equal(t, int64(1), stats.Posts.Archived)
	require.Equal(t, int64(1), stats.Comments.Approved)
	require.Equal(t, int64(1), stats.Comments.Pending)
	require.Equal(t, int64(13), stats.Reads)
}

func TestStatsEmpty(t *testing.T) {
	svc, db := newTestService(t)
	alice := seedUser(t, db, "alice")

	stats, err := svc.Stats(alice)
	require.NoError(t, err)
	require.Equal(t, int64(0), stats.Posts.Total)
	require.Equal(t, int64(0), stats.Reads)
}

func TestRecentPosts(t *testing.T) {
	svc, db := newTestService(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	for i, slug := range []string{"a", "b", "c"} {
		seedPost(t, db, alice, slug, models.PostDraft, i)
	}
	seedPost(t, db, bob, "x", models.PostPublished, 0)

	posts, err := svc.RecentPosts(alice, 2)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	for _, p := range posts {
		require.Equal(t, alice, p.AuthorID)
	}

	posts, err = svc.RecentPosts(alice, 0)
	require.NoError(t, err)
	require.Len(t, posts, 3)
}
