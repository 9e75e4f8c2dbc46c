package category

import (
	"context"
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
	return NewService(db, nil), db
}

func TestCreateAndGet(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cat, err := svc.Create(ctx, &CategoryDTO{Name: "Tech Notes", Description: "d", Color: "#336699"})
	require.NoError(t, err)
	require.Equal(t, "tech-notes", cat.Slug)

	got, err := svc.GetBySlug("tech-notes")
	require.NoError(t, err)
	require.Equal(t, cat.ID, got.ID)

	_, err = svc.GetBySlug("missing")
	require.ErrorIs(t, err, errNotFound)
}

func TestCreateRejectsDuplicateSlug(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &CategoryDTO{Name: "Tech"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &CategoryDTO{Name: "tech"})
	require.ErrorIs(t, err, errSlugTaken)
}

func TestUpdateKeepsOwnSlug(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cat, err := svc.Create(ctx, &CategoryDTO{Name: "Tech"})
	require.NoError(t, err)

	// Renaming to the same slug is not a collision with itself.
	updated, err := svc.Update(ctx, cat.ID, &CategoryDTO{Name: "Tech", Description: "updated"})
	require.NoError(t, err)
	require.Equal(t, "tech", updated.Slug)
	require.Equal(t, "updated", updated.Description)

	_, err = svc.Update(ctx, "missing", &CategoryDTO{Name: "X"})
	require.ErrorIs(t, err, errNotFound)
}

func TestDeleteDetachesPosts(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	cat, err := svc.Create(ctx, &CategoryDTO{Name: "Tech"})
	require.NoError(t, err)

	u := models.UserModel{Email: "a@example.com", Password: "x"}
	require.NoError(t, db.Create(&u).Error)
	post := models.PostModel{Title: "T", Slug: "t", AuthorID: u.ID, CategoryID: &cat.ID}
	require.NoError(t, db.Create(&post).Error)

	require.NoError(t, svc.Delete(ctx, cat.ID))
	require.ErrorIs(t, svc.Delete(ctx, cat.ID), errNotFound)

	var reloaded models.PostModel
	require.NoError(t, db.First(&reloaded, "id = ?", post.ID).Error)
	require.Nil(t, reloaded.CategoryID)
}

func TestListWithCounts(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	tech, err := svc.Create(ctx, &CategoryDTO{Name: "Tech"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &CategoryDTO{Name: "Life"})
	require.NoError(t, err)

	u := models.UserModel{Email: "a@example.com", Password: "x"}
	require.NoError(t, db.Create(&u).Error)
	require.NoError(t, db.Create(&models.PostModel{
		Title: "P", Slug: "p", AuthorID: u.ID, CategoryID: &tech.ID, Status: models.PostPublished,
	}).Error)
	require.NoError(t, db.Create(&models.PostModel{
		Title: "D", Slug: "d", AuthorID: u.ID, CategoryID: &tech.ID, Status: models.PostDraft,
	}).Error)

	items, err := svc.List()
	require.NoError(t, err)
	require.Len(t, items, 2)
	// Alphabetical: Life, Tech.
	require.Equal(t, "Life", items[0].Name)
	require.Equal(t, int64(0), items[0].PostCount)
	require.Equal(t, "Tech", items[1].Name)
	require.Equal(t, int64(1), items[1].PostCount)
}
