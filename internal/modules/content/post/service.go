package post

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/inkwell-blog/core/internal/models"
	"github.com/inkwell-blog/core/internal/pkg/markdown"
	"github.com/inkwell-blog/core/internal/pkg/pagination"
	"github.com/inkwell-blog/core/internal/pkg/response"
	"github.com/inkwell-blog/core/internal/pkg/revalidate"
	slugpkg "github.com/inkwell-blog/core/internal/pkg/slug"
	"gorm.io/gorm"
)

type Service struct {
	db     *gorm.DB
	signal *revalidate.Signaler
}

func NewService(db *gorm.DB, signal *revalidate.Signaler) *Service {
	return &Service{db: db, signal: signal}
}

// uniqueSlug appends a short random suffix when the derived slug is taken
// by another post.
func (s *Service) uniqueSlug(title, excludeID string) string {
	slug := slugpkg.Make(title)
	if slug == "" {
		slug = uuid.NewString()[:8]
	}

	var count int64
	q := s.db.Model(&models.PostModel{}).Where("slug = ?", slug)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err == nil && count > 0 {
		slug = slug + "-" + uuid.NewString()[:8]
	}
	return slug
}

func defaultExcerpt(content string) string {
	runes := []rune(content)
	if len(runes) <= 200 {
		return content
	}
	return string(runes[:200]) + "..."
}

func parseStatus(raw string) (models.PostStatus, error) {
	if raw == "" {
		return models.PostDraft, nil
	}
	switch st := models.PostStatus(raw); st {
	case models.PostDraft, models.PostPublished, models.PostArchived:
		return st, nil
	default:
		return "", errInvalidStatus
	}
}

func (s *Service) resolveTags(ids []string) ([]models.TagModel, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var tags []models.TagModel
	if err := s.db.Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, err
	}
	if len(tags) != len(ids) {
		return nil, errTagNotFound
	}
	return tags, nil
}

func (s *Service) checkCategory(id *string) error {
	if id == nil || *id == "" {
		return nil
	}
	var count int64
	if err := s.db.Model(&models.CategoryModel{}).Where("id = ?", *id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errCategoryNotFound
	}
	return nil
}

func (s *Service) Create(ctx context.Context, authorID string, dto *PostDTO) (*models.PostModel, error) {
	status, err := parseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	if err := s.checkCategory(dto.CategoryID); err != nil {
		return nil, err
	}
	tags, err := s.resolveTags(dto.TagIDs)
	if err != nil {
		return nil, err
	}

	excerpt := dto.Excerpt
	if excerpt == "" {
		excerpt = defaultExcerpt(dto.Content)
	}

	post := models.PostModel{
		Title:         dto.Title,
		Slug:          s.uniqueSlug(dto.Title, ""),
		Content:       dto.Content,
		Excerpt:       excerpt,
		FeaturedImage: dto.FeaturedImage,
		Status:        status,
		AuthorID:      authorID,
		CategoryID:    normalizeCategory(dto.CategoryID),
		Tags:          tags,
	}
	if status == models.PostPublished {
		now := time.Now()
		post.PublishedAt = &now
	}

	if err := s.db.WithContext(ctx).Create(&post).Error; err != nil {
		return nil, err
	}

	s.markListsStale(ctx)
	return &post, nil
}

func (s *Service) Update(ctx context.Context, postID, callerID string, dto *PostDTO) (*models.PostModel, error) {
	var post models.PostModel
	if err := s.db.First(&post, "id = ?", postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errPostNotFound
		}
		return nil, err
	}
	if post.AuthorID != callerID {
		return nil, errNotAuthor
	}

	status, err := parseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	if err := s.checkCategory(dto.CategoryID); err != nil {
		return nil, err
	}
	tags, err := s.resolveTags(dto.TagIDs)
	if err != nil {
		return nil, err
	}

	oldSlug := post.Slug

	post.Title = dto.Title
	post.Slug = s.uniqueSlug(dto.Title, post.ID)
	post.Content = dto.Content
	post.Excerpt = dto.Excerpt
	if post.Excerpt == "" {
		post.Excerpt = defaultExcerpt(dto.Content)
	}
	post.FeaturedImage = dto.FeaturedImage
	post.Status = status
	post.CategoryID = normalizeCategory(dto.CategoryID)
	if status == models.PostPublished {
		if post.PublishedAt == nil {
			now := time.Now()
			post.PublishedAt = &now
		}
	} else {
		post.PublishedAt = nil
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		assoc := tx.Model(&post).Association("Tags")
		if len(tags) == 0 {
			if err := assoc.Clear(); err != nil {
				return err
			}
		} else if err := assoc.Replace(&tags); err != nil {
			return err
		}
		return tx.Select("title", "slug", "content", "excerpt", "featured_image",
			"status", "category_id", "published_at").Updates(&post).Error
	})
	if err != nil {
		return nil, err
	}

	s.markListsStale(ctx)
	s.signal.MarkStale(ctx, revalidate.PostView(oldSlug), revalidate.PostView(post.Slug))
	return &post, nil
}

func (s *Service) Delete(ctx context.Context, postID, callerID string) error {
	var post models.PostModel
	if err := s.db.First(&post, "id = ?", postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errPostNotFound
		}
		return err
	}
	if post.AuthorID != callerID {
		return errNotAuthor
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&post).Association("Tags").Clear(); err != nil {
			return err
		}
		if err := tx.Unscoped().Where("post_id = ?", post.ID).Delete(&models.CommentModel{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&post).Error
	})
	if err != nil {
		return err
	}

	s.markListsStale(ctx)
	s.signal.MarkStale(ctx, revalidate.PostView(post.Slug))
	return nil
}

// List returns published posts, newest first, with optional filters.
func (s *Service) List(q pagination.Query, f ListFilter) ([]models.PostModel, response.Pagination, error) {
	query := s.db.Model(&models.PostModel{}).
		Where("posts.status = ?", models.PostPublished).
		Preload("Author").Preload("Category").Preload("Tags").
		Order("published_at DESC")

	if f.CategorySlug != "" {
		query = query.Joins("JOIN categories ON categories.id = posts.category_id").
			Where("categories.slug = ?", f.CategorySlug)
	}
	if f.TagSlug != "" {
		query = query.Joins("JOIN post_tags ON post_tags.post_id = posts.id").
			Joins("JOIN tags ON tags.id = post_tags.tag_id").
			Where("tags.slug = ?", f.TagSlug)
	}
	if f.Author != "" {
		query = query.Joins("JOIN profiles ON profiles.id = posts.author_id").
			Where("profiles.username = ?", f.Author)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		query = query.Where("posts.title LIKE ? OR posts.excerpt LIKE ?", like, like)
	}

	var posts []models.PostModel
	pag, err := pagination.Paginate(query, q, &posts)
	return posts, pag, err
}

// ListMine returns the caller's own posts in any status, newest first.
func (s *Service) ListMine(q pagination.Query, callerID, status string) ([]models.PostModel, response.Pagination, error) {
	query := s.db.Model(&models.PostModel{}).
		Where("author_id = ?", callerID).
		Preload("Category").Preload("Tags").
		Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var posts []models.PostModel
	pag, err := pagination.Paginate(query, q, &posts)
	return posts, pag, err
}

// GetBySlug returns a published post for reading. Each call counts a read.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*View, error) {
	var post models.PostModel
	err := s.db.
		Where("slug = ? AND status = ?", slug, models.PostPublished).
		Preload("Author").Preload("Category").Preload("Tags").
		First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errPostNotFound
		}
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(&post).
		UpdateColumn("read_count", gorm.Expr("read_count + 1")).Error; err != nil {
		return nil, err
	}
	post.ReadCount++

	return &View{
		PostModel:   &post,
		ContentHTML: markdown.Render(post.Content),
	}, nil
}

// GetByID returns the caller's own post in any status, for editing.
func (s *Service) GetByID(postID, callerID string) (*models.PostModel, error) {
	var post models.PostModel
	err := s.db.Preload("Category").Preload("Tags").First(&post, "id = ?", postID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errPostNotFound
		}
		return nil, err
	}
	if post.AuthorID != callerID {
		return nil, errNotAuthor
	}
	return &post, nil
}

func (s *Service) markListsStale(ctx context.Context) {
	s.signal.MarkStale(ctx, revalidate.PostListView(), revalidate.DashboardView())
}

func normalizeCategory(id *string) *string {
	if id == nil || *id == "" {
		return nil
	}
	return id
}
