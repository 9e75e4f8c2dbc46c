package comment

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/inkwell-blog/core/internal/config"
	"github.com/inkwell-blog/core/internal/models"
	"github.com/inkwell-blog/core/internal/pkg/pagination"
	"github.com/inkwell-blog/core/internal/pkg/response"
	"github.com/inkwell-blog/core/internal/pkg/revalidate"
	"gorm.io/gorm"
)

type Service struct {
	db     *gorm.DB
	opts   config.CommentConfig
	signal *revalidate.Signaler
}

func NewService(db *gorm.DB, opts config.CommentConfig, signal *revalidate.Signaler) *Service {
	if opts.MinLength < 1 {
		opts.MinLength = 5
	}
	if opts.MaxLength < opts.MinLength {
		opts.MaxLength = 1000
	}
	if opts.DefaultStatus != string(models.CommentPending) {
		opts.DefaultStatus = string(models.CommentApproved)
	}
	return &Service{db: db, opts: opts, signal: signal}
}

// Create validates and inserts a comment authored by authorID. The parent,
// when given, must be an existing comment on the same post.
func (s *Service) Create(ctx context.Context, authorID string, dto *CreateCommentDTO) (*models.CommentModel, error) {
	if strings.TrimSpace(authorID) == "" {
		return nil, errUnauthenticated
	}
	if s.opts.Disable {
		return nil, errDisabled
	}

	content := strings.TrimSpace(dto.Content)
	length := utf8.RuneCountInString(content)
	if length < s.opts.MinLength || length > s.opts.MaxLength {
		return nil, errContentLength
	}

	var post models.PostModel
	if err := s.db.Select("id, slug").First(&post, "id = ?", strings.TrimSpace(dto.PostID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errPostNotFound
		}
		return nil, err
	}

	if dto.ParentID != nil && strings.TrimSpace(*dto.ParentID) != "" {
		var parent models.CommentModel
		if err := s.db.Select("id, post_id").First(&parent, "id = ?", *dto.ParentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errParentNotFound
			}
			return nil, err
		}
		if parent.PostID != post.ID {
			return nil, errParentMismatch
		}
	} else {
		dto.ParentID = nil
	}

	c := models.CommentModel{
		Content:  content,
		AuthorID: authorID,
		PostID:   post.ID,
		ParentID: dto.ParentID,
		Status:   models.CommentStatus(s.opts.DefaultStatus),
	}
	if err := s.db.Create(&c).Error; err != nil {
		return nil, err
	}

	// The post listing embeds approved-comment counts, so it goes stale too.
	s.signal.MarkStale(ctx, revalidate.PostView(post.Slug), revalidate.PostListView(), revalidate.DashboardView())
	c.Author = s.loadAuthor(authorID)
	return &c, nil
}

// ListForPost returns approved top-level comments in ascending creation
// order, each with its author profile and approved replies.
func (s *Service) ListForPost(postID string) ([]models.CommentModel, error) {
	var comments []models.CommentModel
	err := s.db.
		Where("post_id = ? AND parent_id IS NULL AND status = ?", postID, models.CommentApproved).
		Order("created_at ASC").
		Preload("Author").
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Where("status = ?", models.CommentApproved).Order("created_at ASC")
		}).
		Preload("Replies.Author").
		Find(&comments).Error
	return comments, err
}

// ListBySlug is ListForPost addressed by post slug. An unknown slug yields an
// empty list, not an error.
func (s *Service) ListBySlug(slug string) ([]models.CommentModel, error) {
	postID, err := s.ResolvePostID(slug)
	if err != nil {
		return nil, err
	}
	if postID == "" {
		return []models.CommentModel{}, nil
	}
	return s.ListForPost(postID)
}

// ResolvePostID maps a post slug to its ID, "" when no such post exists.
func (s *Service) ResolvePostID(slug string) (string, error) {
	var post models.PostModel
	err := s.db.Select("id").First(&post, "slug = ?", strings.TrimSpace(slug)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return post.ID, nil
}

// CountApproved counts approved comments on a post, replies included.
func (s *Service) CountApproved(postID string) (int64, error) {
	var count int64
	err := s.db.Model(&models.CommentModel{}).
		Where("post_id = ? AND status = ?", postID, models.CommentApproved).
		Count(&count).Error
	return count, err
}

// CountApprovedBatch counts approved comments for several posts at once.
func (s *Service) CountApprovedBatch(postIDs []string) (map[string]int64, error) {
	out := make(map[string]int64, len(postIDs))
	if len(postIDs) == 0 {
		return out, nil
	}
	var rows []struct {
		PostID string
		N      int64
	}
	err := s.db.Model(&models.CommentModel{}).
		Select("post_id, COUNT(*) AS n").
		Where("post_id IN ? AND status = ?", postIDs, models.CommentApproved).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.PostID] = row.N
	}
	return out, nil
}

// Delete removes a comment and its direct replies. Only the comment's author
// may delete it.
func (s *Service) Delete(ctx context.Context, commentID, callerID string) error {
	var c models.CommentModel
	if err := s.db.First(&c, "id = ?", commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errCommentNotFound
		}
		return err
	}
	if c.AuthorID != callerID {
		return errNotAuthor
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := tx.Unscoped().Where("parent_id = ?", c.ID).Delete(&models.CommentModel{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Unscoped().Delete(&models.CommentModel{}, "id = ?", c.ID).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit().Error; err != nil {
		return err
	}

	s.invalidatePost(ctx, c.PostID)
	return nil
}

// UpdateStatus moderates a comment. Only the author of the post the comment
// sits on may change its status. Setting the current status again is a no-op.
func (s *Service) UpdateStatus(ctx context.Context, commentID, callerID, status string) (*models.CommentModel, error) {
	next := models.CommentStatus(strings.ToLower(strings.TrimSpace(status)))
	switch next {
	case models.CommentApproved, models.CommentRejected, models.CommentPending:
	default:
		return nil, errInvalidStatus
	}

	var c models.CommentModel
	if err := s.db.First(&c, "id = ?", commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errCommentNotFound
		}
		return nil, err
	}

	var post models.PostModel
	if err := s.db.Select("id, slug, author_id").First(&post, "id = ?", c.PostID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errPostNotFound
		}
		return nil, err
	}
	if post.AuthorID != callerID {
		return nil, errNotPostAuthor
	}

	if c.Status != next {
		if err := s.db.Model(&c).Update("status", next).Error; err != nil {
			return nil, err
		}
		c.Status = next
		s.signal.MarkStale(ctx, revalidate.PostView(post.Slug), revalidate.PostListView(), revalidate.DashboardView())
	}
	return &c, nil
}

// ListModeration pages through comments on posts owned by callerID, newest
// first, optionally filtered by status.
func (s *Service) ListModeration(q pagination.Query, callerID string, status string) ([]models.CommentModel, response.Pagination, error) {
	tx := s.db.Model(&models.CommentModel{}).
		Where("post_id IN (?)", s.db.Model(&models.PostModel{}).Select("id").Where("author_id = ?", callerID)).
		Preload("Author").
		Order("created_at DESC")
	if st := strings.TrimSpace(status); st != "" {
		tx = tx.Where("status = ?", st)
	}

	var comments []models.CommentModel
	pag, err := pagination.Paginate(tx, q, &comments)
	return comments, pag, err
}

func (s *Service) loadAuthor(authorID string) *models.ProfileModel {
	var p models.ProfileModel
	if err := s.db.First(&p, "id = ?", authorID).Error; err != nil {
		return nil
	}
	return &p
}

func (s *Service) invalidatePost(ctx context.Context, postID string) {
	var post models.PostModel
	if err := s.db.Select("slug").First(&post, "id = ?", postID).Error; err != nil {
		return
	}
	s.signal.MarkStale(ctx, revalidate.PostView(post.Slug), revalidate.PostListView(), revalidate.DashboardView())
}
