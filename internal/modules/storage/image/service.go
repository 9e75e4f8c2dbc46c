package image

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/inkwell-blog/core/internal/models"
	"github.com/inkwell-blog/core/internal/pkg/pagination"
	"github.com/inkwell-blog/core/internal/pkg/response"
	"github.com/inkwell-blog/core/internal/pkg/revalidate"
	"gorm.io/gorm"
)

var (
	errNotImage = errors.New("not an image upload")
	errTooLarge = errors.New("upload exceeds size limit")
	errNotFound = errors.New("image not found")
	errNotOwner = errors.New("caller does not own the image")
)

type Service struct {
	db       *gorm.DB
	store    objectStore
	signal   *revalidate.Signaler
	maxBytes int64
}

func NewService(db *gorm.DB, store objectStore, signal *revalidate.Signaler, maxBytes int64) *Service {
	if maxBytes <= 0 {
		maxBytes = 5 << 20
	}
	return &Service{db: db, store: store, signal: signal, maxBytes: maxBytes}
}

// objectKey namespaces uploads per owner so gallery listings and bucket
// policies can filter by prefix.
func objectKey(ownerID, fileName string) string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)

	ext := strings.ToLower(filepath.Ext(fileName))
	return fmt.Sprintf("%s/%s-%d%s", ownerID, hex.EncodeToString(b), time.Now().UnixMilli(), ext)
}

func (s *Service) Upload(ctx context.Context, ownerID, fileName, contentType string, payload []byte) (*models.ImageModel, error) {
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if !strings.HasPrefix(contentType, "image/") {
		return nil, errNotImage
	}
	if int64(len(payload)) > s.maxBytes {
		return nil, errTooLarge
	}

	key := objectKey(ownerID, fileName)
	if err := s.store.Put(ctx, key, payload, contentType); err != nil {
		return nil, err
	}

	img := models.ImageModel{
		OwnerID:     ownerID,
		FileName:    filepath.Base(fileName),
		ObjectKey:   key,
		URL:         s.store.PublicURL(key),
		Size:        int64(len(payload)),
		ContentType: contentType,
	}
	if err := s.db.WithContext(ctx).Create(&img).Error; err != nil {
		// The row is the source of truth; an orphaned object is cleaned
		// up here rather than left behind.
		_ = s.store.Delete(ctx, key)
		return nil, err
	}

	s.signal.MarkStale(ctx, revalidate.GalleryView(ownerID))
	return &img, nil
}

// Gallery lists the owner's uploads, newest first.
func (s *Service) Gallery(q pagination.Query, ownerID string) ([]models.ImageModel, response.Pagination, error) {
	query := s.db.Model(&models.ImageModel{}).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC")

	var images []models.ImageModel
	pag, err := pagination.Paginate(query, q, &images)
	return images, pag, err
}

func (s *Service) Delete(ctx context.Context, imageID, callerID string) error {
	var img models.ImageModel
	if err := s.db.First(&img, "id = ?", imageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errNotFound
		}
		return err
	}
	if img.OwnerID != callerID {
		return errNotOwner
	}

	if err := s.store.Delete(ctx, img.ObjectKey); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Unscoped().Delete(&img).Error; err != nil {
		return err
	}

	s.signal.MarkStale(ctx, revalidate.GalleryView(callerID))
	return nil
}
