package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/inkwell-blog/core/internal/pkg/response"
	"gorm.io/gorm"
)

const (
	DefaultPage = 1
	DefaultSize = 10
	MaxSize     = 100
)

// Query holds parsed pagination parameters.
type Query struct {
	Page int
	Size int
}

// FromContext reads page/size query params, clamping them to sane bounds.
func FromContext(c *gin.Context) Query {
	q := Query{
		Page: intQuery(c, "page", DefaultPage),
		Size: intQuery(c, "size", DefaultSize),
	}
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	switch {
	case q.Size < 1:
		q.Size = DefaultSize
	case q.Size > MaxSize:
		q.Size = MaxSize
	}
	return q
}

// Paginate runs the counted, windowed query and returns page metadata.
func Paginate[T any](tx *gorm.DB, q Query, dest *[]T) (response.Pagination, error) {
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return response.Pagination{}, err
	}
	if err := tx.Limit(q.Size).Offset((q.Page - 1) * q.Size).Find(dest).Error; err != nil {
		return response.Pagination{}, err
	}

	pages := int(total / int64(q.Size))
	if total%int64(q.Size) != 0 {
		pages++
	}

	return response.Pagination{
		Total:       total,
		CurrentPage: q.Page,
		TotalPage:   pages,
		Size:        q.Size,
		HasNextPage: q.Page < pages,
	}, nil
}

func intQuery(c *gin.Context, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
