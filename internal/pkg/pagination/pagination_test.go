package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type row struct {
	ID   uint `gorm:"primaryKey"`
	Name string
}

func queryFor(t *testing.T, rawQuery string) Query {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return FromContext(c)
}

func TestFromContextBounds(t *testing.T) {
	q := queryFor(t, "page=0&size=-3")
	require.Equal(t, Query{Page: 1, Size: DefaultSize}, q)

	q = queryFor(t, "page=2&size=5000")
	require.Equal(t, Query{Page: 2, Size: MaxSize}, q)

	q = queryFor(t, "page=abc&size=xyz")
	require.Equal(t, Query{Page: DefaultPage, Size: DefaultSize}, q)
}

func TestPaginate(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&row{}))

	for i := 0; i < 25; i++ {
		require.NoError(t, db.Create(&row{Name: "r"}).Error)
	}

	var rows []row
	pag, err := Paginate(db.Model(&row{}), Query{Page: 2, Size: 10}, &rows)
	require.NoError(t, err)

	require.Len(t, rows, 10)
	require.Equal(t, int64(25), pag.Total)
	require.Equal(t, 3, pag.TotalPage)
	require.True(t, pag.HasNextPage)

	rows = nil
	pag, err = Paginate(db.Model(&row{}), Query{Page: 3, Size: 10}, &rows)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	require.False(t, pag.HasNextPage)
}
