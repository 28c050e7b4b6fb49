package helpers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ParsePage reads page/page_size query parameters and converts them into a
// limit/offset window. Out-of-range values fall back to defaults.
func ParsePage(c *gin.Context) (limit, offset int32) {
	page := 1
	if v := c.Query("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}

	size := DefaultPageSize
	if v := c.Query("page_size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			size = n
		}
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	return int32(size), int32((page - 1) * size)
}
