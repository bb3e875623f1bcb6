package pagination

import (
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Pagination holds pagination parameters and metadata
type Pagination struct {
	Limit    int   `json:"limit"`
	Offset   int   `json:"offset"`
	Page     int   `json:"page"`
	MaxLimit int   `json:"maxLimit"`
	Total    int64 `json:"total,omitempty"`
}

// ParsePagination reads query params `limit` and `page` and enforces max limit from env `MAX_LIMIT`.
// Defaults: limit=25, maxLimit=1000 (if env absent)
func ParsePagination(c *gin.Context) Pagination {
	defaultLimit := 25
	maxLimit := 1000

	if ml := os.Getenv("MAX_LIMIT"); ml != "" {
		if v, err := strconv.Atoi(ml); err == nil && v > 0 {
			maxLimit = v
		}
	}

	limit := defaultLimit
	if ls := c.Query("limit"); ls != "" {
		v, err := strconv.Atoi(ls)
		if err != nil || v <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": "invalid limit parameter"})
			c.Abort()
			return Pagination{}
		}
		limit = v
	}

	if limit > maxLimit {
		limit = maxLimit
	}

	page := 1
	if ps := c.Query("page"); ps != "" {
		v, err := strconv.Atoi(ps)
		if err != nil || v <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": "invalid page parameter"})
			c.Abort()
			return Pagination{}
		}
		page = v
	}

	return Pagination{Limit: limit, Offset: (page - 1) * limit, Page: page, MaxLimit: maxLimit}
}

// Envelope membungkus hasil list dengan metadata pagination.
func Envelope(data interface{}, total int64, p Pagination) gin.H {
	return gin.H{
		"data": data,
		"pagination": gin.H{
			"total":     total,
			"limit":     p.Limit,
			"page":      p.Page,
			"max_limit": p.MaxLimit,
		},
	}
}
