package http

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
)

// PaginatedResponse wraps one page of results.
type PaginatedResponse struct {
	Count    int64   `json:"count"`
	Page     int     `json:"page"`
	PageSize int     `json:"page_size"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  any     `json:"results"`
}

// Pagination holds the page and page_size query parameters.
type Pagination struct {
	Page     int
	PageSize int
}

// Offset returns the number of rows before the page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// PaginationConfig bounds page_size.
type PaginationConfig struct {
	DefaultPageSize int
	MaxPageSize     int
}

func (pc PaginationConfig) withDefaults() PaginationConfig {
	if pc.DefaultPageSize <= 0 {
		pc.DefaultPageSize = 10
	}
	if pc.MaxPageSize <= 0 {
		pc.MaxPageSize = 100
	}
	if pc.DefaultPageSize > pc.MaxPageSize {
		pc.DefaultPageSize = pc.MaxPageSize
	}
	return pc
}

// parsePagination reads page and page_size. A page that is not a positive
// integer is answered with 404; a bad page_size falls back to the default
// and a large one is clamped.
func parsePagination(c *gin.Context, cfg PaginationConfig) (Pagination, bool) {
	cfg = cfg.withDefaults()
	p := Pagination{Page: 1, PageSize: cfg.DefaultPageSize}

	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			respondInvalidPage(c)
			return p, false
		}
		p.Page = page
	}

	if raw := c.Query("page_size"); raw != "" {
		if size, err := strconv.Atoi(raw); err == nil && size > 0 {
			p.PageSize = min(size, cfg.MaxPageSize)
		}
	}
	return p, true
}

func respondInvalidPage(c *gin.Context) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: "invalid page"})
}

// lastPage returns the number of the last page, at least 1.
func (p Pagination) lastPage(count int64) int {
	if count == 0 {
		return 1
	}
	return int((count + int64(p.PageSize) - 1) / int64(p.PageSize))
}

// newPaginatedResponse builds the envelope with absolute-path links that
// keep every other query parameter.
func newPaginatedResponse(c *gin.Context, p Pagination, count int64, results any) PaginatedResponse {
	resp := PaginatedResponse{
		Count:    count,
		Page:     p.Page,
		PageSize: p.PageSize,
		Results:  results,
	}
	if p.Page < p.lastPage(count) {
		resp.Next = pageLink(c, p.Page+1)
	}
	if p.Page > 1 {
		resp.Previous = pageLink(c, p.Page-1)
	}
	return resp
}

func pageLink(c *gin.Context, page int) *string {
	query := url.Values{}
	for key, values := range c.Request.URL.Query() {
		query[key] = values
	}
	if page == 1 {
		query.Del("page")
	} else {
		query.Set("page", strconv.Itoa(page))
	}
	link := c.Request.URL.Path
	if encoded := query.Encode(); encoded != "" {
		link += "?" + encoded
	}
	return &link
}
