package dto

import (
	"math"

	"github.com/cesargomez89/praiseteam/internal/constants"
)

type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasPrev    bool `json:"has_prev"`
	HasNext    bool `json:"has_next"`
}

// NewPagination clamps page and limit into range for a result of total items.
func NewPagination(page, limit, total int) *Pagination {
	if page < 1 {
		page = constants.DefaultPage
	}
	if limit < 1 {
		limit = constants.DefaultPageSize
	}
	if limit > constants.MaxPageSize {
		limit = constants.MaxPageSize
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	if totalPages == 0 {
		totalPages = 1
	}

	return &Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}
}

// Bounds returns the slice window for the current page. Pages past the last
// one yield an empty window at the end of the result.
func (p *Pagination) Bounds() (start, end int) {
	if p.Limit < 1 || p.Page < 1 || p.Page > p.TotalPages {
		return p.Total, p.Total
	}
	start = (p.Page - 1) * p.Limit
	if start > p.Total {
		start = p.Total
	}
	end = start + p.Limit
	if end > p.Total {
		end = p.Total
	}
	return start, end
}
