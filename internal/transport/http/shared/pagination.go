package shared

import (
	"net/http"
	"strconv"
)

type Pagination struct {
	Limit  int
	Offset int
}

func ParsePagination(r *http.Request, defaultLimit, maxLimit int) Pagination {
	limit := defaultLimit
	offset := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			offset = v
		}
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}
	return Pagination{Limit: limit, Offset: offset}
}

// Bounds clamps the window to a slice of length total.
func (p Pagination) Bounds(total int) (start, end int) {
	start = min(p.Offset, total)
	if p.Limit <= 0 {
		return start, total
	}
	return start, min(start+p.Limit, total)
}
