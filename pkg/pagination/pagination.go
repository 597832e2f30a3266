package pagination

import (
	"net/url"
	"strconv"
)

// PageRequest represents a client request for a window of records.
type PageRequest struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// Normalize adjusts the request to ensure valid pagination values based on the config.
func (r *PageRequest) Normalize(cfg Config) {
	if r.Limit < 1 {
		r.Limit = cfg.DefaultLimit
	}
	if r.Limit > cfg.MaxLimit {
		r.Limit = cfg.MaxLimit
	}
	if r.Offset < 0 {
		r.Offset = 0
	}
}

// PageRequestFromQuery parses the limit and offset parameters from URL query values.
// Unparseable values fall back to the configured defaults.
func PageRequestFromQuery(values url.Values, cfg Config) PageRequest {
	limit, _ := strconv.Atoi(values.Get("limit"))
	offset, _ := strconv.Atoi(values.Get("offset"))

	req := PageRequest{
		Limit:  limit,
		Offset: offset,
	}

	req.Normalize(cfg)
	return req
}

// PageResult holds a window of records along with pagination metadata.
type PageResult[T any] struct {
	Data   []T `json:"data"`
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// NewPageResult creates a PageResult for the given request, never carrying a nil slice.
func NewPageResult[T any](data []T, total int, req PageRequest) PageResult[T] {
	if data == nil {
		data = []T{}
	}

	return PageResult[T]{
		Data:   data,
		Total:  total,
		Limit:  req.Limit,
		Offset: req.Offset,
	}
}
