package domain

import (
	"fmt"
	"math"
	"strings"
)

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// Order sorts on one entity property.
type Order struct {
	Property  string    `json:"property"`
	Direction Direction `json:"direction"`
}

// Pageable is an offset page request. Page is 0-based.
type Pageable struct {
	Page int
	Size int
	Sort []Order
}

// PageOf returns an unsorted page request.
func PageOf(page, size int, sort ...Order) Pageable {
	return Pageable{Page: page, Size: size, Sort: sort}
}

// Offset returns the number of rows to skip.
func (p Pageable) Offset() int {
	return p.Page * p.Size
}

// Validate checks page bounds. Page*Size must fit in an int so Offset
// never wraps.
func (p Pageable) Validate() error {
	if p.Page < 0 {
		return NewValidationError("page", "must not be negative")
	}
	if p.Size < 1 {
		return NewValidationError("size", "must be at least 1")
	}
	if p.Page > math.MaxInt/p.Size {
		return NewValidationError("page", "offset out of range")
	}
	return nil
}

// ParseOrder parses "property" or "property,asc|desc".
func ParseOrder(raw string) (Order, error) {
	parts := strings.Split(raw, ",")
	prop := strings.TrimSpace(parts[0])
	if prop == "" {
		return Order{}, NewValidationError("sort", "missing property")
	}
	o := Order{Property: prop, Direction: Asc}
	switch len(parts) {
	case 1:
	case 2:
		switch strings.ToUpper(strings.TrimSpace(parts[1])) {
		case "", "ASC":
		case "DESC":
			o.Direction = Desc
		default:
			return Order{}, NewValidationError("sort", fmt.Sprintf("invalid direction %q", parts[1]))
		}
	default:
		return Order{}, NewValidationError("sort", fmt.Sprintf("invalid sort %q", raw))
	}
	return o, nil
}

// Page is one slice of a larger result plus the totals needed to walk it.
type Page[T any] struct {
	Content          []T     `json:"content"`
	TotalElements    int64   `json:"total_elements"`
	TotalPages       int     `json:"total_pages"`
	Number           int     `json:"number"`
	Size             int     `json:"size"`
	NumberOfElements int     `json:"number_of_elements"`
	First            bool    `json:"first"`
	Last             bool    `json:"last"`
	Empty            bool    `json:"empty"`
	Sort             []Order `json:"sort"`
}

// NewPage assembles a page from the rows of the requested slice and the
// total row count.
func NewPage[T any](content []T, req Pageable, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	totalPages := 0
	if req.Size > 0 {
		totalPages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}
	sort := req.Sort
	if sort == nil {
		sort = []Order{}
	}
	return Page[T]{
		Content:          content,
		TotalElements:    total,
		TotalPages:       totalPages,
		Number:           req.Page,
		Size:             req.Size,
		NumberOfElements: len(content),
		First:            req.Page == 0,
		Last:             req.Page >= totalPages-1,
		Empty:            len(content) == 0,
		Sort:             sort,
	}
}

// MapPage converts the content of a page and keeps its totals.
func MapPage[T, R any](p Page[T], fn func(T) R) Page[R] {
	out := make([]R, len(p.Content))
	for i, v := range p.Content {
		out[i] = fn(v)
	}
	return Page[R]{
		Content:          out,
		TotalElements:    p.TotalElements,
		TotalPages:       p.TotalPages,
		Number:           p.Number,
		Size:             p.Size,
		NumberOfElements: p.NumberOfElements,
		First:            p.First,
		Last:             p.Last,
		Empty:            p.Empty,
		Sort:             p.Sort,
	}
}
