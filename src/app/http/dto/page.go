package dto

import "teamroster/src/core/domain"

// PageQuery is the paging part of a query string:
// ?page=0&size=20&sort=username,desc&sort=id
type PageQuery struct {
	Page int      `form:"page" binding:"min=0"`
	Size *int     `form:"size" binding:"omitempty,min=1"`
	Sort []string `form:"sort"`
}

// ToPageable applies defaultSize when size is absent and clamps it to
// maxSize.
func (q PageQuery) ToPageable(defaultSize, maxSize int) (domain.Pageable, error) {
	size := defaultSize
	if q.Size != nil {
		size = *q.Size
	}
	if size > maxSize {
		size = maxSize
	}

	var orders []domain.Order
	for _, raw := range q.Sort {
		o, err := domain.ParseOrder(raw)
		if err != nil {
			return domain.Pageable{}, err
		}
		orders = append(orders, o)
	}

	req := domain.PageOf(q.Page, size, orders...)
	if err := req.Validate(); err != nil {
		return domain.Pageable{}, err
	}
	return req, nil
}
