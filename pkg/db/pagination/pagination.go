package pagination

import "gorm.io/gorm"

// Pagination carries the offset paging parameters accepted by list endpoints.
type Pagination struct {
	Skip  int `form:"skip,default=0" validate:"gte=0"`
	Limit int `form:"limit,default=100" validate:"gte=1,lte=500"`
}

// Normalize clamps the parameters to their documented bounds.
func (p Pagination) Normalize() Pagination {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit <= 0 {
		p.Limit = 100
	}
	if p.Limit > 500 {
		p.Limit = 500
	}
	return p
}

// Apply adds the offset and limit to a gorm statement.
func (p Pagination) Apply(stmt *gorm.DB) *gorm.DB {
	p = p.Normalize()
	return stmt.Offset(p.Skip).Limit(p.Limit)
}
