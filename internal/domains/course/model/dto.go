package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CourseRequest - body của POST /courses và PUT /courses/:id
type CourseRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

func (r CourseRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.RuneLength(1, TitleMaxLength),
		),
		validation.Field(&r.Description,
			validation.RuneLength(0, DescriptionMaxLength),
		),
	)
}

// SearchQuery - query string của GET /courses/search
type SearchQuery struct {
	Page   *int   `form:"page"`
	Status string `form:"status"`
	Query  string `form:"q"`
}

// Filters chuyển query string sang tham số của Search.
// Status không hợp lệ bị bỏ qua thay vì báo lỗi.
func (q SearchQuery) Filters() (page int, status *Status, query *string) {
	page = 1
	if q.Page != nil {
		page = *q.Page
	}
	if s, ok := ParseStatus(q.Status); ok {
		status = &s
	}
	if q.Query != "" {
		query = &q.Query
	}
	return page, status, query
}
