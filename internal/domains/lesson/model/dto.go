package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

const orderRangeMessage = "order is out of range"

// CreateLessonRequest - POST /lessons
type CreateLessonRequest struct {
	CourseID string `json:"course_id"`
	Title    string `json:"title"`
	Order    *int   `json:"order"`
}

func (r CreateLessonRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CourseID,
			validation.Required.Error("course_id is required"),
			is.UUID.Error("course_id must be a valid UUID"),
		),
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.RuneLength(1, TitleMaxLength),
		),
		validation.Field(&r.Order,
			validation.NotNil.Error("order is required"),
			validation.Min(MinOrder).Error(orderRangeMessage),
			validation.Max(MaxOrder).Error(orderRangeMessage),
		),
	)
}

// ParsedCourseID chỉ gọi sau khi Validate() thành công
func (r CreateLessonRequest) ParsedCourseID() uuid.UUID {
	return uuid.MustParse(r.CourseID)
}

// UpdateLessonRequest - PUT /lessons/:id
type UpdateLessonRequest struct {
	Title string `json:"title"`
	Order *int   `json:"order"`
}

func (r UpdateLessonRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.RuneLength(1, TitleMaxLength),
		),
		validation.Field(&r.Order,
			validation.NotNil.Error("order is required"),
			validation.Min(MinOrder).Error(orderRangeMessage),
			validation.Max(MaxOrder).Error(orderRangeMessage),
		),
	)
}

// ReorderLessonRequest - PATCH /lessons/:id/reorder
type ReorderLessonRequest struct {
	NewOrder *int `json:"new_order"`
}

func (r ReorderLessonRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.NewOrder,
			validation.NotNil.Error("new_order is required"),
			validation.Min(MinOrder).Error(orderRangeMessage),
			validation.Max(MaxOrder).Error(orderRangeMessage),
		),
	)
}

// SwapLessonsRequest - POST /lessons/swap
type SwapLessonsRequest struct {
	FirstID  string `json:"first_id"`
	SecondID string `json:"second_id"`
}

func (r SwapLessonsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstID, validation.Required, is.UUID),
		validation.Field(&r.SecondID, validation.Required, is.UUID),
	)
}
