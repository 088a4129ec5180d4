package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeLessonNotFound = "LESSON_NOT_FOUND"
	ErrCodeCourseNotFound = "COURSE_NOT_FOUND"
	ErrCodeOrderConflict  = "LESSON_ORDER_CONFLICT"
	ErrCodeInvalidTitle   = "INVALID_TITLE"
	ErrCodeInvalidSwap    = "INVALID_SWAP"
	ErrCodeInvalidOrder   = "INVALID_ORDER"
)

// Errors
var (
	ErrLessonNotFound = errors.New("lesson not found")
	ErrCourseNotFound = errors.New("course not found")
	// ErrOrderConflict cũng được repository trả về khi store từ chối (course_id, order) trùng
	ErrOrderConflict = errors.New("lesson order already taken in course")
	ErrInvalidInput  = errors.New("invalid input")
)

// LessonError custom error type
type LessonError struct {
	Code    string
	Message string
	Err     error
}

func (e *LessonError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *LessonError) Unwrap() error {
	return e.Err
}

// Error constructors
func NewLessonNotFoundError() *LessonError {
	return &LessonError{
		Code:    ErrCodeLessonNotFound,
		Message: "Lesson not found",
		Err:     ErrLessonNotFound,
	}
}

func NewCourseNotFoundError() *LessonError {
	return &LessonError{
		Code:    ErrCodeCourseNotFound,
		Message: "Course not found",
		Err:     ErrCourseNotFound,
	}
}

func NewOrderConflictError(order int) *LessonError {
	return &LessonError{
		Code:    ErrCodeOrderConflict,
		Message: fmt.Sprintf("A lesson with order %d already exists in this course", order),
		Err:     ErrOrderConflict,
	}
}

func NewInvalidTitleError(reason string) *LessonError {
	return &LessonError{
		Code:    ErrCodeInvalidTitle,
		Message: reason,
		Err:     ErrInvalidInput,
	}
}

func NewInvalidSwapError(reason string) *LessonError {
	return &LessonError{
		Code:    ErrCodeInvalidSwap,
		Message: reason,
		Err:     ErrInvalidInput,
	}
}

func NewInvalidOrderError(reason string) *LessonError {
	return &LessonError{
		Code:    ErrCodeInvalidOrder,
		Message: reason,
		Err:     ErrInvalidInput,
	}
}

// Error checkers
func IsNotFound(err error) bool {
	return errors.Is(err, ErrLessonNotFound) || errors.Is(err, ErrCourseNotFound)
}

func IsOrderConflict(err error) bool {
	return errors.Is(err, ErrOrderConflict)
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// AsLessonError trả về LessonError nằm trong chuỗi wrap, nếu có
func AsLessonError(err error) (*LessonError, bool) {
	var lessonErr *LessonError
	if errors.As(err, &lessonErr) {
		return lessonErr, true
	}
	return nil, false
}
