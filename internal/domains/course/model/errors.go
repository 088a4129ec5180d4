package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeCourseNotFound     = "COURSE_NOT_FOUND"
	ErrCodePublishGate        = "COURSE_PUBLISH_GATE"
	ErrCodeInvalidTitle       = "INVALID_TITLE"
	ErrCodeInvalidDescription = "INVALID_DESCRIPTION"
)

// Errors
var (
	ErrCourseNotFound = errors.New("course not found")
	ErrPublishGate    = errors.New("cannot publish a course with no active lessons")
	ErrInvalidInput   = errors.New("invalid input")
)

// CourseError custom error type
type CourseError struct {
	Code    string
	Message string
	Err     error
}

func (e *CourseError) Error() string {
	if e.Err != nil && e.Err.Error() != e.Message {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *CourseError) Unwrap() error {
	return e.Err
}

// Error constructors
func NewCourseNotFoundError() *CourseError {
	return &CourseError{
		Code:    ErrCodeCourseNotFound,
		Message: "Course not found",
		Err:     ErrCourseNotFound,
	}
}

func NewPublishGateError() *CourseError {
	return &CourseError{
		Code:    ErrCodePublishGate,
		Message: ErrPublishGate.Error(),
		Err:     ErrPublishGate,
	}
}

func NewInvalidTitleError(reason string) *CourseError {
	return &CourseError{
		Code:    ErrCodeInvalidTitle,
		Message: reason,
		Err:     ErrInvalidInput,
	}
}

func NewInvalidDescriptionError(reason string) *CourseError {
	return &CourseError{
		Code:    ErrCodeInvalidDescription,
		Message: reason,
		Err:     ErrInvalidInput,
	}
}

// Error checkers
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCourseNotFound)
}

func IsPublishGate(err error) bool {
	return errors.Is(err, ErrPublishGate)
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

func AsCourseError(err error) (*CourseError, bool) {
	var courseErr *CourseError
	if errors.As(err, &courseErr) {
		return courseErr, true
	}
	return nil, false
}
