package service

import (
	"context"

	"github.com/google/uuid"

	courseModel "courseware-backend/internal/domains/course/model"
	"courseware-backend/internal/domains/lesson/model"
)

// Service quản lý thứ tự lesson trong course
type Service interface {
	Create(ctx context.Context, courseID uuid.UUID, title string, order int) (*model.Lesson, error)
	Update(ctx context.Context, lessonID uuid.UUID, title string, order int) error
	Delete(ctx context.Context, lessonID uuid.UUID) error
	Reorder(ctx context.Context, lessonID uuid.UUID, newOrder int) error

	// Swap đổi order của hai lesson cùng course trong một bước
	Swap(ctx context.Context, firstID, secondID uuid.UUID) error

	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*model.Lesson, error)
}

// CourseReader là phần course store mà lesson service cần để kiểm tra course tồn tại
type CourseReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*courseModel.Course, error)
}
