package service

import (
	"context"

	"github.com/google/uuid"

	"courseware-backend/internal/domains/course/model"
	lessonModel "courseware-backend/internal/domains/lesson/model"
)

// Service quản lý vòng đời course: tạo, sửa, xóa, publish, search
type Service interface {
	Create(ctx context.Context, title string, description *string) (*model.Course, error)
	Update(ctx context.Context, courseID uuid.UUID, title string, description *string) error
	Delete(ctx context.Context, courseID uuid.UUID) error

	// Publish yêu cầu ít nhất một lesson chưa xóa tại thời điểm gọi
	Publish(ctx context.Context, courseID uuid.UUID) error
	Unpublish(ctx context.Context, courseID uuid.UUID) error

	// Search: page bắt đầu từ 1, mỗi trang model.PageSize course.
	// Page ngoài phạm vi trả về slice rỗng.
	Search(ctx context.Context, page int, status *model.Status, query *string) ([]*model.CourseSummary, error)
	GetSummary(ctx context.Context, courseID uuid.UUID) (*model.CourseSummary, error)
	GetByID(ctx context.Context, courseID uuid.UUID) (*model.CourseDetail, error)

	// RefreshSummary bỏ cache summary rồi build lại (worker gọi sau khi đổi status)
	RefreshSummary(ctx context.Context, courseID uuid.UUID) error
}

// LessonReader là phần lesson store mà course service cần
type LessonReader interface {
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*lessonModel.Lesson, error)
	ListByCourses(ctx context.Context, courseIDs []uuid.UUID) (map[uuid.UUID][]*lessonModel.Lesson, error)
	CountActiveByCourse(ctx context.Context, courseID uuid.UUID) (int, error)
}
