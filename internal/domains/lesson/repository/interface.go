package repository

import (
	"context"

	"github.com/google/uuid"

	"courseware-backend/internal/domains/lesson/model"
)

// Repository là data access của lesson.
// Mọi read bỏ qua lesson đã soft delete.
// Create/Update/SwapOrders trả về model.ErrOrderConflict khi store từ chối (course_id, order) trùng.
type Repository interface {
	// GetByID trả về nil, nil nếu không tồn tại hoặc đã xóa
	GetByID(ctx context.Context, id uuid.UUID) (*model.Lesson, error)

	// FindByCourseAndOrder tìm lesson cùng course có order bằng order, bỏ qua excludeID nếu khác nil
	FindByCourseAndOrder(ctx context.Context, courseID uuid.UUID, order int, excludeID *uuid.UUID) ([]*model.Lesson, error)

	// ListByCourse sort tăng dần theo Order
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*model.Lesson, error)

	// ListByCourses group theo course, mỗi nhóm sort theo Order
	ListByCourses(ctx context.Context, courseIDs []uuid.UUID) (map[uuid.UUID][]*model.Lesson, error)

	CountActiveByCourse(ctx context.Context, courseID uuid.UUID) (int, error)

	Create(ctx context.Context, lesson *model.Lesson) error

	// Update ghi title, order, updated_at
	Update(ctx context.Context, lesson *model.Lesson) error

	// SoftDelete trả về false nếu lesson không tồn tại hoặc đã xóa
	SoftDelete(ctx context.Context, id uuid.UUID) (bool, error)

	// SwapOrders ghi order mới của a và b trong một transaction.
	// a.Order và b.Order đã mang giá trị mới; không bước trung gian nào có order trùng.
	SwapOrders(ctx context.Context, a, b *model.Lesson) error
}
