package repository

import (
	"context"

	"github.com/google/uuid"

	"courseware-backend/internal/domains/course/model"
)

// Filter của Search. Status nil và Query rỗng nghĩa là không lọc.
type Filter struct {
	Status *model.Status
	Query  string // substring của title, không phân biệt hoa thường
	Offset int
	Limit  int
}

// Empty: offset âm hoặc limit <= 0 không bao giờ trả về row nào
func (f Filter) Empty() bool {
	return f.Offset < 0 || f.Limit <= 0
}

// Repository là data access của course; mọi read bỏ qua course đã soft delete
type Repository interface {
	// GetByID trả về nil, nil nếu không tồn tại hoặc đã xóa
	GetByID(ctx context.Context, id uuid.UUID) (*model.Course, error)

	Create(ctx context.Context, course *model.Course) error

	// Update ghi title, description, status, updated_at
	Update(ctx context.Context, course *model.Course) error

	// SoftDelete trả về false nếu course không tồn tại hoặc đã xóa
	SoftDelete(ctx context.Context, id uuid.UUID) (bool, error)

	// Search sort theo created_at mới nhất trước, id để ổn định phân trang
	Search(ctx context.Context, filter Filter) ([]*model.Course, error)
}
