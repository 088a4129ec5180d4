package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"courseware-backend/internal/domains/lesson/model"
)

// lessonRecord là row của bảng lessons trên embedded store.
// Partial unique index giữ (course_id, sort_order) duy nhất giữa các lesson chưa xóa.
type lessonRecord struct {
	ID        uuid.UUID `gorm:"type:text;primaryKey"`
	CourseID  uuid.UUID `gorm:"type:text;not null;uniqueIndex:idx_lessons_course_order,where:is_deleted = false"`
	Title     string    `gorm:"size:200;not null"`
	SortOrder int       `gorm:"not null;uniqueIndex:idx_lessons_course_order,where:is_deleted = false"`
	IsDeleted bool      `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
}

func (lessonRecord) TableName() string { return "lessons" }

func toRecord(l *model.Lesson) *lessonRecord {
	return &lessonRecord{
		ID:        l.ID,
		CourseID:  l.CourseID,
		Title:     l.Title,
		SortOrder: l.Order,
		IsDeleted: l.IsDeleted,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

func (r *lessonRecord) toModel() *model.Lesson {
	return &model.Lesson{
		ID:        r.ID,
		CourseID:  r.CourseID,
		Title:     r.Title,
		Order:     r.SortOrder,
		IsDeleted: r.IsDeleted,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func toModels(rows []*lessonRecord) []*model.Lesson {
	out := make([]*model.Lesson, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toModel())
	}
	return out
}

type gormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// AutoMigrate tạo bảng lessons và partial unique index
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&lessonRecord{})
}

func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func (r *gormRepository) active(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&lessonRecord{}).Where("is_deleted = ?", false)
}

func (r *gormRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Lesson, error) {
	var row lessonRecord
	err := r.active(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lesson: %w", err)
	}
	return row.toModel(), nil
}

func (r *gormRepository) FindByCourseAndOrder(ctx context.Context, courseID uuid.UUID, order int, excludeID *uuid.UUID) ([]*model.Lesson, error) {
	q := r.active(ctx).Where("course_id = ? AND sort_order = ?", courseID, order)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}

	var rows []*lessonRecord
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("find lessons by order: %w", err)
	}
	return toModels(rows), nil
}

func (r *gormRepository) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*model.Lesson, error) {
	var rows []*lessonRecord
	if err := r.active(ctx).
		Where("course_id = ?", courseID).
		Order("sort_order ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	return toModels(rows), nil
}

func (r *gormRepository) ListByCourses(ctx context.Context, courseIDs []uuid.UUID) (map[uuid.UUID][]*model.Lesson, error) {
	grouped := make(map[uuid.UUID][]*model.Lesson, len(courseIDs))
	if len(courseIDs) == 0 {
		return grouped, nil
	}

	var rows []*lessonRecord
	if err := r.active(ctx).
		Where("course_id IN ?", courseIDs).
		Order("course_id, sort_order ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list lessons by courses: %w", err)
	}

	for _, row := range rows {
		grouped[row.CourseID] = append(grouped[row.CourseID], row.toModel())
	}
	return grouped, nil
}

func (r *gormRepository) CountActiveByCourse(ctx context.Context, courseID uuid.UUID) (int, error) {
	var count int64
	if err := r.active(ctx).Where("course_id = ?", courseID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count lessons: %w", err)
	}
	return int(count), nil
}

func (r *gormRepository) Create(ctx context.Context, l *model.Lesson) error {
	if err := r.db.WithContext(ctx).Create(toRecord(l)).Error; err != nil {
		if isDuplicateKey(err) {
			return model.ErrOrderConflict
		}
		return fmt.Errorf("insert lesson: %w", err)
	}
	return nil
}

func (r *gormRepository) Update(ctx context.Context, l *model.Lesson) error {
	err := r.active(ctx).
		Where("id = ?", l.ID).
		Updates(map[string]interface{}{
			"title":      l.Title,
			"sort_order": l.Order,
			"updated_at": l.UpdatedAt,
		}).Error
	if err != nil {
		if isDuplicateKey(err) {
			return model.ErrOrderConflict
		}
		return fmt.Errorf("update lesson: %w", err)
	}
	return nil
}

func (r *gormRepository) SoftDelete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.active(ctx).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return false, fmt.Errorf("delete lesson: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *gormRepository) SwapOrders(ctx context.Context, a, b *model.Lesson) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var found int64
		if err := tx.Model(&lessonRecord{}).
			Where("id IN ? AND is_deleted = ?", []uuid.UUID{a.ID, b.ID}, false).
			Count(&found).Error; err != nil {
			return err
		}
		if found != 2 {
			return model.ErrLessonNotFound
		}

		var agg struct {
			MinOrder *int
			MaxOrder *int
		}
		if err := tx.Model(&lessonRecord{}).
			Where("course_id = ? AND is_deleted = ?", a.CourseID, false).
			Select("MIN(sort_order) AS min_order, MAX(sort_order) AS max_order").
			Scan(&agg).Error; err != nil {
			return err
		}
		temp, err := model.TemporaryOrder(agg.MinOrder, agg.MaxOrder)
		if err != nil {
			return err
		}

		steps := []struct {
			id        uuid.UUID
			order     int
			updatedAt time.Time
		}{
			{a.ID, temp, a.UpdatedAt},
			{b.ID, b.Order, b.UpdatedAt},
			{a.ID, a.Order, a.UpdatedAt},
		}
		for _, s := range steps {
			if err := tx.Model(&lessonRecord{}).
				Where("id = ?", s.id).
				Updates(map[string]interface{}{
					"sort_order": s.order,
					"updated_at": s.updatedAt,
				}).Error; err != nil {
				if isDuplicateKey(err) {
					return model.ErrOrderConflict
				}
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, model.ErrOrderConflict) || errors.Is(err, model.ErrLessonNotFound) || model.IsValidationError(err) {
			return err
		}
		return fmt.Errorf("swap lesson orders: %w", err)
	}
	return nil
}
