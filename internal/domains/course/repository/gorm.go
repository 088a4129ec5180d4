package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"courseware-backend/internal/domains/course/model"
)

type courseRecord struct {
	ID          uuid.UUID `gorm:"type:text;primaryKey"`
	Title       string    `gorm:"size:200;not null"`
	TitleLower  string    `gorm:"size:200;not null;default:''"`
	Description *string   `gorm:"size:2000"`
	Status      string    `gorm:"size:20;not null;index"`
	IsDeleted   bool      `gorm:"not null;index"`
	CreatedAt   time.Time `gorm:"autoCreateTime:false;index"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime:false"`
}

func (courseRecord) TableName() string { return "courses" }

func toRecord(c *model.Course) *courseRecord {
	return &courseRecord{
		ID:          c.ID,
		Title:       c.Title,
		TitleLower:  foldTitle(c.Title),
		Description: c.Description,
		Status:      string(c.Status),
		IsDeleted:   c.IsDeleted,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func (r *courseRecord) toModel() *model.Course {
	return &model.Course{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Status:      model.Status(r.Status),
		IsDeleted:   r.IsDeleted,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type gormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&courseRecord{})
}

func (r *gormRepository) active(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&courseRecord{}).Where("is_deleted = ?", false)
}

func (r *gormRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Course, error) {
	var row courseRecord
	err := r.active(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get course: %w", err)
	}
	return row.toModel(), nil
}

func (r *gormRepository) Create(ctx context.Context, c *model.Course) error {
	if err := r.db.WithContext(ctx).Create(toRecord(c)).Error; err != nil {
		return fmt.Errorf("insert course: %w", err)
	}
	return nil
}

func (r *gormRepository) Update(ctx context.Context, c *model.Course) error {
	err := r.active(ctx).
		Where("id = ?", c.ID).
		Updates(map[string]interface{}{
			"title":       c.Title,
			"title_lower": foldTitle(c.Title),
			"description": c.Description,
			"status":      string(c.Status),
			"updated_at":  c.UpdatedAt,
		}).Error
	if err != nil {
		return fmt.Errorf("update course: %w", err)
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
		return false, fmt.Errorf("delete course: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *gormRepository) Search(ctx context.Context, filter Filter) ([]*model.Course, error) {
	if filter.Empty() {
		return []*model.Course{}, nil
	}

	q := r.active(ctx)
	if filter.Status != nil {
		q = q.Where("status = ?", string(*filter.Status))
	}
	if filter.Query != "" {
		q = q.Where(`title_lower LIKE ? ESCAPE '\'`, containsPattern(filter.Query))
	}

	var rows []*courseRecord
	if err := q.Order("created_at DESC, id").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("search courses: %w", err)
	}

	courses := make([]*model.Course, 0, len(rows))
	for _, row := range rows {
		courses = append(courses, row.toModel())
	}
	return courses, nil
}
