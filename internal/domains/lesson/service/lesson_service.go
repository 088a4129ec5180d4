package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	courseModel "courseware-backend/internal/domains/course/model"
	"courseware-backend/internal/domains/lesson/model"
	"courseware-backend/internal/domains/lesson/repository"
	"courseware-backend/internal/shared/lock"
	"courseware-backend/pkg/cache"
	"courseware-backend/pkg/logger"
)

type lessonService struct {
	lessonRepo repository.Repository
	courses    CourseReader
	cache      cache.Cache
	locks      *lock.KeyedMutex
	now        func() time.Time
}

// NewLessonService: locks phải là instance dùng chung cho mọi request
func NewLessonService(
	lessonRepo repository.Repository,
	courses CourseReader,
	cache cache.Cache,
	locks *lock.KeyedMutex,
) Service {
	return &lessonService{
		lessonRepo: lessonRepo,
		courses:    courses,
		cache:      cache,
		locks:      locks,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// =====================================================
// CREATE
// =====================================================

func (s *lessonService) Create(ctx context.Context, courseID uuid.UUID, title string, order int) (*model.Lesson, error) {
	// Step 1: Validate
	title, err := model.NormalizeTitle(title)
	if err != nil {
		return nil, err
	}
	if err := model.ValidateOrder(order); err != nil {
		return nil, err
	}

	// Step 2: Course phải tồn tại và chưa bị xóa
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load course: %w", err)
	}
	if course == nil {
		return nil, model.NewCourseNotFoundError()
	}

	// Step 3: Check-then-write dưới lock của course
	unlock := s.locks.Lock(courseID)
	defer unlock()

	if err := s.ensureOrderFree(ctx, courseID, order, nil); err != nil {
		return nil, err
	}

	now := s.now()
	lesson := &model.Lesson{
		ID:        uuid.New(),
		CourseID:  courseID,
		Title:     title,
		Order:     order,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.lessonRepo.Create(ctx, lesson); err != nil {
		return nil, writeError("create lesson", err, order)
	}

	// Step 4: Summary của course đã cũ
	s.invalidateSummary(ctx, courseID)

	logger.Info("[LessonService] Lesson created", map[string]interface{}{
		"lesson_id": lesson.ID.String(),
		"course_id": courseID.String(),
		"order":     order,
	})
	return lesson, nil
}

// =====================================================
// UPDATE / REORDER
// =====================================================

func (s *lessonService) Update(ctx context.Context, lessonID uuid.UUID, title string, order int) error {
	title, err := model.NormalizeTitle(title)
	if err != nil {
		return err
	}
	if err := model.ValidateOrder(order); err != nil {
		return err
	}

	lesson, unlock, err := s.lockLesson(ctx, lessonID)
	if err != nil {
		return err
	}
	defer unlock()

	if lesson.Order != order {
		if err := s.ensureOrderFree(ctx, lesson.CourseID, order, &lesson.ID); err != nil {
			return err
		}
	}

	lesson.Title = title
	lesson.Order = order
	lesson.UpdatedAt = s.now()
	if err := s.lessonRepo.Update(ctx, lesson); err != nil {
		return writeError("update lesson", err, order)
	}

	s.invalidateSummary(ctx, lesson.CourseID)
	logger.Info("[LessonService] Lesson updated", map[string]interface{}{
		"lesson_id": lessonID.String(),
		"order":     order,
	})
	return nil
}

func (s *lessonService) Reorder(ctx context.Context, lessonID uuid.UUID, newOrder int) error {
	if err := model.ValidateOrder(newOrder); err != nil {
		return err
	}
	lesson, unlock, err := s.lockLesson(ctx, lessonID)
	if err != nil {
		return err
	}
	defer unlock()

	if lesson.Order != newOrder {
		if err := s.ensureOrderFree(ctx, lesson.CourseID, newOrder, &lesson.ID); err != nil {
			return err
		}
	}

	previous := lesson.Order
	lesson.Order = newOrder
	lesson.UpdatedAt = s.now()
	if err := s.lessonRepo.Update(ctx, lesson); err != nil {
		return writeError("reorder lesson", err, newOrder)
	}

	s.invalidateSummary(ctx, lesson.CourseID)
	logger.Info("[LessonService] Lesson reordered", map[string]interface{}{
		"lesson_id": lessonID.String(),
		"from":      previous,
		"to":        newOrder,
	})
	return nil
}

// =====================================================
// SWAP
// =====================================================

func (s *lessonService) Swap(ctx context.Context, firstID, secondID uuid.UUID) error {
	if firstID == secondID {
		return model.NewInvalidSwapError("cannot swap a lesson with itself")
	}

	first, err := s.getLesson(ctx, firstID)
	if err != nil {
		return err
	}
	second, err := s.getLesson(ctx, secondID)
	if err != nil {
		return err
	}
	if first.CourseID != second.CourseID {
		return model.NewInvalidSwapError("lessons belong to different courses")
	}

	unlock := s.locks.Lock(first.CourseID)
	defer unlock()

	// Đọc lại trong lock, order có thể đã đổi
	if first, err = s.getLesson(ctx, firstID); err != nil {
		return err
	}
	if second, err = s.getLesson(ctx, secondID); err != nil {
		return err
	}

	now := s.now()
	first.Order, second.Order = second.Order, first.Order
	first.UpdatedAt, second.UpdatedAt = now, now

	if err := s.lessonRepo.SwapOrders(ctx, first, second); err != nil {
		switch {
		case errors.Is(err, model.ErrLessonNotFound):
			return model.NewLessonNotFoundError()
		case errors.Is(err, model.ErrOrderConflict):
			return model.NewOrderConflictError(first.Order)
		default:
			return fmt.Errorf("failed to swap lessons: %w", err)
		}
	}

	s.invalidateSummary(ctx, first.CourseID)
	logger.Info("[LessonService] Lessons swapped", map[string]interface{}{
		"course_id": first.CourseID.String(),
		"first_id":  firstID.String(),
		"second_id": secondID.String(),
	})
	return nil
}

// =====================================================
// DELETE / LIST
// =====================================================

func (s *lessonService) Delete(ctx context.Context, lessonID uuid.UUID) error {
	lesson, err := s.getLesson(ctx, lessonID)
	if err != nil {
		return err
	}

	deleted, err := s.lessonRepo.SoftDelete(ctx, lessonID)
	if err != nil {
		return fmt.Errorf("failed to delete lesson: %w", err)
	}
	if !deleted {
		return model.NewLessonNotFoundError()
	}

	s.invalidateSummary(ctx, lesson.CourseID)
	logger.Info("[LessonService] Lesson deleted", map[string]interface{}{
		"lesson_id": lessonID.String(),
		"course_id": lesson.CourseID.String(),
	})
	return nil
}

func (s *lessonService) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*model.Lesson, error) {
	lessons, err := s.lessonRepo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list lessons: %w", err)
	}
	return lessons, nil
}

// =====================================================
// HELPERS
// =====================================================

func (s *lessonService) getLesson(ctx context.Context, id uuid.UUID) (*model.Lesson, error) {
	lesson, err := s.lessonRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load lesson: %w", err)
	}
	if lesson == nil {
		return nil, model.NewLessonNotFoundError()
	}
	return lesson, nil
}

// lockLesson khóa course của lesson rồi đọc lại lesson trong lock.
// CourseID không đổi nên lock đúng course ngay từ lần đọc đầu.
func (s *lessonService) lockLesson(ctx context.Context, id uuid.UUID) (*model.Lesson, func(), error) {
	lesson, err := s.getLesson(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	unlock := s.locks.Lock(lesson.CourseID)
	lesson, err = s.getLesson(ctx, id)
	if err != nil {
		unlock()
		return nil, nil, err
	}
	return lesson, unlock, nil
}

// ensureOrderFree: excludeID = nil khi create
func (s *lessonService) ensureOrderFree(ctx context.Context, courseID uuid.UUID, order int, excludeID *uuid.UUID) error {
	taken, err := s.lessonRepo.FindByCourseAndOrder(ctx, courseID, order, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check lesson order: %w", err)
	}
	if len(taken) > 0 {
		return model.NewOrderConflictError(order)
	}
	return nil
}

// writeError: store vẫn có thể từ chối order trùng (ví dụ ghi từ process khác)
func writeError(op string, err error, order int) error {
	if errors.Is(err, model.ErrOrderConflict) {
		return model.NewOrderConflictError(order)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

func (s *lessonService) invalidateSummary(ctx context.Context, courseID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, courseModel.SummaryCacheKey(courseID)); err != nil {
		logger.Warn("[LessonService] Failed to invalidate course summary", map[string]interface{}{
			"course_id": courseID.String(),
			"error":     err.Error(),
		})
	}
}
