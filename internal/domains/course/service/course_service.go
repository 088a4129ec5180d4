package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"courseware-backend/internal/domains/course/model"
	"courseware-backend/internal/domains/course/repository"
	lessonModel "courseware-backend/internal/domains/lesson/model"
	"courseware-backend/internal/infrastructure/queue"
	"courseware-backend/internal/shared"
	"courseware-backend/pkg/cache"
	"courseware-backend/pkg/logger"
)

type courseService struct {
	courseRepo repository.Repository
	lessons    LessonReader
	cache      cache.Cache
	enqueuer   queue.Enqueuer
	summaryTTL time.Duration
	now        func() time.Time
}

func NewCourseService(
	courseRepo repository.Repository,
	lessons LessonReader,
	cache cache.Cache,
	enqueuer queue.Enqueuer,
	summaryTTL time.Duration,
) Service {
	if enqueuer == nil {
		enqueuer = queue.NoopEnqueuer{}
	}
	return &courseService{
		courseRepo: courseRepo,
		lessons:    lessons,
		cache:      cache,
		enqueuer:   enqueuer,
		summaryTTL: summaryTTL,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// =====================================================
// CREATE / UPDATE / DELETE
// =====================================================

func (s *courseService) Create(ctx context.Context, title string, description *string) (*model.Course, error) {
	title, err := model.NormalizeTitle(title)
	if err != nil {
		return nil, err
	}
	description, err = model.NormalizeDescription(description)
	if err != nil {
		return nil, err
	}

	now := s.now()
	course := &model.Course{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Status:      model.StatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	logger.Info("[CourseService] Course created", map[string]interface{}{
		"course_id": course.ID.String(),
	})
	return course, nil
}

func (s *courseService) Update(ctx context.Context, courseID uuid.UUID, title string, description *string) error {
	title, err := model.NormalizeTitle(title)
	if err != nil {
		return err
	}
	description, err = model.NormalizeDescription(description)
	if err != nil {
		return err
	}

	course, err := s.getCourse(ctx, courseID)
	if err != nil {
		return err
	}

	course.Title = title
	course.Description = description
	course.UpdatedAt = s.now()
	if err := s.courseRepo.Update(ctx, course); err != nil {
		return fmt.Errorf("failed to update course: %w", err)
	}

	s.invalidateSummary(ctx, courseID)
	return nil
}

// Delete chỉ soft delete course; lesson giữ nguyên
func (s *courseService) Delete(ctx context.Context, courseID uuid.UUID) error {
	deleted, err := s.courseRepo.SoftDelete(ctx, courseID)
	if err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}
	if !deleted {
		return model.NewCourseNotFoundError()
	}

	s.invalidateSummary(ctx, courseID)
	logger.Info("[CourseService] Course deleted", map[string]interface{}{
		"course_id": courseID.String(),
	})
	return nil
}

// =====================================================
// PUBLISH / UNPUBLISH
// =====================================================

func (s *courseService) Publish(ctx context.Context, courseID uuid.UUID) error {
	course, err := s.getCourse(ctx, courseID)
	if err != nil {
		return err
	}

	// Gate chỉ kiểm tra tại thời điểm publish
	count, err := s.lessons.CountActiveByCourse(ctx, courseID)
	if err != nil {
		return fmt.Errorf("failed to count lessons: %w", err)
	}
	if count == 0 {
		return model.NewPublishGateError()
	}

	return s.setStatus(ctx, course, model.StatusPublished)
}

// Unpublish luôn đưa course về Draft, gọi lại nhiều lần vẫn thành công
func (s *courseService) Unpublish(ctx context.Context, courseID uuid.UUID) error {
	course, err := s.getCourse(ctx, courseID)
	if err != nil {
		return err
	}
	return s.setStatus(ctx, course, model.StatusDraft)
}

func (s *courseService) setStatus(ctx context.Context, course *model.Course, status model.Status) error {
	previous := course.Status
	course.Status = status
	course.UpdatedAt = s.now()
	if err := s.courseRepo.Update(ctx, course); err != nil {
		return fmt.Errorf("failed to set course status: %w", err)
	}

	s.invalidateSummary(ctx, course.ID)

	// Lỗi enqueue không rollback thay đổi status
	payload := shared.CourseStatusChangedPayload{CourseID: course.ID.String(), Status: string(status)}
	if err := s.enqueuer.Enqueue(ctx, shared.TypeCourseStatusChanged, payload); err != nil {
		logger.Error("[CourseService] Failed to enqueue status change", err)
	}

	logger.Info("[CourseService] Course status changed", map[string]interface{}{
		"course_id": course.ID.String(),
		"from":      string(previous),
		"to":        string(status),
	})
	return nil
}

// =====================================================
// READS
// =====================================================

func (s *courseService) Search(ctx context.Context, page int, status *model.Status, query *string) ([]*model.CourseSummary, error) {
	// page ngoài khoảng (kể cả khi (page-1)*PageSize tràn int) là trang rỗng
	if page < 1 || page-1 > math.MaxInt/model.PageSize {
		return []*model.CourseSummary{}, nil
	}

	filter := repository.Filter{
		Status: status,
		Offset: (page - 1) * model.PageSize,
		Limit:  model.PageSize,
	}
	if query != nil {
		filter.Query = strings.TrimSpace(*query)
	}

	courses, err := s.courseRepo.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search courses: %w", err)
	}
	if len(courses) == 0 {
		return []*model.CourseSummary{}, nil
	}

	ids := make([]uuid.UUID, 0, len(courses))
	for _, c := range courses {
		ids = append(ids, c.ID)
	}
	lessonsByCourse, err := s.lessons.ListByCourses(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load lessons: %w", err)
	}

	summaries := make([]*model.CourseSummary, 0, len(courses))
	for _, c := range courses {
		summaries = append(summaries, model.NewSummary(c, lessonsByCourse[c.ID]))
	}
	return summaries, nil
}

// GetSummary dùng cache-aside; cache lỗi thì đọc thẳng store
func (s *courseService) GetSummary(ctx context.Context, courseID uuid.UUID) (*model.CourseSummary, error) {
	key := model.SummaryCacheKey(courseID)

	if s.cache != nil {
		var cached model.CourseSummary
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			logger.Warn("[CourseService] Summary cache read failed", map[string]interface{}{
				"course_id": courseID.String(),
				"error":     err.Error(),
			})
		} else if found {
			return &cached, nil
		}
	}

	summary, err := s.buildSummary(ctx, courseID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.writeBackSummary(ctx, key, summary)
	}
	return summary, nil
}

// writeBackSummary ghi summary rồi đọc lại store. Mutation luôn commit trước
// khi xóa key, nên nếu có invalidate xen giữa lần load và Set thì lần đọc lại
// thấy state mới và bản vừa ghi bị xóa.
func (s *courseService) writeBackSummary(ctx context.Context, key string, summary *model.CourseSummary) {
	if err := s.cache.Set(ctx, key, summary, s.summaryTTL); err != nil {
		logger.Warn("[CourseService] Summary cache write failed", map[string]interface{}{
			"course_id": summary.ID.String(),
			"error":     err.Error(),
		})
		return
	}

	current, err := s.buildSummary(ctx, summary.ID)
	if err == nil && current.Equal(summary) {
		return
	}
	if err := s.cache.Delete(ctx, key); err != nil {
		logger.Warn("[CourseService] Failed to drop stale course summary", map[string]interface{}{
			"course_id": summary.ID.String(),
			"error":     err.Error(),
		})
	}
}

func (s *courseService) GetByID(ctx context.Context, courseID uuid.UUID) (*model.CourseDetail, error) {
	course, lessons, err := s.loadWithLessons(ctx, courseID)
	if err != nil {
		return nil, err
	}
	return &model.CourseDetail{Course: course, Lessons: lessons}, nil
}

func (s *courseService) RefreshSummary(ctx context.Context, courseID uuid.UUID) error {
	s.invalidateSummary(ctx, courseID)

	_, err := s.GetSummary(ctx, courseID)
	if model.IsNotFound(err) {
		return nil
	}
	return err
}

// =====================================================
// HELPERS
// =====================================================

func (s *courseService) getCourse(ctx context.Context, courseID uuid.UUID) (*model.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load course: %w", err)
	}
	if course == nil {
		return nil, model.NewCourseNotFoundError()
	}
	return course, nil
}

func (s *courseService) loadWithLessons(ctx context.Context, courseID uuid.UUID) (*model.Course, []*lessonModel.Lesson, error) {
	course, err := s.getCourse(ctx, courseID)
	if err != nil {
		return nil, nil, err
	}
	lessons, err := s.lessons.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load lessons: %w", err)
	}
	return course, lessons, nil
}

func (s *courseService) buildSummary(ctx context.Context, courseID uuid.UUID) (*model.CourseSummary, error) {
	course, lessons, err := s.loadWithLessons(ctx, courseID)
	if err != nil {
		return nil, err
	}
	return model.NewSummary(course, lessons), nil
}

func (s *courseService) invalidateSummary(ctx context.Context, courseID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, model.SummaryCacheKey(courseID)); err != nil {
		logger.Warn("[CourseService] Failed to invalidate course summary", map[string]interface{}{
			"course_id": courseID.String(),
			"error":     err.Error(),
		})
	}
}
