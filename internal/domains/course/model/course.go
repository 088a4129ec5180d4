package model

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	lessonModel "courseware-backend/internal/domains/lesson/model"
)

const (
	TitleMaxLength       = 200
	DescriptionMaxLength = 2000

	// PageSize là số course mỗi trang của Search
	PageSize = 10

	summaryCachePrefix = "course:summary:"
)

// Status của course
type Status string

const (
	StatusDraft     Status = "Draft"
	StatusPublished Status = "Published"
)

// ParseStatus nhận "draft", "PUBLISHED", ... (không phân biệt hoa thường)
func ParseStatus(raw string) (Status, bool) {
	switch {
	case strings.EqualFold(raw, string(StatusDraft)):
		return StatusDraft, true
	case strings.EqualFold(raw, string(StatusPublished)):
		return StatusPublished, true
	default:
		return "", false
	}
}

type Course struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Status      Status    `json:"status"`
	IsDeleted   bool      `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CourseSummary là projection trả về bởi Search và GetSummary
type CourseSummary struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	LessonsCount int       `json:"lessons_count"`
	LessonTitles []string  `json:"lesson_titles"`
}

// CourseDetail là course kèm các lesson còn hoạt động, sort theo Order
type CourseDetail struct {
	*Course
	Lessons []*lessonModel.Lesson `json:"lessons"`
}

// NewSummary build summary từ course và lessons đã sort theo Order
func NewSummary(c *Course, lessons []*lessonModel.Lesson) *CourseSummary {
	return &CourseSummary{
		ID:           c.ID,
		Title:        c.Title,
		Status:       c.Status,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
		LessonsCount: len(lessons),
		LessonTitles: lessonModel.Titles(lessons),
	}
}

// Equal so sánh hai summary theo giá trị
func (s *CourseSummary) Equal(o *CourseSummary) bool {
	if s == nil || o == nil {
		return s == o
	}
	if s.ID != o.ID || s.Title != o.Title || s.Status != o.Status ||
		!s.CreatedAt.Equal(o.CreatedAt) || !s.UpdatedAt.Equal(o.UpdatedAt) ||
		s.LessonsCount != o.LessonsCount || len(s.LessonTitles) != len(o.LessonTitles) {
		return false
	}
	for i := range s.LessonTitles {
		if s.LessonTitles[i] != o.LessonTitles[i] {
			return false
		}
	}
	return true
}

// SummaryCacheKey là cache key của summary một course
func SummaryCacheKey(id uuid.UUID) string {
	return summaryCachePrefix + id.String()
}

// SummaryCachePattern khớp mọi summary key (glob kiểu Redis)
const SummaryCachePattern = summaryCachePrefix + "*"

// NormalizeTitle trim và kiểm tra title
func NormalizeTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", NewInvalidTitleError("title is required")
	}
	if utf8.RuneCountInString(title) > TitleMaxLength {
		return "", NewInvalidTitleError("title must be at most 200 characters")
	}
	return title, nil
}

// NormalizeDescription: chuỗi rỗng (sau trim) coi như không có description
func NormalizeDescription(desc *string) (*string, error) {
	if desc == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*desc)
	if trimmed == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(trimmed) > DescriptionMaxLength {
		return nil, NewInvalidDescriptionError("description must be at most 2000 characters")
	}
	return &trimmed, nil
}
