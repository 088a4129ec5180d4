package model

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const TitleMaxLength = 200

// Order lưu trong cột INTEGER (int4). MinOrder chừa lại math.MinInt32
// để swap luôn có chỗ đặt order tạm.
const (
	MinOrder = math.MinInt32 + 1
	MaxOrder = math.MaxInt32
)

// Lesson thuộc đúng một course; CourseID không đổi sau khi tạo.
// Order là duy nhất trong các lesson chưa xóa của cùng course.
type Lesson struct {
	ID        uuid.UUID `json:"id"`
	CourseID  uuid.UUID `json:"course_id"`
	Title     string    `json:"title"`
	Order     int       `json:"order"`
	IsDeleted bool      `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NormalizeTitle trim và kiểm tra title (không rỗng, tối đa 200 ký tự)
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

// ValidateOrder kiểm tra order nằm trong khoảng store lưu được
func ValidateOrder(order int) error {
	if order < MinOrder || order > MaxOrder {
		return NewInvalidOrderError(fmt.Sprintf("order must be between %d and %d", MinOrder, MaxOrder))
	}
	return nil
}

// TemporaryOrder chọn order tạm cho swap, không trùng lesson nào và không
// tràn int4. minOrder/maxOrder là nil khi course chưa có lesson.
func TemporaryOrder(minOrder, maxOrder *int) (int, error) {
	if minOrder == nil || maxOrder == nil {
		return -1, nil
	}
	if *minOrder > math.MinInt32 {
		return *minOrder - 1, nil
	}
	if *maxOrder < math.MaxInt32 {
		return *maxOrder + 1, nil
	}
	return 0, NewInvalidSwapError("no free temporary order available in course")
}

// Titles trả về title theo đúng thứ tự slice (đã sort theo Order)
func Titles(lessons []*Lesson) []string {
	titles := make([]string, 0, len(lessons))
	for _, l := range lessons {
		titles = append(titles, l.Title)
	}
	return titles
}
