package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"courseware-backend/internal/domains/lesson/model"
)

// memoryRepository giữ lesson trong process (STORAGE_DRIVER=memory, test).
// Ràng buộc (course_id, order) được kiểm tra giống unique index của SQL store.
type memoryRepository struct {
	mu      sync.RWMutex
	lessons map[uuid.UUID]model.Lesson
}

func NewMemoryRepository() Repository {
	return &memoryRepository{lessons: make(map[uuid.UUID]model.Lesson)}
}

func sortByOrder(lessons []*model.Lesson) {
	sort.Slice(lessons, func(i, j int) bool { return lessons[i].Order < lessons[j].Order })
}

// takenLocked báo order đã bị lesson active khác trong course chiếm
func (r *memoryRepository) takenLocked(courseID uuid.UUID, order int, self uuid.UUID) bool {
	for _, l := range r.lessons {
		if !l.IsDeleted && l.CourseID == courseID && l.Order == order && l.ID != self {
			return true
		}
	}
	return false
}

func (r *memoryRepository) GetByID(_ context.Context, id uuid.UUID) (*model.Lesson, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.lessons[id]
	if !ok || l.IsDeleted {
		return nil, nil
	}
	return &l, nil
}

func (r *memoryRepository) FindByCourseAndOrder(_ context.Context, courseID uuid.UUID, order int, excludeID *uuid.UUID) ([]*model.Lesson, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.Lesson, 0)
	for _, l := range r.lessons {
		if l.IsDeleted || l.CourseID != courseID || l.Order != order {
			continue
		}
		if excludeID != nil && l.ID == *excludeID {
			continue
		}
		l := l
		out = append(out, &l)
	}
	return out, nil
}

func (r *memoryRepository) ListByCourse(_ context.Context, courseID uuid.UUID) ([]*model.Lesson, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.Lesson, 0)
	for _, l := range r.lessons {
		if !l.IsDeleted && l.CourseID == courseID {
			l := l
			out = append(out, &l)
		}
	}
	sortByOrder(out)
	return out, nil
}

func (r *memoryRepository) ListByCourses(_ context.Context, courseIDs []uuid.UUID) (map[uuid.UUID][]*model.Lesson, error) {
	wanted := make(map[uuid.UUID]struct{}, len(courseIDs))
	for _, id := range courseIDs {
		wanted[id] = struct{}{}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	grouped := make(map[uuid.UUID][]*model.Lesson, len(courseIDs))
	for _, l := range r.lessons {
		if _, ok := wanted[l.CourseID]; !ok || l.IsDeleted {
			continue
		}
		l := l
		grouped[l.CourseID] = append(grouped[l.CourseID], &l)
	}
	for _, lessons := range grouped {
		sortByOrder(lessons)
	}
	return grouped, nil
}

func (r *memoryRepository) CountActiveByCourse(_ context.Context, courseID uuid.UUID) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, l := range r.lessons {
		if !l.IsDeleted && l.CourseID == courseID {
			count++
		}
	}
	return count, nil
}

func (r *memoryRepository) Create(_ context.Context, l *model.Lesson) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !l.IsDeleted && r.takenLocked(l.CourseID, l.Order, l.ID) {
		return model.ErrOrderConflict
	}
	r.lessons[l.ID] = *l
	return nil
}

func (r *memoryRepository) Update(_ context.Context, l *model.Lesson) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.lessons[l.ID]
	if !ok || current.IsDeleted {
		return nil
	}
	if r.takenLocked(current.CourseID, l.Order, l.ID) {
		return model.ErrOrderConflict
	}

	current.Title = l.Title
	current.Order = l.Order
	current.UpdatedAt = l.UpdatedAt
	r.lessons[l.ID] = current
	return nil
}

func (r *memoryRepository) SoftDelete(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.lessons[id]
	if !ok || l.IsDeleted {
		return false, nil
	}
	l.IsDeleted = true
	l.UpdatedAt = time.Now().UTC()
	r.lessons[id] = l
	return true, nil
}

// SwapOrders chạy dưới write lock nên không ai thấy trạng thái trung gian
func (r *memoryRepository) SwapOrders(_ context.Context, a, b *model.Lesson) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	first, okA := r.lessons[a.ID]
	second, okB := r.lessons[b.ID]
	if !okA || !okB || first.IsDeleted || second.IsDeleted {
		return model.ErrLessonNotFound
	}

	for _, s := range []struct {
		id    uuid.UUID
		other uuid.UUID
		order int
	}{{a.ID, b.ID, a.Order}, {b.ID, a.ID, b.Order}} {
		for _, l := range r.lessons {
			if !l.IsDeleted && l.CourseID == first.CourseID && l.Order == s.order && l.ID != s.id && l.ID != s.other {
				return model.ErrOrderConflict
			}
		}
	}

	first.Order, first.UpdatedAt = a.Order, a.UpdatedAt
	second.Order, second.UpdatedAt = b.Order, b.UpdatedAt
	r.lessons[a.ID] = first
	r.lessons[b.ID] = second
	return nil
}
