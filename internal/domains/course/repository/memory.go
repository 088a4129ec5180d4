package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"courseware-backend/internal/domains/course/model"
)

type memoryRepository struct {
	mu      sync.RWMutex
	courses map[uuid.UUID]model.Course
}

func NewMemoryRepository() Repository {
	return &memoryRepository{courses: make(map[uuid.UUID]model.Course)}
}

func (r *memoryRepository) GetByID(_ context.Context, id uuid.UUID) (*model.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.courses[id]
	if !ok || c.IsDeleted {
		return nil, nil
	}
	return &c, nil
}

func (r *memoryRepository) Create(_ context.Context, c *model.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.courses[c.ID] = *c
	return nil
}

func (r *memoryRepository) Update(_ context.Context, c *model.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.courses[c.ID]
	if !ok || current.IsDeleted {
		return nil
	}
	current.Title = c.Title
	current.Description = c.Description
	current.Status = c.Status
	current.UpdatedAt = c.UpdatedAt
	r.courses[c.ID] = current
	return nil
}

func (r *memoryRepository) SoftDelete(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.courses[id]
	if !ok || c.IsDeleted {
		return false, nil
	}
	c.IsDeleted = true
	c.UpdatedAt = time.Now().UTC()
	r.courses[id] = c
	return true, nil
}

func (r *memoryRepository) Search(_ context.Context, filter Filter) ([]*model.Course, error) {
	if filter.Empty() {
		return []*model.Course{}, nil
	}
	query := foldTitle(filter.Query)

	r.mu.RLock()
	matched := make([]*model.Course, 0)
	for _, c := range r.courses {
		if c.IsDeleted {
			continue
		}
		if filter.Status != nil && c.Status != *filter.Status {
			continue
		}
		if query != "" && !strings.Contains(foldTitle(c.Title), query) {
			continue
		}
		c := c
		matched = append(matched, &c)
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID.String() < matched[j].ID.String()
	})

	if filter.Offset >= len(matched) {
		return []*model.Course{}, nil
	}
	end := len(matched)
	if filter.Limit < end-filter.Offset {
		end = filter.Offset + filter.Limit
	}
	return matched[filter.Offset:end], nil
}
