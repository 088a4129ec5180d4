package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	courseModel "courseware-backend/internal/domains/course/model"
	"courseware-backend/internal/domains/lesson/model"
)

type mockLessonRepository struct {
	mock.Mock
}

func (m *mockLessonRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Lesson, error) {
	args := m.Called(ctx, id)
	l, _ := args.Get(0).(*model.Lesson)
	return l, args.Error(1)
}

func (m *mockLessonRepository) FindByCourseAndOrder(ctx context.Context, courseID uuid.UUID, order int, excludeID *uuid.UUID) ([]*model.Lesson, error) {
	args := m.Called(ctx, courseID, order, excludeID)
	l, _ := args.Get(0).([]*model.Lesson)
	return l, args.Error(1)
}

func (m *mockLessonRepository) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*model.Lesson, error) {
	args := m.Called(ctx, courseID)
	l, _ := args.Get(0).([]*model.Lesson)
	return l, args.Error(1)
}

func (m *mockLessonRepository) ListByCourses(ctx context.Context, courseIDs []uuid.UUID) (map[uuid.UUID][]*model.Lesson, error) {
	args := m.Called(ctx, courseIDs)
	l, _ := args.Get(0).(map[uuid.UUID][]*model.Lesson)
	return l, args.Error(1)
}

func (m *mockLessonRepository) CountActiveByCourse(ctx context.Context, courseID uuid.UUID) (int, error) {
	args := m.Called(ctx, courseID)
	return args.Int(0), args.Error(1)
}

func (m *mockLessonRepository) Create(ctx context.Context, lesson *model.Lesson) error {
	return m.Called(ctx, lesson).Error(0)
}

func (m *mockLessonRepository) Update(ctx context.Context, lesson *model.Lesson) error {
	return m.Called(ctx, lesson).Error(0)
}

func (m *mockLessonRepository) SoftDelete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockLessonRepository) SwapOrders(ctx context.Context, a, b *model.Lesson) error {
	return m.Called(ctx, a, b).Error(0)
}

type mockCourseReader struct {
	mock.Mock
}

func (m *mockCourseReader) GetByID(ctx context.Context, id uuid.UUID) (*courseModel.Course, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*courseModel.Course)
	return c, args.Error(1)
}
