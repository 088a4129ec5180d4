package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"courseware-backend/internal/domains/lesson/model"
)

// repositorySuite chạy cùng một bộ test trên mọi store
type repositorySuite struct {
	suite.Suite

	newRepo    func() Repository
	seedCourse func() uuid.UUID

	ctx  context.Context
	repo Repository
}

func (s *repositorySuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = s.newRepo()
}

func (s *repositorySuite) newLesson(courseID uuid.UUID, title string, order int) *model.Lesson {
	now := time.Now().UTC().Truncate(time.Millisecond)
	l := &model.Lesson{
		ID:        uuid.New(),
		CourseID:  courseID,
		Title:     title,
		Order:     order,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.Require().NoError(s.repo.Create(s.ctx, l))
	return l
}

func (s *repositorySuite) TestCreateAndGet() {
	courseID := s.seedCourse()
	created := s.newLesson(courseID, "Intro", 1)

	got, err := s.repo.GetByID(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal(created.ID, got.ID)
	s.Equal(courseID, got.CourseID)
	s.Equal("Intro", got.Title)
	s.Equal(1, got.Order)
	s.WithinDuration(created.CreatedAt, got.CreatedAt, time.Millisecond)
}

func (s *repositorySuite) TestGetByID_Missing() {
	got, err := s.repo.GetByID(s.ctx, uuid.New())
	s.NoError(err)
	s.Nil(got)
}

func (s *repositorySuite) TestCreate_DuplicateOrderConflicts() {
	courseID := s.seedCourse()
	s.newLesson(courseID, "L1", 1)

	dup := &model.Lesson{ID: uuid.New(), CourseID: courseID, Title: "L2", Order: 1,
		CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC()}
	err := s.repo.Create(s.ctx, dup)
	s.ErrorIs(err, model.ErrOrderConflict)

	// Cùng order ở course khác thì hợp lệ
	s.newLesson(s.seedCourse(), "L1", 1)
}

func (s *repositorySuite) TestSoftDelete_FreesOrder() {
	courseID := s.seedCourse()
	l1 := s.newLesson(courseID, "L1", 1)

	ok, err := s.repo.SoftDelete(s.ctx, l1.ID)
	s.Require().NoError(err)
	s.True(ok)

	got, err := s.repo.GetByID(s.ctx, l1.ID)
	s.NoError(err)
	s.Nil(got)

	ok, err = s.repo.SoftDelete(s.ctx, l1.ID)
	s.NoError(err)
	s.False(ok, "second delete finds nothing")

	l3 := s.newLesson(courseID, "L3", 1)
	list, err := s.repo.ListByCourse(s.ctx, courseID)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal(l3.ID, list[0].ID)
}

func (s *repositorySuite) TestFindByCourseAndOrder() {
	courseID := s.seedCourse()
	l1 := s.newLesson(courseID, "L1", 1)
	s.newLesson(courseID, "L2", 2)

	hits, err := s.repo.FindByCourseAndOrder(s.ctx, courseID, 1, nil)
	s.Require().NoError(err)
	s.Require().Len(hits, 1)
	s.Equal(l1.ID, hits[0].ID)

	hits, err = s.repo.FindByCourseAndOrder(s.ctx, courseID, 1, &l1.ID)
	s.Require().NoError(err)
	s.Empty(hits)

	hits, err = s.repo.FindByCourseAndOrder(s.ctx, courseID, 7, nil)
	s.Require().NoError(err)
	s.Empty(hits)
}

func (s *repositorySuite) TestListByCourse_SortedAndScoped() {
	courseID := s.seedCourse()
	s.newLesson(courseID, "third", 30)
	s.newLesson(courseID, "first", -5)
	s.newLesson(courseID, "second", 2)
	s.newLesson(s.seedCourse(), "elsewhere", 1)

	list, err := s.repo.ListByCourse(s.ctx, courseID)
	s.Require().NoError(err)
	s.Equal([]string{"first", "second", "third"}, model.Titles(list))

	count, err := s.repo.CountActiveByCourse(s.ctx, courseID)
	s.Require().NoError(err)
	s.Equal(3, count)

	empty, err := s.repo.ListByCourse(s.ctx, uuid.New())
	s.Require().NoError(err)
	s.NotNil(empty)
	s.Empty(empty)
}

func (s *repositorySuite) TestListByCourses_Grouped() {
	c1, c2, c3 := s.seedCourse(), s.seedCourse(), s.seedCourse()
	s.newLesson(c1, "b", 2)
	s.newLesson(c1, "a", 1)
	s.newLesson(c2, "only", 9)
	deleted := s.newLesson(c2, "gone", 10)
	_, err := s.repo.SoftDelete(s.ctx, deleted.ID)
	s.Require().NoError(err)

	grouped, err := s.repo.ListByCourses(s.ctx, []uuid.UUID{c1, c2, c3})
	s.Require().NoError(err)
	s.Equal([]string{"a", "b"}, model.Titles(grouped[c1]))
	s.Equal([]string{"only"}, model.Titles(grouped[c2]))
	s.Empty(grouped[c3])

	none, err := s.repo.ListByCourses(s.ctx, nil)
	s.Require().NoError(err)
	s.Empty(none)
}

func (s *repositorySuite) TestUpdate() {
	courseID := s.seedCourse()
	l1 := s.newLesson(courseID, "L1", 1)
	s.newLesson(courseID, "L2", 2)

	l1.Title = "L1 renamed"
	l1.Order = 3
	l1.UpdatedAt = time.Now().UTC().Add(time.Minute).Truncate(time.Millisecond)
	s.Require().NoError(s.repo.Update(s.ctx, l1))

	got, err := s.repo.GetByID(s.ctx, l1.ID)
	s.Require().NoError(err)
	s.Equal("L1 renamed", got.Title)
	s.Equal(3, got.Order)
	s.WithinDuration(l1.UpdatedAt, got.UpdatedAt, time.Millisecond)

	l1.Order = 2
	s.ErrorIs(s.repo.Update(s.ctx, l1), model.ErrOrderConflict)
}

func (s *repositorySuite) TestSwapOrders() {
	courseID := s.seedCourse()
	a := s.newLesson(courseID, "A", 1)
	b := s.newLesson(courseID, "B", 2)
	s.newLesson(courseID, "C", 3)

	now := time.Now().UTC().Truncate(time.Millisecond)
	a.Order, b.Order = 2, 1
	a.UpdatedAt, b.UpdatedAt = now, now
	s.Require().NoError(s.repo.SwapOrders(s.ctx, a, b))

	list, err := s.repo.ListByCourse(s.ctx, courseID)
	s.Require().NoError(err)
	s.Equal([]string{"B", "A", "C"}, model.Titles(list))
	s.Equal([]int{1, 2, 3}, []int{list[0].Order, list[1].Order, list[2].Order})
}

func (s *repositorySuite) TestSwapOrders_AtOrderBounds() {
	courseID := s.seedCourse()
	low := s.newLesson(courseID, "low", model.MinOrder)
	high := s.newLesson(courseID, "high", model.MaxOrder)

	low.Order, high.Order = model.MaxOrder, model.MinOrder
	s.Require().NoError(s.repo.SwapOrders(s.ctx, low, high))

	list, err := s.repo.ListByCourse(s.ctx, courseID)
	s.Require().NoError(err)
	s.Equal([]string{"high", "low"}, model.Titles(list))
	s.Equal(model.MinOrder, list[0].Order)
	s.Equal(model.MaxOrder, list[1].Order)
}

func (s *repositorySuite) TestSwapOrders_MissingLesson() {
	courseID := s.seedCourse()
	a := s.newLesson(courseID, "A", 1)
	ghost := &model.Lesson{ID: uuid.New(), CourseID: courseID, Order: 1}

	a.Order = 5
	s.ErrorIs(s.repo.SwapOrders(s.ctx, a, ghost), model.ErrLessonNotFound)

	got, err := s.repo.GetByID(s.ctx, a.ID)
	s.Require().NoError(err)
	s.Equal(1, got.Order, "failed swap leaves orders untouched")
}
