package repository

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"courseware-backend/internal/domains/course/model"
)

type repositorySuite struct {
	suite.Suite

	newRepo func() Repository

	ctx  context.Context
	repo Repository
	// base tăng dần để created_at của mỗi course khác nhau
	base time.Time
}

func (s *repositorySuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = s.newRepo()
	s.base = time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
}

func (s *repositorySuite) newCourse(title string, status model.Status) *model.Course {
	s.base = s.base.Add(time.Minute)
	c := &model.Course{
		ID:        uuid.New(),
		Title:     title,
		Status:    status,
		CreatedAt: s.base,
		UpdatedAt: s.base,
	}
	s.Require().NoError(s.repo.Create(s.ctx, c))
	return c
}

func titles(courses []*model.Course) []string {
	out := make([]string, 0, len(courses))
	for _, c := range courses {
		out = append(out, c.Title)
	}
	return out
}

func (s *repositorySuite) TestCreateGetUpdate() {
	desc := "all about goroutines"
	c := s.newCourse("Concurrency", model.StatusDraft)

	got, err := s.repo.GetByID(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal("Concurrency", got.Title)
	s.Nil(got.Description)
	s.Equal(model.StatusDraft, got.Status)

	c.Title = "Concurrency in Go"
	c.Description = &desc
	c.Status = model.StatusPublished
	c.UpdatedAt = c.UpdatedAt.Add(time.Hour)
	s.Require().NoError(s.repo.Update(s.ctx, c))

	got, err = s.repo.GetByID(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Equal("Concurrency in Go", got.Title)
	s.Require().NotNil(got.Description)
	s.Equal(desc, *got.Description)
	s.Equal(model.StatusPublished, got.Status)
	s.WithinDuration(c.UpdatedAt, got.UpdatedAt, time.Millisecond)
	s.WithinDuration(c.CreatedAt, got.CreatedAt, time.Millisecond)
}

func (s *repositorySuite) TestSoftDelete() {
	c := s.newCourse("Doomed", model.StatusDraft)

	ok, err := s.repo.SoftDelete(s.ctx, c.ID)
	s.Require().NoError(err)
	s.True(ok)

	got, err := s.repo.GetByID(s.ctx, c.ID)
	s.NoError(err)
	s.Nil(got)

	ok, err = s.repo.SoftDelete(s.ctx, c.ID)
	s.NoError(err)
	s.False(ok)

	ok, err = s.repo.SoftDelete(s.ctx, uuid.New())
	s.NoError(err)
	s.False(ok)
}

func (s *repositorySuite) TestSearch_Filters() {
	s.newCourse("Intro to Go", model.StatusDraft)
	s.newCourse("Advanced GO patterns", model.StatusPublished)
	s.newCourse("Rust basics", model.StatusPublished)
	s.newCourse("100% practical", model.StatusDraft)
	deleted := s.newCourse("Go deleted", model.StatusDraft)
	_, err := s.repo.SoftDelete(s.ctx, deleted.ID)
	s.Require().NoError(err)

	all, err := s.repo.Search(s.ctx, Filter{Limit: 10})
	s.Require().NoError(err)
	s.Equal([]string{"100% practical", "Rust basics", "Advanced GO patterns", "Intro to Go"}, titles(all))

	published := model.StatusPublished
	got, err := s.repo.Search(s.ctx, Filter{Status: &published, Limit: 10})
	s.Require().NoError(err)
	s.Equal([]string{"Rust basics", "Advanced GO patterns"}, titles(got))

	got, err = s.repo.Search(s.ctx, Filter{Query: "go", Limit: 10})
	s.Require().NoError(err)
	s.Equal([]string{"Advanced GO patterns", "Intro to Go"}, titles(got))

	got, err = s.repo.Search(s.ctx, Filter{Status: &published, Query: "Go", Limit: 10})
	s.Require().NoError(err)
	s.Equal([]string{"Advanced GO patterns"}, titles(got))

	got, err = s.repo.Search(s.ctx, Filter{Query: "%", Limit: 10})
	s.Require().NoError(err)
	s.Equal([]string{"100% practical"}, titles(got), "wildcards in the query are literal")
}

func (s *repositorySuite) TestSearch_UnicodeCaseInsensitive() {
	s.newCourse("ÉCOLE Tiếng Việt", model.StatusDraft)
	s.newCourse("Lập trình Go", model.StatusDraft)

	got, err := s.repo.Search(s.ctx, Filter{Query: "école tiếng", Limit: 10})
	s.Require().NoError(err)
	s.Equal([]string{"ÉCOLE Tiếng Việt"}, titles(got))

	got, err = s.repo.Search(s.ctx, Filter{Query: "LẬP TRÌNH", Limit: 10})
	s.Require().NoError(err)
	s.Equal([]string{"Lập trình Go"}, titles(got))

	// title_lower phải theo kịp Update
	course := got[0]
	course.Title = "Đồ án cuối khóa"
	course.UpdatedAt = course.UpdatedAt.Add(time.Minute)
	s.Require().NoError(s.repo.Update(s.ctx, course))

	got, err = s.repo.Search(s.ctx, Filter{Query: "ĐỒ ÁN", Limit: 10})
	s.Require().NoError(err)
	s.Equal([]string{"Đồ án cuối khóa"}, titles(got))

	got, err = s.repo.Search(s.ctx, Filter{Query: "lập trình", Limit: 10})
	s.Require().NoError(err)
	s.Empty(got)
}

func (s *repositorySuite) TestSearch_Pagination() {
	for i := 1; i <= 12; i++ {
		s.newCourse(fmt.Sprintf("course %02d", i), model.StatusDraft)
	}

	first, err := s.repo.Search(s.ctx, Filter{Offset: 0, Limit: 10})
	s.Require().NoError(err)
	s.Len(first, 10)
	s.Equal("course 12", first[0].Title)

	second, err := s.repo.Search(s.ctx, Filter{Offset: 10, Limit: 10})
	s.Require().NoError(err)
	s.Equal([]string{"course 02", "course 01"}, titles(second))

	beyond, err := s.repo.Search(s.ctx, Filter{Offset: 20, Limit: 10})
	s.Require().NoError(err)
	s.Empty(beyond)

	negative, err := s.repo.Search(s.ctx, Filter{Offset: -10, Limit: 10})
	s.Require().NoError(err)
	s.Empty(negative)

	noLimit, err := s.repo.Search(s.ctx, Filter{Offset: 0, Limit: 0})
	s.Require().NoError(err)
	s.Empty(noLimit)

	rest, err := s.repo.Search(s.ctx, Filter{Offset: 10, Limit: math.MaxInt32})
	s.Require().NoError(err)
	s.Equal([]string{"course 02", "course 01"}, titles(rest))
}
