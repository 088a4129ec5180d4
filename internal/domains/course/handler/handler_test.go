package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"courseware-backend/internal/domains/course/model"
)

type mockCourseService struct {
	mock.Mock
}

func (m *mockCourseService) Create(ctx context.Context, title string, description *string) (*model.Course, error) {
	args := m.Called(ctx, title, description)
	c, _ := args.Get(0).(*model.Course)
	return c, args.Error(1)
}

func (m *mockCourseService) Update(ctx context.Context, id uuid.UUID, title string, description *string) error {
	return m.Called(ctx, id, title, description).Error(0)
}

func (m *mockCourseService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockCourseService) Publish(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockCourseService) Unpublish(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockCourseService) Search(ctx context.Context, page int, status *model.Status, query *string) ([]*model.CourseSummary, error) {
	args := m.Called(ctx, page, status, query)
	s, _ := args.Get(0).([]*model.CourseSummary)
	return s, args.Error(1)
}

func (m *mockCourseService) GetSummary(ctx context.Context, id uuid.UUID) (*model.CourseSummary, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*model.CourseSummary)
	return s, args.Error(1)
}

func (m *mockCourseService) GetByID(ctx context.Context, id uuid.UUID) (*model.CourseDetail, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*model.CourseDetail)
	return d, args.Error(1)
}

func (m *mockCourseService) RefreshSummary(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Meta *struct {
		Page  int `json:"page"`
		Limit int `json:"limit"`
	} `json:"meta"`
}

func setupRouter(svc *mockCourseService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewCourseHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func do(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func TestCreateCourse(t *testing.T) {
	svc := new(mockCourseService)
	r := setupRouter(svc)
	created := &model.Course{ID: uuid.New(), Title: "Go 101", Status: model.StatusDraft, CreatedAt: time.Now()}
	svc.On("Create", mock.Anything, "Go 101", (*string)(nil)).Return(created, nil)

	w, env := do(t, r, http.MethodPost, "/api/v1/courses", `{"title":"Go 101"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, env.Success)
	var got model.Course
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, model.StatusDraft, got.Status)
}

func TestCreateCourse_Validation(t *testing.T) {
	svc := new(mockCourseService)
	r := setupRouter(svc)

	w, env := do(t, r, http.MethodPost, "/api/v1/courses", `{"title":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	w, env = do(t, r, http.MethodPost, "/api/v1/courses", `{"title":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", env.Error.Code)

	long := strings.Repeat("a", model.TitleMaxLength+1)
	w, _ = do(t, r, http.MethodPost, "/api/v1/courses", `{"title":"`+long+`"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestPublishCourse_Gate(t *testing.T) {
	svc := new(mockCourseService)
	r := setupRouter(svc)
	id := uuid.New()
	svc.On("Publish", mock.Anything, id).Return(model.NewPublishGateError())

	w, env := do(t, r, http.MethodPatch, "/api/v1/courses/"+id.String()+"/publish", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, model.ErrCodePublishGate, env.Error.Code)
	assert.Equal(t, "cannot publish a course with no active lessons", env.Error.Message)
}

func TestUnpublishCourse(t *testing.T) {
	svc := new(mockCourseService)
	r := setupRouter(svc)
	id := uuid.New()
	svc.On("Unpublish", mock.Anything, id).Return(nil)

	w, env := do(t, r, http.MethodPatch, "/api/v1/courses/"+id.String()+"/unpublish", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
}

func TestGetCourse_NotFound(t *testing.T) {
	svc := new(mockCourseService)
	r := setupRouter(svc)
	id := uuid.New()
	svc.On("GetByID", mock.Anything, id).Return(nil, model.NewCourseNotFoundError())

	w, env := do(t, r, http.MethodGet, "/api/v1/courses/"+id.String(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, model.ErrCodeCourseNotFound, env.Error.Code)
}

func TestInvalidCourseID(t *testing.T) {
	svc := new(mockCourseService)
	r := setupRouter(svc)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/v1/courses/not-a-uuid"},
		{http.MethodGet, "/api/v1/courses/not-a-uuid/summary"},
		{http.MethodDelete, "/api/v1/courses/not-a-uuid"},
		{http.MethodPatch, "/api/v1/courses/not-a-uuid/publish"},
	} {
		w, env := do(t, r, tc.method, tc.path, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, tc.path)
		assert.Equal(t, "INVALID_ID", env.Error.Code, tc.path)
	}
}

func TestDeleteCourse_InternalError(t *testing.T) {
	svc := new(mockCourseService)
	r := setupRouter(svc)
	id := uuid.New()
	svc.On("Delete", mock.Anything, id).Return(errors.New("connection refused"))

	w, env := do(t, r, http.MethodDelete, "/api/v1/courses/"+id.String(), "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "INTERNAL_ERROR", env.Error.Code)
}

func TestSearchCourses(t *testing.T) {
	svc := new(mockCourseService)
	r := setupRouter(svc)

	published := model.StatusPublished
	q := "go"
	svc.On("Search", mock.Anything, 2, &published, &q).Return([]*model.CourseSummary{
		{ID: uuid.New(), Title: "Go", Status: published, LessonsCount: 1, LessonTitles: []string{"Intro"}},
	}, nil)

	w, env := do(t, r, http.MethodGet, "/api/v1/courses/search?page=2&status=published&q=go", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 2, env.Meta.Page)
	assert.Equal(t, model.PageSize, env.Meta.Limit)

	var got []model.CourseSummary
	require.NoError(t, json.Unmarshal(env.Data, &got))
	require.Len(t, got, 1)
	assert.Equal(t, []string{"Intro"}, got[0].LessonTitles)
}

func TestSearchCourses_Defaults(t *testing.T) {
	svc := new(mockCourseService)
	r := setupRouter(svc)
	svc.On("Search", mock.Anything, 1, (*model.Status)(nil), (*string)(nil)).Return([]*model.CourseSummary{}, nil)

	// status lạ bị bỏ qua
	w, env := do(t, r, http.MethodGet, "/api/v1/courses/search?status=archived", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, string(env.Data))
}

func TestSearchCourses_BadPage(t *testing.T) {
	svc := new(mockCourseService)
	r := setupRouter(svc)

	w, env := do(t, r, http.MethodGet, "/api/v1/courses/search?page=abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_QUERY", env.Error.Code)
}

func TestGetCourseSummary(t *testing.T) {
	svc := new(mockCourseService)
	r := setupRouter(svc)
	id := uuid.New()
	svc.On("GetSummary", mock.Anything, id).Return(&model.CourseSummary{ID: id, Title: "C1", LessonTitles: []string{}}, nil)

	w, env := do(t, r, http.MethodGet, "/api/v1/courses/"+id.String()+"/summary", "")
	require.Equal(t, http.StatusOK, w.Code)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "C1", got["title"])
	assert.Contains(t, got, "lessons_count")
}
