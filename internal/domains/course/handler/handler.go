package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"courseware-backend/internal/domains/course/model"
	"courseware-backend/internal/domains/course/service"
	"courseware-backend/internal/shared/response"
)

// =====================================================
// COURSE HANDLER
// =====================================================

type CourseHandler struct {
	courseService service.Service
}

func NewCourseHandler(courseService service.Service) *CourseHandler {
	return &CourseHandler{
		courseService: courseService,
	}
}

// RegisterRoutes gắn các route course vào group /courses
func (h *CourseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	courses := rg.Group("/courses")
	{
		courses.GET("/search", h.SearchCourses)
		courses.GET("/:id", h.GetCourse)
		courses.GET("/:id/summary", h.GetCourseSummary)
		courses.POST("", h.CreateCourse)
		courses.PUT("/:id", h.UpdateCourse)
		courses.DELETE("/:id", h.DeleteCourse)
		courses.PATCH("/:id/publish", h.PublishCourse)
		courses.PATCH("/:id/unpublish", h.UnpublishCourse)
	}
}

// =====================================================
// READ ENDPOINTS
// =====================================================

// SearchCourses lists course summaries, 10 per page
// GET /api/v1/courses/search?page=&status=&q=
func (h *CourseHandler) SearchCourses(c *gin.Context) {
	var query model.SearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_QUERY", err.Error())
		return
	}

	page, status, q := query.Filters()
	summaries, err := h.courseService.Search(c.Request.Context(), page, status, q)
	if err != nil {
		statusCode, errCode := mapCourseError(err)
		respondError(c, statusCode, errCode, err.Error())
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, summaries, &response.Meta{
		Page:  page,
		Limit: model.PageSize,
	})
}

// GetCourse returns the course with its active lessons
// GET /api/v1/courses/:id
func (h *CourseHandler) GetCourse(c *gin.Context) {
	courseID, ok := parseCourseID(c)
	if !ok {
		return
	}

	detail, err := h.courseService.GetByID(c.Request.Context(), courseID)
	if err != nil {
		statusCode, errCode := mapCourseError(err)
		respondError(c, statusCode, errCode, err.Error())
		return
	}

	respondSuccess(c, http.StatusOK, detail)
}

// GetCourseSummary
// GET /api/v1/courses/:id/summary
func (h *CourseHandler) GetCourseSummary(c *gin.Context) {
	courseID, ok := parseCourseID(c)
	if !ok {
		return
	}

	summary, err := h.courseService.GetSummary(c.Request.Context(), courseID)
	if err != nil {
		statusCode, errCode := mapCourseError(err)
		respondError(c, statusCode, errCode, err.Error())
		return
	}

	respondSuccess(c, http.StatusOK, summary)
}

// =====================================================
// WRITE ENDPOINTS
// =====================================================

// CreateCourse creates a Draft course
// POST /api/v1/courses
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	// Step 1: Bind request body
	var req model.CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	// Step 2: Validate request
	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	// Step 3: Call service
	course, err := h.courseService.Create(c.Request.Context(), req.Title, req.Description)
	if err != nil {
		statusCode, errCode := mapCourseError(err)
		respondError(c, statusCode, errCode, err.Error())
		return
	}

	respondSuccess(c, http.StatusCreated, course)
}

// UpdateCourse
// PUT /api/v1/courses/:id
func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	courseID, ok := parseCourseID(c)
	if !ok {
		return
	}

	var req model.CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.courseService.Update(c.Request.Context(), courseID, req.Title, req.Description); err != nil {
		statusCode, errCode := mapCourseError(err)
		respondError(c, statusCode, errCode, err.Error())
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{
		"message": "Course updated successfully",
	})
}

// DeleteCourse soft deletes the course, lessons are kept
// DELETE /api/v1/courses/:id
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	courseID, ok := parseCourseID(c)
	if !ok {
		return
	}

	if err := h.courseService.Delete(c.Request.Context(), courseID); err != nil {
		statusCode, errCode := mapCourseError(err)
		respondError(c, statusCode, errCode, err.Error())
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{
		"message": "Course deleted successfully",
	})
}

// PublishCourse
// PATCH /api/v1/courses/:id/publish
func (h *CourseHandler) PublishCourse(c *gin.Context) {
	courseID, ok := parseCourseID(c)
	if !ok {
		return
	}

	if err := h.courseService.Publish(c.Request.Context(), courseID); err != nil {
		statusCode, errCode := mapCourseError(err)
		respondError(c, statusCode, errCode, err.Error())
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{
		"message": "Course published successfully",
	})
}

// UnpublishCourse
// PATCH /api/v1/courses/:id/unpublish
func (h *CourseHandler) UnpublishCourse(c *gin.Context) {
	courseID, ok := parseCourseID(c)
	if !ok {
		return
	}

	if err := h.courseService.Unpublish(c.Request.Context(), courseID); err != nil {
		statusCode, errCode := mapCourseError(err)
		respondError(c, statusCode, errCode, err.Error())
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{
		"message": "Course unpublished successfully",
	})
}

// =====================================================
// HELPER FUNCTIONS
// =====================================================

func parseCourseID(c *gin.Context) (uuid.UUID, bool) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid course ID")
		return uuid.Nil, false
	}
	return courseID, true
}

// respondSuccess sends success response
func respondSuccess(c *gin.Context, statusCode int, data interface{}) {
	response.Success(c, statusCode, data)
}

// respondError sends error response
func respondError(c *gin.Context, statusCode int, code, message string) {
	response.ErrorResponse(c, statusCode, code, message)
}

// mapCourseError maps course error to HTTP status code
func mapCourseError(err error) (int, string) {
	if courseErr, ok := model.AsCourseError(err); ok {
		switch courseErr.Code {
		case model.ErrCodeCourseNotFound:
			return http.StatusNotFound, courseErr.Code
		case model.ErrCodePublishGate:
			return http.StatusBadRequest, courseErr.Code
		case model.ErrCodeInvalidTitle, model.ErrCodeInvalidDescription:
			return http.StatusBadRequest, courseErr.Code
		default:
			return http.StatusInternalServerError, "INTERNAL_ERROR"
		}
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR"
}
