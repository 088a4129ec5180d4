package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"courseware-backend/internal/domains/lesson/model"
	"courseware-backend/internal/domains/lesson/service"
	"courseware-backend/internal/shared/response"
)

// =====================================================
// LESSON HANDLER
// =====================================================

type LessonHandler struct {
	lessonService service.Service
}

func NewLessonHandler(lessonService service.Service) *LessonHandler {
	return &LessonHandler{
		lessonService: lessonService,
	}
}

func (h *LessonHandler) RegisterRoutes(rg *gin.RouterGroup) {
	lessons := rg.Group("/lessons")
	{
		lessons.GET("/course/:courseId", h.ListLessons)
		lessons.POST("", h.CreateLesson)
		lessons.POST("/swap", h.SwapLessons)
		lessons.PUT("/:id", h.UpdateLesson)
		lessons.DELETE("/:id", h.DeleteLesson)
		lessons.PATCH("/:id/reorder", h.ReorderLesson)
	}
}

// ListLessons returns active lessons of a course sorted by order
// GET /api/v1/lessons/course/:courseId
func (h *LessonHandler) ListLessons(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("courseId"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid course ID")
		return
	}

	lessons, err := h.lessonService.ListByCourse(c.Request.Context(), courseID)
	if err != nil {
		statusCode, errCode := mapLessonError(err)
		respondError(c, statusCode, errCode, err.Error())
		return
	}

	respondSuccess(c, http.StatusOK, lessons)
}

// CreateLesson
// POST /api/v1/lessons
func (h *LessonHandler) CreateLesson(c *gin.Context) {
	// Step 1: Bind request body
	var req model.CreateLessonRequest
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
	lesson, err := h.lessonService.Create(c.Request.Context(), req.ParsedCourseID(), req.Title, *req.Order)
	if err != nil {
		statusCode, errCode := mapLessonError(err)
		respondError(c, statusCode, errCode, err.Error())
		return
	}

	respondSuccess(c, http.StatusCreated, lesson)
}

// UpdateLesson changes title and order together
// PUT /api/v1/lessons/:id
func (h *LessonHandler) UpdateLesson(c *gin.Context) {
	lessonID, ok := parseLessonID(c)
	if !ok {
		return
	}

	var req model.UpdateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.lessonService.Update(c.Request.Context(), lessonID, req.Title, *req.Order); err != nil {
		statusCode, errCode := mapLessonError(err)
		respondError(c, statusCode, errCode, err.Error())
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{
		"message": "Lesson updated successfully",
	})
}

// DeleteLesson
// DELETE /api/v1/lessons/:id
func (h *LessonHandler) DeleteLesson(c *gin.Context) {
	lessonID, ok := parseLessonID(c)
	if !ok {
		return
	}

	if err := h.lessonService.Delete(c.Request.Context(), lessonID); err != nil {
		statusCode, errCode := mapLessonError(err)
		respondError(c, statusCode, errCode, err.Error())
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{
		"message": "Lesson deleted successfully",
	})
}

// ReorderLesson
// PATCH /api/v1/lessons/:id/reorder
func (h *LessonHandler) ReorderLesson(c *gin.Context) {
	lessonID, ok := parseLessonID(c)
	if !ok {
		return
	}

	var req model.ReorderLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.lessonService.Reorder(c.Request.Context(), lessonID, *req.NewOrder); err != nil {
		statusCode, errCode := mapLessonError(err)
		respondError(c, statusCode, errCode, err.Error())
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{
		"message": "Lesson reordered successfully",
	})
}

// SwapLessons exchanges the orders of two lessons in the same course
// POST /api/v1/lessons/swap
func (h *LessonHandler) SwapLessons(c *gin.Context) {
	var req model.SwapLessonsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	firstID := uuid.MustParse(req.FirstID)
	secondID := uuid.MustParse(req.SecondID)
	if err := h.lessonService.Swap(c.Request.Context(), firstID, secondID); err != nil {
		statusCode, errCode := mapLessonError(err)
		respondError(c, statusCode, errCode, err.Error())
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{
		"message": "Lessons swapped successfully",
	})
}

// =====================================================
// HELPER FUNCTIONS
// =====================================================

func parseLessonID(c *gin.Context) (uuid.UUID, bool) {
	lessonID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid lesson ID")
		return uuid.Nil, false
	}
	return lessonID, true
}

func respondSuccess(c *gin.Context, statusCode int, data interface{}) {
	response.Success(c, statusCode, data)
}

func respondError(c *gin.Context, statusCode int, code, message string) {
	response.ErrorResponse(c, statusCode, code, message)
}

// mapLessonError maps lesson error to HTTP status code
func mapLessonError(err error) (int, string) {
	if lessonErr, ok := model.AsLessonError(err); ok {
		switch lessonErr.Code {
		case model.ErrCodeLessonNotFound, model.ErrCodeCourseNotFound:
			return http.StatusNotFound, lessonErr.Code
		case model.ErrCodeOrderConflict:
			return http.StatusConflict, lessonErr.Code
		case model.ErrCodeInvalidTitle, model.ErrCodeInvalidSwap, model.ErrCodeInvalidOrder:
			return http.StatusBadRequest, lessonErr.Code
		default:
			return http.StatusInternalServerError, "INTERNAL_ERROR"
		}
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR"
}
