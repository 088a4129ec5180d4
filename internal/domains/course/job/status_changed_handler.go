package job

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"courseware-backend/internal/shared"
)

// SummaryRefresher là phần course service mà job cần
type SummaryRefresher interface {
	RefreshSummary(ctx context.Context, courseID uuid.UUID) error
}

// StatusChangedHandler rebuild cache summary sau khi course publish/unpublish
type StatusChangedHandler struct {
	courses SummaryRefresher
}

func NewStatusChangedHandler(courses SummaryRefresher) *StatusChangedHandler {
	return &StatusChangedHandler{
		courses: courses,
	}
}

// ProcessTask xóa và dựng lại summary của course
func (h *StatusChangedHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.CourseStatusChangedPayload
	if err := shared.UnmarshalTask(task, &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal CourseStatusChanged payload")
		return err
	}

	courseID, err := uuid.Parse(payload.CourseID)
	if err != nil {
		log.Error().Err(err).Str("course_id", payload.CourseID).Msg("Invalid course id in task")
		// Payload hỏng thì retry cũng vô ích
		return fmt.Errorf("parse course id: %v: %w", err, asynq.SkipRetry)
	}

	log.Info().
		Str("course_id", payload.CourseID).
		Str("status", payload.Status).
		Msg("Refreshing course summary")

	if err := h.courses.RefreshSummary(ctx, courseID); err != nil {
		log.Error().
			Err(err).
			Str("course_id", payload.CourseID).
			Msg("Failed to refresh course summary")
		return fmt.Errorf("refresh summary: %w", err)
	}

	return nil
}
