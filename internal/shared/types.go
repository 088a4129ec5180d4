package shared

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// Queue names
const (
	QueueDefault = "default"
	QueueLow     = "low"
)

// Task types
const (
	TypeCourseStatusChanged = "course:status_changed"
	TypeCourseSummarySweep  = "course:summary_sweep"
)

// CourseStatusChangedPayload được enqueue sau mỗi lần publish/unpublish
type CourseStatusChangedPayload struct {
	CourseID string `json:"course_id"`
	Status   string `json:"status"`
}

// UnmarshalTask decode payload của task vào dest.
// Payload sai format trả về lỗi bọc asynq.SkipRetry vì retry không sửa được.
func UnmarshalTask(t *asynq.Task, dest interface{}) error {
	if err := json.Unmarshal(t.Payload(), dest); err != nil {
		return fmt.Errorf("invalid %s payload: %v: %w", t.Type(), err, asynq.SkipRetry)
	}
	return nil
}
