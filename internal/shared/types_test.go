package shared

import (
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalTask(t *testing.T) {
	task := asynq.NewTask(TypeCourseStatusChanged, []byte(`{"course_id":"abc","status":"Draft"}`))

	var p CourseStatusChangedPayload
	require.NoError(t, UnmarshalTask(task, &p))
	assert.Equal(t, "abc", p.CourseID)
	assert.Equal(t, "Draft", p.Status)
}

func TestUnmarshalTask_BadPayloadSkipsRetry(t *testing.T) {
	task := asynq.NewTask(TypeCourseStatusChanged, []byte(`not json`))

	var p CourseStatusChangedPayload
	err := UnmarshalTask(task, &p)
	require.Error(t, err)
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}
