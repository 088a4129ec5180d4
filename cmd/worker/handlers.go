package main

import (
	"github.com/hibiken/asynq"

	courseJob "courseware-backend/internal/domains/course/job"
	"courseware-backend/internal/shared"
	"courseware-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	statusChanged *courseJob.StatusChangedHandler
	summarySweep  *courseJob.SummarySweepHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		statusChanged: courseJob.NewStatusChangedHandler(c.CourseService),
		summarySweep:  courseJob.NewSummarySweepHandler(c.Cache),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeCourseStatusChanged, h.statusChanged.ProcessTask)
	mux.HandleFunc(shared.TypeCourseSummarySweep, h.summarySweep.ProcessTask)
}
