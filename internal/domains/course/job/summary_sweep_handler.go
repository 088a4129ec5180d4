package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"courseware-backend/internal/domains/course/model"
	"courseware-backend/pkg/cache"
)

// SummarySweepHandler xóa toàn bộ summary cache theo lịch.
// Summary sẽ được dựng lại ở lần đọc kế tiếp.
type SummarySweepHandler struct {
	cache cache.Cache
}

func NewSummarySweepHandler(cache cache.Cache) *SummarySweepHandler {
	return &SummarySweepHandler{cache: cache}
}

func (h *SummarySweepHandler) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	if err := h.cache.DeletePattern(ctx, model.SummaryCachePattern); err != nil {
		log.Error().Err(err).Msg("Failed to sweep course summaries")
		return fmt.Errorf("sweep summaries: %w", err)
	}

	log.Info().Msg("Course summary cache swept")
	return nil
}
