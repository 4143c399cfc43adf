package job

import (
	"context"
	"fmt"

	"storefront-backend/internal/domains/order/model"
	"storefront-backend/internal/domains/order/repository"
	pricing "storefront-backend/internal/domains/pricing/model"
	"storefront-backend/pkg/logger"

	"github.com/hibiken/asynq"
)

// DailySalesSummaryHandler logs the totals of every stored order
type DailySalesSummaryHandler struct {
	repo repository.Repository
}

func NewDailySalesSummaryHandler(repo repository.Repository) *DailySalesSummaryHandler {
	return &DailySalesSummaryHandler{repo: repo}
}

func (h *DailySalesSummaryHandler) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	orders, err := h.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("list orders: %w", err)
	}

	summary := model.Summarize(orders)
	logger.Info("Daily sales summary", map[string]interface{}{
		"orders":  summary.Orders,
		"units":   summary.Units,
		"revenue": pricing.FormatCLP(summary.Revenue),
	})
	return nil
}
