package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Singh-Prajwal/rental/internal/service"
)

// StartNotificationWorker registers notification handlers and starts the
// retry drain loop. The loop stops when ctx is cancelled.
func StartNotificationWorker(ctx context.Context, notificationService *service.NotificationService, interval time.Duration, logger *zap.Logger) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()

	if interval <= 0 {
		interval = 30 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if delivered := notificationService.RetryPending(ctx); delivered > 0 {
					logger.Info("retried queued notifications", zap.Int("delivered", delivered))
				}
			}
		}
	}()
}
