package approval

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// cleanup deletes every delivered prompt except the one the acting approver
// tapped (that one is edited in place instead). Fire-and-forget sweep:
// already-gone messages are skipped silently, other failures are logged and
// never retried, and no failure stops the remaining deliveries.
func (e *Engine) cleanup(ctx context.Context, deliveries []Delivery, except Delivery) {
	for _, d := range deliveries {
		if d == except {
			continue
		}
		if err := e.messenger.Delete(ctx, d); err != nil {
			if errors.Is(err, ErrMessageGone) {
				continue
			}
			e.logger.Warn("cleanup delete",
				zap.Int64("chat_id", d.ChatID),
				zap.Int("message_id", d.MessageID),
				zap.Error(err))
		}
	}
}
