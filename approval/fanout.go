package approval

import (
	"context"

	"go.uber.org/zap"
)

// fanout sends the prompt to every recipient and records each successful
// delivery in the request's ledger. Best-effort broadcast: a failed send is
// logged and skipped, it never aborts the remaining recipients. Sends are
// paced by the engine limiter to stay under the channel's throttle.
// Returns the principals actually reached.
func (e *Engine) fanout(ctx context.Context, key Key, recipients []Principal, text string, buttons [][]Button) []Principal {
	var reached []Principal
	for _, r := range recipients {
		if err := e.limiter.Wait(ctx); err != nil {
			e.logger.Warn("fanout aborted", zap.String("kind", string(key.Kind)), zap.Error(err))
			return reached
		}
		d, err := e.messenger.Send(ctx, r.ChatID, text, buttons)
		if err != nil {
			e.logger.Warn("fanout send",
				zap.String("kind", string(key.Kind)),
				zap.Int64("subject_id", key.SubjectID),
				zap.Int64("recipient_id", r.ID),
				zap.Error(err))
			continue
		}
		e.store.AppendDelivery(key, d)
		reached = append(reached, r)
	}
	return reached
}
