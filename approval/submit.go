package approval

import (
	"context"

	"go.uber.org/zap"
)

// Submit registers a new approval request and fans the decision prompt out to
// every eligible approver. A request already pending under the same key is
// superseded: its delivered prompts are swept first so no live button keeps
// pointing at the old payload, then the new entry replaces it.
// Returns how many approvers were actually reached.
func (e *Engine) Submit(ctx context.Context, kind Kind, p Payload) (int, error) {
	key := Key{Kind: kind, SubjectID: p.SubjectID}

	if old, ok := e.store.Get(key); ok {
		e.cleanup(ctx, old.Deliveries, Delivery{})
	}
	e.store.Create(key, p)

	recipients, err := e.recipients(ctx, kind, p)
	if err != nil {
		return 0, err
	}
	if len(recipients) == 0 {
		e.logger.Warn("no eligible approvers",
			zap.String("kind", string(kind)),
			zap.Int64("subject_id", p.SubjectID),
			zap.String("branch", p.Branch))
		return 0, nil
	}

	spec := kindSpecs[kind]
	buttons := [][]Button{{
		{Text: "✅ Одобрить", Data: Action{Kind: kind, Decision: Approve, SubjectID: p.SubjectID, Fingerprint: spec.fingerprint(p)}.Encode()},
		{Text: "❌ Отклонить", Data: Action{Kind: kind, Decision: Reject, SubjectID: p.SubjectID, Fingerprint: spec.fingerprint(p)}.Encode()},
	}}
	reached := e.fanout(ctx, key, recipients, spec.prompt(p, e.branchTitle), buttons)

	e.logger.Info("request submitted",
		zap.String("kind", string(kind)),
		zap.Int64("subject_id", p.SubjectID),
		zap.String("branch", p.Branch),
		zap.Int("recipients", len(recipients)),
		zap.Int("reached", len(reached)))
	return len(reached), nil
}
