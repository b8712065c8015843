package approval

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Expected decision outcomes. All four are terminal for the tapped button and
// leave no side effect except ErrMutationFailed (see Decide).
var (
	// ErrAlreadyProcessed: the request was resolved by another approver or
	// superseded by a newer request. The race loser sees this.
	ErrAlreadyProcessed = errors.New("request already processed")
	// ErrStalePayload: the button was rendered for a payload that has since
	// been replaced; the live request stays pending and decidable.
	ErrStalePayload = errors.New("request data changed")
	// ErrNotAuthorized: the acting principal may not decide this request;
	// the request stays pending for a legitimate approver.
	ErrNotAuthorized = errors.New("not authorized")
	// ErrMutationFailed: the user-record mutation failed after the request
	// was already claimed. The request is gone and the change was not
	// applied; there is no automatic recovery (see Decide).
	ErrMutationFailed = errors.New("mutation failed")
)

// UserMutator applies the decided effect to the user record.
type UserMutator interface {
	SetStatus(ctx context.Context, userID int64, status string) error
	Rename(ctx context.Context, userID int64, name string) error
	SetBranch(ctx context.Context, userID int64, branch string) error
	Delete(ctx context.Context, userID int64) error
}

// Messenger is the outbound delivery channel. Every call may fail
// independently per recipient. Delete returns ErrMessageGone (possibly
// wrapped) when the message no longer exists.
type Messenger interface {
	Send(ctx context.Context, chatID int64, text string, buttons [][]Button) (Delivery, error)
	Edit(ctx context.Context, d Delivery, text string) error
	Delete(ctx context.Context, d Delivery) error
}

// ErrMessageGone marks a delete of a message that is already gone; cleanup
// swallows it silently.
var ErrMessageGone = errors.New("message already gone")

// Button is one inline button (text + callback data).
type Button struct {
	Text string
	Data string
}

// Engine runs the approval workflow: submit fans a prompt out to every
// eligible approver, decide lets exactly one of them resolve it.
type Engine struct {
	store       Store
	dir         Directory
	users       UserMutator
	messenger   Messenger
	limiter     *rate.Limiter
	logger      *zap.Logger
	branchTitle func(string) string
}

// Option configures an Engine.
type Option func(*Engine)

// WithSendRate overrides the fanout pacing (messages per second, burst).
func WithSendRate(perSecond float64, burst int) Option {
	return func(e *Engine) { e.limiter = rate.NewLimiter(rate.Limit(perSecond), burst) }
}

// WithBranchTitle sets the branch-id-to-title mapping used in prompts.
func WithBranchTitle(f func(string) string) Option {
	return func(e *Engine) { e.branchTitle = f }
}

func NewEngine(store Store, dir Directory, users UserMutator, messenger Messenger, logger *zap.Logger, opts ...Option) *Engine {
	e := &Engine{
		store:     store,
		dir:       dir,
		users:     users,
		messenger: messenger,
		// Telegram throttles bots around 30 msg/s; stay well under.
		limiter:     rate.NewLimiter(rate.Limit(20), 5),
		logger:      logger.With(zap.String("mod", "approval")),
		branchTitle: func(id string) string { return id },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Decide handles one approver tapping approve/reject. acting is the prompt
// message the tap came from: on success it is edited in place to show the
// outcome while every other delivered prompt is swept.
//
// Order matters: lookup, staleness, authorization, then claim. Claim is the
// single synchronization point — after it succeeds no other decision on the
// same key can get past this line. A mutation failure after the claim leaves
// the request unresolved from the subject's point of view but already gone
// from the store; this narrow window is accepted (no two-phase commit here)
// and surfaced as ErrMutationFailed to the acting approver.
func (e *Engine) Decide(ctx context.Context, a Action, actor Principal, acting Delivery) error {
	key := Key{Kind: a.Kind, SubjectID: a.SubjectID}

	req, ok := e.store.Get(key)
	if !ok {
		return ErrAlreadyProcessed
	}
	if a.Fingerprint != "" && a.Fingerprint != req.Payload.Branch {
		return ErrStalePayload
	}
	if !Authorized(a.Kind, req.Payload, actor) {
		e.logger.Warn("decision denied",
			zap.String("kind", string(a.Kind)),
			zap.Int64("subject_id", a.SubjectID),
			zap.Int64("actor_id", actor.ID),
			zap.String("actor_branch", actor.Branch))
		return ErrNotAuthorized
	}

	req, ok = e.store.Claim(key)
	if !ok {
		// Lost the race to a concurrent decision.
		return ErrAlreadyProcessed
	}

	spec := kindSpecs[a.Kind]
	if err := spec.apply(ctx, e.users, a.Decision, req.Payload); err != nil {
		e.logger.Error("apply decision",
			zap.String("kind", string(a.Kind)),
			zap.Int64("subject_id", a.SubjectID),
			zap.Int64("actor_id", actor.ID),
			zap.String("decision", string(a.Decision)),
			zap.Error(err))
		return fmt.Errorf("%w: %v", ErrMutationFailed, err)
	}

	e.logger.Info("request resolved",
		zap.String("kind", string(a.Kind)),
		zap.Int64("subject_id", a.SubjectID),
		zap.Int64("actor_id", actor.ID),
		zap.String("decision", string(a.Decision)),
		zap.String("branch", req.Payload.Branch))

	if _, err := e.messenger.Send(ctx, req.Payload.ChatID, spec.requesterMsg(a.Decision, req.Payload, e.branchTitle), nil); err != nil {
		e.logger.Warn("notify requester", zap.Int64("chat_id", req.Payload.ChatID), zap.Error(err))
	}

	resolved := spec.prompt(req.Payload, e.branchTitle) + "\n\n" + resolvedSuffix(a.Decision)
	if err := e.messenger.Edit(ctx, acting, resolved); err != nil {
		e.logger.Warn("edit acting prompt", zap.Int64("chat_id", acting.ChatID), zap.Error(err))
	}
	e.cleanup(ctx, req.Deliveries, acting)
	return nil
}

func resolvedSuffix(dec Decision) string {
	if dec == Approve {
		return "✅ Одобрено"
	}
	return "❌ Отклонено"
}
