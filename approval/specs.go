package approval

import (
	"context"
	"fmt"
)

// kindSpec describes one request type: how to render the approver prompt,
// what effect a decision applies, and what the requester is told. Keeping
// these in one table is what lets the three flows share a single protocol.
type kindSpec struct {
	prompt       func(p Payload, branchTitle func(string) string) string
	fingerprint  func(p Payload) string
	apply        func(ctx context.Context, m UserMutator, dec Decision, p Payload) error
	requesterMsg func(dec Decision, p Payload, branchTitle func(string) string) string
}

var kindSpecs = map[Kind]kindSpec{
	KindRegistration: {
		prompt: func(p Payload, bt func(string) string) string {
			text := fmt.Sprintf("🆕 Новая заявка на регистрацию\n\n👤 %s\n🏢 %s", p.FullName, bt(p.Branch))
			if p.Username != "" {
				text += "\n📎 @" + p.Username
			}
			return text
		},
		fingerprint: func(Payload) string { return "" },
		apply: func(ctx context.Context, m UserMutator, dec Decision, p Payload) error {
			if dec == Approve {
				return m.SetStatus(ctx, p.SubjectID, "approved")
			}
			// Rejected registrations leave no record so the courier can
			// re-apply from scratch.
			return m.Delete(ctx, p.SubjectID)
		},
		requesterMsg: func(dec Decision, p Payload, bt func(string) string) string {
			if dec == Approve {
				return fmt.Sprintf("✅ Ваша заявка одобрена! Добро пожаловать в филиал %s.\nНажмите /start, чтобы открыть меню.", bt(p.Branch))
			}
			return "❌ Ваша заявка отклонена.\nЕсли вы считаете это ошибкой, свяжитесь со старшим своего филиала и отправьте заявку снова: /start."
		},
	},

	KindNameChange: {
		prompt: func(p Payload, bt func(string) string) string {
			return fmt.Sprintf("✏️ Запрос на смену имени\n\n👤 %s → %s\n🏢 %s", p.PrevName, p.FullName, bt(p.Branch))
		},
		fingerprint: func(Payload) string { return "" },
		apply: func(ctx context.Context, m UserMutator, dec Decision, p Payload) error {
			if dec == Approve {
				return m.Rename(ctx, p.SubjectID, p.FullName)
			}
			return nil
		},
		requesterMsg: func(dec Decision, p Payload, bt func(string) string) string {
			if dec == Approve {
				return fmt.Sprintf("✅ Имя изменено: %s.", p.FullName)
			}
			return fmt.Sprintf("❌ Смена имени на «%s» отклонена.\nЕсли нужно, отправьте запрос ещё раз с корректным именем.", p.FullName)
		},
	},

	KindBranchChange: {
		prompt: func(p Payload, bt func(string) string) string {
			return fmt.Sprintf("🔁 Запрос на смену филиала\n\n👤 %s\n🏢 %s → %s", p.FullName, bt(p.PrevBranch), bt(p.Branch))
		},
		// The requested branch id rides along in the button so a button
		// rendered for a superseded request fails closed.
		fingerprint: func(p Payload) string { return p.Branch },
		apply: func(ctx context.Context, m UserMutator, dec Decision, p Payload) error {
			if dec == Approve {
				return m.SetBranch(ctx, p.SubjectID, p.Branch)
			}
			return nil
		},
		requesterMsg: func(dec Decision, p Payload, bt func(string) string) string {
			if dec == Approve {
				return fmt.Sprintf("✅ Вы переведены в филиал %s.", bt(p.Branch))
			}
			return fmt.Sprintf("❌ Перевод в филиал %s отклонён.", bt(p.Branch))
		},
	},
}
