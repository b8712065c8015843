package bot

import (
	"context"
	"errors"
	"strings"

	"github.com/akbrzda/courier-bot-sub000/approval"
	"github.com/akbrzda/courier-bot-sub000/models"
	"github.com/akbrzda/courier-bot-sub000/services"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func (b *Bot) handleCallback(cq *tgbotapi.CallbackQuery) {
	ctx := context.Background()
	data := cq.Data

	if action, ok := approval.ParseAction(data); ok {
		b.handleDecision(ctx, cq, action)
		return
	}

	switch {
	case strings.HasPrefix(data, "reg_branch:"):
		b.handleRegBranchPick(ctx, cq, strings.TrimPrefix(data, "reg_branch:"))
	case strings.HasPrefix(data, "change_branch:"):
		b.handleBranchChangeRequest(ctx, cq, strings.TrimPrefix(data, "change_branch:"))
	case data == "settings_edit:name":
		b.setState(cq.From.ID, &userState{Step: stateNewName})
		b.send(cq.Message.Chat.ID, "Введите новое имя и фамилию:")
		b.answerCallback(cq, "", false)
	case data == "settings_edit:branch":
		b.handleBranchChangeMenu(ctx, cq)
	case strings.HasPrefix(data, "sched_branch:"):
		b.handleBranchReport(ctx, cq, strings.TrimPrefix(data, "sched_branch:"), false)
	case strings.HasPrefix(data, "pay_branch:"):
		b.handleBranchReport(ctx, cq, strings.TrimPrefix(data, "pay_branch:"), true)
	default:
		b.answerCallback(cq, "", false)
	}
}

// handleDecision routes an approve/reject button through the workflow engine
// and turns the outcome into a callback answer for the tapping approver.
func (b *Bot) handleDecision(ctx context.Context, cq *tgbotapi.CallbackQuery, action approval.Action) {
	actor, err := services.GetUserByID(ctx, cq.From.ID)
	if err != nil {
		b.logger.Error("get actor", zap.Int64("user_id", cq.From.ID), zap.Error(err))
		b.answerCallback(cq, "Ошибка. Попробуйте позже.", true)
		return
	}
	if actor == nil || actor.Status != services.StatusApproved {
		b.answerCallback(cq, "Недостаточно прав.", true)
		return
	}

	acting := approval.Delivery{ChatID: cq.Message.Chat.ID, MessageID: cq.Message.MessageID}
	err = b.engine.Decide(ctx, action, principal(actor), acting)
	switch {
	case err == nil:
		b.answerCallback(cq, "Готово", false)
	case errors.Is(err, approval.ErrAlreadyProcessed):
		b.answerCallback(cq, "Заявка уже обработана.", true)
	case errors.Is(err, approval.ErrStalePayload):
		b.answerCallback(cq, "Данные заявки изменились, кнопка устарела.", true)
	case errors.Is(err, approval.ErrNotAuthorized):
		b.answerCallback(cq, "Недостаточно прав для этого решения.", true)
	case errors.Is(err, approval.ErrMutationFailed):
		b.answerCallback(cq, "Ошибка: решение не применено.", true)
	default:
		b.logger.Error("decide", zap.String("data", cq.Data), zap.Error(err))
		b.answerCallback(cq, "Ошибка. Попробуйте позже.", true)
	}
}

func (b *Bot) handleRegBranchPick(ctx context.Context, cq *tgbotapi.CallbackQuery, branch string) {
	userID := cq.From.ID
	chatID := cq.Message.Chat.ID

	st := b.getState(userID)
	if st == nil || st.Step != stateRegBranch {
		b.answerCallback(cq, "", false)
		return
	}
	if !b.cfg.HasBranch(branch) {
		b.answerCallback(cq, "Неизвестный филиал.", true)
		return
	}
	b.setState(userID, nil)

	user := &models.User{
		ID:       userID,
		ChatID:   chatID,
		FullName: st.FullName,
		Username: cq.From.UserName,
		Role:     services.RoleCourier,
		Branch:   branch,
		Status:   services.StatusPending,
	}
	if err := services.CreateUser(ctx, user); err != nil {
		b.logger.Error("create user", zap.Int64("user_id", userID), zap.Error(err))
		b.send(chatID, "Ошибка. Попробуйте позже.")
		b.answerCallback(cq, "", false)
		return
	}

	if _, err := b.engine.Submit(ctx, approval.KindRegistration, approval.Payload{
		SubjectID: userID,
		ChatID:    chatID,
		FullName:  st.FullName,
		Username:  cq.From.UserName,
		Branch:    branch,
	}); err != nil {
		b.logger.Error("submit registration", zap.Int64("user_id", userID), zap.Error(err))
		b.send(chatID, "Ошибка. Попробуйте позже.")
		b.answerCallback(cq, "", false)
		return
	}

	edit := tgbotapi.NewEditMessageText(chatID, cq.Message.MessageID,
		"Филиал: "+b.cfg.BranchTitle(branch))
	if _, err := b.api.Send(edit); err != nil {
		b.logger.Warn("edit branch pick", zap.Error(err))
	}
	b.send(chatID, "✅ Заявка отправлена. Дождитесь подтверждения.")
	b.answerCallback(cq, "", false)
}

func (b *Bot) handleBranchChangeMenu(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	user, err := services.GetUserByID(ctx, cq.From.ID)
	if err != nil || user == nil || user.Status != services.StatusApproved {
		b.answerCallback(cq, "Недоступно.", true)
		return
	}
	b.sendWithInline(cq.Message.Chat.ID, "Выберите новый филиал:", b.branchKeyboard("change_branch:", user.Branch))
	b.answerCallback(cq, "", false)
}

func (b *Bot) handleBranchChangeRequest(ctx context.Context, cq *tgbotapi.CallbackQuery, branch string) {
	userID := cq.From.ID
	chatID := cq.Message.Chat.ID

	user, err := services.GetUserByID(ctx, userID)
	if err != nil || user == nil || user.Status != services.StatusApproved {
		b.answerCallback(cq, "Недоступно.", true)
		return
	}
	if !b.cfg.HasBranch(branch) {
		b.answerCallback(cq, "Неизвестный филиал.", true)
		return
	}
	if branch == user.Branch {
		b.answerCallback(cq, "Вы уже в этом филиале.", true)
		return
	}

	reached, err := b.engine.Submit(ctx, approval.KindBranchChange, approval.Payload{
		SubjectID:  userID,
		ChatID:     chatID,
		FullName:   user.FullName,
		Branch:     branch,
		PrevBranch: user.Branch,
	})
	if err != nil {
		b.logger.Error("submit branch change", zap.Int64("user_id", userID), zap.Error(err))
		b.send(chatID, "Не удалось отправить запрос. Попробуйте позже.")
		b.answerCallback(cq, "", false)
		return
	}
	if reached == 0 {
		b.send(chatID, "⚠️ Запрос принят, но сейчас некому его подтвердить. Обратитесь к администратору.")
	} else {
		b.send(chatID, "✉️ Запрос на смену филиала отправлен на подтверждение.")
	}
	b.answerCallback(cq, "", false)
}
