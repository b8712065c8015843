package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/akbrzda/courier-bot-sub000/approval"
	"github.com/akbrzda/courier-bot-sub000/models"
	"github.com/akbrzda/courier-bot-sub000/services"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// tgMessenger adapts the bot API to the engine's delivery channel.
type tgMessenger struct {
	api *tgbotapi.BotAPI
}

func (m tgMessenger) Send(ctx context.Context, chatID int64, text string, buttons [][]approval.Button) (approval.Delivery, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	if len(buttons) > 0 {
		msg.ReplyMarkup = inlineKeyboard(buttons)
	}
	sent, err := m.api.Send(msg)
	if err != nil {
		return approval.Delivery{}, err
	}
	return approval.Delivery{ChatID: chatID, MessageID: sent.MessageID}, nil
}

func (m tgMessenger) Edit(ctx context.Context, d approval.Delivery, text string) error {
	edit := tgbotapi.NewEditMessageText(d.ChatID, d.MessageID, text)
	if _, err := m.api.Send(edit); err != nil {
		if strings.Contains(err.Error(), "message is not modified") {
			return nil
		}
		return err
	}
	return nil
}

func (m tgMessenger) Delete(ctx context.Context, d approval.Delivery) error {
	if _, err := m.api.Request(tgbotapi.NewDeleteMessage(d.ChatID, d.MessageID)); err != nil {
		if strings.Contains(err.Error(), "message to delete not found") {
			return fmt.Errorf("%w: %d/%d", approval.ErrMessageGone, d.ChatID, d.MessageID)
		}
		return err
	}
	return nil
}

func inlineKeyboard(buttons [][]approval.Button) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, row := range buttons {
		var btns []tgbotapi.InlineKeyboardButton
		for _, b := range row {
			btns = append(btns, tgbotapi.NewInlineKeyboardButtonData(b.Text, b.Data))
		}
		rows = append(rows, btns)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// userDirectory backs the engine's approver lookup with the user store.
type userDirectory struct{}

func (userDirectory) Admins(ctx context.Context) ([]approval.Principal, error) {
	users, err := services.ListAdmins(ctx)
	if err != nil {
		return nil, err
	}
	return toPrincipals(users), nil
}

func (userDirectory) SeniorsByBranch(ctx context.Context, branch string) ([]approval.Principal, error) {
	users, err := services.ListSeniorsByBranch(ctx, branch)
	if err != nil {
		return nil, err
	}
	return toPrincipals(users), nil
}

func toPrincipals(users []models.User) []approval.Principal {
	out := make([]approval.Principal, len(users))
	for i, u := range users {
		out[i] = principal(&u)
	}
	return out
}

func principal(u *models.User) approval.Principal {
	return approval.Principal{ID: u.ID, ChatID: u.ChatID, Role: u.Role, Branch: u.Branch}
}

// userMutator applies decided effects through the user store.
type userMutator struct{}

func (userMutator) SetStatus(ctx context.Context, userID int64, status string) error {
	return services.SetUserStatus(ctx, userID, status)
}

func (userMutator) Rename(ctx context.Context, userID int64, name string) error {
	return services.UpdateUserName(ctx, userID, name)
}

func (userMutator) SetBranch(ctx context.Context, userID int64, branch string) error {
	return services.UpdateUserBranch(ctx, userID, branch)
}

func (userMutator) Delete(ctx context.Context, userID int64) error {
	return services.DeleteUser(ctx, userID)
}
