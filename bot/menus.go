package bot

import (
	"github.com/akbrzda/courier-bot-sub000/services"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	btnMySchedule    = "📅 Моё расписание"
	btnBranchSched   = "📋 Расписание филиала"
	btnPayroll       = "💰 Зарплата"
	btnBranchPayroll = "💼 Отчёт по зарплате"
	btnSettings      = "⚙️ Настройки"
)

func mainMenu(role string) tgbotapi.ReplyKeyboardMarkup {
	rows := [][]tgbotapi.KeyboardButton{
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnMySchedule),
			tgbotapi.NewKeyboardButton(btnPayroll),
		),
	}
	if role == services.RoleSenior || role == services.RoleAdmin {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnBranchSched),
			tgbotapi.NewKeyboardButton(btnBranchPayroll),
		))
	}
	rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnSettings)))
	kb := tgbotapi.NewReplyKeyboard(rows...)
	kb.ResizeKeyboard = true
	return kb
}

func settingsMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("✏️ Сменить имя", "settings_edit:name")),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("🏢 Сменить филиал", "settings_edit:branch")),
	)
}

// branchKeyboard lists configured branches as callback buttons with the given
// data prefix, optionally hiding one branch (the user's current one).
func (b *Bot) branchKeyboard(prefix string, exclude string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, br := range b.cfg.Branches {
		if br.ID == exclude {
			continue
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(br.Title, prefix+br.ID),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
