package bot

import (
	"context"
	"strings"

	"github.com/akbrzda/courier-bot-sub000/approval"
	"github.com/akbrzda/courier-bot-sub000/services"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	userID := msg.From.ID
	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)
	ctx := context.Background()

	if text == "/cancel" {
		b.setState(userID, nil)
		b.send(chatID, "Отменено. Нажмите /start.")
		return
	}

	if st := b.getState(userID); st != nil {
		switch st.Step {
		case stateRegName:
			b.handleRegName(chatID, userID, text)
			return
		case stateRegBranch:
			b.send(chatID, "Выберите филиал кнопкой выше или нажмите /cancel.")
			return
		case stateNewName:
			b.handleNewNameSubmit(ctx, chatID, userID, text)
			return
		}
	}

	user, err := services.GetUserByID(ctx, userID)
	if err != nil {
		b.logger.Error("get user", zap.Int64("user_id", userID), zap.Error(err))
		b.send(chatID, "Ошибка. Попробуйте позже.")
		return
	}

	if text == "/start" {
		switch {
		case user == nil:
			b.setState(userID, &userState{Step: stateRegName})
			b.send(chatID, "👋 Добро пожаловать! Для регистрации курьером введите имя и фамилию:")
		case user.Status == services.StatusPending:
			b.send(chatID, "⏳ Ваша заявка на рассмотрении.")
		default:
			b.sendWithReplyKeyboard(chatID, "Главное меню:", mainMenu(user.Role))
		}
		return
	}

	if user == nil {
		b.send(chatID, "Нажмите /start для регистрации.")
		return
	}
	if user.Status == services.StatusPending {
		b.send(chatID, "⏳ Ваша заявка на рассмотрении.")
		return
	}

	switch text {
	case btnMySchedule:
		b.handleMySchedule(ctx, chatID, user.FullName)
	case btnPayroll:
		b.handleMyPayroll(ctx, chatID, user.FullName)
	case btnBranchSched:
		b.handleBranchSchedule(ctx, chatID, user)
	case btnBranchPayroll:
		b.handleBranchPayroll(ctx, chatID, user)
	case btnSettings:
		b.sendWithInline(chatID, "⚙️ Настройки:", settingsMenu())
	default:
		b.sendWithReplyKeyboard(chatID, "Главное меню:", mainMenu(user.Role))
	}
}

func (b *Bot) handleRegName(chatID, userID int64, text string) {
	name := strings.TrimSpace(text)
	if len([]rune(name)) < 3 || !strings.Contains(name, " ") {
		b.send(chatID, "Введите имя и фамилию через пробел, например: Иван Петров")
		return
	}
	b.setState(userID, &userState{Step: stateRegBranch, FullName: name})
	b.sendWithInline(chatID, "Выберите филиал:", b.branchKeyboard("reg_branch:", ""))
}

func (b *Bot) handleNewNameSubmit(ctx context.Context, chatID, userID int64, text string) {
	name := strings.TrimSpace(text)
	if len([]rune(name)) < 3 || !strings.Contains(name, " ") {
		b.send(chatID, "Введите имя и фамилию через пробел, например: Иван Петров")
		return
	}
	b.setState(userID, nil)

	user, err := services.GetUserByID(ctx, userID)
	if err != nil || user == nil {
		b.send(chatID, "Ошибка. Нажмите /start.")
		return
	}
	if name == user.FullName {
		b.send(chatID, "Это имя уже указано в вашем профиле.")
		return
	}
	reached, err := b.engine.Submit(ctx, approval.KindNameChange, approval.Payload{
		SubjectID: userID,
		ChatID:    chatID,
		FullName:  name,
		PrevName:  user.FullName,
		Branch:    user.Branch,
	})
	if err != nil {
		b.logger.Error("submit name change", zap.Int64("user_id", userID), zap.Error(err))
		b.send(chatID, "Не удалось отправить запрос. Попробуйте позже.")
		return
	}
	if reached == 0 {
		b.send(chatID, "⚠️ Запрос принят, но сейчас некому его подтвердить. Обратитесь к администратору.")
		return
	}
	b.send(chatID, "✉️ Запрос на смену имени отправлен на подтверждение.")
}
