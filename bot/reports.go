package bot

import (
	"context"

	"github.com/akbrzda/courier-bot-sub000/models"
	"github.com/akbrzda/courier-bot-sub000/services"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func (b *Bot) fetchSchedule(ctx context.Context, chatID int64) []services.ScheduleRow {
	rows, err := services.FetchSchedule(ctx, b.cfg.Schedule.SheetURL)
	if err != nil {
		b.logger.Error("fetch schedule", zap.Error(err))
		b.send(chatID, "Не удалось загрузить расписание. Попробуйте позже.")
		return nil
	}
	return rows
}

func (b *Bot) handleMySchedule(ctx context.Context, chatID int64, fullName string) {
	rows := b.fetchSchedule(ctx, chatID)
	if rows == nil {
		return
	}
	row := services.FindScheduleRow(rows, fullName)
	if row == nil {
		b.send(chatID, "Вас пока нет в расписании на эту неделю.")
		return
	}
	b.send(chatID, services.RenderWeek(*row))
}

func (b *Bot) handleMyPayroll(ctx context.Context, chatID int64, fullName string) {
	rows := b.fetchSchedule(ctx, chatID)
	if rows == nil {
		return
	}
	row := services.FindScheduleRow(rows, fullName)
	if row == nil {
		b.send(chatID, "Вас пока нет в расписании на эту неделю.")
		return
	}
	b.send(chatID, services.BuildCourierPayroll(*row, b.cfg.Payroll.HourlyRate))
}

func (b *Bot) handleBranchSchedule(ctx context.Context, chatID int64, user *models.User) {
	switch user.Role {
	case services.RoleSenior:
		b.sendBranchReport(ctx, chatID, user.Branch, false)
	case services.RoleAdmin:
		b.sendWithInline(chatID, "Выберите филиал:", b.branchKeyboard("sched_branch:", ""))
	default:
		b.sendWithReplyKeyboard(chatID, "Главное меню:", mainMenu(user.Role))
	}
}

func (b *Bot) handleBranchPayroll(ctx context.Context, chatID int64, user *models.User) {
	switch user.Role {
	case services.RoleSenior:
		b.sendBranchReport(ctx, chatID, user.Branch, true)
	case services.RoleAdmin:
		b.sendWithInline(chatID, "Выберите филиал:", b.branchKeyboard("pay_branch:", ""))
	default:
		b.sendWithReplyKeyboard(chatID, "Главное меню:", mainMenu(user.Role))
	}
}

// handleBranchReport serves the admin's branch pick from the inline keyboard.
func (b *Bot) handleBranchReport(ctx context.Context, cq *tgbotapi.CallbackQuery, branch string, payroll bool) {
	user, err := services.GetUserByID(ctx, cq.From.ID)
	if err != nil || user == nil || user.Role != services.RoleAdmin {
		b.answerCallback(cq, "Недоступно.", true)
		return
	}
	b.sendBranchReport(ctx, cq.Message.Chat.ID, branch, payroll)
	b.answerCallback(cq, "", false)
}

func (b *Bot) sendBranchReport(ctx context.Context, chatID int64, branch string, payroll bool) {
	rows := b.fetchSchedule(ctx, chatID)
	if rows == nil {
		return
	}
	branchRows := services.BranchScheduleRows(rows, branch)
	if payroll {
		b.send(chatID, services.BuildBranchPayroll(branchRows, b.cfg.BranchTitle(branch), b.cfg.Payroll.HourlyRate))
		return
	}
	if len(branchRows) == 0 {
		b.send(chatID, "В расписании нет курьеров этого филиала.")
		return
	}
	text := "📋 Расписание — " + b.cfg.BranchTitle(branch)
	for _, row := range branchRows {
		text += "\n\n👤 " + row.FullName
		for i, shift := range row.Shifts {
			if services.IsDayOff(shift) {
				continue
			}
			text += "\n" + services.WeekdayShort[i] + ": " + shift
		}
	}
	b.send(chatID, text)
}
