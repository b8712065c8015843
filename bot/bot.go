package bot

import (
	"fmt"
	"sync"

	"github.com/akbrzda/courier-bot-sub000/approval"
	"github.com/akbrzda/courier-bot-sub000/config"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type Bot struct {
	api    *tgbotapi.BotAPI
	cfg    *config.Config
	engine *approval.Engine
	logger *zap.Logger

	states  map[int64]*userState
	stateMu sync.RWMutex
}

func New(cfg *config.Config, logger *zap.Logger) (*Bot, error) {
	if cfg.Telegram.Token == "" {
		return nil, fmt.Errorf("TOKEN not set")
	}
	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return nil, err
	}
	engine := approval.NewEngine(
		approval.NewMemoryStore(),
		userDirectory{},
		userMutator{},
		tgMessenger{api: api},
		logger,
		approval.WithBranchTitle(cfg.BranchTitle),
	)
	return &Bot{
		api:    api,
		cfg:    cfg,
		engine: engine,
		logger: logger.With(zap.String("mod", "bot")),
		states: make(map[int64]*userState),
	}, nil
}

func (b *Bot) Start() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		if update.CallbackQuery != nil {
			b.handleCallback(update.CallbackQuery)
			continue
		}
		if update.Message == nil {
			continue
		}
		b.handleMessage(update.Message)
	}
}

func (b *Bot) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Warn("send", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (b *Bot) sendWithInline(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Warn("send", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (b *Bot) sendWithReplyKeyboard(chatID int64, text string, kb tgbotapi.ReplyKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Warn("send", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// answerCallback answers the callback query (required for every callback
// path). If showAlert, Telegram shows a popup instead of the toast.
func (b *Bot) answerCallback(cq *tgbotapi.CallbackQuery, text string, showAlert bool) {
	cb := tgbotapi.NewCallback(cq.ID, text)
	cb.ShowAlert = showAlert
	if _, err := b.api.Request(cb); err != nil {
		b.logger.Warn("answerCallback", zap.Error(err))
	}
}

func (b *Bot) getState(userID int64) *userState {
	b.stateMu.RLock()
	defer b.stateMu.RUnlock()
	return b.states[userID]
}

func (b *Bot) setState(userID int64, st *userState) {
	b.stateMu.Lock()
	defer b.stateMu.Unlock()
	if st == nil {
		delete(b.states, userID)
		return
	}
	b.states[userID] = st
}
