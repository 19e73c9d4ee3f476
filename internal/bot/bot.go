package bot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	config "speedtest-bot/configs"
	"speedtest-bot/internal/pingutil"
	"speedtest-bot/internal/speedtest"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// sender is the slice of the Telegram client the handlers need. Both new
// messages and in-place edits go through Send.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// speedTester runs one full bandwidth measurement.
type speedTester interface {
	Run(ctx context.Context) (*speedtest.Result, error)
}

// pingRunner invokes the OS ping utility against one host.
type pingRunner interface {
	Run(ctx context.Context, host string) (*pingutil.Output, error)
}

// BotHandler dispatches incoming commands to their handlers.
type BotHandler struct {
	Bot    sender
	Speed  speedTester
	Pinger pingRunner

	SpeedtestTimeout time.Duration
	PingTimeout      time.Duration
}

// RunBot connects to Telegram and processes updates until ctx is done.
func RunBot(ctx context.Context, cfg *config.Config) error {
	api, err := tgbotapi.NewBotAPI(cfg.Bot.Token)
	if err != nil {
		return fmt.Errorf("create bot: %w", err)
	}
	api.Debug = cfg.Bot.Debug

	slog.Info("bot started", "username", api.Self.UserName)

	handler := &BotHandler{
		Bot:              api,
		Speed:            speedtest.NewRunner(),
		Pinger:           pingutil.NewPinger(cfg.App.PingCount),
		SpeedtestTimeout: cfg.App.SpeedtestTimeout,
		PingTimeout:      cfg.App.PingTimeout,
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			msg := update.Message
			go handler.HandleMessage(ctx, msg)
		}
	}
}

// HandleMessage routes one incoming message to the matching command
// handler. Any error that escapes a handler is logged here and answered
// with a single generic message, so one bad command never kills the bot.
func (h *BotHandler) HandleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if !msg.IsCommand() {
		return
	}

	cmd := msg.Command()
	slog.Info("received command", "command", cmd, "chat_id", msg.Chat.ID)

	var err error
	switch cmd {
	case "start":
		err = h.handleStart(msg)
	case "help":
		err = h.handleHelp(msg)
	case "speedtest":
		err = h.handleSpeedtest(ctx, msg)
	case "speedtest_advanced":
		err = h.handleSpeedtestAdvanced(ctx, msg)
	case "ping":
		err = h.handlePing(ctx, msg)
	default:
		reply := tgbotapi.NewMessage(msg.Chat.ID, "Unknown command. Use /help to see available commands.")
		if _, sendErr := h.Bot.Send(reply); sendErr != nil {
			slog.Error("failed to send unknown-command reply", "chat_id", msg.Chat.ID, "error", sendErr)
		}
		return
	}

	if err != nil {
		slog.Error("command failed", "command", cmd, "chat_id", msg.Chat.ID, "error", err)
		reply := tgbotapi.NewMessage(msg.Chat.ID, "An error occurred, please try again later.")
		if _, sendErr := h.Bot.Send(reply); sendErr != nil {
			slog.Error("failed to send error reply", "chat_id", msg.Chat.ID, "error", sendErr)
		}
	}
}
