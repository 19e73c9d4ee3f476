package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"speedtest-bot/internal/markdown"
	"speedtest-bot/internal/pingutil"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	speedtestFailedText         = "❌ Failed to run speed test. Please try again later."
	speedtestAdvancedFailedText = "❌ Failed to run advanced speed test. Please try again later."
	pingUsageText               = "Please specify a host to ping. Example: /ping google.com"

	commandListText = "📋 *Available commands:*\n" +
		"┣ `/start` \\- Start the bot\n" +
		"┣ `/help` \\- Show help\n" +
		"┣ `/speedtest` \\- Run basic speed test\n" +
		"┣ `/speedtest_advanced` \\- Run detailed speed test\n" +
		"┗ `/ping <host>` \\- Ping a host\n"
)

// senderName builds the display name of the message author.
func senderName(user *tgbotapi.User) string {
	if user == nil {
		return ""
	}
	name := user.FirstName
	if user.LastName != "" {
		name += " " + user.LastName
	}
	return name
}

func (h *BotHandler) handleStart(msg *tgbotapi.Message) error {
	name := markdown.Escape(senderName(msg.From))
	var id int64
	if msg.From != nil {
		id = msg.From.ID
	}

	text := fmt.Sprintf("Hi \\[%s\\]\\(%d\\)\\!\n\n", name, id) +
		"🚀 *Welcome to SpeedTest Bot*\n\n" +
		commandListText +
		"\n🔹 *Example:* `/ping google.com`"

	reply := tgbotapi.NewMessage(msg.Chat.ID, text)
	reply.ParseMode = tgbotapi.ModeMarkdownV2
	if _, err := h.Bot.Send(reply); err != nil {
		return fmt.Errorf("send welcome: %w", err)
	}
	return nil
}

func (h *BotHandler) handleHelp(msg *tgbotapi.Message) error {
	text := "🛠 *Help Center*\n\n" +
		commandListText +
		"\n🔹 *Basic SpeedTest:*\n" +
		"`/speedtest` \\- Tests download, upload speeds and ping\n\n" +
		"🔹 *Advanced SpeedTest:*\n" +
		"`/speedtest_advanced` \\- Includes server and ISP details\n\n" +
		"🔹 *Ping Test:*\n" +
		"`/ping google.com` \\- Pings the specified host"

	reply := tgbotapi.NewMessage(msg.Chat.ID, text)
	reply.ParseMode = tgbotapi.ModeMarkdownV2
	if _, err := h.Bot.Send(reply); err != nil {
		return fmt.Errorf("send help: %w", err)
	}
	return nil
}

func (h *BotHandler) handleSpeedtest(ctx context.Context, msg *tgbotapi.Message) error {
	placeholder, err := h.Bot.Send(tgbotapi.NewMessage(msg.Chat.ID, "⏳ Running speed test... This may take a minute"))
	if err != nil {
		return fmt.Errorf("send placeholder: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, h.SpeedtestTimeout)
	defer cancel()

	result, err := h.Speed.Run(ctx)
	if err != nil {
		slog.Error("speed test failed", "chat_id", msg.Chat.ID, "error", err)
		if _, sendErr := h.Bot.Send(tgbotapi.NewMessage(msg.Chat.ID, speedtestFailedText)); sendErr != nil {
			return fmt.Errorf("send failure reply: %w", sendErr)
		}
		return nil
	}

	text := "📊 *SpeedTest Results*\n\n" +
		fmt.Sprintf("⬇️ *Download:* `%.2f Mbps`\n", result.DownloadMbps) +
		fmt.Sprintf("⬆️ *Upload:* `%.2f Mbps`\n", result.UploadMbps) +
		fmt.Sprintf("🏓 *Ping:* `%.2f ms`", result.PingMs)

	edit := tgbotapi.NewEditMessageText(msg.Chat.ID, placeholder.MessageID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	if _, err := h.Bot.Send(edit); err != nil {
		return fmt.Errorf("edit result: %w", err)
	}
	return nil
}

func (h *BotHandler) handleSpeedtestAdvanced(ctx context.Context, msg *tgbotapi.Message) error {
	placeholder, err := h.Bot.Send(tgbotapi.NewMessage(msg.Chat.ID, "⏳ Running advanced speed test... This may take a minute"))
	if err != nil {
		return fmt.Errorf("send placeholder: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, h.SpeedtestTimeout)
	defer cancel()

	result, err := h.Speed.Run(ctx)
	if err != nil {
		slog.Error("advanced speed test failed", "chat_id", msg.Chat.ID, "error", err)
		if _, sendErr := h.Bot.Send(tgbotapi.NewMessage(msg.Chat.ID, speedtestAdvancedFailedText)); sendErr != nil {
			return fmt.Errorf("send failure reply: %w", sendErr)
		}
		return nil
	}

	// Sponsor, country and ISP are free text from the measurement service;
	// the IP is dotted-numeric and safe to embed as is.
	text := "📊 *Advanced SpeedTest Results*\n\n" +
		fmt.Sprintf("🌍 *Server:* `%s (%s)`\n", markdown.Escape(result.ServerSponsor), markdown.Escape(result.ServerCountry)) +
		fmt.Sprintf("🏠 *ISP:* `%s`\n", markdown.Escape(result.ISP)) +
		fmt.Sprintf("📡 *IP:* `%s`\n\n", result.IP) +
		fmt.Sprintf("⬇️ *Download:* `%.2f Mbps`\n", result.DownloadMbps) +
		fmt.Sprintf("⬆️ *Upload:* `%.2f Mbps`\n", result.UploadMbps) +
		fmt.Sprintf("🏓 *Ping:* `%.2f ms`", result.PingMs)

	edit := tgbotapi.NewEditMessageText(msg.Chat.ID, placeholder.MessageID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	if _, err := h.Bot.Send(edit); err != nil {
		return fmt.Errorf("edit result: %w", err)
	}
	return nil
}

func (h *BotHandler) handlePing(ctx context.Context, msg *tgbotapi.Message) error {
	args := strings.Fields(msg.CommandArguments())
	if len(args) == 0 {
		if _, err := h.Bot.Send(tgbotapi.NewMessage(msg.Chat.ID, pingUsageText)); err != nil {
			return fmt.Errorf("send usage: %w", err)
		}
		return nil
	}
	host := args[0]

	placeholder, err := h.Bot.Send(tgbotapi.NewMessage(msg.Chat.ID, fmt.Sprintf("⏳ Pinging %s...", host)))
	if err != nil {
		return fmt.Errorf("send placeholder: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, h.PingTimeout)
	defer cancel()

	out, err := h.Pinger.Run(ctx, host)
	if err != nil {
		slog.Error("ping failed", "chat_id", msg.Chat.ID, "host", host, "error", err)
		if _, sendErr := h.Bot.Send(tgbotapi.NewMessage(msg.Chat.ID, fmt.Sprintf("❌ Failed to ping %s. Please try again.", host))); sendErr != nil {
			return fmt.Errorf("send failure reply: %w", sendErr)
		}
		return nil
	}

	if out.Stderr != "" {
		edit := tgbotapi.NewEditMessageText(msg.Chat.ID, placeholder.MessageID,
			fmt.Sprintf("❌ Error pinging %s:\n%s", host, out.Stderr))
		if _, err := h.Bot.Send(edit); err != nil {
			return fmt.Errorf("edit stderr reply: %w", err)
		}
		return nil
	}

	stats, found := pingutil.ParseStats(out.Stdout)
	if !found {
		text := fmt.Sprintf("⚠️ Could not parse ping results for %s:\n\n`%s`", markdown.Escape(host), out.Stdout)
		edit := tgbotapi.NewEditMessageText(msg.Chat.ID, placeholder.MessageID, text)
		edit.ParseMode = tgbotapi.ModeMarkdownV2
		if _, err := h.Bot.Send(edit); err != nil {
			return fmt.Errorf("edit raw reply: %w", err)
		}
		return nil
	}

	text := fmt.Sprintf("📶 *Ping Results for %s*\n\n", markdown.Escape(host)) +
		fmt.Sprintf("🏓 *Min:* `%s ms`\n", stats.Min) +
		fmt.Sprintf("📊 *Avg:* `%s ms`\n", stats.Avg) +
		fmt.Sprintf("🚀 *Max:* `%s ms`", stats.Max)

	edit := tgbotapi.NewEditMessageText(msg.Chat.ID, placeholder.MessageID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	if _, err := h.Bot.Send(edit); err != nil {
		return fmt.Errorf("edit stats reply: %w", err)
	}
	return nil
}
