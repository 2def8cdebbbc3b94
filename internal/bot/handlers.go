package bot

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/AryanShah2000/sleeper-hub/internal/service"
)

type Handler struct {
	fantasyService *service.FantasyService
}

func NewHandler(fantasyService *service.FantasyService) *Handler {
	return &Handler{fantasyService: fantasyService}
}

func (h *Handler) HandleCommand(update tgbotapi.Update) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(update.Message.Chat.ID, "")
	command := strings.ToLower(update.Message.Command())
	args := update.Message.CommandArguments()
	msg.ParseMode = "Markdown"

	switch command {
	case "start":
		msg.Text = "Welcome to Sleeper Hub! Use /help to see available commands."
	case "help":
		msg.Text = "Available commands:\n/leagues - List your leagues\n/roster [league] - Show your roster with projections\n/ranks [league] - Lineup value ranks by position\n/matchup [league] - This week's head-to-head\n/alerts - Zero-projection starters across leagues\n/byes [league] - Bye-week exposure\n/summary - Cross-league weekly outlook\n/whohas <player> - Check who rosters a player\n/waivers - Trending waiver adds\n/week - Current NFL week\n/refresh - Clear cached data"
	case "leagues":
		h.handleLeagues(&msg)
	case "roster":
		h.handleRoster(&msg, args)
	case "ranks":
		h.handleRanks(&msg, args)
	case "matchup":
		h.handleMatchup(&msg, args)
	case "alerts":
		h.handleAlerts(&msg)
	case "byes":
		h.handleByes(&msg, args)
	case "summary":
		h.handleSummary(&msg)
	case "whohas":
		h.handleWhoHas(&msg, args)
	case "waivers":
		h.handleWaivers(&msg)
	case "week":
		msg.Text = fmt.Sprintf("Current NFL week: %d", h.fantasyService.GetCurrentWeek())
	case "refresh":
		h.fantasyService.Refresh()
		msg.Text = "Caches cleared. The next report will fetch fresh data."
	default:
		msg.Text = "Unknown command. Use /help to see available commands."
	}

	return msg
}

func (h *Handler) handleLeagues(msg *tgbotapi.MessageConfig) {
	report, err := h.fantasyService.GetLeaguesReport()
	if err != nil {
		msg.Text = fmt.Sprintf("Error fetching leagues: %v", err)
	} else {
		msg.Text = report
	}
}

func (h *Handler) handleRoster(msg *tgbotapi.MessageConfig, args string) {
	report, err := h.fantasyService.GetRosterReport(args)
	if err != nil {
		msg.Text = fmt.Sprintf("Error fetching roster: %v", err)
	} else {
		msg.Text = report
	}
}

func (h *Handler) handleRanks(msg *tgbotapi.MessageConfig, args string) {
	report, err := h.fantasyService.GetPositionRanksReport(args)
	if err != nil {
		msg.Text = fmt.Sprintf("Error computing position ranks: %v", err)
	} else {
		msg.Text = report
	}
}

func (h *Handler) handleMatchup(msg *tgbotapi.MessageConfig, args string) {
	var report string
	var err error
	if args == "" {
		report, err = h.fantasyService.GetAllMatchupsReport()
	} else {
		report, err = h.fantasyService.GetMatchupReport(args)
	}
	if err != nil {
		msg.Text = fmt.Sprintf("Error generating matchup report: %v", err)
	} else {
		msg.Text = report
	}
}

func (h *Handler) handleAlerts(msg *tgbotapi.MessageConfig) {
	report, err := h.fantasyService.GetAlertsReport()
	if err != nil {
		msg.Text = fmt.Sprintf("Error generating alerts: %v", err)
	} else {
		msg.Text = report
	}
}

func (h *Handler) handleByes(msg *tgbotapi.MessageConfig, args string) {
	report, err := h.fantasyService.GetByeReport(args)
	if err != nil {
		msg.Text = fmt.Sprintf("Error generating bye report: %v", err)
	} else {
		msg.Text = report
	}
}

func (h *Handler) handleSummary(msg *tgbotapi.MessageConfig) {
	report, err := h.fantasyService.GetSummaryReport()
	if err != nil {
		msg.Text = fmt.Sprintf("Error generating summary: %v", err)
	} else {
		msg.Text = report
	}
}

func (h *Handler) handleWhoHas(msg *tgbotapi.MessageConfig, args string) {
	if args == "" {
		msg.Text = "Please provide a player name. Usage: /whohas <player name>"
		return
	}
	result, err := h.fantasyService.WhoHas(args)
	if err != nil {
		msg.Text = fmt.Sprintf("Error checking who has player: %v", err)
	} else {
		msg.Text = result
	}
}

func (h *Handler) handleWaivers(msg *tgbotapi.MessageConfig) {
	report, err := h.fantasyService.GetWaiversReport()
	if err != nil {
		msg.Text = fmt.Sprintf("Error fetching waiver report: %v", err)
	} else {
		msg.Text = report
	}
}
