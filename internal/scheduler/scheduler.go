package scheduler

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/AryanShah2000/sleeper-hub/internal/service"
)

type Scheduler struct {
	s              gocron.Scheduler
	fantasyService *service.FantasyService
	sendMessage    func(string) error
}

func NewScheduler(fantasyService *service.FantasyService, sendMessage func(string) error) (*Scheduler, error) {
	location, err := time.LoadLocation("America/New_York")
	if err != nil {
		slog.Error("Failed to load location", "error", err)
	}

	s, err := gocron.NewScheduler(
		gocron.WithLocation(location),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{
		s:              s,
		fantasyService: fantasyService,
		sendMessage:    sendMessage,
	}, nil
}

func (s *Scheduler) Start() error {
	var err error

	// Matchup previews - Thursday 18:30 ET, before kickoff
	_, err = s.s.NewJob(
		gocron.WeeklyJob(1, gocron.NewWeekdays(time.Thursday), gocron.NewAtTimes(gocron.NewAtTime(18, 30, 0))),
		gocron.NewTask(s.sendMatchups),
	)
	if err != nil {
		return fmt.Errorf("failed to create matchup job: %w", err)
	}

	// Lineup alerts - Sunday 9:00 ET, before the early games lock
	_, err = s.s.NewJob(
		gocron.WeeklyJob(1, gocron.NewWeekdays(time.Sunday), gocron.NewAtTimes(gocron.NewAtTime(9, 0, 0))),
		gocron.NewTask(s.sendAlerts),
	)
	if err != nil {
		return fmt.Errorf("failed to create alerts job: %w", err)
	}

	// Cross-league summary - Tuesday 8:00 ET, after Monday night settles
	_, err = s.s.NewJob(
		gocron.WeeklyJob(1, gocron.NewWeekdays(time.Tuesday), gocron.NewAtTimes(gocron.NewAtTime(8, 0, 0))),
		gocron.NewTask(s.sendSummary),
	)
	if err != nil {
		return fmt.Errorf("failed to create summary job: %w", err)
	}

	// Bye exposure - Wednesday 8:00 ET, ahead of waiver decisions
	_, err = s.s.NewJob(
		gocron.WeeklyJob(1, gocron.NewWeekdays(time.Wednesday), gocron.NewAtTimes(gocron.NewAtTime(8, 0, 0))),
		gocron.NewTask(s.sendByes),
	)
	if err != nil {
		return fmt.Errorf("failed to create byes job: %w", err)
	}

	s.s.Start()
	return nil
}

func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

func (s *Scheduler) sendMatchups() {
	report, err := s.fantasyService.GetAllMatchupsReport()
	if err != nil {
		slog.Error("Failed to get matchup report", "error", err)
		return
	}
	s.sendMessage(report)
}

func (s *Scheduler) sendAlerts() {
	report, err := s.fantasyService.GetAlertsReport()
	if err != nil {
		slog.Error("Failed to get alerts report", "error", err)
		return
	}
	s.sendMessage(report)
}

func (s *Scheduler) sendSummary() {
	report, err := s.fantasyService.GetSummaryReport()
	if err != nil {
		slog.Error("Failed to get summary report", "error", err)
		return
	}
	s.sendMessage(report)
}

func (s *Scheduler) sendByes() {
	report, err := s.fantasyService.GetByeReport("")
	if err != nil {
		slog.Error("Failed to get bye report", "error", err)
		return
	}
	s.sendMessage(report)
}
