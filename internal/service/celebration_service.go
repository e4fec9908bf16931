package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"jubilee/internal/anniversary"
	"jubilee/internal/domain"
	"jubilee/internal/repository"
	"jubilee/internal/slack"
)

// CelebrationService is the day-of sweep: it publishes one public message per
// approved, not yet announced record for today and flips the record to its
// terminal announced state.
type CelebrationService struct {
	employees   EmployeeStore
	records     RecordStore
	gifts       GiftCatalog
	slackClient slack.Client
	reporter    *Reporter
	channelID   string
	sendDelay   time.Duration
	location    *time.Location
	logger      *slog.Logger
}

type CelebrateSweepResult struct {
	Date      string   `json:"date"`
	Pending   int      `json:"pending"`
	Posted    int      `json:"posted"`
	Skipped   int      `json:"skipped"`
	Failed    int      `json:"failed"`
	FailedFor []string `json:"failed_for,omitempty"`
}

func NewCelebrationService(
	employees EmployeeStore,
	records RecordStore,
	gifts GiftCatalog,
	slackClient slack.Client,
	reporter *Reporter,
	channelID string,
	sendDelay time.Duration,
	location *time.Location,
	logger *slog.Logger,
) *CelebrationService {
	return &CelebrationService{
		employees:   employees,
		records:     records,
		gifts:       gifts,
		slackClient: slackClient,
		reporter:    reporter,
		channelID:   strings.TrimSpace(channelID),
		sendDelay:   sendDelay,
		location:    location,
		logger:      logger,
	}
}

// RunDayOfSweep processes each pending record independently; a failed record
// is reported and the loop moves on. Running the sweep twice on the same day
// posts nothing the second time since announced records drop out of the scan.
func (s *CelebrationService) RunDayOfSweep(ctx context.Context, now time.Time) (CelebrateSweepResult, error) {
	today := dateKey(now.In(s.location))

	result := CelebrateSweepResult{
		Date:      today.Format("2006-01-02"),
		FailedFor: make([]string, 0),
	}

	if s.channelID == "" {
		err := fmt.Errorf("celebration channel is not configured")
		s.reporter.Report(ctx, "Day-of sweep aborted: "+err.Error())
		return result, err
	}

	records, err := s.records.ListPendingCelebrations(ctx, today)
	if err != nil {
		return result, fmt.Errorf("scan pending celebrations: %w", err)
	}
	result.Pending = len(records)

	for _, rec := range records {
		posted, err := s.celebrate(ctx, rec)
		if err != nil {
			s.logger.ErrorContext(ctx, "failed to publish celebration",
				slog.String("employee_code", rec.EmployeeCode),
				slog.String("record_id", rec.ID),
				slog.String("error", err.Error()),
			)
			s.reporter.Report(ctx, fmt.Sprintf("Celebration failed for %s on %s: %v", rec.EmployeeCode, result.Date, err))
			result.Failed++
			result.FailedFor = append(result.FailedFor, rec.EmployeeCode)
			continue
		}
		if !posted {
			result.Skipped++
			continue
		}
		result.Posted++

		s.pause(ctx)
	}

	return result, nil
}

func (s *CelebrationService) celebrate(ctx context.Context, rec domain.ResponseRecord) (bool, error) {
	emp, err := s.employees.GetByCode(ctx, rec.EmployeeCode)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Roster may have changed since the record was seeded.
			s.logger.WarnContext(ctx, "celebration skipped for unknown employee", slog.String("employee_code", rec.EmployeeCode))
			return false, nil
		}
		return false, fmt.Errorf("resolve employee: %w", err)
	}

	var gift *domain.Gift
	if rec.GiftID != "" {
		g, err := s.gifts.GetByID(ctx, rec.GiftID)
		switch {
		case err == nil:
			gift = &g
		case errors.Is(err, repository.ErrNotFound):
			s.logger.WarnContext(ctx, "gift missing from catalog", slog.String("gift_id", rec.GiftID))
		default:
			return false, fmt.Errorf("resolve gift: %w", err)
		}
	}

	years := 0
	if rec.EventKind == domain.EventAnniversary && emp.HireDate != nil {
		years = anniversary.YearsOfService(*emp.HireDate, rec.EventDate)
	}

	avatarURL := s.avatar(ctx, emp)

	fallback, blocks := buildCelebrationMessage(emp, rec, gift, years, avatarURL)
	if err := s.slackClient.PostChannelMessage(ctx, s.channelID, fallback, blocks); err != nil {
		return false, fmt.Errorf("post celebration: %w", err)
	}

	if err := s.records.MarkAnnounced(ctx, rec.EmployeeCode, rec.EventDate); err != nil {
		return false, fmt.Errorf("mark announced: %w", err)
	}

	return true, nil
}

// avatar is a best-effort fetch; the message builder substitutes a placeholder
// for an empty URL.
func (s *CelebrationService) avatar(ctx context.Context, emp domain.Employee) string {
	if emp.SlackUserID == "" {
		return ""
	}

	avatarURL, err := s.slackClient.UserAvatarURL(ctx, emp.SlackUserID)
	if err != nil {
		s.logger.WarnContext(ctx, "avatar lookup failed",
			slog.String("employee_code", emp.Code),
			slog.String("error", err.Error()),
		)
		return ""
	}
	return avatarURL
}

func (s *CelebrationService) pause(ctx context.Context) {
	if s.sendDelay <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(s.sendDelay):
	}
}
