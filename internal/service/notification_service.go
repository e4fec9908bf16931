package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"jubilee/internal/anniversary"
	"jubilee/internal/domain"
	"jubilee/internal/repository"
	"jubilee/internal/slack"
)

// NotificationService is the pre-day sweep: for every active employee it
// checks whether tomorrow is a birthday or a milestone hire anniversary,
// sends the interactive opt-in DM, and seeds the pending response record.
type NotificationService struct {
	employees   EmployeeStore
	records     RecordStore
	slackClient slack.Client
	reporter    *Reporter
	milestones  []int
	sendDelay   time.Duration
	location    *time.Location
	logger      *slog.Logger
}

type NotifySweepResult struct {
	TargetDate string   `json:"target_date"`
	Employees  int      `json:"employees"`
	Matched    int      `json:"matched"`
	Sent       int      `json:"sent"`
	Skipped    int      `json:"skipped"`
	Failed     int      `json:"failed"`
	FailedFor  []string `json:"failed_for,omitempty"`
}

func NewNotificationService(
	employees EmployeeStore,
	records RecordStore,
	slackClient slack.Client,
	reporter *Reporter,
	milestones []int,
	sendDelay time.Duration,
	location *time.Location,
	logger *slog.Logger,
) *NotificationService {
	if len(milestones) == 0 {
		milestones = anniversary.DefaultMilestones
	}
	return &NotificationService{
		employees:   employees,
		records:     records,
		slackClient: slackClient,
		reporter:    reporter,
		milestones:  milestones,
		sendDelay:   sendDelay,
		location:    location,
		logger:      logger,
	}
}

// RunPreDaySweep notifies for the day after now. One employee's failure never
// aborts the rest of the sweep.
func (s *NotificationService) RunPreDaySweep(ctx context.Context, now time.Time) (NotifySweepResult, error) {
	target := dateKey(now.In(s.location).AddDate(0, 0, 1))

	result := NotifySweepResult{
		TargetDate: target.Format("2006-01-02"),
		FailedFor:  make([]string, 0),
	}

	employees, err := s.employees.ListActive(ctx)
	if err != nil {
		return result, fmt.Errorf("load roster: %w", err)
	}
	result.Employees = len(employees)

	for _, emp := range employees {
		kind, years, matched := s.evaluate(emp, target)
		if !matched {
			continue
		}
		result.Matched++

		if emp.SlackUserID == "" {
			s.logger.WarnContext(ctx, "skipping employee without slack handle",
				slog.String("employee_code", emp.Code),
				slog.String("event_kind", string(kind)),
			)
			result.Skipped++
			continue
		}

		if err := s.notifyEmployee(ctx, emp, kind, target, years); err != nil {
			s.logger.ErrorContext(ctx, "failed to notify employee",
				slog.String("employee_code", emp.Code),
				slog.String("event_kind", string(kind)),
				slog.String("error", err.Error()),
			)
			result.Failed++
			result.FailedFor = append(result.FailedFor, emp.Code)
			continue
		}
		result.Sent++

		s.pause(ctx)
	}

	s.report(ctx, result)
	return result, nil
}

// evaluate applies the birthday check before the anniversary check; at most
// one event fires per employee per day.
func (s *NotificationService) evaluate(emp domain.Employee, target time.Time) (domain.EventKind, int, bool) {
	if anniversary.IsBirthday(emp.BirthDate, target) {
		return domain.EventBirthday, 0, true
	}
	if years, ok := anniversary.QualifyingAnniversaryYears(emp.HireDate, target, s.milestones); ok {
		return domain.EventAnniversary, years, true
	}
	return "", 0, false
}

func (s *NotificationService) notifyEmployee(ctx context.Context, emp domain.Employee, kind domain.EventKind, target time.Time, years int) error {
	fallback, blocks := buildInviteMessage(emp, kind, target, years)

	if err := s.slackClient.SendDirectMessage(ctx, emp.SlackUserID, fallback, blocks); err != nil {
		return err
	}

	// Seeding after the send keeps a failed DM from leaving a pending record
	// nobody was asked about.
	if _, err := s.records.Insert(ctx, repository.InsertRecordInput{
		EmployeeCode: emp.Code,
		EventDate:    target,
		EventKind:    kind,
	}); err != nil {
		return fmt.Errorf("seed response record: %w", err)
	}

	return nil
}

func (s *NotificationService) pause(ctx context.Context) {
	if s.sendDelay <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(s.sendDelay):
	}
}

func (s *NotificationService) report(ctx context.Context, result NotifySweepResult) {
	if s.reporter == nil {
		return
	}

	text := fmt.Sprintf("Pre-day sweep for %s: %d matched, %d invited, %d skipped, %d failed.",
		result.TargetDate, result.Matched, result.Sent, result.Skipped, result.Failed)
	if result.Failed > 0 {
		text += fmt.Sprintf(" Failures: %v", result.FailedFor)
	}
	s.reporter.Report(ctx, text)
}

// dateKey normalizes a local wall-clock time to the UTC midnight used as the
// record store's date key, so the same calendar day always maps to the same
// key regardless of the sweep timezone.
func dateKey(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
