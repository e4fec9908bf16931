package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"jubilee/internal/hr"
	"jubilee/internal/repository"
)

// HRDirectory is the sync-facing slice of the HR API client.
type HRDirectory interface {
	ListEmployeesUpdatedSince(ctx context.Context, since time.Time) ([]hr.EmployeeRow, error)
	GetEmployeeDetail(ctx context.Context, code string) (hr.EmployeeDetail, error)
}

// HRSyncService incrementally upserts the roster from the HR directory. The
// cursor is the max updated_at already stored, so re-runs only touch changed
// rows.
type HRSyncService struct {
	directory       HRDirectory
	employees       EmployeeStore
	reporter        *Reporter
	chatHandleField string
	logger          *slog.Logger
}

type HRSyncResult struct {
	Since     string   `json:"since"`
	Fetched   int      `json:"fetched"`
	Upserted  int      `json:"upserted"`
	Failed    int      `json:"failed"`
	FailedFor []string `json:"failed_for,omitempty"`
}

func NewHRSyncService(directory HRDirectory, employees EmployeeStore, reporter *Reporter, chatHandleField string, logger *slog.Logger) *HRSyncService {
	return &HRSyncService{
		directory:       directory,
		employees:       employees,
		reporter:        reporter,
		chatHandleField: chatHandleField,
		logger:          logger,
	}
}

func (s *HRSyncService) Run(ctx context.Context) (HRSyncResult, error) {
	since, err := s.employees.MaxHRUpdatedAt(ctx)
	if err != nil {
		return HRSyncResult{}, err
	}

	result := HRSyncResult{
		Since:     since.UTC().Format(time.RFC3339),
		FailedFor: make([]string, 0),
	}

	rows, err := s.directory.ListEmployeesUpdatedSince(ctx, since)
	if err != nil {
		return result, fmt.Errorf("list hr employees: %w", err)
	}
	result.Fetched = len(rows)

	for _, row := range rows {
		if strings.TrimSpace(row.Code) == "" {
			s.logger.WarnContext(ctx, "hr row without code skipped")
			result.Failed++
			continue
		}

		if err := s.syncOne(ctx, row); err != nil {
			s.logger.ErrorContext(ctx, "failed to sync employee",
				slog.String("employee_code", row.Code),
				slog.String("error", err.Error()),
			)
			result.Failed++
			result.FailedFor = append(result.FailedFor, row.Code)
			continue
		}
		result.Upserted++
	}

	if s.reporter != nil && (result.Fetched > 0 || result.Failed > 0) {
		s.reporter.Report(ctx, fmt.Sprintf("HR sync: %d fetched, %d upserted, %d failed.", result.Fetched, result.Upserted, result.Failed))
	}

	return result, nil
}

func (s *HRSyncService) syncOne(ctx context.Context, row hr.EmployeeRow) error {
	// The Slack handle lives in a custom field only exposed on the detail
	// endpoint. A detail failure degrades to syncing without a handle; any
	// previously stored handle is kept by the upsert.
	slackUserID := ""
	detail, err := s.directory.GetEmployeeDetail(ctx, row.Code)
	if err != nil {
		s.logger.WarnContext(ctx, "hr detail fetch failed; syncing without chat handle",
			slog.String("employee_code", row.Code),
			slog.String("error", err.Error()),
		)
	} else {
		slackUserID = detail.CustomFieldValue(s.chatHandleField)
	}

	_, err = s.employees.Upsert(ctx, repository.UpsertEmployeeInput{
		Code:        row.Code,
		DisplayName: row.DisplayName,
		SlackUserID: slackUserID,
		HireDate:    row.HireDate,
		BirthDate:   row.BirthDate,
		RetiredAt:   row.RetiredAt,
		HRUpdatedAt: row.UpdatedAt,
	})
	return err
}
