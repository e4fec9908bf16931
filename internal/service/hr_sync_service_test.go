package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"jubilee/internal/domain"
	"jubilee/internal/hr"
)

type fakeHRDirectory struct {
	rows       []hr.EmployeeRow
	details    map[string]hr.EmployeeDetail
	listErr    error
	detailErrs map[string]error
	sinceSeen  time.Time
}

func (f *fakeHRDirectory) ListEmployeesUpdatedSince(_ context.Context, since time.Time) ([]hr.EmployeeRow, error) {
	f.sinceSeen = since
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.rows, nil
}

func (f *fakeHRDirectory) GetEmployeeDetail(_ context.Context, code string) (hr.EmployeeDetail, error) {
	if err := f.detailErrs[code]; err != nil {
		return hr.EmployeeDetail{}, err
	}
	d, ok := f.details[code]
	if !ok {
		return hr.EmployeeDetail{Code: code}, nil
	}
	return d, nil
}

func TestHRSyncUpsertsRowsWithChatHandle(t *testing.T) {
	updated := time.Date(2024, time.April, 20, 9, 0, 0, 0, time.UTC)
	directory := &fakeHRDirectory{
		rows: []hr.EmployeeRow{{
			Code:        "emp_42",
			DisplayName: "Riley",
			BirthDate:   datePtr(1990, time.May, 1),
			UpdatedAt:   updated,
		}},
		details: map[string]hr.EmployeeDetail{
			"emp_42": {Code: "emp_42", CustomFields: []hr.CustomField{{Name: "Slack", Value: "U042"}}},
		},
	}
	employees := newFakeEmployeeStore()
	svc := NewHRSyncService(directory, employees, nil, "Slack", testLogger())

	result, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Fetched != 1 || result.Upserted != 1 || result.Failed != 0 {
		t.Errorf("result = %+v, want one clean upsert", result)
	}
	emp, err := employees.GetByCode(context.Background(), "emp_42")
	if err != nil {
		t.Fatalf("employee not stored: %v", err)
	}
	if emp.SlackUserID != "U042" {
		t.Errorf("slack user id = %q, want U042", emp.SlackUserID)
	}
	if !emp.HRUpdatedAt.Equal(updated) {
		t.Errorf("hr updated at = %v, want %v", emp.HRUpdatedAt, updated)
	}
}

func TestHRSyncUsesStoredCursor(t *testing.T) {
	cursor := time.Date(2024, time.April, 18, 12, 0, 0, 0, time.UTC)
	directory := &fakeHRDirectory{}
	employees := newFakeEmployeeStore(domain.Employee{Code: "emp_old", HRUpdatedAt: cursor})
	svc := NewHRSyncService(directory, employees, nil, "Slack", testLogger())

	if _, err := svc.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if !directory.sinceSeen.Equal(cursor) {
		t.Errorf("since = %v, want stored cursor %v", directory.sinceSeen, cursor)
	}
}

func TestHRSyncDetailFailureDegradesToNoHandle(t *testing.T) {
	directory := &fakeHRDirectory{
		rows: []hr.EmployeeRow{{
			Code:      "emp_42",
			UpdatedAt: time.Now().UTC(),
		}},
		detailErrs: map[string]error{"emp_42": errors.New("hr api: 503")},
	}
	employees := newFakeEmployeeStore(domain.Employee{Code: "emp_42", SlackUserID: "U042"})
	svc := NewHRSyncService(directory, employees, nil, "Slack", testLogger())

	result, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Upserted != 1 {
		t.Errorf("result = %+v, want sync despite detail failure", result)
	}
	emp, _ := employees.GetByCode(context.Background(), "emp_42")
	if emp.SlackUserID != "U042" {
		t.Errorf("slack user id = %q, want previously stored handle kept", emp.SlackUserID)
	}
}

func TestHRSyncSkipsRowsWithoutCode(t *testing.T) {
	directory := &fakeHRDirectory{
		rows: []hr.EmployeeRow{
			{Code: "  ", UpdatedAt: time.Now().UTC()},
			{Code: "emp_ok", UpdatedAt: time.Now().UTC()},
		},
	}
	employees := newFakeEmployeeStore()
	svc := NewHRSyncService(directory, employees, nil, "Slack", testLogger())

	result, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Failed != 1 || result.Upserted != 1 {
		t.Errorf("result = %+v, want blank row rejected and the rest synced", result)
	}
}

func TestHRSyncListFailureReturnsError(t *testing.T) {
	directory := &fakeHRDirectory{listErr: errors.New("hr api: timeout")}
	svc := NewHRSyncService(directory, newFakeEmployeeStore(), nil, "Slack", testLogger())

	if _, err := svc.Run(context.Background()); err == nil {
		t.Fatal("expected list failure to surface")
	}
}

func TestHRSyncReportsSummary(t *testing.T) {
	chat := newFakeSlackClient()
	directory := &fakeHRDirectory{
		rows: []hr.EmployeeRow{{Code: "emp_42", UpdatedAt: time.Now().UTC()}},
	}
	svc := NewHRSyncService(directory, newFakeEmployeeStore(), NewReporter(chat, "C0ADMIN", testLogger()), "Slack", testLogger())

	if _, err := svc.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(chat.posts) != 1 || chat.posts[0].Target != "C0ADMIN" {
		t.Fatalf("posts = %+v, want one summary in C0ADMIN", chat.posts)
	}
}
