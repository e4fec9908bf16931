package token

import (
	"testing"
	"time"
)

func TestEncodeParseRoundTrip(t *testing.T) {
	date := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		action Action
	}{
		{
			name:   "approve with plain code",
			action: Action{Kind: KindApprove, EmployeeCode: "E100", Date: date},
		},
		{
			name:   "approve with underscored code",
			action: Action{Kind: KindApprove, EmployeeCode: "emp_42", Date: date},
		},
		{
			name:   "decline with multiple underscores",
			action: Action{Kind: KindDecline, EmployeeCode: "dept_a_007", Date: date},
		},
		{
			name:   "gift picker",
			action: Action{Kind: KindSelectGift, EmployeeCode: "emp_42", Date: date},
		},
		{
			name:   "confirm gift carries gift id",
			action: Action{Kind: KindConfirmGift, EmployeeCode: "emp_42", Date: date, GiftID: "spa-day"},
		},
		{
			name:   "retry gift",
			action: Action{Kind: KindRetryGift, EmployeeCode: "emp_42", Date: date},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := tt.action.Encode()
			got, err := Parse(raw)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", raw, err)
			}
			if got.Kind != tt.action.Kind {
				t.Errorf("kind = %q, want %q", got.Kind, tt.action.Kind)
			}
			if got.EmployeeCode != tt.action.EmployeeCode {
				t.Errorf("employee code = %q, want %q", got.EmployeeCode, tt.action.EmployeeCode)
			}
			if !got.Date.Equal(tt.action.Date) {
				t.Errorf("date = %v, want %v", got.Date, tt.action.Date)
			}
			if got.GiftID != tt.action.GiftID {
				t.Errorf("gift id = %q, want %q", got.GiftID, tt.action.GiftID)
			}
		})
	}
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: ""},
		{name: "no fields", raw: "approve"},
		{name: "unknown kind", raw: "celebrate_emp_42_2024/03/10"},
		{name: "missing date", raw: "approve_emp42"},
		{name: "garbage date", raw: "approve_emp_42_2024-03-10"},
		{name: "impossible date", raw: "approve_emp_42_2024/13/41"},
		{name: "confirm without gift", raw: "confirmgift_emp_42_2024/03/10"},
		{name: "confirm with empty tail", raw: "confirmgift_emp_42_2024/03/10_"},
		{name: "empty employee code", raw: "approve__2024/03/10"},
		{name: "employee code with bad characters", raw: "approve_emp 42_2024/03/10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.raw); err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", tt.raw)
			}
		})
	}
}

func TestValidateGiftID(t *testing.T) {
	if err := ValidateGiftID("spa-day"); err != nil {
		t.Fatalf("valid gift id rejected: %v", err)
	}
	if err := ValidateGiftID(""); err == nil {
		t.Fatal("empty gift id accepted")
	}
	// Underscores in gift ids would make the token encoding ambiguous.
	if err := ValidateGiftID("spa_day"); err == nil {
		t.Fatal("underscored gift id accepted")
	}
}
