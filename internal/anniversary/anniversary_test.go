package anniversary

import (
	"testing"
	"time"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := date(year, month, day)
	return &d
}

func TestIsBirthday(t *testing.T) {
	tests := []struct {
		name   string
		birth  *time.Time
		target time.Time
		want   bool
	}{
		{
			name:   "month and day match",
			birth:  datePtr(1990, time.May, 1),
			target: date(2024, time.May, 1),
			want:   true,
		},
		{
			name:   "independent of target year",
			birth:  datePtr(1990, time.May, 1),
			target: date(1999, time.May, 1),
			want:   true,
		},
		{
			name:   "same month different day",
			birth:  datePtr(1990, time.May, 1),
			target: date(2024, time.May, 2),
			want:   false,
		},
		{
			name:   "same day different month",
			birth:  datePtr(1990, time.May, 1),
			target: date(2024, time.June, 1),
			want:   false,
		},
		{
			name:   "nil birth date",
			birth:  nil,
			target: date(2024, time.May, 1),
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsBirthday(tt.birth, tt.target); got != tt.want {
				t.Fatalf("IsBirthday() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestYearsOfService(t *testing.T) {
	tests := []struct {
		name   string
		hire   time.Time
		target time.Time
		want   int
	}{
		{
			name:   "day before third anniversary",
			hire:   date(2020, time.March, 10),
			target: date(2023, time.March, 9),
			want:   2,
		},
		{
			name:   "exactly the third anniversary",
			hire:   date(2020, time.March, 10),
			target: date(2023, time.March, 10),
			want:   3,
		},
		{
			name:   "later in the anniversary year",
			hire:   date(2020, time.March, 10),
			target: date(2023, time.November, 1),
			want:   3,
		},
		{
			name:   "earlier month in the year",
			hire:   date(2020, time.March, 10),
			target: date(2023, time.February, 20),
			want:   2,
		},
		{
			name:   "same year",
			hire:   date(2023, time.March, 10),
			target: date(2023, time.June, 1),
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := YearsOfService(tt.hire, tt.target); got != tt.want {
				t.Fatalf("YearsOfService() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestQualifyingAnniversaryYears(t *testing.T) {
	tests := []struct {
		name      string
		hire      *time.Time
		target    time.Time
		wantYears int
		wantOK    bool
	}{
		{
			name:      "first anniversary qualifies",
			hire:      datePtr(2023, time.June, 1),
			target:    date(2024, time.June, 1),
			wantYears: 1,
			wantOK:    true,
		},
		{
			name:      "tenth anniversary qualifies",
			hire:      datePtr(2014, time.June, 1),
			target:    date(2024, time.June, 1),
			wantYears: 10,
			wantOK:    true,
		},
		{
			name:   "second anniversary is not a milestone",
			hire:   datePtr(2021, time.June, 1),
			target: date(2023, time.June, 1),
			wantOK: false,
		},
		{
			name:   "milestone count but wrong day",
			hire:   datePtr(2019, time.June, 1),
			target: date(2024, time.June, 2),
			wantOK: false,
		},
		{
			name:   "nil hire date",
			hire:   nil,
			target: date(2024, time.June, 1),
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			years, ok := QualifyingAnniversaryYears(tt.hire, tt.target, DefaultMilestones)
			if ok != tt.wantOK {
				t.Fatalf("QualifyingAnniversaryYears() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && years != tt.wantYears {
				t.Fatalf("QualifyingAnniversaryYears() years = %d, want %d", years, tt.wantYears)
			}
		})
	}
}

func TestQualifyingAnniversaryYearsCustomMilestones(t *testing.T) {
	hire := datePtr(2022, time.June, 1)
	target := date(2024, time.June, 1)

	if _, ok := QualifyingAnniversaryYears(hire, target, DefaultMilestones); ok {
		t.Fatal("2 years should not qualify against default milestones")
	}
	if years, ok := QualifyingAnniversaryYears(hire, target, []int{2, 4}); !ok || years != 2 {
		t.Fatalf("2 years should qualify against {2,4}, got years=%d ok=%v", years, ok)
	}
}
