// Package anniversary holds the pure date calculations behind both sweeps.
package anniversary

import "time"

// DefaultMilestones are the hire anniversaries worth celebrating.
var DefaultMilestones = []int{1, 3, 5, 10}

// IsBirthday reports whether target falls on the employee's birthday,
// comparing month and day only. A nil birth date never matches.
func IsBirthday(birth *time.Time, target time.Time) bool {
	if birth == nil {
		return false
	}
	return birth.Month() == target.Month() && birth.Day() == target.Day()
}

// YearsOfService is the completed-years difference between hire and target,
// counting a year only once its anniversary has passed within the calendar
// year.
func YearsOfService(hire, target time.Time) int {
	years := target.Year() - hire.Year()
	if target.Month() < hire.Month() || (target.Month() == hire.Month() && target.Day() < hire.Day()) {
		years--
	}
	return years
}

// QualifyingAnniversaryYears returns the years of service when target is the
// hire date's month/day anniversary and that count is one of the configured
// milestones. The second return is false otherwise, and always for a nil hire
// date.
func QualifyingAnniversaryYears(hire *time.Time, target time.Time, milestones []int) (int, bool) {
	if hire == nil {
		return 0, false
	}
	if hire.Month() != target.Month() || hire.Day() != target.Day() {
		return 0, false
	}

	years := YearsOfService(*hire, target)
	for _, m := range milestones {
		if years == m {
			return years, true
		}
	}
	return 0, false
}
