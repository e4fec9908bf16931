// Package token encodes the interactive action tokens carried in Slack
// block action ids. A token is a kind prefix followed by underscore-joined
// fields. Employee codes may themselves contain underscores, so decoding
// anchors on the trailing fields: the date layout contains no underscore and
// gift ids are rejected if they do, which keeps the encoding reversible.
package token

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

type Kind string

const (
	KindApprove     Kind = "approve"
	KindDecline     Kind = "decline"
	KindSelectGift  Kind = "pickgift"
	KindConfirmGift Kind = "confirmgift"
	KindRetryGift   Kind = "retrygift"
)

const (
	// DateLayout deliberately avoids the field separator.
	DateLayout = "2006/01/02"

	maxFieldLen = 64
)

var (
	employeeCodePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]{1,64}$`)
	giftIDPattern       = regexp.MustCompile(`^[A-Za-z0-9.-]{1,64}$`)
)

// Action is one decoded interactive action. GiftID is set only for
// KindConfirmGift tokens.
type Action struct {
	Kind         Kind
	EmployeeCode string
	Date         time.Time
	GiftID       string
}

func (a Action) Encode() string {
	parts := []string{string(a.Kind), a.EmployeeCode, a.Date.Format(DateLayout)}
	if a.Kind == KindConfirmGift {
		parts = append(parts, a.GiftID)
	}
	return strings.Join(parts, "_")
}

// Parse decodes and validates a raw token, failing closed on anything
// malformed.
func Parse(raw string) (Action, error) {
	kind, rest, found := strings.Cut(raw, "_")
	if !found {
		return Action{}, fmt.Errorf("token %q: missing fields", raw)
	}

	action := Action{Kind: Kind(kind)}
	switch action.Kind {
	case KindApprove, KindDecline, KindSelectGift, KindRetryGift:
	case KindConfirmGift:
		idx := strings.LastIndex(rest, "_")
		if idx < 0 {
			return Action{}, fmt.Errorf("token %q: missing gift id", raw)
		}
		action.GiftID = rest[idx+1:]
		rest = rest[:idx]
		if err := ValidateGiftID(action.GiftID); err != nil {
			return Action{}, fmt.Errorf("token %q: %w", raw, err)
		}
	default:
		return Action{}, fmt.Errorf("token %q: unknown action kind %q", raw, kind)
	}

	idx := strings.LastIndex(rest, "_")
	if idx < 0 {
		return Action{}, fmt.Errorf("token %q: missing date", raw)
	}

	date, err := time.Parse(DateLayout, rest[idx+1:])
	if err != nil {
		return Action{}, fmt.Errorf("token %q: invalid date: %w", raw, err)
	}
	action.Date = date

	action.EmployeeCode = rest[:idx]
	if err := ValidateEmployeeCode(action.EmployeeCode); err != nil {
		return Action{}, fmt.Errorf("token %q: %w", raw, err)
	}

	return action, nil
}

func ValidateEmployeeCode(code string) error {
	if !employeeCodePattern.MatchString(code) {
		return fmt.Errorf("invalid employee code %q", code)
	}
	return nil
}

func ValidateGiftID(id string) error {
	if id == "" {
		return fmt.Errorf("empty gift id")
	}
	if len(id) > maxFieldLen || !giftIDPattern.MatchString(id) {
		return fmt.Errorf("invalid gift id %q", id)
	}
	return nil
}
