package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"jubilee/internal/domain"
	"jubilee/internal/repository"
	"jubilee/internal/slack"
	"jubilee/internal/token"
)

// InteractionService runs the per-callback state transitions. By the time an
// action reaches HandleAction it has been verified and deduplicated; this
// layer owns parsing follow-ups, record mutation, and the UI update posted to
// the interaction's response_url.
//
// Records are never created here. A callback for a missing record is an
// anomaly (the notification sweep seeds every record at DM time) and is logged
// and dropped rather than fabricated.
type InteractionService struct {
	records     RecordStore
	gifts       GiftCatalog
	slackClient slack.Client
	logger      *slog.Logger
}

func NewInteractionService(records RecordStore, gifts GiftCatalog, slackClient slack.Client, logger *slog.Logger) *InteractionService {
	return &InteractionService{
		records:     records,
		gifts:       gifts,
		slackClient: slackClient,
		logger:      logger,
	}
}

// HandleAction dispatches one decoded action. selectedGiftID is the chosen
// option of a gift-picker select and is only consulted for KindSelectGift.
// A nil return covers both success and safely absorbed anomalies; a non-nil
// error is an external-call failure the caller should log (the Slack user
// sees no change either way).
func (s *InteractionService) HandleAction(ctx context.Context, act token.Action, selectedGiftID, responseURL string) error {
	switch act.Kind {
	case token.KindApprove:
		return s.handleApprove(ctx, act, responseURL)
	case token.KindDecline:
		return s.handleDecline(ctx, act, responseURL)
	case token.KindSelectGift:
		return s.handleSelectGift(ctx, act, selectedGiftID, responseURL)
	case token.KindConfirmGift:
		return s.handleConfirmGift(ctx, act, responseURL)
	case token.KindRetryGift:
		return s.handleRetryGift(ctx, act, responseURL)
	default:
		s.logger.ErrorContext(ctx, "unknown action kind reached dispatch", slog.String("kind", string(act.Kind)))
		return nil
	}
}

func (s *InteractionService) handleApprove(ctx context.Context, act token.Action, responseURL string) error {
	if !s.recordExists(ctx, act) {
		return nil
	}

	if err := s.records.SetApproval(ctx, act.EmployeeCode, act.Date, domain.ApprovalApproved); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logAnomaly(ctx, act, "approve on missing or announced record")
			return nil
		}
		return fmt.Errorf("approve record: %w", err)
	}

	return s.respondWithGiftPicker(ctx, act, responseURL)
}

func (s *InteractionService) handleDecline(ctx context.Context, act token.Action, responseURL string) error {
	if !s.recordExists(ctx, act) {
		return nil
	}

	if err := s.records.SetApproval(ctx, act.EmployeeCode, act.Date, domain.ApprovalDeclined); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logAnomaly(ctx, act, "decline on missing or announced record")
			return nil
		}
		return fmt.Errorf("decline record: %w", err)
	}

	fallback, blocks := buildDeclineAck()
	return s.slackClient.RespondWithReplacement(ctx, responseURL, fallback, blocks)
}

// handleSelectGift is review-before-commit: it shows a confirmation prompt and
// mutates nothing. The record must already be approved; a selection arriving
// out of order is dropped.
func (s *InteractionService) handleSelectGift(ctx context.Context, act token.Action, selectedGiftID, responseURL string) error {
	if err := token.ValidateGiftID(selectedGiftID); err != nil {
		s.logger.ErrorContext(ctx, "rejected gift selection",
			slog.String("employee_code", act.EmployeeCode),
			slog.String("error", err.Error()),
		)
		return nil
	}

	rec, err := s.records.GetByEmployeeAndDate(ctx, act.EmployeeCode, act.Date)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logAnomaly(ctx, act, "gift selection for missing record")
			return nil
		}
		return fmt.Errorf("load record for gift selection: %w", err)
	}
	if rec.Approval != domain.ApprovalApproved {
		s.logAnomaly(ctx, act, "gift selection before approval")
		return nil
	}

	fallback, blocks := buildGiftConfirmPrompt(act.EmployeeCode, act.Date, selectedGiftID, s.giftName(ctx, selectedGiftID))
	return s.slackClient.RespondWithReplacement(ctx, responseURL, fallback, blocks)
}

func (s *InteractionService) handleConfirmGift(ctx context.Context, act token.Action, responseURL string) error {
	if err := s.records.SetGift(ctx, act.EmployeeCode, act.Date, act.GiftID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logAnomaly(ctx, act, "gift confirm without an approved open record")
			return nil
		}
		return fmt.Errorf("persist gift: %w", err)
	}

	fallback, blocks := buildGiftConfirmedAck(s.giftName(ctx, act.GiftID))
	return s.slackClient.RespondWithReplacement(ctx, responseURL, fallback, blocks)
}

// handleRetryGift discards the unconfirmed selection by re-rendering the
// picker. No record mutation, safe to repeat.
func (s *InteractionService) handleRetryGift(ctx context.Context, act token.Action, responseURL string) error {
	if !s.recordExists(ctx, act) {
		return nil
	}

	return s.respondWithGiftPicker(ctx, act, responseURL)
}

func (s *InteractionService) respondWithGiftPicker(ctx context.Context, act token.Action, responseURL string) error {
	gifts, err := s.gifts.List(ctx)
	if err != nil {
		return fmt.Errorf("load gift catalog: %w", err)
	}

	fallback, blocks := buildGiftPicker(act.EmployeeCode, act.Date, gifts)
	return s.slackClient.RespondWithReplacement(ctx, responseURL, fallback, blocks)
}

func (s *InteractionService) recordExists(ctx context.Context, act token.Action) bool {
	_, err := s.records.GetByEmployeeAndDate(ctx, act.EmployeeCode, act.Date)
	if err == nil {
		return true
	}
	if errors.Is(err, repository.ErrNotFound) {
		s.logAnomaly(ctx, act, "callback for missing record")
		return false
	}

	s.logger.ErrorContext(ctx, "record lookup failed",
		slog.String("employee_code", act.EmployeeCode),
		slog.String("error", err.Error()),
	)
	return false
}

func (s *InteractionService) giftName(ctx context.Context, giftID string) string {
	gift, err := s.gifts.GetByID(ctx, giftID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.WarnContext(ctx, "gift lookup failed", slog.String("gift_id", giftID), slog.String("error", err.Error()))
		}
		// Catalog misses degrade to the raw id instead of failing the flow.
		return giftID
	}
	return gift.DisplayName
}

func (s *InteractionService) logAnomaly(ctx context.Context, act token.Action, reason string) {
	s.logger.WarnContext(ctx, "callback anomaly skipped",
		slog.String("reason", reason),
		slog.String("kind", string(act.Kind)),
		slog.String("employee_code", act.EmployeeCode),
		slog.String("event_date", act.Date.Format(token.DateLayout)),
	)
}
