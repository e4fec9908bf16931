package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	slackapi "github.com/slack-go/slack"
	"jubilee/internal/dedupe"
	"jubilee/internal/service"
	"jubilee/internal/token"
)

const (
	// Slack expects the interactivity ack within 3 seconds.
	dispatchTimeout  = 3 * time.Second
	lockWait         = 100 * time.Millisecond
	maxCallbackBytes = 1 << 20
)

// SlackHandler terminates the interactivity webhook. Everything that is not a
// signature failure is answered with an empty 200: Slack retries non-2xx
// deliveries, and a retried anomaly is still an anomaly.
type SlackHandler struct {
	interactions  *service.InteractionService
	seen          *dedupe.Cache
	lock          *dedupe.Lock
	signingSecret string
	logger        *slog.Logger
}

func NewSlackHandler(interactions *service.InteractionService, seen *dedupe.Cache, signingSecret string, logger *slog.Logger) *SlackHandler {
	return &SlackHandler{
		interactions:  interactions,
		seen:          seen,
		lock:          dedupe.NewLock(),
		signingSecret: strings.TrimSpace(signingSecret),
		logger:        logger,
	}
}

// Interactions godoc
// @Summary Slack interactivity webhook
// @Description Receives block action callbacks from Slack and applies the resulting state transition.
// @Tags slack
// @Accept x-www-form-urlencoded
// @Success 200
// @Failure 401
// @Router /slack/interactions [post]
func (h *SlackHandler) Interactions(c *gin.Context) {
	body, err := readBody(c.Request)
	if err != nil {
		h.logger.WarnContext(c.Request.Context(), "failed to read callback body", slog.String("error", err.Error()))
		c.Status(http.StatusOK)
		return
	}

	signed := hasSignatureHeaders(c.Request.Header)
	if signed {
		if err := h.verifySignature(c.Request.Header, body); err != nil {
			h.logger.WarnContext(c.Request.Context(), "rejected callback with bad signature", slog.String("error", err.Error()))
			c.Status(http.StatusUnauthorized)
			return
		}
	}

	callback, err := parseCallback(c.ContentType(), body)
	if err != nil {
		h.logger.WarnContext(c.Request.Context(), "unparseable callback payload", slog.String("error", err.Error()))
		c.Status(http.StatusOK)
		return
	}

	// Without a verifiable signature the payload shape is the only evidence
	// that Slack sent this.
	if !signed && !structurallyValid(callback) {
		h.logger.WarnContext(c.Request.Context(), "discarded structurally invalid unsigned callback")
		c.Status(http.StatusOK)
		return
	}

	if !h.seen.CheckAndSet(dedupeKey(callback)) {
		h.logger.InfoContext(c.Request.Context(), "duplicate callback collapsed", slog.String("trigger_id", callback.TriggerID))
		c.Status(http.StatusOK)
		return
	}

	if !h.lock.Acquire(lockWait) {
		h.logger.WarnContext(c.Request.Context(), "callback dropped while another was in flight", slog.String("trigger_id", callback.TriggerID))
		c.Status(http.StatusOK)
		return
	}
	defer h.lock.Release()

	h.dispatch(c.Request.Context(), callback)
	c.Status(http.StatusOK)
}

func (h *SlackHandler) dispatch(ctx context.Context, callback slackapi.InteractionCallback) {
	ctx, cancel := context.WithTimeout(ctx, dispatchTimeout)
	defer cancel()

	for _, action := range callback.ActionCallback.BlockActions {
		act, err := token.Parse(action.ActionID)
		if err != nil {
			h.logger.WarnContext(ctx, "callback action with malformed token skipped",
				slog.String("action_id", action.ActionID),
				slog.String("error", err.Error()),
			)
			continue
		}

		if err := h.interactions.HandleAction(ctx, act, action.SelectedOption.Value, callback.ResponseURL); err != nil {
			h.logger.ErrorContext(ctx, "callback action failed",
				slog.String("kind", string(act.Kind)),
				slog.String("employee_code", act.EmployeeCode),
				slog.String("error", err.Error()),
			)
		}
	}
}

func (h *SlackHandler) verifySignature(header http.Header, body []byte) error {
	if h.signingSecret == "" {
		return errors.New("signing secret not configured")
	}

	verifier, err := slackapi.NewSecretsVerifier(header, h.signingSecret)
	if err != nil {
		return err
	}
	if _, err := verifier.Write(body); err != nil {
		return err
	}
	return verifier.Ensure()
}

func readBody(r *http.Request) ([]byte, error) {
	defer r.Body.Close()
	return io.ReadAll(io.LimitReader(r.Body, maxCallbackBytes))
}

func hasSignatureHeaders(header http.Header) bool {
	return header.Get("X-Slack-Signature") != "" && header.Get("X-Slack-Request-Timestamp") != ""
}

// parseCallback accepts both the form-encoded envelope Slack sends in
// production and the raw JSON used by local tooling.
func parseCallback(contentType string, body []byte) (slackapi.InteractionCallback, error) {
	var callback slackapi.InteractionCallback

	raw := body
	if strings.HasPrefix(contentType, "application/x-www-form-urlencoded") {
		values, err := url.ParseQuery(string(body))
		if err != nil {
			return callback, err
		}
		payload := values.Get("payload")
		if payload == "" {
			return callback, errors.New("form body without payload field")
		}
		raw = []byte(payload)
	}

	if err := json.Unmarshal(raw, &callback); err != nil {
		return callback, err
	}
	return callback, nil
}

func structurallyValid(callback slackapi.InteractionCallback) bool {
	if callback.Type != slackapi.InteractionTypeBlockActions {
		return false
	}
	if callback.User.ID == "" || callback.ResponseURL == "" {
		return false
	}
	return len(callback.ActionCallback.BlockActions) > 0
}

func dedupeKey(callback slackapi.InteractionCallback) string {
	if callback.TriggerID != "" {
		return callback.TriggerID
	}

	// Old payloads can miss trigger_id; fall back to the action identity so
	// dedupe still has something stable to anchor on.
	var parts []string
	for _, action := range callback.ActionCallback.BlockActions {
		parts = append(parts, action.ActionID)
	}
	return callback.User.ID + "|" + strings.Join(parts, ",")
}
