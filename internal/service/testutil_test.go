package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	slackapi "github.com/slack-go/slack"
	"jubilee/internal/domain"
	"jubilee/internal/repository"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(discardWriter{}, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

func recordKey(employeeCode string, eventDate time.Time) string {
	return employeeCode + "|" + eventDate.Format("2006-01-02")
}

// fakeRecordStore mirrors the repository's guard semantics in memory.
type fakeRecordStore struct {
	records map[string]*domain.ResponseRecord
	inserts int
}

func newFakeRecordStore() *fakeRecordStore {
	return &fakeRecordStore{records: make(map[string]*domain.ResponseRecord)}
}

func (f *fakeRecordStore) Insert(_ context.Context, in repository.InsertRecordInput) (domain.ResponseRecord, error) {
	key := recordKey(in.EmployeeCode, in.EventDate)
	if existing, ok := f.records[key]; ok {
		return *existing, nil
	}

	f.inserts++
	rec := &domain.ResponseRecord{
		ID:           fmt.Sprintf("rec-%d", f.inserts),
		EmployeeCode: in.EmployeeCode,
		EventDate:    in.EventDate,
		EventKind:    in.EventKind,
		Approval:     domain.ApprovalUnset,
	}
	f.records[key] = rec
	return *rec, nil
}

func (f *fakeRecordStore) GetByEmployeeAndDate(_ context.Context, employeeCode string, eventDate time.Time) (domain.ResponseRecord, error) {
	rec, ok := f.records[recordKey(employeeCode, eventDate)]
	if !ok {
		return domain.ResponseRecord{}, repository.ErrNotFound
	}
	return *rec, nil
}

func (f *fakeRecordStore) SetApproval(_ context.Context, employeeCode string, eventDate time.Time, approval domain.ApprovalStatus) error {
	rec, ok := f.records[recordKey(employeeCode, eventDate)]
	if !ok || rec.Announced {
		return repository.ErrNotFound
	}
	rec.Approval = approval
	return nil
}

func (f *fakeRecordStore) SetGift(_ context.Context, employeeCode string, eventDate time.Time, giftID string) error {
	rec, ok := f.records[recordKey(employeeCode, eventDate)]
	if !ok || rec.Approval != domain.ApprovalApproved || rec.Announced {
		return repository.ErrNotFound
	}
	rec.GiftID = giftID
	return nil
}

func (f *fakeRecordStore) ListPendingCelebrations(_ context.Context, eventDate time.Time) ([]domain.ResponseRecord, error) {
	out := make([]domain.ResponseRecord, 0)
	for _, rec := range f.records {
		if rec.EventDate.Equal(eventDate) && rec.Approval == domain.ApprovalApproved && !rec.Announced {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (f *fakeRecordStore) MarkAnnounced(_ context.Context, employeeCode string, eventDate time.Time) error {
	rec, ok := f.records[recordKey(employeeCode, eventDate)]
	if !ok || rec.Approval != domain.ApprovalApproved || rec.Announced {
		return repository.ErrNotFound
	}
	rec.Announced = true
	return nil
}

func (f *fakeRecordStore) mustGet(employeeCode string, eventDate time.Time) domain.ResponseRecord {
	rec, ok := f.records[recordKey(employeeCode, eventDate)]
	if !ok {
		panic("record not found: " + recordKey(employeeCode, eventDate))
	}
	return *rec
}

type fakeEmployeeStore struct {
	employees map[string]domain.Employee
	order     []string
}

func newFakeEmployeeStore(employees ...domain.Employee) *fakeEmployeeStore {
	f := &fakeEmployeeStore{employees: make(map[string]domain.Employee)}
	for _, e := range employees {
		f.employees[e.Code] = e
		f.order = append(f.order, e.Code)
	}
	return f
}

func (f *fakeEmployeeStore) GetByCode(_ context.Context, code string) (domain.Employee, error) {
	e, ok := f.employees[code]
	if !ok {
		return domain.Employee{}, repository.ErrNotFound
	}
	return e, nil
}

func (f *fakeEmployeeStore) ListActive(_ context.Context) ([]domain.Employee, error) {
	out := make([]domain.Employee, 0)
	for _, code := range f.order {
		if e := f.employees[code]; e.Active() {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEmployeeStore) Upsert(_ context.Context, in repository.UpsertEmployeeInput) (domain.Employee, error) {
	existing, ok := f.employees[in.Code]
	if !ok {
		f.order = append(f.order, in.Code)
	}

	e := domain.Employee{
		Code:        in.Code,
		DisplayName: in.DisplayName,
		SlackUserID: in.SlackUserID,
		HireDate:    in.HireDate,
		BirthDate:   in.BirthDate,
		RetiredAt:   in.RetiredAt,
		HRUpdatedAt: in.HRUpdatedAt,
	}
	if e.SlackUserID == "" && ok {
		e.SlackUserID = existing.SlackUserID
	}
	if e.RetiredAt == nil && ok {
		e.RetiredAt = existing.RetiredAt
	}
	f.employees[in.Code] = e
	return e, nil
}

func (f *fakeEmployeeStore) MaxHRUpdatedAt(_ context.Context) (time.Time, error) {
	var cursor time.Time
	for _, e := range f.employees {
		if e.HRUpdatedAt.After(cursor) {
			cursor = e.HRUpdatedAt
		}
	}
	return cursor, nil
}

type fakeGiftCatalog struct {
	gifts   []domain.Gift
	listErr error
}

func (f *fakeGiftCatalog) List(_ context.Context) ([]domain.Gift, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.gifts, nil
}

func (f *fakeGiftCatalog) GetByID(_ context.Context, id string) (domain.Gift, error) {
	for _, g := range f.gifts {
		if g.ID == id {
			return g, nil
		}
	}
	return domain.Gift{}, repository.ErrNotFound
}

type sentMessage struct {
	Target   string
	Fallback string
	Blocks   []slackapi.Block
}

// fakeSlackClient records every outbound call; failUserIDs and failChannel
// simulate per-target send failures.
type fakeSlackClient struct {
	dms         []sentMessage
	posts       []sentMessage
	responses   []sentMessage
	failUserIDs map[string]bool
	failChannel string
	avatarURL   string
	avatarErr   error
}

func newFakeSlackClient() *fakeSlackClient {
	return &fakeSlackClient{failUserIDs: make(map[string]bool)}
}

func (f *fakeSlackClient) SendDirectMessage(_ context.Context, userID, fallback string, blocks []slackapi.Block) error {
	if f.failUserIDs[userID] {
		return fmt.Errorf("slack api error: user_not_found")
	}
	f.dms = append(f.dms, sentMessage{Target: userID, Fallback: fallback, Blocks: blocks})
	return nil
}

func (f *fakeSlackClient) PostChannelMessage(_ context.Context, channelID, fallback string, blocks []slackapi.Block) error {
	if f.failChannel != "" && f.failChannel == channelID {
		return fmt.Errorf("slack api error: channel_not_found")
	}
	f.posts = append(f.posts, sentMessage{Target: channelID, Fallback: fallback, Blocks: blocks})
	return nil
}

func (f *fakeSlackClient) RespondWithReplacement(_ context.Context, responseURL, fallback string, blocks []slackapi.Block) error {
	f.responses = append(f.responses, sentMessage{Target: responseURL, Fallback: fallback, Blocks: blocks})
	return nil
}

func (f *fakeSlackClient) UserAvatarURL(_ context.Context, _ string) (string, error) {
	if f.avatarErr != nil {
		return "", f.avatarErr
	}
	return f.avatarURL, nil
}
