package service

import (
	"context"
	"testing"
	"time"

	"jubilee/internal/domain"
	"jubilee/internal/repository"
	"jubilee/internal/token"
)

var testDate = time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)

func seedRecord(t *testing.T, store *fakeRecordStore, approval domain.ApprovalStatus) {
	t.Helper()
	if _, err := store.Insert(context.Background(), repository.InsertRecordInput{
		EmployeeCode: "emp_42",
		EventDate:    testDate,
		EventKind:    domain.EventBirthday,
	}); err != nil {
		t.Fatalf("seed record: %v", err)
	}
	if approval != domain.ApprovalUnset {
		if err := store.SetApproval(context.Background(), "emp_42", testDate, approval); err != nil {
			t.Fatalf("seed approval: %v", err)
		}
	}
}

func newInteractionFixture() (*InteractionService, *fakeRecordStore, *fakeSlackClient) {
	store := newFakeRecordStore()
	chat := newFakeSlackClient()
	gifts := &fakeGiftCatalog{gifts: []domain.Gift{
		{ID: "spa-day", DisplayName: "Spa day pass"},
		{ID: "dinner-voucher", DisplayName: "Dinner for two voucher"},
	}}
	svc := NewInteractionService(store, gifts, chat, testLogger())
	return svc, store, chat
}

func TestApproveTransitionsRecordAndShowsGiftPicker(t *testing.T) {
	svc, store, chat := newInteractionFixture()
	seedRecord(t, store, domain.ApprovalUnset)

	act := token.Action{Kind: token.KindApprove, EmployeeCode: "emp_42", Date: testDate}
	if err := svc.HandleAction(context.Background(), act, "", "https://hooks.test/respond"); err != nil {
		t.Fatalf("HandleAction failed: %v", err)
	}

	rec := store.mustGet("emp_42", testDate)
	if rec.Approval != domain.ApprovalApproved {
		t.Errorf("approval = %q, want approved", rec.Approval)
	}
	if len(chat.responses) != 1 {
		t.Fatalf("responses sent = %d, want 1", len(chat.responses))
	}
	if chat.responses[0].Target != "https://hooks.test/respond" {
		t.Errorf("response target = %q", chat.responses[0].Target)
	}
}

func TestDeclineIsTerminal(t *testing.T) {
	svc, store, chat := newInteractionFixture()
	seedRecord(t, store, domain.ApprovalUnset)

	act := token.Action{Kind: token.KindDecline, EmployeeCode: "emp_42", Date: testDate}
	if err := svc.HandleAction(context.Background(), act, "", "url"); err != nil {
		t.Fatalf("HandleAction failed: %v", err)
	}

	rec := store.mustGet("emp_42", testDate)
	if rec.Approval != domain.ApprovalDeclined {
		t.Errorf("approval = %q, want declined", rec.Approval)
	}
	if rec.GiftID != "" {
		t.Errorf("gift id = %q, want empty", rec.GiftID)
	}
	if len(chat.responses) != 1 {
		t.Fatalf("responses sent = %d, want 1", len(chat.responses))
	}
}

func TestApproveOnMissingRecordIsNoOp(t *testing.T) {
	svc, store, chat := newInteractionFixture()

	act := token.Action{Kind: token.KindApprove, EmployeeCode: "emp_42", Date: testDate}
	if err := svc.HandleAction(context.Background(), act, "", "url"); err != nil {
		t.Fatalf("HandleAction failed: %v", err)
	}

	if len(store.records) != 0 {
		t.Error("record was fabricated for a missing-record callback")
	}
	if len(chat.responses) != 0 {
		t.Error("response sent for a missing-record callback")
	}
}

func TestSelectGiftBeforeApprovalIsNoOp(t *testing.T) {
	svc, store, chat := newInteractionFixture()
	seedRecord(t, store, domain.ApprovalUnset)

	act := token.Action{Kind: token.KindSelectGift, EmployeeCode: "emp_42", Date: testDate}
	if err := svc.HandleAction(context.Background(), act, "spa-day", "url"); err != nil {
		t.Fatalf("HandleAction failed: %v", err)
	}

	rec := store.mustGet("emp_42", testDate)
	if rec.Approval != domain.ApprovalUnset || rec.GiftID != "" {
		t.Errorf("record mutated by premature gift selection: %+v", rec)
	}
	if len(chat.responses) != 0 {
		t.Error("confirmation prompt sent before approval")
	}
}

func TestSelectGiftShowsConfirmationWithoutMutation(t *testing.T) {
	svc, store, chat := newInteractionFixture()
	seedRecord(t, store, domain.ApprovalApproved)

	act := token.Action{Kind: token.KindSelectGift, EmployeeCode: "emp_42", Date: testDate}
	if err := svc.HandleAction(context.Background(), act, "spa-day", "url"); err != nil {
		t.Fatalf("HandleAction failed: %v", err)
	}

	rec := store.mustGet("emp_42", testDate)
	if rec.GiftID != "" {
		t.Errorf("gift persisted before confirmation: %q", rec.GiftID)
	}
	if len(chat.responses) != 1 {
		t.Fatalf("responses sent = %d, want 1", len(chat.responses))
	}
}

func TestConfirmGiftPersistsAndOverwrites(t *testing.T) {
	svc, store, _ := newInteractionFixture()
	seedRecord(t, store, domain.ApprovalApproved)

	first := token.Action{Kind: token.KindConfirmGift, EmployeeCode: "emp_42", Date: testDate, GiftID: "spa-day"}
	if err := svc.HandleAction(context.Background(), first, "", "url"); err != nil {
		t.Fatalf("first confirm failed: %v", err)
	}
	if rec := store.mustGet("emp_42", testDate); rec.GiftID != "spa-day" {
		t.Errorf("gift id = %q, want spa-day", rec.GiftID)
	}

	second := token.Action{Kind: token.KindConfirmGift, EmployeeCode: "emp_42", Date: testDate, GiftID: "dinner-voucher"}
	if err := svc.HandleAction(context.Background(), second, "", "url"); err != nil {
		t.Fatalf("second confirm failed: %v", err)
	}
	if rec := store.mustGet("emp_42", testDate); rec.GiftID != "dinner-voucher" {
		t.Errorf("gift id = %q, want dinner-voucher", rec.GiftID)
	}
}

func TestConfirmGiftAfterAnnounceIsNoOp(t *testing.T) {
	svc, store, chat := newInteractionFixture()
	seedRecord(t, store, domain.ApprovalApproved)
	if err := store.MarkAnnounced(context.Background(), "emp_42", testDate); err != nil {
		t.Fatalf("mark announced: %v", err)
	}

	act := token.Action{Kind: token.KindConfirmGift, EmployeeCode: "emp_42", Date: testDate, GiftID: "spa-day"}
	if err := svc.HandleAction(context.Background(), act, "", "url"); err != nil {
		t.Fatalf("HandleAction failed: %v", err)
	}

	if rec := store.mustGet("emp_42", testDate); rec.GiftID != "" {
		t.Errorf("announced record mutated: gift id = %q", rec.GiftID)
	}
	if len(chat.responses) != 0 {
		t.Error("confirmation sent for an announced record")
	}
}

func TestConfirmGiftOnDeclinedRecordIsNoOp(t *testing.T) {
	svc, store, _ := newInteractionFixture()
	seedRecord(t, store, domain.ApprovalDeclined)

	act := token.Action{Kind: token.KindConfirmGift, EmployeeCode: "emp_42", Date: testDate, GiftID: "spa-day"}
	if err := svc.HandleAction(context.Background(), act, "", "url"); err != nil {
		t.Fatalf("HandleAction failed: %v", err)
	}

	if rec := store.mustGet("emp_42", testDate); rec.GiftID != "" {
		t.Errorf("declined record accepted a gift: %q", rec.GiftID)
	}
}

func TestRetryGiftResendsPickerWithoutMutation(t *testing.T) {
	svc, store, chat := newInteractionFixture()
	seedRecord(t, store, domain.ApprovalApproved)

	act := token.Action{Kind: token.KindRetryGift, EmployeeCode: "emp_42", Date: testDate}
	for i := 0; i < 2; i++ {
		if err := svc.HandleAction(context.Background(), act, "", "url"); err != nil {
			t.Fatalf("retry %d failed: %v", i, err)
		}
	}

	if rec := store.mustGet("emp_42", testDate); rec.GiftID != "" || rec.Approval != domain.ApprovalApproved {
		t.Errorf("record mutated by retry: %+v", rec)
	}
	if len(chat.responses) != 2 {
		t.Fatalf("responses sent = %d, want 2", len(chat.responses))
	}
}

func TestSelectGiftUnknownGiftDegradesToRawID(t *testing.T) {
	svc, store, chat := newInteractionFixture()
	seedRecord(t, store, domain.ApprovalApproved)

	act := token.Action{Kind: token.KindSelectGift, EmployeeCode: "emp_42", Date: testDate}
	if err := svc.HandleAction(context.Background(), act, "mystery-box", "url"); err != nil {
		t.Fatalf("HandleAction failed: %v", err)
	}

	if len(chat.responses) != 1 {
		t.Fatalf("responses sent = %d, want 1", len(chat.responses))
	}
	if chat.responses[0].Fallback != "You picked mystery-box. Confirm?" {
		t.Errorf("fallback = %q, want raw id fallback", chat.responses[0].Fallback)
	}
}
