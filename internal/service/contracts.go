package service

import (
	"context"
	"time"

	"jubilee/internal/domain"
	"jubilee/internal/repository"
)

// RecordStore is what the sweeps and the callback state machine need from the
// response record table. *repository.RecordRepository satisfies it; tests use
// in-memory fakes.
type RecordStore interface {
	Insert(ctx context.Context, in repository.InsertRecordInput) (domain.ResponseRecord, error)
	GetByEmployeeAndDate(ctx context.Context, employeeCode string, eventDate time.Time) (domain.ResponseRecord, error)
	SetApproval(ctx context.Context, employeeCode string, eventDate time.Time, approval domain.ApprovalStatus) error
	SetGift(ctx context.Context, employeeCode string, eventDate time.Time, giftID string) error
	ListPendingCelebrations(ctx context.Context, eventDate time.Time) ([]domain.ResponseRecord, error)
	MarkAnnounced(ctx context.Context, employeeCode string, eventDate time.Time) error
}

type EmployeeStore interface {
	GetByCode(ctx context.Context, code string) (domain.Employee, error)
	ListActive(ctx context.Context) ([]domain.Employee, error)
	Upsert(ctx context.Context, in repository.UpsertEmployeeInput) (domain.Employee, error)
	MaxHRUpdatedAt(ctx context.Context) (time.Time, error)
}

type GiftCatalog interface {
	List(ctx context.Context) ([]domain.Gift, error)
	GetByID(ctx context.Context, id string) (domain.Gift, error)
}
