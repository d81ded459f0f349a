package create_loan

import (
	"context"
	"errors"
	"fmt"

	"github.com/mathrent/MathRent-LoanService/internal/domain"
	resourceRepo "github.com/mathrent/MathRent-LoanService/internal/infra/storage/resource"
)

// UseCase creates a pending loan request. Besides the structural validation
// it runs the optimistic availability pre-checks (stock, room overlap, slot
// flag) so obviously doomed requests never enter the queue; the authoritative
// checks still run at approval time.
type UseCase struct {
	loanRepo     LoanRepository
	resourceRepo ResourceRepository
	txManager    TransactionManager
	logger       Logger
}

// NewUseCase creates the use case.
func NewUseCase(
	loanRepo LoanRepository,
	resourceRepo ResourceRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		loanRepo:     loanRepo,
		resourceRepo: resourceRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute validates the draft and inserts it with status pending.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateLoan: requester=%d, date=%s, details=%d",
		req.RequesterID, req.LoanDate.Format(domain.DateFormat), len(req.Details))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateLoan: validation failed for requester=%d: %v", req.RequesterID, err)
		return nil, err
	}

	var created *domain.LoanRequest

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		issues, err := uc.checkAvailability(txCtx, req)
		if err != nil {
			return err
		}
		if len(issues) > 0 {
			return &ValidationError{Issues: issues}
		}

		loan := &domain.LoanRequest{
			RequesterID:   req.RequesterID,
			RequesterName: req.RequesterName,
			RequesterNIM:  req.RequesterNIM,
			LoanDate:      req.LoanDate,
			Notes:         req.Notes,
			Status:        domain.StatusPending,
			Details:       make([]domain.LoanDetail, len(req.Details)),
		}
		for i, d := range req.Details {
			loan.Details[i] = domain.LoanDetail{
				Kind:       d.Kind,
				ResourceID: d.ResourceID,
				Quantity:   d.Quantity,
				StartsAt:   d.StartsAt,
				EndsAt:     d.EndsAt,
			}
		}

		created, err = uc.loanRepo.Create(txCtx, loan)
		if err != nil {
			uc.logger.Error("CreateLoan: failed to create loan for requester=%d: %v", req.RequesterID, err)
			return fmt.Errorf("%w: failed to create loan: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateLoan: successfully created loan id=%d for requester=%d", created.ID, req.RequesterID)

	return &Response{
		ID:            created.ID,
		RequesterID:   created.RequesterID,
		RequesterName: created.RequesterName,
		RequesterNIM:  created.RequesterNIM,
		LoanDate:      created.LoanDate,
		Notes:         created.Notes,
		Status:        string(created.Status),
		Details:       created.Details,
		CreatedAt:     created.CreatedAt,
		UpdatedAt:     created.UpdatedAt,
	}, nil
}

// checkAvailability runs the optimistic pre-checks against the current
// catalog and approved set. Issues are collected, not short-circuited.
func (uc *UseCase) checkAvailability(ctx context.Context, req *Request) ([]string, error) {
	issues := make([]string, 0)

	for i, d := range req.Details {
		label := fmt.Sprintf("Item %d", i+1)

		switch d.Kind {
		case domain.KindItem:
			item, err := uc.resourceRepo.GetItem(ctx, d.ResourceID)
			if err != nil {
				if errors.Is(err, resourceRepo.ErrResourceNotFound) {
					issues = append(issues, fmt.Sprintf("%s: Barang dengan ID %d tidak ditemukan", label, d.ResourceID))
					continue
				}
				return nil, fmt.Errorf("%w: failed to get item: %v", ErrInternal, err)
			}
			if item.Status != domain.ResourceAvailable {
				issues = append(issues, fmt.Sprintf("%s: Barang '%s' tidak tersedia", label, item.Name))
			} else if item.Stock < *d.Quantity {
				issues = append(issues, fmt.Sprintf("%s: Stok barang '%s' tidak mencukupi (tersedia: %d)", label, item.Name, item.Stock))
			}

		case domain.KindRoom:
			room, err := uc.resourceRepo.GetRoom(ctx, d.ResourceID)
			if err != nil {
				if errors.Is(err, resourceRepo.ErrResourceNotFound) {
					issues = append(issues, fmt.Sprintf("%s: Ruangan dengan ID %d tidak ditemukan", label, d.ResourceID))
					continue
				}
				return nil, fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
			}
			if room.Status != domain.ResourceAvailable {
				issues = append(issues, fmt.Sprintf("%s: Ruangan '%s' tidak tersedia", label, room.Name))
				continue
			}

			approved, err := uc.loanRepo.ListApprovedDetailsByResource(ctx, domain.KindRoom, d.ResourceID, 0)
			if err != nil {
				return nil, fmt.Errorf("%w: failed to get approved bookings: %v", ErrInternal, err)
			}
			candidate := domain.LoanDetail{StartsAt: d.StartsAt, EndsAt: d.EndsAt}
			for _, other := range approved {
				if candidate.Overlaps(other) {
					issues = append(issues, fmt.Sprintf("%s: Ruangan '%s' bentrok dengan peminjaman lain", label, room.Name))
					break
				}
			}

		case domain.KindAttendanceSlot:
			slot, err := uc.resourceRepo.GetAttendanceSlot(ctx, d.ResourceID)
			if err != nil {
				if errors.Is(err, resourceRepo.ErrResourceNotFound) {
					issues = append(issues, fmt.Sprintf("%s: Data absen dengan ID %d tidak ditemukan", label, d.ResourceID))
					continue
				}
				return nil, fmt.Errorf("%w: failed to get attendance slot: %v", ErrInternal, err)
			}
			if slot.Status != domain.ResourceAvailable {
				issues = append(issues, fmt.Sprintf("%s: Absen '%s' tidak tersedia", label, slot.CourseName))
			}
		}
	}

	return issues, nil
}
