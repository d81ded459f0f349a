package approve_loan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mathrent/MathRent-LoanService/internal/domain"
	loanRepo "github.com/mathrent/MathRent-LoanService/internal/infra/storage/loan"
	resourceRepo "github.com/mathrent/MathRent-LoanService/internal/infra/storage/resource"
	"github.com/mathrent/MathRent-LoanService/pkg/ptr"
)

// UseCase applies staff decisions to loan requests. Approval runs the
// availability arbitration inside a serializable transaction on locked rows,
// so the snapshot the verdict was computed on is the snapshot the commit
// applies to. The arbitration the dashboard ran beforehand is only advisory;
// this is the authoritative check.
type UseCase struct {
	loanRepo     LoanRepository
	resourceRepo ResourceRepository
	cache        ScheduleCache
	txManager    TransactionManager
	logger       Logger
}

// NewUseCase creates the use case. cache may be nil when Redis is disabled.
func NewUseCase(
	loanRepo LoanRepository,
	resourceRepo ResourceRepository,
	cache ScheduleCache,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		loanRepo:     loanRepo,
		resourceRepo: resourceRepo,
		cache:        cache,
		txManager:    txManager,
		logger:       logger,
	}
}

// roomTouch remembers a room schedule made stale by a committed decision.
type roomTouch struct {
	roomID int64
	date   time.Time
}

// Execute applies the decision.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ApproveLoan: loan=%d, decision=%s, approver=%d", req.LoanID, req.Decision, req.ApproverID)

	if req.LoanID <= 0 {
		return nil, fmt.Errorf("%w: loanID must be positive", ErrInvalidInput)
	}
	if req.ApproverID <= 0 {
		return nil, fmt.Errorf("%w: approverID must be positive", ErrInvalidInput)
	}
	if !req.Decision.IsValid() {
		return nil, fmt.Errorf("%w: unknown decision %q", ErrInvalidInput, req.Decision)
	}
	if req.Note != nil && len(*req.Note) > domain.MaxRejectionNoteLength {
		return nil, fmt.Errorf("%w: note exceeds %d characters", ErrInvalidInput, domain.MaxRejectionNoteLength)
	}

	var (
		verificationCode *string
		rejectionNote    *string
		touched          []roomTouch
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		loan, err := uc.loanRepo.GetByID(txCtx, req.LoanID)
		if err != nil {
			if errors.Is(err, loanRepo.ErrLoanNotFound) {
				uc.logger.Warn("ApproveLoan: loan id=%d not found", req.LoanID)
				return ErrLoanNotFound
			}
			uc.logger.Error("ApproveLoan: failed to get loan id=%d: %v", req.LoanID, err)
			return fmt.Errorf("%w: failed to get loan: %v", ErrInternal, err)
		}

		target := req.Decision.targetStatus()
		if !loan.Status.CanTransitionTo(target) {
			uc.logger.Warn("ApproveLoan: illegal transition %s -> %s for loan id=%d", loan.Status, target, req.LoanID)
			return fmt.Errorf("%w: cannot move from %s to %s", ErrInvalidTransition, loan.Status, target)
		}

		var codeHash *string

		switch req.Decision {
		case DecisionApprove:
			conflicts, err := uc.arbitrate(txCtx, loan)
			if err != nil {
				return err
			}
			if len(conflicts) > 0 {
				uc.logger.Warn("ApproveLoan: loan id=%d blocked by %d conflict(s)", req.LoanID, len(conflicts))
				return &ConflictError{Conflicts: conflicts}
			}

			touched, err = uc.commitApproval(txCtx, loan)
			if err != nil {
				return err
			}

			code, err := generateVerificationCode()
			if err != nil {
				return fmt.Errorf("%w: %v", ErrInternal, err)
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("%w: hash verification code: %v", ErrInternal, err)
			}
			verificationCode = ptr.Ptr(code)
			codeHash = ptr.Ptr(string(hash))

		case DecisionReject:
			rejectionNote = req.Note

		case DecisionReturn:
			touched, err = uc.commitReturn(txCtx, loan)
			if err != nil {
				return err
			}
		}

		if err := uc.loanRepo.UpdateDecision(txCtx, loan.ID, target, req.ApproverID, req.ApproverName, rejectionNote, codeHash); err != nil {
			uc.logger.Error("ApproveLoan: failed to update loan id=%d: %v", req.LoanID, err)
			return fmt.Errorf("%w: failed to update loan: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The schedule cache is only advisory; invalidation failures are logged,
	// not surfaced, and the TTL bounds the staleness anyway.
	uc.invalidateSchedules(ctx, touched)

	uc.logger.Info("ApproveLoan: loan id=%d moved to %s by approver=%d",
		req.LoanID, req.Decision.targetStatus(), req.ApproverID)

	return &Response{
		ID:               req.LoanID,
		Status:           string(req.Decision.targetStatus()),
		ApprovedBy:       req.ApproverID,
		ApproverName:     req.ApproverName,
		RejectionNote:    rejectionNote,
		VerificationCode: verificationCode,
		DecidedAt:        time.Now(),
	}, nil
}

// arbitrate evaluates every detail of the candidate and collects every
// conflict found, in detail order. Items are checked against the remaining
// stock, which already reflects committed approvals; rooms and slots are
// checked against the other approved details for the resource.
func (uc *UseCase) arbitrate(ctx context.Context, loan *domain.LoanRequest) ([]domain.Conflict, error) {
	conflicts := make([]domain.Conflict, 0)

	for i := range loan.Details {
		detail := &loan.Details[i]

		switch detail.Kind {
		case domain.KindItem:
			item, err := uc.resourceRepo.GetItem(ctx, detail.ResourceID)
			if err != nil {
				if errors.Is(err, resourceRepo.ErrResourceNotFound) {
					conflicts = append(conflicts, domain.NewStaleResourceConflict(detail.Kind))
					continue
				}
				return nil, fmt.Errorf("%w: failed to get item: %v", ErrInternal, err)
			}
			requested := 0
			if detail.Quantity != nil {
				requested = *detail.Quantity
			}
			if c := evaluateItemDetail(item, requested); c != nil {
				conflicts = append(conflicts, *c)
			}

		case domain.KindRoom:
			others, err := uc.approvedDetails(ctx, detail, loan.ID)
			if err != nil {
				return nil, err
			}
			room, err := uc.resourceRepo.GetRoom(ctx, detail.ResourceID)
			if err != nil {
				if errors.Is(err, resourceRepo.ErrResourceNotFound) {
					conflicts = append(conflicts, domain.NewStaleResourceConflict(detail.Kind))
					continue
				}
				return nil, fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
			}
			if c := evaluateRoomDetail(room, detail, others); c != nil {
				conflicts = append(conflicts, *c)
			}

		case domain.KindAttendanceSlot:
			others, err := uc.approvedDetails(ctx, detail, loan.ID)
			if err != nil {
				return nil, err
			}
			slot, err := uc.resourceRepo.GetAttendanceSlot(ctx, detail.ResourceID)
			if err != nil {
				if errors.Is(err, resourceRepo.ErrResourceNotFound) {
					conflicts = append(conflicts, domain.NewStaleResourceConflict(detail.Kind))
					continue
				}
				return nil, fmt.Errorf("%w: failed to get attendance slot: %v", ErrInternal, err)
			}
			if c := evaluateSlotDetail(slot, others); c != nil {
				conflicts = append(conflicts, *c)
			}

		default:
			return nil, fmt.Errorf("%w: unknown resource kind %q", ErrInternal, detail.Kind)
		}
	}

	return conflicts, nil
}

func (uc *UseCase) approvedDetails(ctx context.Context, detail *domain.LoanDetail, excludeLoanID int64) ([]*domain.LoanDetail, error) {
	others, err := uc.loanRepo.ListApprovedDetailsByResource(ctx, detail.Kind, detail.ResourceID, excludeLoanID)
	if err != nil {
		uc.logger.Error("ApproveLoan: failed to get approved details for %s id=%d: %v", detail.Kind, detail.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to get approved details: %v", ErrInternal, err)
	}
	return others, nil
}

// commitApproval applies the resource effects of an approval. The stock
// decrement carries its own WHERE guard, so even if the locked snapshot were
// somehow bypassed the stock can never go negative.
func (uc *UseCase) commitApproval(ctx context.Context, loan *domain.LoanRequest) ([]roomTouch, error) {
	touched := make([]roomTouch, 0)

	for i := range loan.Details {
		detail := &loan.Details[i]

		switch detail.Kind {
		case domain.KindItem:
			if detail.Quantity == nil {
				continue
			}
			if err := uc.resourceRepo.DecrementItemStock(ctx, detail.ResourceID, *detail.Quantity); err != nil {
				if errors.Is(err, resourceRepo.ErrInsufficientStock) {
					uc.logger.Warn("ApproveLoan: commit race on item id=%d for loan id=%d", detail.ResourceID, loan.ID)
					return nil, ErrCommitRace
				}
				return nil, fmt.Errorf("%w: failed to decrement stock: %v", ErrInternal, err)
			}

		case domain.KindRoom:
			if detail.StartsAt != nil {
				touched = append(touched, roomTouch{roomID: detail.ResourceID, date: *detail.StartsAt})
			}

		case domain.KindAttendanceSlot:
			if err := uc.resourceRepo.SetSlotStatus(ctx, detail.ResourceID, domain.ResourceOnLoan); err != nil {
				return nil, fmt.Errorf("%w: failed to mark slot on loan: %v", ErrInternal, err)
			}
		}
	}

	return touched, nil
}

// commitReturn reverses the resource effects when an approved loan comes back.
func (uc *UseCase) commitReturn(ctx context.Context, loan *domain.LoanRequest) ([]roomTouch, error) {
	touched := make([]roomTouch, 0)

	for i := range loan.Details {
		detail := &loan.Details[i]

		switch detail.Kind {
		case domain.KindItem:
			if detail.Quantity == nil {
				continue
			}
			if err := uc.resourceRepo.RestoreItemStock(ctx, detail.ResourceID, *detail.Quantity); err != nil {
				return nil, fmt.Errorf("%w: failed to restore stock: %v", ErrInternal, err)
			}

		case domain.KindRoom:
			if detail.StartsAt != nil {
				touched = append(touched, roomTouch{roomID: detail.ResourceID, date: *detail.StartsAt})
			}

		case domain.KindAttendanceSlot:
			if err := uc.resourceRepo.SetSlotStatus(ctx, detail.ResourceID, domain.ResourceAvailable); err != nil {
				return nil, fmt.Errorf("%w: failed to release slot: %v", ErrInternal, err)
			}
		}
	}

	return touched, nil
}

func (uc *UseCase) invalidateSchedules(ctx context.Context, touched []roomTouch) {
	if uc.cache == nil {
		return
	}
	for _, t := range touched {
		if err := uc.cache.Invalidate(ctx, t.roomID, t.date); err != nil {
			uc.logger.Warn("ApproveLoan: schedule cache invalidation failed for room=%d: %v", t.roomID, err)
		}
	}
}
