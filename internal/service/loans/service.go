package loans

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/mathrent/MathRent-LoanService/internal/domain"
	loanRepo "github.com/mathrent/MathRent-LoanService/internal/infra/storage/loan"
	"github.com/mathrent/MathRent-LoanService/internal/service/loans/models"
)

// Service answers read queries over loan requests and verifies pickup codes.
type Service struct {
	loanRepo LoanRepository
	logger   Logger
}

// NewService creates a new loans service.
func NewService(loanRepo LoanRepository, logger Logger) *Service {
	return &Service{
		loanRepo: loanRepo,
		logger:   logger,
	}
}

// GetByID fetches one loan request. A requester may only see their own loans;
// staff may see any.
func (s *Service) GetByID(ctx context.Context, id int64, userID int64, role string) (*models.LoanResponse, error) {
	s.logger.Info("GetByID: fetching loan id=%d for user=%d", id, userID)

	loan, err := s.loanRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, loanRepo.ErrLoanNotFound) {
			s.logger.Warn("GetByID: loan id=%d not found", id)
			return nil, ErrLoanNotFound
		}
		s.logger.Error("GetByID: repository error for loan id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := checkAccess(loan, userID, role); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to loan id=%d", userID, id)
		return nil, err
	}

	return models.FromDomainLoan(loan), nil
}

// GetUserLoans lists a requester's loan history, optionally filtered by status.
func (s *Service) GetUserLoans(ctx context.Context, req *models.GetUserLoansRequest) (*models.LoanListResponse, error) {
	s.logger.Info("GetUserLoans: fetching loans for requester=%d", req.RequesterID)

	if req.RequesterID <= 0 {
		return nil, fmt.Errorf("%w: requesterID must be positive", ErrInvalidInput)
	}

	var status *domain.LoanStatus
	if req.Status != nil {
		st, err := models.ToDomainLoanStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserLoans: invalid status filter %q", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		status = &st
	}

	loans, err := s.loanRepo.GetByRequester(ctx, req.RequesterID, status)
	if err != nil {
		s.logger.Error("GetUserLoans: repository error for requester=%d: %v", req.RequesterID, err)
		return nil, fmt.Errorf("%w: GetUserLoans - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainLoans(loans), nil
}

// GetLoans lists loan requests for the staff dashboard with optional filters.
func (s *Service) GetLoans(ctx context.Context, req *models.GetLoansRequest) (*models.LoanListResponse, error) {
	s.logger.Info("GetLoans: fetching loans with filter")

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetLoans: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	loans, err := s.loanRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetLoans: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetLoans - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainLoans(loans), nil
}

// VerifyPickup checks a pickup code against the hash stored on approval.
// Only the stored hash is ever compared; the plaintext code was returned once
// to the approver and never persisted.
func (s *Service) VerifyPickup(ctx context.Context, req *models.VerifyPickupRequest) (*models.VerifyPickupResponse, error) {
	s.logger.Info("VerifyPickup: verifying code for loan id=%d", req.LoanID)

	if req.LoanID <= 0 {
		return nil, fmt.Errorf("%w: loanID must be positive", ErrInvalidInput)
	}
	if len(req.Code) != domain.VerificationCodeLength {
		return nil, fmt.Errorf("%w: code must be %d characters", ErrInvalidInput, domain.VerificationCodeLength)
	}

	loan, err := s.loanRepo.GetByID(ctx, req.LoanID)
	if err != nil {
		if errors.Is(err, loanRepo.ErrLoanNotFound) {
			s.logger.Warn("VerifyPickup: loan id=%d not found", req.LoanID)
			return nil, ErrLoanNotFound
		}
		s.logger.Error("VerifyPickup: repository error for loan id=%d: %v", req.LoanID, err)
		return nil, fmt.Errorf("%w: VerifyPickup - repository error: %v", ErrInternal, err)
	}

	if !loan.IsApproved() || loan.VerificationCodeHash == nil {
		s.logger.Warn("VerifyPickup: loan id=%d is not approved, status=%s", req.LoanID, loan.Status)
		return nil, ErrLoanNotApproved
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*loan.VerificationCodeHash), []byte(req.Code)); err != nil {
		s.logger.Warn("VerifyPickup: wrong code for loan id=%d", req.LoanID)
		return nil, ErrWrongCode
	}

	s.logger.Info("VerifyPickup: loan id=%d verified", req.LoanID)
	return &models.VerifyPickupResponse{LoanID: req.LoanID, Verified: true}, nil
}

// checkAccess allows the loan's requester and any staff member.
func checkAccess(loan *domain.LoanRequest, userID int64, role string) error {
	if loan.RequesterID == userID {
		return nil
	}
	if role == domain.RoleStaff {
		return nil
	}
	return ErrAccessDenied
}
