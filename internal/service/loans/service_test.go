package loans

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mathrent/MathRent-LoanService/internal/domain"
	loanRepo "github.com/mathrent/MathRent-LoanService/internal/infra/storage/loan"
	"github.com/mathrent/MathRent-LoanService/internal/service/loans/models"
	"github.com/mathrent/MathRent-LoanService/pkg/ptr"
)

type fakeLoanRepo struct {
	loans map[int64]*domain.LoanRequest
}

func newFakeLoanRepo(loans ...*domain.LoanRequest) *fakeLoanRepo {
	repo := &fakeLoanRepo{loans: make(map[int64]*domain.LoanRequest)}
	for _, l := range loans {
		repo.loans[l.ID] = l
	}
	return repo
}

func (f *fakeLoanRepo) GetByID(_ context.Context, id int64) (*domain.LoanRequest, error) {
	loan, ok := f.loans[id]
	if !ok {
		return nil, loanRepo.ErrLoanNotFound
	}
	return loan, nil
}

func (f *fakeLoanRepo) GetByRequester(_ context.Context, requesterID int64, status *domain.LoanStatus) ([]*domain.LoanRequest, error) {
	out := make([]*domain.LoanRequest, 0)
	for _, l := range f.loans {
		if l.RequesterID != requesterID {
			continue
		}
		if status != nil && l.Status != *status {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (f *fakeLoanRepo) GetWithFilter(_ context.Context, filter domain.LoanFilter) ([]*domain.LoanRequest, error) {
	out := make([]*domain.LoanRequest, 0)
	for _, l := range f.loans {
		if filter.Status != nil && l.Status != *filter.Status {
			continue
		}
		if filter.RequesterID != nil && l.RequesterID != *filter.RequesterID {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func sampleLoan(id, requesterID int64, status domain.LoanStatus) *domain.LoanRequest {
	return &domain.LoanRequest{
		ID:            id,
		RequesterID:   requesterID,
		RequesterName: "Budi Santoso",
		RequesterNIM:  "H071211001",
		LoanDate:      time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		Status:        status,
		Details: []domain.LoanDetail{
			{ID: 1, LoanID: id, Kind: domain.KindItem, ResourceID: 1, Quantity: ptr.Ptr(2)},
		},
	}
}

func TestGetByID_Owner(t *testing.T) {
	svc := NewService(newFakeLoanRepo(sampleLoan(1, 100, domain.StatusPending)), nopLogger{})

	resp, err := svc.GetByID(context.Background(), 1, 100, domain.RoleMahasiswa)

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "pending", resp.Status)
	require.Len(t, resp.Details, 1)
	assert.Equal(t, "item", resp.Details[0].Kind)
}

func TestGetByID_Staff(t *testing.T) {
	svc := NewService(newFakeLoanRepo(sampleLoan(1, 100, domain.StatusPending)), nopLogger{})

	_, err := svc.GetByID(context.Background(), 1, 999, domain.RoleStaff)

	assert.NoError(t, err)
}

func TestGetByID_AccessDenied(t *testing.T) {
	svc := NewService(newFakeLoanRepo(sampleLoan(1, 100, domain.StatusPending)), nopLogger{})

	_, err := svc.GetByID(context.Background(), 1, 999, domain.RoleMahasiswa)

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := NewService(newFakeLoanRepo(), nopLogger{})

	_, err := svc.GetByID(context.Background(), 404, 100, domain.RoleStaff)

	assert.ErrorIs(t, err, ErrLoanNotFound)
}

func TestGetUserLoans(t *testing.T) {
	svc := NewService(newFakeLoanRepo(
		sampleLoan(1, 100, domain.StatusPending),
		sampleLoan(2, 100, domain.StatusApproved),
		sampleLoan(3, 200, domain.StatusPending),
	), nopLogger{})

	resp, err := svc.GetUserLoans(context.Background(), &models.GetUserLoansRequest{RequesterID: 100})
	require.NoError(t, err)
	assert.Len(t, resp.Loans, 2)

	status := "approved"
	resp, err = svc.GetUserLoans(context.Background(), &models.GetUserLoansRequest{
		RequesterID: 100,
		Status:      &status,
	})
	require.NoError(t, err)
	require.Len(t, resp.Loans, 1)
	assert.Equal(t, int64(2), resp.Loans[0].ID)
}

func TestGetUserLoans_InvalidStatus(t *testing.T) {
	svc := NewService(newFakeLoanRepo(), nopLogger{})

	bad := "archived"
	_, err := svc.GetUserLoans(context.Background(), &models.GetUserLoansRequest{
		RequesterID: 100,
		Status:      &bad,
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetLoans_StatusFilter(t *testing.T) {
	svc := NewService(newFakeLoanRepo(
		sampleLoan(1, 100, domain.StatusPending),
		sampleLoan(2, 200, domain.StatusApproved),
	), nopLogger{})

	status := "pending"
	resp, err := svc.GetLoans(context.Background(), &models.GetLoansRequest{Status: &status})

	require.NoError(t, err)
	require.Len(t, resp.Loans, 1)
	assert.Equal(t, int64(1), resp.Loans[0].ID)
}

func TestVerifyPickup(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("A1B2C3D4"), bcrypt.MinCost)
	require.NoError(t, err)

	loan := sampleLoan(1, 100, domain.StatusApproved)
	loan.VerificationCodeHash = ptr.Ptr(string(hash))
	svc := NewService(newFakeLoanRepo(loan), nopLogger{})

	resp, err := svc.VerifyPickup(context.Background(), &models.VerifyPickupRequest{
		LoanID: 1,
		Code:   "A1B2C3D4",
	})
	require.NoError(t, err)
	assert.True(t, resp.Verified)

	_, err = svc.VerifyPickup(context.Background(), &models.VerifyPickupRequest{
		LoanID: 1,
		Code:   "WRONG123",
	})
	assert.ErrorIs(t, err, ErrWrongCode)
}

func TestVerifyPickup_NotApproved(t *testing.T) {
	svc := NewService(newFakeLoanRepo(sampleLoan(1, 100, domain.StatusPending)), nopLogger{})

	_, err := svc.VerifyPickup(context.Background(), &models.VerifyPickupRequest{
		LoanID: 1,
		Code:   "A1B2C3D4",
	})

	assert.ErrorIs(t, err, ErrLoanNotApproved)
}
