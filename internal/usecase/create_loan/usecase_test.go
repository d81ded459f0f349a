package create_loan

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mathrent/MathRent-LoanService/internal/domain"
	resourceRepo "github.com/mathrent/MathRent-LoanService/internal/infra/storage/resource"
)

type fakeLoanRepoUC struct {
	approved []*domain.LoanDetail
	created  *domain.LoanRequest
}

func (f *fakeLoanRepoUC) Create(_ context.Context, loan *domain.LoanRequest) (*domain.LoanRequest, error) {
	loan.ID = 42
	for i := range loan.Details {
		loan.Details[i].ID = int64(i + 1)
		loan.Details[i].LoanID = loan.ID
	}
	f.created = loan
	return loan, nil
}

func (f *fakeLoanRepoUC) ListApprovedDetailsByResource(_ context.Context, kind domain.ResourceKind, resourceID int64, _ int64) ([]*domain.LoanDetail, error) {
	out := make([]*domain.LoanDetail, 0)
	for _, d := range f.approved {
		if d.Kind == kind && d.ResourceID == resourceID {
			out = append(out, d)
		}
	}
	return out, nil
}

type fakeResourceRepoUC struct {
	items map[int64]*domain.Item
	rooms map[int64]*domain.Room
	slots map[int64]*domain.AttendanceSlot
}

func (f *fakeResourceRepoUC) GetItem(_ context.Context, id int64) (*domain.Item, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, resourceRepo.ErrResourceNotFound
	}
	return item, nil
}

func (f *fakeResourceRepoUC) GetRoom(_ context.Context, id int64) (*domain.Room, error) {
	room, ok := f.rooms[id]
	if !ok {
		return nil, resourceRepo.ErrResourceNotFound
	}
	return room, nil
}

func (f *fakeResourceRepoUC) GetAttendanceSlot(_ context.Context, id int64) (*domain.AttendanceSlot, error) {
	slot, ok := f.slots[id]
	if !ok {
		return nil, resourceRepo.ErrResourceNotFound
	}
	return slot, nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func availableCatalog() *fakeResourceRepoUC {
	return &fakeResourceRepoUC{
		items: map[int64]*domain.Item{
			1: {ID: 1, Name: "Proyektor", Stock: 5, Status: domain.ResourceAvailable},
		},
		rooms: map[int64]*domain.Room{
			7: {ID: 7, Name: "Ruang Seminar", Status: domain.ResourceAvailable},
		},
		slots: map[int64]*domain.AttendanceSlot{
			3: {ID: 3, CourseName: "Kalkulus II", Status: domain.ResourceAvailable},
		},
	}
}

func TestExecute_CreatesPendingLoan(t *testing.T) {
	loans := &fakeLoanRepoUC{}
	uc := NewUseCase(loans, availableCatalog(), fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), validDraft())

	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	require.NotNil(t, loans.created)
	assert.Equal(t, domain.StatusPending, loans.created.Status)
	assert.Len(t, loans.created.Details, 3)
}

func TestExecute_StructuralValidationFirst(t *testing.T) {
	uc := NewUseCase(&fakeLoanRepoUC{}, availableCatalog(), fakeTxManager{}, nopLogger{})

	req := validDraft()
	req.RequesterID = 0
	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_InsufficientStock(t *testing.T) {
	catalog := availableCatalog()
	catalog.items[1].Stock = 1
	uc := NewUseCase(&fakeLoanRepoUC{}, catalog, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), validDraft())

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Len(t, validationErr.Issues, 1)
	assert.Contains(t, validationErr.Issues[0], "Stok barang 'Proyektor' tidak mencukupi (tersedia: 1)")
}

func TestExecute_ResourceUnavailable(t *testing.T) {
	catalog := availableCatalog()
	catalog.items[1].Status = domain.ResourceMaintenance
	catalog.slots[3].Status = domain.ResourceOnLoan
	uc := NewUseCase(&fakeLoanRepoUC{}, catalog, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), validDraft())

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Len(t, validationErr.Issues, 2)
	assert.Contains(t, validationErr.Issues[0], "Barang 'Proyektor' tidak tersedia")
	assert.Contains(t, validationErr.Issues[1], "Absen 'Kalkulus II' tidak tersedia")
}

func TestExecute_RoomOverlapPreCheck(t *testing.T) {
	s, _ := time.Parse(time.RFC3339, "2025-10-15T11:00:00Z")
	e, _ := time.Parse(time.RFC3339, "2025-10-15T13:00:00Z")
	loans := &fakeLoanRepoUC{approved: []*domain.LoanDetail{
		{LoanID: 50, Kind: domain.KindRoom, ResourceID: 7, StartsAt: &s, EndsAt: &e},
	}}
	uc := NewUseCase(loans, availableCatalog(), fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), validDraft())

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Len(t, validationErr.Issues, 1)
	assert.Contains(t, validationErr.Issues[0], "bentrok dengan peminjaman lain")
}

func TestExecute_MissingResource(t *testing.T) {
	uc := NewUseCase(&fakeLoanRepoUC{}, &fakeResourceRepoUC{
		items: map[int64]*domain.Item{},
		rooms: map[int64]*domain.Room{},
		slots: map[int64]*domain.AttendanceSlot{},
	}, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), validDraft())

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Len(t, validationErr.Issues, 3)
}
