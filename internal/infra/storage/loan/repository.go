package loan

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/mathrent/MathRent-LoanService/internal/domain"
	"github.com/mathrent/MathRent-LoanService/pkg/dbmetrics"
	"github.com/mathrent/MathRent-LoanService/pkg/psqlbuilder"
	"github.com/mathrent/MathRent-LoanService/pkg/types"
)

var loanColumns = []string{
	"id",
	"requester_id",
	"requester_name",
	"requester_nim",
	"loan_date",
	"notes",
	"status",
	"approved_by",
	"approver_name",
	"rejection_note",
	"verification_code_hash",
	"created_at",
	"updated_at",
}

// Repository persists loan requests and their details.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a loan repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts the loan request and all of its details in one go. Callers
// that need atomicity with other writes run it inside a transaction manager.
func (r *Repository) Create(ctx context.Context, loan *domain.LoanRequest) (*domain.LoanRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("loans").
		Columns(
			"requester_id",
			"requester_name",
			"requester_nim",
			"loan_date",
			"notes",
			"status",
		).
		Values(
			loan.RequesterID,
			loan.RequesterName,
			loan.RequesterNIM,
			loan.LoanDate,
			loan.Notes,
			loan.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&loan.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	loan.CreatedAt = createdAt.Time
	loan.UpdatedAt = updatedAt.Time

	for i := range loan.Details {
		detail := &loan.Details[i]
		detail.LoanID = loan.ID

		query, args, err := psqlbuilder.Insert("loan_details").
			Columns("loan_id", "kind", "resource_id", "quantity", "starts_at", "ends_at").
			Values(loan.ID, detail.Kind, detail.ResourceID, detail.Quantity, detail.StartsAt, detail.EndsAt).
			Suffix("RETURNING id, created_at").
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("%w: Create - build detail insert: %v", ErrBuildQuery, err)
		}

		var detailCreatedAt sql.NullTime
		if err := executor.QueryRowContext(ctx, query, args...).Scan(&detail.ID, &detailCreatedAt); err != nil {
			return nil, fmt.Errorf("%w: Create - execute detail insert: %v", ErrExecQuery, err)
		}
		detail.CreatedAt = detailCreatedAt.Time
	}

	return loan, nil
}

// GetByID fetches one loan request with its details. Inside a transaction
// the loan row is locked with FOR UPDATE so a decision cannot race another
// staff session on the same request.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.LoanRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(loanColumns...).
		From("loans").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	loan, err := scanLoan(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrLoanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan loan: %v", ErrScanRow, err)
	}

	if err := r.attachDetails(ctx, []*domain.LoanRequest{loan}); err != nil {
		return nil, err
	}
	return loan, nil
}

// GetByRequester fetches a requester's loan history, newest first.
func (r *Repository) GetByRequester(ctx context.Context, requesterID int64, status *domain.LoanStatus) ([]*domain.LoanRequest, error) {
	filter := domain.LoanFilter{RequesterID: &requesterID, Status: status}
	return r.GetWithFilter(ctx, filter)
}

// GetWithFilter fetches loan requests matching the staff-side filter,
// newest first.
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.LoanFilter) ([]*domain.LoanRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(loanColumns...).
		From("loans").
		OrderBy("created_at DESC")

	if filter.RequesterID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"requester_id": *filter.RequesterID})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"loan_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"loan_date": *filter.EndDate})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	loans := make([]*domain.LoanRequest, 0)
	for rows.Next() {
		loan, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetWithFilter - scan loan: %v", ErrScanRow, err)
		}
		loans = append(loans, loan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - rows error: %v", ErrScanRow, err)
	}

	if err := r.attachDetails(ctx, loans); err != nil {
		return nil, err
	}
	return loans, nil
}

// ListApprovedDetailsByResource fetches every approved detail referencing the
// given resource, excluding the candidate loan itself. This is the snapshot
// the arbitrator evaluates against. Inside a transaction the detail rows are
// locked so the snapshot holds until commit.
func (r *Repository) ListApprovedDetailsByResource(
	ctx context.Context,
	kind domain.ResourceKind,
	resourceID int64,
	excludeLoanID int64,
) ([]*domain.LoanDetail, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"ld.id",
		"ld.loan_id",
		"ld.kind",
		"ld.resource_id",
		"ld.quantity",
		"ld.starts_at",
		"ld.ends_at",
		"ld.created_at",
	).
		From("loan_details ld").
		Join("loans l ON l.id = ld.loan_id").
		Where(squirrel.Eq{"ld.kind": kind, "ld.resource_id": resourceID}).
		Where(squirrel.Eq{"l.status": domain.StatusApproved}).
		Where(squirrel.NotEq{"ld.loan_id": excludeLoanID}).
		OrderBy("ld.id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF ld")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListApprovedDetailsByResource - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListApprovedDetailsByResource - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	details := make([]*domain.LoanDetail, 0)
	for rows.Next() {
		var d domain.LoanDetail
		var createdAt sql.NullTime
		if err := rows.Scan(&d.ID, &d.LoanID, &d.Kind, &d.ResourceID, &d.Quantity, &d.StartsAt, &d.EndsAt, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: ListApprovedDetailsByResource - scan detail: %v", ErrScanRow, err)
		}
		d.CreatedAt = createdAt.Time
		details = append(details, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListApprovedDetailsByResource - rows error: %v", ErrScanRow, err)
	}

	return details, nil
}

// GetRoomSchedule fetches the approved bookings of a room for one calendar
// date, ordered by start time, with the owner names the booking form shows.
func (r *Repository) GetRoomSchedule(ctx context.Context, roomID int64, date time.Time) ([]*domain.RoomBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	query, args, err := psqlbuilder.Select(
		"l.id",
		"l.requester_id",
		"l.requester_name",
		"l.status",
		"ld.starts_at",
		"ld.ends_at",
	).
		From("loan_details ld").
		Join("loans l ON l.id = ld.loan_id").
		Where(squirrel.Eq{"ld.kind": domain.KindRoom, "ld.resource_id": roomID}).
		Where(squirrel.Eq{"l.status": domain.StatusApproved}).
		Where(squirrel.GtOrEq{"ld.starts_at": dayStart}).
		Where(squirrel.Lt{"ld.starts_at": dayEnd}).
		OrderBy("ld.starts_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetRoomSchedule - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetRoomSchedule - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.RoomBooking, 0)
	for rows.Next() {
		var b domain.RoomBooking
		var startsAt, endsAt time.Time
		if err := rows.Scan(&b.BookingID, &b.OwnerID, &b.OwnerName, &b.Status, &startsAt, &endsAt); err != nil {
			return nil, fmt.Errorf("%w: GetRoomSchedule - scan booking: %v", ErrScanRow, err)
		}
		b.Start = types.NewTimeString(startsAt)
		b.End = types.NewTimeString(endsAt)
		bookings = append(bookings, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetRoomSchedule - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// UpdateDecision applies an approval decision to the loan row. The caller is
// responsible for having validated the status transition.
func (r *Repository) UpdateDecision(
	ctx context.Context,
	id int64,
	status domain.LoanStatus,
	approvedBy int64,
	approverName string,
	rejectionNote *string,
	verificationCodeHash *string,
) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("loans").
		Set("status", status).
		Set("approved_by", approvedBy).
		Set("approver_name", approverName).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if rejectionNote != nil {
		updateBuilder = updateBuilder.Set("rejection_note", *rejectionNote)
	}
	if verificationCodeHash != nil {
		updateBuilder = updateBuilder.Set("verification_code_hash", *verificationCodeHash)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateDecision - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateDecision - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateDecision - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrLoanNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLoan(row rowScanner) (*domain.LoanRequest, error) {
	var loan domain.LoanRequest
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&loan.ID,
		&loan.RequesterID,
		&loan.RequesterName,
		&loan.RequesterNIM,
		&loan.LoanDate,
		&loan.Notes,
		&loan.Status,
		&loan.ApprovedBy,
		&loan.ApproverName,
		&loan.RejectionNote,
		&loan.VerificationCodeHash,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	loan.CreatedAt = createdAt.Time
	loan.UpdatedAt = updatedAt.Time
	return &loan, nil
}

// attachDetails loads the detail rows for the given loans in one query.
func (r *Repository) attachDetails(ctx context.Context, loans []*domain.LoanRequest) error {
	if len(loans) == 0 {
		return nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	ids := make([]int64, len(loans))
	byID := make(map[int64]*domain.LoanRequest, len(loans))
	for i, l := range loans {
		ids[i] = l.ID
		byID[l.ID] = l
		l.Details = make([]domain.LoanDetail, 0)
	}

	query, args, err := psqlbuilder.Select(
		"id", "loan_id", "kind", "resource_id", "quantity", "starts_at", "ends_at", "created_at",
	).
		From("loan_details").
		Where(squirrel.Eq{"loan_id": ids}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: attachDetails - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: attachDetails - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var d domain.LoanDetail
		var createdAt sql.NullTime
		if err := rows.Scan(&d.ID, &d.LoanID, &d.Kind, &d.ResourceID, &d.Quantity, &d.StartsAt, &d.EndsAt, &createdAt); err != nil {
			return fmt.Errorf("%w: attachDetails - scan detail: %v", ErrScanRow, err)
		}
		d.CreatedAt = createdAt.Time
		if loan, ok := byID[d.LoanID]; ok {
			loan.Details = append(loan.Details, d)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: attachDetails - rows error: %v", ErrScanRow, err)
	}
	return nil
}
