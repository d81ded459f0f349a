package resource

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/mathrent/MathRent-LoanService/internal/domain"
	"github.com/mathrent/MathRent-LoanService/pkg/dbmetrics"
	"github.com/mathrent/MathRent-LoanService/pkg/psqlbuilder"
)

// Repository reads the resource catalog and applies the stock/status
// mutations an approval decision commits.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository creates a resource repository.
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetItem fetches one stock item.
func (r *Repository) GetItem(ctx context.Context, id int64) (*domain.Item, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "name", "unit", "stock", "status", "location", "created_at", "updated_at",
	).
		From("items").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetItem - build select query: %v", ErrBuildQuery, err)
	}

	var item domain.Item
	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&item.ID, &item.Name, &item.Unit, &item.Stock, &item.Status, &item.Location, &createdAt, &updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrResourceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetItem - scan item: %v", ErrScanRow, err)
	}
	item.CreatedAt = createdAt.Time
	item.UpdatedAt = updatedAt.Time
	return &item, nil
}

// GetRoom fetches one room.
func (r *Repository) GetRoom(ctx context.Context, id int64) (*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "name", "building", "floor", "capacity", "facilities", "status", "created_at", "updated_at",
	).
		From("rooms").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetRoom - build select query: %v", ErrBuildQuery, err)
	}

	var room domain.Room
	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&room.ID, &room.Name, &room.Building, &room.Floor, &room.Capacity, &room.Facilities, &room.Status, &createdAt, &updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrResourceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetRoom - scan room: %v", ErrScanRow, err)
	}
	room.CreatedAt = createdAt.Time
	room.UpdatedAt = updatedAt.Time
	return &room, nil
}

// GetAttendanceSlot fetches one attendance slot.
func (r *Repository) GetAttendanceSlot(ctx context.Context, id int64) (*domain.AttendanceSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "course_name", "class_label", "semester", "lecturer", "department", "status", "created_at", "updated_at",
	).
		From("attendance_slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetAttendanceSlot - build select query: %v", ErrBuildQuery, err)
	}

	var slot domain.AttendanceSlot
	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&slot.ID, &slot.CourseName, &slot.ClassLabel, &slot.Semester, &slot.Lecturer, &slot.Department, &slot.Status, &createdAt, &updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrResourceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetAttendanceSlot - scan slot: %v", ErrScanRow, err)
	}
	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time
	return &slot, nil
}

// DecrementItemStock takes quantity units off an item's stock, but only if
// enough stock remains. The WHERE guard makes the decrement atomic: if a
// concurrent approval consumed the stock after the arbitration snapshot was
// taken, no row matches and ErrInsufficientStock is returned instead of
// driving the stock negative.
func (r *Repository) DecrementItemStock(ctx context.Context, id int64, quantity int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("items").
		Set("stock", squirrel.Expr("stock - ?", quantity)).
		Set("status", squirrel.Expr("CASE WHEN stock - ? = 0 THEN ? ELSE status END", quantity, domain.ResourceOnLoan)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.GtOrEq{"stock": quantity}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DecrementItemStock - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DecrementItemStock - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DecrementItemStock - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrInsufficientStock
	}
	return nil
}

// RestoreItemStock returns quantity units to an item's stock when a loan is
// returned, and flips the item back to available.
func (r *Repository) RestoreItemStock(ctx context.Context, id int64, quantity int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("items").
		Set("stock", squirrel.Expr("stock + ?", quantity)).
		Set("status", domain.ResourceAvailable).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: RestoreItemStock - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: RestoreItemStock - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: RestoreItemStock - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrResourceNotFound
	}
	return nil
}

// SetSlotStatus flips an attendance slot's availability flag.
func (r *Repository) SetSlotStatus(ctx context.Context, id int64, status domain.ResourceStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("attendance_slots").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetSlotStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetSlotStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetSlotStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrResourceNotFound
	}
	return nil
}
