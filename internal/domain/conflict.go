package domain

import "fmt"

// Conflict describes one reason a loan detail cannot be approved. Conflicts
// are data, not errors: the arbitrator returns every conflict it finds so the
// approver sees the full picture at once.
type Conflict struct {
	Kind         ResourceKind `json:"kind"`
	ResourceName string       `json:"resourceName"`
	Available    int          `json:"available,omitempty"`
	Requested    int          `json:"requested,omitempty"`
	Message      string       `json:"message"`
}

// NewStockConflict reports an item whose remaining stock cannot cover the
// requested quantity.
func NewStockConflict(name string, available, requested int) Conflict {
	return Conflict{
		Kind:         KindItem,
		ResourceName: name,
		Available:    available,
		Requested:    requested,
		Message:      fmt.Sprintf("Stok tidak mencukupi (tersedia: %d, diminta: %d)", available, requested),
	}
}

// NewRoomConflict reports a room window that overlaps an approved booking.
func NewRoomConflict(name string) Conflict {
	return Conflict{
		Kind:         KindRoom,
		ResourceName: name,
		Message:      "Waktu bentrok dengan peminjaman lain",
	}
}

// NewSlotConflict reports an attendance slot already held by another
// approved loan.
func NewSlotConflict(name string) Conflict {
	return Conflict{
		Kind:         KindAttendanceSlot,
		ResourceName: name,
		Message:      "Sudah dipinjam oleh orang lain",
	}
}

// NewStaleResourceConflict reports a detail whose resource no longer exists.
// A missing resource blocks approval; it is never silently skipped.
func NewStaleResourceConflict(kind ResourceKind) Conflict {
	return Conflict{
		Kind:         kind,
		ResourceName: "unknown",
		Message:      "Sumber daya tidak ditemukan",
	}
}
