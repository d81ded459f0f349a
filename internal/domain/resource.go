package domain

import "time"

// ResourceStatus is the catalog-maintained availability flag.
type ResourceStatus string

const (
	ResourceAvailable   ResourceStatus = "tersedia"
	ResourceOnLoan      ResourceStatus = "dipinjam"
	ResourceMaintenance ResourceStatus = "maintenance"
)

// Item is a discrete-stock resource (projectors, cables, paper).
type Item struct {
	ID        int64
	Name      string
	Unit      string // "unit", "rim", ...
	Stock     int
	Status    ResourceStatus
	Location  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Room is a time-sliced resource. Capacity is informational only; concurrency
// is governed by window overlap, not head count.
type Room struct {
	ID         int64
	Name       string
	Building   string
	Floor      int
	Capacity   int
	Facilities string
	Status     ResourceStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// AttendanceSlot is a single-owner resource: at most one approved loan may
// hold it at any time.
type AttendanceSlot struct {
	ID         int64
	CourseName string
	ClassLabel string // "A", "B", ...
	Semester   int
	Lecturer   string
	Department string
	Status     ResourceStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
