package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants
const (
	MaxNotesLength         = 500
	MaxRejectionNoteLength = 500
	MaxDetailsPerLoan      = 20
	VerificationCodeLength = 8
)

// User roles carried in session tokens.
const (
	RoleMahasiswa = "mahasiswa"
	RoleStaff     = "staff"
)
