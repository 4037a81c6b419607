package model

// User role constants, as issued by the clinic API.
const (
	RoleAdmin     = "ADMIN"
	RoleClinician = "CLINICIAN"
	RoleAssistant = "ASSISTANT"
)

// SessionUser is the profile persisted alongside the bearer token after
// login.
type SessionUser struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

// ClinicianRef is the embedded clinician shape carried by visits and
// prescriptions.
type ClinicianRef struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

// AdminUser is a staff account as listed on the user administration
// screen.
type AdminUser struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type CreateUserRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=ADMIN CLINICIAN ASSISTANT"`
}

// LoginData is the payload returned by POST /auth/login.
type LoginData struct {
	Token string      `json:"token"`
	User  SessionUser `json:"user"`
}
