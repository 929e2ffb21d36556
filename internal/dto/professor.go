package dto

// ── professor module DTOs ──

// CreateProfessorRequest adds a directory entry.
type CreateProfessorRequest struct {
	FullName         string `json:"full_name"         binding:"required,min=2,max=255"`
	InstitutionEmail string `json:"institution_email" binding:"required,email"`
	SiapeCode        string `json:"siape_code"        binding:"omitempty,max=20"`
	Department       string `json:"department"        binding:"omitempty,max=255"`
}

// UpdateProfessorRequest edits a directory entry.
type UpdateProfessorRequest struct {
	FullName   *string `json:"full_name"  binding:"omitempty,min=2,max=255"`
	SiapeCode  *string `json:"siape_code" binding:"omitempty,max=20"`
	Department *string `json:"department" binding:"omitempty,max=255"`
}

// ProfessorResponse is the directory view.
type ProfessorResponse struct {
	ID               string `json:"id"`
	FullName         string `json:"full_name"`
	InstitutionEmail string `json:"institution_email"`
	SiapeCode        string `json:"siape_code,omitempty"`
	Department       string `json:"department,omitempty"`
}

// ProfessorParticipationResponse is the directory view plus attendance totals
// for a period; input to certificate generation and the report export.
type ProfessorParticipationResponse struct {
	ProfessorResponse
	MeetingsAttended int `json:"meetings_attended"`
	HoursAttended    int `json:"hours_attended"`
}
