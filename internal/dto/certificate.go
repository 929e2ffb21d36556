package dto

// ── certificate module DTOs ──

// GenerateCertificateRequest asks for one professor's declaration.
type GenerateCertificateRequest struct {
	ProfessorID string `json:"professor_id" binding:"required"`
	Period      string `json:"period"       binding:"required,max=20"`
}

// BatchCertificateRequest asks for declarations across a professor set.
type BatchCertificateRequest struct {
	ProfessorIDs []string `json:"professor_ids" binding:"required,min=1"`
	Period       string   `json:"period"        binding:"required,max=20"`
}

// BatchCertificateResponse reports the aggregate outcome; individual failures
// never abort the batch.
type BatchCertificateResponse struct {
	Requested int      `json:"requested"`
	Generated int      `json:"generated"`
	Failed    []string `json:"failed,omitempty"` // professor ids that failed
}

// CertificateRecordResponse is one audit row.
type CertificateRecordResponse struct {
	ID             string `json:"id"`
	ProfessorID    string `json:"professor_id"`
	ProfessorName  string `json:"professor_name,omitempty"`
	AcademicPeriod string `json:"academic_period"`
	TotalHours     int    `json:"total_hours"`
	GeneratedBy    string `json:"generated_by"`
	GeneratedAt    string `json:"generated_at"`
}
