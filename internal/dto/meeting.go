package dto

// ── meeting module DTOs ──

// AttachmentUpload is one file captured from the multipart form.
type AttachmentUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// CreateMeetingRequest is the meeting-creation form payload.
type CreateMeetingRequest struct {
	Title        string   `json:"title"          binding:"required,min=2,max=255"`
	MeetingDate  string   `json:"meeting_date"   binding:"required"` // "2026-03-10"
	StartTime    string   `json:"start_time"     binding:"required"` // "14:00"
	EndTime      string   `json:"end_time"       binding:"required"` // "16:00"
	Location     string   `json:"location"       binding:"required,max=255"`
	MeetingType  string   `json:"meeting_type"   binding:"required,oneof=ordinaria extraordinaria colegiado comissao outros"`
	SemesterID   string   `json:"semester_id"    binding:"required"`
	Agenda       string   `json:"agenda"`
	ProfessorIDs []string `json:"professor_ids"  binding:"required,min=1"`

	// Attachments are bound from the multipart form by the handler, not JSON.
	Attachments []AttachmentUpload `json:"-"`
}

// UpdateMeetingRequest mutates status and deliberations after the fact.
// Last write wins; there is no conflict detection on concurrent edits.
type UpdateMeetingRequest struct {
	Title         *string `json:"title"         binding:"omitempty,min=2,max=255"`
	Location      *string `json:"location"      binding:"omitempty,max=255"`
	Status        *string `json:"status"        binding:"omitempty,oneof=agendada realizada cancelada"`
	Agenda        *string `json:"agenda"`
	Deliberations *string `json:"deliberations"`
}

// AttendanceRequest marks one participant's attendance.
type AttendanceRequest struct {
	Attended bool `json:"attended"`
}

// MinutesRequest upserts the meeting minutes text.
type MinutesRequest struct {
	Content string `json:"content" binding:"required"`
}

// ParticipantResponse is one participant link.
type ParticipantResponse struct {
	ID               string `json:"id"`
	ProfessorID      string `json:"professor_id"`
	ProfessorName    string `json:"professor_name,omitempty"`
	AttendanceStatus bool   `json:"attendance_status"`
	HoursComputed    int    `json:"hours_computed"`
}

// AttachmentResponse is one attachment row.
type AttachmentResponse struct {
	ID         string `json:"id"`
	Filename   string `json:"filename"`
	FilePath   string `json:"file_path"`
	UploadedBy string `json:"uploaded_by"`
	UploadedAt string `json:"uploaded_at"`
}

// MeetingResponse is the full meeting view.
type MeetingResponse struct {
	ID            string                `json:"id"`
	Title         string                `json:"title"`
	MeetingDate   string                `json:"meeting_date"`
	StartTime     string                `json:"start_time"`
	EndTime       string                `json:"end_time"`
	Location      string                `json:"location"`
	MeetingType   string                `json:"meeting_type"`
	SemesterID    string                `json:"semester_id,omitempty"`
	Agenda        string                `json:"agenda,omitempty"`
	Deliberations string                `json:"deliberations,omitempty"`
	Status        string                `json:"status"`
	CreatedBy     string                `json:"created_by"`
	CreatedAt     string                `json:"created_at"`
	Participants  []ParticipantResponse `json:"participants,omitempty"`
	Attachments   []AttachmentResponse  `json:"attachments,omitempty"`
}

// MinutesResponse is the minutes view.
type MinutesResponse struct {
	ID          string `json:"id"`
	MeetingID   string `json:"meeting_id"`
	Content     string `json:"content"`
	GeneratedBy string `json:"generated_by"`
	GeneratedAt string `json:"generated_at"`
	UpdatedAt   string `json:"updated_at"`
}
