package model

import "time"

// Meeting maps to meetings.
type Meeting struct {
	ID             string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Title          string    `gorm:"type:varchar(255);not null"                     json:"title"`
	MeetingDate    time.Time `gorm:"type:date;not null"                             json:"meeting_date"`
	StartTime      string    `gorm:"type:time;not null;default:'00:00'"             json:"start_time"`
	EndTime        string    `gorm:"type:time;not null;default:'00:00'"             json:"end_time"`
	Location       string    `gorm:"type:varchar(255)"                              json:"location"`
	MeetingType    string    `gorm:"type:meeting_type;not null"                     json:"meeting_type"`
	SemesterID     *string   `gorm:"type:uuid"                                      json:"semester_id,omitempty"`
	AcademicPeriod string    `gorm:"type:varchar(20)"                               json:"academic_period"`
	Agenda         string    `gorm:"type:text"                                      json:"agenda"`
	Deliberations  string    `gorm:"type:text"                                      json:"deliberations"`
	Status         string    `gorm:"type:meeting_status;not null;default:'agendada'" json:"status"`
	CreatedBy      string    `gorm:"type:uuid;not null"                             json:"created_by"`
	Timestamps

	Semester     *Semester            `gorm:"foreignKey:SemesterID"  json:"semester,omitempty"`
	Participants []MeetingParticipant `gorm:"foreignKey:MeetingID"   json:"participants,omitempty"`
	Attachments  []MeetingAttachment  `gorm:"foreignKey:MeetingID"   json:"attachments,omitempty"`
}

// TableName sets the table name.
func (Meeting) TableName() string { return "meetings" }

// MeetingParticipant maps to meeting_participants. One row per professor per
// meeting; the pair is unique.
type MeetingParticipant struct {
	ID               string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	MeetingID        string `gorm:"type:uuid;not null;uniqueIndex:uq_meeting_professor" json:"meeting_id"`
	ProfessorID      string `gorm:"type:uuid;not null;uniqueIndex:uq_meeting_professor" json:"professor_id"`
	AttendanceStatus bool   `gorm:"not null;default:false"                         json:"attendance_status"`
	HoursComputed    int    `gorm:"not null;default:2"                             json:"hours_computed"`

	Professor *Professor `gorm:"foreignKey:ProfessorID" json:"professor,omitempty"`
}

// TableName sets the table name.
func (MeetingParticipant) TableName() string { return "meeting_participants" }

// MeetingAttachment maps to meeting_attachments. The storage object lives at
// FilePath in the meeting bucket.
type MeetingAttachment struct {
	ID         string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	MeetingID  string    `gorm:"type:uuid;not null"                             json:"meeting_id"`
	Filename   string    `gorm:"type:varchar(255);not null"                     json:"filename"`
	FilePath   string    `gorm:"type:text;not null"                             json:"file_path"`
	UploadedBy string    `gorm:"type:uuid;not null"                             json:"uploaded_by"`
	UploadedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"uploaded_at"`
}

// TableName sets the table name.
func (MeetingAttachment) TableName() string { return "meeting_attachments" }

// MeetingMinutes maps to meeting_minutes; at most one row per meeting.
type MeetingMinutes struct {
	ID          string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	MeetingID   string    `gorm:"type:uuid;not null;uniqueIndex"                 json:"meeting_id"`
	Content     string    `gorm:"type:text;not null"                             json:"content"`
	FilePath    *string   `gorm:"type:text"                                      json:"file_path,omitempty"`
	GeneratedBy string    `gorm:"type:uuid;not null"                             json:"generated_by"`
	GeneratedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"generated_at"`
	UpdatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"updated_at"`
}

// TableName sets the table name.
func (MeetingMinutes) TableName() string { return "meeting_minutes" }
