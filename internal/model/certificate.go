package model

import "time"

// Certificate maps to certificates, the best-effort audit trail of generated
// participation declarations.
type Certificate struct {
	ID             string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ProfessorID    string    `gorm:"type:uuid;not null"                             json:"professor_id"`
	AcademicPeriod string    `gorm:"type:varchar(20);not null"                      json:"academic_period"`
	TotalHours     int       `gorm:"not null"                                       json:"total_hours"`
	FilePath       *string   `gorm:"type:text"                                      json:"file_path,omitempty"`
	GeneratedBy    string    `gorm:"type:uuid;not null"                             json:"generated_by"`
	GeneratedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"generated_at"`

	Professor *Professor `gorm:"foreignKey:ProfessorID" json:"professor,omitempty"`
}

// TableName sets the table name.
func (Certificate) TableName() string { return "certificates" }
