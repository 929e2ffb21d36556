package model

import "time"

// Semester maps to academic_semesters.
type Semester struct {
	ID        string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null"                     json:"name"`
	StartDate time.Time `gorm:"type:date;not null"                             json:"start_date"`
	EndDate   time.Time `gorm:"type:date;not null"                             json:"end_date"`
	Timestamps
}

// TableName sets the table name.
func (Semester) TableName() string { return "academic_semesters" }
