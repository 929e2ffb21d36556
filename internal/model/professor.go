package model

// Professor maps to professors. Lifecycle is owned by the directory admin
// surface; the meeting workflow only references rows.
type Professor struct {
	ID               string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	FullName         string  `gorm:"type:varchar(255);not null"                     json:"full_name"`
	InstitutionEmail string  `gorm:"type:varchar(255);not null"                     json:"institution_email"`
	SiapeCode        string  `gorm:"type:varchar(20)"                               json:"siape_code"`
	Department       string  `gorm:"type:varchar(255)"                              json:"department"`
	UserID           *string `gorm:"type:uuid"                                      json:"user_id,omitempty"`
	Timestamps
}

// TableName sets the table name.
func (Professor) TableName() string { return "professors" }
