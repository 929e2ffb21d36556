package model

// Profile maps to profiles, the authentication directory. Role is always
// resolved from this table; there is no identity-based shortcut.
type Profile struct {
	ID               string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	FullName         string `gorm:"type:varchar(255);not null"                     json:"full_name"`
	InstitutionEmail string `gorm:"type:varchar(255);not null"                     json:"institution_email"`
	PasswordHash     string `gorm:"type:varchar(255);not null"                     json:"-"`
	Role             string `gorm:"type:varchar(20);not null;default:'docente'"    json:"role"`
	Timestamps
}

// TableName sets the table name.
func (Profile) TableName() string { return "profiles" }

// IsCoordinator reports whether the profile holds the coordinator role.
func (p *Profile) IsCoordinator() bool { return p.Role == RoleCoordenador }
