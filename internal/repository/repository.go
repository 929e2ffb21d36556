package repository

import "gorm.io/gorm"

// Repository aggregates every table-store interface.
type Repository struct {
	Profile     ProfileRepository
	Professor   ProfessorRepository
	Semester    SemesterRepository
	Meeting     MeetingRepository
	Participant ParticipantRepository
	Attachment  AttachmentRepository
	Minutes     MinutesRepository
	Certificate CertificateRepository
	Setting     SettingRepository

	db *gorm.DB
}

// NewRepository wires every repository over one gorm.DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Profile:     NewProfileRepo(db),
		Professor:   NewProfessorRepo(db),
		Semester:    NewSemesterRepo(db),
		Meeting:     NewMeetingRepo(db),
		Participant: NewParticipantRepo(db),
		Attachment:  NewAttachmentRepo(db),
		Minutes:     NewMinutesRepo(db),
		Certificate: NewCertificateRepo(db),
		Setting:     NewSettingRepo(db),
		db:          db,
	}
}

// BeginTx opens a database transaction.
func (r *Repository) BeginTx() *gorm.DB {
	if r.db == nil {
		return nil
	}
	return r.db.Begin()
}

// WithTx returns a Repository whose repos run on the given transaction.
// A nil tx (mock setups) returns the receiver unchanged.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return NewRepository(tx)
}
