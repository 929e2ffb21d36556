package model

import "time"

// Meeting types mirrored from the meeting_type enum.
const (
	MeetingTypeOrdinaria      = "ordinaria"
	MeetingTypeExtraordinaria = "extraordinaria"
	MeetingTypeColegiado      = "colegiado"
	MeetingTypeComissao       = "comissao"
	MeetingTypeOutros         = "outros"
)

// Meeting statuses mirrored from the meeting_status enum.
const (
	MeetingStatusAgendada  = "agendada"
	MeetingStatusRealizada = "realizada"
	MeetingStatusCancelada = "cancelada"
)

// Directory roles.
const (
	RoleDocente     = "docente"
	RoleCoordenador = "coordenador"
)

// Timestamps are the audit columns shared by most tables.
type Timestamps struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}
