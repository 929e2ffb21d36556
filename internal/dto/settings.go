package dto

// ── settings module DTOs ──

// InstitutionSettings is the institution letterhead block.
type InstitutionSettings struct {
	Name         string `json:"name"         binding:"required,max=255"`
	Abbreviation string `json:"abbreviation" binding:"omitempty,max=50"`
	Campus       string `json:"campus"       binding:"omitempty,max=255"`
	Department   string `json:"department"   binding:"omitempty,max=255"`
	LogoPath     string `json:"logo_path,omitempty"`
}

// CertificateSettings controls declaration rendering. WorkloadPerMeeting is
// the authoritative hours-per-meeting rate once saved; the service falls back
// to the configured default when absent.
type CertificateSettings struct {
	HeaderText         string `json:"header_text"          binding:"omitempty,max=500"`
	FooterText         string `json:"footer_text"          binding:"omitempty,max=500"`
	Signature          string `json:"signature"            binding:"omitempty,max=255"`
	WorkloadPerMeeting int    `json:"workload_per_meeting" binding:"required,min=1,max=24"`
	ShowLogo           bool   `json:"show_institution_logo"`
}

// MeetingSettings holds form defaults for new meetings.
type MeetingSettings struct {
	DefaultType     string `json:"default_type"     binding:"omitempty,oneof=ordinaria extraordinaria colegiado comissao outros"`
	DefaultDuration int    `json:"default_duration" binding:"omitempty,min=1,max=480"` // minutes
}

// SettingResponse is one stored settings row.
type SettingResponse struct {
	SettingsType string                 `json:"settings_type"`
	SettingsData map[string]interface{} `json:"settings_data"`
	UpdatedAt    string                 `json:"updated_at"`
}
