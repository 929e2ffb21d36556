package service

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/ronnaro/ata-academica-plus/internal/model"
	"github.com/ronnaro/ata-academica-plus/internal/repository"
)

// ── Mock ProfileRepository ──

type mockProfileRepo struct {
	profiles map[string]*model.Profile
}

func newMockProfileRepo() *mockProfileRepo {
	return &mockProfileRepo{profiles: make(map[string]*model.Profile)}
}

func (m *mockProfileRepo) Create(_ context.Context, profile *model.Profile) error {
	if profile.ID == "" {
		profile.ID = fmt.Sprintf("prof-%d", len(m.profiles)+1)
	}
	profile.CreatedAt = time.Now()
	m.profiles[profile.ID] = profile
	return nil
}

func (m *mockProfileRepo) GetByID(_ context.Context, id string) (*model.Profile, error) {
	if p, ok := m.profiles[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProfileRepo) GetByEmail(_ context.Context, email string) (*model.Profile, error) {
	for _, p := range m.profiles {
		if p.InstitutionEmail == email {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProfileRepo) Update(_ context.Context, profile *model.Profile) error {
	m.profiles[profile.ID] = profile
	return nil
}

// ── Mock ProfessorRepository ──

type mockProfessorRepo struct {
	professors map[string]*model.Professor
	order      []string
	listErr    error
}

func newMockProfessorRepo() *mockProfessorRepo {
	return &mockProfessorRepo{professors: make(map[string]*model.Professor)}
}

func (m *mockProfessorRepo) Create(_ context.Context, professor *model.Professor) error {
	if professor.ID == "" {
		professor.ID = fmt.Sprintf("doc-%d", len(m.professors)+1)
	}
	m.professors[professor.ID] = professor
	m.order = append(m.order, professor.ID)
	return nil
}

func (m *mockProfessorRepo) GetByID(_ context.Context, id string) (*model.Professor, error) {
	if p, ok := m.professors[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProfessorRepo) List(_ context.Context) ([]model.Professor, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	result := make([]model.Professor, 0, len(m.order))
	for _, id := range m.order {
		result = append(result, *m.professors[id])
	}
	return result, nil
}

func (m *mockProfessorRepo) Update(_ context.Context, professor *model.Professor) error {
	m.professors[professor.ID] = professor
	return nil
}

// ── Mock SemesterRepository ──

type mockSemesterRepo struct {
	semesters map[string]*model.Semester
}

func newMockSemesterRepo() *mockSemesterRepo {
	return &mockSemesterRepo{semesters: make(map[string]*model.Semester)}
}

func (m *mockSemesterRepo) Create(_ context.Context, semester *model.Semester) error {
	if semester.ID == "" {
		semester.ID = "sem-" + semester.Name
	}
	m.semesters[semester.ID] = semester
	return nil
}

func (m *mockSemesterRepo) GetByID(_ context.Context, id string) (*model.Semester, error) {
	if s, ok := m.semesters[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSemesterRepo) List(_ context.Context) ([]model.Semester, error) {
	var result []model.Semester
	for _, s := range m.semesters {
		result = append(result, *s)
	}
	return result, nil
}

func (m *mockSemesterRepo) Update(_ context.Context, semester *model.Semester) error {
	m.semesters[semester.ID] = semester
	return nil
}

func (m *mockSemesterRepo) Delete(_ context.Context, id string) error {
	delete(m.semesters, id)
	return nil
}

// ── Mock MeetingRepository ──

type mockMeetingRepo struct {
	meetings  map[string]*model.Meeting
	createErr error
	deleted   []string
}

func newMockMeetingRepo() *mockMeetingRepo {
	return &mockMeetingRepo{meetings: make(map[string]*model.Meeting)}
}

func (m *mockMeetingRepo) Create(_ context.Context, meeting *model.Meeting) error {
	if m.createErr != nil {
		return m.createErr
	}
	if meeting.ID == "" {
		meeting.ID = fmt.Sprintf("mtg-%d", len(m.meetings)+1)
	}
	meeting.CreatedAt = time.Now()
	m.meetings[meeting.ID] = meeting
	return nil
}

func (m *mockMeetingRepo) GetByID(_ context.Context, id string) (*model.Meeting, error) {
	if mt, ok := m.meetings[id]; ok {
		return mt, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMeetingRepo) List(_ context.Context, filter repository.MeetingFilter) ([]model.Meeting, error) {
	var result []model.Meeting
	for _, mt := range m.meetings {
		if filter.Status != "" && mt.Status != filter.Status {
			continue
		}
		if filter.SemesterID != "" && (mt.SemesterID == nil || *mt.SemesterID != filter.SemesterID) {
			continue
		}
		result = append(result, *mt)
	}
	return result, nil
}

func (m *mockMeetingRepo) Update(_ context.Context, meeting *model.Meeting) error {
	m.meetings[meeting.ID] = meeting
	return nil
}

func (m *mockMeetingRepo) Delete(_ context.Context, id string) error {
	delete(m.meetings, id)
	m.deleted = append(m.deleted, id)
	return nil
}

// ── Mock ParticipantRepository ──

type mockParticipantRepo struct {
	participants map[string]*model.MeetingParticipant
	batchErr     error
	countErr     error
	attended     map[string]int64 // "professorID:period" → count
}

func newMockParticipantRepo() *mockParticipantRepo {
	return &mockParticipantRepo{
		participants: make(map[string]*model.MeetingParticipant),
		attended:     make(map[string]int64),
	}
}

func (m *mockParticipantRepo) CreateBatch(_ context.Context, participants []model.MeetingParticipant) error {
	if m.batchErr != nil {
		return m.batchErr
	}
	for i := range participants {
		p := participants[i]
		if p.ID == "" {
			p.ID = fmt.Sprintf("part-%d", len(m.participants)+1)
		}
		m.participants[p.ID] = &p
	}
	return nil
}

func (m *mockParticipantRepo) GetByID(_ context.Context, id string) (*model.MeetingParticipant, error) {
	if p, ok := m.participants[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockParticipantRepo) ListByMeeting(_ context.Context, meetingID string) ([]model.MeetingParticipant, error) {
	var result []model.MeetingParticipant
	for _, p := range m.participants {
		if p.MeetingID == meetingID {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockParticipantRepo) Update(_ context.Context, participant *model.MeetingParticipant) error {
	m.participants[participant.ID] = participant
	return nil
}

func (m *mockParticipantRepo) CountAttended(_ context.Context, professorID, period string) (int64, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	return m.attended[professorID+":"+period], nil
}

func (m *mockParticipantRepo) DeleteByMeeting(_ context.Context, meetingID string) error {
	for id, p := range m.participants {
		if p.MeetingID == meetingID {
			delete(m.participants, id)
		}
	}
	return nil
}

// ── Mock AttachmentRepository ──

type mockAttachmentRepo struct {
	attachments map[string]*model.MeetingAttachment
	createErr   error
	deleted     []string
}

func newMockAttachmentRepo() *mockAttachmentRepo {
	return &mockAttachmentRepo{attachments: make(map[string]*model.MeetingAttachment)}
}

func (m *mockAttachmentRepo) Create(_ context.Context, attachment *model.MeetingAttachment) error {
	if m.createErr != nil {
		return m.createErr
	}
	if attachment.ID == "" {
		attachment.ID = fmt.Sprintf("att-%d", len(m.attachments)+1)
	}
	attachment.UploadedAt = time.Now()
	m.attachments[attachment.ID] = attachment
	return nil
}

func (m *mockAttachmentRepo) GetByID(_ context.Context, id string) (*model.MeetingAttachment, error) {
	if a, ok := m.attachments[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAttachmentRepo) ListByMeeting(_ context.Context, meetingID string) ([]model.MeetingAttachment, error) {
	var result []model.MeetingAttachment
	for _, a := range m.attachments {
		if a.MeetingID == meetingID {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockAttachmentRepo) DeleteByMeeting(_ context.Context, meetingID string) error {
	for id, a := range m.attachments {
		if a.MeetingID == meetingID {
			delete(m.attachments, id)
		}
	}
	m.deleted = append(m.deleted, meetingID)
	return nil
}

// ── Mock MinutesRepository ──

type mockMinutesRepo struct {
	byMeeting map[string]*model.MeetingMinutes
}

func newMockMinutesRepo() *mockMinutesRepo {
	return &mockMinutesRepo{byMeeting: make(map[string]*model.MeetingMinutes)}
}

func (m *mockMinutesRepo) Upsert(_ context.Context, minutes *model.MeetingMinutes) error {
	if existing, ok := m.byMeeting[minutes.MeetingID]; ok {
		existing.Content = minutes.Content
		existing.GeneratedBy = minutes.GeneratedBy
		existing.UpdatedAt = time.Now()
		return nil
	}
	if minutes.ID == "" {
		minutes.ID = fmt.Sprintf("min-%d", len(m.byMeeting)+1)
	}
	minutes.GeneratedAt = time.Now()
	minutes.UpdatedAt = minutes.GeneratedAt
	m.byMeeting[minutes.MeetingID] = minutes
	return nil
}

func (m *mockMinutesRepo) GetByMeeting(_ context.Context, meetingID string) (*model.MeetingMinutes, error) {
	if mn, ok := m.byMeeting[meetingID]; ok {
		return mn, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock CertificateRepository ──

// The audit insert runs on a detached goroutine, so this mock is guarded.
type mockCertificateRepo struct {
	mu        sync.Mutex
	records   []model.Certificate
	createErr error
}

func newMockCertificateRepo() *mockCertificateRepo {
	return &mockCertificateRepo{}
}

func (m *mockCertificateRepo) Create(_ context.Context, certificate *model.Certificate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	if certificate.ID == "" {
		certificate.ID = fmt.Sprintf("cert-%d", len(m.records)+1)
	}
	certificate.GeneratedAt = time.Now()
	m.records = append(m.records, *certificate)
	return nil
}

func (m *mockCertificateRepo) ListByPeriod(_ context.Context, period string) ([]model.Certificate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.Certificate
	for _, r := range m.records {
		if period == "" || r.AcademicPeriod == period {
			result = append(result, r)
		}
	}
	return result, nil
}

func (m *mockCertificateRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

// ── Mock SettingRepository ──

type mockSettingRepo struct {
	settings map[string]*model.Setting // "userID:type"
}

func newMockSettingRepo() *mockSettingRepo {
	return &mockSettingRepo{settings: make(map[string]*model.Setting)}
}

func (m *mockSettingRepo) Upsert(_ context.Context, setting *model.Setting) error {
	key := setting.UserID + ":" + setting.SettingsType
	if existing, ok := m.settings[key]; ok {
		existing.SettingsData = setting.SettingsData
		existing.UpdatedAt = time.Now()
		*setting = *existing
		return nil
	}
	if setting.ID == "" {
		setting.ID = fmt.Sprintf("set-%d", len(m.settings)+1)
	}
	setting.UpdatedAt = time.Now()
	m.settings[key] = setting
	return nil
}

func (m *mockSettingRepo) Get(_ context.Context, userID, settingsType string) (*model.Setting, error) {
	if s, ok := m.settings[userID+":"+settingsType]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSettingRepo) ListByUser(_ context.Context, userID string) ([]model.Setting, error) {
	var result []model.Setting
	for _, s := range m.settings {
		if s.UserID == userID {
			result = append(result, *s)
		}
	}
	return result, nil
}

// ── Mock ObjectStore ──

type storedObject struct {
	bucket      string
	path        string
	contentType string
	data        []byte
}

type mockObjectStore struct {
	objects    []storedObject
	failAtCall int // 1-based ordinal of the Upload call that fails; 0 = never
	calls      int
}

func newMockObjectStore() *mockObjectStore {
	return &mockObjectStore{}
}

func (m *mockObjectStore) Upload(_ context.Context, bucket, path, contentType string, data io.Reader) error {
	m.calls++
	if m.failAtCall > 0 && m.calls == m.failAtCall {
		return fmt.Errorf("storage rejected object")
	}
	body, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	m.objects = append(m.objects, storedObject{
		bucket:      bucket,
		path:        path,
		contentType: contentType,
		data:        body,
	})
	return nil
}

func (m *mockObjectStore) Download(_ context.Context, bucket, path string) ([]byte, error) {
	for _, o := range m.objects {
		if o.bucket == bucket && o.path == path {
			return o.data, nil
		}
	}
	return nil, fmt.Errorf("object not found: %s/%s", bucket, path)
}

func (m *mockObjectStore) Delete(_ context.Context, bucket, path string) error {
	for i, o := range m.objects {
		if o.bucket == bucket && o.path == path {
			m.objects = append(m.objects[:i], m.objects[i+1:]...)
			return nil
		}
	}
	return nil
}

// ── shared fixture ──

// testRepos bundles every mock behind a repository aggregate. BeginTx returns
// nil on the zero-value aggregate, which WithTx tolerates.
type testRepos struct {
	repo        *repository.Repository
	profile     *mockProfileRepo
	professor   *mockProfessorRepo
	semester    *mockSemesterRepo
	meeting     *mockMeetingRepo
	participant *mockParticipantRepo
	attachment  *mockAttachmentRepo
	minutes     *mockMinutesRepo
	certificate *mockCertificateRepo
	setting     *mockSettingRepo
}

func newTestRepos() *testRepos {
	tr := &testRepos{
		profile:     newMockProfileRepo(),
		professor:   newMockProfessorRepo(),
		semester:    newMockSemesterRepo(),
		meeting:     newMockMeetingRepo(),
		participant: newMockParticipantRepo(),
		attachment:  newMockAttachmentRepo(),
		minutes:     newMockMinutesRepo(),
		certificate: newMockCertificateRepo(),
		setting:     newMockSettingRepo(),
	}
	tr.repo = &repository.Repository{
		Profile:     tr.profile,
		Professor:   tr.professor,
		Semester:    tr.semester,
		Meeting:     tr.meeting,
		Participant: tr.participant,
		Attachment:  tr.attachment,
		Minutes:     tr.minutes,
		Certificate: tr.certificate,
		Setting:     tr.setting,
	}
	return tr
}
