package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/ronnaro/ata-academica-plus/internal/dto"
	"github.com/ronnaro/ata-academica-plus/internal/model"
)

// ── test fixtures ──

func setupTestMeetingService() (MeetingService, *testRepos, *mockObjectStore) {
	tr := newTestRepos()
	store := newMockObjectStore()
	svc := NewMeetingService(tr.repo, store, "meeting_files", 2, zap.NewNop())

	tr.semester.semesters["sem-1"] = &model.Semester{
		ID:        "sem-1",
		Name:      "2026.1",
		StartDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC),
	}
	return svc, tr, store
}

func validCreateRequest() *dto.CreateMeetingRequest {
	return &dto.CreateMeetingRequest{
		Title:        "Reunião Ordinária de Março",
		MeetingDate:  "2026-03-10",
		StartTime:    "14:00",
		EndTime:      "16:00",
		Location:     "Sala 12",
		MeetingType:  model.MeetingTypeOrdinaria,
		SemesterID:   "sem-1",
		Agenda:       "Pauta única",
		ProfessorIDs: []string{"doc-1", "doc-2", "doc-3"},
	}
}

// ── Create ──

func TestMeetingService_Create_Success(t *testing.T) {
	svc, tr, store := setupTestMeetingService()

	req := validCreateRequest()
	req.Attachments = []dto.AttachmentUpload{
		{Filename: "ata_anterior.pdf", ContentType: "application/pdf", Data: []byte("pdf-bytes")},
		{Filename: "pauta.docx", ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document", Data: []byte("docx-bytes")},
	}

	result, err := svc.Create(context.Background(), req, "user-1")
	if err != nil {
		t.Fatalf("Create should succeed: %v", err)
	}
	if result.Status != model.MeetingStatusAgendada {
		t.Errorf("new meeting should be agendada, got %s", result.Status)
	}

	meeting := tr.meeting.meetings[result.ID]
	if meeting == nil {
		t.Fatal("meeting row not persisted")
	}
	if meeting.AcademicPeriod != "2026.1" {
		t.Errorf("academic period should come from the semester, got %q", meeting.AcademicPeriod)
	}

	// one participant link per selected professor, absent by default, fixed
	// workload credited
	links, _ := tr.participant.ListByMeeting(context.Background(), result.ID)
	if len(links) != 3 {
		t.Fatalf("expected 3 participant links, got %d", len(links))
	}
	for _, link := range links {
		if link.AttendanceStatus {
			t.Error("participants must start absent")
		}
		if link.HoursComputed != 2 {
			t.Errorf("expected 2 hours credited, got %d", link.HoursComputed)
		}
	}

	// one stored blob and one metadata row per file
	if len(store.objects) != 2 {
		t.Fatalf("expected 2 stored objects, got %d", len(store.objects))
	}
	rows, _ := tr.attachment.ListByMeeting(context.Background(), result.ID)
	if len(rows) != 2 {
		t.Fatalf("expected 2 attachment rows, got %d", len(rows))
	}
	for _, o := range store.objects {
		if !strings.HasPrefix(o.path, "meeting_files/"+result.ID+"/") {
			t.Errorf("object path must carry the meeting id: %s", o.path)
		}
	}
}

func TestMeetingService_Create_DuplicateSelectionCollapses(t *testing.T) {
	svc, tr, _ := setupTestMeetingService()

	req := validCreateRequest()
	req.ProfessorIDs = []string{"doc-1", "doc-2", "doc-1", "doc-2"}

	result, err := svc.Create(context.Background(), req, "user-1")
	if err != nil {
		t.Fatalf("Create should succeed: %v", err)
	}

	links, _ := tr.participant.ListByMeeting(context.Background(), result.ID)
	if len(links) != 2 {
		t.Errorf("duplicate professors must collapse to one link each, got %d", len(links))
	}
}

func TestMeetingService_Create_EmptySelection(t *testing.T) {
	svc, tr, store := setupTestMeetingService()

	req := validCreateRequest()
	req.ProfessorIDs = nil
	req.Attachments = []dto.AttachmentUpload{
		{Filename: "pauta.pdf", ContentType: "application/pdf", Data: []byte("x")},
	}

	_, err := svc.Create(context.Background(), req, "user-1")
	if !errors.Is(err, ErrNoParticipants) {
		t.Fatalf("expected ErrNoParticipants, got %v", err)
	}

	// validation failure must not reach any collaborator
	if len(tr.meeting.meetings) != 0 {
		t.Error("no meeting row may exist after a validation failure")
	}
	if store.calls != 0 {
		t.Error("no upload may be issued after a validation failure")
	}
}

func TestMeetingService_Create_MissingFields(t *testing.T) {
	svc, _, _ := setupTestMeetingService()

	req := validCreateRequest()
	req.Title = "   "

	if _, err := svc.Create(context.Background(), req, "user-1"); !errors.Is(err, ErrMeetingInvalid) {
		t.Errorf("expected ErrMeetingInvalid, got %v", err)
	}
}

func TestMeetingService_Create_UnknownSemester(t *testing.T) {
	svc, tr, _ := setupTestMeetingService()

	req := validCreateRequest()
	req.SemesterID = "sem-missing"

	if _, err := svc.Create(context.Background(), req, "user-1"); !errors.Is(err, ErrMeetingInvalid) {
		t.Errorf("expected ErrMeetingInvalid, got %v", err)
	}
	if len(tr.meeting.meetings) != 0 {
		t.Error("no meeting row may exist for an unknown semester")
	}
}

func TestMeetingService_Create_InsertFailureLeavesNothing(t *testing.T) {
	svc, tr, store := setupTestMeetingService()
	tr.meeting.createErr = errors.New("db down")

	req := validCreateRequest()
	req.Attachments = []dto.AttachmentUpload{
		{Filename: "pauta.pdf", ContentType: "application/pdf", Data: []byte("x")},
	}

	if _, err := svc.Create(context.Background(), req, "user-1"); err == nil {
		t.Fatal("Create should fail when the meeting insert fails")
	}
	if store.calls != 0 {
		t.Error("no upload may run when the meeting insert fails")
	}
	if len(tr.participant.participants) != 0 {
		t.Error("no participant link may exist when the meeting insert fails")
	}
}

func TestMeetingService_Create_AttachmentFailureKeepsEarlierState(t *testing.T) {
	svc, tr, store := setupTestMeetingService()
	store.failAtCall = 2 // second file is rejected

	req := validCreateRequest()
	req.Attachments = []dto.AttachmentUpload{
		{Filename: "primeiro.pdf", ContentType: "application/pdf", Data: []byte("a")},
		{Filename: "segundo.pdf", ContentType: "application/pdf", Data: []byte("b")},
		{Filename: "terceiro.pdf", ContentType: "application/pdf", Data: []byte("c")},
	}

	_, err := svc.Create(context.Background(), req, "user-1")
	if !errors.Is(err, ErrAttachmentUpload) {
		t.Fatalf("expected ErrAttachmentUpload, got %v", err)
	}

	// the meeting row and the first file survive; the third file never ran;
	// no participant link exists
	if len(tr.meeting.meetings) != 1 {
		t.Errorf("meeting row must survive an attachment failure, got %d rows", len(tr.meeting.meetings))
	}
	if len(store.objects) != 1 {
		t.Errorf("only the first object may be stored, got %d", len(store.objects))
	}
	if store.calls != 2 {
		t.Errorf("the loop must abort after the failed file, got %d calls", store.calls)
	}
	if len(tr.participant.participants) != 0 {
		t.Error("no participant link may exist after an attachment failure")
	}
}

func TestMeetingService_Create_ParticipantFailureCompensates(t *testing.T) {
	svc, tr, store := setupTestMeetingService()
	tr.participant.batchErr = errors.New("constraint violated")

	req := validCreateRequest()
	req.Attachments = []dto.AttachmentUpload{
		{Filename: "pauta.pdf", ContentType: "application/pdf", Data: []byte("x")},
	}

	if _, err := svc.Create(context.Background(), req, "user-1"); err == nil {
		t.Fatal("Create should fail when the participant insert fails")
	}

	// compensation removes the meeting and its attachment rows
	if len(tr.meeting.meetings) != 0 {
		t.Error("meeting row must be compensated away")
	}
	if len(tr.attachment.attachments) != 0 {
		t.Error("attachment rows must be compensated away")
	}
	if len(tr.attachment.deleted) != 1 || len(tr.meeting.deleted) != 1 {
		t.Error("compensation must delete attachment rows before the meeting")
	}
	// the stored blob is orphaned, not removed
	if len(store.objects) != 1 {
		t.Errorf("stored blobs stay orphaned, got %d", len(store.objects))
	}
}

func TestMeetingService_Create_NotIdempotent(t *testing.T) {
	svc, tr, _ := setupTestMeetingService()

	req := validCreateRequest()
	if _, err := svc.Create(context.Background(), req, "user-1"); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), validCreateRequest(), "user-1"); err != nil {
		t.Fatalf("second Create failed: %v", err)
	}
	if len(tr.meeting.meetings) != 2 {
		t.Errorf("resubmitting creates a second meeting, got %d rows", len(tr.meeting.meetings))
	}
}

// ── MarkAttendance ──

func TestMeetingService_MarkAttendance(t *testing.T) {
	svc, tr, _ := setupTestMeetingService()

	result, err := svc.Create(context.Background(), validCreateRequest(), "user-1")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	links, _ := tr.participant.ListByMeeting(context.Background(), result.ID)

	if err := svc.MarkAttendance(context.Background(), result.ID, links[0].ID, true); err != nil {
		t.Fatalf("MarkAttendance should succeed: %v", err)
	}
	updated, _ := tr.participant.GetByID(context.Background(), links[0].ID)
	if !updated.AttendanceStatus {
		t.Error("attendance flag not persisted")
	}
	if updated.HoursComputed != 2 {
		t.Error("credited hours must not change on attendance updates")
	}
}

func TestMeetingService_MarkAttendance_WrongMeeting(t *testing.T) {
	svc, tr, _ := setupTestMeetingService()

	result, _ := svc.Create(context.Background(), validCreateRequest(), "user-1")
	links, _ := tr.participant.ListByMeeting(context.Background(), result.ID)

	err := svc.MarkAttendance(context.Background(), "mtg-other", links[0].ID, true)
	if !errors.Is(err, ErrParticipantHasGone) {
		t.Errorf("expected ErrParticipantHasGone, got %v", err)
	}
}

// ── minutes ──

func TestMeetingService_SaveMinutes_Upserts(t *testing.T) {
	svc, _, _ := setupTestMeetingService()

	result, _ := svc.Create(context.Background(), validCreateRequest(), "user-1")

	first, err := svc.SaveMinutes(context.Background(), result.ID, &dto.MinutesRequest{Content: "rascunho"}, "user-1")
	if err != nil {
		t.Fatalf("SaveMinutes should succeed: %v", err)
	}
	second, err := svc.SaveMinutes(context.Background(), result.ID, &dto.MinutesRequest{Content: "versão final"}, "user-1")
	if err != nil {
		t.Fatalf("second SaveMinutes should succeed: %v", err)
	}
	if first.ID != second.ID {
		t.Error("minutes must upsert onto the same row")
	}
	if second.Content != "versão final" {
		t.Errorf("content not replaced, got %q", second.Content)
	}
}

func TestMeetingService_SaveMinutes_UnknownMeeting(t *testing.T) {
	svc, _, _ := setupTestMeetingService()

	_, err := svc.SaveMinutes(context.Background(), "mtg-missing", &dto.MinutesRequest{Content: "x"}, "user-1")
	if !errors.Is(err, ErrMeetingNotFound) {
		t.Errorf("expected ErrMeetingNotFound, got %v", err)
	}
}

// ── DownloadAttachment ──

func TestMeetingService_DownloadAttachment(t *testing.T) {
	svc, tr, _ := setupTestMeetingService()

	req := validCreateRequest()
	req.Attachments = []dto.AttachmentUpload{
		{Filename: "pauta.pdf", ContentType: "application/pdf", Data: []byte("conteudo")},
	}
	result, _ := svc.Create(context.Background(), req, "user-1")
	rows, _ := tr.attachment.ListByMeeting(context.Background(), result.ID)

	data, filename, err := svc.DownloadAttachment(context.Background(), result.ID, rows[0].ID)
	if err != nil {
		t.Fatalf("DownloadAttachment should succeed: %v", err)
	}
	if string(data) != "conteudo" {
		t.Errorf("wrong blob content: %q", data)
	}
	if filename != "pauta.pdf" {
		t.Errorf("download keeps the original filename, got %q", filename)
	}
}

// ── attachmentPath ──

func TestAttachmentPath(t *testing.T) {
	p := attachmentPath("mtg-1", "Relatório Final.PDF")
	if !strings.HasPrefix(p, "meeting_files/mtg-1/") {
		t.Errorf("path must sit under the meeting folder: %s", p)
	}
	if !strings.HasSuffix(p, ".PDF") {
		t.Errorf("path keeps the original extension: %s", p)
	}

	if got := attachmentPath("mtg-1", "sem-extensao"); !strings.HasSuffix(got, ".bin") {
		t.Errorf("missing extension falls back to .bin: %s", got)
	}
}
