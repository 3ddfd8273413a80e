package services

import (
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/sabadesa/sabadesa-be/internal/auth"
	"github.com/sabadesa/sabadesa-be/internal/cache"
	"github.com/sabadesa/sabadesa-be/internal/testutil"
	"github.com/sabadesa/sabadesa-be/internal/validation"
	"github.com/sabadesa/sabadesa-be/internal/websocket"
)

type recordingPublisher struct {
	mu   sync.Mutex
	msgs []websocket.Message
}

func (p *recordingPublisher) Publish(msg websocket.Message) {
	p.mu.Lock()
	p.msgs = append(p.msgs, msg)
	p.mu.Unlock()
}

func (p *recordingPublisher) actions() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.msgs))
	for i, m := range p.msgs {
		out[i] = m.Action
	}
	return out
}

type testEnv struct {
	db        *sql.DB
	cache     *cache.Memory
	publisher *recordingPublisher
	logs      *ActivityLogService
	users     *UserService
	sessions  *SessionService
	types     *ActivityTypeService
	events    *EventService
	attendees *AttendeeService
	imports   *ImportService
	votes     *VoteService
	analytics *AnalyticsService
	priority  *PrioritizationService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.NewDB(t)
	c := cache.NewMemory()
	pub := &recordingPublisher{}
	logs := NewActivityLogService(db, pub)
	users := NewUserService(db)
	types := NewActivityTypeService(db, logs)
	issuer := auth.NewTokenIssuer("0123456789abcdef0123456789abcdef", time.Minute, time.Hour)
	return &testEnv{
		db:        db,
		cache:     c,
		publisher: pub,
		logs:      logs,
		users:     users,
		sessions:  NewSessionService(db, users, issuer, logs),
		types:     types,
		events:    NewEventService(db, nil, types, c, logs),
		attendees: NewAttendeeService(db, nil, c, logs),
		imports:   NewImportService(db, nil, c, logs, 1<<20),
		votes:     NewVoteService(db),
		analytics: NewAnalyticsService(db, nil, c, time.Minute),
		priority:  NewPrioritizationService(db, nil, c, time.Minute),
	}
}

func (e *testEnv) createEvent(t *testing.T, title, kecamatan, kelurahan, date string) string {
	t.Helper()
	ev, err := e.events.Create(validation.EventInput{
		Title:             title,
		Date:              date,
		LocationKecamatan: kecamatan,
		LocationKelurahan: kelurahan,
		Description:       "Kegiatan penyerapan aspirasi warga",
	}, false, nil)
	if err != nil {
		t.Fatalf("create event %q: %v", title, err)
	}
	return ev.ID
}

func attendeeInput(name, nik string) validation.AttendeeInput {
	return validation.AttendeeInput{Name: name, NIK: nik, JenisKelamin: "L", Usia: testutil.IntPtr(30)}
}
