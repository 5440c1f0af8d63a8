package panels

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ash469/ccd-training-skilling-sub000/internal/domain"
	panelRepo "github.com/Ash469/ccd-training-skilling-sub000/internal/infra/storage/panel"
	studentRepo "github.com/Ash469/ccd-training-skilling-sub000/internal/infra/storage/student"
	"github.com/Ash469/ccd-training-skilling-sub000/internal/integrations/mailer"
	"github.com/Ash469/ccd-training-skilling-sub000/internal/service/panels/models"
	"github.com/Ash469/ccd-training-skilling-sub000/pkg/ptr"
	"github.com/Ash469/ccd-training-skilling-sub000/pkg/types"
)

type fakePanelRepo struct {
	panels  map[int64]*domain.Panel
	rosters map[int64][]int64
	nextID  int64
	deleted []int64
	removed [][2]int64
	addedTo map[int64][][]int64
}

func newFakePanelRepo() *fakePanelRepo {
	return &fakePanelRepo{
		panels:  map[int64]*domain.Panel{},
		rosters: map[int64][]int64{},
		addedTo: map[int64][][]int64{},
		nextID:  1,
	}
}

func (f *fakePanelRepo) Create(_ context.Context, p *domain.Panel) (*domain.Panel, error) {
	cp := *p
	cp.ID = f.nextID
	f.nextID++
	f.panels[cp.ID] = &cp
	return &cp, nil
}

func (f *fakePanelRepo) GetByID(_ context.Context, id int64) (*domain.Panel, error) {
	p, ok := f.panels[id]
	if !ok {
		return nil, panelRepo.ErrPanelNotFound
	}
	return p, nil
}

func (f *fakePanelRepo) List(_ context.Context) ([]*domain.Panel, error) {
	out := make([]*domain.Panel, 0, len(f.panels))
	for id := int64(1); id < f.nextID; id++ {
		if p, ok := f.panels[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePanelRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.panels[id]; !ok {
		return panelRepo.ErrPanelNotFound
	}
	delete(f.panels, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakePanelRepo) AddStudents(_ context.Context, panelID int64, studentIDs []int64) error {
	f.addedTo[panelID] = append(f.addedTo[panelID], studentIDs)
	f.rosters[panelID] = append(f.rosters[panelID], studentIDs...)
	return nil
}

func (f *fakePanelRepo) RemoveStudent(_ context.Context, panelID, studentID int64) error {
	roster := f.rosters[panelID]
	for i, id := range roster {
		if id == studentID {
			f.rosters[panelID] = append(roster[:i], roster[i+1:]...)
			f.removed = append(f.removed, [2]int64{panelID, studentID})
			return nil
		}
	}
	return panelRepo.ErrStudentNotOnRoster
}

func (f *fakePanelRepo) GetRoster(_ context.Context, panelID int64) ([]int64, error) {
	return f.rosters[panelID], nil
}

type fakeSlotRepo struct {
	byPanel  map[int64][]*domain.Slot
	unbooked []int64
}

func (f *fakeSlotRepo) GetByPanel(_ context.Context, panelID int64) ([]*domain.Slot, error) {
	return f.byPanel[panelID], nil
}

func (f *fakeSlotRepo) Unbook(_ context.Context, slotID int64) error {
	f.unbooked = append(f.unbooked, slotID)
	return nil
}

type fakeStudentRepo struct {
	students        map[int64]*domain.Student
	emails          map[string]int64
	releasedByPanel map[int64]int64
	released        []int64
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{
		students:        map[int64]*domain.Student{},
		emails:          map[string]int64{},
		releasedByPanel: map[int64]int64{},
	}
}

func (f *fakeStudentRepo) GetByID(_ context.Context, id int64) (*domain.Student, error) {
	s, ok := f.students[id]
	if !ok {
		return nil, studentRepo.ErrStudentNotFound
	}
	return s, nil
}

func (f *fakeStudentRepo) ListIDs(_ context.Context) ([]int64, error) {
	out := make([]int64, 0, len(f.students))
	for id := range f.students {
		out = append(out, id)
	}
	return out, nil
}

func (f *fakeStudentRepo) FilterExisting(_ context.Context, ids []int64) ([]int64, error) {
	var out []int64
	for _, id := range ids {
		if _, ok := f.students[id]; ok {
			out = append(out, id)
		}
	}
	return out, nil
}

func (f *fakeStudentRepo) GetIDsByEmails(_ context.Context, emails []string) ([]int64, error) {
	var out []int64
	for _, e := range emails {
		if id, ok := f.emails[e]; ok {
			out = append(out, id)
		}
	}
	return out, nil
}

func (f *fakeStudentRepo) GetEmailsByIDs(_ context.Context, ids []int64) ([]string, error) {
	var out []string
	for _, id := range ids {
		if s, ok := f.students[id]; ok {
			out = append(out, s.Email)
		}
	}
	return out, nil
}

func (f *fakeStudentRepo) Release(_ context.Context, studentID int64) error {
	f.released = append(f.released, studentID)
	return nil
}

func (f *fakeStudentRepo) ReleaseByPanel(_ context.Context, panelID int64) (int64, error) {
	return f.releasedByPanel[panelID], nil
}

type fakeMailer struct {
	calls  []*mailer.NotifyRequest
	err    error
	result *mailer.NotifyResult
}

func (f *fakeMailer) Notify(_ context.Context, req *mailer.NotifyRequest) (*mailer.NotifyResult, error) {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	return &mailer.NotifyResult{Delivered: len(req.Recipients)}, nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct{ now time.Time }

func (p fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func mustTime(s string) types.TimeString {
	ts, err := types.NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return ts
}

func makeSlot(id, panelID int64, date, start, end string) *domain.Slot {
	d, _ := time.Parse(domain.DateFormat, date)
	return &domain.Slot{ID: id, PanelID: panelID, Date: d, StartTime: mustTime(start), EndTime: mustTime(end)}
}

func newTestService(pr *fakePanelRepo, sr *fakeSlotRepo, st *fakeStudentRepo, m *fakeMailer) *Service {
	svc := NewService(pr, sr, st, m, fakeTxManager{}, nopLogger{})
	return svc
}

func TestCreate_ExplicitIDs(t *testing.T) {
	pr := newFakePanelRepo()
	st := newFakeStudentRepo()
	st.students[1] = &domain.Student{ID: 1}
	st.students[2] = &domain.Student{ID: 2}
	st.students[3] = &domain.Student{ID: 3}
	svc := newTestService(pr, &fakeSlotRepo{}, st, &fakeMailer{})

	got, err := svc.Create(context.Background(), &models.CreatePanelRequest{
		Name:       "Backend Panel",
		Capacity:   5,
		StudentIDs: []int64{3, 1, 3, 2}, // duplicate must collapse
	})
	require.NoError(t, err)

	assert.Equal(t, "Backend Panel", got.Name)
	assert.Equal(t, []int64{3, 1, 2}, got.StudentIDs)
	require.Len(t, pr.addedTo[got.ID], 1)
	assert.Equal(t, []int64{3, 1, 2}, pr.addedTo[got.ID][0])
}

func TestCreate_SpreadsheetRowsUnionWithIDs(t *testing.T) {
	pr := newFakePanelRepo()
	st := newFakeStudentRepo()
	st.students[1] = &domain.Student{ID: 1, Email: "a@campus.edu"}
	st.students[2] = &domain.Student{ID: 2, Email: "b@campus.edu"}
	st.emails["a@campus.edu"] = 1
	st.emails["b@campus.edu"] = 2

	svc := newTestService(pr, &fakeSlotRepo{}, st, &fakeMailer{})

	got, err := svc.Create(context.Background(), &models.CreatePanelRequest{
		Name:     "Mixed Panel",
		Capacity: 3,
		// id 1 arrives both explicitly and via its email row
		StudentIDs: []int64{1},
		Rows: []models.SpreadsheetRow{
			{Email: "a@campus.edu"},
			{Email: "b@campus.edu"},
			{Email: "unknown@campus.edu"}, // silently skipped
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 2}, got.StudentIDs)
}

func TestCreate_SelectAll(t *testing.T) {
	pr := newFakePanelRepo()
	st := newFakeStudentRepo()
	st.students[1] = &domain.Student{ID: 1}
	st.students[2] = &domain.Student{ID: 2}

	svc := newTestService(pr, &fakeSlotRepo{}, st, &fakeMailer{})

	got, err := svc.Create(context.Background(), &models.CreatePanelRequest{
		Name:      "All Hands Panel",
		Capacity:  10,
		SelectAll: true,
	})
	require.NoError(t, err)
	assert.Len(t, got.StudentIDs, 2)
}

func TestCreate_Validation(t *testing.T) {
	svc := newTestService(newFakePanelRepo(), &fakeSlotRepo{}, newFakeStudentRepo(), &fakeMailer{})

	_, err := svc.Create(context.Background(), &models.CreatePanelRequest{Name: "  ", Capacity: 5})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), &models.CreatePanelRequest{Name: "P", Capacity: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreate_UnknownStudentID(t *testing.T) {
	pr := newFakePanelRepo()
	st := newFakeStudentRepo()
	st.students[1] = &domain.Student{ID: 1}

	svc := newTestService(pr, &fakeSlotRepo{}, st, &fakeMailer{})

	_, err := svc.Create(context.Background(), &models.CreatePanelRequest{
		Name:       "Dangling Panel",
		Capacity:   5,
		StudentIDs: []int64{1, 999},
	})
	assert.ErrorIs(t, err, ErrStudentNotFound)

	// Nothing may have been written
	assert.Empty(t, pr.panels)
	assert.Empty(t, pr.addedTo)
}

func TestCreate_NotifySendsToRoster(t *testing.T) {
	pr := newFakePanelRepo()
	st := newFakeStudentRepo()
	st.students[1] = &domain.Student{ID: 1, Email: "a@campus.edu"}
	m := &fakeMailer{}

	svc := newTestService(pr, &fakeSlotRepo{}, st, m)

	got, err := svc.Create(context.Background(), &models.CreatePanelRequest{
		Name:       "Notified Panel",
		Capacity:   2,
		StudentIDs: []int64{1},
		Notify:     true,
	})
	require.NoError(t, err)

	assert.False(t, got.NotifyFailed)
	require.Len(t, m.calls, 1)
	assert.Equal(t, "Notified Panel", m.calls[0].PanelName)
	assert.Equal(t, []string{"a@campus.edu"}, m.calls[0].Recipients)
}

func TestCreate_NotifyFailureDoesNotFailCreate(t *testing.T) {
	pr := newFakePanelRepo()
	st := newFakeStudentRepo()
	st.students[1] = &domain.Student{ID: 1, Email: "a@campus.edu"}
	m := &fakeMailer{err: mailer.ErrInternal}

	svc := newTestService(pr, &fakeSlotRepo{}, st, m)

	got, err := svc.Create(context.Background(), &models.CreatePanelRequest{
		Name:       "Flaky Mailer Panel",
		Capacity:   2,
		StudentIDs: []int64{1},
		Notify:     true,
	})
	require.NoError(t, err)
	assert.True(t, got.NotifyFailed)
}

func TestList_OrdersByEarliestSlotAndFiltersPast(t *testing.T) {
	pr := newFakePanelRepo()
	pr.panels[1] = &domain.Panel{ID: 1, Name: "Late Panel"}
	pr.panels[2] = &domain.Panel{ID: 2, Name: "Early Panel"}
	pr.panels[3] = &domain.Panel{ID: 3, Name: "Slotless Panel"}
	pr.nextID = 4

	sr := &fakeSlotRepo{byPanel: map[int64][]*domain.Slot{
		1: {
			makeSlot(11, 1, "2026-09-20", "10:00", "11:00"),
			makeSlot(12, 1, "2026-09-01", "10:00", "11:00"), // past, filtered
		},
		2: {makeSlot(21, 2, "2026-09-15", "09:00", "10:00")},
	}}

	svc := newTestService(pr, sr, newFakeStudentRepo(), &fakeMailer{})
	svc.timeProvider = fixedTimeProvider{now: time.Date(2026, 9, 5, 12, 0, 0, 0, time.UTC)}

	got, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got.Panels, 3)

	assert.Equal(t, "Early Panel", got.Panels[0].Name)
	assert.Equal(t, "Late Panel", got.Panels[1].Name)
	assert.Equal(t, "Slotless Panel", got.Panels[2].Name)

	// The past slot of panel 1 is gone
	require.Len(t, got.Panels[1].Slots, 1)
	assert.Equal(t, int64(11), got.Panels[1].Slots[0].ID)
}

func TestDelete_ReleasesBoundStudents(t *testing.T) {
	pr := newFakePanelRepo()
	pr.panels[1] = &domain.Panel{ID: 1, Name: "Doomed Panel"}
	pr.nextID = 2

	st := newFakeStudentRepo()
	st.releasedByPanel[1] = 3

	svc := newTestService(pr, &fakeSlotRepo{}, st, &fakeMailer{})

	got, err := svc.Delete(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, int64(3), got.ReleasedStudents)
	assert.Equal(t, []int64{1}, pr.deleted)
}

func TestDelete_UnknownPanel(t *testing.T) {
	svc := newTestService(newFakePanelRepo(), &fakeSlotRepo{}, newFakeStudentRepo(), &fakeMailer{})

	_, err := svc.Delete(context.Background(), 404)
	assert.ErrorIs(t, err, ErrPanelNotFound)
}

func TestAddStudents(t *testing.T) {
	pr := newFakePanelRepo()
	pr.panels[1] = &domain.Panel{ID: 1, Name: "Growing Panel"}
	pr.rosters[1] = []int64{1}
	pr.nextID = 2

	st := newFakeStudentRepo()
	st.students[2] = &domain.Student{ID: 2}
	st.students[3] = &domain.Student{ID: 3}

	svc := newTestService(pr, &fakeSlotRepo{}, st, &fakeMailer{})

	got, err := svc.AddStudents(context.Background(), 1, &models.AddStudentsRequest{StudentIDs: []int64{2, 3}})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, got.StudentIDs)

	_, err = svc.AddStudents(context.Background(), 1, &models.AddStudentsRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.AddStudents(context.Background(), 404, &models.AddStudentsRequest{StudentIDs: []int64{2}})
	assert.ErrorIs(t, err, ErrPanelNotFound)
}

func TestAddStudents_UnknownStudent(t *testing.T) {
	pr := newFakePanelRepo()
	pr.panels[1] = &domain.Panel{ID: 1, Name: "Strict Panel"}
	pr.rosters[1] = []int64{1}
	pr.nextID = 2

	st := newFakeStudentRepo()
	st.students[2] = &domain.Student{ID: 2}

	svc := newTestService(pr, &fakeSlotRepo{}, st, &fakeMailer{})

	_, err := svc.AddStudents(context.Background(), 1, &models.AddStudentsRequest{StudentIDs: []int64{2, 999}})
	assert.ErrorIs(t, err, ErrStudentNotFound)

	// The roster keeps its previous members only
	assert.Equal(t, []int64{1}, pr.rosters[1])
}

func TestRemoveStudent_ReleasesBindingInThisPanel(t *testing.T) {
	pr := newFakePanelRepo()
	pr.panels[1] = &domain.Panel{ID: 1, Name: "Panel"}
	pr.rosters[1] = []int64{7}
	pr.nextID = 2

	sr := &fakeSlotRepo{}
	st := newFakeStudentRepo()
	st.students[7] = &domain.Student{
		ID:            7,
		Status:        false,
		BookedPanelID: ptr.Ptr(int64(1)),
		BookedSlotID:  ptr.Ptr(int64(10)),
	}

	svc := newTestService(pr, sr, st, &fakeMailer{})

	err := svc.RemoveStudent(context.Background(), 1, 7)
	require.NoError(t, err)

	assert.Equal(t, [][2]int64{{1, 7}}, pr.removed)
	assert.Equal(t, []int64{10}, sr.unbooked, "the held slot must reopen")
	assert.Equal(t, []int64{7}, st.released)
}

func TestRemoveStudent_BindingInOtherPanelUntouched(t *testing.T) {
	pr := newFakePanelRepo()
	pr.panels[1] = &domain.Panel{ID: 1}
	pr.rosters[1] = []int64{7}
	pr.nextID = 2

	sr := &fakeSlotRepo{}
	st := newFakeStudentRepo()
	st.students[7] = &domain.Student{
		ID:            7,
		Status:        false,
		BookedPanelID: ptr.Ptr(int64(2)), // bound elsewhere
		BookedSlotID:  ptr.Ptr(int64(20)),
	}

	svc := newTestService(pr, sr, st, &fakeMailer{})

	err := svc.RemoveStudent(context.Background(), 1, 7)
	require.NoError(t, err)

	assert.Empty(t, sr.unbooked)
	assert.Empty(t, st.released)
}

func TestRemoveStudent_NotOnRoster(t *testing.T) {
	pr := newFakePanelRepo()
	pr.panels[1] = &domain.Panel{ID: 1}
	pr.nextID = 2

	st := newFakeStudentRepo()
	st.students[7] = &domain.Student{ID: 7, Status: true}

	svc := newTestService(pr, &fakeSlotRepo{}, st, &fakeMailer{})

	err := svc.RemoveStudent(context.Background(), 1, 7)
	assert.ErrorIs(t, err, ErrStudentNotOnRoster)
}
