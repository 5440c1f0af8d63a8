package register_slot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ash469/ccd-training-skilling-sub000/internal/domain"
	panelRepo "github.com/Ash469/ccd-training-skilling-sub000/internal/infra/storage/panel"
	slotRepo "github.com/Ash469/ccd-training-skilling-sub000/internal/infra/storage/slot"
	studentRepo "github.com/Ash469/ccd-training-skilling-sub000/internal/infra/storage/student"
	"github.com/Ash469/ccd-training-skilling-sub000/pkg/ptr"
	"github.com/Ash469/ccd-training-skilling-sub000/pkg/types"
)

type fakePanelRepo struct {
	panel    *domain.Panel
	onRoster bool
}

func (f *fakePanelRepo) GetByID(_ context.Context, id int64) (*domain.Panel, error) {
	if f.panel == nil || f.panel.ID != id {
		return nil, panelRepo.ErrPanelNotFound
	}
	return f.panel, nil
}

func (f *fakePanelRepo) RosterContains(_ context.Context, _, _ int64) (bool, error) {
	return f.onRoster, nil
}

type fakeSlotRepo struct {
	slot        *domain.Slot
	bookedCount int
	bookErr     error
	bookCalls   int
}

func (f *fakeSlotRepo) GetByID(_ context.Context, panelID, slotID int64) (*domain.Slot, error) {
	if f.slot == nil || f.slot.ID != slotID || f.slot.PanelID != panelID {
		return nil, slotRepo.ErrSlotNotFound
	}
	cp := *f.slot
	return &cp, nil
}

func (f *fakeSlotRepo) CountBooked(_ context.Context, _ int64) (int, error) {
	return f.bookedCount, nil
}

func (f *fakeSlotRepo) Book(_ context.Context, _, _ int64) error {
	f.bookCalls++
	return f.bookErr
}

type fakeStudentRepo struct {
	student   *domain.Student
	bindErr   error
	bindCalls int
}

func (f *fakeStudentRepo) GetByID(_ context.Context, id int64) (*domain.Student, error) {
	if f.student == nil || f.student.ID != id {
		return nil, studentRepo.ErrStudentNotFound
	}
	return f.student, nil
}

func (f *fakeStudentRepo) Bind(_ context.Context, _, _, _ int64) error {
	f.bindCalls++
	return f.bindErr
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

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

func testFixtures() (*fakePanelRepo, *fakeSlotRepo, *fakeStudentRepo) {
	date, _ := time.Parse(domain.DateFormat, "2026-09-10")

	panels := &fakePanelRepo{
		panel:    &domain.Panel{ID: 1, Name: "Backend Panel", Capacity: 5},
		onRoster: true,
	}
	slots := &fakeSlotRepo{
		slot: &domain.Slot{
			ID:        10,
			PanelID:   1,
			Date:      date,
			StartTime: mustTime("10:00"),
			EndTime:   mustTime("11:00"),
		},
	}
	students := &fakeStudentRepo{
		student: &domain.Student{ID: 7, Status: true, RegistrationOpen: true},
	}

	return panels, slots, students
}

func TestRegisterSlot_Success(t *testing.T) {
	panels, slots, students := testFixtures()
	uc := NewUseCase(panels, slots, students, fakeTxManager{}, nopLogger{})

	got, err := uc.Execute(context.Background(), &Request{StudentID: 7, PanelID: 1, SlotID: 10})
	require.NoError(t, err)

	assert.Equal(t, int64(7), got.StudentID)
	assert.Equal(t, int64(1), got.PanelID)
	assert.Equal(t, "Backend Panel", got.PanelName)
	assert.Equal(t, int64(10), got.SlotID)
	assert.Equal(t, "2026-09-10", got.Date)
	assert.Equal(t, "10:00", got.StartTime)
	assert.Equal(t, "11:00", got.EndTime)

	assert.Equal(t, 1, slots.bookCalls)
	assert.Equal(t, 1, students.bindCalls)
}

func TestRegisterSlot_Failures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *fakePanelRepo, s *fakeSlotRepo, st *fakeStudentRepo)
		req     Request
		wantErr error
	}{
		{
			name:    "invalid request",
			mutate:  func(*fakePanelRepo, *fakeSlotRepo, *fakeStudentRepo) {},
			req:     Request{StudentID: 0, PanelID: 1, SlotID: 10},
			wantErr: ErrValidation,
		},
		{
			name:    "unknown student",
			mutate:  func(*fakePanelRepo, *fakeSlotRepo, *fakeStudentRepo) {},
			req:     Request{StudentID: 99, PanelID: 1, SlotID: 10},
			wantErr: ErrStudentNotFound,
		},
		{
			name: "registration closed",
			mutate: func(_ *fakePanelRepo, _ *fakeSlotRepo, st *fakeStudentRepo) {
				st.student.RegistrationOpen = false
			},
			req:     Request{StudentID: 7, PanelID: 1, SlotID: 10},
			wantErr: ErrRegistrationClosed,
		},
		{
			name: "already registered",
			mutate: func(_ *fakePanelRepo, _ *fakeSlotRepo, st *fakeStudentRepo) {
				st.student.Status = false
				st.student.BookedPanelID = ptr.Ptr(int64(1))
				st.student.BookedSlotID = ptr.Ptr(int64(11))
			},
			req:     Request{StudentID: 7, PanelID: 1, SlotID: 10},
			wantErr: ErrAlreadyRegistered,
		},
		{
			name:    "unknown panel",
			mutate:  func(*fakePanelRepo, *fakeSlotRepo, *fakeStudentRepo) {},
			req:     Request{StudentID: 7, PanelID: 42, SlotID: 10},
			wantErr: ErrPanelNotFound,
		},
		{
			name: "not on roster",
			mutate: func(p *fakePanelRepo, _ *fakeSlotRepo, _ *fakeStudentRepo) {
				p.onRoster = false
			},
			req:     Request{StudentID: 7, PanelID: 1, SlotID: 10},
			wantErr: ErrNotOnRoster,
		},
		{
			name:    "unknown slot",
			mutate:  func(*fakePanelRepo, *fakeSlotRepo, *fakeStudentRepo) {},
			req:     Request{StudentID: 7, PanelID: 1, SlotID: 999},
			wantErr: ErrSlotNotFound,
		},
		{
			name: "slot already booked",
			mutate: func(_ *fakePanelRepo, s *fakeSlotRepo, _ *fakeStudentRepo) {
				s.slot.IsBooked = true
			},
			req:     Request{StudentID: 7, PanelID: 1, SlotID: 10},
			wantErr: ErrSlotTaken,
		},
		{
			name: "panel full",
			mutate: func(_ *fakePanelRepo, s *fakeSlotRepo, _ *fakeStudentRepo) {
				s.bookedCount = 5
			},
			req:     Request{StudentID: 7, PanelID: 1, SlotID: 10},
			wantErr: ErrPanelFull,
		},
		{
			name: "lost the booking race",
			mutate: func(_ *fakePanelRepo, s *fakeSlotRepo, _ *fakeStudentRepo) {
				s.bookErr = slotRepo.ErrSlotAlreadyBooked
			},
			req:     Request{StudentID: 7, PanelID: 1, SlotID: 10},
			wantErr: ErrSlotTaken,
		},
		{
			name: "lost the binding race",
			mutate: func(_ *fakePanelRepo, _ *fakeSlotRepo, st *fakeStudentRepo) {
				st.bindErr = studentRepo.ErrAlreadyBound
			},
			req:     Request{StudentID: 7, PanelID: 1, SlotID: 10},
			wantErr: ErrAlreadyRegistered,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			panels, slots, students := testFixtures()
			tt.mutate(panels, slots, students)

			uc := NewUseCase(panels, slots, students, fakeTxManager{}, nopLogger{})

			_, err := uc.Execute(context.Background(), &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// A full panel must reject registration even when the requested slot
// itself is still free.
func TestRegisterSlot_CapacityCheckedBeforeBooking(t *testing.T) {
	panels, slots, students := testFixtures()
	panels.panel.Capacity = 1
	slots.bookedCount = 1

	uc := NewUseCase(panels, slots, students, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{StudentID: 7, PanelID: 1, SlotID: 10})
	require.ErrorIs(t, err, ErrPanelFull)

	assert.Zero(t, slots.bookCalls)
	assert.Zero(t, students.bindCalls)
}
