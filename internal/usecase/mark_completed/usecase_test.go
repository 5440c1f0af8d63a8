package mark_completed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ash469/ccd-training-skilling-sub000/internal/domain"
	slotRepo "github.com/Ash469/ccd-training-skilling-sub000/internal/infra/storage/slot"
	studentRepo "github.com/Ash469/ccd-training-skilling-sub000/internal/infra/storage/student"
	"github.com/Ash469/ccd-training-skilling-sub000/pkg/ptr"
)

type fakeSlotRepo struct {
	deleteErr   error
	deleteCalls int
}

func (f *fakeSlotRepo) Delete(_ context.Context, _, _ int64) error {
	f.deleteCalls++
	return f.deleteErr
}

type fakeStudentRepo struct {
	student      *domain.Student
	releaseCalls int
}

func (f *fakeStudentRepo) GetByID(_ context.Context, id int64) (*domain.Student, error) {
	if f.student == nil || f.student.ID != id {
		return nil, studentRepo.ErrStudentNotFound
	}
	return f.student, nil
}

func (f *fakeStudentRepo) Release(_ context.Context, _ int64) error {
	f.releaseCalls++
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestMarkCompleted_BoundStudent(t *testing.T) {
	slots := &fakeSlotRepo{}
	students := &fakeStudentRepo{student: &domain.Student{
		ID:            7,
		Status:        false,
		BookedPanelID: ptr.Ptr(int64(1)),
		BookedSlotID:  ptr.Ptr(int64(10)),
	}}

	uc := NewUseCase(slots, students, fakeTxManager{}, nopLogger{})

	got, err := uc.Execute(context.Background(), &Request{StudentID: 7})
	require.NoError(t, err)

	assert.True(t, got.Released)
	assert.Equal(t, 1, slots.deleteCalls)
	assert.Equal(t, 1, students.releaseCalls)
}

func TestMarkCompleted_UnboundStudentIsNoOp(t *testing.T) {
	slots := &fakeSlotRepo{}
	students := &fakeStudentRepo{student: &domain.Student{ID: 7, Status: true}}

	uc := NewUseCase(slots, students, fakeTxManager{}, nopLogger{})

	got, err := uc.Execute(context.Background(), &Request{StudentID: 7})
	require.NoError(t, err)

	assert.False(t, got.Released)
	assert.Zero(t, slots.deleteCalls)
	assert.Zero(t, students.releaseCalls)
}

// The binding must still be cleared when the slot row disappeared first.
func TestMarkCompleted_SlotAlreadyGone(t *testing.T) {
	slots := &fakeSlotRepo{deleteErr: slotRepo.ErrSlotNotFound}
	students := &fakeStudentRepo{student: &domain.Student{
		ID:            7,
		Status:        false,
		BookedPanelID: ptr.Ptr(int64(1)),
		BookedSlotID:  ptr.Ptr(int64(10)),
	}}

	uc := NewUseCase(slots, students, fakeTxManager{}, nopLogger{})

	got, err := uc.Execute(context.Background(), &Request{StudentID: 7})
	require.NoError(t, err)

	assert.True(t, got.Released)
	assert.Equal(t, 1, students.releaseCalls)
}

func TestMarkCompleted_UnknownStudent(t *testing.T) {
	uc := NewUseCase(&fakeSlotRepo{}, &fakeStudentRepo{}, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{StudentID: 404})
	assert.ErrorIs(t, err, ErrStudentNotFound)
}

func TestMarkCompleted_InvalidRequest(t *testing.T) {
	uc := NewUseCase(&fakeSlotRepo{}, &fakeStudentRepo{}, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{StudentID: -1})
	assert.ErrorIs(t, err, ErrValidation)
}
