package add_attendees

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hannyer/CRM-API-SERVER/internal/domain"
	scheduleRepo "github.com/Hannyer/CRM-API-SERVER/internal/infra/storage/schedule"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeScheduleRepo struct {
	schedule *domain.Schedule
	err      error

	gotID       int64
	gotQuantity int
}

func (f *fakeScheduleRepo) AddAttendees(_ context.Context, id int64, quantity int) (*domain.Schedule, error) {
	f.gotID = id
	f.gotQuantity = quantity
	return f.schedule, f.err
}

func TestExecute_BooksSpotsAndReturnsCounters(t *testing.T) {
	repo := &fakeScheduleRepo{
		// Состояние строки после условного UPDATE
		schedule: &domain.Schedule{ID: 10, Capacity: 20, BookedCount: 8, Status: true},
	}
	uc := NewUseCase(repo, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{ScheduleID: 10, Quantity: 3})

	require.NoError(t, err)
	assert.Equal(t, int64(10), resp.ScheduleID)
	assert.Equal(t, 5, resp.PreviousBooked)
	assert.Equal(t, 8, resp.NewBooked)
	assert.Equal(t, 20, resp.Capacity)
	assert.Equal(t, 12, resp.Available)
	assert.Equal(t, int64(10), repo.gotID)
	assert.Equal(t, 3, repo.gotQuantity)
}

func TestExecute_CapacityExceededCarriesCurrentState(t *testing.T) {
	repo := &fakeScheduleRepo{
		// Репозиторий возвращает актуальную строку вместе с ошибкой
		schedule: &domain.Schedule{ID: 10, Capacity: 20, BookedCount: 18, Status: true},
		err:      scheduleRepo.ErrCapacityExceeded,
	}
	uc := NewUseCase(repo, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{ScheduleID: 10, Quantity: 5})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCapacityExceeded)

	var capacityErr *CapacityExceededError
	require.True(t, errors.As(err, &capacityErr))
	assert.Equal(t, int64(10), capacityErr.ScheduleID)
	assert.Equal(t, 18, capacityErr.CurrentBooked)
	assert.Equal(t, 20, capacityErr.Capacity)
	assert.Equal(t, 2, capacityErr.Available)
	assert.Equal(t, 5, capacityErr.Requested)
}

func TestExecute_ScheduleNotFound(t *testing.T) {
	repo := &fakeScheduleRepo{err: scheduleRepo.ErrScheduleNotFound}
	uc := NewUseCase(repo, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{ScheduleID: 99, Quantity: 1})

	assert.ErrorIs(t, err, ErrScheduleNotFound)
}

func TestExecute_RejectsNonPositiveQuantity(t *testing.T) {
	repo := &fakeScheduleRepo{}
	uc := NewUseCase(repo, nopLogger{})

	for _, quantity := range []int{0, -3} {
		_, err := uc.Execute(context.Background(), &Request{ScheduleID: 10, Quantity: quantity})
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
	// До репозитория дойти не должны
	assert.Zero(t, repo.gotID)
}

func TestExecute_RejectsInvalidScheduleID(t *testing.T) {
	uc := NewUseCase(&fakeScheduleRepo{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{ScheduleID: 0, Quantity: 1})

	assert.ErrorIs(t, err, ErrInvalidInput)
}
