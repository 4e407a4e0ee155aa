package schedules

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hannyer/CRM-API-SERVER/internal/domain"
	activityRepo "github.com/Hannyer/CRM-API-SERVER/internal/infra/storage/activity"
	scheduleRepo "github.com/Hannyer/CRM-API-SERVER/internal/infra/storage/schedule"
	"github.com/Hannyer/CRM-API-SERVER/internal/service/schedules/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeScheduleRepo struct {
	schedule  *domain.Schedule
	schedules []*domain.Schedule
	err       error

	gotFilter  domain.ScheduleFilter
	deletedID  int64
	created    *domain.Schedule
}

func (f *fakeScheduleRepo) Create(_ context.Context, schedule *domain.Schedule) (*domain.Schedule, error) {
	schedule.ID = 1
	f.created = schedule
	return schedule, nil
}

func (f *fakeScheduleRepo) GetByID(_ context.Context, _ int64) (*domain.Schedule, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.schedule, nil
}

func (f *fakeScheduleRepo) GetActiveByActivityInWindow(_ context.Context, _ int64, _, _ time.Time) ([]*domain.Schedule, error) {
	return f.schedules, nil
}

func (f *fakeScheduleRepo) ListActive(_ context.Context, filter domain.ScheduleFilter) ([]*domain.Schedule, error) {
	f.gotFilter = filter
	return f.schedules, nil
}

func (f *fakeScheduleRepo) GetAvailableByDay(_ context.Context, _ int64, _ time.Time) ([]*domain.Schedule, error) {
	return f.schedules, nil
}

func (f *fakeScheduleRepo) SoftDelete(_ context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	f.deletedID = id
	return nil
}

type fakeActivityRepo struct {
	activity *domain.Activity
	err      error
}

func (f *fakeActivityRepo) GetActiveByID(_ context.Context, _ int64) (*domain.Activity, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.activity, nil
}

func newService(sr *fakeScheduleRepo, ar *fakeActivityRepo) *Service {
	return NewService(sr, ar, nopLogger{})
}

func TestCreate_CreatesActiveEmptySchedule(t *testing.T) {
	repo := &fakeScheduleRepo{}
	svc := newService(repo, &fakeActivityRepo{activity: &domain.Activity{ID: 7, Status: true}})

	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	resp, err := svc.Create(context.Background(), &models.CreateScheduleRequest{
		ActivityID:     7,
		ScheduledStart: start,
		ScheduledEnd:   start.Add(2 * time.Hour),
		Capacity:       15,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, 15, resp.Capacity)
	assert.Equal(t, 0, resp.BookedCount)
	assert.Equal(t, 15, resp.AvailableSpots)
	assert.True(t, resp.Status)
	assert.Equal(t, 0, repo.created.BookedCount)
}

func TestCreate_ValidationFailures(t *testing.T) {
	svc := newService(&fakeScheduleRepo{}, &fakeActivityRepo{activity: &domain.Activity{ID: 7, Status: true}})
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		req  models.CreateScheduleRequest
	}{
		{
			name: "start equals end",
			req:  models.CreateScheduleRequest{ActivityID: 7, ScheduledStart: start, ScheduledEnd: start, Capacity: 10},
		},
		{
			name: "end before start",
			req:  models.CreateScheduleRequest{ActivityID: 7, ScheduledStart: start, ScheduledEnd: start.Add(-time.Hour), Capacity: 10},
		},
		{
			name: "negative capacity",
			req:  models.CreateScheduleRequest{ActivityID: 7, ScheduledStart: start, ScheduledEnd: start.Add(time.Hour), Capacity: -1},
		},
		{
			name: "missing activity id",
			req:  models.CreateScheduleRequest{ScheduledStart: start, ScheduledEnd: start.Add(time.Hour), Capacity: 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestCreate_ActivityNotFound(t *testing.T) {
	svc := newService(&fakeScheduleRepo{}, &fakeActivityRepo{err: activityRepo.ErrActivityNotFound})
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	_, err := svc.Create(context.Background(), &models.CreateScheduleRequest{
		ActivityID:     99,
		ScheduledStart: start,
		ScheduledEnd:   start.Add(time.Hour),
		Capacity:       10,
	})

	assert.ErrorIs(t, err, ErrActivityNotFound)
}

func TestGetAvailability_ComputesLedgerSpots(t *testing.T) {
	repo := &fakeScheduleRepo{
		schedules: []*domain.Schedule{
			{ID: 10, ActivityID: 7, Capacity: 20, BookedCount: 8, Status: true},
			{ID: 11, ActivityID: 7, Capacity: 20, BookedCount: 20, Status: true},
		},
	}
	svc := newService(repo, &fakeActivityRepo{activity: &domain.Activity{ID: 7, Status: true}})

	resp, err := svc.GetAvailability(context.Background(), &models.AvailabilityFilterRequest{})

	require.NoError(t, err)
	require.Len(t, resp.Schedules, 2)
	assert.Equal(t, 12, resp.Schedules[0].AvailableSpots)
	assert.Equal(t, 0, resp.Schedules[1].AvailableSpots)
}

func TestGetAvailability_RejectsReversedWindow(t *testing.T) {
	svc := newService(&fakeScheduleRepo{}, &fakeActivityRepo{})

	start := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.GetAvailability(context.Background(), &models.AvailabilityFilterRequest{
		StartDate: &start,
		EndDate:   &end,
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetAvailableByDay_ActivityNotFound(t *testing.T) {
	svc := newService(&fakeScheduleRepo{}, &fakeActivityRepo{err: activityRepo.ErrActivityNotFound})

	_, err := svc.GetAvailableByDay(context.Background(), 99, time.Now())

	assert.ErrorIs(t, err, ErrActivityNotFound)
}

func TestDelete_SoftDeletes(t *testing.T) {
	repo := &fakeScheduleRepo{}
	svc := newService(repo, &fakeActivityRepo{})

	err := svc.Delete(context.Background(), 10)

	require.NoError(t, err)
	assert.Equal(t, int64(10), repo.deletedID)
}

func TestDelete_NotFound(t *testing.T) {
	repo := &fakeScheduleRepo{err: scheduleRepo.ErrScheduleNotFound}
	svc := newService(repo, &fakeActivityRepo{})

	err := svc.Delete(context.Background(), 99)

	assert.ErrorIs(t, err, ErrScheduleNotFound)
}
