package bulk_create_schedules

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hannyer/CRM-API-SERVER/internal/domain"
	activityRepo "github.com/Hannyer/CRM-API-SERVER/internal/infra/storage/activity"
	"github.com/Hannyer/CRM-API-SERVER/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeActivityRepo struct {
	activity *domain.Activity
	err      error
}

func (f *fakeActivityRepo) GetActiveByID(_ context.Context, id int64) (*domain.Activity, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.activity, nil
}

type fakeScheduleRepo struct {
	existing []*domain.Schedule
	created  []*domain.Schedule
}

func (f *fakeScheduleRepo) CreateBatch(_ context.Context, schedules []*domain.Schedule) ([]*domain.Schedule, error) {
	for i, schedule := range schedules {
		schedule.ID = int64(i + 1)
	}
	f.created = schedules
	return schedules, nil
}

func (f *fakeScheduleRepo) GetActiveByActivityInWindow(_ context.Context, _ int64, _, _ time.Time) ([]*domain.Schedule, error) {
	return f.existing, nil
}

func mustTime(t *testing.T, value string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(value)
	require.NoError(t, err)
	return ts
}

func date(value string) time.Time {
	d, _ := time.Parse(domain.DateFormat, value)
	return d
}

func newTestUseCase(scheduleRepo *fakeScheduleRepo, activityRepo *fakeActivityRepo) *UseCase {
	return NewUseCase(scheduleRepo, activityRepo, fakeTxManager{}, nopLogger{})
}

func TestExecute_ExpandsDateRangeCrossSlots(t *testing.T) {
	repo := &fakeScheduleRepo{}
	uc := newTestUseCase(repo, &fakeActivityRepo{activity: &domain.Activity{ID: 7, Status: true}})

	resp, err := uc.Execute(context.Background(), &Request{
		ActivityID: 7,
		StartDate:  date("2024-03-01"),
		EndDate:    date("2024-03-03"),
		TimeSlots: []domain.TimeSlot{
			{StartTime: mustTime(t, "08:00"), EndTime: mustTime(t, "10:00"), Capacity: 20},
			{StartTime: mustTime(t, "14:00"), EndTime: mustTime(t, "16:00"), Capacity: 15},
		},
		ValidateOverlaps: true,
	})

	require.NoError(t, err)
	assert.Equal(t, 6, resp.CreatedCount)
	require.Len(t, resp.Schedules, 6)

	first := resp.Schedules[0]
	assert.Equal(t, int64(7), first.ActivityID)
	assert.Equal(t, 20, first.Capacity)
	assert.Equal(t, 0, first.BookedCount)
	assert.True(t, first.Status)
	assert.Equal(t, date("2024-03-01").Add(8*time.Hour), first.ScheduledStart)
	assert.Equal(t, date("2024-03-01").Add(10*time.Hour), first.ScheduledEnd)

	last := resp.Schedules[5]
	assert.Equal(t, date("2024-03-03").Add(14*time.Hour), last.ScheduledStart)
	assert.Equal(t, 15, last.Capacity)
}

func TestExecute_ConflictWithExistingScheduleAbortsBatch(t *testing.T) {
	existing := &domain.Schedule{
		ID:             42,
		ActivityID:     7,
		ScheduledStart: date("2024-03-01").Add(9 * time.Hour),
		ScheduledEnd:   date("2024-03-01").Add(11 * time.Hour),
		Status:         true,
	}
	repo := &fakeScheduleRepo{existing: []*domain.Schedule{existing}}
	uc := newTestUseCase(repo, &fakeActivityRepo{activity: &domain.Activity{ID: 7, Status: true}})

	_, err := uc.Execute(context.Background(), &Request{
		ActivityID: 7,
		StartDate:  date("2024-03-01"),
		EndDate:    date("2024-03-01"),
		TimeSlots: []domain.TimeSlot{
			{StartTime: mustTime(t, "10:00"), EndTime: mustTime(t, "12:00"), Capacity: 5},
		},
		ValidateOverlaps: true,
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrScheduleConflict))

	var conflictErr *ConflictError
	require.True(t, errors.As(err, &conflictErr))
	require.Len(t, conflictErr.Conflicts, 1)

	conflict := conflictErr.Conflicts[0]
	assert.Equal(t, date("2024-03-01").Add(10*time.Hour), conflict.CandidateStart)
	assert.Equal(t, existing.ScheduledStart, conflict.ConflictStart)
	require.NotNil(t, conflict.ExistingScheduleID)
	assert.Equal(t, int64(42), *conflict.ExistingScheduleID)

	// Ничего не вставлено
	assert.Nil(t, repo.created)
}

func TestExecute_IndependentDaySucceedsAfterConflict(t *testing.T) {
	existing := &domain.Schedule{
		ID:             42,
		ActivityID:     7,
		ScheduledStart: date("2024-03-01").Add(9 * time.Hour),
		ScheduledEnd:   date("2024-03-01").Add(11 * time.Hour),
		Status:         true,
	}
	// Окно генерации другого дня существующий слот не пересекает
	repo := &fakeScheduleRepo{existing: []*domain.Schedule{existing}}
	uc := newTestUseCase(repo, &fakeActivityRepo{activity: &domain.Activity{ID: 7, Status: true}})

	resp, err := uc.Execute(context.Background(), &Request{
		ActivityID: 7,
		StartDate:  date("2024-03-03"),
		EndDate:    date("2024-03-03"),
		TimeSlots: []domain.TimeSlot{
			{StartTime: mustTime(t, "10:00"), EndTime: mustTime(t, "12:00"), Capacity: 5},
		},
		ValidateOverlaps: true,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.CreatedCount)
}

func TestExecute_AdjacentSlotsDoNotConflict(t *testing.T) {
	repo := &fakeScheduleRepo{}
	uc := newTestUseCase(repo, &fakeActivityRepo{activity: &domain.Activity{ID: 7, Status: true}})

	// Полуоткрытые интервалы: 08:00-10:00 и 10:00-12:00 не пересекаются
	resp, err := uc.Execute(context.Background(), &Request{
		ActivityID: 7,
		StartDate:  date("2024-03-01"),
		EndDate:    date("2024-03-01"),
		TimeSlots: []domain.TimeSlot{
			{StartTime: mustTime(t, "08:00"), EndTime: mustTime(t, "10:00"), Capacity: 10},
			{StartTime: mustTime(t, "10:00"), EndTime: mustTime(t, "12:00"), Capacity: 10},
		},
		ValidateOverlaps: true,
	})

	require.NoError(t, err)
	assert.Equal(t, 2, resp.CreatedCount)
}

func TestExecute_OverlappingCandidatesRejected(t *testing.T) {
	repo := &fakeScheduleRepo{}
	uc := newTestUseCase(repo, &fakeActivityRepo{activity: &domain.Activity{ID: 7, Status: true}})

	_, err := uc.Execute(context.Background(), &Request{
		ActivityID: 7,
		StartDate:  date("2024-03-01"),
		EndDate:    date("2024-03-02"),
		TimeSlots: []domain.TimeSlot{
			{StartTime: mustTime(t, "09:00"), EndTime: mustTime(t, "11:00"), Capacity: 10},
			{StartTime: mustTime(t, "10:00"), EndTime: mustTime(t, "12:00"), Capacity: 10},
		},
		ValidateOverlaps: true,
	})

	require.Error(t, err)

	var conflictErr *ConflictError
	require.True(t, errors.As(err, &conflictErr))
	// По одному конфликту кандидатов на каждый день диапазона
	assert.Len(t, conflictErr.Conflicts, 2)
	for _, conflict := range conflictErr.Conflicts {
		assert.Nil(t, conflict.ExistingScheduleID)
	}
}

func TestExecute_SkipsValidationWhenDisabled(t *testing.T) {
	existing := &domain.Schedule{
		ID:             42,
		ActivityID:     7,
		ScheduledStart: date("2024-03-01").Add(9 * time.Hour),
		ScheduledEnd:   date("2024-03-01").Add(11 * time.Hour),
		Status:         true,
	}
	repo := &fakeScheduleRepo{existing: []*domain.Schedule{existing}}
	uc := newTestUseCase(repo, &fakeActivityRepo{activity: &domain.Activity{ID: 7, Status: true}})

	resp, err := uc.Execute(context.Background(), &Request{
		ActivityID: 7,
		StartDate:  date("2024-03-01"),
		EndDate:    date("2024-03-01"),
		TimeSlots: []domain.TimeSlot{
			{StartTime: mustTime(t, "10:00"), EndTime: mustTime(t, "12:00"), Capacity: 5},
		},
		ValidateOverlaps: false,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.CreatedCount)
}

func TestExecute_ActivityNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeScheduleRepo{}, &fakeActivityRepo{err: activityRepo.ErrActivityNotFound})

	_, err := uc.Execute(context.Background(), &Request{
		ActivityID: 99,
		StartDate:  date("2024-03-01"),
		EndDate:    date("2024-03-01"),
		TimeSlots: []domain.TimeSlot{
			{StartTime: mustTime(t, "08:00"), EndTime: mustTime(t, "10:00"), Capacity: 10},
		},
		ValidateOverlaps: true,
	})

	assert.ErrorIs(t, err, ErrActivityNotFound)
}

func TestExecute_ValidationFailures(t *testing.T) {
	uc := newTestUseCase(&fakeScheduleRepo{}, &fakeActivityRepo{activity: &domain.Activity{ID: 7, Status: true}})

	tests := []struct {
		name string
		req  Request
	}{
		{
			name: "empty time slots",
			req: Request{
				ActivityID: 7,
				StartDate:  date("2024-03-01"),
				EndDate:    date("2024-03-02"),
				TimeSlots:  nil,
			},
		},
		{
			name: "end date before start date",
			req: Request{
				ActivityID: 7,
				StartDate:  date("2024-03-05"),
				EndDate:    date("2024-03-01"),
				TimeSlots: []domain.TimeSlot{
					{StartTime: mustTime(t, "08:00"), EndTime: mustTime(t, "10:00"), Capacity: 10},
				},
			},
		},
		{
			name: "zero length slot",
			req: Request{
				ActivityID: 7,
				StartDate:  date("2024-03-01"),
				EndDate:    date("2024-03-01"),
				TimeSlots: []domain.TimeSlot{
					{StartTime: mustTime(t, "10:00"), EndTime: mustTime(t, "10:00"), Capacity: 10},
				},
			},
		},
		{
			name: "negative capacity",
			req: Request{
				ActivityID: 7,
				StartDate:  date("2024-03-01"),
				EndDate:    date("2024-03-01"),
				TimeSlots: []domain.TimeSlot{
					{StartTime: mustTime(t, "08:00"), EndTime: mustTime(t, "10:00"), Capacity: -1},
				},
			},
		},
		{
			name: "range too long",
			req: Request{
				ActivityID: 7,
				StartDate:  date("2024-01-01"),
				EndDate:    date("2026-01-01"),
				TimeSlots: []domain.TimeSlot{
					{StartTime: mustTime(t, "08:00"), EndTime: mustTime(t, "10:00"), Capacity: 10},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
