package bookings

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hannyer/CRM-API-SERVER/internal/domain"
	bookingRepo "github.com/Hannyer/CRM-API-SERVER/internal/infra/storage/booking"
	"github.com/Hannyer/CRM-API-SERVER/internal/service/bookings/models"
	"github.com/Hannyer/CRM-API-SERVER/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeBookingRepo struct {
	booking        *domain.Booking
	bookings       []*domain.Booking
	total          int
	sumPeople      int
	availability   *domain.SpaceAvailability
	availabilities []*domain.SpaceAvailability
	getErr         error

	gotFilter    domain.BookingFilter
	gotUpdate    *domain.BookingUpdate
	cancelCalled bool
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.booking, nil
}

func (f *fakeBookingRepo) List(_ context.Context, filter domain.BookingFilter) ([]*domain.Booking, int, error) {
	f.gotFilter = filter
	return f.bookings, f.total, nil
}

func (f *fakeBookingRepo) Update(_ context.Context, _ int64, update domain.BookingUpdate) (*domain.Booking, error) {
	f.gotUpdate = &update
	return f.booking, nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, _ int64) error {
	f.cancelCalled = true
	f.booking.Status = domain.StatusCancelled
	return nil
}

func (f *fakeBookingRepo) SumActivePeople(_ context.Context, _ int64) (int, error) {
	return f.sumPeople, nil
}

func (f *fakeBookingRepo) GetSpaceAvailability(_ context.Context, _ int64) (*domain.SpaceAvailability, error) {
	return f.availability, nil
}

func (f *fakeBookingRepo) GetAvailableSchedulesByActivity(_ context.Context, _ int64) ([]*domain.SpaceAvailability, error) {
	return f.availabilities, nil
}

type fakeScheduleRepo struct {
	schedule *domain.Schedule
}

func (f *fakeScheduleRepo) GetByID(_ context.Context, _ int64) (*domain.Schedule, error) {
	return f.schedule, nil
}

type fakeActivityRepo struct {
	activity *domain.Activity
}

func (f *fakeActivityRepo) GetActiveByID(_ context.Context, _ int64) (*domain.Activity, error) {
	return f.activity, nil
}

type fakeCompanyRepo struct {
	company *domain.Company
	err     error
}

func (f *fakeCompanyRepo) GetByID(_ context.Context, _ int64) (*domain.Company, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.company, nil
}

type fixture struct {
	bookingRepo  *fakeBookingRepo
	scheduleRepo *fakeScheduleRepo
	activityRepo *fakeActivityRepo
	companyRepo  *fakeCompanyRepo
	svc          *Service
}

func newFixture() *fixture {
	f := &fixture{
		bookingRepo: &fakeBookingRepo{
			booking: &domain.Booking{
				ID:                 1,
				ActivityScheduleID: 10,
				NumberOfPeople:     5,
				AdultCount:         5,
				CustomerName:       "Иван Петров",
				Status:             domain.StatusPending,
			},
		},
		scheduleRepo: &fakeScheduleRepo{schedule: &domain.Schedule{ID: 10, ActivityID: 7, Status: true}},
		activityRepo: &fakeActivityRepo{activity: &domain.Activity{ID: 7, Title: "Тур", PartySize: 20, Status: true}},
		companyRepo:  &fakeCompanyRepo{},
	}
	f.svc = NewService(f.bookingRepo, f.scheduleRepo, f.activityRepo, f.companyRepo, fakeTxManager{}, nopLogger{})
	return f
}

func TestUpdate_ExcludesOwnPeopleFromOccupancy(t *testing.T) {
	f := newFixture()
	// Занято 12 человек, включая 5 собственных: без брони занято 7,
	// свободно 13 мест под новый состав
	f.bookingRepo.sumPeople = 12

	_, err := f.svc.Update(context.Background(), 1, &models.UpdateBookingRequest{
		NumberOfPeople: ptr.Ptr(13),
		AdultCount:     ptr.Ptr(13),
		ChildCount:     ptr.Ptr(0),
		SeniorCount:    ptr.Ptr(0),
	})
	require.NoError(t, err)

	// 14 человек уже не помещаются
	f2 := newFixture()
	f2.bookingRepo.sumPeople = 12

	_, err = f2.svc.Update(context.Background(), 1, &models.UpdateBookingRequest{
		NumberOfPeople: ptr.Ptr(14),
		AdultCount:     ptr.Ptr(14),
		ChildCount:     ptr.Ptr(0),
		SeniorCount:    ptr.Ptr(0),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotEnoughSpace)

	var spaceErr *NotEnoughSpaceError
	require.True(t, errors.As(err, &spaceErr))
	assert.Equal(t, 13, spaceErr.Available)
	assert.Equal(t, 14, spaceErr.Requested)
}

func TestUpdate_ScheduleChangeDoesNotExcludeOwnPeople(t *testing.T) {
	f := newFixture()
	// Перенос на другое расписание: собственные места заняты на старом,
	// на целевом вычитать нечего
	f.scheduleRepo.schedule = &domain.Schedule{ID: 11, ActivityID: 7, Status: true}
	f.bookingRepo.sumPeople = 16

	_, err := f.svc.Update(context.Background(), 1, &models.UpdateBookingRequest{
		ActivityScheduleID: ptr.Ptr(int64(11)),
	})

	require.Error(t, err)
	var spaceErr *NotEnoughSpaceError
	require.True(t, errors.As(err, &spaceErr))
	assert.Equal(t, 4, spaceErr.Available)
	assert.Equal(t, 5, spaceErr.Requested)
}

func TestUpdate_ReactivationChecksAvailability(t *testing.T) {
	f := newFixture()
	f.bookingRepo.booking.Status = domain.StatusCancelled
	// Отменённая бронь не занимает места, при возврате в pending
	// все 5 человек конкурируют за оставшиеся 3 места
	f.bookingRepo.sumPeople = 17

	_, err := f.svc.Update(context.Background(), 1, &models.UpdateBookingRequest{
		Status: ptr.Ptr("pending"),
	})

	require.Error(t, err)
	var spaceErr *NotEnoughSpaceError
	require.True(t, errors.As(err, &spaceErr))
	assert.Equal(t, 3, spaceErr.Available)
	assert.Equal(t, 5, spaceErr.Requested)
}

func TestUpdate_InconsistentPeopleCountsRejected(t *testing.T) {
	f := newFixture()

	// Новый состав 2+1+0 не сходится с текущим numberOfPeople=5
	_, err := f.svc.Update(context.Background(), 1, &models.UpdateBookingRequest{
		AdultCount:  ptr.Ptr(2),
		ChildCount:  ptr.Ptr(1),
		SeniorCount: ptr.Ptr(0),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, f.bookingRepo.gotUpdate)
}

func TestUpdate_InvalidStatusRejected(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Update(context.Background(), 1, &models.UpdateBookingRequest{
		Status: ptr.Ptr("completed"),
	})

	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdate_CompanyChangeInheritsCommission(t *testing.T) {
	f := newFixture()
	f.companyRepo.company = &domain.Company{ID: 3, CommissionPercentage: 15, Status: true}

	_, err := f.svc.Update(context.Background(), 1, &models.UpdateBookingRequest{
		CompanyID: ptr.Ptr(int64(3)),
	})

	require.NoError(t, err)
	require.NotNil(t, f.bookingRepo.gotUpdate.CommissionPercentage)
	assert.Equal(t, 15.0, *f.bookingRepo.gotUpdate.CommissionPercentage)
}

func TestUpdate_ManualCommissionNotOverridden(t *testing.T) {
	f := newFixture()
	f.companyRepo.company = &domain.Company{ID: 3, CommissionPercentage: 15, Status: true}

	_, err := f.svc.Update(context.Background(), 1, &models.UpdateBookingRequest{
		CompanyID:            ptr.Ptr(int64(3)),
		CommissionPercentage: ptr.Ptr(5.0),
	})

	require.NoError(t, err)
	require.NotNil(t, f.bookingRepo.gotUpdate.CommissionPercentage)
	assert.Equal(t, 5.0, *f.bookingRepo.gotUpdate.CommissionPercentage)
}

func TestUpdate_CommissionOutOfRange(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Update(context.Background(), 1, &models.UpdateBookingRequest{
		CommissionPercentage: ptr.Ptr(120.0),
	})

	assert.ErrorIs(t, err, ErrInvalidCommission)
}

func TestCancel_CancelsActiveBooking(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.Cancel(context.Background(), 1)

	require.NoError(t, err)
	assert.True(t, f.bookingRepo.cancelCalled)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
}

func TestCancel_SecondCancelRejected(t *testing.T) {
	f := newFixture()
	f.bookingRepo.booking.Status = domain.StatusCancelled

	_, err := f.svc.Cancel(context.Background(), 1)

	assert.ErrorIs(t, err, ErrAlreadyCancelled)
	assert.False(t, f.bookingRepo.cancelCalled)
}

func TestCancel_NotFound(t *testing.T) {
	f := newFixture()
	f.bookingRepo.getErr = bookingRepo.ErrBookingNotFound

	_, err := f.svc.Cancel(context.Background(), 99)

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestList_PaginationDefaultsAndTotalPages(t *testing.T) {
	f := newFixture()
	f.bookingRepo.bookings = []*domain.Booking{f.bookingRepo.booking}
	f.bookingRepo.total = 25

	resp, err := f.svc.List(context.Background(), &models.ListBookingsRequest{})

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPage, f.bookingRepo.gotFilter.Page)
	assert.Equal(t, domain.DefaultLimit, f.bookingRepo.gotFilter.Limit)
	assert.Equal(t, 25, resp.Total)
	assert.Equal(t, 3, resp.TotalPages)
}

func TestList_LimitClampedToMax(t *testing.T) {
	f := newFixture()

	_, err := f.svc.List(context.Background(), &models.ListBookingsRequest{Page: 2, Limit: 500})

	require.NoError(t, err)
	assert.Equal(t, 2, f.bookingRepo.gotFilter.Page)
	assert.Equal(t, domain.MaxLimit, f.bookingRepo.gotFilter.Limit)
}

func TestList_InvalidStatusFilter(t *testing.T) {
	f := newFixture()
	status := "archived"

	_, err := f.svc.List(context.Background(), &models.ListBookingsRequest{Status: &status})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetAvailableSchedulesByActivity_ReturnsProjection(t *testing.T) {
	f := newFixture()
	f.bookingRepo.availabilities = []*domain.SpaceAvailability{
		{ScheduleID: 10, ActivityID: 7, ActivityTitle: "Тур", PartySize: 20, BookedPeople: 8, AvailableSpaces: 12},
	}

	resp, err := f.svc.GetAvailableSchedulesByActivity(context.Background(), 7)

	require.NoError(t, err)
	require.Len(t, resp.Schedules, 1)
	assert.Equal(t, 12, resp.Schedules[0].AvailableSpaces)
	assert.Equal(t, 8, resp.Schedules[0].BookedPeople)
}
