package create_booking

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hannyer/CRM-API-SERVER/internal/domain"
	companyRepo "github.com/Hannyer/CRM-API-SERVER/internal/infra/storage/company"
	"github.com/Hannyer/CRM-API-SERVER/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeBookingRepo struct {
	sumPeople int
	nextID    int64
	created   *domain.Booking
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	booking.ID = f.nextID
	f.created = booking
	return booking, nil
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	return f.created, nil
}

func (f *fakeBookingRepo) SumActivePeople(_ context.Context, _ int64) (int, error) {
	return f.sumPeople, nil
}

type fakeScheduleRepo struct {
	schedule *domain.Schedule
	err      error
}

func (f *fakeScheduleRepo) GetByID(_ context.Context, _ int64) (*domain.Schedule, error) {
	return f.schedule, f.err
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
	uc           *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		bookingRepo:  &fakeBookingRepo{nextID: 100},
		scheduleRepo: &fakeScheduleRepo{schedule: &domain.Schedule{ID: 10, ActivityID: 7, Status: true}},
		activityRepo: &fakeActivityRepo{activity: &domain.Activity{ID: 7, Title: "Тур", PartySize: 20, Status: true}},
		companyRepo:  &fakeCompanyRepo{},
	}
	f.uc = NewUseCase(f.bookingRepo, f.scheduleRepo, f.activityRepo, f.companyRepo, fakeTxManager{}, nopLogger{})
	return f
}

func validRequest() *Request {
	return &Request{
		ActivityScheduleID: 10,
		NumberOfPeople:     4,
		AdultCount:         2,
		ChildCount:         1,
		SeniorCount:        1,
		CustomerName:       "Иван Петров",
	}
}

func TestExecute_CreatesPendingBooking(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	require.NotNil(t, resp.Booking)
	assert.Equal(t, int64(100), resp.Booking.ID)
	assert.Equal(t, domain.StatusPending, resp.Booking.Status)
	assert.Equal(t, 4, resp.Booking.NumberOfPeople)
	assert.Equal(t, 0.0, resp.Booking.CommissionPercentage)
}

func TestExecute_AvailabilityIsSumBased(t *testing.T) {
	f := newFixture()
	// partySize=20, занято 5+3=8, свободно 12
	f.bookingRepo.sumPeople = 8

	req := validRequest()
	req.NumberOfPeople = 12
	req.AdultCount = 12
	req.ChildCount = 0
	req.SeniorCount = 0

	_, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// 13 человек уже не помещаются
	f2 := newFixture()
	f2.bookingRepo.sumPeople = 8
	req.NumberOfPeople = 13
	req.AdultCount = 13

	_, err = f2.uc.Execute(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotEnoughSpace)

	var spaceErr *NotEnoughSpaceError
	require.True(t, errors.As(err, &spaceErr))
	assert.Equal(t, int64(10), spaceErr.ScheduleID)
	assert.Equal(t, 12, spaceErr.Available)
	assert.Equal(t, 13, spaceErr.Requested)
}

func TestExecute_CommissionDerivation(t *testing.T) {
	company15 := &domain.Company{ID: 3, Name: "Партнёр", CommissionPercentage: 15, Status: true}

	tests := []struct {
		name       string
		manual     *float64
		companyID  *int64
		company    *domain.Company
		expected   float64
	}{
		{name: "company default when no manual value", companyID: ptr.Ptr(int64(3)), company: company15, expected: 15},
		{name: "manual value overrides company default", manual: ptr.Ptr(5.0), companyID: ptr.Ptr(int64(3)), company: company15, expected: 5},
		{name: "zero without manual value and company", expected: 0},
		{name: "explicit zero overrides company default", manual: ptr.Ptr(0.0), companyID: ptr.Ptr(int64(3)), company: company15, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.companyRepo.company = tt.company

			req := validRequest()
			req.CompanyID = tt.companyID
			req.CommissionPercentage = tt.manual

			resp, err := f.uc.Execute(context.Background(), req)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, resp.Booking.CommissionPercentage)
		})
	}
}

func TestExecute_CommissionOutOfRange(t *testing.T) {
	for _, commission := range []float64{-1, 100.5} {
		f := newFixture()
		req := validRequest()
		req.CommissionPercentage = ptr.Ptr(commission)

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidCommission)
	}
}

func TestExecute_CompanyErrors(t *testing.T) {
	t.Run("company not found", func(t *testing.T) {
		f := newFixture()
		f.companyRepo.err = companyRepo.ErrCompanyNotFound

		req := validRequest()
		req.CompanyID = ptr.Ptr(int64(99))

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrCompanyNotFound)
	})

	t.Run("company inactive", func(t *testing.T) {
		f := newFixture()
		f.companyRepo.company = &domain.Company{ID: 3, Status: false}

		req := validRequest()
		req.CompanyID = ptr.Ptr(int64(3))

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrCompanyInactive)
	})
}

func TestExecute_InactiveScheduleNotFound(t *testing.T) {
	f := newFixture()
	f.scheduleRepo.schedule = &domain.Schedule{ID: 10, ActivityID: 7, Status: false}

	_, err := f.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrScheduleNotFound)
}

func TestExecute_PeopleArithmeticValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{
			name:   "zero people",
			mutate: func(r *Request) { r.NumberOfPeople = 0; r.AdultCount = 0; r.ChildCount = 0; r.SeniorCount = 0 },
		},
		{
			name:   "negative count",
			mutate: func(r *Request) { r.AdultCount = -1; r.ChildCount = 5 },
		},
		{
			name:   "counts do not add up",
			mutate: func(r *Request) { r.AdultCount = 1; r.ChildCount = 1; r.SeniorCount = 1 },
		},
		{
			name:   "blank customer name",
			mutate: func(r *Request) { r.CustomerName = "   " },
		},
		{
			name:   "negative passenger count",
			mutate: func(r *Request) { count := -2; r.PassengerCount = &count },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := validRequest()
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
