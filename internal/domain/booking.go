package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking бронирование мест на конкретное расписание активности
type Booking struct {
	ID                   int64
	ActivityScheduleID   int64
	CompanyID            *int64 // Компания-партнёр, приведшая клиента (опционально)
	Transport            bool
	NumberOfPeople       int
	AdultCount           int
	ChildCount           int
	SeniorCount          int
	PassengerCount       *int // Имеет смысл только при Transport = true
	CommissionPercentage float64
	CustomerName         string
	CustomerEmail        *string
	CustomerPhone        *string
	Status               BookingStatus
	CreatedBy            *int64

	// Denormalized data from joins (read-only)
	ActivityID        int64
	ActivityTitle     string
	ActivityPartySize int
	ScheduledStart    time.Time
	ScheduledEnd      time.Time
	CompanyName       *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// CountsAgainstOccupancy возвращает true, если люди этой брони занимают
// места расписания (отменённые брони места не занимают)
func (b *Booking) CountsAgainstOccupancy() bool {
	return b.Status != StatusCancelled
}

// PeopleCountsConsistent проверяет арифметику состава группы
func (b *Booking) PeopleCountsConsistent() bool {
	return b.AdultCount+b.ChildCount+b.SeniorCount == b.NumberOfPeople
}

// BookingUpdate частичное обновление бронирования, nil-поля не изменяются
type BookingUpdate struct {
	ActivityScheduleID   *int64
	CompanyID            *int64
	Transport            *bool
	NumberOfPeople       *int
	AdultCount           *int
	ChildCount           *int
	SeniorCount          *int
	PassengerCount       *int
	CommissionPercentage *float64
	CustomerName         *string
	CustomerEmail        *string
	CustomerPhone        *string
	Status               *BookingStatus
}

// IsEmpty проверяет, что обновление не содержит изменений
func (u *BookingUpdate) IsEmpty() bool {
	return u.ActivityScheduleID == nil &&
		u.CompanyID == nil &&
		u.Transport == nil &&
		u.NumberOfPeople == nil &&
		u.AdultCount == nil &&
		u.ChildCount == nil &&
		u.SeniorCount == nil &&
		u.PassengerCount == nil &&
		u.CommissionPercentage == nil &&
		u.CustomerName == nil &&
		u.CustomerEmail == nil &&
		u.CustomerPhone == nil &&
		u.Status == nil
}

// BookingFilter фильтр для постраничной выборки бронирований
type BookingFilter struct {
	Status             *BookingStatus // Фильтр по статусу (опционально)
	ActivityScheduleID *int64         // Фильтр по расписанию (опционально)
	Page               int
	Limit              int
}

// SpaceAvailability проекция свободных мест расписания booking-модели:
// partySize активности минус сумма людей неотменённых бронирований
type SpaceAvailability struct {
	ScheduleID      int64
	ActivityID      int64
	ActivityTitle   string
	ScheduledStart  time.Time
	ScheduledEnd    time.Time
	PartySize       int
	BookedPeople    int
	AvailableSpaces int
}
