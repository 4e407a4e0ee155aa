package models

import (
	"errors"
	"time"

	"github.com/Hannyer/CRM-API-SERVER/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// UpdateBookingRequest частичное обновление бронирования
// nil-поля остаются без изменений
type UpdateBookingRequest struct {
	ActivityScheduleID   *int64   `json:"activityScheduleId,omitempty"`
	CompanyID            *int64   `json:"companyId,omitempty"`
	Transport            *bool    `json:"transport,omitempty"`
	NumberOfPeople       *int     `json:"numberOfPeople,omitempty"`
	AdultCount           *int     `json:"adultCount,omitempty"`
	ChildCount           *int     `json:"childCount,omitempty"`
	SeniorCount          *int     `json:"seniorCount,omitempty"`
	PassengerCount       *int     `json:"passengerCount,omitempty"`
	CommissionPercentage *float64 `json:"commissionPercentage,omitempty"`
	CustomerName         *string  `json:"customerName,omitempty"`
	CustomerEmail        *string  `json:"customerEmail,omitempty"`
	CustomerPhone        *string  `json:"customerPhone,omitempty"`
	Status               *string  `json:"status,omitempty"`
}

// ListBookingsRequest запрос страницы бронирований
type ListBookingsRequest struct {
	Status             *string `json:"status,omitempty"`
	ActivityScheduleID *int64  `json:"activityScheduleId,omitempty"`
	Page               int     `json:"page"`
	Limit              int     `json:"limit"`
}

// ToDomainFilter конвертирует request в domain фильтр,
// подставляя дефолты пагинации и ограничивая размер страницы
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingFilter, error) {
	filter := domain.BookingFilter{
		ActivityScheduleID: r.ActivityScheduleID,
		Page:               r.Page,
		Limit:              r.Limit,
	}

	if filter.Page < 1 {
		filter.Page = domain.DefaultPage
	}
	if filter.Limit < 1 {
		filter.Limit = domain.DefaultLimit
	}
	if filter.Limit > domain.MaxLimit {
		filter.Limit = domain.MaxLimit
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID                   int64   `json:"id"`
	ActivityScheduleID   int64   `json:"activityScheduleId"`
	CompanyID            *int64  `json:"companyId,omitempty"`
	Transport            bool    `json:"transport"`
	NumberOfPeople       int     `json:"numberOfPeople"`
	AdultCount           int     `json:"adultCount"`
	ChildCount           int     `json:"childCount"`
	SeniorCount          int     `json:"seniorCount"`
	PassengerCount       *int    `json:"passengerCount,omitempty"`
	CommissionPercentage float64 `json:"commissionPercentage"`
	CustomerName         string  `json:"customerName"`
	CustomerEmail        *string `json:"customerEmail,omitempty"`
	CustomerPhone        *string `json:"customerPhone,omitempty"`
	Status               string  `json:"status"`
	CreatedBy            *int64  `json:"createdBy,omitempty"`

	// Денормализованные данные
	ActivityID        int64   `json:"activityId"`
	ActivityTitle     string  `json:"activityTitle"`
	ActivityPartySize int     `json:"activityPartySize"`
	ScheduledStart    string  `json:"scheduledStart"` // ISO 8601
	ScheduledEnd      string  `json:"scheduledEnd"`   // ISO 8601
	CompanyName       *string `json:"companyName,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse страница бронирований
type BookingListResponse struct {
	Items      []BookingResponse `json:"items"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"totalPages"`
}

// SpaceAvailabilityResponse свободные места расписания booking-модели
type SpaceAvailabilityResponse struct {
	ScheduleID      int64  `json:"scheduleId"`
	ActivityID      int64  `json:"activityId"`
	ActivityTitle   string `json:"activityTitle"`
	ScheduledStart  string `json:"scheduledStart"` // ISO 8601
	ScheduledEnd    string `json:"scheduledEnd"`   // ISO 8601
	PartySize       int    `json:"partySize"`
	BookedPeople    int    `json:"bookedPeople"`
	AvailableSpaces int    `json:"availableSpaces"`
}

// SpaceAvailabilityListResponse список расписаний с заполненностью
type SpaceAvailabilityListResponse struct {
	Schedules []SpaceAvailabilityResponse `json:"schedules"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:                   b.ID,
		ActivityScheduleID:   b.ActivityScheduleID,
		CompanyID:            b.CompanyID,
		Transport:            b.Transport,
		NumberOfPeople:       b.NumberOfPeople,
		AdultCount:           b.AdultCount,
		ChildCount:           b.ChildCount,
		SeniorCount:          b.SeniorCount,
		PassengerCount:       b.PassengerCount,
		CommissionPercentage: b.CommissionPercentage,
		CustomerName:         b.CustomerName,
		CustomerEmail:        b.CustomerEmail,
		CustomerPhone:        b.CustomerPhone,
		Status:               string(b.Status),
		CreatedBy:            b.CreatedBy,
		ActivityID:           b.ActivityID,
		ActivityTitle:        b.ActivityTitle,
		ActivityPartySize:    b.ActivityPartySize,
		ScheduledStart:       b.ScheduledStart.Format(time.RFC3339),
		ScheduledEnd:         b.ScheduledEnd.Format(time.RFC3339),
		CompanyName:          b.CompanyName,
		CreatedAt:            b.CreatedAt,
		UpdatedAt:            b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует страницу domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking, total, page, limit int) *BookingListResponse {
	resp := &BookingListResponse{
		Items: make([]BookingResponse, 0, len(bookings)),
		Total: total,
		Page:  page,
		Limit: limit,
	}

	if limit > 0 {
		resp.TotalPages = (total + limit - 1) / limit
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Items = append(resp.Items, *bookingResp)
		}
	}

	return resp
}

// FromDomainSpaceAvailability конвертирует domain проекцию в DTO
func FromDomainSpaceAvailability(a *domain.SpaceAvailability) *SpaceAvailabilityResponse {
	if a == nil {
		return nil
	}

	return &SpaceAvailabilityResponse{
		ScheduleID:      a.ScheduleID,
		ActivityID:      a.ActivityID,
		ActivityTitle:   a.ActivityTitle,
		ScheduledStart:  a.ScheduledStart.Format(time.RFC3339),
		ScheduledEnd:    a.ScheduledEnd.Format(time.RFC3339),
		PartySize:       a.PartySize,
		BookedPeople:    a.BookedPeople,
		AvailableSpaces: a.AvailableSpaces,
	}
}

// FromDomainSpaceAvailabilityList конвертирует список проекций в DTO
func FromDomainSpaceAvailabilityList(availabilities []*domain.SpaceAvailability) *SpaceAvailabilityListResponse {
	resp := &SpaceAvailabilityListResponse{
		Schedules: make([]SpaceAvailabilityResponse, 0, len(availabilities)),
	}

	for _, availability := range availabilities {
		if availabilityResp := FromDomainSpaceAvailability(availability); availabilityResp != nil {
			resp.Schedules = append(resp.Schedules, *availabilityResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	for _, valid := range domain.ValidBookingStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
