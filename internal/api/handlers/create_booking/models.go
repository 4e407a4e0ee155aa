package create_booking

import (
	createBooking "github.com/Hannyer/CRM-API-SERVER/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ActivityScheduleID   int64    `json:"activityScheduleId"`
	NumberOfPeople       int      `json:"numberOfPeople"`
	AdultCount           int      `json:"adultCount"`
	ChildCount           int      `json:"childCount"`
	SeniorCount          int      `json:"seniorCount"`
	CompanyID            *int64   `json:"companyId,omitempty"`
	Transport            bool     `json:"transport"`
	PassengerCount       *int     `json:"passengerCount,omitempty"`
	CommissionPercentage *float64 `json:"commissionPercentage,omitempty"`
	CustomerName         string   `json:"customerName"`
	CustomerEmail        *string  `json:"customerEmail,omitempty"`
	CustomerPhone        *string  `json:"customerPhone,omitempty"`
}

// NotEnoughSpaceResponse детали ответа 400 при нехватке мест
type NotEnoughSpaceResponse struct {
	Available int `json:"available"`
	Requested int `json:"requested"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(createdBy *int64) *createBooking.Request {
	return &createBooking.Request{
		ActivityScheduleID:   r.ActivityScheduleID,
		NumberOfPeople:       r.NumberOfPeople,
		AdultCount:           r.AdultCount,
		ChildCount:           r.ChildCount,
		SeniorCount:          r.SeniorCount,
		CompanyID:            r.CompanyID,
		Transport:            r.Transport,
		PassengerCount:       r.PassengerCount,
		CommissionPercentage: r.CommissionPercentage,
		CustomerName:         r.CustomerName,
		CustomerEmail:        r.CustomerEmail,
		CustomerPhone:        r.CustomerPhone,
		CreatedBy:            createdBy,
	}
}
