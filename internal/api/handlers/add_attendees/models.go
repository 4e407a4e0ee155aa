package add_attendees

import (
	addAttendees "github.com/Hannyer/CRM-API-SERVER/internal/usecase/add_attendees"
)

// AddAttendeesRequest HTTP request model
type AddAttendeesRequest struct {
	Quantity int `json:"quantity"`
}

// AddAttendeesResponse HTTP response model
type AddAttendeesResponse struct {
	ScheduleID     int64 `json:"scheduleId"`
	PreviousBooked int   `json:"previousBooked"`
	NewBooked      int   `json:"newBooked"`
	Capacity       int   `json:"capacity"`
	Available      int   `json:"available"`
}

// CapacityExceededResponse детали ответа 409 при переполнении
type CapacityExceededResponse struct {
	CurrentBooked int `json:"currentBooked"`
	Capacity      int `json:"capacity"`
	Available     int `json:"available"`
	Requested     int `json:"requested"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *addAttendees.Response) *AddAttendeesResponse {
	return &AddAttendeesResponse{
		ScheduleID:     resp.ScheduleID,
		PreviousBooked: resp.PreviousBooked,
		NewBooked:      resp.NewBooked,
		Capacity:       resp.Capacity,
		Available:      resp.Available,
	}
}

// FromCapacityExceeded конвертирует ошибку вместимости в HTTP детали
func FromCapacityExceeded(err *addAttendees.CapacityExceededError) *CapacityExceededResponse {
	return &CapacityExceededResponse{
		CurrentBooked: err.CurrentBooked,
		Capacity:      err.Capacity,
		Available:     err.Available,
		Requested:     err.Requested,
	}
}
