package models

import (
	"time"

	"github.com/Hannyer/CRM-API-SERVER/internal/domain"
)

// Request модели

// CreateScheduleRequest запрос на создание одиночного расписания
type CreateScheduleRequest struct {
	ActivityID     int64     `json:"activityId"`
	ScheduledStart time.Time `json:"scheduledStart"`
	ScheduledEnd   time.Time `json:"scheduledEnd"`
	Capacity       int       `json:"capacity"`
}

// AvailabilityFilterRequest фильтры проекции доступности расписаний
type AvailabilityFilterRequest struct {
	ActivityID *int64     `json:"activityId,omitempty"`
	StartDate  *time.Time `json:"startDate,omitempty"`
	EndDate    *time.Time `json:"endDate,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *AvailabilityFilterRequest) ToDomainFilter() domain.ScheduleFilter {
	return domain.ScheduleFilter{
		ActivityID: r.ActivityID,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
	}
}

// Response модели

// ScheduleResponse ответ с данными расписания и свободными местами
type ScheduleResponse struct {
	ID             int64     `json:"id"`
	ActivityID     int64     `json:"activityId"`
	ScheduledStart time.Time `json:"scheduledStart"`
	ScheduledEnd   time.Time `json:"scheduledEnd"`
	Capacity       int       `json:"capacity"`
	BookedCount    int       `json:"bookedCount"`
	AvailableSpots int       `json:"availableSpots"`
	Status         bool      `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ScheduleListResponse ответ со списком расписаний
type ScheduleListResponse struct {
	Schedules []ScheduleResponse `json:"schedules"`
}

// Методы конвертации

// FromDomainSchedule конвертирует domain модель в DTO
func FromDomainSchedule(s *domain.Schedule) *ScheduleResponse {
	if s == nil {
		return nil
	}

	return &ScheduleResponse{
		ID:             s.ID,
		ActivityID:     s.ActivityID,
		ScheduledStart: s.ScheduledStart,
		ScheduledEnd:   s.ScheduledEnd,
		Capacity:       s.Capacity,
		BookedCount:    s.BookedCount,
		AvailableSpots: s.AvailableSpots(),
		Status:         s.Status,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

// FromDomainScheduleList конвертирует список domain моделей в DTO
func FromDomainScheduleList(schedules []*domain.Schedule) *ScheduleListResponse {
	resp := &ScheduleListResponse{
		Schedules: make([]ScheduleResponse, 0, len(schedules)),
	}

	for _, schedule := range schedules {
		if scheduleResp := FromDomainSchedule(schedule); scheduleResp != nil {
			resp.Schedules = append(resp.Schedules, *scheduleResp)
		}
	}

	return resp
}
