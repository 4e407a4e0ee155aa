package bulk_create_schedules

import (
	"time"

	"github.com/Hannyer/CRM-API-SERVER/internal/domain"
	bulkCreate "github.com/Hannyer/CRM-API-SERVER/internal/usecase/bulk_create_schedules"
	"github.com/Hannyer/CRM-API-SERVER/pkg/types"
)

// TimeSlotRequest дневной слот генерации
type TimeSlotRequest struct {
	StartTime string `json:"startTime"` // "08:00"
	EndTime   string `json:"endTime"`   // "10:00"
	Capacity  int    `json:"capacity"`
}

// BulkCreateSchedulesRequest HTTP request model
type BulkCreateSchedulesRequest struct {
	StartDate        string            `json:"startDate"` // "2025-03-01"
	EndDate          string            `json:"endDate"`   // "2025-03-03"
	TimeSlots        []TimeSlotRequest `json:"timeSlots"`
	ValidateOverlaps *bool             `json:"validateOverlaps,omitempty"` // По умолчанию true
}

// ScheduleResponse HTTP модель созданного расписания
type ScheduleResponse struct {
	ID             int64  `json:"id"`
	ActivityID     int64  `json:"activityId"`
	ScheduledStart string `json:"scheduledStart"` // ISO 8601
	ScheduledEnd   string `json:"scheduledEnd"`   // ISO 8601
	Capacity       int    `json:"capacity"`
	BookedCount    int    `json:"bookedCount"`
	Status         bool   `json:"status"`
}

// BulkCreateSchedulesResponse HTTP response model
type BulkCreateSchedulesResponse struct {
	CreatedCount int                `json:"createdCount"`
	Schedules    []ScheduleResponse `json:"schedules"`
}

// ConflictResponse HTTP модель одного пересечения интервалов
type ConflictResponse struct {
	CandidateStart     string `json:"candidateStart"` // ISO 8601
	CandidateEnd       string `json:"candidateEnd"`   // ISO 8601
	ConflictStart      string `json:"conflictStart"`  // ISO 8601
	ConflictEnd        string `json:"conflictEnd"`    // ISO 8601
	ExistingScheduleID *int64 `json:"existingScheduleId,omitempty"`
}

// ConflictListResponse детали ответа 409 при пересечениях
type ConflictListResponse struct {
	Conflicts []ConflictResponse `json:"conflicts"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BulkCreateSchedulesRequest) ToUseCaseRequest(activityID int64) (*bulkCreate.Request, error) {
	startDate, err := time.Parse(domain.DateFormat, r.StartDate)
	if err != nil {
		return nil, err
	}

	endDate, err := time.Parse(domain.DateFormat, r.EndDate)
	if err != nil {
		return nil, err
	}

	slots := make([]domain.TimeSlot, 0, len(r.TimeSlots))
	for _, slot := range r.TimeSlots {
		startTime, err := types.NewTimeStringFromString(slot.StartTime)
		if err != nil {
			return nil, err
		}
		endTime, err := types.NewTimeStringFromString(slot.EndTime)
		if err != nil {
			return nil, err
		}
		slots = append(slots, domain.TimeSlot{
			StartTime: startTime,
			EndTime:   endTime,
			Capacity:  slot.Capacity,
		})
	}

	validateOverlaps := true
	if r.ValidateOverlaps != nil {
		validateOverlaps = *r.ValidateOverlaps
	}

	return &bulkCreate.Request{
		ActivityID:       activityID,
		StartDate:        startDate,
		EndDate:          endDate,
		TimeSlots:        slots,
		ValidateOverlaps: validateOverlaps,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bulkCreate.Response) *BulkCreateSchedulesResponse {
	schedules := make([]ScheduleResponse, 0, len(resp.Schedules))
	for _, schedule := range resp.Schedules {
		schedules = append(schedules, ScheduleResponse{
			ID:             schedule.ID,
			ActivityID:     schedule.ActivityID,
			ScheduledStart: schedule.ScheduledStart.Format(time.RFC3339),
			ScheduledEnd:   schedule.ScheduledEnd.Format(time.RFC3339),
			Capacity:       schedule.Capacity,
			BookedCount:    schedule.BookedCount,
			Status:         schedule.Status,
		})
	}

	return &BulkCreateSchedulesResponse{
		CreatedCount: resp.CreatedCount,
		Schedules:    schedules,
	}
}

// FromConflicts конвертирует список конфликтов в HTTP детали
func FromConflicts(conflicts []domain.ScheduleConflict) *ConflictListResponse {
	resp := &ConflictListResponse{
		Conflicts: make([]ConflictResponse, 0, len(conflicts)),
	}

	for _, conflict := range conflicts {
		resp.Conflicts = append(resp.Conflicts, ConflictResponse{
			CandidateStart:     conflict.CandidateStart.Format(time.RFC3339),
			CandidateEnd:       conflict.CandidateEnd.Format(time.RFC3339),
			ConflictStart:      conflict.ConflictStart.Format(time.RFC3339),
			ConflictEnd:        conflict.ConflictEnd.Format(time.RFC3339),
			ExistingScheduleID: conflict.ExistingScheduleID,
		})
	}

	return resp
}
