package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func interval(startHour, endHour int) (time.Time, time.Time) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	return day.Add(time.Duration(startHour) * time.Hour), day.Add(time.Duration(endHour) * time.Hour)
}

func TestScheduleOverlaps(t *testing.T) {
	start, end := interval(9, 11)
	schedule := &Schedule{ScheduledStart: start, ScheduledEnd: end}

	tests := []struct {
		name      string
		startHour int
		endHour   int
		expected  bool
	}{
		{name: "partial overlap at tail", startHour: 10, endHour: 12, expected: true},
		{name: "partial overlap at head", startHour: 8, endHour: 10, expected: true},
		{name: "containing interval", startHour: 8, endHour: 12, expected: true},
		{name: "contained interval", startHour: 9, endHour: 10, expected: true},
		{name: "identical interval", startHour: 9, endHour: 11, expected: true},
		{name: "adjacent after", startHour: 11, endHour: 13, expected: false},
		{name: "adjacent before", startHour: 7, endHour: 9, expected: false},
		{name: "disjoint", startHour: 14, endHour: 16, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			otherStart, otherEnd := interval(tt.startHour, tt.endHour)
			assert.Equal(t, tt.expected, schedule.Overlaps(otherStart, otherEnd))
		})
	}
}

func TestScheduleAvailableSpots(t *testing.T) {
	schedule := &Schedule{Capacity: 20, BookedCount: 8}
	assert.Equal(t, 12, schedule.AvailableSpots())
	assert.False(t, schedule.IsFull())

	full := &Schedule{Capacity: 20, BookedCount: 20}
	assert.Equal(t, 0, full.AvailableSpots())
	assert.True(t, full.IsFull())
}
