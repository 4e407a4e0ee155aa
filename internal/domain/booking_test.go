package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingOccupancyByStatus(t *testing.T) {
	tests := []struct {
		status   BookingStatus
		occupies bool
	}{
		{status: StatusPending, occupies: true},
		{status: StatusConfirmed, occupies: true},
		{status: StatusCancelled, occupies: false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			booking := &Booking{Status: tt.status}
			assert.Equal(t, tt.occupies, booking.CountsAgainstOccupancy())
			assert.Equal(t, !tt.occupies, booking.IsCancelled())
		})
	}
}

func TestBookingPeopleCountsConsistent(t *testing.T) {
	consistent := &Booking{NumberOfPeople: 4, AdultCount: 2, ChildCount: 1, SeniorCount: 1}
	assert.True(t, consistent.PeopleCountsConsistent())

	inconsistent := &Booking{NumberOfPeople: 4, AdultCount: 2, ChildCount: 1, SeniorCount: 0}
	assert.False(t, inconsistent.PeopleCountsConsistent())
}

func TestBookingUpdateIsEmpty(t *testing.T) {
	assert.True(t, (&BookingUpdate{}).IsEmpty())

	people := 3
	assert.False(t, (&BookingUpdate{NumberOfPeople: &people}).IsEmpty())

	status := StatusConfirmed
	assert.False(t, (&BookingUpdate{Status: &status}).IsEmpty())
}
