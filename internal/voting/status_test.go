package voting

import (
	"testing"
	"time"

	"campus-vote/internal/database"

	"github.com/stretchr/testify/assert"
)

func TestCurrentStatus(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 3, 17, 0, 0, 0, time.UTC)
	election := &database.Election{StartTime: start, EndTime: end}

	assert.Equal(t, StatusUpcoming, CurrentStatus(start.Add(-time.Minute), election))
	assert.Equal(t, StatusOpen, CurrentStatus(start, election)) // boundary is inclusive
	assert.Equal(t, StatusOpen, CurrentStatus(start.Add(time.Hour), election))
	assert.Equal(t, StatusClosed, CurrentStatus(end, election)) // closes exactly at end
	assert.Equal(t, StatusClosed, CurrentStatus(end.Add(time.Hour), election))
}

func TestIsVisible(t *testing.T) {
	assert.False(t, IsVisible(&database.Election{Status: database.ElectionStatusDraft}))
	assert.True(t, IsVisible(&database.Election{Status: database.ElectionStatusActive}))
	assert.True(t, IsVisible(&database.Election{Status: database.ElectionStatusClosed}))
	assert.True(t, IsVisible(&database.Election{Status: database.ElectionStatusArchived}))
}
