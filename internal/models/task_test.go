package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidStatus(t *testing.T) {
	for _, status := range []string{StatusInProgress, StatusCompleted, StatusCancelled, StatusBacklog} {
		assert.True(t, IsValidStatus(status), status)
	}
	for _, status := range []string{"", "pending", "in progress", "In_Progress"} {
		assert.False(t, IsValidStatus(status), status)
	}
	assert.True(t, IsValidStatus(DefaultStatus))
}

func TestIsValidPriority(t *testing.T) {
	for _, priority := range []string{PriorityLow, PriorityMedium, PriorityHigh} {
		assert.True(t, IsValidPriority(priority), priority)
	}
	for _, priority := range []string{"", "medium", "Urgent"} {
		assert.False(t, IsValidPriority(priority), priority)
	}
	assert.True(t, IsValidPriority(DefaultPriority))
}
