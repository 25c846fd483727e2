package models

import "time"

const (
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
	StatusCancelled  = "Cancelled"
	StatusBacklog    = "Backlog"

	DefaultStatus = StatusBacklog
)

const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"

	DefaultPriority = PriorityMedium
)

type Task struct {
	ID          string     `json:"taskId" bson:"_id"`
	UserID      string     `json:"userId" bson:"userId"`
	Title       string     `json:"title" bson:"title"`
	Description string     `json:"description" bson:"description"`
	Type        string     `json:"type" bson:"type"`
	Status      string     `json:"status" bson:"status"`
	Priority    string     `json:"priority" bson:"priority"`
	ExpireDate  *time.Time `json:"expireDate" bson:"expireDate"`
	Time        *string    `json:"time" bson:"time"`
	CreatedAt   time.Time  `json:"date" bson:"date"`
	UpdatedAt   time.Time  `json:"updatedAt" bson:"updatedAt"`
}

func IsValidStatus(status string) bool {
	switch status {
	case StatusInProgress, StatusCompleted, StatusCancelled, StatusBacklog:
		return true
	}
	return false
}

func IsValidPriority(priority string) bool {
	switch priority {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}
