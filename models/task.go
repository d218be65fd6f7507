package models

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mindflowapp/mindflow/internal/datekey"
)

// TaskPriority represents the priority levels of a task.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// Task represents a single to-do item.
//
// CompletedAt and DueDate are date keys, not instants: completing a task
// credits the day it was completed on, and a due date names a calendar day.
// An absent DueDate means the task is implicitly due today.
type Task struct {
	ID        string `json:"id" validate:"required"`
	Text      string `json:"text" validate:"required,min=1"`
	Completed bool   `json:"completed"`
	CreatedAt int64  `json:"createdAt" validate:"required"` // unix milliseconds
	// CompletedAt is set exactly while Completed is true, cleared otherwise.
	CompletedAt datekey.Key  `json:"completedAt,omitempty"`
	DueDate     datekey.Key  `json:"dueDate,omitempty"`
	Priority    TaskPriority `json:"priority" validate:"required,oneof=low medium high"`
	// ReminderTime is an optional one-shot reminder instant, unix milliseconds.
	ReminderTime *int64   `json:"reminderTime,omitempty"`
	Tags         []string `json:"tags"`
}

// global validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateStruct performs validation on any struct that has validation tags.
func ValidateStruct(s interface{}) error {
	if validate == nil {
		validate = validator.New()
	}
	err := validate.Struct(s)
	if err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMessages []string
		for _, e := range validationErrors {
			errorMessages = append(errorMessages, fmt.Sprintf("Validation failed on field '%s': rule '%s' (value: '%v')", e.StructNamespace(), e.Tag(), e.Value()))
		}
		return fmt.Errorf("%s", strings.Join(errorMessages, "; "))
	}
	return nil
}
