// Package task defines the Task domain entity and its lifecycle states.
package task

import (
	"time"

	"github.com/kestrelworks/meritd/internal/domain/ability"
)

// Status represents the current lifecycle state of a task.
type Status string

const (
	StatusOpen      Status = "open"
	StatusAssigned  Status = "assigned"
	StatusCompleted Status = "completed"
	// StatusAbandoned is a modeled terminal state reserved for future use;
	// no current transition produces it.
	StatusAbandoned Status = "abandoned"
)

// Difficulty grades a task. It drives the ability gain awarded on completion.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyExpert Difficulty = "expert"
)

// Multiplier returns the difficulty multiplier used for ability gains.
// Unknown difficulties grade as medium.
func (d Difficulty) Multiplier() float64 {
	switch d {
	case DifficultyEasy:
		return 1.0
	case DifficultyHard:
		return 2.0
	case DifficultyExpert:
		return 3.0
	default:
		return 1.5
	}
}

// AbilityGain is the score increase applied to each required ability when a
// task completes: floor(multiplier * 5).
func (d Difficulty) AbilityGain() int {
	return int(d.Multiplier() * 5)
}

// Task is a unit of work moving through open -> assigned -> completed.
type Task struct {
	ID                string              `json:"id"`
	Title             string              `json:"title"`
	Description       string              `json:"description,omitempty"`
	Type              string              `json:"type"`
	Difficulty        Difficulty          `json:"difficulty"`
	RequiredAbilities []ability.Dimension `json:"required_abilities"`
	EstimatedTime     int                 `json:"estimated_time"` // seconds
	Reward            int                 `json:"reward"`         // reputation points
	RequesterID       string              `json:"requester_id"`
	Status            Status              `json:"status"`
	AssigneeID        string              `json:"assignee_id,omitempty"`
	CreatedAt         time.Time           `json:"created_at"`
	StartedAt         time.Time           `json:"started_at,omitzero"`
	CompletedAt       time.Time           `json:"completed_at,omitzero"`
	ActualTime        int                 `json:"actual_time"`  // seconds
	Quality           int                 `json:"quality"`      // 0-100
}

// CreateRequest holds the fields needed to create a new task.
type CreateRequest struct {
	ID                string              `json:"id,omitempty"` // generated when empty
	Title             string              `json:"title"`
	Description       string              `json:"description,omitempty"`
	Type              string              `json:"type,omitempty"`
	Difficulty        Difficulty          `json:"difficulty,omitempty"`
	RequiredAbilities []ability.Dimension `json:"required_abilities,omitempty"`
	EstimatedTime     int                 `json:"estimated_time,omitempty"`
	Reward            int                 `json:"reward,omitempty"`
	RequesterID       string              `json:"requester_id"`
}
