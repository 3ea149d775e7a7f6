package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kestrelworks/meritd/internal/domain"
	"github.com/kestrelworks/meritd/internal/domain/ability"
	"github.com/kestrelworks/meritd/internal/domain/task"
	"github.com/kestrelworks/meritd/internal/port/eventbus"
)

// TaskService drives the task state machine: open -> assigned -> completed.
// Completion folds the outcome into the assignee's ability, reputation, and
// badge state in a single transaction.
type TaskService struct {
	reg *Registry
}

// NewTaskService creates a TaskService over the shared registry.
func NewTaskService(reg *Registry) *TaskService {
	return &TaskService{reg: reg}
}

// Get returns a task by ID.
func (s *TaskService) Get(_ context.Context, id string) (*task.Task, error) {
	s.reg.mu.RLock()
	defer s.reg.mu.RUnlock()

	t, err := s.reg.taskByID(id)
	if err != nil {
		return nil, fmt.Errorf("task %s: %w", id, err)
	}
	return t, nil
}

// Create produces a new open task. Requester existence is deliberately not
// validated at creation; authorship only matters for recommendation
// exclusion. The task id is generated when the request leaves it empty.
func (s *TaskService) Create(ctx context.Context, req task.CreateRequest) (*task.Task, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	for _, dim := range req.RequiredAbilities {
		if !dim.Valid() {
			return nil, fmt.Errorf("%w: unknown dimension %q", domain.ErrValidation, dim)
		}
	}

	s.reg.mu.Lock()
	defer s.reg.mu.Unlock()

	id := req.ID
	if id == "" {
		id = "TASK-" + uuid.NewString()
	}
	if _, exists := s.reg.tasks[id]; exists {
		return nil, fmt.Errorf("%w: task %q already exists", domain.ErrValidation, id)
	}

	t := &task.Task{
		ID:                id,
		Title:             req.Title,
		Description:       req.Description,
		Type:              req.Type,
		Difficulty:        req.Difficulty,
		RequiredAbilities: req.RequiredAbilities,
		EstimatedTime:     req.EstimatedTime,
		Reward:            req.Reward,
		RequesterID:       req.RequesterID,
		Status:            task.StatusOpen,
		CreatedAt:         s.reg.now(),
	}
	if t.Type == "" {
		t.Type = "general"
	}
	if t.Difficulty == "" {
		t.Difficulty = task.DifficultyMedium
	}
	if t.EstimatedTime <= 0 {
		t.EstimatedTime = 3600
	}
	if t.Reward <= 0 {
		t.Reward = 10
	}

	s.reg.tasks[id] = t
	s.reg.taskOrder = append(s.reg.taskOrder, id)

	s.reg.bus.Publish(ctx, eventbus.TaskCreated{TaskID: id, Title: t.Title})
	return t, nil
}

// Accept assigns an open task to the agent and marks the agent active now.
func (s *TaskService) Accept(ctx context.Context, agentID, taskID string) (*task.Task, error) {
	s.reg.mu.Lock()
	defer s.reg.mu.Unlock()

	t, err := s.reg.taskByID(taskID)
	if err != nil {
		return nil, fmt.Errorf("task %s: %w", taskID, err)
	}
	a, err := s.reg.agentByID(agentID)
	if err != nil {
		return nil, fmt.Errorf("agent %s: %w", agentID, err)
	}
	if t.Status != task.StatusOpen {
		return nil, fmt.Errorf("%w: task %s is %s, not open", domain.ErrInvalidState, taskID, t.Status)
	}

	now := s.reg.now()
	t.Status = task.StatusAssigned
	t.AssigneeID = agentID
	t.StartedAt = now
	a.LastActive = now

	s.reg.bus.Publish(ctx, eventbus.TaskAccepted{TaskID: taskID, AgentID: agentID})
	return t, nil
}

// Complete finishes an assigned task and applies every completion effect:
// running means, early-finish bonus, task reward, required-ability gains,
// badge re-evaluation, and tier refresh.
func (s *TaskService) Complete(ctx context.Context, agentID, taskID string, quality int) (*task.Task, error) {
	s.reg.mu.Lock()
	defer s.reg.mu.Unlock()

	t, err := s.reg.taskByID(taskID)
	if err != nil {
		return nil, fmt.Errorf("task %s: %w", taskID, err)
	}
	a, err := s.reg.agentByID(agentID)
	if err != nil {
		return nil, fmt.Errorf("agent %s: %w", agentID, err)
	}
	if t.Status != task.StatusAssigned {
		return nil, fmt.Errorf("%w: task %s is %s, not assigned", domain.ErrInvalidState, taskID, t.Status)
	}
	if t.AssigneeID != agentID {
		return nil, fmt.Errorf("%w: task %s is assigned to %s", domain.ErrForbidden, taskID, t.AssigneeID)
	}

	now := s.reg.now()
	quality = ability.Clamp(quality)
	actualTime := int(now.Sub(t.StartedAt).Seconds())

	t.Status = task.StatusCompleted
	t.CompletedAt = now
	t.ActualTime = actualTime
	t.Quality = quality

	// Running means over completion time and quality. The satisfaction mean
	// rounds after every step; see roundMean.
	prevCount := a.Tasks.Completed
	a.Tasks.Completed++
	a.Tasks.AverageCompletionTime = (a.Tasks.AverageCompletionTime*float64(prevCount) + float64(actualTime)) / float64(a.Tasks.Completed)
	a.Tasks.SatisfactionScore = roundMean(a.Tasks.SatisfactionScore, quality, a.Tasks.Completed)

	// Early-finish bonus: one point per full minute ahead of estimate.
	if actualTime < t.EstimatedTime {
		a.Reputation.Add((t.EstimatedTime - actualTime) / 60)
		a.ConsecutiveEarly++
	} else {
		a.ConsecutiveEarly = 0
	}

	a.Reputation.Add(t.Reward)

	gain := t.Difficulty.AbilityGain()
	for _, dim := range t.RequiredAbilities {
		_, _ = s.reg.setAbility(ctx, a, dim, a.Abilities[dim].Score+gain, "task")
	}

	s.reg.checkBadges(ctx, a)

	s.reg.bus.Publish(ctx, eventbus.TaskCompleted{TaskID: taskID, AgentID: agentID, Quality: quality})
	return t, nil
}
