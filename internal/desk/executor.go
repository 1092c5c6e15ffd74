package desk

import (
	"context"
	"fmt"

	"github.com/mrlokans/bookcourier/internal/audit"
	"github.com/mrlokans/bookcourier/internal/entities"
)

// Mutations are the units of work on a task. Each must commit or roll back
// as a whole.
type Mutations interface {
	Select(ctx context.Context, key entities.TaskKey, courierID uint) error
	Deselect(ctx context.Context, key entities.TaskKey, courierID uint) error
	Mark(ctx context.Context, key entities.TaskKey, courierID uint) error
	Comment(ctx context.Context, key entities.TaskKey, courierID uint, comment string) error
}

// Executor runs one action against the store and records its outcome.
type Executor struct {
	mutations Mutations
	audit     *audit.Service
}

func NewExecutor(mutations Mutations, auditSvc *audit.Service) *Executor {
	return &Executor{mutations: mutations, audit: auditSvc}
}

var auditTypes = map[Action]entities.AuditEventType{
	ActionSelect:   entities.AuditEventSelect,
	ActionDeselect: entities.AuditEventDeselect,
	ActionMark:     entities.AuditEventMark,
	ActionComment:  entities.AuditEventComment,
}

// Run applies action to the task identified by key on behalf of courierID.
func (e *Executor) Run(ctx context.Context, action Action, key entities.TaskKey, courierID uint, comment string) error {
	var err error
	switch action {
	case ActionSelect:
		err = e.mutations.Select(ctx, key, courierID)
	case ActionDeselect:
		err = e.mutations.Deselect(ctx, key, courierID)
	case ActionMark:
		err = e.mutations.Mark(ctx, key, courierID)
	case ActionComment:
		err = e.mutations.Comment(ctx, key, courierID, comment)
	default:
		return fmt.Errorf("%w: unknown action %q", ErrActionDisabled, action)
	}

	e.audit.LogAction(ctx, courierID, auditTypes[action], key, err)
	if err != nil {
		return fmt.Errorf("%s %s: %w", action, key, err)
	}
	return nil
}
