// Package desk is the courier's workbench: login state, the two task
// tables, which row is current in each, and the actions allowed on it.
//
// Every entry point takes the same lock, so events from HTTP handlers and
// the refresh scheduler are handled one at a time, in arrival order, the
// way a UI main thread would. Each handler validates preconditions,
// runs at most one unit of work, then re-queries the affected table.
//
//	d := desk.New(authSvc, books.NewRepository(conn), assignments.NewRepository(conn), auditSvc)
//	err := d.Login(ctx, desk.StaticCredentials{CourierID: "7", PasswordHash: h}, ip)
//	err = d.Dispatch(ctx, desk.RowSelectionChanged{Tab: desk.TabInput, Current: 0, Previous: desk.NoRow})
//	err = d.Dispatch(ctx, desk.ActionTriggered{Action: desk.ActionSelect})
package desk

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/mrlokans/bookcourier/internal/audit"
	"github.com/mrlokans/bookcourier/internal/auth"
	"github.com/mrlokans/bookcourier/internal/entities"
)

// Queries loads the two row sets. On failure the returned slice is empty.
type Queries interface {
	QueryUnassigned(ctx context.Context) ([]entities.BookTask, error)
	QueryAssigned(ctx context.Context, courierID uint) ([]entities.BookTask, error)
}

type Desk struct {
	mu sync.Mutex

	auth     *auth.Service
	queries  Queries
	executor *Executor
	audit    *audit.Service

	state    SelectionState
	input    []entities.BookTask
	selected []entities.BookTask
	comment  string
	notice   string
}

func New(authSvc *auth.Service, queries Queries, mutations Mutations, auditSvc *audit.Service) *Desk {
	return &Desk{
		auth:     authSvc,
		queries:  queries,
		executor: NewExecutor(mutations, auditSvc),
		audit:    auditSvc,
		state:    NewSelectionState(),
		input:    []entities.BookTask{},
		selected: []entities.BookTask{},
	}
}

// Snapshot is everything a front-end needs to render the desk.
type Snapshot struct {
	CourierID *uint               `json:"courier_id"`
	State     SelectionState      `json:"state"`
	Flags     Flags               `json:"flags"`
	Input     []entities.BookTask `json:"input"`
	Selected  []entities.BookTask `json:"selected"`
	Comment   string              `json:"comment"`
	Notice    string              `json:"notice,omitempty"`
}

func (d *Desk) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snapshotLocked()
}

func (d *Desk) snapshotLocked() Snapshot {
	snap := Snapshot{
		State:    d.state,
		Input:    append([]entities.BookTask{}, d.input...),
		Selected: append([]entities.BookTask{}, d.selected...),
		Comment:  d.comment,
		Notice:   d.notice,
	}
	id, ok := d.auth.Session().Current()
	if ok {
		snap.CourierID = &id
	}
	snap.Flags = Enablement(d.state, ok)
	return snap
}

// CourierID returns the logged-in courier.
func (d *Desk) CourierID() (uint, bool) {
	return d.auth.Session().Current()
}

// Login logs out, asks the prompt for credentials and verifies them. A
// cancelled prompt leaves the desk logged out and returns ErrLoginCancelled.
// ErrNotFound means the credentials were wrong and the prompt may be shown
// again.
func (d *Desk) Login(ctx context.Context, prompt CredentialPrompt, clientIP string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.logoutLocked()

	rawID, hash, ok := prompt.Credentials(ctx)
	if !ok {
		return ErrLoginCancelled
	}

	courierID, err := d.auth.Login(ctx, rawID, hash)
	d.audit.LogAuth(ctx, courierID, rawID, "login", clientIP, err)
	if err != nil {
		d.notice = err.Error()
		log.Printf("[desk] login as %q failed: %v", rawID, err)
		return err
	}
	log.Printf("[desk] courier %d logged in", courierID)

	d.refreshLocked(ctx, TabSelected)
	d.refreshLocked(ctx, TabInput)
	return nil
}

// Logout clears the session and both tables.
func (d *Desk) Logout(ctx context.Context, clientIP string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if id, ok := d.auth.Session().Current(); ok {
		d.audit.LogAuth(ctx, id, fmt.Sprint(id), "logout", clientIP, nil)
		log.Printf("[desk] courier %d logged out", id)
	}
	d.logoutLocked()
}

func (d *Desk) logoutLocked() {
	d.auth.Logout()
	d.state = NewSelectionState()
	d.input = []entities.BookTask{}
	d.selected = []entities.BookTask{}
	d.comment = ""
	d.notice = ""
}

// Dispatch handles one front-end event.
func (d *Desk) Dispatch(ctx context.Context, ev Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	courierID, ok := d.auth.Session().Current()
	if !ok {
		return ErrNoSession
	}

	switch ev := ev.(type) {
	case TabChanged:
		return d.onTabChanged(ctx, ev)
	case RowSelectionChanged:
		return d.onRowSelectionChanged(ev)
	case ActionTriggered:
		return d.onActionTriggered(ctx, ev, courierID)
	}
	return fmt.Errorf("unsupported event %T", ev)
}

// Refresh re-queries the table in front. The scheduler calls it. Unlike
// the refresh after an action, the current row follows its task when the
// task is still in the fresh row set.
func (d *Desk) Refresh(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.auth.Session().Current(); !ok {
		return ErrNoSession
	}
	d.notice = ""

	tab := d.state.ActiveTab
	var current *entities.TaskKey
	if row := d.state.CurrentRow(tab); row != NoRow {
		key := d.rows(tab)[row].Key()
		current = &key
	}

	if err := d.refreshLocked(ctx, tab); err != nil {
		return err
	}
	if current != nil {
		d.restoreRow(tab, *current)
	}
	return nil
}

func (d *Desk) restoreRow(tab Tab, key entities.TaskKey) {
	for i, task := range d.rows(tab) {
		if task.Key() == key {
			d.state.setCurrentRow(tab, i)
			if tab == TabSelected {
				d.loadComment()
			}
			return
		}
	}
}

func (d *Desk) onTabChanged(ctx context.Context, ev TabChanged) error {
	if ev.Tab != TabInput && ev.Tab != TabSelected {
		return fmt.Errorf("%w: unknown tab %q", ErrInvalidRow, ev.Tab)
	}
	if ev.Tab == d.state.ActiveTab {
		return nil
	}

	d.notice = ""
	d.state.setCurrentRow(d.state.ActiveTab, NoRow)
	d.state.ActiveTab = ev.Tab
	return d.refreshLocked(ctx, ev.Tab)
}

func (d *Desk) onRowSelectionChanged(ev RowSelectionChanged) error {
	if ev.Current == ev.Previous {
		return nil
	}
	if ev.Tab != d.state.ActiveTab {
		return fmt.Errorf("%w: %s is not the active tab", ErrInvalidRow, ev.Tab)
	}

	rows := d.rows(ev.Tab)
	if ev.Current != NoRow && (ev.Current < 0 || ev.Current >= len(rows)) {
		return fmt.Errorf("%w: row %d of %d", ErrInvalidRow, ev.Current, len(rows))
	}

	d.state.setCurrentRow(ev.Tab, ev.Current)
	if ev.Tab == TabSelected {
		d.loadComment()
	}
	return nil
}

func (d *Desk) onActionTriggered(ctx context.Context, ev ActionTriggered, courierID uint) error {
	if !Enablement(d.state, true).Allows(ev.Action) {
		return fmt.Errorf("%w: %s", ErrActionDisabled, ev.Action)
	}

	tab := ev.Action.sourceTab()
	task := d.rows(tab)[d.state.CurrentRow(tab)]

	var comment string
	if ev.Action == ActionComment {
		if ev.Prompt == nil {
			return fmt.Errorf("%w: comment needs a prompt", ErrActionDisabled)
		}
		var ok bool
		comment, ok = ev.Prompt.EditComment(ctx, d.comment)
		if !ok {
			return nil
		}
	}

	d.notice = ""
	err := d.executor.Run(ctx, ev.Action, task.Key(), courierID, comment)
	if err != nil {
		d.notice = err.Error()
		log.Printf("[desk] courier %d: %v", courierID, err)
	}

	refreshErr := d.refreshLocked(ctx, tab)
	if err != nil {
		return err
	}
	return refreshErr
}

func (d *Desk) rows(tab Tab) []entities.BookTask {
	if tab == TabSelected {
		return d.selected
	}
	return d.input
}

// refreshLocked replaces the row set of tab with a fresh query and resets
// its current row. A failed query leaves the table empty, never stale.
func (d *Desk) refreshLocked(ctx context.Context, tab Tab) error {
	courierID, ok := d.auth.Session().Current()
	if !ok {
		return ErrNoSession
	}

	var (
		rows []entities.BookTask
		err  error
	)
	if tab == TabSelected {
		rows, err = d.queries.QueryAssigned(ctx, courierID)
	} else {
		rows, err = d.queries.QueryUnassigned(ctx)
	}
	if err != nil || rows == nil {
		rows = []entities.BookTask{}
	}

	if tab == TabSelected {
		d.selected = rows
		d.comment = ""
	} else {
		d.input = rows
	}
	d.state.setCurrentRow(tab, NoRow)

	if err != nil {
		msg := fmt.Sprintf("could not load %s books: %v", tab, err)
		if errors.Is(err, ErrConnectivity) {
			msg = "Cannot establish connection to database: " + err.Error()
		}
		d.notice = msg
		log.Printf("[desk] %s", msg)
		return err
	}
	return nil
}

func (d *Desk) loadComment() {
	row := d.state.SelectedCurrentRow
	if row == NoRow || d.selected[row].Comment == nil {
		d.comment = ""
		return
	}
	d.comment = *d.selected[row].Comment
}
