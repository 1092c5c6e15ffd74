package desk

import "fmt"

type Tab string

const (
	TabInput    Tab = "input"    // Books nobody has taken yet
	TabSelected Tab = "selected" // Books the courier is handling
)

func ParseTab(s string) (Tab, error) {
	switch Tab(s) {
	case TabInput, TabSelected:
		return Tab(s), nil
	}
	return "", fmt.Errorf("%w: unknown tab %q", ErrInvalidRow, s)
}

type Action string

const (
	ActionSelect   Action = "select"
	ActionDeselect Action = "deselect"
	ActionMark     Action = "mark"
	ActionComment  Action = "comment"
)

// NoRow marks an absent current row.
const NoRow = -1

// Event is anything the desk front-end reports.
type Event interface {
	event()
}

// RowSelectionChanged reports that the current row of a table moved.
type RowSelectionChanged struct {
	Tab      Tab
	Current  int
	Previous int
}

// TabChanged reports that another tab was brought to the front.
type TabChanged struct {
	Tab Tab
}

// ActionTriggered reports a menu or button press. Prompt is consulted only
// by ActionComment.
type ActionTriggered struct {
	Action Action
	Prompt CommentPrompt
}

func (RowSelectionChanged) event() {}
func (TabChanged) event() {}
func (ActionTriggered) event() {}
