package desk

// SelectionState is what the courier is looking at: the tab in front and
// the current row of each table (NoRow when none).
type SelectionState struct {
	ActiveTab          Tab `json:"active_tab"`
	InputCurrentRow    int `json:"input_current_row"`
	SelectedCurrentRow int `json:"selected_current_row"`
}

// NewSelectionState is the state right after start or logout.
func NewSelectionState() SelectionState {
	return SelectionState{
		ActiveTab:          TabInput,
		InputCurrentRow:    NoRow,
		SelectedCurrentRow: NoRow,
	}
}

// CurrentRow returns the current row of tab.
func (s SelectionState) CurrentRow(tab Tab) int {
	if tab == TabSelected {
		return s.SelectedCurrentRow
	}
	return s.InputCurrentRow
}

func (s *SelectionState) setCurrentRow(tab Tab, row int) {
	if tab == TabSelected {
		s.SelectedCurrentRow = row
		return
	}
	s.InputCurrentRow = row
}

// Flags says which affordances are enabled.
type Flags struct {
	Select     bool `json:"select"`
	Deselect   bool `json:"deselect"`
	Mark       bool `json:"mark"`
	Comment    bool `json:"comment"`
	Tabs       bool `json:"tabs"`
	ActionMenu bool `json:"action_menu"`
	Disconnect bool `json:"disconnect"`
}

// Enablement derives the flags from the selection state. Without a session
// everything is off. Select needs a current row on the input tab; the
// other actions need one on the selected tab.
func Enablement(state SelectionState, sessionPresent bool) Flags {
	if !sessionPresent {
		return Flags{}
	}

	f := Flags{Tabs: true, ActionMenu: true, Disconnect: true}
	switch state.ActiveTab {
	case TabInput:
		f.Select = state.InputCurrentRow != NoRow
	case TabSelected:
		held := state.SelectedCurrentRow != NoRow
		f.Deselect, f.Mark, f.Comment = held, held, held
	}
	return f
}

// Allows reports whether action is enabled.
func (f Flags) Allows(action Action) bool {
	switch action {
	case ActionSelect:
		return f.Select
	case ActionDeselect:
		return f.Deselect
	case ActionMark:
		return f.Mark
	case ActionComment:
		return f.Comment
	}
	return false
}

// sourceTab is the tab whose current row an action works on, which is also
// the row set re-queried afterwards.
func (a Action) sourceTab() Tab {
	if a == ActionSelect {
		return TabInput
	}
	return TabSelected
}
