package desk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnablement(t *testing.T) {
	on := Flags{Tabs: true, ActionMenu: true, Disconnect: true}

	tests := []struct {
		name    string
		state   SelectionState
		session bool
		want    Flags
	}{
		{
			name:    "input with current row",
			state:   SelectionState{ActiveTab: TabInput, InputCurrentRow: 0, SelectedCurrentRow: NoRow},
			session: true,
			want:    Flags{Select: true, Tabs: true, ActionMenu: true, Disconnect: true},
		},
		{
			name:    "input without current row",
			state:   SelectionState{ActiveTab: TabInput, InputCurrentRow: NoRow, SelectedCurrentRow: NoRow},
			session: true,
			want:    on,
		},
		{
			name:    "selected with current row",
			state:   SelectionState{ActiveTab: TabSelected, InputCurrentRow: NoRow, SelectedCurrentRow: 2},
			session: true,
			want:    Flags{Deselect: true, Mark: true, Comment: true, Tabs: true, ActionMenu: true, Disconnect: true},
		},
		{
			name:    "selected without current row",
			state:   SelectionState{ActiveTab: TabSelected, InputCurrentRow: 3, SelectedCurrentRow: NoRow},
			session: true,
			want:    on,
		},
		{
			name:    "no session disables everything",
			state:   SelectionState{ActiveTab: TabInput, InputCurrentRow: 0, SelectedCurrentRow: 0},
			session: false,
			want:    Flags{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Enablement(tt.state, tt.session))
		})
	}
}

func TestEnablement_NeverSelectAndDeselectTogether(t *testing.T) {
	for _, tab := range []Tab{TabInput, TabSelected} {
		for _, in := range []int{NoRow, 0} {
			for _, sel := range []int{NoRow, 0} {
				f := Enablement(SelectionState{ActiveTab: tab, InputCurrentRow: in, SelectedCurrentRow: sel}, true)
				assert.False(t, f.Select && (f.Deselect || f.Mark || f.Comment), "tab=%s in=%d sel=%d", tab, in, sel)
			}
		}
	}
}

func TestFlags_Allows(t *testing.T) {
	f := Flags{Deselect: true, Mark: true}

	assert.False(t, f.Allows(ActionSelect))
	assert.True(t, f.Allows(ActionDeselect))
	assert.True(t, f.Allows(ActionMark))
	assert.False(t, f.Allows(ActionComment))
	assert.False(t, f.Allows(Action("burn")))
}

func TestParseTab(t *testing.T) {
	tab, err := ParseTab("selected")
	assert.NoError(t, err)
	assert.Equal(t, TabSelected, tab)

	_, err = ParseTab("archive")
	assert.ErrorIs(t, err, ErrInvalidRow)
}
