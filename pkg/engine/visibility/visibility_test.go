package visibility

import (
	"testing"

	"github.com/matzehuels/daygrid/pkg/errors"
)

func policy() Policy {
	return Policy{MinColumnWidth: 100, Gap: 10, MaxColumns: 3, CollapseBelow: 150, ExpandAbove: 200}
}

func TestDecide_CapsByFit(t *testing.T) {
	// 215 + 10 fits two 110-wide units.
	got := policy().Decide(4, 215, State{})
	if got.Collapsed {
		t.Fatal("Decide() collapsed, want expanded")
	}
	if got.VisibleColumns != 2 {
		t.Errorf("VisibleColumns = %d, want 2", got.VisibleColumns)
	}
	for col, hidden := range []bool{false, false, true, true} {
		if got.Hidden(col) != hidden {
			t.Errorf("Hidden(%d) = %v, want %v", col, got.Hidden(col), hidden)
		}
	}
}

func TestMaxFit(t *testing.T) {
	tests := []struct {
		name   string
		policy Policy
		width  int
		want   int
	}{
		{"exact fit", Policy{MinColumnWidth: 100, Gap: 10}, 320, 3},
		{"just short", Policy{MinColumnWidth: 100, Gap: 10}, 319, 2},
		{"too narrow still fits one", Policy{MinColumnWidth: 100, Gap: 10}, 20, 1},
		{"negative width", Policy{MinColumnWidth: 100}, -50, 1},
		{"capped", Policy{MinColumnWidth: 10, MaxColumns: 3}, 1000, 3},
		{"no cap", Policy{MinColumnWidth: 10}, 1000, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.policy.MaxFit(tt.width); got != tt.want {
				t.Errorf("MaxFit(%d) = %d, want %d", tt.width, got, tt.want)
			}
		})
	}
}

func TestVisible(t *testing.T) {
	p := policy()
	tests := []struct {
		columns, width int
		collapsed      bool
		want           int
	}{
		{1, 1000, false, 1},
		{5, 1000, false, 3},
		{5, 1000, true, 1},
		{0, 1000, false, 0},
		{0, 1000, true, 0},
	}
	for _, tt := range tests {
		if got := p.Visible(tt.columns, tt.width, tt.collapsed); got != tt.want {
			t.Errorf("Visible(%d, %d, %v) = %d, want %d", tt.columns, tt.width, tt.collapsed, got, tt.want)
		}
	}
}

func TestCollapse_Thresholds(t *testing.T) {
	p := policy()
	tests := []struct {
		width int
		prev  bool
		want  bool
	}{
		{149, false, true},
		{150, false, false},
		{175, false, false},
		{175, true, true},
		{200, true, true},
		{201, true, false},
	}
	for _, tt := range tests {
		if got := p.Collapse(tt.width, tt.prev); got != tt.want {
			t.Errorf("Collapse(%d, %v) = %v, want %v", tt.width, tt.prev, got, tt.want)
		}
	}
}

func TestCollapse_Disabled(t *testing.T) {
	p := Policy{MinColumnWidth: 10}
	if p.Collapse(0, true) {
		t.Error("Collapse() with no thresholds should never collapse")
	}
}

func TestHysteresisStability(t *testing.T) {
	p := policy()
	var widths []int
	for w := p.CollapseBelow + 1; w < p.ExpandAbove; w++ {
		widths = append(widths, w)
	}
	for w := p.ExpandAbove - 1; w > p.CollapseBelow; w-- {
		widths = append(widths, w)
	}

	for _, start := range []bool{false, true} {
		state := State{Collapsed: start}
		for _, w := range widths {
			state = p.Decide(3, w, state)
			if state.Collapsed != start {
				t.Fatalf("start collapsed=%v: width %d flipped state", start, w)
			}
		}
	}
}

func TestHysteresis_Cycle(t *testing.T) {
	p := policy()
	state := State{}
	steps := []struct {
		width     int
		collapsed bool
		visible   int
	}{
		{400, false, 3},
		{140, true, 1},
		{190, true, 1},
		{210, false, 2},
		{160, false, 1},
		{330, false, 3},
	}
	for i, s := range steps {
		state = p.Decide(4, s.width, state)
		if state.Collapsed != s.collapsed || state.VisibleColumns != s.visible {
			t.Errorf("step %d width %d: got %+v, want collapsed=%v visible=%d",
				i, s.width, state, s.collapsed, s.visible)
		}
	}
}

func TestSample(t *testing.T) {
	p := policy()
	width := 400
	w := WidthFunc(func() int { return width })

	if got := p.Sample(w, 4, State{}); got.VisibleColumns != 3 {
		t.Errorf("Sample() visible = %d, want 3", got.VisibleColumns)
	}
	width = 100
	if got := p.Sample(w, 4, State{}); !got.Collapsed {
		t.Error("Sample() after shrink should collapse")
	}
	if got := p.Sample(Fixed(215), 4, State{}); got.VisibleColumns != 2 {
		t.Errorf("Sample(Fixed) visible = %d, want 2", got.VisibleColumns)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		policy  Policy
		wantErr bool
	}{
		{"default", DefaultPolicy(), false},
		{"no hysteresis", Policy{MinColumnWidth: 10}, false},
		{"zero min width", Policy{MinColumnWidth: 0}, true},
		{"negative gap", Policy{MinColumnWidth: 10, Gap: -1}, true},
		{"equal thresholds", Policy{MinColumnWidth: 10, CollapseBelow: 50, ExpandAbove: 50}, true},
		{"inverted thresholds", Policy{MinColumnWidth: 10, CollapseBelow: 60, ExpandAbove: 50}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.policy.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && errors.GetCode(err) != errors.ErrCodeInvalidConfig {
				t.Errorf("GetCode() = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidConfig)
			}
		})
	}
}
