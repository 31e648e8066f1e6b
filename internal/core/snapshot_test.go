package core

import (
	"slices"
	"testing"
)

func TestOverlayLines(t *testing.T) {
	tests := []struct {
		name string
		ov   Overlay
		want []string
	}{
		{"title only", Overlay{Title: "3"}, []string{"3"}},
		{"subtitle", Overlay{Title: "GOAL!", Subtitle: "P1 scores"}, []string{"GOAL!", "P1 scores"}},
		{
			"options",
			Overlay{Title: "Kart Havoc", Options: []string{"Two Players", "Vs CPU"}, Selected: 1},
			[]string{"Kart Havoc", "", "  Two Players", "> Vs CPU"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ov.Lines(); !slices.Equal(got, tt.want) {
				t.Errorf("Lines() = %q, expected %q", got, tt.want)
			}
		})
	}
}

func TestSnapshotResetKeepsCapacity(t *testing.T) {
	var s Snapshot
	s.AddCircle(V(1, 2), 3, ColorRed, 'o')
	s.AddRect(V(1, 2), 3, 4, ColorBlue, '#')
	s.AddLine(V(0, 0), V(1, 1), ColorGray, '.')
	s.HUD = append(s.HUD, "hud")
	s.Overlay = &Overlay{Title: "x"}
	n := cap(s.Bodies)

	s.Reset()
	if len(s.Bodies) != 0 || len(s.Lines) != 0 || len(s.HUD) != 0 || s.Overlay != nil {
		t.Errorf("Reset() left %+v", s)
	}
	if cap(s.Bodies) != n {
		t.Errorf("cap(Bodies) = %d, expected %d", cap(s.Bodies), n)
	}
}
