package script

import "fmt"

// Action is what a frame does to its element.
type Action int

// Actions
const (
	Show Action = iota
	Hide
)

func (a Action) String() string {
	if a == Hide {
		return "hide"
	}
	return "show"
}

// Frame is a single step of an animation.
//
// Frames produced from a group share their timing. A player waits DelayMs
// before the frame marked FirstInGroup and shows the rest of the group
// together with it.
type Frame struct {
	Element      string // id of an SVG element
	Group        bool   // frame stems from a group
	FirstInGroup bool
	DelayMs      int // delay before the frame is played
	HoldMs       int // duration of the frame, 0 for permanent
	Action       Action
}

func (f Frame) String() string {
	g := ""
	if f.Group {
		g = " (group)"
		if f.FirstInGroup {
			g = " (group, first)"
		}
	}
	return fmt.Sprintf("%s %s after %dms during %dms%s", f.Action, f.Element, f.DelayMs, f.HoldMs, g)
}
