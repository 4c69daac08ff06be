package tooltip

import (
	"errors"
	"fmt"
)

// ErrEmptyAnchorID is returned when an anchor is registered without an id.
var ErrEmptyAnchorID = errors.New("tooltip: anchor id must not be empty")

// Anchor is an interactive element that may own a tooltip label.
type Anchor struct {
	ID         string
	HasTooltip bool
	Label      string
}

// Surface is the observable state of the single shared tooltip.
// AnchorID is empty while the surface is unanchored.
type Surface struct {
	Visible  bool
	Label    string
	AnchorID string
}

// Kind identifies an input event consumed by the controller.
type Kind int

const (
	KindFocus Kind = iota
	KindBlur
	KindPointerEnter
	KindPointerLeave
	KindGlobalClick
	KindDismiss
	KindFire
)

var kindNames = map[Kind]string{
	KindFocus:        "focus",
	KindBlur:         "blur",
	KindPointerEnter: "pointerEnter",
	KindPointerLeave: "pointerLeave",
	KindGlobalClick:  "globalClick",
	KindDismiss:      "dismiss",
	KindFire:         "fire",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind maps an event name back to its Kind. Names are the ones
// produced by Kind.String.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown tooltip event %q", name)
}

// Event is a single input delivered to Controller.Apply. Seq is only
// meaningful for KindFire.
type Event struct {
	Kind   Kind
	Target string
	Seq    uint64
}
