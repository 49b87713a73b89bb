package toolbar

import "intuition-toolbar/internal/host"

// Button identifies one toolbar button.
type Button int

const (
	ButtonLoad Button = iota
	ButtonReset
	ButtonDebug
	ButtonAbout
)

func (b Button) String() string {
	switch b {
	case ButtonLoad:
		return "Load"
	case ButtonReset:
		return "Reset"
	case ButtonDebug:
		return "Debug"
	case ButtonAbout:
		return "About"
	default:
		return "?"
	}
}

// Buttons in left-to-right order.
var Buttons = []Button{ButtonLoad, ButtonReset, ButtonDebug, ButtonAbout}

// Layout fixes the toolbar geometry. The window is not resizable.
type Layout struct {
	Title        string
	AppID        string
	ButtonWidth  int
	ButtonHeight int
	Spacing      int
	Margin       int
}

var DefaultLayout = Layout{
	Title:        host.ProductName,
	AppID:        "org.intuition.engine",
	ButtonWidth:  70,
	ButtonHeight: 25,
	Spacing:      4,
	Margin:       6,
}

const (
	LoadDialogTitle = "Load Program"
	AboutTitle      = "About " + host.ProductName
)

// Size is the window's fixed content size.
func (l Layout) Size() (width, height int) {
	n := len(Buttons)
	width = 2*l.Margin + n*l.ButtonWidth + (n-1)*l.Spacing
	height = 2*l.Margin + l.ButtonHeight
	return width, height
}

// ButtonOrigin is the top-left corner of button i for toolkits that place
// widgets absolutely.
func (l Layout) ButtonOrigin(i int) (x, y int) {
	return l.Margin + i*(l.ButtonWidth+l.Spacing), l.Margin
}
