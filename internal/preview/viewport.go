package preview

import "fmt"

// ScreenSize is a simulated device viewport
type ScreenSize string

const (
	ScreenMobile  ScreenSize = "mobile"
	ScreenTablet  ScreenSize = "tablet"
	ScreenDesktop ScreenSize = "desktop"
)

var screenWidths = map[ScreenSize]int{
	ScreenMobile:  375,
	ScreenTablet:  768,
	ScreenDesktop: 1024,
}

// Width returns the frame width in pixels
func (s ScreenSize) Width() int {
	return screenWidths[s]
}

// Valid reports whether s is one of the known viewports
func (s ScreenSize) Valid() bool {
	_, ok := screenWidths[s]
	return ok
}

// Label is the selector text, e.g. "Tablet (768px)"
func (s ScreenSize) Label() string {
	switch s {
	case ScreenMobile:
		return fmt.Sprintf("Mobile (%dpx)", s.Width())
	case ScreenTablet:
		return fmt.Sprintf("Tablet (%dpx)", s.Width())
	case ScreenDesktop:
		return fmt.Sprintf("Desktop (%dpx)", s.Width())
	}
	return string(s)
}

// FrameStyle is the inline style applied to the preview iframe
type FrameStyle struct {
	Width  string
	Height string
	Border string
}

// Style returns the iframe style for the viewport; height always fills the pane
func (s ScreenSize) Style() FrameStyle {
	return FrameStyle{
		Width:  fmt.Sprintf("%dpx", s.Width()),
		Height: "100%",
		Border: "none",
	}
}
