package ui

import "github.com/drake/wristwatch/event"

// FrameMsg carries a freshly rendered display.
type FrameMsg event.Frame
