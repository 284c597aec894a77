package parameter

import "time"

const (
	FPS = 60

	// FrameInterval is the nominal tick for FPS
	FrameInterval = time.Second / FPS

	BodyColor = "#ffffff"

	// TerminalScale is world units per terminal subpixel
	TerminalScale = 6.0

	SnapshotWidth  = 1280
	SnapshotHeight = 800
)
