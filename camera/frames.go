package camera

// frameCounter implements the frame bracket shared by all cameras.
type frameCounter struct {
	inFrame bool
	frames  uint64
}

// BeginFrame marks the start of a frame.
func (f *frameCounter) BeginFrame() { f.inFrame = true }

// EndFrame marks the end of a frame. Unmatched calls are ignored.
func (f *frameCounter) EndFrame() {
	if !f.inFrame {
		return
	}
	f.inFrame = false
	f.frames++
}

// Frames returns the number of completed frames.
func (f *frameCounter) Frames() uint64 { return f.frames }

// InFrame reports whether BeginFrame was called without a matching EndFrame.
func (f *frameCounter) InFrame() bool { return f.inFrame }
