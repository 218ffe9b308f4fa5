package capture

import (
	"fmt"
	"sync"

	"gocv.io/x/gocv"
)

// MockCamera plays back a fixed frame sequence for testing.
type MockCamera struct {
	mu    sync.Mutex
	frame gocv.Mat
	fps   int
	open  bool
	reads int
}

// NewMockCamera creates a camera that returns clones of a solid gray
// test frame on every read.
func NewMockCamera() *MockCamera {
	return &MockCamera{
		frame: gocv.NewMatWithSize(DefaultHeight, DefaultWidth, gocv.MatTypeCV8UC3),
		fps:   DefaultFPS,
	}
}

func (c *MockCamera) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = true
	return nil
}

func (c *MockCamera) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = false
	return nil
}

func (c *MockCamera) ReadFrame() (*gocv.Mat, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.open {
		return nil, ErrCameraNotOpen
	}
	if c.frame.Empty() {
		return nil, fmt.Errorf("no frame available")
	}

	c.reads++
	clone := c.frame.Clone()
	return &clone, nil
}

func (c *MockCamera) SetFPS(fps int) {
	if fps <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fps = fps
}

func (c *MockCamera) FPS() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fps
}

func (c *MockCamera) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

// Reads returns how many frames have been read, for asserting pipeline
// cadence in tests.
func (c *MockCamera) Reads() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reads
}

// Release frees the underlying test frame.
func (c *MockCamera) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.frame.Empty() {
		c.frame.Close()
	}
}
