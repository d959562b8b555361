package headless_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kalida-labs/dmgo/backend/headless"
	"github.com/kalida-labs/dmgo/video"
)

func TestDisplayTracksLastFrame(t *testing.T) {
	d := headless.New()
	assert.Nil(t, d.LastFrame())

	frame := video.NewFrameBuffer()
	assert.NoError(t, d.Present(frame))
	assert.Same(t, frame, d.LastFrame())
}

func TestDisplayNeverProducesInput(t *testing.T) {
	d := headless.New()
	assert.Empty(t, d.PollInput())
}

func TestDisplayCloseIsNoOp(t *testing.T) {
	d := headless.New()
	assert.NoError(t, d.Close())
}
