package out_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	timeroutadapter "pomo/internal/modules/timer/adapter/out"
)

func TestSynthesizeRendersDistinctSounds(t *testing.T) {
	t.Parallel()
	chime := timeroutadapter.Synthesize("chime")
	bell := timeroutadapter.Synthesize("bell")
	digital := timeroutadapter.Synthesize("digital")

	for name, pcm := range map[string][]byte{"chime": chime, "bell": bell, "digital": digital} {
		assert.NotEmpty(t, pcm, name)
		assert.Zero(t, len(pcm)%2, "%s must be whole 16-bit samples", name)
	}
	// 400ms, 700ms and 3x140ms of mono 44.1kHz audio.
	assert.Equal(t, 2*(6615+11025), len(chime))
	assert.Equal(t, 2*30870, len(bell))
	assert.Equal(t, 2*3*(3528+2646), len(digital))
	assert.False(t, bytes.Equal(chime[:200], bell[:200]))
}

func TestSynthesizeUnknownFallsBackToChime(t *testing.T) {
	t.Parallel()
	assert.Equal(t, timeroutadapter.Synthesize("chime"), timeroutadapter.Synthesize("kazoo"))
}
