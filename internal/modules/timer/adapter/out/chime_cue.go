package out

import (
	"bytes"
	"context"
	"encoding/binary"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	hclog "github.com/hashicorp/go-hclog"

	timerout "pomo/internal/modules/timer/port/out"
)

const (
	sampleRate   = 44100
	channelCount = 1
	amplitude    = 0.3
)

// ChimeCue plays a short synthesized tone when a phase completes. The audio
// context is opened on first use; without an audio device the cue is silent.
type ChimeCue struct {
	log     hclog.Logger
	once    sync.Once
	ctx     *oto.Context
	initErr error
	mu      sync.Mutex
}

func NewChimeCue(log hclog.Logger) timerout.Cue {
	return &ChimeCue{log: log}
}

func (c *ChimeCue) Play(ctx context.Context, sound string) error {
	c.once.Do(c.open)
	if c.initErr != nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	player := c.ctx.NewPlayer(bytes.NewReader(Synthesize(sound)))
	defer player.Close()
	player.Play()
	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			player.Pause()
			return ctx.Err()
		case <-time.After(10 * time.Millisecond):
		}
	}
	return nil
}

func (c *ChimeCue) open() {
	otoCtx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channelCount,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		c.initErr = err
		c.log.Warn("audio unavailable, completion cue disabled", "error", err)
		return
	}
	<-ready
	c.ctx = otoCtx
}

// Synthesize renders the named sound as mono signed 16-bit little-endian PCM.
// Unknown names render the default chime.
func Synthesize(sound string) []byte {
	var samples []float64
	switch sound {
	case "bell":
		samples = tone(523.25, 700*time.Millisecond, 4, sine, 1046.5)
	case "digital":
		for i := 0; i < 3; i++ {
			samples = append(samples, tone(1000, 80*time.Millisecond, 0, square)...)
			samples = append(samples, silence(60*time.Millisecond)...)
		}
	default:
		samples = append(tone(880, 150*time.Millisecond, 6, sine), tone(1320, 250*time.Millisecond, 6, sine)...)
	}
	buf := make([]byte, 2*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint16(buf[2*i:], uint16(int16(s*amplitude*math.MaxInt16)))
	}
	return buf
}

func sine(phase float64) float64 {
	return math.Sin(2 * math.Pi * phase)
}

func square(phase float64) float64 {
	if math.Mod(phase, 1) < 0.5 {
		return 1
	}
	return -1
}

// tone renders freq plus optional overtones at half weight, with an
// exponential decay of the given rate per second.
func tone(freq float64, length time.Duration, decay float64, wave func(float64) float64, overtones ...float64) []float64 {
	out := make([]float64, sampleCount(length))
	for i := range out {
		t := float64(i) / sampleRate
		v := wave(freq * t)
		for _, over := range overtones {
			v += 0.5 * wave(over*t)
		}
		v /= 1 + 0.5*float64(len(overtones))
		out[i] = v * math.Exp(-decay*t)
	}
	return out
}

func silence(length time.Duration) []float64 {
	return make([]float64, sampleCount(length))
}

func sampleCount(length time.Duration) int {
	return int(int64(length) * sampleRate / int64(time.Second))
}
