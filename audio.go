package hotloop

import (
	"log"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/pkg/errors"
)

// DefaultSampleRate is the output sample rate of the synthesizer.
const DefaultSampleRate = 44100

const (
	audioChannels       = 2
	audioBytesPerSample = 2
	audioFrameBytes     = audioChannels * audioBytesPerSample
)

// ToneSpec describes a plain sine beep.
type ToneSpec struct {
	Frequency float64 // Hz
	Gain      float64 // linear amplitude, 0 to 1
	Duration  time.Duration
}

// toneSpecs holds the feedback sounds.
var toneSpecs = map[Tone]ToneSpec{
	ToneTap:   {Frequency: 800, Gain: 0.1, Duration: 100 * time.Millisecond},
	ToneBoost: {Frequency: 400, Gain: 0.15, Duration: 200 * time.Millisecond},
}

// SpecFor returns the ToneSpec played for t.
func SpecFor(t Tone) (ToneSpec, bool) {
	spec, ok := toneSpecs[t]
	return spec, ok
}

// AudioSink plays feedback tones. Playback is fire and forget; sinks never
// report failure to the caller.
type AudioSink interface {
	PlayTone(t Tone)
}

// NopAudio discards every tone.
type NopAudio struct{}

// PlayTone implements AudioSink.
func (NopAudio) PlayTone(Tone) {}

// Synth renders tones with beep and plays them through the ebiten audio
// context. Rendered tones are cached as 16-bit PCM.
type Synth struct {
	ctx   *audio.Context
	rate  beep.SampleRate
	cache map[Tone][]byte
}

// NewSynth opens (or reuses) the process-wide ebiten audio context.
func NewSynth(sampleRate int) (s *Synth, err error) {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	ctx := audio.CurrentContext()
	if ctx == nil {
		// NewContext panics when a context with another rate already exists
		// or the driver cannot start.
		defer func() {
			if r := recover(); r != nil {
				s, err = nil, errors.Errorf("open audio context: %v", r)
			}
		}()
		ctx = audio.NewContext(sampleRate)
	} else if ctx.SampleRate() != sampleRate {
		sampleRate = ctx.SampleRate()
	}
	return &Synth{
		ctx:   ctx,
		rate:  beep.SampleRate(sampleRate),
		cache: make(map[Tone][]byte, len(toneSpecs)),
	}, nil
}

// PlayTone implements AudioSink. Unknown tones and a not-yet-ready context
// are ignored.
func (s *Synth) PlayTone(t Tone) {
	if !s.ctx.IsReady() {
		return
	}
	pcm, ok := s.cache[t]
	if !ok {
		spec, known := toneSpecs[t]
		if !known {
			return
		}
		pcm = renderTone(spec, s.rate)
		s.cache[t] = pcm
	}
	s.ctx.NewPlayerFromBytes(pcm).Play()
}

// renderTone synthesizes spec into interleaved stereo signed 16-bit
// little-endian PCM.
func renderTone(spec ToneSpec, rate beep.SampleRate) []byte {
	n := rate.N(spec.Duration)
	var s beep.Streamer = beep.Take(n, &sine{freq: spec.Frequency, rate: rate})
	s = &effects.Gain{Streamer: s, Gain: spec.Gain - 1}

	out := make([]byte, 0, n*audioFrameBytes)
	buf := make([][2]float64, 512)
	for {
		got, ok := s.Stream(buf)
		for i := 0; i < got; i++ {
			for ch := 0; ch < audioChannels; ch++ {
				v := int16(math.Max(-1, math.Min(1, buf[i][ch])) * math.MaxInt16)
				out = append(out, byte(v), byte(v>>8))
			}
		}
		if !ok || got == 0 {
			break
		}
	}
	return out
}

// sine is an endless sine oscillator.
type sine struct {
	freq  float64
	phase float64
	rate  beep.SampleRate
}

func (o *sine) Stream(samples [][2]float64) (n int, ok bool) {
	step := o.freq / float64(o.rate)
	for i := range samples {
		v := math.Sin(2 * math.Pi * o.phase)
		samples[i][0] = v
		samples[i][1] = v
		o.phase += step
		o.phase -= math.Floor(o.phase)
	}
	return len(samples), true
}

func (o *sine) Err() error { return nil }

// OpenAudio returns a Synth, or NopAudio when the device cannot be opened.
// Sound is cosmetic; the failure is logged once and otherwise ignored.
func OpenAudio(enabled bool, sampleRate int) AudioSink {
	if !enabled {
		return NopAudio{}
	}
	synth, err := NewSynth(sampleRate)
	if err != nil {
		log.Printf("[hotloop] audio disabled: %v", err)
		return NopAudio{}
	}
	return synth
}
