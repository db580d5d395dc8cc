package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/pulsefield/parameter"
)

// envelope applies a linear attack/release to a finite streamer
type envelope struct {
	s       beep.Streamer
	pos     int
	total   int
	attack  int
	release int
}

func newEnvelope(s beep.Streamer, total, attack, release int) *envelope {
	return &envelope{s: s, total: total, attack: attack, release: release}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.s.Stream(samples)
	releaseStart := max(e.total-e.release, e.attack)
	for i := range samples[:n] {
		vol := 1.0
		if e.pos < e.attack {
			vol = float64(e.pos) / float64(e.attack)
		} else if e.pos >= releaseStart && e.release > 0 {
			vol = float64(e.total-e.pos) / float64(e.release)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error {
	return e.s.Err()
}

// synthesizeTone renders one enveloped sine note at unity gain
func synthesizeTone(sr beep.SampleRate, freq float64, d, attack, release time.Duration) (*beep.Buffer, error) {
	sine, err := generators.SineTone(sr, freq)
	if err != nil {
		return nil, fmt.Errorf("sine %g Hz: %w", freq, err)
	}
	total := sr.N(d)
	env := newEnvelope(beep.Take(total, sine), total, sr.N(attack), sr.N(release))

	buf := beep.NewBuffer(beep.Format{SampleRate: sr, NumChannels: 2, Precision: 2})
	buf.Append(env)
	return buf, nil
}

// noteTone renders the tone for palette index note
func noteTone(sr beep.SampleRate, note int) (*beep.Buffer, error) {
	if note < 0 || note >= parameter.NoteCount {
		return nil, fmt.Errorf("%w: %d", ErrUnknownNote, note)
	}
	return synthesizeTone(sr, parameter.ToneFrequencies[note], parameter.ToneDuration, parameter.ToneAttack, parameter.ToneRelease)
}
