package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines playback latency
	AudioBufferDuration = 50 * time.Millisecond
)

// Pulse Tones
const (
	// SoundStrength scales pulse strength to playback volume
	SoundStrength = 0.2

	// ToneDuration is the length of one synthesized note
	ToneDuration = 900 * time.Millisecond

	// ToneAttack and ToneRelease shape the note envelope
	ToneAttack  = 8 * time.Millisecond
	ToneRelease = 600 * time.Millisecond

	// MaxVoices caps simultaneously sounding tones, new ones are refused past it
	MaxVoices = 24
)

// ToneFrequencies maps each note to a pitch, a major pentatonic run plus octave (Hz)
var ToneFrequencies = [NoteCount]float64{
	261.63, // C4
	293.66, // D4
	329.63, // E4
	392.00, // G4
	440.00, // A4
	523.25, // C5
}
