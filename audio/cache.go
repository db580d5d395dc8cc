package audio

import (
	"sync"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/pulsefield/parameter"
)

// toneCache stores pre-rendered unity-gain note buffers
type toneCache struct {
	mu    sync.RWMutex
	sr    beep.SampleRate
	store [parameter.NoteCount]*beep.Buffer
}

func newToneCache(sr beep.SampleRate) *toneCache {
	return &toneCache{sr: sr}
}

// get returns the cached buffer or renders it on demand
func (c *toneCache) get(note int) (*beep.Buffer, error) {
	if note < 0 || note >= parameter.NoteCount {
		return nil, ErrUnknownNote
	}

	c.mu.RLock()
	buf := c.store[note]
	c.mu.RUnlock()
	if buf != nil {
		return buf, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring write lock
	if c.store[note] != nil {
		return c.store[note], nil
	}

	buf, err := noteTone(c.sr, note)
	if err != nil {
		return nil, err
	}
	c.store[note] = buf
	return buf, nil
}

// preload renders every note so the first pulse of each plays without delay
func (c *toneCache) preload() error {
	for n := range parameter.NoteCount {
		if _, err := c.get(n); err != nil {
			return err
		}
	}
	return nil
}
