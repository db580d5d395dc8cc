package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/pulsefield/spatial"
	"github.com/lixenwraith/pulsefield/vmath"
)

func TestRegistryPlace(t *testing.T) {
	f, _, _, _ := NewTestField()

	s1, err := f.Spots.Place(vmath.Pt(0, 0), 2)
	require.NoError(t, err)
	assert.Equal(t, SpotActive, s1.State)
	assert.True(t, s1.LastFire.IsZero())

	s2, err := f.Spots.Place(vmath.Pt(50, 0), 5)
	require.NoError(t, err)
	assert.NotEqual(t, s1.ID, s2.ID)

	assert.Equal(t, 2, f.Spots.Len())
	assert.Equal(t, 2, f.Spots.ActiveCount())
	assert.Equal(t, 2, f.Index.Len())

	_, err = f.Spots.Place(vmath.Pt(0, 0), 1)
	assert.ErrorIs(t, err, ErrOccupied)

	_, err = f.Spots.Place(vmath.Pt(1, 1), 6)
	assert.ErrorIs(t, err, ErrInvalidNote)
	_, err = f.Spots.Place(vmath.Pt(1, 1), -1)
	assert.ErrorIs(t, err, ErrInvalidNote)

	assert.Equal(t, 2, f.Spots.Len(), "failed places must not register")
}

func TestRegistryPlaceClearance(t *testing.T) {
	tuning := DefaultTuning()
	tuning.PlaceClearance = 20 * 20
	f := NewField(tuning, Collaborators{Clock: NewManualClock(TestEpoch)})

	_, err := f.Spots.Place(vmath.Pt(0, 0), 0)
	require.NoError(t, err)
	_, err = f.Spots.Place(vmath.Pt(10, 10), 0)
	assert.ErrorIs(t, err, ErrOccupied)
	_, err = f.Spots.Place(vmath.Pt(30, 0), 0)
	assert.NoError(t, err)
}

func TestRegistryDragLifecycle(t *testing.T) {
	f, _, _, _ := NewTestField()
	s, err := f.Spots.Place(vmath.Pt(10, 10), 0)
	require.NoError(t, err)

	require.NoError(t, f.Spots.BeginDrag(s.ID))
	got, ok := f.Spots.Get(s.ID)
	require.True(t, ok)
	assert.Equal(t, SpotDragging, got.State)
	assert.Equal(t, 0, f.Index.Len())
	assert.Equal(t, 1, f.Spots.Len(), "dragging spot keeps its identity")

	assert.ErrorIs(t, f.Spots.BeginDrag(s.ID), ErrInvalidState)

	require.NoError(t, f.Spots.EndDrag(s.ID, vmath.Pt(40, 40), true))
	got, _ = f.Spots.Get(s.ID)
	assert.Equal(t, SpotActive, got.State)
	assert.Equal(t, vmath.Pt(40, 40), got.Position)
	assert.Equal(t, 1, f.Index.Len())

	hits := f.Index.Nearest(vmath.Pt(40, 40), 1, 0)
	require.Len(t, hits, 1)
	assert.Equal(t, s.ID, hits[0].Payload)

	assert.ErrorIs(t, f.Spots.EndDrag(s.ID, vmath.Pt(0, 0), true), ErrInvalidState)
}

func TestRegistryDropOntoOccupiedReturns(t *testing.T) {
	f, _, _, _ := NewTestField()
	_, err := f.Spots.Place(vmath.Pt(0, 0), 0)
	require.NoError(t, err)
	b, err := f.Spots.Place(vmath.Pt(50, 0), 1)
	require.NoError(t, err)

	require.NoError(t, f.Spots.BeginDrag(b.ID))
	assert.ErrorIs(t, f.Spots.EndDrag(b.ID, vmath.Pt(0, 0), true), ErrOccupied)

	got, ok := f.Spots.Get(b.ID)
	require.True(t, ok)
	assert.Equal(t, SpotActive, got.State, "blocked drop leaves the spot in play")
	assert.Equal(t, vmath.Pt(50, 0), got.Position)
	assert.Equal(t, 2, f.Index.Len())
	hits := f.Index.Nearest(vmath.Pt(50, 0), 1, 0)
	require.Len(t, hits, 1)
	assert.Equal(t, b.ID, hits[0].Payload)

	// Clearance applies to drops as it does to placement
	tuning := DefaultTuning()
	tuning.PlaceClearance = 400
	f = NewField(tuning, Collaborators{Clock: NewManualClock(TestEpoch)})
	_, err = f.Spots.Place(vmath.Pt(0, 0), 0)
	require.NoError(t, err)
	b, err = f.Spots.Place(vmath.Pt(100, 0), 1)
	require.NoError(t, err)
	require.NoError(t, f.Spots.BeginDrag(b.ID))
	assert.ErrorIs(t, f.Spots.EndDrag(b.ID, vmath.Pt(15, 0), true), ErrOccupied)
	got, _ = f.Spots.Get(b.ID)
	assert.Equal(t, vmath.Pt(100, 0), got.Position)

	require.NoError(t, f.Spots.BeginDrag(b.ID))
	require.NoError(t, f.Spots.EndDrag(b.ID, vmath.Pt(25, 0), true))
	got, _ = f.Spots.Get(b.ID)
	assert.Equal(t, vmath.Pt(25, 0), got.Position)
}

func TestRegistryDragWithoutMoveDeletes(t *testing.T) {
	f, _, _, _ := NewTestField()
	s, err := f.Spots.Place(vmath.Pt(10, 10), 0)
	require.NoError(t, err)

	require.NoError(t, f.Spots.BeginDrag(s.ID))
	require.NoError(t, f.Spots.EndDrag(s.ID, vmath.Pt(10, 10), false))

	_, ok := f.Spots.Get(s.ID)
	assert.False(t, ok)
	assert.Equal(t, 0, f.Spots.Len())
	assert.Equal(t, 0, f.Index.Len())

	assert.ErrorIs(t, f.Spots.BeginDrag(s.ID), ErrUnknownSpot)
	_, err = f.Spots.Fire(s.ID, 1)
	assert.ErrorIs(t, err, ErrUnknownSpot)
	assert.False(t, f.Spots.CooldownElapsed(s.ID))
}

func TestRegistryFire(t *testing.T) {
	f, r, a, clock := NewTestField()
	s, err := f.Spots.Place(vmath.Pt(5, 7), 3)
	require.NoError(t, err)

	p, err := f.Spots.Fire(s.ID, 1.0)
	require.NoError(t, err)
	assert.Equal(t, vmath.Pt(5, 7), p.Origin)
	assert.Equal(t, Note(3), p.Note)
	assert.Equal(t, 1.0, p.Strength)
	assert.Equal(t, 1.0, p.Weight)
	assert.Equal(t, f.Tuning().SpotRadius, p.Radius)

	got, _ := f.Spots.Get(s.ID)
	assert.Equal(t, clock.Now(), got.LastFire)

	require.Len(t, r.Shapes, 1)
	require.Len(t, a.Plays, 1)
	assert.Equal(t, Note(3), a.Plays[0].Note)
	assert.InDelta(t, 0.2, a.Plays[0].Volume, 1e-12)

	for _, bad := range []float64{0, -0.5, 1.01} {
		_, err := f.Spots.Fire(s.ID, bad)
		assert.ErrorIs(t, err, ErrInvalidStrength, "strength %v", bad)
	}

	require.NoError(t, f.Spots.BeginDrag(s.ID))
	_, err = f.Spots.Fire(s.ID, 1)
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Equal(t, 1, f.Pulses.Len())
}

func TestRegistryCooldownElapsed(t *testing.T) {
	f, _, _, clock := NewTestField()
	s, err := f.Spots.Place(vmath.Pt(0, 0), 0)
	require.NoError(t, err)

	assert.True(t, f.Spots.CooldownElapsed(s.ID), "never-fired spot is eligible")

	_, err = f.Spots.Fire(s.ID, 1)
	require.NoError(t, err)
	assert.False(t, f.Spots.CooldownElapsed(s.ID))

	clock.Advance(1000 * time.Millisecond)
	assert.False(t, f.Spots.CooldownElapsed(s.ID), "exactly the cooldown is not enough")

	clock.Advance(time.Millisecond)
	assert.True(t, f.Spots.CooldownElapsed(s.ID))
}

func TestRegistrySpotAtSkipsDragging(t *testing.T) {
	f, _, _, _ := NewTestField()
	a, _ := f.Spots.Place(vmath.Pt(0, 0), 0)
	b, _ := f.Spots.Place(vmath.Pt(8, 0), 0)

	id, ok := f.Spots.SpotAt(vmath.Pt(1, 0), 10)
	require.True(t, ok)
	assert.Equal(t, a.ID, id)

	require.NoError(t, f.Spots.BeginDrag(a.ID))
	id, ok = f.Spots.SpotAt(vmath.Pt(1, 0), 10)
	require.True(t, ok)
	assert.Equal(t, b.ID, id)

	_, ok = f.Spots.SpotAt(vmath.Pt(100, 100), 10)
	assert.False(t, ok)
}

func TestRegistrySpotsSnapshotOrdered(t *testing.T) {
	f, _, _, _ := NewTestField()
	for i := 0; i < 5; i++ {
		_, err := f.Spots.Place(vmath.Pt(float64(i*20), 0), Note(i))
		require.NoError(t, err)
	}
	spots := f.Spots.Spots()
	require.Len(t, spots, 5)
	for i := 1; i < len(spots); i++ {
		assert.Less(t, spots[i-1].ID, spots[i].ID)
	}

	// Snapshot is a copy
	spots[0].Position = vmath.Pt(999, 999)
	got, _ := f.Spots.Get(spots[0].ID)
	assert.Equal(t, vmath.Pt(0, 0), got.Position)

	f.Spots.Clear()
	assert.Equal(t, 0, f.Spots.Len())
	assert.Equal(t, 0, f.Index.Len())
}

// TestRegistryIndexPairingViolation checks an index failure aborts the operation
// without touching spot state
func TestRegistryIndexPairingViolation(t *testing.T) {
	f, _, _, _ := NewTestField()
	s, err := f.Spots.Place(vmath.Pt(0, 0), 0)
	require.NoError(t, err)

	// Pull the point out from under the registry
	require.NoError(t, f.Index.Remove(vmath.Pt(0, 0), s.ID))

	err = f.Spots.BeginDrag(s.ID)
	assert.ErrorIs(t, err, spatial.ErrNotFound)
	got, _ := f.Spots.Get(s.ID)
	assert.Equal(t, SpotActive, got.State)
}
