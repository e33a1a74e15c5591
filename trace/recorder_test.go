package trace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/portal/engine"
)

func holdAndRelease(t *testing.T, r *Recorder, hold, release int) {
	t.Helper()
	e := engine.New(engine.DefaultConfig(), nil)
	e.Input().Resize(1280, 720)

	e.Input().Press(200, 200)
	for i := 0; i < hold; i++ {
		r.Record(e.Step(1.0 / 60.0))
	}
	e.Input().Release()
	for i := 0; i < release; i++ {
		r.Record(e.Step(1.0 / 60.0))
	}
}

func TestRecorderCapturesCompletion(t *testing.T) {
	r := NewRecorder(1.2)
	holdAndRelease(t, r, 300, 60)

	require.Equal(t, 360, r.Len())
	completions := r.Completions()
	require.Len(t, completions, 1)
	assert.InDelta(t, 4.0, completions[0].Time, 0.05)
	assert.GreaterOrEqual(t, completions[0].Progress, 1.2)

	samples := r.Samples()
	assert.True(t, samples[0].Engaging)
	assert.False(t, samples[len(samples)-1].Engaging)
	assert.Zero(t, samples[len(samples)-1].Progress, "progress should drain after release")
}

func TestSummary(t *testing.T) {
	r := NewRecorder(1.2)
	assert.Equal(t, Summary{}, r.Summary())

	holdAndRelease(t, r, 300, 100)
	s := r.Summary()
	assert.Equal(t, 400, s.Frames)
	assert.Equal(t, 1, s.Completions)
	assert.InDelta(t, 1.5, s.PeakProgress, 1e-9)
	assert.InDelta(t, 0.75, s.EngagedFraction, 1e-9)
	assert.GreaterOrEqual(t, s.PeakDisplacement, s.MeanDisplacement)
}

func TestRecorderReset(t *testing.T) {
	r := NewRecorder(1.2)
	holdAndRelease(t, r, 10, 0)
	require.Equal(t, 10, r.Len())

	r.Reset()
	assert.Zero(t, r.Len())
	assert.Empty(t, r.Completions())
}

func TestSaveEmptyFails(t *testing.T) {
	r := NewRecorder(1.2)
	err := r.Save(filepath.Join(t.TempDir(), "empty.png"))
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestSaveWritesChart(t *testing.T) {
	r := NewRecorder(1.2)
	holdAndRelease(t, r, 300, 30)

	path := filepath.Join(t.TempDir(), "trace.png")
	require.NoError(t, r.Save(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
