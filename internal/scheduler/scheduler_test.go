package scheduler

import (
	"context"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"TradingDashboard/internal/collector"
	"TradingDashboard/internal/dashboard"
	"TradingDashboard/internal/recorder"
	"TradingDashboard/internal/render"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureRecorder struct {
	runs []*recorder.RunRecord
}

func (c *captureRecorder) RecordRun(rec *recorder.RunRecord) error {
	c.runs = append(c.runs, rec)
	return nil
}
func (c *captureRecorder) Close() error { return nil }

func newTestScheduler(t *testing.T, pngPath string) (*Scheduler, *captureRecorder) {
	t.Helper()
	gen := collector.NewSyntheticGenerator(5)
	b := dashboard.NewBuilder(gen, gen, dashboard.DefaultOptions())
	rec := &captureRecorder{}
	return NewScheduler(context.Background(), b, rec, pngPath, render.Options{Width: 320, Height: 240}), rec
}

func TestRunNow_RecordsAndWritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "dashboard.png")
	s, rec := newTestScheduler(t, path)

	snap, err := s.RunNow()
	require.NoError(t, err)
	require.True(t, snap.Fitted())
	assert.Same(t, snap, s.Last())

	require.Len(t, rec.runs, 1)
	assert.Equal(t, "synthetic", rec.runs[0].OHLCSource)
	assert.Equal(t, 100, rec.runs[0].OHLCPoints)
	assert.NotNil(t, rec.runs[0].Primary)
	assert.NotNil(t, rec.runs[0].Secondary)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 320, img.Bounds().Dx())
}

func TestRegister_RejectsBadCronExpression(t *testing.T) {
	s, _ := newTestScheduler(t, "")
	assert.Error(t, s.Register("not a cron"))
	assert.NoError(t, s.Register("0 */5 * * * *"))
	s.Start()
	s.Stop()
}

// overlapRecorder counts RecordRun calls that run at the same time.
type overlapRecorder struct {
	active  atomic.Int32
	overlap atomic.Bool
	calls   atomic.Int32
}

func (o *overlapRecorder) RecordRun(*recorder.RunRecord) error {
	if o.active.Add(1) > 1 {
		o.overlap.Store(true)
	}
	time.Sleep(5 * time.Millisecond)
	o.active.Add(-1)
	o.calls.Add(1)
	return nil
}
func (o *overlapRecorder) Close() error { return nil }

func TestRefresh_Serialized(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard.png")
	gen := collector.NewSyntheticGenerator(5)
	rec := &overlapRecorder{}
	s := NewScheduler(context.Background(), dashboard.NewBuilder(gen, gen, dashboard.DefaultOptions()), rec, path,
		render.Options{Width: 160, Height: 120})

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.RunNow()
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 4, rec.calls.Load())
	assert.False(t, rec.overlap.Load())
	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestStop_WaitsForRunAsync(t *testing.T) {
	s, rec := newTestScheduler(t, "")
	s.Start()
	s.RunAsync()
	s.Stop()

	require.Len(t, rec.runs, 1)
	assert.NotNil(t, s.Last())
}
