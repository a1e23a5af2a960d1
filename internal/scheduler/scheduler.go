package scheduler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"TradingDashboard/internal/dashboard"
	"TradingDashboard/internal/recorder"
	"TradingDashboard/internal/render"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// Scheduler rebuilds the dashboard on a cron schedule.
type Scheduler struct {
	Cron     *cron.Cron
	Builder  *dashboard.Builder
	Recorder recorder.Recorder
	PNGPath  string
	Render   render.Options
	Ctx      context.Context

	mu     sync.Mutex
	last   *dashboard.Snapshot
	runMu  sync.Mutex // one refresh at a time; they share the png tmp path and the recorder
	wg     sync.WaitGroup
	logger *log.Entry
}

// NewScheduler creates a new Scheduler. pngPath may be empty to skip image output.
func NewScheduler(ctx context.Context, b *dashboard.Builder, rec recorder.Recorder, pngPath string, opts render.Options) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Builder:  b,
		Recorder: rec,
		PNGPath:  pngPath,
		Render:   opts,
		Ctx:      ctx,
		logger:   log.WithField("component", "scheduler"),
	}
}

// Register adds the refresh task.
func (s *Scheduler) Register(refreshCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.logger.Info("scheduler started")
}

// Stop stops the cron scheduler and waits for running refreshes, including
// those started with RunAsync, to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.wg.Wait()
	s.logger.Info("scheduler stopped")
}

// RunNow executes one refresh immediately and returns its snapshot.
func (s *Scheduler) RunNow() (*dashboard.Snapshot, error) {
	return s.refresh()
}

// RunAsync starts one refresh in the background. Stop waits for it.
func (s *Scheduler) RunAsync() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.refreshTask()
	}()
}

// Last returns the snapshot of the most recent refresh, or nil.
func (s *Scheduler) Last() *dashboard.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

func (s *Scheduler) refreshTask() {
	if _, err := s.refresh(); err != nil {
		s.logger.Errorf("refresh: %v", err)
	}
}

func (s *Scheduler) refresh() (*dashboard.Snapshot, error) {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	s.logger.Info("refreshing dashboard")
	snap, buildErr := s.Builder.Run(s.Ctx)
	if snap == nil {
		return nil, buildErr
	}

	s.mu.Lock()
	s.last = snap
	s.mu.Unlock()

	rec := recorder.FromSnapshot(snap, s.Builder.OHLC.Name(), s.Builder.Trace.Name(), s.Builder.Options.MarginFraction, buildErr)
	if err := s.Recorder.RecordRun(rec); err != nil {
		s.logger.Errorf("record run: %v", err)
	}

	if s.PNGPath != "" {
		if err := s.writePNG(snap); err != nil {
			s.logger.Errorf("write png: %v", err)
		}
	}
	return snap, buildErr
}

func (s *Scheduler) writePNG(snap *dashboard.Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(s.PNGPath), 0755); err != nil {
		return err
	}
	tmp := s.PNGPath + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := render.PNG(f, snap.Dashboard, s.Render); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, s.PNGPath)
}
