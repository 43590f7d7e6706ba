package reconciler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"realmform/internal/changes"
	"realmform/internal/definition"
	"realmform/internal/former"
	"realmform/internal/source"
	"realmform/pkg/logging"
)

// ErrNoDocuments is returned when the sources yield no realm document.
var ErrNoDocuments = errors.New("sources contain no realm documents")

// ManagerConfig configures a Manager.
type ManagerConfig struct {
	// Sources yield the realm documents, concatenated in order.
	Sources []source.Source

	// Templater renders documents before decoding when set.
	Templater *source.Templater

	// Backend opens the unit of work of each run.
	Backend Backend

	// Formers defaults to former.NewFormers().
	Formers *former.Formers

	// Options are passed to every run.
	Options former.Options

	// Metrics records run metrics when set.
	Metrics *Metrics

	// MetricsTextfile is rewritten after every run when set.
	MetricsTextfile string

	// Detectors trigger runs in watch mode.
	Detectors []ChangeDetector
}

// Manager coordinates reconciliation runs.
//
// A run loads and decodes the sources, opens a unit of work, forms every
// realm and commits, or rolls back in preview mode and on failure. Runs are
// serialized.
type Manager struct {
	mu     sync.Mutex
	config ManagerConfig
}

// NewManager creates a new reconciliation manager.
func NewManager(config ManagerConfig) *Manager {
	if config.Formers == nil {
		config.Formers = former.NewFormers()
	}
	if config.Options.AdminRealm == "" {
		config.Options.AdminRealm = "master"
	}
	return &Manager{config: config}
}

// Run performs one reconciliation run. The report is returned together with
// a ReconcileError when forming failed part way.
func (m *Manager) Run(ctx context.Context) (*former.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	defer logging.StartRun(uuid.NewString()[:8])()

	start := time.Now()
	report, err := m.run(ctx)
	m.record(report, err, time.Since(start))
	return report, err
}

func (m *Manager) run(ctx context.Context) (*former.Report, error) {
	opts := m.config.Options

	docs, err := source.Load(ctx, m.config.Sources, m.config.Templater)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, ErrNoDocuments
	}
	doc, err := definition.Decode(opts.AdminRealm, source.Data(docs)...)
	if err != nil {
		return nil, err
	}

	work, err := m.config.Backend.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open unit of work: %w", err)
	}
	defer work.Rollback()

	report, err := m.config.Formers.Run(work.Session(), doc, opts)
	if err != nil {
		logging.Error("ReconcileManager", err, "Run failed, rolling back")
		return report, &ReconcileError{Mode: opts.Mode, Err: err}
	}

	if opts.Mode == changes.Preview {
		logging.Info("ReconcileManager", "Preview finished, nothing was written")
		return report, nil
	}
	if err := work.Commit(); err != nil {
		return report, &ReconcileError{Mode: opts.Mode, Err: err}
	}
	logging.Info("ReconcileManager", "Run committed: %d created, %d updated, %d deleted",
		report.Count(former.OutcomeCreated), report.Count(former.OutcomeUpdated), report.Count(former.OutcomeDeleted))
	return report, nil
}

func (m *Manager) record(report *former.Report, err error, duration time.Duration) {
	if m.config.Metrics == nil {
		return
	}
	m.config.Metrics.RecordRun(m.config.Options.Mode, report, err, duration)
	if m.config.MetricsTextfile == "" {
		return
	}
	if err := m.config.Metrics.WriteTextfile(m.config.MetricsTextfile); err != nil {
		logging.Warn("ReconcileManager", "Failed to write metrics to %s: %v", m.config.MetricsTextfile, err)
	}
}

// Watch runs once and then again after every change a detector reports,
// until ctx is done. handle receives the outcome of every run; failed runs
// do not end the watch.
func (m *Manager) Watch(ctx context.Context, handle func(*former.Report, error)) error {
	if len(m.config.Detectors) == 0 {
		return errors.New("watch mode requires at least one change detector")
	}

	events := make(chan ChangeEvent, 16)
	var started []ChangeDetector
	defer func() {
		for _, d := range started {
			if err := d.Stop(); err != nil {
				logging.Warn("ReconcileManager", "Failed to stop %s detector: %v", d.GetSource(), err)
			}
		}
	}()
	for _, d := range m.config.Detectors {
		if err := d.Start(ctx, events); err != nil {
			return fmt.Errorf("failed to start %s detector: %w", d.GetSource(), err)
		}
		started = append(started, d)
	}

	handle(m.Run(ctx))
	for {
		select {
		case <-ctx.Done():
			logging.Info("ReconcileManager", "Watch stopped")
			return nil
		case event := <-events:
			logging.Info("ReconcileManager", "%s change (%s) in %s, reconciling", event.Source, event.Operation, event.Name)
			handle(m.Run(ctx))
		}
	}
}
