// Package reconciler runs realm reconciliation against a state backend.
//
// # Overview
//
// A Manager performs runs: it loads the realm documents from the configured
// sources, decodes them, opens a unit of work on the backend, forms every
// realm and commits the unit of work. A preview run and a failed run roll the
// unit of work back, so a failure never leaves a partial state behind.
//
// # Watch Mode
//
// In watch mode the Manager runs once and then again whenever a
// ChangeDetector reports a change:
//
//   - FilesystemDetector uses fsnotify on the configured files and directories
//   - ConfigMapDetector uses a client-go informer on the source ConfigMap
//
// Both detectors debounce rapid changes into one event.
//
// Example usage:
//
//	manager := reconciler.NewManager(reconciler.ManagerConfig{
//	    Sources:   []source.Source{&source.Files{Paths: paths}},
//	    Backend:   store,
//	    Options:   former.Options{Mode: changes.Commit},
//	    Detectors: []reconciler.ChangeDetector{reconciler.NewFilesystemDetector(paths, 0)},
//	})
//	err := manager.Watch(ctx, func(report *former.Report, err error) { ... })
//
// # Metrics
//
// Metrics counts runs and touched resources in a private Prometheus registry
// and can write it to a node-exporter textfile after every run.
package reconciler
