package ursa

import (
	"time"

	"github.com/viant/x"

	"github.com/ursalint/ursa/extension"
	"github.com/ursalint/ursa/logging"
	"github.com/ursalint/ursa/progress"
	daosection "github.com/ursalint/ursa/service/dao/section"
	"github.com/ursalint/ursa/service/runner"
	"github.com/ursalint/ursa/service/source"
)

// Option customizes the service facade.
type Option func(s *Service)

// WithRegistry sets the bear registry.
func WithRegistry(registry *extension.Registry) Option {
	return func(s *Service) { s.registry = registry }
}

// WithExtensionTypes pre-registers payload types with the registry.
func WithExtensionTypes(types ...*x.Type) Option {
	return func(s *Service) { s.extensionTypes = types }
}

// WithSink sets the log sink.
func WithSink(sink logging.Sink) Option {
	return func(s *Service) { s.sink = sink }
}

// WithPresenter sets the presenter every filtered batch is streamed to.
func WithPresenter(presenter runner.Presenter) Option {
	return func(s *Service) { s.presenter = presenter }
}

// WithCollector sets the file collector.
func WithCollector(collector *source.Collector) Option {
	return func(s *Service) { s.collector = collector }
}

// WithSectionDAO sets the section loader.
func WithSectionDAO(dao *daosection.Service) Option {
	return func(s *Service) { s.dao = dao }
}

// WithApplyPatches enables in-place application of fix suggestions after a
// run, with .orig backups.
func WithApplyPatches(apply bool) Option {
	return func(s *Service) { s.applyPatches = apply }
}

// WithJobs overrides the worker count for every run regardless of the
// section's jobs setting.
func WithJobs(jobs int) Option {
	return func(s *Service) { s.jobs = jobs }
}

// WithPollTimeout overrides the bounded queue-poll timeout.
func WithPollTimeout(timeout time.Duration) Option {
	return func(s *Service) { s.pollTimeout = timeout }
}

// WithProgressHandler registers a callback invoked after every progress
// counter update of a run.
func WithProgressHandler(handler func(progress.Progress)) Option {
	return func(s *Service) { s.onProgress = handler }
}
