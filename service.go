package ursa

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/viant/x"

	"github.com/ursalint/ursa/extension"
	"github.com/ursalint/ursa/internal/clock"
	"github.com/ursalint/ursa/internal/idgen"
	"github.com/ursalint/ursa/logging"
	"github.com/ursalint/ursa/model/bear"
	"github.com/ursalint/ursa/model/result"
	"github.com/ursalint/ursa/model/section"
	"github.com/ursalint/ursa/policy"
	"github.com/ursalint/ursa/progress"
	daosection "github.com/ursalint/ursa/service/dao/section"
	"github.com/ursalint/ursa/service/patch"
	"github.com/ursalint/ursa/service/runner"
	"github.com/ursalint/ursa/service/source"
)

// Service is the high-level facade over the analysis engine. It owns the
// bear registry, loads section definitions and runs them through the worker
// pool, streaming filtered findings to the configured presenter.
type Service struct {
	registry     *extension.Registry
	dao          *daosection.Service
	collector    *source.Collector
	sink         logging.Sink
	presenter    runner.Presenter
	patcher      *patch.Service
	applyPatches bool
	onProgress   func(progress.Progress)

	extensionTypes []*x.Type
	jobs           int
	pollTimeout    time.Duration
}

// New creates a service with the supplied options applied over defaults.
func New(options ...Option) *Service {
	s := &Service{}
	s.init(options)
	return s
}

func (s *Service) init(options []Option) {
	for _, option := range options {
		option(s)
	}
	if s.registry == nil {
		s.registry = extension.NewRegistry(s.extensionTypes...)
	}
	if s.dao == nil {
		s.dao = daosection.New()
	}
	if s.collector == nil {
		s.collector = source.New()
	}
	if s.sink == nil {
		s.sink = logging.NewZapSink(nil)
	}
	if s.patcher == nil {
		s.patcher = patch.New()
	}
}

// Registry exposes the bear registry so callers can register bears and
// payload types after construction.
func (s *Service) Registry() *extension.Registry {
	return s.registry
}

// RegisterBears adds the supplied descriptors to the registry.
func (s *Service) RegisterBears(descriptors ...*bear.Descriptor) {
	for _, descriptor := range descriptors {
		s.registry.Register(descriptor)
	}
}

// LoadSections reads section definitions from the given URL.
func (s *Service) LoadSections(ctx context.Context, URL string) ([]*section.Section, error) {
	return s.dao.Load(ctx, URL)
}

// Run executes one section and returns its output. The section's bears
// setting selects which registered bears run; an empty setting runs all of
// them. A policy embedded in the context narrows the selection further.
func (s *Service) Run(ctx context.Context, sec *section.Section) (*runner.Output, error) {
	runID := idgen.New()
	ctx, _ = progress.WithNewTracker(ctx, runID, sec.Name, s.onProgress)

	local, global := s.sectionBears(ctx, sec)
	if len(local)+len(global) == 0 {
		s.warn(fmt.Sprintf("No bears to run in section %v.", sec.Name))
	}

	var mu sync.Mutex
	var patchable []*result.Result
	present := s.presenter
	if s.applyPatches {
		inner := present
		present = func(results []*result.Result, files bear.FileTable, diffs map[string]string) {
			mu.Lock()
			for _, res := range results {
				if len(res.Diffs) > 0 {
					patchable = append(patchable, res)
				}
			}
			mu.Unlock()
			if inner != nil {
				inner(results, files, diffs)
			}
		}
	}

	var options []runner.Option
	if s.collector != nil {
		options = append(options, runner.WithCollector(s.collector))
	}
	if s.jobs > 0 {
		options = append(options, runner.WithJobCount(s.jobs))
	}
	if s.pollTimeout > 0 {
		options = append(options, runner.WithPollTimeout(s.pollTimeout))
	}

	output, err := runner.ExecuteSection(ctx, sec, local, global, present, s.sink, options...)
	if err != nil {
		return nil, err
	}

	if s.applyPatches && len(patchable) > 0 {
		outcome, applyErr := s.patcher.Apply(ctx, patchable)
		if applyErr != nil {
			s.warn(fmt.Sprintf("Failed to apply suggestions: %v", applyErr))
		}
		if outcome != nil {
			for _, path := range outcome.Patched {
				s.info(fmt.Sprintf("Applied suggestion to %v, backup written to %v%v.", path, path, patch.BackupSuffix))
			}
		}
	}
	return output, nil
}

// RunAll executes every section in order and reports whether any section
// produced findings. Execution stops at the first hard error.
func (s *Service) RunAll(ctx context.Context, sections []*section.Section) (bool, error) {
	hasResults := false
	for _, sec := range sections {
		output, err := s.Run(ctx, sec)
		if err != nil {
			return hasResults, err
		}
		hasResults = hasResults || output.HasResults
	}
	return hasResults, nil
}

// sectionBears resolves the section's bear selection against the registry
// and splits the survivors into local and global descriptors.
func (s *Service) sectionBears(ctx context.Context, sec *section.Section) (local, global []*bear.Descriptor) {
	var candidates []*bear.Descriptor
	names := sec.PathList("bears")
	if len(names) == 0 {
		allLocal, allGlobal := s.registry.Descriptors()
		candidates = append(append(candidates, allLocal...), allGlobal...)
	} else {
		for _, name := range names {
			descriptor := s.registry.Lookup(name)
			if descriptor == nil {
				s.warn(fmt.Sprintf("No bear matching %q was found.", name))
				continue
			}
			candidates = append(candidates, descriptor)
		}
	}

	selection := policy.FromContext(ctx)
	for _, descriptor := range candidates {
		if !selection.IsAllowed(descriptor.Name) {
			continue
		}
		if descriptor.IsLocal() {
			local = append(local, descriptor)
		} else {
			global = append(global, descriptor)
		}
	}
	return local, global
}

func (s *Service) warn(message string) {
	s.log(logging.LevelWarning, message)
}

func (s *Service) info(message string) {
	s.log(logging.LevelInfo, message)
}

func (s *Service) log(level logging.Level, message string) {
	if s.sink == nil {
		return
	}
	s.sink.Log(logging.Entry{Level: level, Message: message, Time: clock.Now()})
}
