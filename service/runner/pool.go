package runner

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ursalint/ursa/internal/clock"
	"github.com/ursalint/ursa/logging"
	"github.com/ursalint/ursa/model/bear"
	"github.com/ursalint/ursa/model/section"
	"github.com/ursalint/ursa/service/messaging/memory"
	"github.com/ursalint/ursa/service/source"
	"github.com/ursalint/ursa/service/store"
)

// DefaultPollTimeout bounds every queue poll in workers and the scheduler so
// that liveness can be re-checked between polls.
const DefaultPollTimeout = 100 * time.Millisecond

// Pool owns everything the workers share: the file table, the work queues,
// the control and message queues and the two result stores. It is built
// once per section execution and discarded afterwards.
type Pool struct {
	section *section.Section
	sink    logging.Sink

	collector   *source.Collector
	pollTimeout time.Duration
	jobCount    int

	// Files is the shared file table, read-only once the pool is built.
	Files bear.FileTable

	localBears  []bear.Local
	globalBears []bear.Global

	fileQueue    *memory.Queue[string]
	globalQueue  *memory.Queue[int]
	controlQueue *memory.Queue[Element]
	messageQueue *memory.Queue[logging.Entry]

	// LocalResults is keyed by filename, GlobalResults by global-bear
	// ordinal. Workers append, the scheduler reads.
	LocalResults  *store.Results[string]
	GlobalResults *store.Results[int]

	workers []*worker
	logger  *loggerWorker
	wg      sync.WaitGroup
}

// Option customizes pool construction.
type Option func(*Pool)

// WithJobCount sets how many workers the pool spawns.
func WithJobCount(count int) Option {
	return func(p *Pool) {
		p.jobCount = count
	}
}

// WithSink sets the log sink the logger worker forwards entries to.
func WithSink(sink logging.Sink) Option {
	return func(p *Pool) {
		p.sink = sink
	}
}

// WithCollector sets the file collector used to discover input files.
func WithCollector(collector *source.Collector) Option {
	return func(p *Pool) {
		p.collector = collector
	}
}

// WithPollTimeout overrides the bounded queue-poll timeout.
func WithPollTimeout(timeout time.Duration) Option {
	return func(p *Pool) {
		p.pollTimeout = timeout
	}
}

// NewPool prepares everything a worker needs before any worker runs:
// collects and loads the input files, allocates the shared queues and
// stores, instantiates every bear and fills the work queues. The supplied
// descriptor lists must already be in dependency order.
func NewPool(ctx context.Context, sec *section.Section, localDescriptors, globalDescriptors []*bear.Descriptor, options ...Option) (*Pool, error) {
	pool := &Pool{
		section:     sec,
		pollTimeout: DefaultPollTimeout,
		jobCount:    CPUCount(),
	}
	for _, option := range options {
		option(pool)
	}
	if pool.collector == nil {
		pool.collector = source.New()
	}

	filenames, err := pool.collector.Collect(ctx, sec.PathList("files"), sec.PathList("ignore"))
	if err != nil {
		return nil, err
	}
	pool.Files = source.LoadTable(ctx, pool.collector, filenames, pool.sink)

	queueConfig := memory.DefaultConfig()
	pool.fileQueue = memory.NewQueue[string](queueConfig)
	pool.globalQueue = memory.NewQueue[int](queueConfig)
	pool.controlQueue = memory.NewQueue[Element](queueConfig)
	pool.messageQueue = memory.NewQueue[logging.Entry](queueConfig)
	pool.LocalResults = store.NewResults[string]()
	pool.GlobalResults = store.NewResults[int]()

	pool.instantiateBears(localDescriptors, globalDescriptors)
	pool.fillQueues(ctx)

	for i := 0; i < pool.jobCount; i++ {
		pool.workers = append(pool.workers, newWorker(i, pool))
	}
	pool.logger = newLoggerWorker(pool.messageQueue, pool.sink, pool.pollTimeout)
	return pool, nil
}

// instantiateBears constructs every bear. A constructor error means the
// bear's runtime requirements are unmet; the bear is dropped and scheduling
// continues with the remainder.
func (p *Pool) instantiateBears(localDescriptors, globalDescriptors []*bear.Descriptor) {
	messages := logging.NewPoster(p.messageQueue, p.pollTimeout)
	for _, descriptor := range localDescriptors {
		if descriptor.NewLocal == nil {
			continue
		}
		instance, err := descriptor.NewLocal(p.section, messages, p.pollTimeout)
		if err != nil {
			p.warn("Bear " + descriptor.Name + " cannot be instantiated and was dropped: " + err.Error())
			continue
		}
		p.localBears = append(p.localBears, instance)
	}
	for _, descriptor := range globalDescriptors {
		if descriptor.NewGlobal == nil {
			continue
		}
		instance, err := descriptor.NewGlobal(p.Files, p.section, messages, p.pollTimeout)
		if err != nil {
			p.warn("Bear " + descriptor.Name + " cannot be instantiated and was dropped: " + err.Error())
			continue
		}
		p.globalBears = append(p.globalBears, instance)
	}
}

// fillQueues populates the work queues once; nothing is produced into them
// afterwards.
func (p *Pool) fillQueues(ctx context.Context) {
	filenames := make([]string, 0, len(p.Files))
	for filename := range p.Files {
		filenames = append(filenames, filename)
	}
	sort.Strings(filenames)
	for _, filename := range filenames {
		_ = p.fileQueue.Publish(ctx, &filename)
	}
	for ordinal := range p.globalBears {
		_ = p.globalQueue.Publish(ctx, &ordinal)
	}
}

// Start spawns every worker plus the logger worker.
func (p *Pool) Start(ctx context.Context) {
	p.wg.Add(len(p.workers))
	for _, worker := range p.workers {
		go worker.run(ctx)
	}
	p.wg.Add(1)
	go p.logger.run(ctx, &p.wg)
}

// Running reports how many of the pool's processes (workers and the logger)
// are still alive. It is a liveness probe independent of the control queue:
// a worker that dies without posting a finished message is still noticed.
func (p *Pool) Running() int {
	running := 0
	for _, worker := range p.workers {
		if worker.alive.Load() {
			running++
		}
	}
	if p.logger.alive.Load() {
		running++
	}
	return running
}

// StopLogger tells the logger worker to stop draining the message queue.
func (p *Pool) StopLogger() {
	p.logger.stop()
}

// Wait blocks until every worker and the logger worker returned.
func (p *Pool) Wait() {
	p.wg.Wait()
}

// Workers returns the number of workers the pool spawned.
func (p *Pool) Workers() int {
	return len(p.workers)
}

func (p *Pool) warn(message string) {
	if p.sink == nil {
		return
	}
	p.sink.Log(logging.Entry{Level: logging.LevelWarning, Message: message, Time: clock.Now()})
}
