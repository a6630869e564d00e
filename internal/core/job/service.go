package job

import (
	"sync"
	"time"

	"shopsearch/internal/logger"

	"github.com/google/uuid"
)

// DefaultRetention is how long a finished job stays queryable before the
// registry evicts it.
const DefaultRetention = 10 * time.Minute

type entry struct {
	job   Job
	bus   *Bus
	evict *time.Timer
}

// Service is the job registry: concurrent create/read/evict over in-flight
// and recently finished jobs, one Bus per job with the same lifetime.
type Service struct {
	log       *logger.Logger
	mu        sync.RWMutex
	jobs      map[string]*entry
	retention time.Duration
}

func NewService(retention time.Duration) *Service {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &Service{
		log:       logger.New("JobService"),
		jobs:      make(map[string]*entry),
		retention: retention,
	}
}

// Create allocates a running job with a fresh bus and returns immediately.
// The caller launches the actual run.
func (s *Service) Create() (string, *Bus) {
	id := uuid.NewString()
	bus := NewBus()

	s.mu.Lock()
	s.jobs[id] = &entry{
		job: Job{ID: id, Status: StatusRunning, CreatedAt: time.Now()},
		bus: bus,
	}
	s.mu.Unlock()

	s.log.LogDebugf("job created id=%s", id)
	return id, bus
}

func (s *Service) Get(id string) (Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.jobs[id]
	if !ok {
		return Job{}, false
	}
	return e.job, true
}

// Subscribe attaches an observer to a job's bus. The bool is false when the
// job is unknown or already evicted.
func (s *Service) Subscribe(id string) (<-chan Message, func(), bool) {
	s.mu.RLock()
	e, ok := s.jobs[id]
	s.mu.RUnlock()
	if !ok {
		return nil, nil, false
	}
	ch, cancel := e.bus.Subscribe()
	return ch, cancel, true
}

// EmitProgress publishes an event to the job's subscribers. Unknown job ids
// are a no-op.
func (s *Service) EmitProgress(id string, ev Event) {
	s.mu.RLock()
	e, ok := s.jobs[id]
	s.mu.RUnlock()
	if !ok {
		return
	}
	e.bus.Publish(Message{Type: "progress", Payload: ev})
}

// Finish publishes the terminal done message, marks the job done and
// schedules eviction. Calling it again for the same id is a no-op.
func (s *Service) Finish(id string, res Result) {
	s.mu.Lock()
	e, ok := s.jobs[id]
	if !ok || e.job.Status == StatusDone {
		s.mu.Unlock()
		return
	}
	e.job.Status = StatusDone
	e.job.Result = &res
	e.evict = time.AfterFunc(s.retention, func() { s.remove(id) })
	bus := e.bus
	s.mu.Unlock()

	bus.Publish(Message{Type: "done", Payload: res})
	bus.Close()
	s.log.LogDebugf("job done id=%s success=%v scraped=%d inserted=%d", id, res.Success, res.Scraped, res.Inserted)
}

func (s *Service) remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.jobs[id]; ok {
		e.bus.Close()
		delete(s.jobs, id)
	}
}
