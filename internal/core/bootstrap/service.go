package bootstrap

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"shopsearch/internal/config"
	"shopsearch/internal/core/catalog"
	"shopsearch/internal/core/job"
	"shopsearch/internal/core/scrape"
	"shopsearch/internal/logger"
	tasks "shopsearch/internal/platform/tasks"

	"github.com/hibiken/asynq"
)

const TaskTypeBootstrap = "bootstrap:run"

// Request is the scrape-and-ingest request body. Missing fields take the
// configured defaults; delay and persist are pointers so an explicit zero
// stays distinguishable from an absent field.
type Request struct {
	Categories     []string `json:"categories"`
	TotalPages     int      `json:"totalPages"`
	PerPageDelayMs *int     `json:"perPageDelayMs"`
	Persist        *bool    `json:"persist"`
}

type taskPayload struct {
	JobID   string  `json:"job_id"`
	Request Request `json:"request"`
}

type Service struct {
	log     *logger.Logger
	cfg     config.Config
	jobs    *job.Service
	scraper *scrape.Service
	store   *catalog.RedisStore
	memory  *catalog.MemoryStore
	tasks   *tasks.Client
}

func NewService(cfg config.Config, jobs *job.Service, scraper *scrape.Service, store *catalog.RedisStore, memory *catalog.MemoryStore, taskClient *tasks.Client) *Service {
	return &Service{
		log:     logger.New("BootstrapService"),
		cfg:     cfg,
		jobs:    jobs,
		scraper: scraper,
		store:   store,
		memory:  memory,
		tasks:   taskClient,
	}
}

func (s *Service) normalize(req Request) Request {
	if len(req.Categories) == 0 {
		req.Categories = s.cfg.DefaultCategories
	}
	if req.TotalPages <= 0 {
		req.TotalPages = s.cfg.DefaultTotalPages
	}
	if req.PerPageDelayMs == nil || *req.PerPageDelayMs < 0 {
		delay := s.cfg.DefaultPageDelayMs
		req.PerPageDelayMs = &delay
	}
	if req.Persist == nil {
		persist := s.cfg.DefaultPersist
		req.Persist = &persist
	}
	return req
}

// RunSync executes the pipeline inline, without a job. Used by the
// synchronous bootstrap endpoint.
func (s *Service) RunSync(ctx context.Context, req Request) (scraped, inserted int, err error) {
	return s.run(ctx, s.normalize(req), nil)
}

// Enqueue creates a job and hands the run to the task queue. Returns the
// job id immediately; progress flows through the job's bus.
func (s *Service) Enqueue(ctx context.Context, req Request) (string, error) {
	jobID, _ := s.jobs.Create()

	payload, err := json.Marshal(taskPayload{JobID: jobID, Request: s.normalize(req)})
	if err != nil {
		return "", fmt.Errorf("marshal task: %w", err)
	}
	// MaxRetry 0: re-running a half-finished scrape would duplicate inserts,
	// and the job already reports failure through its terminal event.
	if err := s.tasks.Enqueue(asynq.NewTask(TaskTypeBootstrap, payload), "default", 0); err != nil {
		s.jobs.Finish(jobID, job.Result{Success: false, Error: err.Error()})
		return "", fmt.Errorf("enqueue: %w", err)
	}
	return jobID, nil
}

// HandleBootstrapTask is the asynq handler for enqueued bootstrap runs.
func (s *Service) HandleBootstrapTask(ctx context.Context, t *asynq.Task) error {
	var payload taskPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("decode bootstrap task: %w", err)
	}
	s.Run(payload.JobID, payload.Request)
	return nil
}

// Run executes the pipeline for a job and always delivers a terminal
// result, failure included. The run is independent of any request lifetime
// and is not cancellable once started.
func (s *Service) Run(jobID string, req Request) {
	defer func() {
		if r := recover(); r != nil {
			s.log.LogErrorf("bootstrap job %s panicked: %v", jobID, r)
			s.jobs.Finish(jobID, job.Result{Success: false, Error: fmt.Sprintf("%v", r)})
		}
	}()

	scraped, inserted, err := s.run(context.Background(), req, func(ev job.Event) {
		s.jobs.EmitProgress(jobID, ev)
	})
	if err != nil {
		s.jobs.Finish(jobID, job.Result{Success: false, Error: err.Error()})
		return
	}
	s.jobs.Finish(jobID, job.Result{Success: true, Scraped: scraped, Inserted: inserted})
}

// run is the shared pipeline: categories strictly in sequence, per-page
// progress forwarded, aggregate deduplicated, then optionally persisted.
func (s *Service) run(ctx context.Context, req Request, emit func(job.Event)) (int, int, error) {
	if emit == nil {
		emit = func(job.Event) {}
	}

	delay := s.cfg.DefaultPageDelayMs
	if req.PerPageDelayMs != nil {
		delay = *req.PerPageDelayMs
	}

	var all []catalog.Product
	for _, category := range req.Categories {
		emit(job.Event{Step: job.StepStartCategory, Category: category})

		items := s.scraper.Scrape(ctx, category, scrape.Options{
			TotalPages:     req.TotalPages,
			PerPageDelayMs: delay,
			BaseURL:        s.cfg.ScrapeBaseURL,
			OnProgress: func(p scrape.Progress) {
				emit(job.Event{
					Step:          job.StepPage,
					Category:      p.Category,
					Page:          p.Page,
					FoundThisPage: p.FoundThisPage,
					TotalSoFar:    p.TotalSoFar,
				})
			},
		})
		s.log.LogInfof("scraped %d items for %s", len(items), category)
		emit(job.Event{Step: job.StepCategoryComplete, Category: category, Found: len(items)})

		for _, it := range items {
			all = append(all, catalog.Product{
				Title:       it.Title,
				Description: it.Description,
				Price:       it.Price,
				Rating:      it.Rating,
				Stock:       it.Stock,
				Sales:       0,
				Category:    category,
				Metadata:    it.Metadata,
				Source:      it.Source,
			})
		}
	}

	all = Dedupe(all)

	persist := s.cfg.DefaultPersist
	if req.Persist != nil {
		persist = *req.Persist
	}
	inserted := 0
	if persist && len(all) > 0 {
		n, err := s.store.Insert(ctx, all)
		if err != nil {
			// Degraded persistence: keep the partial count, the run goes on.
			s.log.LogWarnf("partial insert: %v", err)
		}
		inserted = n
	}
	s.memory.Add(all...)

	return len(all), inserted, nil
}

// Dedupe collapses items sharing a case-insensitive (title, price) key,
// keeping the first occurrence.
func Dedupe(products []catalog.Product) []catalog.Product {
	seen := make(map[string]struct{}, len(products))
	out := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		key := fmt.Sprintf("%s::%v", strings.ToLower(p.Title), p.Price)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}
	return out
}
