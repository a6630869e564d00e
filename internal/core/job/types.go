package job

import "time"

type Status string

const (
	StatusRunning Status = "running"
	StatusDone    Status = "done"
)

// Job is registry state for one asynchronous pipeline run. Mutated only by
// the registry itself.
type Job struct {
	ID        string    `json:"jobId"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	Result    *Result   `json:"result,omitempty"`
}

// Result is the terminal outcome, delivered exactly once per job.
type Result struct {
	Success  bool   `json:"success"`
	Scraped  int    `json:"scraped,omitempty"`
	Inserted int    `json:"inserted,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Progress event steps.
const (
	StepStartCategory    = "start-category"
	StepPage             = "page"
	StepCategoryComplete = "category-complete"
)

// Event is one progress update. Fields beyond Step and Category are only
// meaningful for the step they belong to.
type Event struct {
	Step          string `json:"step"`
	Category      string `json:"category,omitempty"`
	Page          int    `json:"page,omitempty"`
	FoundThisPage int    `json:"foundThisPage,omitempty"`
	TotalSoFar    int    `json:"totalSoFar,omitempty"`
	Found         int    `json:"found,omitempty"`
}

// Message is what subscribers receive: progress events while the job runs,
// then exactly one done message carrying the result.
type Message struct {
	Type    string      `json:"type"` // "progress" | "done"
	Payload interface{} `json:"payload"`
}
