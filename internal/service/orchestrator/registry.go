package orchestrator

import (
	"sync"
	"time"

	"github.com/LuckyTW/ppt-creator/internal/model"
)

// Registry is the in-memory job table. Reads return snapshots; writes go
// through Update so a job is never observed half-mutated.
type Registry struct {
	mu   sync.RWMutex
	jobs map[string]*model.Job
}

func NewRegistry() *Registry {
	return &Registry{jobs: make(map[string]*model.Job)}
}

func (r *Registry) Insert(job *model.Job) {
	r.mu.Lock()
	r.jobs[job.ID] = job.Clone()
	r.mu.Unlock()
}

func (r *Registry) Get(id string) (*model.Job, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.jobs[id]
	if !ok {
		return nil, false
	}
	return job.Clone(), true
}

// Update applies fn to the stored job and returns a snapshot of the result.
func (r *Registry) Update(id string, fn func(*model.Job)) (*model.Job, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok {
		return nil, false
	}
	fn(job)
	return job.Clone(), true
}

// Prune drops terminal jobs that completed before cutoff.
func (r *Registry) Prune(cutoff time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, job := range r.jobs {
		if job.IsTerminal() && job.CompletedAt != nil && job.CompletedAt.Before(cutoff) {
			delete(r.jobs, id)
			n++
		}
	}
	return n
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.jobs)
}
