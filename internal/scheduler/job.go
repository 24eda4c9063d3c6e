package scheduler

import (
	"sync"
	"time"
)

// jobState controla a execução exclusiva de um job e guarda os horários da
// última execução para o endpoint de status
type jobState struct {
	mu                  sync.Mutex
	running             bool
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastError           string
}

// begin devolve false quando já existe uma execução em andamento
func (j *jobState) begin(now time.Time) bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.running {
		return false
	}
	j.running = true
	j.lastSyncStartedAt = now
	return true
}

func (j *jobState) finish(now time.Time, err error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.running = false
	j.lastSyncCompletedAt = now
	j.lastError = ""
	if err != nil {
		j.lastError = err.Error()
	}
}

func (j *jobState) snapshot() (started, completed time.Time, lastError string, running bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.lastSyncStartedAt, j.lastSyncCompletedAt, j.lastError, j.running
}
