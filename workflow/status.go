package workflow

import (
	"fmt"
	"sync"
	"time"
)

// RunState is the phase the runner is in.
type RunState string

const (
	StateIdle       RunState = "idle"
	StateLoading    RunState = "loading"
	StatePublishing RunState = "publishing"
	StateComplete   RunState = "complete"
	StateError      RunState = "error"
)

// LogEntry is a single status line with timestamp.
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
}

// StatusResponse is the JSON body of GET /api/status.
type StatusResponse struct {
	State   RunState   `json:"state"`
	RunID   string     `json:"run_id,omitempty"`
	Current string     `json:"current,omitempty"`
	Logs    []LogEntry `json:"logs"`
	Summary *Summary   `json:"summary,omitempty"`
	Error   string     `json:"error,omitempty"`
}

// Status holds the observable state of the runner with thread-safe access.
type Status struct {
	mu sync.RWMutex

	state   RunState
	runID   string
	current string
	summary *Summary

	logs    []LogEntry
	maxLogs int
	lastErr error
}

// NewStatus keeps the last maxLogs log lines.
func NewStatus(maxLogs int) *Status {
	return &Status{
		state:   StateIdle,
		logs:    make([]LogEntry, 0),
		maxLogs: maxLogs,
	}
}

// Begin resets per-run fields for a new run.
func (s *Status) Begin(runID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateLoading
	s.runID = runID
	s.current = ""
	s.lastErr = nil
	s.appendLocked(fmt.Sprintf("Run %s started", runID))
}

// AddLog adds a log entry.
func (s *Status) AddLog(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appendLocked(message)
}

func (s *Status) appendLocked(message string) {
	s.logs = append(s.logs, LogEntry{Timestamp: time.Now(), Message: message})
	if len(s.logs) > s.maxLogs {
		s.logs = s.logs[len(s.logs)-s.maxLogs:]
	}
}

func (s *Status) SetState(state RunState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

func (s *Status) GetState() RunState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// SetCurrent records the key of the item being processed.
func (s *Status) SetCurrent(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = key
}

// SetError moves to the error state and logs err.
func (s *Status) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateError
	s.lastErr = err
	s.current = ""
	s.appendLocked(fmt.Sprintf("Error: %v", err))
}

// Finish stores the run summary and moves to the complete state.
func (s *Status) Finish(summary Summary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateComplete
	s.current = ""
	s.summary = &summary
	s.appendLocked(fmt.Sprintf("Run %s finished: %d published, %d errors", summary.RunID, summary.Published, summary.Errors))
}

// GetStatus returns a snapshot of the current state.
func (s *Status) GetStatus() StatusResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()

	resp := StatusResponse{
		State:   s.state,
		RunID:   s.runID,
		Current: s.current,
		Logs:    append([]LogEntry{}, s.logs...),
	}
	if s.summary != nil {
		summary := *s.summary
		resp.Summary = &summary
	}
	if s.lastErr != nil {
		resp.Error = s.lastErr.Error()
	}
	return resp
}
