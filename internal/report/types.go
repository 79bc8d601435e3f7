package report

import (
	"runtime"
	"time"

	"github.com/DjordjeVuckovic/infix-calc/internal/suite"
	"github.com/google/uuid"
)

type Report struct {
	Meta    Meta    `json:"meta"`
	Summary Summary `json:"summary"`
	Cases   []Entry `json:"cases"`
}

type Meta struct {
	RunID       uuid.UUID       `json:"run_id"`
	Suite       string          `json:"suite"`
	Version     string          `json:"version,omitempty"`
	Runs        int             `json:"runs"`
	Timestamp   time.Time       `json:"timestamp"`
	Duration    time.Duration   `json:"duration"`
	Environment EnvironmentInfo `json:"environment"`
}

type EnvironmentInfo struct {
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
	NumCPU    int    `json:"num_cpu"`
}

func NewEnvironmentInfo() EnvironmentInfo {
	return EnvironmentInfo{
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		NumCPU:    runtime.NumCPU(),
	}
}

type Summary struct {
	Total   int                `json:"total"`
	Passed  int                `json:"passed"`
	Failed  int                `json:"failed"`
	Latency suite.LatencyStats `json:"latency"`
}

type Entry struct {
	CaseID     string             `json:"case_id"`
	Expression string             `json:"expression"`
	Expected   string             `json:"expected"`
	Actual     string             `json:"actual"`
	Message    string             `json:"message,omitempty"`
	Passed     bool               `json:"passed"`
	Latency    suite.LatencyStats `json:"latency"`
	Error      string             `json:"error,omitempty"`
}
