package hermes

import "time"

type EligibilityDecisionEvent struct {
	RunID        string  `json:"run_id"`
	Band         string  `json:"band"`
	Transponder  string  `json:"transponder"`
	Channels     int     `json:"channels"`
	MeasuredGSNR float64 `json:"measured_gsnr"`
	RequiredGSNR float64 `json:"required_gsnr"`
	Eligible     bool    `json:"eligible"`
}

type BandFailedEvent struct {
	RunID  string `json:"run_id"`
	Band   string `json:"band"`
	Source string `json:"source,omitempty"`
	Error  string `json:"error"`
}

type RunCompletedEvent struct {
	RunID       string    `json:"run_id"`
	Bands       int       `json:"bands"`
	Scenarios   int       `json:"scenarios"`
	ParetoFront []string  `json:"pareto_front"`
	DurationMs  int64     `json:"duration_ms"`
	Timestamp   time.Time `json:"timestamp"`
}

type RunFailedEvent struct {
	RunID     string    `json:"run_id"`
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}
