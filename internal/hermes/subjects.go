package hermes

const (
	StreamName     = "BANDPLAN_EVENTS"
	StreamSubjects = "bandplan.run.>"
	StreamMaxAge   = "2160h" // 90 days
)

func SubjectRunEligibility(runID string) string { return "bandplan.run." + runID + ".eligibility" }
func SubjectRunBandFailed(runID string) string  { return "bandplan.run." + runID + ".band_failed" }
func SubjectRunCompleted(runID string) string   { return "bandplan.run." + runID + ".completed" }
func SubjectRunFailed(runID string) string      { return "bandplan.run." + runID + ".failed" }
