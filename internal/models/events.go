package models

// SubmissionRecorded is emitted when a new submission is created. It is
// returned to the orchestrator as a value; the aggregate itself performs no
// side effects, the caller decides whether to dispatch a notification.
type SubmissionRecorded struct {
	MemberName string
	CycleLabel string
	URL        string
}
