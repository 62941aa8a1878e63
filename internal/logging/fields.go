package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID is the standardized key for the consolidation run identifier.
	FieldRunID = "run_id"
	// FieldExternalID is the standardized key for catalog external identifiers.
	FieldExternalID = "external_id"
	// FieldSeriesID is the standardized key for series identifiers.
	FieldSeriesID = "series_id"
	// FieldStage is the standardized key for per-record stage names.
	FieldStage = "stage"
	// FieldOutcome is the standardized key for per-record terminal outcomes.
	FieldOutcome = "outcome"
	// FieldEventType classifies warnings and errors for filtering.
	FieldEventType = "event_type"
	// FieldErrorHint carries the suggested next step for an error or warning.
	FieldErrorHint = "error_hint"
	// FieldImpact is the standardized key for user-facing consequence of a warning.
	FieldImpact = "impact"
	// FieldDecisionType names the decision being logged (e.g. relationship_match).
	FieldDecisionType = "decision_type"
	// FieldAlert flags warnings or anomalies that should stand out in structured logs.
	FieldAlert = "alert"
)
