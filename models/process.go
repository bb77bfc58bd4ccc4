package models

// ProcessRequest is the body for the process-case endpoints. Unset tuning
// knobs fall back to the per-report-type settings, then to the service
// defaults.
type ProcessRequest struct {
	ScoreThreshold   *float64 `json:"score_threshold,omitempty"`
	Limit            *int     `json:"limit,omitempty"`
	RadiusCoordinate *float64 `json:"radius_coordinate,omitempty"`
	ReportType       string   `json:"report_type,omitempty"`
	Data             Report   `json:"data"`
}

// ProcessResponse reports the outcome of one processing run
type ProcessResponse struct {
	Status            string  `json:"status"`
	Message           string  `json:"message"`
	CaseID            string  `json:"case_id,omitempty"`
	DataID            string  `json:"data_id,omitempty"`
	CaseName          string  `json:"case_name,omitempty"`
	SimilarCasesCount int     `json:"similar_cases_count"`
	IsNewCase         bool    `json:"is_new_case"`
	ScoreThreshold    float64 `json:"score_threshold"`
	RadiusCoordinate  float64 `json:"radius_coordinate"`
	ProcessingTime    float64 `json:"processing_time"`
}

// AsyncAccepted is returned by the async variant once the background task
// has been queued
type AsyncAccepted struct {
	Status           string  `json:"status"`
	Message          string  `json:"message"`
	TaskID           string  `json:"task_id"`
	ScoreThreshold   float64 `json:"score_threshold"`
	RadiusCoordinate float64 `json:"radius_coordinate"`
}

// FindSimilarResponse returns the ad-hoc similarity search results
type FindSimilarResponse struct {
	Status       string       `json:"status"`
	Query        string       `json:"query"`
	ResultsCount int          `json:"results_count"`
	Results      []SimilarHit `json:"results"`
}

// LatestReportRequest is the body for the report/latest endpoint
type LatestReportRequest struct {
	CaseID    string `json:"case_id"`
	StartTime string `json:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty"`
	Limit     int    `json:"limit,omitempty"`
}

// LatestReportResponse returns the most recent report of a case
type LatestReportResponse struct {
	Status       string  `json:"status"`
	CaseID       string  `json:"case_id"`
	ReportsFound int     `json:"reports_found"`
	LatestReport *Record `json:"latest_report,omitempty"`
}
