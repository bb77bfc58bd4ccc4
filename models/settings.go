package models

// ReportTypeSettings holds the per-report-type processing defaults stored
// in mongo. Request-level values always win over these.
type ReportTypeSettings struct {
	ReportType       string  `bson:"_id" json:"report_type"`
	ScoreThreshold   float64 `bson:"scoreThreshold" json:"score_threshold"`
	Limit            int     `bson:"limit" json:"limit"`
	RadiusCoordinate float64 `bson:"radiusCoordinate" json:"radius_coordinate"`
}
