package models

// Record is the enriched report persisted in the similarity store, keyed
// by ID. Once written, ID, IDCase and CaseName are immutable for this
// report; re-processing the same ID overwrites the whole record.
type Record struct {
	ID         string `json:"id"`
	IDCase     string `json:"id_case"`
	CaseName   string `json:"case_name"`
	ReportType string `json:"report_type,omitempty"`

	Input      string `json:"input"`
	Text       string `json:"text"`
	Summary    string `json:"summary,omitempty"`
	RawMessage string `json:"raw_message,omitempty"`

	CreatedAt   string `json:"created_at"`
	Timestamp   int64  `json:"timestamp"`
	ProcessedAt string `json:"processed_at"`

	Coordinate            *Coordinate `json:"coordinate,omitempty"`
	CoordinateSubdistrict *Coordinate `json:"coordinate_subdistrict,omitempty"`
	CoordinateDistrict    *Coordinate `json:"coordinate_district,omitempty"`
	CoordinateCity        *Coordinate `json:"coordinate_city,omitempty"`
	CoordinateProvince    *Coordinate `json:"coordinate_province,omitempty"`
	CountryCoordinate     *Coordinate `json:"country_coordinate,omitempty"`

	SubdistrictCode string `json:"subdistrict_code,omitempty"`
	DistrictCode    string `json:"district_code,omitempty"`
	CityCode        string `json:"city_code,omitempty"`
	ProvinceCode    string `json:"province_code,omitempty"`

	// original report fields carried through verbatim
	ReliabilityScore float64          `json:"case_reliability_score,omitempty"`
	Sketch           string           `json:"sketch,omitempty"`
	FirstName        string           `json:"first_name,omitempty"`
	Username         string           `json:"username,omitempty"`
	Images           []string         `json:"images,omitempty"`
	Audios           []string         `json:"audios,omitempty"`
	Videos           []string         `json:"videos,omitempty"`
	Files            []string         `json:"files,omitempty"`
	LocationDetails  *LocationDetails `json:"location_details,omitempty"`
}

// SimilarHit is one nearest-neighbor result from the similarity store,
// ordered by descending score
type SimilarHit struct {
	Score    float64        `json:"similarity_score"`
	IDCase   string         `json:"id_case"`
	CaseName string         `json:"case_name"`
	Metadata map[string]any `json:"metadata"`
}
