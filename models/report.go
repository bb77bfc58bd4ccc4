package models

// TimestampLayout is the only accepted wire format for report creation
// timestamps. The UTC offset is mandatory.
const TimestampLayout = "2006-01-02 15:04:05 -0700"

// Report represents a single submitted incident observation
type Report struct {
	ID               string           `json:"id,omitempty"`
	IDCase           string           `json:"id_case,omitempty"`
	Input            string           `json:"input"`
	Summary          string           `json:"summary,omitempty"`
	RawMessage       string           `json:"raw_message,omitempty"`
	CreatedAt        string           `json:"created_at"`
	ReliabilityScore float64          `json:"case_reliability_score,omitempty"`
	Sketch           string           `json:"sketch,omitempty"`
	FirstName        string           `json:"first_name,omitempty"`
	Username         string           `json:"username,omitempty"`
	Images           []string         `json:"images,omitempty"`
	Audios           []string         `json:"audios,omitempty"`
	Videos           []string         `json:"videos,omitempty"`
	Files            []string         `json:"files,omitempty"`
	LocationDetails  *LocationDetails `json:"location_details,omitempty"`

	// Coordinate is the bare [lon, lat] pair some callers send at the top
	// level. It is only a fallback for the primary coordinate, never for
	// the tiered ones.
	Coordinate []float64 `json:"coordinate,omitempty"`
}

// LocationDetails carries the resolved location of a report at every
// administrative granularity
type LocationDetails struct {
	Name            string `json:"name,omitempty"`
	Address         string `json:"address,omitempty"`
	Source          string `json:"source,omitempty"`
	SubdistrictName string `json:"subdistrict_name,omitempty"`
	DistrictName    string `json:"district_name,omitempty"`
	CityName        string `json:"city_name,omitempty"`
	ProvinceName    string `json:"province_name,omitempty"`
	CountryName     string `json:"country_name,omitempty"`
	CountryCode3    string `json:"country_code3,omitempty"`

	SubdistrictCode string `json:"subdistrict_code,omitempty"`
	DistrictCode    string `json:"district_code,omitempty"`
	CityCode        string `json:"city_code,omitempty"`
	ProvinceCode    string `json:"province_code,omitempty"`

	Coordinate            *Coordinate `json:"coordinate,omitempty"`
	CoordinateSubdistrict *Coordinate `json:"coordinate_subdistrict,omitempty"`
	CoordinateDistrict    *Coordinate `json:"coordinate_district,omitempty"`
	CoordinateCity        *Coordinate `json:"coordinate_city,omitempty"`
	CoordinateProvince    *Coordinate `json:"coordinate_province,omitempty"`
	CountryCoordinate     *Coordinate `json:"country_coordinate,omitempty"`
}

// Address returns the freeform address string or "" when location details
// are absent
func (r Report) Address() string {
	if r.LocationDetails == nil {
		return ""
	}
	return r.LocationDetails.Address
}
