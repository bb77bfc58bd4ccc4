package similarity

import (
	"github.com/qdrant/go-client/qdrant"

	"github.com/intelfusion/case-similarity-api/models"
)

// timeWindowSeconds is the fixed ±1 day proximity window around the report
// timestamp. Reports about the same incident are assumed to land within
// the same news cycle.
const timeWindowSeconds = 86400

// Default radii for the tiered geo filters, in meters. The point radius
// has no default here, the caller supplies it.
const (
	defaultSubdistrictRadius = 10000.0
	defaultDistrictRadius    = 15000.0
	defaultCityRadius        = 20000.0
)

// FilterParams lists the optional terms of a composite proximity filter.
// Every term is included only when its input is present; all included
// terms AND together. An empty filter is valid and matches everything
// above the score threshold.
type FilterParams struct {
	Coordinate       *models.Coordinate
	CoordinateRadius float64

	CoordinateSubdistrict *models.Coordinate
	SubdistrictRadius     float64
	CoordinateDistrict    *models.Coordinate
	DistrictRadius        float64
	CoordinateCity        *models.Coordinate
	CityRadius            float64

	Timestamp *int64

	SubdistrictCode string
	DistrictCode    string
	CityCode        string
	ProvinceCode    string
}

// BuildFilter compiles the composite predicate for the similarity store
func BuildFilter(p FilterParams) *qdrant.Filter {
	var must []*qdrant.Condition

	if p.Coordinate != nil {
		must = append(must, qdrant.NewGeoRadius("coordinate", p.Coordinate.Lat, p.Coordinate.Lon, float32(p.CoordinateRadius)))
	}
	if p.CoordinateSubdistrict != nil {
		r := p.SubdistrictRadius
		if r == 0 {
			r = defaultSubdistrictRadius
		}
		must = append(must, qdrant.NewGeoRadius("coordinate_subdistrict", p.CoordinateSubdistrict.Lat, p.CoordinateSubdistrict.Lon, float32(r)))
	}
	if p.CoordinateDistrict != nil {
		r := p.DistrictRadius
		if r == 0 {
			r = defaultDistrictRadius
		}
		must = append(must, qdrant.NewGeoRadius("coordinate_district", p.CoordinateDistrict.Lat, p.CoordinateDistrict.Lon, float32(r)))
	}
	if p.CoordinateCity != nil {
		r := p.CityRadius
		if r == 0 {
			r = defaultCityRadius
		}
		must = append(must, qdrant.NewGeoRadius("coordinate_city", p.CoordinateCity.Lat, p.CoordinateCity.Lon, float32(r)))
	}
	if p.Timestamp != nil {
		must = append(must, qdrant.NewRange("timestamp", &qdrant.Range{
			Gte: qdrant.PtrOf(float64(*p.Timestamp - timeWindowSeconds)),
			Lte: qdrant.PtrOf(float64(*p.Timestamp + timeWindowSeconds)),
		}))
	}
	if p.SubdistrictCode != "" {
		must = append(must, qdrant.NewMatchText("subdistrict_code", p.SubdistrictCode))
	}
	if p.DistrictCode != "" {
		must = append(must, qdrant.NewMatchText("district_code", p.DistrictCode))
	}
	if p.CityCode != "" {
		must = append(must, qdrant.NewMatchText("city_code", p.CityCode))
	}
	if p.ProvinceCode != "" {
		must = append(must, qdrant.NewMatchText("province_code", p.ProvinceCode))
	}

	return &qdrant.Filter{Must: must}
}
