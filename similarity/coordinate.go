package similarity

import "github.com/intelfusion/case-similarity-api/models"

// PrimaryCoordinate resolves the primary point coordinate of a report.
// The structured location_details.coordinate wins; the bare top-level
// [lon, lat] pair is accepted as a fallback for this field only, never
// for the tiered coordinates.
func PrimaryCoordinate(r models.Report) *models.Coordinate {
	if r.LocationDetails != nil && r.LocationDetails.Coordinate != nil {
		return r.LocationDetails.Coordinate
	}
	if len(r.Coordinate) == 2 {
		return &models.Coordinate{Lon: r.Coordinate[0], Lat: r.Coordinate[1]}
	}
	return nil
}

// tieredCoordinates holds every normalized coordinate granularity of a report
type tieredCoordinates struct {
	point       *models.Coordinate
	subdistrict *models.Coordinate
	district    *models.Coordinate
	city        *models.Coordinate
	province    *models.Coordinate
	country     *models.Coordinate
}

func normalizeCoordinates(r models.Report) tieredCoordinates {
	t := tieredCoordinates{point: PrimaryCoordinate(r)}
	if r.LocationDetails == nil {
		return t
	}
	t.subdistrict = r.LocationDetails.CoordinateSubdistrict
	t.district = r.LocationDetails.CoordinateDistrict
	t.city = r.LocationDetails.CoordinateCity
	t.province = r.LocationDetails.CoordinateProvince
	t.country = r.LocationDetails.CountryCoordinate
	return t
}
