package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intelfusion/case-similarity-api/models"
)

func TestBuildFilterEmpty(t *testing.T) {
	f := BuildFilter(FilterParams{})
	require.NotNil(t, f)
	assert.Empty(t, f.Must)
}

func TestBuildFilterPointTimeAndCode(t *testing.T) {
	ts := int64(1705300200)
	f := BuildFilter(FilterParams{
		Coordinate:       &models.Coordinate{Lat: -6.2, Lon: 106.8},
		CoordinateRadius: 300,
		Timestamp:        &ts,
		SubdistrictCode:  "3171060",
	})
	require.Len(t, f.Must, 3)

	geo := f.Must[0].GetField()
	require.NotNil(t, geo)
	assert.Equal(t, "coordinate", geo.Key)
	require.NotNil(t, geo.GetGeoRadius())
	assert.InDelta(t, -6.2, geo.GetGeoRadius().GetCenter().GetLat(), 1e-9)
	assert.InDelta(t, 106.8, geo.GetGeoRadius().GetCenter().GetLon(), 1e-9)
	assert.InDelta(t, 300, geo.GetGeoRadius().GetRadius(), 1e-6)

	window := f.Must[1].GetField()
	require.NotNil(t, window)
	assert.Equal(t, "timestamp", window.Key)
	require.NotNil(t, window.GetRange())
	assert.InDelta(t, float64(ts-86400), window.GetRange().GetGte(), 1e-9)
	assert.InDelta(t, float64(ts+86400), window.GetRange().GetLte(), 1e-9)

	match := f.Must[2].GetField()
	require.NotNil(t, match)
	assert.Equal(t, "subdistrict_code", match.Key)
	assert.Equal(t, "3171060", match.GetMatch().GetText())
}

func TestBuildFilterTierDefaultRadii(t *testing.T) {
	f := BuildFilter(FilterParams{
		CoordinateSubdistrict: &models.Coordinate{Lat: -6.2, Lon: 106.8},
		CoordinateDistrict:    &models.Coordinate{Lat: -6.2, Lon: 106.8},
		CoordinateCity:        &models.Coordinate{Lat: -6.2, Lon: 106.8},
	})
	require.Len(t, f.Must, 3)

	assert.InDelta(t, 10000, f.Must[0].GetField().GetGeoRadius().GetRadius(), 1e-6)
	assert.InDelta(t, 15000, f.Must[1].GetField().GetGeoRadius().GetRadius(), 1e-6)
	assert.InDelta(t, 20000, f.Must[2].GetField().GetGeoRadius().GetRadius(), 1e-6)
}

func TestBuildFilterTierRadiusOverride(t *testing.T) {
	f := BuildFilter(FilterParams{
		CoordinateSubdistrict: &models.Coordinate{Lat: -6.2, Lon: 106.8},
		SubdistrictRadius:     500,
	})
	require.Len(t, f.Must, 1)
	assert.InDelta(t, 500, f.Must[0].GetField().GetGeoRadius().GetRadius(), 1e-6)
}

func TestBuildFilterAdminCodes(t *testing.T) {
	f := BuildFilter(FilterParams{
		DistrictCode: "317106",
		CityCode:     "3171",
		ProvinceCode: "31",
	})
	require.Len(t, f.Must, 3)

	keys := make([]string, 0, len(f.Must))
	for _, c := range f.Must {
		keys = append(keys, c.GetField().Key)
	}
	assert.Equal(t, []string{"district_code", "city_code", "province_code"}, keys)
}
