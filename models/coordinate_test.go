package models_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/intelfusion/case-similarity-api/models"
)

func TestCoordinate_AlternateLongKey(t *testing.T) {
	var c models.Coordinate
	err := json.Unmarshal([]byte(`{"lat": -6.1, "long": 106.7}`), &c)

	assert.NoError(t, err)
	assert.Equal(t, models.Coordinate{Lat: -6.1, Lon: 106.7}, c)
}

func TestCoordinate_CanonicalKeyWins(t *testing.T) {
	var c models.Coordinate
	err := json.Unmarshal([]byte(`{"lat": -6.1, "lon": 106.7, "long": 999}`), &c)

	assert.NoError(t, err)
	assert.Equal(t, models.Coordinate{Lat: -6.1, Lon: 106.7}, c)
}

func TestCoordinate_CanonicalOnly(t *testing.T) {
	var c models.Coordinate
	err := json.Unmarshal([]byte(`{"lat": -6.1, "lon": 106.7}`), &c)

	assert.NoError(t, err)
	assert.Equal(t, models.Coordinate{Lat: -6.1, Lon: 106.7}, c)
}

func TestReport_BareCoordinatePair(t *testing.T) {
	var r models.Report
	err := json.Unmarshal([]byte(`{"input": "x", "created_at": "2025-08-07 14:31:20 +0700", "coordinate": [106.68, -6.26]}`), &r)

	assert.NoError(t, err)
	assert.Equal(t, []float64{106.68, -6.26}, r.Coordinate)
}
