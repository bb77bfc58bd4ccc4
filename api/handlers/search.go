package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/intelfusion/case-similarity-api/config"
	"github.com/intelfusion/case-similarity-api/databases"
	"github.com/intelfusion/case-similarity-api/models"
	"github.com/intelfusion/case-similarity-api/similarity"
)

// the ad-hoc search has its own, looser defaults than the merge path:
// no score cutoff, more results, a wider radius
const (
	findSimilarScoreThreshold = 0.0
	findSimilarLimit          = 10
	findSimilarRadius         = 500.0
)

// Search handles the ad-hoc similarity search endpoint
type Search struct {
	CDB        databases.CaseDatabase
	Embeddings similarity.Embedder
}

// FindSimilarHandler searches the store for reports similar to the query
// text without writing anything
func (s Search) FindSimilarHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("text")
	if query == "" {
		config.ErrorStatus("text query parameter is required", http.StatusBadRequest, w,
			fmt.Errorf("missing text"))
		return
	}

	scoreThreshold := findSimilarScoreThreshold
	if v := r.URL.Query().Get("score_threshold"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			config.ErrorStatus("invalid score_threshold", http.StatusBadRequest, w, err)
			return
		}
		scoreThreshold = parsed
	}

	limit := findSimilarLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			config.ErrorStatus("invalid limit", http.StatusBadRequest, w, err)
			return
		}
		limit = parsed
	}

	params, err := searchFilterParams(r)
	if err != nil {
		config.ErrorStatus("invalid filter parameters", http.StatusBadRequest, w, err)
		return
	}

	vector, err := s.Embeddings.Embed(r.Context(), query)
	if err != nil {
		config.ErrorStatus("failed to embed query text", http.StatusInternalServerError, w, err)
		return
	}

	hits, err := s.CDB.Search(r.Context(), vector, similarity.BuildFilter(params), scoreThreshold, limit)
	if err != nil {
		config.ErrorStatus("failed to search similar cases", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(models.FindSimilarResponse{
		Status:       "success",
		Query:        query,
		ResultsCount: len(hits),
		Results:      hits,
	})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// queryParam returns the first non-empty value among the given keys, so
// the canonical coordinate_* names win over their short aliases.
func queryParam(r *http.Request, names ...string) string {
	for _, name := range names {
		if v := r.URL.Query().Get(name); v != "" {
			return v
		}
	}
	return ""
}

// searchFilterParams builds the optional metadata filter from query
// parameters. coordinate_lat and coordinate_lon must come as a pair.
func searchFilterParams(r *http.Request) (similarity.FilterParams, error) {
	var params similarity.FilterParams

	latStr := queryParam(r, "coordinate_lat", "lat")
	lonStr := queryParam(r, "coordinate_lon", "lon")
	if (latStr == "") != (lonStr == "") {
		return params, fmt.Errorf("coordinate_lat and coordinate_lon must be provided together")
	}
	if latStr != "" {
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			return params, fmt.Errorf("invalid coordinate_lat: %w", err)
		}
		lon, err := strconv.ParseFloat(lonStr, 64)
		if err != nil {
			return params, fmt.Errorf("invalid coordinate_lon: %w", err)
		}
		radius := findSimilarRadius
		if v := queryParam(r, "coordinate_max_radius", "radius_coordinate"); v != "" {
			radius, err = strconv.ParseFloat(v, 64)
			if err != nil {
				return params, fmt.Errorf("invalid coordinate_max_radius: %w", err)
			}
		}
		params.Coordinate = &models.Coordinate{Lat: lat, Lon: lon}
		params.CoordinateRadius = radius
	}

	if v := r.URL.Query().Get("timestamp"); v != "" {
		ts, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return params, fmt.Errorf("invalid timestamp: %w", err)
		}
		params.Timestamp = &ts
	}

	params.SubdistrictCode = r.URL.Query().Get("subdistrict_code")
	params.DistrictCode = r.URL.Query().Get("district_code")
	params.CityCode = r.URL.Query().Get("city_code")
	params.ProvinceCode = r.URL.Query().Get("province_code")
	return params, nil
}
