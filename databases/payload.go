package databases

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/qdrant/go-client/qdrant"

	"github.com/intelfusion/case-similarity-api/models"
)

// recordPayload builds the stored payload for a record. The full record
// goes under "metadata"; the filterable fields are lifted to the top level
// so the store can index them for geo, range and text match conditions.
func recordPayload(rec models.Record) (map[string]*qdrant.Value, error) {
	meta, err := toPlainMap(rec)
	if err != nil {
		return nil, fmt.Errorf("encoding record metadata: %w", err)
	}

	top := map[string]any{
		"metadata":               meta,
		"case_name":              rec.CaseName,
		"page_content":           rec.Input,
		"page_content_lower":     strings.ToLower(rec.Input),
		"id_case":                rec.IDCase,
		"subdistrict_code":       rec.SubdistrictCode,
		"district_code":          rec.DistrictCode,
		"city_code":              rec.CityCode,
		"province_code":          rec.ProvinceCode,
		"timestamp":              rec.Timestamp,
		"coordinate":             geoPayload(rec.Coordinate),
		"coordinate_subdistrict": geoPayload(rec.CoordinateSubdistrict),
		"coordinate_district":    geoPayload(rec.CoordinateDistrict),
		"coordinate_city":        geoPayload(rec.CoordinateCity),
		"coordinate_province":    geoPayload(rec.CoordinateProvince),
		"country_coordinate":     geoPayload(rec.CountryCoordinate),
	}
	return qdrant.NewValueMap(top), nil
}

// geoPayload renders a coordinate as the {lat, lon} map qdrant geo-indexes
func geoPayload(c *models.Coordinate) any {
	if c == nil {
		return nil
	}
	return map[string]any{"lat": c.Lat, "lon": c.Lon}
}

// toPlainMap round-trips a struct through JSON into a generic map
func toPlainMap(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	m := map[string]any{}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// metadataRecord decodes the "metadata" payload field back into a Record
func metadataRecord(payload map[string]*qdrant.Value) (models.Record, error) {
	rec := models.Record{}
	meta, ok := payload["metadata"]
	if !ok {
		return rec, fmt.Errorf("payload has no metadata field")
	}
	b, err := json.Marshal(valueToAny(meta))
	if err != nil {
		return rec, err
	}
	err = json.Unmarshal(b, &rec)
	return rec, err
}

// valueToAny converts a qdrant payload value into plain Go types
func valueToAny(v *qdrant.Value) any {
	if v == nil {
		return nil
	}
	switch k := v.Kind.(type) {
	case *qdrant.Value_StringValue:
		return k.StringValue
	case *qdrant.Value_IntegerValue:
		return k.IntegerValue
	case *qdrant.Value_DoubleValue:
		return k.DoubleValue
	case *qdrant.Value_BoolValue:
		return k.BoolValue
	case *qdrant.Value_StructValue:
		m := make(map[string]any, len(k.StructValue.GetFields()))
		for key, val := range k.StructValue.GetFields() {
			m[key] = valueToAny(val)
		}
		return m
	case *qdrant.Value_ListValue:
		vals := k.ListValue.GetValues()
		out := make([]any, 0, len(vals))
		for _, val := range vals {
			out = append(out, valueToAny(val))
		}
		return out
	default:
		return nil
	}
}

func payloadString(payload map[string]*qdrant.Value, key string) string {
	if v, ok := payload[key]; ok {
		return v.GetStringValue()
	}
	return ""
}
