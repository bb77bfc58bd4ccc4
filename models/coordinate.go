package models

import "encoding/json"

// Coordinate is the canonical {lat, lon} pair used across the service.
// Upstream payloads are inconsistent about the longitude key, some send
// "lon" and some send "long", so decoding accepts both. The canonical
// "lon" key wins when both are present.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// UnmarshalJSON maps the alternate "long" key onto Lon
func (c *Coordinate) UnmarshalJSON(b []byte) error {
	var raw struct {
		Lat  float64  `json:"lat"`
		Lon  *float64 `json:"lon"`
		Long *float64 `json:"long"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	c.Lat = raw.Lat
	switch {
	case raw.Lon != nil:
		c.Lon = *raw.Lon
	case raw.Long != nil:
		c.Lon = *raw.Long
	}
	return nil
}
