package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Spot is a named surf location.
type Spot struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// ParseSpots parses a semicolon-separated list of "name:lat:lng" entries,
// e.g. "manly:-33.792726:151.289824;bondi:-33.8915:151.2767".
// Empty entries are ignored.
func ParseSpots(s string) ([]Spot, error) {
	var spots []Spot
	seen := make(map[string]bool)
	for _, entry := range strings.Split(s, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		spot, err := parseSpot(entry)
		if err != nil {
			return nil, err
		}
		if seen[spot.Name] {
			return nil, fmt.Errorf("duplicate spot %q", spot.Name)
		}
		seen[spot.Name] = true
		spots = append(spots, spot)
	}
	return spots, nil
}

func parseSpot(entry string) (Spot, error) {
	parts := strings.Split(entry, ":")
	if len(parts) != 3 {
		return Spot{}, fmt.Errorf("spot %q: want name:lat:lng", entry)
	}

	name := strings.TrimSpace(parts[0])
	if name == "" {
		return Spot{}, fmt.Errorf("spot %q: empty name", entry)
	}

	lat, lng, err := ParseCoordinates(parts[1], parts[2])
	if err != nil {
		return Spot{}, fmt.Errorf("spot %q: %w", entry, err)
	}

	return Spot{Name: name, Lat: lat, Lng: lng}, nil
}

// ParseCoordinates parses decimal degree strings and checks they fall within
// [-90, 90] latitude and [-180, 180] longitude.
func ParseCoordinates(latStr, lngStr string) (lat, lng float64, err error) {
	lat, err = strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil || !(lat >= -90 && lat <= 90) {
		return 0, 0, fmt.Errorf("invalid latitude %q", latStr)
	}
	lng, err = strconv.ParseFloat(strings.TrimSpace(lngStr), 64)
	if err != nil || !(lng >= -180 && lng <= 180) {
		return 0, 0, fmt.Errorf("invalid longitude %q", lngStr)
	}
	return lat, lng, nil
}
