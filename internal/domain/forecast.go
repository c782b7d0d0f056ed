package domain

import "time"

// Attribute names as StormGlass spells them in requests and responses.
const (
	AttrSwellDirection = "swellDirection"
	AttrSwellHeight    = "swellHeight"
	AttrSwellPeriod    = "swellPeriod"
	AttrWaveDirection  = "waveDirection"
	AttrWaveHeight     = "waveHeight"
	AttrWindDirection  = "windDirection"
	AttrWindSpeed      = "windSpeed"
)

// Attributes is the set of params every forecast point requires.
var Attributes = []string{
	AttrSwellDirection,
	AttrSwellHeight,
	AttrSwellPeriod,
	AttrWaveDirection,
	AttrWaveHeight,
	AttrWindDirection,
	AttrWindSpeed,
}

// RawForecastHour is one timestep of the provider response.
type RawForecastHour struct {
	Time           string       `json:"time"`
	WaveHeight     SourceValues `json:"waveHeight"`
	WaveDirection  SourceValues `json:"waveDirection"`
	SwellDirection SourceValues `json:"swellDirection"`
	SwellHeight    SourceValues `json:"swellHeight"`
	SwellPeriod    SourceValues `json:"swellPeriod"`
	WindDirection  SourceValues `json:"windDirection"`
	WindSpeed      SourceValues `json:"windSpeed"`
}

// RawForecastResponse is the body returned by the point endpoint. The meta
// block is not needed and is left undecoded.
type RawForecastResponse struct {
	Hours []RawForecastHour `json:"hours"`
}

// ForecastPoint is a normalized forecast hour with one value per attribute.
// Wave height goes out on the wire as "waveWeight".
type ForecastPoint struct {
	Time           string  `json:"time"`
	WaveHeight     float64 `json:"waveWeight"`
	WaveDirection  float64 `json:"waveDirection"`
	SwellDirection float64 `json:"swellDirection"`
	SwellHeight    float64 `json:"swellHeight"`
	SwellPeriod    float64 `json:"swellPeriod"`
	WindDirection  float64 `json:"windDirection"`
	WindSpeed      float64 `json:"windSpeed"`
}

// SpotForecast is the normalized forecast for a spot as published downstream.
type SpotForecast struct {
	Spot      Spot            `json:"spot"`
	Source    Source          `json:"source"`
	FetchedAt time.Time       `json:"fetched_at"`
	Points    []ForecastPoint `json:"points"`
}

// Normalize flattens a raw response into forecast points using the values
// reported by src. Hours missing any attribute under src are skipped. The
// output keeps input order.
func Normalize(resp RawForecastResponse, src Source) []ForecastPoint {
	points := make([]ForecastPoint, 0, len(resp.Hours))
	for _, hour := range resp.Hours {
		if p, ok := hour.point(src); ok {
			points = append(points, p)
		}
	}
	return points
}

// point builds a ForecastPoint from the hour, reporting false if any
// attribute has no value under src.
func (h RawForecastHour) point(src Source) (ForecastPoint, bool) {
	p := ForecastPoint{Time: h.Time}
	fields := []struct {
		dst *float64
		src SourceValues
	}{
		{&p.WaveHeight, h.WaveHeight},
		{&p.WaveDirection, h.WaveDirection},
		{&p.SwellDirection, h.SwellDirection},
		{&p.SwellHeight, h.SwellHeight},
		{&p.SwellPeriod, h.SwellPeriod},
		{&p.WindDirection, h.WindDirection},
		{&p.WindSpeed, h.WindSpeed},
	}
	for _, f := range fields {
		v, ok := f.src.Get(src)
		if !ok {
			return ForecastPoint{}, false
		}
		*f.dst = v
	}
	return p, true
}
