// Package domain models StormGlass point-forecast data and its normalized form.
//
// # Data Source
//
// Forecasts come from the StormGlass v2 point endpoint
// (https://api.stormglass.io/v2/weather/point). A request names a coordinate,
// a comma-separated list of params and, optionally, the sources to return.
// The response carries one entry per forecast hour:
//
//	{"hours": [{"time": "2020-04-26T00:00:00+00:00",
//	            "waveHeight": {"noaa": 0.47, "sg": 0.46, "icon": 0.41},
//	            ...}],
//	 "meta": {...}}
//
// Every attribute is an object keyed by source, the numerical model that
// produced the value. Sources are a closed set, see [Source].
//
// # Normalization
//
// A service trusts exactly one source. [Normalize] reads the seven marine
// attributes (wave height/direction, swell direction/height/period, wind
// direction/speed) under that source and emits one [ForecastPoint] per hour.
// An hour missing any attribute under the trusted source is dropped, not
// reported as an error. A value of 0 is a real reading (calm wind, flat swell)
// and is kept; only an absent key or a JSON null counts as missing.
//
// The hour timestamp is passed through as the provider wrote it. On output the
// wave height field is named "waveWeight"; every other attribute keeps its
// provider name.
//
// # Errors
//
// Provider failures surface as one of two kinds, both embedding
// [InternalError]:
//
//   - [ResponseError]: the provider answered with a non-success status.
//   - [RequestError]: no usable response was obtained (network, DNS,
//     timeout, cancellation, undecodable body).
package domain
