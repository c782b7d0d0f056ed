package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSpots(t *testing.T) {
	spots, err := ParseSpots("manly:-33.792726:151.289824; bondi : -33.8915 : 151.2767 ;")
	require.NoError(t, err)

	assert.Equal(t, []Spot{
		{Name: "manly", Lat: -33.792726, Lng: 151.289824},
		{Name: "bondi", Lat: -33.8915, Lng: 151.2767},
	}, spots)
}

func TestParseSpots_Empty(t *testing.T) {
	spots, err := ParseSpots("")
	require.NoError(t, err)
	assert.Empty(t, spots)
}

func TestParseSpots_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "missing field", input: "manly:-33.79", want: "want name:lat:lng"},
		{name: "empty name", input: ":-33.79:151.28", want: "empty name"},
		{name: "bad latitude", input: "manly:north:151.28", want: "invalid latitude"},
		{name: "latitude out of range", input: "manly:-91:151.28", want: "invalid latitude"},
		{name: "longitude out of range", input: "manly:-33.79:181", want: "invalid longitude"},
		{name: "duplicate", input: "manly:1:1;manly:2:2", want: "duplicate spot"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSpots(tt.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseSource(t *testing.T) {
	src, err := ParseSource(" NOAA ")
	require.NoError(t, err)
	assert.Equal(t, SourceNOAA, src)

	_, err = ParseSource("noaaa")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "noaaa")
}

func TestSourceValues_Get(t *testing.T) {
	v := 1.5
	zero := 0.0
	values := SourceValues{NOAA: &v, SG: &zero}

	got, ok := values.Get(SourceNOAA)
	assert.True(t, ok)
	assert.Equal(t, 1.5, got)

	got, ok = values.Get(SourceSG)
	assert.True(t, ok)
	assert.Equal(t, 0.0, got)

	_, ok = values.Get(SourceICON)
	assert.False(t, ok)

	_, ok = values.Get(Source("bogus"))
	assert.False(t, ok)
}

func TestSourceValues_EveryKnownSourceIsAddressable(t *testing.T) {
	for _, src := range Sources {
		t.Run(string(src), func(t *testing.T) {
			var values SourceValues
			require.NoError(t, json.Unmarshal([]byte(`{"`+string(src)+`": 3}`), &values))

			got, ok := values.Get(src)
			require.True(t, ok)
			assert.Equal(t, 3.0, got)
		})
	}
}

func TestParseCoordinates(t *testing.T) {
	lat, lng, err := ParseCoordinates(" -33.792726", "151.289824 ")
	require.NoError(t, err)
	assert.InDelta(t, -33.792726, lat, 1e-9)
	assert.InDelta(t, 151.289824, lng, 1e-9)

	lat, lng, err = ParseCoordinates("90", "-180")
	require.NoError(t, err)
	assert.Equal(t, 90.0, lat)
	assert.Equal(t, -180.0, lng)

	_, _, err = ParseCoordinates("", "151")
	require.ErrorContains(t, err, "invalid latitude")

	_, _, err = ParseCoordinates("-33", "east")
	require.ErrorContains(t, err, "invalid longitude")

	_, _, err = ParseCoordinates("NaN", "151")
	require.ErrorContains(t, err, "invalid latitude")
}
