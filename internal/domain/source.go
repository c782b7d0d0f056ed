package domain

import (
	"fmt"
	"strings"
)

// Source identifies a forecast model published by StormGlass.
type Source string

const (
	SourceDWD   Source = "dwd"
	SourceECMWF Source = "ecmwf"
	SourceFCOO  Source = "fcoo"
	SourceFMI   Source = "fmi"
	SourceICON  Source = "icon"
	SourceMeteo Source = "meteo"
	SourceMeto  Source = "meto"
	SourceNOAA  Source = "noaa"
	SourceSG    Source = "sg"
	SourceSMHI  Source = "smhi"
	SourceYR    Source = "yr"
)

// Sources lists every known source in a stable order.
var Sources = []Source{
	SourceDWD, SourceECMWF, SourceFCOO, SourceFMI, SourceICON, SourceMeteo,
	SourceMeto, SourceNOAA, SourceSG, SourceSMHI, SourceYR,
}

// ParseSource maps a case-insensitive source name to a known Source.
func ParseSource(s string) (Source, error) {
	name := Source(strings.ToLower(strings.TrimSpace(s)))
	for _, src := range Sources {
		if src == name {
			return src, nil
		}
	}
	return "", fmt.Errorf("unknown forecast source %q", s)
}

// SourceValues holds one attribute as reported by each source. A nil field
// means the source did not report it (absent key or JSON null).
type SourceValues struct {
	DWD   *float64 `json:"dwd,omitempty"`
	ECMWF *float64 `json:"ecmwf,omitempty"`
	FCOO  *float64 `json:"fcoo,omitempty"`
	FMI   *float64 `json:"fmi,omitempty"`
	ICON  *float64 `json:"icon,omitempty"`
	Meteo *float64 `json:"meteo,omitempty"`
	Meto  *float64 `json:"meto,omitempty"`
	NOAA  *float64 `json:"noaa,omitempty"`
	SG    *float64 `json:"sg,omitempty"`
	SMHI  *float64 `json:"smhi,omitempty"`
	YR    *float64 `json:"yr,omitempty"`
}

// Get returns the value reported by src and whether it was present.
func (v SourceValues) Get(src Source) (float64, bool) {
	p := v.field(src)
	if p == nil {
		return 0, false
	}
	return *p, true
}

func (v SourceValues) field(src Source) *float64 {
	switch src {
	case SourceDWD:
		return v.DWD
	case SourceECMWF:
		return v.ECMWF
	case SourceFCOO:
		return v.FCOO
	case SourceFMI:
		return v.FMI
	case SourceICON:
		return v.ICON
	case SourceMeteo:
		return v.Meteo
	case SourceMeto:
		return v.Meto
	case SourceNOAA:
		return v.NOAA
	case SourceSG:
		return v.SG
	case SourceSMHI:
		return v.SMHI
	case SourceYR:
		return v.YR
	default:
		return nil
	}
}
