// Command genfixture regenerates the normalized forecast fixture from a raw
// StormGlass response fixture. It runs the same domain.Normalize used by the
// client so the expected test output always matches real behavior.
//
// Usage:
//
//	go run ./cmd/genfixture \
//	  -in data/mock/stormglass_weather_3_hours.json \
//	  -out data/mock/stormglass_weather_3_hours_normalized.json
//
// With -check the output file is compared instead of written, and the
// command exits non-zero when it is stale.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/couchcryptid/surf-forecast-etl/internal/domain"
	"github.com/google/go-cmp/cmp"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("genfixture", flag.ContinueOnError)
	in := fs.String("in", "", "path to raw StormGlass response fixture")
	out := fs.String("out", "", "path to normalized fixture")
	source := fs.String("source", string(domain.SourceNOAA), "source to select values from")
	check := fs.Bool("check", false, "compare against -out instead of writing it")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *in == "" || *out == "" {
		fs.Usage()
		return fmt.Errorf("missing required flags: -in, -out")
	}

	src, err := domain.ParseSource(*source)
	if err != nil {
		return err
	}

	points, err := normalizeFile(*in, src)
	if err != nil {
		return err
	}

	if *check {
		return checkFixture(*out, points)
	}

	data, err := json.MarshalIndent(points, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal points: %w", err)
	}
	if err := os.WriteFile(*out, append(data, '\n'), 0o644); err != nil { //nolint:gosec // fixture file
		return fmt.Errorf("write %s: %w", *out, err)
	}
	log.Printf("wrote %d points (%s) to %s", len(points), src, *out)
	return nil
}

func normalizeFile(path string, src domain.Source) ([]domain.ForecastPoint, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path from flag
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var resp domain.RawForecastResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	points := domain.Normalize(resp, src)
	if dropped := len(resp.Hours) - len(points); dropped > 0 {
		log.Printf("dropped %d of %d hours missing %s values", dropped, len(resp.Hours), src)
	}
	return points, nil
}

func checkFixture(path string, want []domain.ForecastPoint) error {
	data, err := os.ReadFile(path) //nolint:gosec // path from flag
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	var got []domain.ForecastPoint
	if err := json.Unmarshal(data, &got); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		return fmt.Errorf("%s is stale (-want +got):\n%s", path, diff)
	}
	log.Printf("%s is up to date (%d points)", path, len(got))
	return nil
}
