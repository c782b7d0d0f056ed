// Command fetchpoints fetches a single StormGlass point forecast and prints
// the normalized points as JSON. Provider settings come from the same
// environment variables as the service.
//
// A .env file in the working directory is loaded first when present.
//
// Usage:
//
//	STORMGLASS_TOKEN=... go run ./cmd/fetchpoints -lat -33.792726 -lng 151.289824
//
// Exit codes: 1 usage or config error, 2 provider rejected the request,
// 3 provider could not be reached.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/surf-forecast-etl/internal/adapter/stormglass"
	"github.com/couchcryptid/surf-forecast-etl/internal/config"
	"github.com/couchcryptid/surf-forecast-etl/internal/domain"
	"github.com/couchcryptid/surf-forecast-etl/internal/observability"
	"github.com/joho/godotenv"
)

const (
	exitOK = iota
	exitUsage
	exitResponseError
	exitRequestError
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "load .env:", err)
	}
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("fetchpoints", flag.ContinueOnError)
	flags.SetOutput(stderr)
	lat := flags.String("lat", "", "latitude in decimal degrees")
	lng := flags.String("lng", "", "longitude in decimal degrees")
	if err := flags.Parse(args); err != nil {
		return exitUsage
	}

	latitude, longitude, err := domain.ParseCoordinates(*lat, *lng)
	if err != nil {
		fmt.Fprintln(stderr, err)
		flags.Usage()
		return exitUsage
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, "load config:", err)
		return exitUsage
	}

	logger := observability.NewLoggerTo(stderr, cfg.LogLevel, cfg.LogFormat)
	client, err := stormglass.NewClient(stormglass.Options{
		BaseURL:   cfg.StormGlassBaseURL,
		Token:     cfg.StormGlassToken,
		Source:    cfg.StormGlassSource,
		Transport: stormglass.NewHTTPTransport(cfg.StormGlassTimeout),
		Logger:    logger,
		Metrics:   observability.NewMetricsForTesting(),
	})
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	points, err := client.FetchPoints(ctx, latitude, longitude)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitCode(err)
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(points); err != nil {
		fmt.Fprintln(stderr, "encode points:", err)
		return exitUsage
	}
	return exitOK
}

func exitCode(err error) int {
	var respErr *domain.ResponseError
	if errors.As(err, &respErr) {
		return exitResponseError
	}
	var reqErr *domain.RequestError
	if errors.As(err, &reqErr) {
		return exitRequestError
	}
	return exitUsage
}
