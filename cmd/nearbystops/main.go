package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/bbernstein/nearbystops/internal/config"
	"github.com/bbernstein/nearbystops/internal/display"
	"github.com/bbernstein/nearbystops/internal/postcode"
	"github.com/bbernstein/nearbystops/internal/prompt"
	"github.com/bbernstein/nearbystops/internal/runner"
	"github.com/bbernstein/nearbystops/internal/stoppoint"
	"github.com/bbernstein/nearbystops/pkg/http/client"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: loading config: %v\n", err)
		os.Exit(1)
	}
	cfg.InitializeLogging()
	cfg.LogConfiguration()

	if err := run(context.Background(), cfg, os.Stdin, os.Stdout); err != nil {
		log.Error().Err(err).Msg("Run failed")
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer) error {
	reader := prompt.New(in, out)
	defer func() {
		_ = reader.Close()
	}()

	httpClient := client.New(client.Options{
		Timeout: cfg.HTTPTimeout,
	})
	geocoder := postcode.NewPostcodesIOGeocoder(httpClient, cfg.PostcodesBaseURL)
	locator := stoppoint.NewTfLStopLocator(httpClient, stoppoint.Options{
		BaseURL:   cfg.TfL.BaseURL,
		AppID:     cfg.TfL.AppID,
		AppKey:    cfg.TfL.AppKey,
		Radius:    cfg.TfL.Radius,
		StopTypes: cfg.TfL.StopTypes,
	})

	r := runner.New(reader, geocoder, locator, display.NewPresenter(out), cfg.StopCount)
	return r.Run(ctx)
}
