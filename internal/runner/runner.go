package runner

import (
	"context"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bbernstein/nearbystops/internal/models"
	"github.com/bbernstein/nearbystops/internal/postcode"
	"github.com/bbernstein/nearbystops/internal/stoppoint"
)

const (
	// DefaultStopCount is how many stops a run prints.
	DefaultStopCount = 5

	promptMessage = "\nEnter your postcode: "
)

// LineReader prompts once for a line of input and is then released
type LineReader interface {
	Prompt(message string) (string, error)
	Close() error
}

// Presenter renders the stops found by a run
type Presenter interface {
	Present(stops []models.StopPoint) error
}

// Runner asks for a postcode, geocodes it, looks up nearby stops and prints them.
// Each step waits for the previous one; the first failure ends the run.
type Runner struct {
	reader    LineReader
	geocoder  postcode.Geocoder
	locator   stoppoint.Locator
	presenter Presenter
	stopCount int
}

// New creates a Runner that looks up stopCount stops per run
func New(reader LineReader, geocoder postcode.Geocoder, locator stoppoint.Locator, presenter Presenter, stopCount int) *Runner {
	return &Runner{
		reader:    reader,
		geocoder:  geocoder,
		locator:   locator,
		presenter: presenter,
		stopCount: stopCount,
	}
}

// Run performs a single pass of the pipeline. Errors from any stage are returned unchanged.
func (r *Runner) Run(ctx context.Context) error {
	logger := zerolog.Ctx(ctx).With().Str("run_id", uuid.NewString()).Logger()
	ctx = logger.WithContext(ctx)

	input, err := r.reader.Prompt(promptMessage)
	if closeErr := r.reader.Close(); closeErr != nil {
		logger.Warn().Err(closeErr).Msg("Closing line reader")
	}
	if err != nil {
		return err
	}

	cleaned := NormalizePostcode(input)
	logger.Debug().Str("input", input).Str("postcode", cleaned).Msg("Normalized postcode")

	coordinate, err := r.geocoder.Resolve(ctx, cleaned)
	if err != nil {
		return err
	}

	stops, err := r.locator.Nearby(ctx, coordinate, r.stopCount)
	if err != nil {
		return err
	}

	logger.Debug().Int("count", len(stops)).Msg("Presenting stops")
	return r.presenter.Present(stops)
}

// NormalizePostcode removes every whitespace character, keeping the rest in order.
func NormalizePostcode(input string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, input)
}
