package display

import (
	"fmt"
	"io"

	"github.com/bbernstein/nearbystops/internal/models"
)

// Presenter writes each stop's name on its own line, in the given order.
type Presenter struct {
	out io.Writer
}

func NewPresenter(out io.Writer) *Presenter {
	return &Presenter{out: out}
}

func (p *Presenter) Present(stops []models.StopPoint) error {
	for _, stop := range stops {
		if _, err := fmt.Fprintln(p.out, stop.Name); err != nil {
			return fmt.Errorf("writing stop %s: %w", stop.ID, err)
		}
	}
	return nil
}
