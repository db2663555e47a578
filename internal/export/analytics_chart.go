package export

import (
	"errors"
	"fmt"

	"sudarshan-portal/internal/ledger"

	"github.com/go-analyze/charts"
)

// ErrEmptyChart is returned when every total is zero.
var ErrEmptyChart = errors.New("no transactions to chart")

// TotalsChart renders a PNG pie chart of the non-zero category totals.
func TotalsChart(totals ledger.Totals, title string) ([]byte, error) {
	var values []float64
	var labels []string

	for _, slice := range []struct {
		label string
		value float64
	}{
		{"Sales", totals.Sales},
		{"Purchase", totals.Purchase},
		{"Expense", totals.Expense},
	} {
		if slice.value > 0 {
			labels = append(labels, slice.label)
			values = append(values, slice.value)
		}
	}

	if len(values) == 0 {
		return nil, ErrEmptyChart
	}

	p, err := charts.PieRender(
		values,
		charts.TitleOptionFunc(charts.TitleOption{
			Text: title,
		}),
		charts.LegendLabelsOptionFunc(labels),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create chart: %w", err)
	}

	buf, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}

	return buf, nil
}
