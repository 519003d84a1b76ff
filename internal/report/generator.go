// Package report aggregates categorized item records into the summaries
// shown to the user: spending over time and spending per category.
package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"

	"fjacquet/ticket-csv/internal/dateutils"
	"fjacquet/ticket-csv/internal/models"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger allows setting a configured logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// TimePoint is the total amount spent on one date.
type TimePoint struct {
	Date   string          `json:"Fecha"`
	Amount decimal.Decimal `json:"Importe"`
}

// CategoryTotal is the total amount spent in one category.
type CategoryTotal struct {
	Category string          `json:"Clasificación"`
	Amount   decimal.Decimal `json:"Importe"`
}

// Summary is the aggregation of one batch of item records.
type Summary struct {
	TimeSeries     []TimePoint     `json:"serie_temporal"`
	CategoryTotals []CategoryTotal `json:"gasto_categoria"`
}

// Generator builds summaries from item records.
type Generator struct{}

// NewGenerator creates a new Generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate groups the records by date and by category and sums the
// Importe column of each group. The time series is chronological;
// category totals are sorted by descending amount.
func (g *Generator) Generate(items []models.ItemRecord) Summary {
	byDate := make(map[string]decimal.Decimal)
	byCategory := make(map[string]decimal.Decimal)

	for _, item := range items {
		byDate[item.Date] = byDate[item.Date].Add(item.Amount.Decimal)
		byCategory[item.Category] = byCategory[item.Category].Add(item.Amount.Decimal)
	}

	summary := Summary{
		TimeSeries:     make([]TimePoint, 0, len(byDate)),
		CategoryTotals: make([]CategoryTotal, 0, len(byCategory)),
	}

	for date, amount := range byDate {
		summary.TimeSeries = append(summary.TimeSeries, TimePoint{Date: date, Amount: amount})
	}
	sort.Slice(summary.TimeSeries, func(i, j int) bool {
		return dateutils.Before(summary.TimeSeries[i].Date, summary.TimeSeries[j].Date)
	})

	for category, amount := range byCategory {
		summary.CategoryTotals = append(summary.CategoryTotals, CategoryTotal{
			Category: category,
			Amount:   amount,
		})
	}
	sort.Slice(summary.CategoryTotals, func(i, j int) bool {
		a, b := summary.CategoryTotals[i], summary.CategoryTotals[j]
		if !a.Amount.Equal(b.Amount) {
			return a.Amount.GreaterThan(b.Amount)
		}
		return a.Category < b.Category
	})

	log.WithFields(logrus.Fields{
		"items":      len(items),
		"dates":      len(summary.TimeSeries),
		"categories": len(summary.CategoryTotals),
	}).Info("Generated spending summary")
	return summary
}

// Render serializes a summary in the requested format (json or csv).
func (g *Generator) Render(summary Summary, format string) ([]byte, error) {
	switch format {
	case "json":
		return g.renderJSON(summary)
	case "csv":
		return g.renderCSV(summary)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

func (g *Generator) renderJSON(summary Summary) ([]byte, error) {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return data, nil
}

// renderCSV writes the two tables one after the other, separated by a
// blank line, so the output stays a single file.
func (g *Generator) renderCSV(summary Summary) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"Fecha", "Importe"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV report: %w", err)
	}
	for _, point := range summary.TimeSeries {
		if err := writer.Write([]string{point.Date, models.FormatAmount(point.Amount)}); err != nil {
			return nil, fmt.Errorf("failed to write CSV report: %w", err)
		}
	}
	writer.Flush()
	buf.WriteString("\n")

	writer = csv.NewWriter(&buf)
	if err := writer.Write([]string{"Clasificación", "Importe"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV report: %w", err)
	}
	for _, total := range summary.CategoryTotals {
		if err := writer.Write([]string{total.Category, models.FormatAmount(total.Amount)}); err != nil {
			return nil, fmt.Errorf("failed to write CSV report: %w", err)
		}
	}
	writer.Flush()

	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to write CSV report: %w", err)
	}
	return buf.Bytes(), nil
}
