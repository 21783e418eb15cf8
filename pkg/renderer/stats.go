package renderer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"
)

// WorkerStats counts the work done by one worker
type WorkerStats struct {
	Rows    int
	Pixels  int
	Samples int64
	Rays    int64 // Rays traced, including every bounce
}

func (s *WorkerStats) add(other WorkerStats) {
	s.Rows += other.Rows
	s.Pixels += other.Pixels
	s.Samples += other.Samples
	s.Rays += other.Rays
}

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width           int
	Height          int
	SamplesPerPixel int
	Duration        time.Duration
	Workers         []WorkerStats // Indexed by worker ID
}

// Totals sums the per-worker statistics
func (s RenderStats) Totals() WorkerStats {
	var total WorkerStats
	for _, w := range s.Workers {
		total.add(w)
	}
	return total
}

// RaysPerSecond returns the overall tracing throughput
func (s RenderStats) RaysPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.Totals().Rays) / s.Duration.Seconds()
}

// Table returns a tabular representation of the per-worker statistics
func (s RenderStats) Table() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Worker", "Rows", "Pixels", "Samples", "Rays"})
	for id, w := range s.Workers {
		table.Append([]string{
			fmt.Sprintf("%d", id),
			fmt.Sprintf("%d", w.Rows),
			fmt.Sprintf("%d", w.Pixels),
			fmt.Sprintf("%d", w.Samples),
			fmt.Sprintf("%d", w.Rays),
		})
	}

	total := s.Totals()
	table.SetFooter([]string{
		"TOTAL",
		fmt.Sprintf("%d", total.Rows),
		fmt.Sprintf("%d", total.Pixels),
		fmt.Sprintf("%d", total.Samples),
		fmt.Sprintf("%d", total.Rays),
	})
	table.SetCaption(true, fmt.Sprintf("%s, %.0f rays/s", s.Duration.Round(time.Millisecond), s.RaysPerSecond()))

	table.Render()
	return buf.String()
}
