package qbench

import (
	"fmt"
	"sort"
)

// Histogram maps measured outcomes to occurrence counts. Counts always sum to Shots.
type Histogram struct {
	Counts map[int]int `yaml:"counts"`
	Shots  int         `yaml:"shots"`
	Width  int         `yaml:"width"`
}

func NewHistogram(width, shots int) *Histogram {
	return &Histogram{Counts: make(map[int]int), Shots: shots, Width: width}
}

// Count returns how often outcome was measured.
func (h *Histogram) Count(outcome int) int {
	return h.Counts[outcome]
}

// Share is the fraction of shots that landed on outcome.
func (h *Histogram) Share(outcome int) float64 {
	if h.Shots == 0 {
		return 0
	}
	return float64(h.Counts[outcome]) / float64(h.Shots)
}

// ShareOf is the fraction of shots that landed on any of outcomes.
func (h *Histogram) ShareOf(outcomes []int) float64 {
	if h.Shots == 0 {
		return 0
	}

	seen := make(map[int]bool, len(outcomes))
	hits := 0

	for _, o := range outcomes {
		if !seen[o] {
			seen[o] = true
			hits += h.Counts[o]
		}
	}

	return float64(hits) / float64(h.Shots)
}

// MostFrequent returns the outcome with the highest count, the lowest outcome winning ties.
func (h *Histogram) MostFrequent() (outcome, count int) {
	outcome = -1

	for _, o := range h.Outcomes() {
		if c := h.Counts[o]; c > count {
			outcome, count = o, c
		}
	}

	return outcome, count
}

// Outcomes lists the measured outcomes in ascending order.
func (h *Histogram) Outcomes() []int {
	out := make([]int, 0, len(h.Counts))
	for o, c := range h.Counts {
		if c > 0 {
			out = append(out, o)
		}
	}
	sort.Ints(out)
	return out
}

// Bitstring formats outcome most significant bit first, Width bits wide.
func (h *Histogram) Bitstring(outcome int) string {
	return fmt.Sprintf("%0*b", h.Width, outcome)
}

// Bitstrings returns the histogram keyed by bitstring.
func (h *Histogram) Bitstrings() map[string]int {
	out := make(map[string]int, len(h.Counts))
	for o, c := range h.Counts {
		out[h.Bitstring(o)] = c
	}
	return out
}

// Total sums all counts; equal to Shots for a histogram produced by Measure.
func (h *Histogram) Total() int {
	total := 0
	for _, c := range h.Counts {
		total += c
	}
	return total
}
