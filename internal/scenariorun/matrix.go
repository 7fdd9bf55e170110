package scenariorun

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// ConfusionMatrix counts predicted labels per selected scenario.
type ConfusionMatrix struct {
	mu            sync.Mutex
	Counts        map[string]map[string]int `json:"counts"`
	confidenceSum map[string]float64
}

// NewConfusionMatrix creates an empty matrix.
func NewConfusionMatrix() *ConfusionMatrix {
	m := &ConfusionMatrix{
		Counts:        make(map[string]map[string]int, len(scenarioNames)),
		confidenceSum: make(map[string]float64, len(scenarioNames)),
	}
	for _, sc := range scenarioNames {
		m.Counts[sc] = make(map[string]int, len(labelNames))
	}
	return m
}

// Add records one prediction for a scenario.
func (m *ConfusionMatrix) Add(scenario, label string, confidence float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.Counts[scenario]
	if !ok {
		row = make(map[string]int)
		m.Counts[scenario] = row
	}
	row[label]++
	m.confidenceSum[scenario] += confidence
}

// Total returns the number of predictions recorded for scenario.
func (m *ConfusionMatrix) Total(scenario string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.totalLocked(scenario)
}

func (m *ConfusionMatrix) totalLocked(scenario string) int {
	n := 0
	for _, c := range m.Counts[scenario] {
		n += c
	}
	return n
}

// Accuracy is the share of predictions whose label equals the scenario.
func (m *ConfusionMatrix) Accuracy() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	var correct, total int
	for sc, row := range m.Counts {
		correct += row[sc]
		total += m.totalLocked(sc)
	}
	if total == 0 {
		return 0
	}
	return float64(correct) / float64(total)
}

// MeanConfidence returns the average confidence per scenario.
func (m *ConfusionMatrix) MeanConfidence() map[string]float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]float64, len(m.Counts))
	for sc := range m.Counts {
		if n := m.totalLocked(sc); n > 0 {
			out[sc] = m.confidenceSum[sc] / float64(n)
		}
	}
	return out
}

// Render writes the matrix as a fixed-width table.
func (m *ConfusionMatrix) Render(w io.Writer) error {
	conf := m.MeanConfidence()

	m.mu.Lock()
	defer m.mu.Unlock()

	var b strings.Builder
	fmt.Fprintf(&b, "%-10s", "scenario")
	for _, l := range labelNames {
		fmt.Fprintf(&b, " %8s", l)
	}
	fmt.Fprintf(&b, " %8s %9s\n", "total", "mean conf")
	for _, sc := range scenarioNames {
		fmt.Fprintf(&b, "%-10s", sc)
		for _, l := range labelNames {
			fmt.Fprintf(&b, " %8d", m.Counts[sc][l])
		}
		fmt.Fprintf(&b, " %8d %8.1f%%\n", m.totalLocked(sc), conf[sc])
	}
	_, err := io.WriteString(w, b.String())
	return err
}
