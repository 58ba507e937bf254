package visualizer

import (
	"strings"

	"github.com/guptarohit/asciigraph"
)

// graphLabelWidth is the space asciigraph takes for the y-axis labels.
const graphLabelWidth = 12

// Graph draws the string shape with a labelled displacement axis.
type Graph struct {
	output string
}

func NewGraph() *Graph { return &Graph{} }

func (g *Graph) Name() string { return "graph" }

func (g *Graph) Update(y []float64, limit float64, width, height int) {
	g.output = plot(y, limit, width, height, "")
}

func (g *Graph) View() string { return g.output }

// Probe follows the displacement of one grid point over time.
type Probe struct {
	index   int
	history *History
	output  string
}

// NewProbe watches grid point index, keeping size past values. size <= 0
// selects a default.
func NewProbe(index, size int) *Probe {
	if size <= 0 {
		size = 512
	}
	return &Probe{index: index, history: NewHistory(size)}
}

func (p *Probe) Name() string { return "probe" }

// Record appends the current displacement at the watched point.
func (p *Probe) Record(y []float64) {
	if p.index >= 0 && p.index < len(y) {
		p.history.Push(y[p.index])
	}
}

// Len returns how many values are held.
func (p *Probe) Len() int { return p.history.Len() }

// Update plots the recorded history. It does not record y; see Record.
func (p *Probe) Update(y []float64, limit float64, width, height int) {
	if p.index < 0 || p.index >= len(y) {
		p.output = ""
		return
	}
	cols := width - graphLabelWidth
	if cols < 2 {
		cols = 2
	}
	p.output = plot(p.history.Last(cols), limit, width, height, "displacement at pickup")
}

func (p *Probe) View() string { return p.output }

// Reset forgets the recorded history.
func (p *Probe) Reset() { p.history.Clear() }

func plot(y []float64, limit float64, width, height int, caption string) string {
	if len(y) == 0 || width < graphLabelWidth+2 || height < 3 {
		return ""
	}
	if limit <= 0 {
		limit = 1
	}
	rows := height - 1
	opts := []asciigraph.Option{
		asciigraph.Width(width - graphLabelWidth),
		asciigraph.LowerBound(-limit),
		asciigraph.UpperBound(limit),
		asciigraph.Precision(3),
	}
	if caption != "" {
		rows--
		opts = append(opts, asciigraph.Caption(caption))
	}
	// An odd height lets asciigraph round both bounds outward and add a row.
	rows &^= 1
	if rows < 2 {
		rows = 2
	}
	opts = append(opts, asciigraph.Height(rows))

	data := y
	if len(data) == 1 {
		data = []float64{y[0], y[0]}
	}
	return strings.TrimRight(asciigraph.Plot(data, opts...), "\n")
}
