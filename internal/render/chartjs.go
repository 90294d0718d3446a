// Package render builds Chart.js configurations for the dashboard page.
package render

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/smartcity/trafficboard/internal/domain"
)

// Style is the dataset styling applied to one chart kind
type Style struct {
	BackgroundColor []string
	BorderColor     string
}

// DefaultTheme mirrors the dashboard's dark palette
var DefaultTheme = map[domain.ChartKind]Style{
	domain.ChartBar: {
		BackgroundColor: []string{"rgba(249, 115, 22, 0.5)"},
		BorderColor:     "#f97316",
	},
	domain.ChartPie: {
		BackgroundColor: []string{
			"rgba(59, 130, 246, 0.6)",
			"rgba(34, 197, 94, 0.6)",
			"rgba(244, 63, 94, 0.6)",
			"rgba(234, 179, 8, 0.6)",
			"rgba(168, 85, 247, 0.6)",
		},
		BorderColor: "#0ea5e9",
	},
	domain.ChartLine: {
		BackgroundColor: []string{"rgba(99, 102, 241, 0.5)"},
		BorderColor:     "#6366f1",
	},
}

// Dataset is a Chart.js dataset
type Dataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BackgroundColor any       `json:"backgroundColor"`
	BorderColor     string    `json:"borderColor"`
	BorderWidth     int       `json:"borderWidth"`
	Fill            bool      `json:"fill"`
}

// ChartConfig is the JSON document passed to `new Chart(ctx, config)`
type ChartConfig struct {
	Type    domain.ChartKind `json:"type"`
	Data    ChartData        `json:"data"`
	Options map[string]any   `json:"options"`
}

// ChartData holds labels and datasets
type ChartData struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Chart is a rendered chart tracked by the renderer
type Chart struct {
	id       string
	config   ChartConfig
	renderer *ChartJSRenderer
}

// ID returns the chart's handle id
func (c *Chart) ID() string { return c.id }

// Config returns the Chart.js configuration
func (c *Chart) Config() ChartConfig { return c.config }

// ClientConfig implements domain.ConfiguredChart
func (c *Chart) ClientConfig() any { return c.config }

// Dispose releases the chart. Disposing twice is an error.
func (c *Chart) Dispose() error {
	return c.renderer.release(c.id)
}

// ChartJSRenderer implements domain.ChartRenderer for Chart.js
type ChartJSRenderer struct {
	theme  map[domain.ChartKind]Style
	logger *zap.Logger

	mu     sync.Mutex
	charts map[string]*Chart
}

// NewChartJSRenderer creates a renderer using theme, or DefaultTheme when nil
func NewChartJSRenderer(theme map[domain.ChartKind]Style, logger *zap.Logger) *ChartJSRenderer {
	if theme == nil {
		theme = DefaultTheme
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChartJSRenderer{
		theme:  theme,
		logger: logger,
		charts: make(map[string]*Chart),
	}
}

// Render builds a chart for data and registers it under a fresh id
func (r *ChartJSRenderer) Render(kind domain.ChartKind, data domain.CategoricalData) (domain.ChartHandle, error) {
	style, ok := r.theme[kind]
	if !ok {
		return nil, fmt.Errorf("render: unsupported chart kind %q", kind)
	}
	if len(data.Labels) != len(data.Values) {
		return nil, fmt.Errorf("render: %d labels for %d values", len(data.Labels), len(data.Values))
	}

	// A single colour is sent as a string so Chart.js applies it to every bar
	var background any = style.BackgroundColor
	if len(style.BackgroundColor) == 1 {
		background = style.BackgroundColor[0]
	}

	chart := &Chart{
		id: uuid.NewString(),
		config: ChartConfig{
			Type: kind,
			Data: ChartData{
				Labels: append([]string(nil), data.Labels...),
				Datasets: []Dataset{{
					Label:           data.Title,
					Data:            append([]float64(nil), data.Values...),
					BackgroundColor: background,
					BorderColor:     style.BorderColor,
					BorderWidth:     2,
					Fill:            kind == domain.ChartLine,
				}},
			},
			Options: chartOptions(kind),
		},
		renderer: r,
	}

	r.mu.Lock()
	r.charts[chart.id] = chart
	r.mu.Unlock()

	r.logger.Debug("chart rendered", zap.String("id", chart.id), zap.String("kind", string(kind)))
	return chart, nil
}

// Lookup returns a live chart by id
func (r *ChartJSRenderer) Lookup(id string) (*Chart, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.charts[id]
	return c, ok
}

// Active returns the number of charts not yet disposed
func (r *ChartJSRenderer) Active() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.charts)
}

func (r *ChartJSRenderer) release(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.charts[id]; !ok {
		return fmt.Errorf("render: chart %s already disposed", id)
	}
	delete(r.charts, id)
	r.logger.Debug("chart disposed", zap.String("id", id))
	return nil
}

func chartOptions(kind domain.ChartKind) map[string]any {
	opts := map[string]any{
		"responsive": true,
		"plugins": map[string]any{
			"tooltip": map[string]any{
				"enabled":         true,
				"backgroundColor": "#1e293b",
				"titleColor":      "#f8fafc",
				"bodyColor":       "#f97316",
				"borderColor":     "#f97316",
				"borderWidth":     1,
			},
			"legend": map[string]any{
				"labels": map[string]any{"color": "#f8fafc"},
			},
		},
	}
	if kind != domain.ChartPie {
		opts["scales"] = map[string]any{
			"x": map[string]any{"ticks": map[string]any{"color": "#94a3b8"}},
			"y": map[string]any{"ticks": map[string]any{"color": "#94a3b8"}},
		}
	}
	return opts
}
