package domain

// ChartKind is the visual form a chart takes in the browser
type ChartKind string

const (
	ChartBar  ChartKind = "bar"
	ChartPie  ChartKind = "pie"
	ChartLine ChartKind = "line"
)

// CategoricalData is a labeled series handed to a renderer
type CategoricalData struct {
	Title  string    `json:"title"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// ChartHandle is a live chart that can be torn down
type ChartHandle interface {
	ID() string
	Dispose() error
}

// ConfiguredChart is a handle that carries the client-side configuration
// it was rendered with. The configuration stays valid after Dispose.
type ConfiguredChart interface {
	ChartHandle
	ClientConfig() any
}

// ChartRenderer turns categorical data into a chart
type ChartRenderer interface {
	Render(kind ChartKind, data CategoricalData) (ChartHandle, error)
}
