package render

// Spec is the rendering directive handed to the map renderer: which
// attribute drives the fill, how it is classified, and how the figure is
// dressed up.
type Spec struct {
	Column    string
	ColorMap  string
	Scheme    string
	Classes   int
	EdgeColor string
	LineWidth float64
	Title     string
	Legend    bool
	Width     int
	Height    int
}

// DefaultSpec is the standard referendum figure: ratio column, diverging
// RdBu palette, 5 quantile classes, black region borders, legend, no
// axes.
func DefaultSpec(width, height int) Spec {
	return Spec{
		Column:    "ratio",
		ColorMap:  "RdBu",
		Scheme:    "quantiles",
		Classes:   5,
		EdgeColor: "black",
		LineWidth: 0.5,
		Title:     "Referendum Results: Choice A Ratio by Region",
		Legend:    true,
		Width:     width,
		Height:    height,
	}
}
