// Package chart describes charts declaratively and renders them into
// plot-ready figures. A Spec names a mark kind and binds table fields
// to visual channels; Render projects a table through a Spec without
// drawing anything, so the output can feed any plotting frontend.
package chart

// Kind selects the mark drawn for each row.
type Kind string

const (
	KindPoint     Kind = "point"
	KindLine      Kind = "line"
	KindBar       Kind = "bar"
	KindHistogram Kind = "histogram"
	KindBox       Kind = "box"
	KindArea      Kind = "area"
)

// Scale transforms an axis.
type Scale string

const (
	ScaleLinear Scale = "linear"
	ScaleLog10  Scale = "log10"
)

// Spec is a declarative chart description: one mark kind plus field
// bindings for each visual channel. Unbound channels are empty.
type Spec struct {
	Kind   Kind   `json:"kind"`
	Title  string `json:"title,omitempty"`
	XField string `json:"x,omitempty"`
	YField string `json:"y,omitempty"`
	Color  string `json:"color,omitempty"`
	Size   string `json:"size,omitempty"`
	Shape  string `json:"shape,omitempty"`
	XScale Scale  `json:"xScale,omitempty"`
	YScale Scale  `json:"yScale,omitempty"`
	Facet  string `json:"facet,omitempty"`
}

// Point starts a scatter chart description.
func Point() *Spec { return &Spec{Kind: KindPoint} }

// Line starts a line chart description.
func Line() *Spec { return &Spec{Kind: KindLine} }

// Bar starts a bar chart description.
func Bar() *Spec { return &Spec{Kind: KindBar} }

// Histogram starts a histogram description. Histograms bin the x field
// and take no y binding.
func Histogram() *Spec { return &Spec{Kind: KindHistogram} }

// Box starts a box plot description.
func Box() *Spec { return &Spec{Kind: KindBox} }

// Area starts an area chart description.
func Area() *Spec { return &Spec{Kind: KindArea} }

// X binds the x channel. An optional scale overrides the linear
// default.
func (s *Spec) X(field string, scale ...Scale) *Spec {
	s.XField = field
	if len(scale) > 0 {
		s.XScale = scale[0]
	}
	return s
}

// Y binds the y channel. An optional scale overrides the linear
// default.
func (s *Spec) Y(field string, scale ...Scale) *Spec {
	s.YField = field
	if len(scale) > 0 {
		s.YScale = scale[0]
	}
	return s
}

// ColorBy binds the color channel.
func (s *Spec) ColorBy(field string) *Spec {
	s.Color = field
	return s
}

// SizeBy binds the size channel.
func (s *Spec) SizeBy(field string) *Spec {
	s.Size = field
	return s
}

// ShapeBy binds the shape channel.
func (s *Spec) ShapeBy(field string) *Spec {
	s.Shape = field
	return s
}

// FacetBy splits the chart into small multiples over a field.
func (s *Spec) FacetBy(field string) *Spec {
	s.Facet = field
	return s
}

// WithTitle sets the chart title.
func (s *Spec) WithTitle(title string) *Spec {
	s.Title = title
	return s
}

// channels lists the bound channel names and their fields, in a fixed
// order.
func (s *Spec) channels() []channelBinding {
	all := []channelBinding{
		{"x", s.XField},
		{"y", s.YField},
		{"color", s.Color},
		{"size", s.Size},
		{"shape", s.Shape},
		{"facet", s.Facet},
	}
	bound := all[:0]
	for _, c := range all {
		if c.field != "" {
			bound = append(bound, c)
		}
	}
	return bound
}

type channelBinding struct {
	channel string
	field   string
}
