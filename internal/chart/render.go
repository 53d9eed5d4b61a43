package chart

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"

	"github.com/nozaripo/Data-Wrangling/internal/table"
)

// RenderError reports a chart description that cannot be rendered
// against a table, either an unknown kind or an invalid channel
// binding.
type RenderError struct {
	Kind   Kind
	Detail string
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("chart: render %s: %s", e.Kind, e.Detail)
}

// Figure is a rendered chart: the spec that produced it plus the
// projected data, one map per input row keyed by channel name. It
// serializes to the JSON artifact consumed by plotting frontends.
type Figure struct {
	Spec   *Spec            `json:"spec"`
	Values []map[string]any `json:"values"`
}

// JSON marshals the figure artifact.
func (f *Figure) JSON() ([]byte, error) {
	return json.MarshalIndent(f, "", "  ")
}

// WriteFile writes the figure artifact to path.
func (f *Figure) WriteFile(path string) error {
	data, err := f.JSON()
	if err != nil {
		return fmt.Errorf("chart: marshal figure: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Render projects a table through a chart description. It validates
// the description against the table schema and fails with RenderError,
// but never modifies the table and never draws; the returned Figure
// holds one value map per row.
func Render(t *table.Table, s *Spec) (*Figure, error) {
	if err := validate(t, s); err != nil {
		return nil, err
	}

	bound := s.channels()
	values := make([]map[string]any, t.NumRows())
	for i := range values {
		m := make(map[string]any, len(bound))
		for _, b := range bound {
			c, _ := t.Column(b.field)
			m[b.channel] = c.Value(i)
		}
		values[i] = m
	}
	return &Figure{Spec: s, Values: values}, nil
}

func validate(t *table.Table, s *Spec) error {
	switch s.Kind {
	case KindPoint, KindLine, KindBar, KindHistogram, KindBox, KindArea:
	default:
		return &RenderError{Kind: s.Kind, Detail: "unknown chart kind"}
	}

	switch s.Kind {
	case KindHistogram:
		if s.XField == "" {
			return &RenderError{Kind: s.Kind, Detail: "missing x binding"}
		}
		if s.YField != "" {
			return &RenderError{Kind: s.Kind, Detail: "histogram takes no y binding"}
		}
	case KindBox:
		if s.YField == "" {
			return &RenderError{Kind: s.Kind, Detail: "missing y binding"}
		}
	default:
		if s.XField == "" {
			return &RenderError{Kind: s.Kind, Detail: "missing x binding"}
		}
		if s.YField == "" {
			return &RenderError{Kind: s.Kind, Detail: "missing y binding"}
		}
	}

	for _, b := range s.channels() {
		c, ok := t.Column(b.field)
		if !ok {
			return &RenderError{Kind: s.Kind, Detail: fmt.Sprintf("unknown field %q bound to %s", b.field, b.channel)}
		}
		switch b.channel {
		case "size":
			if !c.IsNumeric() {
				return &RenderError{Kind: s.Kind, Detail: fmt.Sprintf("size requires a numeric field, %q is %s", b.field, c.Kind())}
			}
		case "shape":
			if c.IsNumeric() {
				return &RenderError{Kind: s.Kind, Detail: fmt.Sprintf("shape requires a categorical field, %q is %s", b.field, c.Kind())}
			}
		}
	}

	if err := checkScale(t, "x", s.XField, s.XScale, s.Kind); err != nil {
		return err
	}
	if err := checkScale(t, "y", s.YField, s.YScale, s.Kind); err != nil {
		return err
	}
	if s.Kind == KindHistogram {
		c, _ := t.Column(s.XField)
		if !c.IsNumeric() {
			return &RenderError{Kind: s.Kind, Detail: fmt.Sprintf("histogram requires a numeric x field, %q is %s", s.XField, c.Kind())}
		}
	}
	if s.Kind == KindBox {
		c, _ := t.Column(s.YField)
		if !c.IsNumeric() {
			return &RenderError{Kind: s.Kind, Detail: fmt.Sprintf("box requires a numeric y field, %q is %s", s.YField, c.Kind())}
		}
	}
	return nil
}

func checkScale(t *table.Table, channel, field string, scale Scale, kind Kind) error {
	switch scale {
	case "", ScaleLinear:
		return nil
	case ScaleLog10:
		if field == "" {
			return &RenderError{Kind: kind, Detail: fmt.Sprintf("log10 scale on unbound %s channel", channel)}
		}
		c, _ := t.Column(field)
		if !c.IsNumeric() {
			return &RenderError{Kind: kind, Detail: fmt.Sprintf("log10 scale requires a numeric %s field, %q is %s", channel, field, c.Kind())}
		}
		return nil
	default:
		return &RenderError{Kind: kind, Detail: fmt.Sprintf("unknown scale %q on %s channel", scale, channel)}
	}
}
