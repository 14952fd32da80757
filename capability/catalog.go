package capability

import "github.com/google/jsonschema-go/jsonschema"

// Summary describes one registered capability for introspection surfaces.
// It is never consulted during dispatch.
type Summary struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	InputSchema *jsonschema.Schema `json:"inputSchema"`
}

// Catalog renders every registered capability as a summary, in
// registration order.
func Catalog(r *Registry) []Summary {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Summary, 0, len(r.order))
	for _, name := range r.order {
		d := r.byName[name]
		out = append(out, Summary{
			Name:        d.Name,
			Description: d.Description,
			InputSchema: schemaFor(d.Params),
		})
	}
	return out
}

func schemaFor(params []Param) *jsonschema.Schema {
	s := &jsonschema.Schema{Type: "object"}
	if len(params) == 0 {
		return s
	}
	s.Properties = make(map[string]*jsonschema.Schema, len(params))
	for _, p := range params {
		s.Properties[p.Name] = &jsonschema.Schema{Type: string(p.Kind)}
		if p.Required {
			s.Required = append(s.Required, p.Name)
		}
	}
	return s
}
