package distil

import (
	"net/url"
	"sort"
	"strings"
)

// QueryParams collects optional filters for list requests. Multi-value
// filters are serialized as a single comma-joined parameter, e.g.
// ?regions=nz-hlz-1,nz-por-1, values in the order given. Empty filters are
// omitted entirely.
type QueryParams struct {
	Filters map[string][]string
}

// NewQueryParams creates an empty QueryParams.
func NewQueryParams() *QueryParams {
	return &QueryParams{
		Filters: make(map[string][]string),
	}
}

// WithFilter appends values to a named filter.
func (p *QueryParams) WithFilter(name string, values ...string) *QueryParams {
	if p.Filters == nil {
		p.Filters = make(map[string][]string)
	}

	p.Filters[name] = append(p.Filters[name], values...)

	return p
}

// Encode renders the query string, including the leading "?". No filters, or
// only empty ones, yield the empty string so the bare collection path is
// requested.
func (p *QueryParams) Encode() string {
	if p == nil || len(p.Filters) == 0 {
		return ""
	}

	names := make([]string, 0, len(p.Filters))

	for name, values := range p.Filters {
		if len(values) > 0 {
			names = append(names, name)
		}
	}

	if len(names) == 0 {
		return ""
	}

	sort.Strings(names)

	pairs := make([]string, 0, len(names))

	for _, name := range names {
		values := p.Filters[name]

		escaped := make([]string, len(values))
		for i, value := range values {
			escaped[i] = url.QueryEscape(value)
		}

		// Values are joined with a literal comma; escaping each value
		// individually keeps the separator out of the escaping.
		pairs = append(pairs, name+"="+strings.Join(escaped, ","))
	}

	return "?" + strings.Join(pairs, "&")
}
