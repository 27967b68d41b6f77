package distil

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Resource wraps one raw JSON object from an API response. It is an
// immutable snapshot: the field map is copied at construction and never
// mutated afterwards.
//
// Identity follows the "id" field when present. Two resources of the same
// kind carrying the same "id" value are equal regardless of their remaining
// fields; two resources without an "id" are equal when their field maps are
// deeply equal; a resource with an "id" never equals one without.
type Resource struct {
	owner  any
	kind   string
	fields map[string]any
}

// NewResource wraps fields into a Resource of the default kind. The owner is
// the manager that produced the resource; it may be nil.
func NewResource(owner any, fields map[string]any) Resource {
	return NewNamedResource(owner, "Resource", fields)
}

// NewNamedResource wraps fields into a Resource whose kind names the
// resource family, e.g. "Product" or "Invoice".
func NewNamedResource(owner any, kind string, fields map[string]any) Resource {
	copied := make(map[string]any, len(fields))
	for name, value := range fields {
		copied[name] = value
	}

	return Resource{owner: owner, kind: kind, fields: copied}
}

// Kind returns the resource family name.
func (r Resource) Kind() string {
	return r.kind
}

// Owner returns the manager that produced this resource, or nil.
func (r Resource) Owner() any {
	return r.owner
}

// ID returns the value of the "id" field and whether the resource has one.
func (r Resource) ID() (any, bool) {
	id, ok := r.fields["id"]

	return id, ok
}

// Field returns the value of a named field. A missing field is an error
// wrapping ErrFieldNotFound, never a silent nil.
func (r Resource) Field(name string) (any, error) {
	value, ok := r.fields[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q on %s", ErrFieldNotFound, name, r.kind)
	}

	return value, nil
}

// GetString renders a named field as a string, or "" when absent.
func (r Resource) GetString(name string) string {
	value, ok := r.fields[name]
	if !ok {
		return ""
	}

	return fmt.Sprintf("%v", value)
}

// FieldNames returns the field names in alphabetical order.
func (r Resource) FieldNames() []string {
	names := make([]string, 0, len(r.fields))
	for name := range r.fields {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Fields returns a copy of the backing field map.
func (r Resource) Fields() map[string]any {
	copied := make(map[string]any, len(r.fields))
	for name, value := range r.fields {
		copied[name] = value
	}

	return copied
}

// Decode unmarshals the backing fields into a typed struct such as
// distil.Product.
func (r Resource) Decode(v any) error {
	raw, err := json.Marshal(r.fields)
	if err != nil {
		return fmt.Errorf("encoding resource fields: %w", err)
	}

	err = json.Unmarshal(raw, v)
	if err != nil {
		return fmt.Errorf("decoding %s resource: %w", r.kind, err)
	}

	return nil
}

// Equal reports whether two resources are the same per the identity rules
// described on Resource.
func (r Resource) Equal(other Resource) bool {
	if r.kind != other.kind {
		return false
	}

	id, ok := r.ID()
	otherID, otherOK := other.ID()

	if ok && otherOK {
		return reflect.DeepEqual(id, otherID)
	}

	if ok != otherOK {
		return false
	}

	return reflect.DeepEqual(r.fields, other.fields)
}

// String renders the resource as <Kind field1=value1, field2=value2> with
// fields in alphabetical order.
func (r Resource) String() string {
	parts := make([]string, 0, len(r.fields))
	for _, name := range r.FieldNames() {
		parts = append(parts, fmt.Sprintf("%s=%v", name, r.fields[name]))
	}

	return fmt.Sprintf("<%s %s>", r.kind, strings.Join(parts, ", "))
}
