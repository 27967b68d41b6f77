package distil

// Typed decode targets for the generic Resource values returned by the
// managers; use Resource.Decode to populate them.

// Product is one rated product in a region.
type Product struct {
	ID          string  `json:"id,omitempty"          yaml:"id,omitempty"`
	Name        string  `json:"name"                  yaml:"name"`
	Category    string  `json:"category,omitempty"    yaml:"category,omitempty"`
	Region      string  `json:"region,omitempty"      yaml:"region,omitempty"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Rate        float64 `json:"rate"                  yaml:"rate"`
	Unit        string  `json:"unit"                  yaml:"unit"`
}

// Measurement is the rolled-up usage of one resource over a billing window.
type Measurement struct {
	ResourceID   string         `json:"resource_id"            yaml:"resource_id"`
	ResourceName string         `json:"resource_name,omitempty" yaml:"resource_name,omitempty"`
	ProjectID    string         `json:"project_id,omitempty"   yaml:"project_id,omitempty"`
	Service      string         `json:"service,omitempty"      yaml:"service,omitempty"`
	Volume       float64        `json:"volume"                 yaml:"volume"`
	Unit         string         `json:"unit"                   yaml:"unit"`
	Metadata     map[string]any `json:"metadata,omitempty"     yaml:"metadata,omitempty"`
}

// Invoice is one issued invoice.
type Invoice struct {
	ID        string         `json:"id,omitempty"      yaml:"id,omitempty"`
	ProjectID string         `json:"project_id,omitempty" yaml:"project_id,omitempty"`
	Date      string         `json:"date,omitempty"    yaml:"date,omitempty"`
	Status    string         `json:"status,omitempty"  yaml:"status,omitempty"`
	TotalCost float64        `json:"total_cost"        yaml:"total_cost"`
	Details   map[string]any `json:"details,omitempty" yaml:"details,omitempty"`
}

// Quotation is the estimated cost of the current, not yet invoiced, period.
type Quotation struct {
	ProjectID string         `json:"project_id,omitempty" yaml:"project_id,omitempty"`
	Date      string         `json:"date,omitempty"    yaml:"date,omitempty"`
	TotalCost float64        `json:"total_cost"        yaml:"total_cost"`
	Details   map[string]any `json:"details,omitempty" yaml:"details,omitempty"`
}

// Credit is a credit applied to a project.
type Credit struct {
	Code        string  `json:"code"                   yaml:"code"`
	Type        string  `json:"type,omitempty"         yaml:"type,omitempty"`
	Balance     float64 `json:"balance"                yaml:"balance"`
	StartDate   string  `json:"start_date,omitempty"   yaml:"start_date,omitempty"`
	ExpiryDate  string  `json:"expiry_date,omitempty"  yaml:"expiry_date,omitempty"`
	RecipientID string  `json:"recipient,omitempty"    yaml:"recipient,omitempty"`
}

// Health reports per-subsystem service health.
type Health struct {
	Usage     map[string]any `json:"usage,omitempty"     yaml:"usage,omitempty"`
	Processes map[string]any `json:"processes,omitempty" yaml:"processes,omitempty"`
	ERP       map[string]any `json:"erp,omitempty"       yaml:"erp,omitempty"`
}
