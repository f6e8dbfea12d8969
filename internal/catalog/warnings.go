// Package catalog implements the product normalization pipeline: field
// splitting, spec/feature normalization, status resolution, deduplication,
// category grouping and hero selection. The package is pure; it performs no
// I/O and keeps no state between builds.
package catalog

// Severity classifies a warning record.
type Severity string

// Warning severities.
const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Warning codes emitted by the pipeline.
const (
	CodeMissingModel    = "missing_model"
	CodeMissingCategory = "missing_category"
	CodeEmptyContent    = "empty_content"
	CodeDuplicateModel  = "duplicate_model"
	CodeStatusNote      = "status_note"
	CodeInvalidPrice    = "invalid_price"
	CodeInvalidRules    = "invalid_rules"
)

// Warning is a single data-quality record. Warnings never abort a build.
type Warning struct {
	Severity Severity          `json:"severity"`
	Code     string            `json:"code"`
	Message  string            `json:"message"`
	Context  map[string]string `json:"context,omitempty"`
}

// Warnings is an append-only collector the orchestrator writes to and the
// host drains after each build. It replaces any process-wide logging state.
type Warnings struct {
	records []Warning
}

// NewWarnings creates an empty collector.
func NewWarnings() *Warnings {
	return &Warnings{}
}

// Add appends a warning record. A nil collector discards the record.
func (w *Warnings) Add(severity Severity, code, message string, context map[string]string) {
	if w == nil {
		return
	}

	w.records = append(w.records, Warning{
		Severity: severity,
		Code:     code,
		Message:  message,
		Context:  context,
	})
}

// All returns the collected records in emission order.
func (w *Warnings) All() []Warning {
	if w == nil {
		return nil
	}

	return w.records
}

// Len returns the number of collected records.
func (w *Warnings) Len() int {
	if w == nil {
		return 0
	}

	return len(w.records)
}

// ByCode returns the records carrying the given code.
func (w *Warnings) ByCode(code string) []Warning {
	var matched []Warning

	for _, record := range w.All() {
		if record.Code == code {
			matched = append(matched, record)
		}
	}

	return matched
}
