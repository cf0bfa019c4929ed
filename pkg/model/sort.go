package model

// SortDirection represents the sort direction
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortExpression orders records by one field.
type SortExpression struct {
	Field      string        `json:"field" toml:"field"`
	Direction  SortDirection `json:"direction" toml:"direction"`
	IgnoreCase bool          `json:"ignoreCase,omitempty" toml:"ignore_case,omitempty"`
}

// ValidSortDirections returns all valid sort direction values
func ValidSortDirections() []SortDirection {
	return []SortDirection{SortAsc, SortDesc}
}
