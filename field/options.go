package field

// GetterFunc is a function that retrieves a field value from an object
// This allows custom field access logic for complex scenarios
// obj is the object to get the field from
// field is the field name to retrieve
// Returns the field value and any error
type GetterFunc func(obj interface{}, field string) (interface{}, error)

// Options configures an Accessor
type Options struct {
	// AllowedFields is a whitelist of fields that can be accessed
	// Empty list means all fields are allowed (no restriction)
	AllowedFields []string

	// Getter is an optional custom function to retrieve field values
	// If nil, reflection is used
	Getter GetterFunc

	// DisableRegex disables REGEX operator support
	DisableRegex bool
}

// DefaultOptions returns default accessor options
func DefaultOptions() *Options {
	return &Options{}
}

// IsFieldAllowed checks if a field is in the allowed fields list
// Returns true if AllowedFields is empty (no restriction) or field is in the list
func (o *Options) IsFieldAllowed(field string) bool {
	if len(o.AllowedFields) == 0 {
		return true
	}
	for _, allowed := range o.AllowedFields {
		if allowed == field {
			return true
		}
	}
	return false
}
