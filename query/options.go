package query

// Options contains configuration options for query execution
type Options struct {
	// DefaultLimit is the limit used when Limit was never called or was called
	// with a value <= 0. Zero means no limit.
	DefaultLimit int

	// MaxLimit caps any effective limit. Zero means no cap.
	MaxLimit int
}

// DefaultOptions returns default query options: no default limit, no cap
func DefaultOptions() *Options {
	return &Options{}
}

// ValidateLimit resolves the effective limit for a configured value.
// A result of zero means the result is not truncated.
func (o *Options) ValidateLimit(n int) int {
	if n <= 0 {
		n = o.DefaultLimit
	}
	if n <= 0 {
		return 0
	}
	// Only cap if MaxLimit is set (> 0)
	if o.MaxLimit > 0 && n > o.MaxLimit {
		return o.MaxLimit
	}
	return n
}
