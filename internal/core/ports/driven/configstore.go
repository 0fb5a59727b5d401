package driven

// ConfigStore persists settings as flat dotted keys such as "weights.title".
// Values come back with whatever type the backing format decoded them as
// (TOML yields int64, float64, bool and string); callers coerce.
type ConfigStore interface {
	// Get returns the stored value and whether key is present.
	Get(key string) (any, bool)

	// Set stores a single value and persists it.
	Set(key string, value any) error

	// Update stores every value in one write.
	Update(values map[string]any) error

	// Keys returns the stored keys in sorted order.
	Keys() []string

	// Path names the backing file, or ":memory:".
	Path() string
}
