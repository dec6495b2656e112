// Package config centralizes the merge driver's runtime knobs behind
// functional options, the way builder.BuilderOption configures graph
// constructors: an Option mutates a Config before the driver starts,
// later options override earlier ones, and nil/zero inputs are
// no-ops so callers never need a guard before passing one through
// (WithMinSalesForOLS, for which 0 is a valid value, is the exception).
package config

const (
	// DefaultAdjacencyBufferFeet is the rook-predicate buffer applied
	// when no WithAdjacencyBufferFeet option is given.
	DefaultAdjacencyBufferFeet = 30.0
	// DefaultInfillK is the donor count for both spatial-lag passes.
	DefaultInfillK = 3
	// DefaultMinSalesForOLS is the sales-count gate threshold in 4.F.
	DefaultMinSalesForOLS = 3
)

// Option customizes a Config. As a rule, option constructors never
// panic and ignore inputs that would leave the config invalid (a
// non-positive buffer, a zero donor count).
type Option func(cfg *Config)

// Config holds every driver-recognized option from spec.md §6.
type Config struct {
	// DesiredEndingTileCount terminates the merge loop once the tile
	// count reaches this value. Zero means "run until no edges remain".
	DesiredEndingTileCount int
	AdjacencyBufferFeet    float64
	InfillK                int
	MinSalesForOLS         int
	OutputDirectory        string
}

// New returns a Config initialized with defaults, then applies each
// opt in order.
func New(opts ...Option) *Config {
	cfg := &Config{
		AdjacencyBufferFeet: DefaultAdjacencyBufferFeet,
		InfillK:             DefaultInfillK,
		MinSalesForOLS:      DefaultMinSalesForOLS,
		OutputDirectory:     ".",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// WithDesiredEndingTileCount sets the termination tile count.
func WithDesiredEndingTileCount(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.DesiredEndingTileCount = n
		}
	}
}

// WithAdjacencyBufferFeet sets the rook-predicate buffer, in feet.
func WithAdjacencyBufferFeet(feet float64) Option {
	return func(cfg *Config) {
		if feet > 0 {
			cfg.AdjacencyBufferFeet = feet
		}
	}
}

// WithInfillK sets the donor count for the spatial-lag passes.
func WithInfillK(k int) Option {
	return func(cfg *Config) {
		if k > 0 {
			cfg.InfillK = k
		}
	}
}

// WithMinSalesForOLS sets the sales-count gate threshold. Unlike the
// other options, 0 is a valid, meaningful value here (spec.md's seed
// scenario 1 requires min_sales_for_ols=0 to bypass the gate entirely),
// so only a negative count is rejected as invalid.
func WithMinSalesForOLS(n int) Option {
	return func(cfg *Config) {
		if n >= 0 {
			cfg.MinSalesForOLS = n
		}
	}
}

// WithOutputDirectory sets where intermediate tile files are written.
func WithOutputDirectory(dir string) Option {
	return func(cfg *Config) {
		if dir != "" {
			cfg.OutputDirectory = dir
		}
	}
}
