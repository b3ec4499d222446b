package bound

// DefaultConfidence is the confidence level of MeanUpperBound unless overridden.
const DefaultConfidence = 0.95

type config struct {
	confidence float64
}

func defaultConfig() config {
	return config{confidence: DefaultConfidence}
}

// Option configures ComputeBounds.
type Option func(*config)

// WithConfidence sets the confidence level of the interval behind
// MeanUpperBound. It must lie strictly between 0 and 1.
func WithConfidence(c float64) Option {
	return func(cfg *config) {
		cfg.confidence = c
	}
}
