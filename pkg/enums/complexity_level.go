package enums

// ComplexityLevel buckets the additive order complexity score.
type ComplexityLevel string

const (
	ComplexityLow    ComplexityLevel = "low"
	ComplexityMedium ComplexityLevel = "medium"
	ComplexityHigh   ComplexityLevel = "high"
)

// String implements fmt.Stringer.
func (c ComplexityLevel) String() string {
	return string(c)
}
