package enums

import "fmt"

// DistributorStatus reports whether a distributor account is usable at all.
type DistributorStatus string

const (
	DistributorStatusActive   DistributorStatus = "active"
	DistributorStatusInactive DistributorStatus = "inactive"
)

// String implements fmt.Stringer.
func (d DistributorStatus) String() string {
	return string(d)
}

// IsValid reports whether the value is a known DistributorStatus.
func (d DistributorStatus) IsValid() bool {
	return d == DistributorStatusActive || d == DistributorStatusInactive
}

// ParseDistributorStatus converts raw input into a DistributorStatus.
func ParseDistributorStatus(value string) (DistributorStatus, error) {
	switch DistributorStatus(value) {
	case DistributorStatusActive, DistributorStatusInactive:
		return DistributorStatus(value), nil
	}
	return "", fmt.Errorf("invalid distributor status %q", value)
}

// WorkStatus tracks a distributor's day-to-day availability.
type WorkStatus string

const (
	WorkStatusAvailable  WorkStatus = "available"
	WorkStatusOnDelivery WorkStatus = "on_delivery"
	WorkStatusOffDuty    WorkStatus = "off_duty"
)

var validWorkStatuses = []WorkStatus{
	WorkStatusAvailable,
	WorkStatusOnDelivery,
	WorkStatusOffDuty,
}

// String implements fmt.Stringer.
func (w WorkStatus) String() string {
	return string(w)
}

// IsValid reports whether the value is a known WorkStatus.
func (w WorkStatus) IsValid() bool {
	for _, candidate := range validWorkStatuses {
		if candidate == w {
			return true
		}
	}
	return false
}
