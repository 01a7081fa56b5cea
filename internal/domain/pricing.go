package domain

import (
	"time"

	"github.com/m04kA/SMC-DetailingCRM/pkg/types"
)

// PriceOverride is a customer-specific inc-VAT price for one
// (service, vehicle size) pair. When active it supersedes the
// service's standard tier price for that customer.
type PriceOverride struct {
	ID          int64
	CustomerID  int64
	ServiceID   int64
	VehicleSize VehicleSize
	PriceIncVAT types.Pence

	// ValidUntil nil means the override never expires
	ValidUntil *time.Time

	CreatedAt time.Time
}

// IsActiveAt returns true if the override applies on the given date
func (o *PriceOverride) IsActiveAt(asOf time.Time) bool {
	return o.ValidUntil == nil || !o.ValidUntil.Before(asOf)
}

// AddOn is an optional extra added on top of the base service price
type AddOn struct {
	ID   int64
	Name string

	// PriceIncVAT inc-VAT price in pence; meaningless when IsVariablePrice
	PriceIncVAT types.Pence

	// IsVariablePrice marks P.O.A. items, excluded from automatic sums
	IsVariablePrice bool

	IsActive bool
}
