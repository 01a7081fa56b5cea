package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-DetailingCRM/pkg/types"
)

// VehicleSize is the pricing tier a car falls into.
// Car size categories map onto these tiers case-insensitively
// ("Small" → small, "XL" → xl).
type VehicleSize string

const (
	SizeSmall  VehicleSize = "small"
	SizeMedium VehicleSize = "medium"
	SizeLarge  VehicleSize = "large"
	SizeXL     VehicleSize = "xl"
)

// ParseVehicleSize normalizes a car's size category to a pricing tier
func ParseVehicleSize(s string) (VehicleSize, error) {
	switch VehicleSize(strings.ToLower(strings.TrimSpace(s))) {
	case SizeSmall:
		return SizeSmall, nil
	case SizeMedium:
		return SizeMedium, nil
	case SizeLarge:
		return SizeLarge, nil
	case SizeXL:
		return SizeXL, nil
	default:
		return "", fmt.Errorf("unknown vehicle size %q", s)
	}
}

// Service represents a catalog entry of the detailing business
type Service struct {
	ID       int64
	Name     string
	Category string

	// DurationMinutes default appointment length, always within
	// [MinJobDurationMinutes, MaxJobDurationMinutes]
	DurationMinutes int

	// Pricing standard inc-VAT price per vehicle size tier, in pence.
	// A missing tier means the price is on application.
	Pricing map[VehicleSize]types.Pence

	// RequiresQuote forces the "quote required" path regardless of tiers
	RequiresQuote bool

	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StandardPrice returns the inc-VAT tier price for the given size,
// or nil when the tier is not configured (price on application)
func (s *Service) StandardPrice(size VehicleSize) *types.Pence {
	if s.Pricing == nil {
		return nil
	}
	price, ok := s.Pricing[size]
	if !ok {
		return nil
	}
	return &price
}
