package navigation

import (
	"github.com/andrescamacho/starnav-go/internal/domain/shared"
	"github.com/andrescamacho/starnav-go/pkg/utils"
)

// RefuelRequirements is the execution-time purchase plan derived from a
// leg's Refuel data and the ship's live fuel state the moment the leg
// begins. Ephemeral, never persisted.
//
// RefuelAmount is the tank top-up: a non-negative multiple of the purchase
// granularity, never exceeding tank capacity. RestockAmount is the
// cargo-hold fuel to buy to cover the forecast through the next
// marketplace.
type RefuelRequirements struct {
	RefuelAmount  int
	RestockAmount int
}

// IsSatisfied reports whether no purchase or transfer is needed.
func (r RefuelRequirements) IsSatisfied() bool {
	return r.RefuelAmount == 0 && r.RestockAmount == 0
}

// RequirementsFor computes the live purchase plan for a leg.
//
// The tank deficit against the leg's fuel_needed is rounded up to the
// purchase granularity and capped at the largest granularity multiple that
// fits the tank. The restock amount is whatever part of fuel_required is
// not already held in cargo.
func RequirementsFor(refuel *Refuel, fuel *shared.Fuel, cargoFuelUnits int) RefuelRequirements {
	if refuel == nil {
		return RefuelRequirements{}
	}

	deficit := refuel.FuelNeeded - fuel.Current
	if deficit < 0 {
		deficit = 0
	}

	refuelAmount := utils.RoundUpToMultiple(deficit, FuelGoodUnitSize)
	maxPurchasable := (fuel.Capacity / FuelGoodUnitSize) * FuelGoodUnitSize
	refuelAmount = utils.Min(refuelAmount, maxPurchasable)

	restockAmount := utils.Max(0, refuel.FuelRequired-cargoFuelUnits)

	return RefuelRequirements{
		RefuelAmount:  refuelAmount,
		RestockAmount: restockAmount,
	}
}
