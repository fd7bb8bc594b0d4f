package financing

import "github.com/shopspring/decimal"

// ComputeGrants sums the grants a household earning income qualifies for on
// one listing. New-build flats only carry the enhanced grant.
func (g GrantPolicy) ComputeGrants(mode SaleMode, ft FlatType, proximity, income decimal.Decimal) decimal.Decimal {
	total := g.Enhanced(income)
	if mode == SaleModeResale {
		total = total.Add(g.Family(ft, income)).Add(g.Proximity(proximity))
	}
	return total
}

// Enhanced steps the base grant down once per started income step above the
// floor, so an income exactly on a step boundary already takes that step.
func (g GrantPolicy) Enhanced(income decimal.Decimal) decimal.Decimal {
	steps := income.Sub(g.EnhancedIncomeFloor).Div(g.EnhancedIncomeStep).Ceil()
	if steps.IsNegative() {
		steps = decimal.Zero
	}
	return decimal.Max(g.EnhancedBase.Sub(g.EnhancedStepDown.Mul(steps)), decimal.Zero)
}

func (g GrantPolicy) Family(ft FlatType, income decimal.Decimal) decimal.Decimal {
	if income.GreaterThan(g.FamilyIncomeCeiling) {
		return decimal.Zero
	}
	switch ft {
	case FlatType3Room, FlatType4Room:
		return g.FamilySmallFlat
	case FlatType5Room, FlatTypeExecutive:
		return g.FamilyLargeFlat
	}
	return decimal.Zero
}

// Proximity pays the higher amount when buyers live with their parents
// (distance 0) and the lower one when the flat is strictly within the limit.
func (g GrantPolicy) Proximity(distance decimal.Decimal) decimal.Decimal {
	switch {
	case distance.IsZero():
		return g.ProximitySameAddress
	case distance.IsPositive() && distance.LessThan(g.ProximityNearLimit):
		return g.ProximityNear
	}
	return decimal.Zero
}
