package domain

// UtilityCostPerLoad and SuppliesCostPerLoad are the variable cost
// components of running one wash load, shared by the ticker (which bills
// them) and the regulator (which uses their sum as the reference
// cost-per-load a price is checked against for predatory pricing).
const (
	UtilityCostPerLoad  = 0.65
	SuppliesCostPerLoad = 0.35
)
