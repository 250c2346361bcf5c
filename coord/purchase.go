package coord

import "github.com/nstehr/blitz/blitz-core/model"

// PurchaseInput is the aggregate crew state the purchase decision reads.
type PurchaseInput struct {
	Gatherers       int
	Transporters    int
	Surplus         int // gatherers currently delivering to base themselves
	Balance         int
	Prices          model.Prices
	MaxGatherers    int
	MaxTransporters int
	MiningSlots     int // free mineable tiles reachable from the home base
}

// DecidePurchase picks at most one unit to buy this turn. A transporter is
// only worth buying while some gatherer has no transporter to feed;
// gatherers are capped by the mining slots around base so the crew never
// buys miners with nowhere to stand.
func DecidePurchase(in PurchaseInput) (model.UnitType, bool) {
	if in.Transporters < in.MaxTransporters && in.Surplus > 0 && in.affordable(model.Cart) {
		return model.Cart, true
	}
	if in.Gatherers < min(in.MaxGatherers, in.MiningSlots) && in.affordable(model.Miner) {
		return model.Miner, true
	}
	return "", false
}

func (in PurchaseInput) affordable(t model.UnitType) bool {
	price, ok := in.Prices.Of(t)
	return ok && price <= in.Balance
}
