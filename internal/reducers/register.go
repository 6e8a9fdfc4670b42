package reducers

import "github.com/laundroverse/simcore/internal/dispatch"

// RegisterAll binds every reducer in the catalog to a fresh
// ProjectionDispatcher. Engine construction calls this once at startup.
func RegisterAll(d *dispatch.ProjectionDispatcher) {
	RegisterCore(d)
	RegisterFinancial(d)
	RegisterOperational(d)
	RegisterStaffing(d)
	RegisterSocial(d)
	RegisterVendor(d)
	RegisterCompetition(d)
}
