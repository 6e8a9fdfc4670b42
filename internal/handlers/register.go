package handlers

import "github.com/laundroverse/simcore/internal/dispatch"

// RegisterAll binds every command handler in the catalog to a fresh
// CommandDispatcher. Engine construction calls this once at startup.
func RegisterAll(d *dispatch.CommandDispatcher) {
	RegisterFinancial(d)
	RegisterOperational(d)
	RegisterStaffing(d)
	RegisterSocial(d)
	RegisterVendor(d)
	RegisterCompetition(d)
}
