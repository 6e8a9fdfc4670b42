// Package regulator injects consequence events: fines, investigations,
// and regulatory status changes triggered by an agent's own pricing,
// staffing, and compliance behavior. It never injects narrative color —
// that belongs to package gamemaster — and the two packages' allowed kind
// sets are strictly disjoint.
package regulator

import (
	"fmt"
	"math"

	"github.com/laundroverse/simcore/internal/domain"
	"github.com/laundroverse/simcore/internal/events"
	"github.com/laundroverse/simcore/internal/idgen"
)

// AllowedKinds is the exhaustive set of event kinds the regulator may
// emit. Inspect asserts every event it builds against this set.
var AllowedKinds = map[events.Kind]bool{
	events.KindRegulatoryFinding:          true,
	events.KindRegulatoryStatusUpdated:    true,
	events.KindInvestigationStarted:       true,
	events.KindInvestigationStageAdvanced: true,
	events.KindDefaultRecorded:            true,
}

// predatoryPriceFraction is the ceiling below computed cost-per-load a
// service's price must fall under to trigger a predatory-pricing finding.
// costPerLoad is the variable cost the ticker bills against every load
// (utilities plus supplies); a price under 40% of that floor can't be
// ordinary discounting, it's pricing to drive out competition. Chosen as
// a round number well below normal promotional pricing (which rarely
// exceeds 20-30% off cost) so routine discounts don't trip it.
const predatoryPriceFraction = 0.4
const predatoryPriceWeeks = 2

var costPerLoad = domain.UtilityCostPerLoad + domain.SuppliesCostPerLoad

// Collusion detection thresholds: a counterparty the agent has messaged
// collusionFrequencyThreshold+ times within the trailing
// collusionFrequencyWindow weeks, or sent one message longer than
// collusionLengthThreshold characters, is "suspiciously communicative."
// That alone isn't enough — it only triggers an investigation combined
// with price alignment: some service priced within
// collusionPriceAlignmentTolerance of the location's observed market price.
const (
	collusionFrequencyWindow         = 4
	collusionFrequencyThreshold      = 3
	collusionLengthThreshold         = 200
	collusionPriceAlignmentTolerance = 0.05
)

// scandalEscalationThreshold is the cumulative active-scandal severity
// (each marker scored 0-1) past which the regulator treats an agent's
// standing as serious enough for a full investigation rather than a warning.
const scandalEscalationThreshold = 1.0

// Inspect examines state, as folded so far, and returns any consequence
// events the regulator decides to issue for week/day.
func Inspect(state *domain.AgentState, week, day int) ([]events.Envelope, error) {
	var out []events.Envelope
	emit := func(kind events.Kind, payload any) {
		out = append(out, events.Envelope{
			EventID: idgen.NewEventID(), Kind: kind, AgentID: state.AgentID,
			Week: week, Day: day, Payload: payload,
		})
	}

	for locID, loc := range state.Locations {
		for service, price := range loc.ActivePricing {
			if price >= costPerLoad*predatoryPriceFraction {
				continue
			}
			fineID := fmt.Sprintf("predatory-%s-%s-w%d", locID, service, week)
			if fineAlreadyIssued(state, fineID) {
				continue
			}
			emit(events.KindRegulatoryFinding, events.RegulatoryFindingPayload{
				FineID:      fineID,
				Description: fmt.Sprintf("pricing %s at %.2f against cost-per-load %.2f, below predatory floor", service, price, costPerLoad),
				FineAmount:  500,
				DueWeek:     week + 4,
			})
			if state.RegulatoryStatus == domain.RegulatoryNormal {
				emit(events.KindRegulatoryStatusUpdated, events.RegulatoryStatusUpdatedPayload{
					NewStatus: string(domain.RegulatoryWarning),
					Reason:    fmt.Sprintf("predatory pricing on %s at %s", service, locID),
				})
				continue
			}
			// Already warned once: sustained predatory pricing past the
			// grace window escalates to a full investigation instead of a
			// second flat fine.
			investigationID := fmt.Sprintf("predatory-inv-%s-%s-w%d", locID, service, week)
			if _, active := state.ActiveInvestigations[investigationID]; !active {
				emit(events.KindInvestigationStarted, events.InvestigationStartedPayload{
					InvestigationID: investigationID,
					Reason:          fmt.Sprintf("sustained predatory pricing on %s at %s beyond %d weeks", service, locID, predatoryPriceWeeks),
					Severity:        0.6,
				})
			}
		}

		for _, s := range loc.Staff {
			if s.HourlyRate >= 7.25 {
				continue
			}
			fineID := fmt.Sprintf("wage-%s-%s-w%d", locID, s.ID, week)
			if fineAlreadyIssued(state, fineID) {
				continue
			}
			emit(events.KindRegulatoryFinding, events.RegulatoryFindingPayload{
				FineID:      fineID,
				Description: "wages below statutory floor",
				FineAmount:  500,
				DueWeek:     week + 4,
			})
		}
	}

	for targetAgentID, inv := range collusionFindings(state, week) {
		if _, active := state.ActiveInvestigations[inv.investigationID]; active {
			continue
		}
		emit(events.KindInvestigationStarted, events.InvestigationStartedPayload{
			InvestigationID: inv.investigationID,
			Reason:          fmt.Sprintf("frequent or lengthy communication with %s combined with price alignment on %s", targetAgentID, inv.service),
			Severity:        0.5,
		})
	}

	for investigationID, inv := range state.ActiveInvestigations {
		nextStage, closed := advanceStage(inv.CurrentStage)
		emit(events.KindInvestigationStageAdvanced, events.InvestigationStageAdvancedPayload{
			InvestigationID: investigationID, CurrentStage: nextStage,
		})
		if closed && inv.Severity >= 0.5 {
			emit(events.KindRegulatoryFinding, events.RegulatoryFindingPayload{
				FineID:      fmt.Sprintf("%s-fine", investigationID),
				Description: "investigation concluded: " + inv.Reason,
				FineAmount:  inv.Severity * 5000,
				DueWeek:     week + 4,
			})
			emit(events.KindRegulatoryStatusUpdated, events.RegulatoryStatusUpdatedPayload{
				NewStatus: string(domain.RegulatoryPenalized), Reason: inv.Reason,
			})
		}
	}

	var cumulativeScandalSeverity float64
	for _, sc := range state.ActiveScandals {
		cumulativeScandalSeverity += sc.Severity
	}
	if cumulativeScandalSeverity > scandalEscalationThreshold && state.RegulatoryStatus != domain.RegulatoryUnderInvestigation && state.RegulatoryStatus != domain.RegulatoryPenalized {
		emit(events.KindRegulatoryStatusUpdated, events.RegulatoryStatusUpdatedPayload{
			NewStatus: string(domain.RegulatoryUnderInvestigation),
			Reason:    fmt.Sprintf("cumulative scandal severity %.2f exceeds threshold", cumulativeScandalSeverity),
		})
	}

	for loanID, loan := range state.Loans {
		overdueWeeks := state.CurrentWeek - loan.TakenWeek - loan.TermWeeks
		if loan.TermWeeks > 0 && overdueWeeks > 4 && loan.Outstanding > 0 {
			emit(events.KindDefaultRecorded, events.DefaultRecordedPayload{
				LoanID: loanID, AmountOwed: loan.Outstanding, PenaltyAmount: loan.Outstanding * 0.1,
			})
		}
	}

	for kind := range groupByKind(out) {
		if !AllowedKinds[kind] {
			return nil, fmt.Errorf("regulator: attempted to emit disallowed kind %q", kind)
		}
	}
	return out, nil
}

type collusionCandidate struct {
	investigationID string
	service         string
}

// collusionFindings scans state's communication log for counterparties the
// agent has talked to frequently or at length, and checks whether any of
// the agent's own service prices sit suspiciously close to the location's
// observed market price for that service. Both conditions together are
// the proxy for "price alignment within a window" this single-agent
// snapshot can support — there is no direct visibility into a specific
// counterparty's own price list, so the location's observed competitor
// price stands in for it.
func collusionFindings(state *domain.AgentState, week int) map[string]collusionCandidate {
	out := make(map[string]collusionCandidate)
	for targetAgentID, records := range state.CommunicationLog {
		var recentCount int
		var maxLen int
		for _, r := range records {
			if week-r.Week <= collusionFrequencyWindow {
				recentCount++
			}
			if r.Length > maxLen {
				maxLen = r.Length
			}
		}
		if recentCount < collusionFrequencyThreshold && maxLen < collusionLengthThreshold {
			continue
		}

		service, aligned := alignedService(state)
		if !aligned {
			continue
		}
		out[targetAgentID] = collusionCandidate{
			investigationID: fmt.Sprintf("collusion-%s-%s-w%d", state.AgentID, targetAgentID, week),
			service:         service,
		}
	}
	return out
}

// alignedService reports the first service, if any, whose active price
// sits within collusionPriceAlignmentTolerance of the location's observed
// market price for that service.
func alignedService(state *domain.AgentState) (string, bool) {
	for _, loc := range state.Locations {
		for service, price := range loc.ActivePricing {
			marketPrice, ok := loc.ObservedCompetitorPrices[service]
			if !ok || marketPrice <= 0 {
				continue
			}
			if math.Abs(price-marketPrice)/marketPrice <= collusionPriceAlignmentTolerance {
				return service, true
			}
		}
	}
	return "", false
}

// advanceStage is the fixed escalation ladder every investigation climbs;
// OPENED starts at InvestigationStarted, the final call to advanceStage
// reaching CLOSED is what actually resolves it.
func advanceStage(current string) (next string, closed bool) {
	switch current {
	case "OPENED":
		return "EVIDENCE_REVIEW", false
	case "EVIDENCE_REVIEW":
		return "HEARING", false
	case "HEARING":
		return "CLOSED", true
	default:
		return "CLOSED", true
	}
}

// fineAlreadyIssued reports whether id already names a pending or resolved
// fine on state, so a replay of the same triggering event never issues a
// second fine for it.
func fineAlreadyIssued(state *domain.AgentState, id string) bool {
	for _, f := range state.PendingFines {
		if f.ID == id {
			return true
		}
	}
	return false
}

func groupByKind(evs []events.Envelope) map[events.Kind]bool {
	seen := make(map[events.Kind]bool, len(evs))
	for _, e := range evs {
		seen[e.Kind] = true
	}
	return seen
}
