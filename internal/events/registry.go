package events

import (
	"encoding/json"
	"fmt"
	"reflect"
	"time"
)

func parseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}

// payloadTypes maps each event kind to its concrete payload type, so a
// persisted envelope can be decoded back into the same struct a handler,
// the ticker, or the adjudication layer originally constructed — never
// into a generic map. Every reducer's payload[T] helper type-asserts
// Envelope.Payload directly, so this registry is what makes a reload from
// FileLog or SQLiteLog replayable at all.
var payloadTypes = map[Kind]reflect.Type{
	KindAgentCreated:               reflect.TypeOf(AgentCreatedPayload{}),
	KindAgentRetired:               reflect.TypeOf(AgentRetiredPayload{}),
	KindTimeAdvanced:               reflect.TypeOf(TimeAdvancedPayload{}),
	KindAuditSnapshotRecorded:      reflect.TypeOf(AuditSnapshotRecordedPayload{}),
	KindFundsTransferred:           reflect.TypeOf(FundsTransferredPayload{}),
	KindLoanTaken:                  reflect.TypeOf(LoanTakenPayload{}),
	KindDebtPaymentProcessed:       reflect.TypeOf(DebtPaymentProcessedPayload{}),
	KindMarketingBoostApplied:      reflect.TypeOf(MarketingBoostAppliedPayload{}),
	KindInterestAccrued:            reflect.TypeOf(InterestAccruedPayload{}),
	KindTaxLiabilityCalculated:     reflect.TypeOf(TaxLiabilityCalculatedPayload{}),
	KindTaxBracketAdjusted:         reflect.TypeOf(TaxBracketAdjustedPayload{}),
	KindDefaultRecorded:            reflect.TypeOf(DefaultRecordedPayload{}),
	KindPriceSet:                   reflect.TypeOf(PriceSetPayload{}),
	KindEquipmentPurchased:         reflect.TypeOf(EquipmentPurchasedPayload{}),
	KindEquipmentSold:              reflect.TypeOf(EquipmentSoldPayload{}),
	KindEquipmentRepaired:          reflect.TypeOf(EquipmentRepairedPayload{}),
	KindSuppliesAcquired:           reflect.TypeOf(SuppliesAcquiredPayload{}),
	KindNewLocationOpened:          reflect.TypeOf(NewLocationOpenedPayload{}),
	KindLocationClosed:             reflect.TypeOf(LocationClosedPayload{}),
	KindLocationListingRemoved:     reflect.TypeOf(LocationListingRemovedPayload{}),
	KindMachineStatusChanged:       reflect.TypeOf(MachineStatusChangedPayload{}),
	KindMachineBrokenDown:          reflect.TypeOf(MachineBrokenDownPayload{}),
	KindMachineWearUpdated:         reflect.TypeOf(MachineWearUpdatedPayload{}),
	KindDailyRevenueProcessed:      reflect.TypeOf(DailyRevenueProcessedPayload{}),
	KindWeeklyFixedCostsBilled:     reflect.TypeOf(WeeklyFixedCostsBilledPayload{}),
	KindWeeklyWagesBilled:          reflect.TypeOf(WeeklyWagesBilledPayload{}),
	KindStockoutStarted:            reflect.TypeOf(StockoutStartedPayload{}),
	KindStockoutEnded:              reflect.TypeOf(StockoutEndedPayload{}),
	KindStaffHired:                 reflect.TypeOf(StaffHiredPayload{}),
	KindStaffFired:                 reflect.TypeOf(StaffFiredPayload{}),
	KindStaffQuit:                  reflect.TypeOf(StaffQuitPayload{}),
	KindWageAdjusted:               reflect.TypeOf(WageAdjustedPayload{}),
	KindBenefitImplemented:         reflect.TypeOf(BenefitImplementedPayload{}),
	KindSocialScoreAdjusted:        reflect.TypeOf(SocialScoreAdjustedPayload{}),
	KindRegulatoryStatusUpdated:    reflect.TypeOf(RegulatoryStatusUpdatedPayload{}),
	KindScandalStarted:             reflect.TypeOf(ScandalStartedPayload{}),
	KindScandalMarkerDecayed:       reflect.TypeOf(ScandalMarkerDecayedPayload{}),
	KindRegulatoryFinding:          reflect.TypeOf(RegulatoryFindingPayload{}),
	KindFinePaid:                   reflect.TypeOf(FinePaidPayload{}),
	KindFineAppealed:               reflect.TypeOf(FineAppealedPayload{}),
	KindDilemmaTriggered:           reflect.TypeOf(DilemmaTriggeredPayload{}),
	KindDilemmaResolved:            reflect.TypeOf(DilemmaResolvedPayload{}),
	KindLoyaltyMemberRegistered:    reflect.TypeOf(LoyaltyMemberRegisteredPayload{}),
	KindCustomerReviewSubmitted:    reflect.TypeOf(CustomerReviewSubmittedPayload{}),
	KindInvestigationStarted:       reflect.TypeOf(InvestigationStartedPayload{}),
	KindInvestigationStageAdvanced: reflect.TypeOf(InvestigationStageAdvancedPayload{}),
	KindCommunicationSent:          reflect.TypeOf(CommunicationSentPayload{}),
	KindCommunicationReceived:      reflect.TypeOf(CommunicationReceivedPayload{}),
	KindEndOfTurnNotesSaved:        reflect.TypeOf(EndOfTurnNotesSavedPayload{}),
	KindComplianceReportFiled:      reflect.TypeOf(ComplianceReportFiledPayload{}),
	KindVendorNegotiationInitiated: reflect.TypeOf(VendorNegotiationInitiatedPayload{}),
	KindVendorNegotiationResult:    reflect.TypeOf(VendorNegotiationResultPayload{}),
	KindExclusiveContractSigned:    reflect.TypeOf(ExclusiveContractSignedPayload{}),
	KindVendorTermsUpdated:         reflect.TypeOf(VendorTermsUpdatedPayload{}),
	KindCancelVendorContract:       reflect.TypeOf(CancelVendorContractPayload{}),
	KindVendorTierPromoted:         reflect.TypeOf(VendorTierPromotedPayload{}),
	KindVendorTierDemoted:          reflect.TypeOf(VendorTierDemotedPayload{}),
	KindVendorPriceFluctuated:      reflect.TypeOf(VendorPriceFluctuatedPayload{}),
	KindDeliveryDisruptionStarted:  reflect.TypeOf(DeliveryDisruptionStartedPayload{}),
	KindDeliveryDisruptionEnded:    reflect.TypeOf(DeliveryDisruptionEndedPayload{}),
	KindAllianceFormed:             reflect.TypeOf(AllianceFormedPayload{}),
	KindAllianceBreached:           reflect.TypeOf(AllianceBreachedPayload{}),
	KindAgentAcquired:              reflect.TypeOf(AgentAcquiredPayload{}),
	KindCompetitorPriceChanged:     reflect.TypeOf(CompetitorPriceChangedPayload{}),
	KindCompetitorExitedMarket:     reflect.TypeOf(CompetitorExitedMarketPayload{}),
	KindCommunicationIntercepted:   reflect.TypeOf(CommunicationInterceptedPayload{}),
}

// DecodePayload unmarshals raw into the concrete payload struct registered
// for kind. Used by the event log backends to turn a stored JSON blob back
// into the type a reducer's payload[T] helper expects, instead of the
// map[string]interface{} plain json.Unmarshal would produce.
func DecodePayload(kind Kind, raw []byte) (any, error) {
	t, ok := payloadTypes[kind]
	if !ok {
		return nil, fmt.Errorf("events: no registered payload type for kind %q", kind)
	}
	ptr := reflect.New(t)
	if err := json.Unmarshal(raw, ptr.Interface()); err != nil {
		return nil, fmt.Errorf("events: decode %q payload: %w", kind, err)
	}
	return ptr.Elem().Interface(), nil
}

// envelopeWire is the JSON shape of an Envelope with Payload left raw, so
// it can be decoded a second time once Kind is known.
type envelopeWire struct {
	EventID       string          `json:"event_id"`
	Kind          Kind            `json:"event_kind"`
	AgentID       string          `json:"agent_id"`
	Week          int             `json:"week"`
	Day           int             `json:"day"`
	Timestamp     string          `json:"timestamp"`
	Payload       json.RawMessage `json:"payload"`
	CorrelationID string          `json:"correlation_id,omitempty"`
}

// UnmarshalJSON decodes an envelope whose Payload is routed through the
// kind registry rather than into a bare map, so every FileLog/SQLiteLog
// reload produces the same concrete payload types Append was given.
func (e *Envelope) UnmarshalJSON(data []byte) error {
	var wire envelopeWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("events: decode envelope: %w", err)
	}

	ts, err := parseTimestamp(wire.Timestamp)
	if err != nil {
		return fmt.Errorf("events: decode envelope timestamp: %w", err)
	}

	var payload any
	if len(wire.Payload) > 0 && string(wire.Payload) != "null" {
		payload, err = DecodePayload(wire.Kind, wire.Payload)
		if err != nil {
			return err
		}
	}

	e.EventID = wire.EventID
	e.Kind = wire.Kind
	e.AgentID = wire.AgentID
	e.Week = wire.Week
	e.Day = wire.Day
	e.Timestamp = ts
	e.Payload = payload
	e.CorrelationID = wire.CorrelationID
	return nil
}
