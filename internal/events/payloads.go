package events

// Each payload type below is the kind-specific portion of an Envelope for
// exactly one Kind constant. Handlers, the ticker, and the adjudication
// layer construct these directly; reducers in package reducers type-assert
// Envelope.Payload back to the matching struct.

type AgentCreatedPayload struct {
	InitialCash float64 `json:"initial_cash"`
}

type AgentRetiredPayload struct {
	Reason string `json:"reason"`
}

type TimeAdvancedPayload struct {
	NewWeek int `json:"new_week"`
	NewDay  int `json:"new_day"`
}

type AuditSnapshotRecordedPayload struct {
	EntriesCount  int    `json:"entries_count"`
	LastEventKind string `json:"last_event_kind"`
}

// TransactionKind classifies a FundsTransferred event for the reducer's
// purely mechanical sign rule.
type TransactionKind string

const (
	TxRevenue TransactionKind = "REVENUE"
	TxLoan    TransactionKind = "LOAN"
	TxRefund  TransactionKind = "REFUND"
	TxExpense TransactionKind = "EXPENSE"
	TxPayment TransactionKind = "PAYMENT"
	TxFine    TransactionKind = "FINE"
	TxPenalty TransactionKind = "PENALTY"
)

type FundsTransferredPayload struct {
	Amount          float64         `json:"amount"`
	TransactionKind TransactionKind `json:"transaction_kind"`
	Description     string          `json:"description"`
}

type LoanTakenPayload struct {
	LoanID       string  `json:"loan_id"`
	LoanKind     string  `json:"loan_kind"`
	Principal    float64 `json:"principal"`
	InterestRate float64 `json:"interest_rate"`
	TermWeeks    int     `json:"term_weeks"`
}

type DebtPaymentProcessedPayload struct {
	LoanID            string  `json:"loan_id"`
	AmountPaid        float64 `json:"amount_paid"`
	PrincipalReduction float64 `json:"principal_reduction"`
	InterestPaid      float64 `json:"interest_paid"`
	RemainingBalance  float64 `json:"remaining_balance"`
}

type MarketingBoostAppliedPayload struct {
	LocationID              string  `json:"location_id"`
	CampaignType            string  `json:"campaign_type"`
	MarketingCost           float64 `json:"marketing_cost"`
	CustomerAttractionBoost float64 `json:"customer_attraction_boost"`
	DurationWeeks           int     `json:"duration_weeks"`
}

type InterestAccruedPayload struct {
	LoanID        string  `json:"loan_id"`
	InterestAmount float64 `json:"interest_amount"`
}

type TaxLiabilityCalculatedPayload struct {
	TaxAmount float64 `json:"tax_amount"`
}

type TaxBracketAdjustedPayload struct {
	NewBracket string `json:"new_bracket"`
}

type DefaultRecordedPayload struct {
	LoanID        string  `json:"loan_id"`
	AmountOwed    float64 `json:"amount_owed"`
	PenaltyAmount float64 `json:"penalty_amount"`
}

type PriceSetPayload struct {
	LocationID  string  `json:"location_id"`
	ServiceName string  `json:"service_name"`
	NewPrice    float64 `json:"new_price"`
}

type EquipmentPurchasedPayload struct {
	LocationID    string  `json:"location_id"`
	MachineID     string  `json:"machine_id"`
	MachineKind   string  `json:"machine_kind"`
	PurchasePrice float64 `json:"purchase_price"`
}

type EquipmentSoldPayload struct {
	LocationID string  `json:"location_id"`
	MachineID  string  `json:"machine_id"`
	SalePrice  float64 `json:"sale_price"`
}

type EquipmentRepairedPayload struct {
	LocationID      string  `json:"location_id"`
	MachineID       string  `json:"machine_id"`
	MaintenanceType string  `json:"maintenance_type"`
	MaintenanceCost float64 `json:"maintenance_cost"`
	NewCondition    float64 `json:"new_condition"`
}

type SuppliesAcquiredPayload struct {
	LocationID string  `json:"location_id"`
	SupplyType string  `json:"supply_type"`
	Quantity   int     `json:"quantity"`
	Cost       float64 `json:"cost"`
}

type NewLocationOpenedPayload struct {
	LocationID       string  `json:"location_id"`
	Zone             string  `json:"zone"`
	MonthlyRent      float64 `json:"monthly_rent"`
	InitialInvestment float64 `json:"initial_investment"`
}

type LocationClosedPayload struct {
	LocationID string `json:"location_id"`
	Reason     string `json:"reason"`
}

type LocationListingRemovedPayload struct {
	ListingID string `json:"listing_id"`
}

type MachineStatusChangedPayload struct {
	LocationID string `json:"location_id"`
	MachineID  string `json:"machine_id"`
	NewStatus  string `json:"new_status"`
	Reason     string `json:"reason"`
}

type MachineBrokenDownPayload struct {
	LocationID string `json:"location_id"`
	MachineID  string `json:"machine_id"`
}

type MachineWearUpdatedPayload struct {
	LocationID                 string  `json:"location_id"`
	MachineID                  string  `json:"machine_id"`
	NewCondition               float64 `json:"new_condition"`
	LoadsProcessedSinceService int     `json:"loads_processed_since_service"`
}

type DailyRevenueProcessedPayload struct {
	LocationID       string  `json:"location_id"`
	LoadsProcessed   int     `json:"loads_processed"`
	RevenueGenerated float64 `json:"revenue_generated"`
	UtilityCost      float64 `json:"utility_cost"`
	SuppliesCost     float64 `json:"supplies_cost"`
}

type WeeklyFixedCostsBilledPayload struct {
	LocationID      string  `json:"location_id"`
	RentCost        float64 `json:"rent_cost"`
	InsuranceCost   float64 `json:"insurance_cost"`
	OtherFixedCosts float64 `json:"other_fixed_costs"`
}

type WeeklyWagesBilledPayload struct {
	LocationID  string  `json:"location_id"`
	TotalWages  float64 `json:"total_wages"`
	StaffCount  int     `json:"staff_count"`
}

type StockoutStartedPayload struct {
	LocationID string `json:"location_id"`
	SupplyType string `json:"supply_type"`
}

type StockoutEndedPayload struct {
	LocationID string `json:"location_id"`
	SupplyType string `json:"supply_type"`
}

type StaffHiredPayload struct {
	LocationID string  `json:"location_id"`
	StaffID    string  `json:"staff_id"`
	StaffName  string  `json:"staff_name"`
	Role       string  `json:"role"`
	HourlyRate float64 `json:"hourly_rate"`
}

type StaffFiredPayload struct {
	LocationID     string  `json:"location_id"`
	StaffID        string  `json:"staff_id"`
	SeveranceCost  float64 `json:"severance_cost"`
}

type StaffQuitPayload struct {
	LocationID string `json:"location_id"`
	StaffID    string `json:"staff_id"`
	Reason     string `json:"reason"`
}

type WageAdjustedPayload struct {
	LocationID string  `json:"location_id"`
	StaffID    string  `json:"staff_id"`
	OldRate    float64 `json:"old_rate"`
	NewRate    float64 `json:"new_rate"`
}

type BenefitImplementedPayload struct {
	LocationID              string  `json:"location_id"`
	BenefitType             string  `json:"benefit_type"`
	AnnualCostPerEmployee   float64 `json:"annual_cost_per_employee"`
	EmployeeCount           int     `json:"employee_count"`
}

type SocialScoreAdjustedPayload struct {
	Adjustment float64 `json:"adjustment"`
	Reason     string  `json:"reason"`
}

type RegulatoryStatusUpdatedPayload struct {
	NewStatus string `json:"new_status"`
	Reason    string `json:"reason"`
}

type ScandalStartedPayload struct {
	ScandalID     string  `json:"scandal_id"`
	Description   string  `json:"description"`
	Severity      float64 `json:"severity"`
	DurationWeeks int     `json:"duration_weeks"`
}

type ScandalMarkerDecayedPayload struct {
	ScandalID      string `json:"scandal_id"`
	RemainingWeeks int    `json:"remaining_weeks"`
}

type RegulatoryFindingPayload struct {
	FineID      string  `json:"fine_id"`
	Description string  `json:"description"`
	FineAmount  float64 `json:"fine_amount"`
	DueWeek     int     `json:"due_week"`
}

type FinePaidPayload struct {
	FineID string `json:"fine_id"`
}

type FineAppealedPayload struct {
	FineID string `json:"fine_id"`
}

type DilemmaTriggeredPayload struct {
	DilemmaID   string   `json:"dilemma_id"`
	Description string   `json:"description"`
	Options     []string `json:"options"`
}

type DilemmaResolvedPayload struct {
	DilemmaID    string `json:"dilemma_id"`
	ChosenOption string `json:"chosen_option"`
}

type LoyaltyMemberRegisteredPayload struct {
	LocationID  string `json:"location_id"`
	MemberCount int    `json:"member_count"`
	ProgramYear int    `json:"program_year"`
}

type CustomerReviewSubmittedPayload struct {
	LocationID string  `json:"location_id"`
	Rating     float64 `json:"rating"` // 1-5
	Comment    string  `json:"comment"`
}

type InvestigationStartedPayload struct {
	InvestigationID string  `json:"investigation_id"`
	Reason          string  `json:"reason"`
	Severity        float64 `json:"severity"`
}

type InvestigationStageAdvancedPayload struct {
	InvestigationID string `json:"investigation_id"`
	CurrentStage    string `json:"current_stage"`
}

type CommunicationSentPayload struct {
	TargetAgentID string `json:"target_agent_id"`
	Message       string `json:"message"`
	Channel       string `json:"channel"`
}

type CommunicationReceivedPayload struct {
	SenderAgentID string `json:"sender_agent_id"`
	Message       string `json:"message"`
	Channel       string `json:"channel"`
}

type EndOfTurnNotesSavedPayload struct {
	Notes string `json:"notes"`
}

type ComplianceReportFiledPayload struct {
	ReportType string `json:"report_type"`
	Details    string `json:"details"`
}

type VendorNegotiationInitiatedPayload struct {
	LocationID string `json:"location_id"`
	VendorID   string `json:"vendor_id"`
	Proposal   string `json:"proposal"`
}

type VendorNegotiationResultPayload struct {
	LocationID          string  `json:"location_id"`
	VendorID            string  `json:"vendor_id"`
	NegotiationSucceeded bool    `json:"negotiation_succeeded"`
	ProposedDiscount     float64 `json:"proposed_discount"`
	Outcome              string  `json:"outcome"` // ACCEPT, COUNTER, REJECT
}

type ExclusiveContractSignedPayload struct {
	LocationID    string `json:"location_id"`
	VendorID      string `json:"vendor_id"`
	ContractTerms string `json:"contract_terms"`
	DurationWeeks int    `json:"duration_weeks"`
}

type VendorTermsUpdatedPayload struct {
	LocationID       string `json:"location_id"`
	VendorID         string `json:"vendor_id"`
	ChangeDescription string `json:"change_description"`
	EffectiveWeek    int    `json:"effective_week"`
}

type CancelVendorContractPayload struct {
	LocationID              string  `json:"location_id"`
	VendorID                string  `json:"vendor_id"`
	Reason                  string  `json:"reason"`
	EarlyTerminationPenalty float64 `json:"early_termination_penalty"`
}

type VendorTierPromotedPayload struct {
	VendorID string `json:"vendor_id"`
	NewTier  int    `json:"new_tier"`
}

type VendorTierDemotedPayload struct {
	VendorID string `json:"vendor_id"`
	NewTier  int    `json:"new_tier"`
}

type VendorPriceFluctuatedPayload struct {
	VendorID      string  `json:"vendor_id"`
	NewPricePerUnit float64 `json:"new_price_per_unit"`
}

type DeliveryDisruptionStartedPayload struct {
	VendorID string `json:"vendor_id"`
	Reason   string `json:"reason"`
}

type DeliveryDisruptionEndedPayload struct {
	VendorID string `json:"vendor_id"`
}

type AllianceFormedPayload struct {
	AllianceID      string  `json:"alliance_id"`
	PartnerAgentID  string  `json:"partner_agent_id"`
	AllianceType    string  `json:"alliance_type"`
	DurationWeeks   int     `json:"duration_weeks"`
	PenaltyOnBreach float64 `json:"penalty_on_breach"`
}

type AllianceBreachedPayload struct {
	AllianceID string  `json:"alliance_id"`
	Penalty    float64 `json:"penalty"`
}

type AgentAcquiredPayload struct {
	AcquirerAgentID string  `json:"acquirer_agent_id"`
	OfferAmount     float64 `json:"offer_amount"`
}

type CompetitorPriceChangedPayload struct {
	CompetitorID string  `json:"competitor_id"`
	ServiceName  string  `json:"service_name"`
	NewPrice     float64 `json:"new_price"`
}

type CompetitorExitedMarketPayload struct {
	CompetitorID string `json:"competitor_id"`
}

type CommunicationInterceptedPayload struct {
	SourceAgentID string `json:"source_agent_id"`
	TargetAgentID string `json:"target_agent_id"`
	Summary       string `json:"summary"`
}
