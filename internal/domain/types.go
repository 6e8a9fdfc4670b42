// Package domain holds the entity structs and enums that make up an agent's
// projected state. Nothing in this package mutates itself; values here are
// only ever produced by the reducers in package reducers via package state.
package domain

// MachineKind identifies a piece of laundromat equipment.
type MachineKind string

const (
	MachineStandardWasher  MachineKind = "StandardWasher"
	MachineIndustrialWasher MachineKind = "IndustrialWasher"
	MachineDeluxeWasher    MachineKind = "DeluxeWasher"
	MachineDryer           MachineKind = "Dryer"
	MachineVending         MachineKind = "VendingMachine"
)

// MachineStatus is the operational status of a single machine.
type MachineStatus string

const (
	MachineOperational MachineStatus = "OPERATIONAL"
	MachineBroken       MachineStatus = "BROKEN"
	MachineInRepair     MachineStatus = "IN_REPAIR"
)

// RegulatoryStatus tracks an agent's standing with the regulator.
type RegulatoryStatus string

const (
	RegulatoryNormal            RegulatoryStatus = "NORMAL"
	RegulatoryWarning           RegulatoryStatus = "WARNING"
	RegulatoryUnderInvestigation RegulatoryStatus = "UNDER_INVESTIGATION"
	RegulatoryPenalized         RegulatoryStatus = "PENALIZED"
)

// VendorTier is the integer tier of a vendor relationship; higher tiers earn
// better terms on negotiation outcomes.
type VendorTier int

const (
	VendorTier1 VendorTier = 1
	VendorTier2 VendorTier = 2
	VendorTier3 VendorTier = 3
	VendorTier4 VendorTier = 4
)

// PaymentHistoryEntry records one resolved payment obligation, oldest first.
type PaymentHistoryEntry string

const (
	PaymentOnTime PaymentHistoryEntry = "ON_TIME"
	PaymentLate   PaymentHistoryEntry = "LATE"
	PaymentDefault PaymentHistoryEntry = "DEFAULT"
)

// MaxPaymentHistory bounds VendorRelationship.PaymentHistory to its tail.
const MaxPaymentHistory = 12

// AllianceKind is the category of an inter-agent alliance.
type AllianceKind string

const (
	AllianceInformal AllianceKind = "INFORMAL"
	AllianceFormal   AllianceKind = "FORMAL"
)

// StaffRole is the job title of a StaffMember.
type StaffRole string

const (
	RoleAttendant  StaffRole = "ATTENDANT"
	RoleTechnician StaffRole = "TECHNICIAN"
	RoleManager    StaffRole = "MANAGER"
)

// FineStatus tracks the lifecycle of a regulatory fine.
type FineStatus string

const (
	FineOpen     FineStatus = "OPEN"
	FinePaid     FineStatus = "PAID"
	FineAppealed FineStatus = "APPEALED"
)

// MachineState tracks a single physical washer, dryer, or vending unit.
type MachineState struct {
	ID                        string        `json:"id"`
	Kind                      MachineKind   `json:"kind"`
	Status                    MachineStatus `json:"status"`
	Condition                 float64       `json:"condition"` // 0-100, monotone non-increasing between repairs
	LastMaintenanceWeek       int           `json:"last_maintenance_week"`
	LoadsProcessedSinceService int          `json:"loads_processed_since_service"`
}

// VendorRelationship tracks one supplier relationship for one location.
type VendorRelationship struct {
	VendorID                 string                `json:"vendor_id"`
	Tier                     VendorTier            `json:"tier"`
	WeeksAtTier              int                   `json:"weeks_at_tier"`
	PaymentHistory           []PaymentHistoryEntry `json:"payment_history"`
	IsExclusiveContract      bool                  `json:"is_exclusive_contract"`
	ExclusiveContractEndWeek *int                  `json:"exclusive_contract_end_week,omitempty"`
	CurrentUnitPrice         float64               `json:"current_unit_price"`
	Disrupted                bool                  `json:"disrupted"`
}

// CommunicationRecord tallies one outbound message to a counterparty, kept
// for the regulator's collusion check: how often, and how much content,
// this agent has sent to that counterparty within a recent window.
type CommunicationRecord struct {
	Week   int `json:"week"`
	Length int `json:"length"`
}

// ScandalMarker is a persistent reputational penalty on an agent.
type ScandalMarker struct {
	ID            string  `json:"id"`
	Description   string  `json:"description"`
	Severity      float64 `json:"severity"` // 0-1
	StartWeek     int     `json:"start_week"`
	DurationWeeks int     `json:"duration_weeks"`
	DecayRate     float64 `json:"decay_rate"` // severity lost per weekly decay tick
}

// Fine is a monetary penalty issued by the regulator.
type Fine struct {
	ID          string     `json:"id"`
	Description string     `json:"description"`
	Amount      float64    `json:"amount"`
	IssuedWeek  int        `json:"issued_week"`
	DueWeek     int        `json:"due_week"`
	Status      FineStatus `json:"status"`
}

// Alliance is a formal or informal pact with another agent.
type Alliance struct {
	ID              string       `json:"id"`
	PartnerAgentID  string       `json:"partner_agent_id"`
	Kind            AllianceKind `json:"kind"`
	StartWeek       int          `json:"start_week"`
	DurationWeeks   int          `json:"duration_weeks"`
	PenaltyOnBreach float64      `json:"penalty_on_breach"`
}

// StaffMember is an employee assigned to a single location.
type StaffMember struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Role        StaffRole `json:"role"`
	HourlyRate  float64   `json:"hourly_rate"`
	Morale      float64   `json:"morale"` // 0-100
	TenureWeeks int       `json:"tenure_weeks"`
	HiredWeek   int       `json:"hired_week"`
}

// LoanRecord tracks one outstanding debt instrument.
type LoanRecord struct {
	ID           string  `json:"id"`
	Kind         string  `json:"kind"` // LOC, EQUIPMENT, EXPANSION, EMERGENCY
	Principal    float64 `json:"principal"`
	Outstanding  float64 `json:"outstanding"`
	InterestRate float64 `json:"interest_rate"`
	TermWeeks    int     `json:"term_weeks"`
	TakenWeek    int     `json:"taken_week"`
}

// Dilemma is an active ethical choice presented to an agent by the game master.
type Dilemma struct {
	Description   string   `json:"description"`
	Options       []string `json:"options"`
	TriggeredWeek int      `json:"triggered_week"`
}

// Investigation is an open regulatory inquiry into an agent.
type Investigation struct {
	Reason       string `json:"reason"`
	Severity     float64 `json:"severity"`
	CurrentStage string `json:"current_stage"`
	StartedWeek  int    `json:"started_week"`
}

// LocationListing is a location available for purchase via OpenNewLocation.
type LocationListing struct {
	Zone         string  `json:"zone"`
	MonthlyRent  float64 `json:"monthly_rent"`
	SetupCost    float64 `json:"setup_cost"`
}

// LocationState tracks the physical assets and weekly rollup of one site.
type LocationState struct {
	ID                     string                          `json:"id"`
	Zone                   string                          `json:"zone"`
	MonthlyRent            float64                         `json:"monthly_rent"`
	Cleanliness            float64                         `json:"cleanliness"` // 0-100
	Equipment              map[string]*MachineState        `json:"equipment"`
	InventoryDetergent     int                             `json:"inventory_detergent"`
	InventorySoftener      int                             `json:"inventory_softener"`
	Staff                  map[string]*StaffMember         `json:"staff"`
	ActivePricing          map[string]float64              `json:"active_pricing"`
	ObservedCompetitorPrices map[string]float64            `json:"observed_competitor_prices"`
	VendorRelationships    map[string]*VendorRelationship  `json:"vendor_relationships"`
	AccumulatedRevenueWeek float64                         `json:"accumulated_revenue_week"`
	AccumulatedCOGSWeek    float64                         `json:"accumulated_cogs_week"`
}

// DefaultPricing returns the baseline service price table for a new location.
func DefaultPricing() map[string]float64 {
	return map[string]float64{
		"StandardWash":  3.50,
		"PremiumWash":   5.00,
		"Dry":           2.00,
		"VendingItems":  1.50,
	}
}

// NewLocationState creates a LocationState with baseline defaults.
func NewLocationState(id, zone string, monthlyRent float64) *LocationState {
	return &LocationState{
		ID:                      id,
		Zone:                    zone,
		MonthlyRent:             monthlyRent,
		Cleanliness:             80.0,
		Equipment:               make(map[string]*MachineState),
		InventoryDetergent:      1000,
		InventorySoftener:       500,
		Staff:                   make(map[string]*StaffMember),
		ActivePricing:           DefaultPricing(),
		ObservedCompetitorPrices: make(map[string]float64),
		VendorRelationships:     make(map[string]*VendorRelationship),
	}
}

// Clone returns a deep copy of the location, safe for independent mutation.
func (l *LocationState) Clone() *LocationState {
	if l == nil {
		return nil
	}
	out := *l
	out.Equipment = make(map[string]*MachineState, len(l.Equipment))
	for k, v := range l.Equipment {
		mv := *v
		out.Equipment[k] = &mv
	}
	out.Staff = make(map[string]*StaffMember, len(l.Staff))
	for k, v := range l.Staff {
		sv := *v
		out.Staff[k] = &sv
	}
	out.ActivePricing = make(map[string]float64, len(l.ActivePricing))
	for k, v := range l.ActivePricing {
		out.ActivePricing[k] = v
	}
	out.ObservedCompetitorPrices = make(map[string]float64, len(l.ObservedCompetitorPrices))
	for k, v := range l.ObservedCompetitorPrices {
		out.ObservedCompetitorPrices[k] = v
	}
	out.VendorRelationships = make(map[string]*VendorRelationship, len(l.VendorRelationships))
	for k, v := range l.VendorRelationships {
		vv := *v
		vv.PaymentHistory = append([]PaymentHistoryEntry(nil), v.PaymentHistory...)
		out.VendorRelationships[k] = &vv
	}
	return &out
}

// AgentState is the full projected snapshot for a single agent, derived by
// folding that agent's event stream. Nothing constructs this except the
// state builder and the reducers it drives.
type AgentState struct {
	AgentID               string                      `json:"agent_id"`
	CurrentWeek           int                         `json:"current_week"`
	CurrentDay            int                         `json:"current_day"`
	CashBalance           float64                     `json:"cash_balance"`
	LineOfCreditBalance   float64                     `json:"line_of_credit_balance"`
	LineOfCreditLimit     float64                     `json:"line_of_credit_limit"`
	TotalDebtOwed         float64                     `json:"total_debt_owed"`
	Loans                 map[string]*LoanRecord      `json:"loans"`
	SocialScore           float64                     `json:"social_score"` // 0-100
	ActiveScandals         []*ScandalMarker            `json:"active_scandals"`
	ActiveDilemmas         map[string]*Dilemma         `json:"active_dilemmas"`
	CustomerLoyaltyMembers int                         `json:"customer_loyalty_members"`
	MarketShareLoads       float64                     `json:"market_share_loads"`
	CurrentTaxLiability    float64                     `json:"current_tax_liability"`
	RegulatoryStatus       RegulatoryStatus            `json:"regulatory_status"`
	ActiveInvestigations   map[string]*Investigation   `json:"active_investigations"`
	CreditRating           int                         `json:"credit_rating"` // 0-100
	ActiveAlliances         []*Alliance                 `json:"active_alliances"`
	PendingFines            []*Fine                     `json:"pending_fines"`
	Locations               map[string]*LocationState   `json:"locations"`
	AvailableListings       map[string]*LocationListing `json:"available_listings"`
	PrivateNotes            []string                    `json:"private_notes"`
	RecentMessages          []string                    `json:"recent_messages"`
	CommunicationLog        map[string][]CommunicationRecord `json:"communication_log"`
	AuditEntriesCount       int                         `json:"audit_entries_count"`
	LastAuditEventKind      string                      `json:"last_audit_event_kind"`
	ComplianceReportsFiled  int                         `json:"compliance_reports_filed"`
}

// NewAgentState returns the zero state for a freshly created agent.
func NewAgentState(agentID string) *AgentState {
	return &AgentState{
		AgentID:             agentID,
		CashBalance:         10000.0,
		LineOfCreditLimit:   5000.0,
		SocialScore:         50.0,
		RegulatoryStatus:    RegulatoryNormal,
		CreditRating:        50,
		Loans:               make(map[string]*LoanRecord),
		ActiveDilemmas:      make(map[string]*Dilemma),
		ActiveInvestigations: make(map[string]*Investigation),
		Locations:           make(map[string]*LocationState),
		AvailableListings:   make(map[string]*LocationListing),
		CommunicationLog:    make(map[string][]CommunicationRecord),
	}
}

// Clone returns a deep copy of the state. Reducers call this before mutating
// any subtree so that snapshots already handed to a caller stay immutable.
func (s *AgentState) Clone() *AgentState {
	if s == nil {
		return nil
	}
	out := *s

	out.Loans = make(map[string]*LoanRecord, len(s.Loans))
	for k, v := range s.Loans {
		lv := *v
		out.Loans[k] = &lv
	}

	out.ActiveScandals = make([]*ScandalMarker, len(s.ActiveScandals))
	for i, v := range s.ActiveScandals {
		sv := *v
		out.ActiveScandals[i] = &sv
	}

	out.ActiveDilemmas = make(map[string]*Dilemma, len(s.ActiveDilemmas))
	for k, v := range s.ActiveDilemmas {
		dv := *v
		dv.Options = append([]string(nil), v.Options...)
		out.ActiveDilemmas[k] = &dv
	}

	out.ActiveAlliances = make([]*Alliance, len(s.ActiveAlliances))
	for i, v := range s.ActiveAlliances {
		av := *v
		out.ActiveAlliances[i] = &av
	}

	out.PendingFines = make([]*Fine, len(s.PendingFines))
	for i, v := range s.PendingFines {
		fv := *v
		out.PendingFines[i] = &fv
	}

	out.Locations = make(map[string]*LocationState, len(s.Locations))
	for k, v := range s.Locations {
		out.Locations[k] = v.Clone()
	}

	out.AvailableListings = make(map[string]*LocationListing, len(s.AvailableListings))
	for k, v := range s.AvailableListings {
		lv := *v
		out.AvailableListings[k] = &lv
	}

	out.ActiveInvestigations = make(map[string]*Investigation, len(s.ActiveInvestigations))
	for k, v := range s.ActiveInvestigations {
		iv := *v
		out.ActiveInvestigations[k] = &iv
	}

	out.PrivateNotes = append([]string(nil), s.PrivateNotes...)
	out.RecentMessages = append([]string(nil), s.RecentMessages...)

	out.CommunicationLog = make(map[string][]CommunicationRecord, len(s.CommunicationLog))
	for k, v := range s.CommunicationLog {
		out.CommunicationLog[k] = append([]CommunicationRecord(nil), v...)
	}

	return &out
}

// ClampPercent clamps a 0-100 style value, used by reducers applying
// mechanical bounds (condition, social score).
func ClampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// ClampUnit clamps a 0-1 style value, used for scandal severity.
func ClampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// MaxRecentMessages bounds AgentState.RecentMessages to its tail.
const MaxRecentMessages = 50
