package events

// Lifecycle.
const (
	KindAgentCreated Kind = "AgentCreated"
	KindAgentRetired Kind = "AgentRetired"
)

// Time.
const (
	KindTimeAdvanced        Kind = "TimeAdvanced"
	KindAuditSnapshotRecorded Kind = "AuditSnapshotRecorded"
)

// Financial & debt.
const (
	KindFundsTransferred     Kind = "FundsTransferred"
	KindLoanTaken            Kind = "LoanTaken"
	KindDebtPaymentProcessed Kind = "DebtPaymentProcessed"
	KindMarketingBoostApplied Kind = "MarketingBoostApplied"
	KindInterestAccrued      Kind = "InterestAccrued"
	KindTaxLiabilityCalculated Kind = "TaxLiabilityCalculated"
	KindTaxBracketAdjusted   Kind = "TaxBracketAdjusted"
	KindDefaultRecorded      Kind = "DefaultRecorded"
)

// Operational: equipment, supplies, locations.
const (
	KindPriceSet             Kind = "PriceSet"
	KindEquipmentPurchased   Kind = "EquipmentPurchased"
	KindEquipmentSold        Kind = "EquipmentSold"
	KindEquipmentRepaired    Kind = "EquipmentRepaired"
	KindSuppliesAcquired     Kind = "SuppliesAcquired"
	KindNewLocationOpened    Kind = "NewLocationOpened"
	KindLocationClosed       Kind = "LocationClosed"
	KindLocationListingRemoved Kind = "LocationListingRemoved"
	KindMachineStatusChanged Kind = "MachineStatusChanged"
	KindMachineBrokenDown    Kind = "MachineBrokenDown"
	KindMachineWearUpdated   Kind = "MachineWearUpdated"
	KindDailyRevenueProcessed Kind = "DailyRevenueProcessed"
	KindWeeklyFixedCostsBilled Kind = "WeeklyFixedCostsBilled"
	KindWeeklyWagesBilled    Kind = "WeeklyWagesBilled"
	KindStockoutStarted      Kind = "StockoutStarted"
	KindStockoutEnded        Kind = "StockoutEnded"
)

// Staffing.
const (
	KindStaffHired         Kind = "StaffHired"
	KindStaffFired         Kind = "StaffFired"
	KindStaffQuit          Kind = "StaffQuit"
	KindWageAdjusted       Kind = "WageAdjusted"
	KindBenefitImplemented Kind = "BenefitImplemented"
)

// Social, ethics, and regulatory.
const (
	KindSocialScoreAdjusted       Kind = "SocialScoreAdjusted"
	KindRegulatoryStatusUpdated   Kind = "RegulatoryStatusUpdated"
	KindScandalStarted            Kind = "ScandalStarted"
	KindScandalMarkerDecayed      Kind = "ScandalMarkerDecayed"
	KindRegulatoryFinding         Kind = "RegulatoryFinding"
	KindFinePaid                  Kind = "FinePaid"
	KindFineAppealed              Kind = "FineAppealed"
	KindDilemmaTriggered          Kind = "DilemmaTriggered"
	KindDilemmaResolved           Kind = "DilemmaResolved"
	KindLoyaltyMemberRegistered   Kind = "LoyaltyMemberRegistered"
	KindCustomerReviewSubmitted   Kind = "CustomerReviewSubmitted"
	KindInvestigationStarted      Kind = "InvestigationStarted"
	KindInvestigationStageAdvanced Kind = "InvestigationStageAdvanced"
	KindCommunicationSent         Kind = "CommunicationSent"
	KindCommunicationReceived     Kind = "CommunicationReceived"
	KindEndOfTurnNotesSaved       Kind = "EndOfTurnNotesSaved"
	KindComplianceReportFiled     Kind = "ComplianceReportFiled"
)

// Vendor relationships.
const (
	KindVendorNegotiationInitiated Kind = "VendorNegotiationInitiated"
	KindVendorNegotiationResult    Kind = "VendorNegotiationResult"
	KindExclusiveContractSigned    Kind = "ExclusiveContractSigned"
	KindVendorTermsUpdated         Kind = "VendorTermsUpdated"
	KindCancelVendorContract       Kind = "CancelVendorContract"
	KindVendorTierPromoted         Kind = "VendorTierPromoted"
	KindVendorTierDemoted          Kind = "VendorTierDemoted"
	KindVendorPriceFluctuated      Kind = "VendorPriceFluctuated"
	KindDeliveryDisruptionStarted  Kind = "DeliveryDisruptionStarted"
	KindDeliveryDisruptionEnded    Kind = "DeliveryDisruptionEnded"
)

// Competition and alliances.
const (
	KindAllianceFormed           Kind = "AllianceFormed"
	KindAllianceBreached         Kind = "AllianceBreached"
	KindAgentAcquired            Kind = "AgentAcquired"
	KindCompetitorPriceChanged   Kind = "CompetitorPriceChanged"
	KindCompetitorExitedMarket   Kind = "CompetitorExitedMarket"
	KindCommunicationIntercepted Kind = "CommunicationIntercepted"
)
