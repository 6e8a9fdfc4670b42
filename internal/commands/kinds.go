package commands

// Financial.
const (
	KindTakeLoan          Kind = "TAKE_LOAN"
	KindMakeDebtPayment   Kind = "MAKE_DEBT_PAYMENT"
	KindRunMarketingCampaign Kind = "INVEST_IN_MARKETING"
	KindSetPrice          Kind = "SET_PRICE"
)

// Operational.
const (
	KindPurchaseEquipment Kind = "BUY_EQUIPMENT"
	KindSellEquipment     Kind = "SELL_EQUIPMENT"
	KindPerformMaintenance Kind = "PERFORM_MAINTENANCE"
	KindFixMachine        Kind = "FIX_MACHINE"
	KindAcquireSupplies   Kind = "BUY_SUPPLIES"
	KindOpenNewLocation   Kind = "OPEN_NEW_LOCATION"
	KindCloseLocation     Kind = "CLOSE_LOCATION"
)

// Staffing.
const (
	KindHireStaff      Kind = "HIRE_STAFF"
	KindFireStaff      Kind = "FIRE_STAFF"
	KindAdjustWage     Kind = "ADJUST_STAFF_WAGE"
	KindProvideBenefits Kind = "PROVIDE_BENEFITS"
)

// Social, ethics, and regulatory.
const (
	KindFileAppeal     Kind = "FILE_APPEAL"
	KindPayFine        Kind = "PAY_FINE"
	KindResolveScandal Kind = "RESOLVE_SCANDAL"
	KindRespondToDilemma Kind = "RESPOND_TO_DILEMMA"
	KindInitiateCharity Kind = "INITIATE_CHARITY"
	KindMakeEthicalChoice Kind = "MAKE_ETHICAL_CHOICE"
	KindFileRegulatoryReport Kind = "FILE_REGULATORY_REPORT"
	KindSubscribeLoyaltyProgram Kind = "SUBSCRIBE_LOYALTY_PROGRAM"
)

// Vendor relationships.
const (
	KindNegotiateVendorDeal Kind = "NEGOTIATE_VENDOR_DEAL"
	KindSignExclusiveContract Kind = "SIGN_EXCLUSIVE_CONTRACT"
	KindCancelVendorContract  Kind = "CANCEL_VENDOR_CONTRACT"
)

// Competition and alliances.
const (
	KindProposeAlliance   Kind = "PROPOSE_ALLIANCE"
	KindAcceptAlliance    Kind = "ENTER_ALLIANCE"
	KindBreachAlliance    Kind = "BREACH_ALLIANCE"
	KindProposeBuyout     Kind = "PROPOSE_BUYOUT"
	KindAcceptBuyoutOffer Kind = "ACCEPT_BUYOUT_OFFER"
)

// Supplemental: inter-agent communication and private record-keeping.
const (
	KindSendMessage Kind = "COMMUNICATE_TO_AGENT"
	KindRecordNote  Kind = "RECORD_NOTE"
)
