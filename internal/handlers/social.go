package handlers

import (
	"github.com/laundroverse/simcore/internal/commands"
	"github.com/laundroverse/simcore/internal/dispatch"
	"github.com/laundroverse/simcore/internal/domain"
	"github.com/laundroverse/simcore/internal/events"
)

func fileAppeal(state *domain.AgentState, cmd commands.Command) ([]events.Envelope, error) {
	p, err := commandPayload[commands.FileAppealPayload](cmd)
	if err != nil {
		return nil, err
	}
	var fine *domain.Fine
	for _, f := range state.PendingFines {
		if f.ID == p.FineID {
			fine = f
			break
		}
	}
	if fine == nil {
		return nil, &domain.InvalidStateError{Reason: "unknown fine id " + p.FineID}
	}
	if fine.Status != domain.FineOpen {
		return nil, &domain.InvalidStateError{Reason: "fine is not open for appeal"}
	}
	return []events.Envelope{
		newEvent(state, cmd, events.KindFineAppealed, events.FineAppealedPayload{FineID: p.FineID}),
	}, nil
}

func payFine(state *domain.AgentState, cmd commands.Command) ([]events.Envelope, error) {
	p, err := commandPayload[commands.PayFinePayload](cmd)
	if err != nil {
		return nil, err
	}
	var fine *domain.Fine
	for _, f := range state.PendingFines {
		if f.ID == p.FineID {
			fine = f
			break
		}
	}
	if fine == nil {
		return nil, &domain.InvalidStateError{Reason: "unknown fine id " + p.FineID}
	}
	if fine.Amount > state.CashBalance {
		return nil, &domain.InsufficientFundsError{Needed: fine.Amount, Available: state.CashBalance}
	}
	return []events.Envelope{
		newEvent(state, cmd, events.KindFinePaid, events.FinePaidPayload{FineID: p.FineID}),
	}, nil
}

// scandalResponseEffects maps a chosen response to its social-score delta
// and how much of the scandal's remaining duration it burns off: settling
// costs cash but clears reputation fastest, denying risks nothing upfront
// but barely dents the scandal, apologizing is the middle path.
func scandalResponseEffects(response string, durationWeeks int) (scoreDelta float64, remainingWeeks int, settlementCost float64) {
	switch response {
	case "SETTLE":
		return 2, maxInt0(durationWeeks/4), 0 // caller fills in settlement cost separately
	case "APOLOGIZE":
		return 5, maxInt0(durationWeeks / 2), 0
	case "DENY":
		return -3, durationWeeks, 0
	default:
		return 0, durationWeeks, 0
	}
}

func maxInt0(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

func resolveScandal(state *domain.AgentState, cmd commands.Command) ([]events.Envelope, error) {
	p, err := commandPayload[commands.ResolveScandalPayload](cmd)
	if err != nil {
		return nil, err
	}
	var scandal *domain.ScandalMarker
	for _, sc := range state.ActiveScandals {
		if sc.ID == p.ScandalID {
			scandal = sc
			break
		}
	}
	if scandal == nil {
		return nil, &domain.InvalidStateError{Reason: "unknown scandal id " + p.ScandalID}
	}

	scoreDelta, remainingWeeks, _ := scandalResponseEffects(p.Response, scandal.DurationWeeks)
	evs := []events.Envelope{
		newEvent(state, cmd, events.KindSocialScoreAdjusted, events.SocialScoreAdjustedPayload{
			Adjustment: scoreDelta, Reason: "resolved scandal " + p.ScandalID + " via " + p.Response,
		}),
		newEvent(state, cmd, events.KindScandalMarkerDecayed, events.ScandalMarkerDecayedPayload{
			ScandalID: p.ScandalID, RemainingWeeks: remainingWeeks,
		}),
	}

	if p.Response == "SETTLE" {
		settlementCost := scandal.Severity * 5000
		if settlementCost > state.CashBalance {
			return nil, &domain.InsufficientFundsError{Needed: settlementCost, Available: state.CashBalance}
		}
		evs = append(evs, newEvent(state, cmd, events.KindFundsTransferred, events.FundsTransferredPayload{
			Amount: settlementCost, TransactionKind: events.TxExpense, Description: "scandal settlement " + p.ScandalID,
		}))
	}
	return evs, nil
}

// dilemmaOptionsThatStartScandals names the dilemma responses that, per the
// fixed dilemma catalog, are corner-cutting enough on their own to start a
// scandal rather than just resolve the dilemma quietly.
var dilemmaOptionsThatStartScandals = map[string]bool{
	"DEFER_REPAIR": true,
}

func respondToDilemma(state *domain.AgentState, cmd commands.Command) ([]events.Envelope, error) {
	p, err := commandPayload[commands.RespondToDilemmaPayload](cmd)
	if err != nil {
		return nil, err
	}
	dilemma, ok := state.ActiveDilemmas[p.DilemmaID]
	if !ok {
		return nil, &domain.InvalidStateError{Reason: "unknown dilemma id " + p.DilemmaID}
	}
	valid := false
	for _, opt := range dilemma.Options {
		if opt == p.ChosenOption {
			valid = true
			break
		}
	}
	if !valid {
		return nil, &domain.InvalidStateError{Reason: "chosen option not offered by dilemma"}
	}
	evs := []events.Envelope{
		newEvent(state, cmd, events.KindDilemmaResolved, events.DilemmaResolvedPayload{
			DilemmaID: p.DilemmaID, ChosenOption: p.ChosenOption,
		}),
	}
	if dilemmaOptionsThatStartScandals[p.ChosenOption] {
		evs = append(evs, newEvent(state, cmd, events.KindScandalStarted, events.ScandalStartedPayload{
			ScandalID:     "scandal-" + cmd.CommandID,
			Description:   "deferred a known machine hazard rather than repair it: " + dilemma.Description,
			Severity:      0.4,
			DurationWeeks: 6,
		}))
	}
	return evs, nil
}

func initiateCharity(state *domain.AgentState, cmd commands.Command) ([]events.Envelope, error) {
	p, err := commandPayload[commands.InitiateCharityPayload](cmd)
	if err != nil {
		return nil, err
	}
	if p.Amount <= 0 {
		return nil, &domain.InvalidStateError{Reason: "charitable amount must be positive"}
	}
	if p.Amount > state.CashBalance {
		return nil, &domain.InsufficientFundsError{Needed: p.Amount, Available: state.CashBalance}
	}
	return []events.Envelope{
		newEvent(state, cmd, events.KindFundsTransferred, events.FundsTransferredPayload{
			Amount: p.Amount, TransactionKind: events.TxExpense, Description: "charitable gift: " + p.Cause,
		}),
		newEvent(state, cmd, events.KindSocialScoreAdjusted, events.SocialScoreAdjustedPayload{
			Adjustment: p.Amount / 500, Reason: "charitable giving: " + p.Cause,
		}),
	}, nil
}

// ethicalChoiceEffects is the social-score delta for each recognized
// standalone ethical stance an agent can take outside of a GM-triggered
// dilemma — e.g. adopting fair-trade supply terms versus cutting corners
// on worker safety to save cost.
var ethicalChoiceEffects = map[string]float64{
	"FAIR_TRADE_SOURCING":  4,
	"TRANSPARENT_PRICING":  3,
	"CUT_CORNERS":          -6,
	"EXPLOIT_LOOPHOLE":     -4,
}

// ethicalChoicesThatStartScandals names the choice types severe enough to
// also start a scandal, beyond just moving the social score.
var ethicalChoicesThatStartScandals = map[string]bool{
	"CUT_CORNERS":      true,
	"EXPLOIT_LOOPHOLE": true,
}

func makeEthicalChoice(state *domain.AgentState, cmd commands.Command) ([]events.Envelope, error) {
	p, err := commandPayload[commands.MakeEthicalChoicePayload](cmd)
	if err != nil {
		return nil, err
	}
	delta, ok := ethicalChoiceEffects[p.ChoiceType]
	if !ok {
		return nil, &domain.InvalidStateError{Reason: "unknown ethical choice type " + p.ChoiceType}
	}
	evs := []events.Envelope{
		newEvent(state, cmd, events.KindSocialScoreAdjusted, events.SocialScoreAdjustedPayload{
			Adjustment: delta, Reason: "ethical choice: " + p.ChoiceType,
		}),
	}
	if ethicalChoicesThatStartScandals[p.ChoiceType] {
		evs = append(evs, newEvent(state, cmd, events.KindScandalStarted, events.ScandalStartedPayload{
			ScandalID:     "scandal-" + cmd.CommandID,
			Description:   "unethical business practice discovered: " + p.ChoiceType,
			Severity:      0.7,
			DurationWeeks: 6,
		}))
	}
	return evs, nil
}

func fileRegulatoryReport(state *domain.AgentState, cmd commands.Command) ([]events.Envelope, error) {
	p, err := commandPayload[commands.FileRegulatoryReportPayload](cmd)
	if err != nil {
		return nil, err
	}
	if p.ReportType == "" {
		return nil, &domain.InvalidStateError{Reason: "report type required"}
	}
	return []events.Envelope{
		newEvent(state, cmd, events.KindComplianceReportFiled, events.ComplianceReportFiledPayload{
			ReportType: p.ReportType, Details: p.Details,
		}),
	}, nil
}

func subscribeLoyaltyProgram(state *domain.AgentState, cmd commands.Command) ([]events.Envelope, error) {
	p, err := commandPayload[commands.SubscribeLoyaltyProgramPayload](cmd)
	if err != nil {
		return nil, err
	}
	if _, ok := state.Locations[p.LocationID]; !ok {
		return nil, &domain.LocationNotFoundError{LocationID: p.LocationID}
	}
	if p.NewMembers <= 0 {
		return nil, &domain.InvalidStateError{Reason: "new members must be positive"}
	}
	return []events.Envelope{
		newEvent(state, cmd, events.KindLoyaltyMemberRegistered, events.LoyaltyMemberRegisteredPayload{
			LocationID: p.LocationID, MemberCount: state.CustomerLoyaltyMembers + p.NewMembers, ProgramYear: state.CurrentWeek / 52,
		}),
	}, nil
}

func sendMessage(state *domain.AgentState, cmd commands.Command) ([]events.Envelope, error) {
	p, err := commandPayload[commands.SendMessagePayload](cmd)
	if err != nil {
		return nil, err
	}
	if p.TargetAgentID == "" || p.TargetAgentID == state.AgentID {
		return nil, &domain.InvalidStateError{Reason: "message must target a different agent"}
	}
	return []events.Envelope{
		newEvent(state, cmd, events.KindCommunicationSent, events.CommunicationSentPayload{
			TargetAgentID: p.TargetAgentID, Message: p.Message, Channel: p.Channel,
		}),
	}, nil
}

func recordNote(state *domain.AgentState, cmd commands.Command) ([]events.Envelope, error) {
	p, err := commandPayload[commands.RecordNotePayload](cmd)
	if err != nil {
		return nil, err
	}
	return []events.Envelope{
		newEvent(state, cmd, events.KindEndOfTurnNotesSaved, events.EndOfTurnNotesSavedPayload{Notes: p.Notes}),
	}, nil
}

// RegisterSocial binds the fine, scandal, dilemma, and communication handlers.
func RegisterSocial(d *dispatch.CommandDispatcher) {
	d.Register(commands.KindFileAppeal, fileAppeal)
	d.Register(commands.KindPayFine, payFine)
	d.Register(commands.KindResolveScandal, resolveScandal)
	d.Register(commands.KindRespondToDilemma, respondToDilemma)
	d.Register(commands.KindInitiateCharity, initiateCharity)
	d.Register(commands.KindMakeEthicalChoice, makeEthicalChoice)
	d.Register(commands.KindFileRegulatoryReport, fileRegulatoryReport)
	d.Register(commands.KindSubscribeLoyaltyProgram, subscribeLoyaltyProgram)
	d.Register(commands.KindSendMessage, sendMessage)
	d.Register(commands.KindRecordNote, recordNote)
}
