// Package dashboard owns the analysis/chat state machine. All state
// lives here; the presentation layer only calls the operations and
// renders snapshots.
package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"finsight/pkg/core/agent"
	"finsight/pkg/core/history"
	"finsight/pkg/core/logger"
	"finsight/pkg/core/profile"
	"finsight/pkg/core/report"
	"finsight/pkg/core/session"
	"finsight/pkg/core/store"
)

var (
	ErrAnalysisInFlight  = errors.New("an analysis request is already in flight")
	ErrChatInFlight      = errors.New("a chat request is already in flight")
	ErrProfileIncomplete = errors.New("profile is incomplete: salary is required")
	ErrInvalidProfile    = errors.New("profile contains negative amounts")
	ErrUnknownHistory    = errors.New("no history entry with that id")
	ErrGatewayFailure    = errors.New("agent gateway failure")
	ErrUnparseable       = errors.New("agent response could not be normalized")
)

// User-facing messages. GatewayFailure and Unparseable are distinct
// conditions and must read differently.
const (
	msgGatewayFailure = "The analysis service is unavailable right now. Please try again."
	msgUnparseable    = "The analysis service returned a response this dashboard could not read. Please try again."
	msgChatFallback   = "Sorry, I couldn't process that. Please try again."
	msgReportUpdated  = "I've refreshed your financial report with the latest analysis."
)

// searchQuery rides along with every analysis request unchanged.
const searchQuery = "current credit card utilization norms and recommended savings rate"

// Orchestrator is the single owner of dashboard state. One analysis
// and one chat round-trip may be in flight concurrently; each channel
// is gated by its own busy flag and both write the one active report
// slot, last write wins.
type Orchestrator struct {
	mu        sync.Mutex
	agents    *agent.Manager
	agentID   string
	sessionID string
	kv        store.KV
	hist      *history.Store

	state      State
	chatState  ChatState
	errMsg     string
	prof       *profile.FinancialProfile
	rep        *report.FinancialReport
	chat       []ChatMessage
	busyAgents map[string]bool
	clock      func() time.Time
}

// New builds the orchestrator and restores persisted state. Empty or
// corrupt storage means a fresh start in Idle with nothing loaded.
func New(ctx context.Context, agents *agent.Manager, agentID string, kv store.KV) *Orchestrator {
	o := &Orchestrator{
		agents:     agents,
		agentID:    agentID,
		sessionID:  session.New(),
		kv:         kv,
		hist:       history.NewStore(ctx, kv),
		state:      StateIdle,
		chatState:  ChatIdle,
		busyAgents: make(map[string]bool),
		clock:      time.Now,
	}
	o.prof = loadProfile(ctx, kv)
	return o
}

func loadProfile(ctx context.Context, kv store.KV) *profile.FinancialProfile {
	if kv == nil {
		return nil
	}
	raw, ok, err := kv.Get(ctx, store.KeyProfile)
	if err != nil {
		logger.Get().Warn("profile load failed, starting without one", zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}
	var p profile.FinancialProfile
	if err := json.Unmarshal(raw, &p); err != nil {
		logger.Get().Warn("profile record corrupt, starting without one", zap.Error(err))
		return nil
	}
	return &p
}

// SessionID returns the opaque identifier forwarded on every call.
func (o *Orchestrator) SessionID() string {
	return o.sessionID
}

// SaveProfile replaces the profile wholesale and persists best effort.
func (o *Orchestrator) SaveProfile(ctx context.Context, p *profile.FinancialProfile) error {
	if p == nil {
		return ErrInvalidProfile
	}
	if p.Salary < 0 || p.FixedExpenses.Rent < 0 || p.FixedExpenses.Utilities < 0 || p.FixedExpenses.Insurance < 0 {
		return ErrInvalidProfile
	}
	for _, c := range p.Cards {
		if c.Limit < 0 {
			return ErrInvalidProfile
		}
	}
	for _, e := range p.EMIs {
		if e.Amount < 0 {
			return ErrInvalidProfile
		}
	}

	o.mu.Lock()
	o.prof = p.Clone()
	o.mu.Unlock()

	if o.kv != nil {
		raw, err := json.Marshal(p)
		if err == nil {
			err = o.kv.Put(ctx, store.KeyProfile, raw)
		}
		if err != nil {
			logger.Get().Warn("profile persist failed", zap.Error(err))
		}
	}
	return nil
}

// analysisRequest is the wire shape of an analysis message.
type analysisRequest struct {
	Action           string          `json:"action"`
	FinancialProfile analysisProfile `json:"financial_profile"`
	SearchQuery      string          `json:"search_query"`
}

type analysisProfile struct {
	MonthlySalary float64               `json:"monthly_salary"`
	CreditCards   []profile.CreditCard  `json:"credit_cards"`
	EMIs          []profile.EMI         `json:"emis"`
	FixedExpenses profile.FixedExpenses `json:"fixed_expenses"`
}

func buildAnalysisMessage(p *profile.FinancialProfile) (string, error) {
	raw, err := json.Marshal(analysisRequest{
		Action: "analyze_finances",
		FinancialProfile: analysisProfile{
			MonthlySalary: p.Salary,
			CreditCards:   p.Cards,
			EMIs:          p.EMIs,
			FixedExpenses: p.FixedExpenses,
		},
		SearchQuery: searchQuery,
	})
	if err != nil {
		return "", fmt.Errorf("failed to build analysis request: %w", err)
	}
	return string(raw), nil
}

// Analyze issues one analysis round-trip. It refuses to start while a
// previous one is outstanding; there is no cancellation. A successful
// normalization replaces the active report outright and appends a
// history entry keyed to the profile in effect at send time.
func (o *Orchestrator) Analyze(ctx context.Context) error {
	o.mu.Lock()
	if o.busyAgents[o.agentID] {
		o.mu.Unlock()
		return ErrAnalysisInFlight
	}
	if !o.prof.Complete() {
		o.mu.Unlock()
		return ErrProfileIncomplete
	}
	snapshot := o.prof.Clone()
	message, err := buildAnalysisMessage(snapshot)
	if err != nil {
		o.mu.Unlock()
		return err
	}
	o.busyAgents[o.agentID] = true
	o.state = StateAwaitingAnalysis
	o.errMsg = ""
	o.mu.Unlock()

	env, sendErr := o.agents.Send(ctx, message, o.agentID, o.sessionID)

	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.busyAgents, o.agentID)

	if sendErr != nil {
		logger.Get().Error("analysis gateway call failed",
			zap.String("agent_id", o.agentID), zap.Error(sendErr))
		o.state = StateAnalysisError
		o.errMsg = msgGatewayFailure
		return fmt.Errorf("%w: %v", ErrGatewayFailure, sendErr)
	}

	rep := report.Normalize(env)
	if rep == nil {
		logger.Get().Warn("analysis response did not normalize",
			zap.String("agent_id", o.agentID))
		o.state = StateAnalysisError
		o.errMsg = msgUnparseable
		return ErrUnparseable
	}

	o.rep = rep
	o.state = StateReportReady
	o.hist.Record(ctx, rep, snapshot)
	return nil
}

// SendChat runs one chat round-trip. The user message is appended
// optimistically before the network call. Exactly one agent-role
// message is appended afterwards: the conversational reply, a
// confirmation when the reply was a full report, or the fallback on
// failure. Chat never hard-fails.
func (o *Orchestrator) SendChat(ctx context.Context, text string) error {
	o.mu.Lock()
	if o.chatState == ChatAwaitingReply {
		o.mu.Unlock()
		return ErrChatInFlight
	}
	o.chatState = ChatAwaitingReply
	o.chat = append(o.chat, ChatMessage{Role: RoleUser, Content: text, Timestamp: o.clock()})
	o.mu.Unlock()

	env, sendErr := o.agents.Send(ctx, text, o.agentID, o.sessionID)

	o.mu.Lock()
	defer o.mu.Unlock()
	o.chatState = ChatIdle

	if sendErr != nil {
		logger.Get().Warn("chat gateway call failed", zap.Error(sendErr))
		o.appendAgentMessage(msgChatFallback)
		return nil
	}

	rep := report.Normalize(env)
	if rep == nil {
		o.appendAgentMessage(msgChatFallback)
		return nil
	}

	if rep.Kind == report.Structured {
		// Chat and analysis share one report slot; last write wins.
		o.rep = rep
		o.state = StateReportReady
		o.errMsg = ""
		o.appendAgentMessage(msgReportUpdated)
		return nil
	}

	o.appendAgentMessage(rep.FollowUpResponse)
	return nil
}

func (o *Orchestrator) appendAgentMessage(content string) {
	o.chat = append(o.chat, ChatMessage{Role: RoleAgent, Content: content, Timestamp: o.clock()})
}

// SelectHistory restores a past snapshot as the active report and
// profile. It contacts nothing and mutates nothing but the live slots,
// so selecting the same entry twice is a no-op the second time.
func (o *Orchestrator) SelectHistory(id string) error {
	entry, ok := o.hist.Find(id)
	if !ok {
		return ErrUnknownHistory
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	o.rep = entry.Report
	o.prof = entry.Profile.Clone()
	o.state = StateReportReady
	o.errMsg = ""
	return nil
}

// History returns the recorded entries, newest first.
func (o *Orchestrator) History() []history.Entry {
	return o.hist.Entries()
}

// Snapshot returns a read-only copy of the current state.
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()

	chat := make([]ChatMessage, len(o.chat))
	copy(chat, o.chat)

	busy := make([]string, 0, len(o.busyAgents))
	for id := range o.busyAgents {
		busy = append(busy, id)
	}
	sort.Strings(busy)

	return Snapshot{
		SessionID:    o.sessionID,
		State:        o.state,
		ChatState:    o.chatState,
		ErrorMessage: o.errMsg,
		Profile:      o.prof.Clone(),
		Report:       o.rep,
		Chat:         chat,
		History:      o.hist.Entries(),
		BusyAgents:   busy,
	}
}
