package dashboard

import (
	"time"

	"finsight/pkg/core/history"
	"finsight/pkg/core/profile"
	"finsight/pkg/core/report"
)

// State is the main analysis lifecycle.
type State string

const (
	StateIdle             State = "idle"
	StateAwaitingAnalysis State = "awaiting_analysis"
	StateAnalysisError    State = "analysis_error"
	StateReportReady      State = "report_ready"
)

// ChatState is the orthogonal chat sub-state; it can be active
// alongside any main state.
type ChatState string

const (
	ChatIdle          ChatState = "chat_idle"
	ChatAwaitingReply ChatState = "chat_awaiting_reply"
)

// Role tags a chat message author.
type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

// ChatMessage is one turn of the in-session conversation. The chat log
// is never persisted; it lives and dies with the session.
type ChatMessage struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Snapshot is the read-only view the presentation layer renders.
// Everything in it is a copy; mutating a snapshot changes nothing.
type Snapshot struct {
	SessionID    string                    `json:"session_id"`
	State        State                     `json:"state"`
	ChatState    ChatState                 `json:"chat_state"`
	ErrorMessage string                    `json:"error_message,omitempty"`
	Profile      *profile.FinancialProfile `json:"profile"`
	Report       *report.FinancialReport   `json:"report"`
	Chat         []ChatMessage             `json:"chat"`
	History      []history.Entry           `json:"history"`
	BusyAgents   []string                  `json:"busy_agents"`
}
