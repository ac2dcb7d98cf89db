package agent

import (
	"context"
	"fmt"

	"finsight/pkg/core/gateway"
)

// Config selects which gateway provider serves each agent id.
// Loaded from config/agents.yaml.
type Config struct {
	ActiveProvider string                 `yaml:"active_provider"`
	Agents         map[string]AgentConfig `yaml:"agents"`
}

type AgentConfig struct {
	Provider    string `yaml:"provider"` // Optional override
	Description string `yaml:"description"`
}

// Manager routes agent calls to the configured gateway provider.
type Manager struct {
	config    Config
	providers map[string]gateway.Gateway
}

func NewManager(config Config, providers map[string]gateway.Gateway) *Manager {
	return &Manager{config: config, providers: providers}
}

// GatewayFor resolves the provider for an agent id:
// agent-specific override first, then the global active provider.
func (m *Manager) GatewayFor(agentID string) (gateway.Gateway, error) {
	if agentConfig, ok := m.config.Agents[agentID]; ok && agentConfig.Provider != "" {
		if g, ok := m.providers[agentConfig.Provider]; ok {
			return g, nil
		}
	}
	if g, ok := m.providers[m.config.ActiveProvider]; ok {
		return g, nil
	}
	return nil, fmt.Errorf("no gateway provider configured for agent %q", agentID)
}

// Send delivers a message to the agent through its resolved provider.
func (m *Manager) Send(ctx context.Context, message, agentID, sessionID string) (*gateway.Envelope, error) {
	g, err := m.GatewayFor(agentID)
	if err != nil {
		return nil, err
	}
	return g.Send(ctx, message, agentID, sessionID)
}

// SetGlobalProvider switches the default provider at runtime.
func (m *Manager) SetGlobalProvider(name string) error {
	if _, ok := m.providers[name]; !ok {
		return fmt.Errorf("provider %s not found", name)
	}
	m.config.ActiveProvider = name
	return nil
}

func (m *Manager) GetActiveProvider() string {
	return m.config.ActiveProvider
}
