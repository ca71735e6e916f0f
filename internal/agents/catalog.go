package agents

import (
	"fmt"
	"sort"

	"github.com/remora-ai/remora/internal/agent"
	"github.com/remora-ai/remora/internal/tools"
)

// Catalog is the set of built-in agents, addressable by name.
type Catalog struct {
	agents map[string]*agent.Agent
}

// NewCatalog builds every built-in agent against the given model
// client and search tool.
func NewCatalog(client agent.ChatClient, search tools.Tool) (*Catalog, error) {
	manager, err := Manager(client, search)
	if err != nil {
		return nil, err
	}

	catalog := map[string]*agent.Agent{}
	for _, ag := range []*agent.Agent{
		Greeting(),
		QuestionAnswering(),
		Email(),
		Memory(),
		NewsAnalyst(search),
		FunnyNerd(),
		manager,
	} {
		if err := ag.Validate(); err != nil {
			return nil, err
		}
		catalog[ag.Name] = ag
	}
	return &Catalog{agents: catalog}, nil
}

// Get looks an agent up by name.
func (c *Catalog) Get(name string) (*agent.Agent, error) {
	ag, ok := c.agents[name]
	if !ok {
		return nil, fmt.Errorf("unknown agent %q (available: %v)", name, c.Names())
	}
	return ag, nil
}

// Names lists the available agent names, sorted.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.agents))
	for name := range c.agents {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
