package agents

import (
	"github.com/remora-ai/remora/internal/agent"
	"github.com/remora-ai/remora/internal/tools"
)

// NewsAnalyst builds the news research agent around the given search
// tool. The tool is injected so tests can substitute a stub and the
// caller decides which search credential to use.
func NewsAnalyst(search tools.Tool) *agent.Agent {
	return &agent.Agent{
		Name:        "news_analyst",
		Description: "News analyst agent that searches for and analyzes current news and information",
		Instruction: `You are a helpful assistant that can analyze news articles and provide a summary of the news.

When asked about news, you should use the web_search tool to search for the news.

Always provide:
- Current and relevant information
- Multiple sources when available
- Context and background information
- Timestamps for when information was retrieved`,
		Tools: []tools.Tool{search},
	}
}
