package systemprompt

import (
	"fmt"
	"strings"
)

// Simple renders a fixed prompt body followed by the registered context
// provider blocks.
type Simple struct {
	BaseGenerator
	content string
}

var _ Generator = (*Simple)(nil)

// NewSimple returns a Simple generator with the given prompt body.
func NewSimple(content string) *Simple {
	return &Simple{content: content}
}

func (g *Simple) Generate() string {
	parts := make([]string, 0, len(g.ContextProviders())*3+2)
	parts = append(parts, g.content)
	parts = append(parts, "")
	if providers := g.ContextProviders(); len(providers) > 0 {
		parts = append(parts, "# EXTRA INFORMATION AND CONTEXT")
		for _, provider := range providers {
			if info := provider.Info(); info != "" {
				parts = append(parts, fmt.Sprintf("## %s", provider.Title()))
				parts = append(parts, info)
				parts = append(parts, "")
			}
		}
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}
