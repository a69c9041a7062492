package systemprompt

import "fmt"

// ContextProvider contributes a titled block of extra information to the
// generated system prompt.
type ContextProvider interface {
	Title() string
	Info() string
}

// Generator is the system prompt generator contract.
type Generator interface {
	Generate() string
	// ContextProvider retrieves a context provider by title.
	// If the context provider is not found returns not found error
	ContextProvider(title string) (ContextProvider, error)
	// AddContextProviders registers new context providers
	AddContextProviders(providers ...ContextProvider)
	// RemoveContextProviders unregisters existing context providers.
	RemoveContextProviders(titles ...string)
}

// BaseGenerator holds the context provider registry shared by generator
// implementations.
type BaseGenerator struct {
	providers []ContextProvider
}

// ContextProviders returns the registered providers in registration order.
func (g *BaseGenerator) ContextProviders() []ContextProvider {
	return g.providers
}

// ContextProvider retrieves a context provider by title.
// If the context provider is not found returns not found error
func (g *BaseGenerator) ContextProvider(title string) (ContextProvider, error) {
	for _, p := range g.providers {
		if p.Title() == title {
			return p, nil
		}
	}
	return nil, fmt.Errorf("context provider '%s' not found", title)
}

// AddContextProviders registers new context providers
func (g *BaseGenerator) AddContextProviders(providers ...ContextProvider) {
	for _, provider := range providers {
		if _, err := g.ContextProvider(provider.Title()); err != nil {
			g.providers = append(g.providers, provider)
		}
	}
}

// RemoveContextProviders unregisters existing context providers.
func (g *BaseGenerator) RemoveContextProviders(titles ...string) {
	mp := make(map[string]struct{}, len(titles))
	for _, v := range titles {
		mp[v] = struct{}{}
	}
	providers := make([]ContextProvider, 0, len(g.providers))
	for _, p := range g.providers {
		if _, found := mp[p.Title()]; found {
			continue
		}
		providers = append(providers, p)
	}
	g.providers = providers
}
