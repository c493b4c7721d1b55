package llm

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Provider generates text from a prompt
type Provider interface {
	Name() string
	Generate(ctx context.Context, prompt string, config Config) (*Response, error)
}

// Config carries per-call generation settings
type Config struct {
	Model        string
	SystemPrompt string
	Temperature  float64
	MaxTokens    int
}

// Response is the outcome of one generation. Error is set when the provider
// answered but could not produce text.
type Response struct {
	Text       string `json:"text"`
	TokensUsed int    `json:"tokens_used"`
	LatencyMs  int64  `json:"latency_ms"`
	Model      string `json:"model"`
	Provider   string `json:"provider"`
	Error      string `json:"error,omitempty"`
}

// Registry holds providers by name
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]Provider)}
}

// Register adds or replaces a provider
func (r *Registry) Register(p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[p.Name()] = p
}

// Get returns the provider registered under name
func (r *Registry) Get(name string) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providers[name]
	return p, ok
}

// MustGet returns the provider registered under name or an error naming the known ones
func (r *Registry) MustGet(name string) (Provider, error) {
	if p, ok := r.Get(name); ok {
		return p, nil
	}
	return nil, fmt.Errorf("LLM provider %s not found (available: %v)", name, r.Names())
}

// Names lists registered provider names, sorted
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
