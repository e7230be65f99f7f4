package provider

import "context"

// Provider ids for the built-in backends.
const (
	IDMock      = "mock"
	IDGemini    = "gemini"
	IDOpenAI    = "openai"
	IDAnthropic = "anthropic"
)

// DefaultProviderID is used when a caller does not name a provider.
const DefaultProviderID = IDMock

// Constructor builds a fresh provider instance. Constructors read their own
// credentials from the environment, so registration itself never fails.
type Constructor func(ctx context.Context) (Provider, error)

// Registry maps provider ids to constructors. It is built once at process
// start and injected into call sites that need provider resolution; after
// startup it is only read, so concurrent reads need no locking. Dynamic
// re-registration at runtime is not supported.
type Registry struct {
	constructors map[string]Constructor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{constructors: make(map[string]Constructor)}
}

// NewDefaultRegistry creates a registry with all built-in providers registered.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(IDMock, func(_ context.Context) (Provider, error) {
		return NewMockProvider(), nil
	})
	r.Register(IDGemini, func(ctx context.Context) (Provider, error) {
		return NewGeminiProvider(ctx)
	})
	r.Register(IDOpenAI, func(_ context.Context) (Provider, error) {
		return &OpenAIProvider{}, nil
	})
	r.Register(IDAnthropic, func(_ context.Context) (Provider, error) {
		return &AnthropicProvider{}, nil
	})
	return r
}

// Register stores one constructor per id. Re-registering an id overwrites
// the previous constructor (last write wins).
func (r *Registry) Register(id string, ctor Constructor) {
	r.constructors[id] = ctor
}

// Create constructs a fresh instance of the named provider. It returns a
// *ConfigurationError when the id is not registered.
func (r *Registry) Create(ctx context.Context, id string) (Provider, error) {
	ctor, ok := r.constructors[id]
	if !ok {
		return nil, &ConfigurationError{ProviderID: id}
	}
	return ctor(ctx)
}

// Providers returns all registered ids. Order is not significant.
func (r *Registry) Providers() []string {
	ids := make([]string, 0, len(r.constructors))
	for id := range r.constructors {
		ids = append(ids, id)
	}
	return ids
}
