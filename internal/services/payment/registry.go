package payment

// Registry holds the payment providers available to the session service,
// keyed by provider identifier. Registration happens once at startup; the
// registry is read-only afterwards.
type Registry struct {
	providers map[string]Provider
}

func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{providers: make(map[string]Provider, len(providers))}
	for _, p := range providers {
		r.providers[p.Identifier()] = p
	}
	return r
}

// Get returns the provider registered under id.
func (r *Registry) Get(id string) (Provider, error) {
	p, ok := r.providers[id]
	if !ok {
		return nil, ErrProviderNotFound
	}
	return p, nil
}

// Identifiers lists the registered provider ids.
func (r *Registry) Identifiers() []string {
	ids := make([]string, 0, len(r.providers))
	for id := range r.providers {
		ids = append(ids, id)
	}
	return ids
}
