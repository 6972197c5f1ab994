package identity

import (
	"github.com/rs/zerolog"
)

// Resolver rewrites source-tenant identity references into destination-tenant
// ones. Each namespace resolves in two first-match steps: source id →
// mapping table → target id → destination roster entry. A miss at either
// step yields nil and one logged warning naming the unmapped identity; it is
// never an error and never halts the caller.
//
// The mapping tables and rosters are fixed at construction and read-only for
// the duration of the run.
type Resolver struct {
	providerMappings []IDMapping
	userMappings     []IDMapping
	providers        []Provider
	users            []User
	log              zerolog.Logger
}

func NewResolver(providerMappings, userMappings []IDMapping, providers []Provider, users []User, log zerolog.Logger) *Resolver {
	return &Resolver{
		providerMappings: providerMappings,
		userMappings:     userMappings,
		providers:        providers,
		users:            users,
		log:              log,
	}
}

func mappedTarget(sourceID int, mappings []IDMapping) (int, bool) {
	for _, m := range mappings {
		if m.SourceID == sourceID {
			return m.TargetID, true
		}
	}
	return 0, false
}

// Provider resolves a source provider reference against the provider
// namespace. Returns nil when src is nil, unmapped, or mapped to an id
// absent from the destination roster.
func (r *Resolver) Provider(src *Provider) *Provider {
	if src == nil {
		return nil
	}
	if targetID, ok := mappedTarget(src.ID, r.providerMappings); ok {
		for i := range r.providers {
			if r.providers[i].ID == targetID {
				return &r.providers[i]
			}
		}
	}
	r.log.Warn().
		Int("source_provider_id", src.ID).
		Str("name", src.FirstName+" "+src.LastName).
		Msg("no destination provider mapped, clearing reference; check provider mappings and the provider's role in the target clinic")
	return nil
}

// User resolves a source user reference against the user namespace.
func (r *Resolver) User(src *User) *User {
	if src == nil {
		return nil
	}
	if targetID, ok := mappedTarget(src.ID, r.userMappings); ok {
		for i := range r.users {
			if r.users[i].ID == targetID {
				return &r.users[i]
			}
		}
	}
	r.log.Warn().
		Int("source_user_id", src.ID).
		Str("name", src.FirstName+" "+src.LastName).
		Msg("no destination user mapped, clearing reference; check user mappings")
	return nil
}
