package identity

import "context"

// RosterRepository reads the staff rosters of one tenant.
type RosterRepository interface {
	Providers(ctx context.Context) ([]Provider, error)
	Users(ctx context.Context) ([]User, error)
}
