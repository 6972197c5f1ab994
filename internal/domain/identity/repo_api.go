package identity

import (
	"context"
	"fmt"

	"github.com/apothedoc/clinic-transfer/internal/platform/rest"
)

type rosterRepoAPI struct {
	client *rest.Client
}

// NewRosterRepoAPI returns a RosterRepository backed by the clinic API.
func NewRosterRepoAPI(client *rest.Client) RosterRepository {
	return &rosterRepoAPI{client: client}
}

type providerListWrapper struct {
	Providers []Provider `json:"providers"`
}

type userListWrapper struct {
	Users []User `json:"users"`
}

func (r *rosterRepoAPI) Providers(ctx context.Context) ([]Provider, error) {
	var w providerListWrapper
	if err := r.client.Get(ctx, r.client.ClinicPath("provider/list?type=providers"), &w); err != nil {
		return nil, fmt.Errorf("get provider list: %w", err)
	}
	return w.Providers, nil
}

// Users reads the org-level user roster; users are not clinic-scoped.
func (r *rosterRepoAPI) Users(ctx context.Context) ([]User, error) {
	var w userListWrapper
	if err := r.client.Get(ctx, r.client.OrgPath("user/list"), &w); err != nil {
		return nil, fmt.Errorf("get user list: %w", err)
	}
	return w.Users, nil
}
