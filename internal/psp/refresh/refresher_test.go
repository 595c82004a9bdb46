package refresh

import (
	"context"
	"errors"
	"testing"

	"github.com/veldpay/methods-server/internal/apiconfig"
	"github.com/veldpay/methods-server/internal/paymentmethod"
	"github.com/veldpay/methods-server/internal/psp"
)

type fakeRegistry struct {
	services []*apiconfig.Service
	err      error
}

func (registry *fakeRegistry) Services(_ context.Context) ([]*apiconfig.Service, error) {
	return registry.services, registry.err
}

type fakePSPRepo struct {
	snapshot []*psp.PSP
	replaced int
}

func (repo *fakePSPRepo) GetByFilter(_ context.Context, _ *psp.Filter) ([]*psp.PSP, error) {
	return repo.snapshot, nil
}

func (repo *fakePSPRepo) ReplaceAll(_ context.Context, psps []*psp.PSP) error {
	repo.snapshot = psps
	repo.replaced++
	return nil
}

func TestRefresherRefresh(t *testing.T) {
	registry := &fakeRegistry{services: []*apiconfig.Service{
		{
			PSPCode:            "PSP1",
			PSPBusinessName:    "First Bank",
			BrokerPSPCode:      "BROKER1",
			ServiceDescription: "Card payments",
			PaymentTypeCode:    "CP",
			ChannelCode:        "CH1",
			LanguageCode:       "it",
			MinimumAmount:      0,
			MaximumAmount:      100000,
			FixedCost:          150,
		},
		{
			PSPCode:         "PSP2",
			PaymentTypeCode: "BPAY",
			LanguageCode:    "EN",
		},
	}}
	repo := &fakePSPRepo{snapshot: []*psp.PSP{{Code: "STALE"}}}

	refresher := New(registry, repo)
	n, err := refresher.Refresh(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Errorf("got %d entries, want 2", n)
	}
	if repo.replaced != 1 || len(repo.snapshot) != 2 {
		t.Fatalf("catalog was not replaced wholesale: %+v", repo.snapshot)
	}

	first := repo.snapshot[0]
	if first.Code != "PSP1" || first.TypeCode != "CP" || first.BusinessName != "First Bank" ||
		first.BrokerName != "BROKER1" || first.ChannelCode != "CH1" || first.FixedCost != 150 {
		t.Errorf("service was mapped incorrectly: %+v", first)
	}
	if first.Status != paymentmethod.StatusEnabled {
		t.Errorf("got status %v, want %v", first.Status, paymentmethod.StatusEnabled)
	}
	if first.Language != "IT" || repo.snapshot[1].Language != "EN" {
		t.Error("language codes were not normalized to uppercase")
	}
}

func TestRefresherRefreshRegistryError(t *testing.T) {
	registryErr := errors.New("registry unavailable")
	repo := &fakePSPRepo{snapshot: []*psp.PSP{{Code: "KEEP"}}}

	refresher := New(&fakeRegistry{err: registryErr}, repo)
	if _, err := refresher.Refresh(context.Background()); !errors.Is(err, registryErr) {
		t.Fatalf("got error %v, want %v", err, registryErr)
	}
	if repo.replaced != 0 || len(repo.snapshot) != 1 {
		t.Error("a failed refresh must leave the catalog untouched")
	}
}
