package refresh

import (
	"context"
	"strings"

	"github.com/veldpay/methods-server/internal/apiconfig"
	"github.com/veldpay/methods-server/internal/paymentmethod"
	"github.com/veldpay/methods-server/internal/psp"
)

// Registry defines the registry operations the refresher depends on
type Registry interface {
	// Services lists all PSP services currently known to the registry
	Services(ctx context.Context) ([]*apiconfig.Service, error)
}

// Refresher replaces the local PSP catalog with the current registry snapshot.
// It is meant to be driven by a repeating task.
type Refresher struct {
	registry Registry
	repo     psp.Repository
}

// New creates a new PSP catalog refresher
func New(registry Registry, repo psp.Repository) *Refresher {
	return &Refresher{
		registry: registry,
		repo:     repo,
	}
}

// Refresh fetches the registry services and replaces the catalog snapshot.
// It returns the amount of PSP entries the new snapshot contains.
func (refresher *Refresher) Refresh(ctx context.Context) (int, error) {
	services, err := refresher.registry.Services(ctx)
	if err != nil {
		return 0, err
	}

	psps := make([]*psp.PSP, 0, len(services))
	for _, service := range services {
		psps = append(psps, &psp.PSP{
			Code:         service.PSPCode,
			TypeCode:     service.PaymentTypeCode,
			ChannelCode:  service.ChannelCode,
			Language:     strings.ToUpper(service.LanguageCode),
			Status:       paymentmethod.StatusEnabled,
			BusinessName: service.PSPBusinessName,
			BrokerName:   service.BrokerPSPCode,
			Description:  service.ServiceDescription,
			MinAmount:    service.MinimumAmount,
			MaxAmount:    service.MaximumAmount,
			FixedCost:    service.FixedCost,
		})
	}

	if err := refresher.repo.ReplaceAll(ctx, psps); err != nil {
		return 0, err
	}
	return len(psps), nil
}
