package hostawayclient

import (
	"context"
	"encoding/json"

	hostawaydomain "github.com/hostfolio/property-dashboard-api/infrastructure/integrator/hostaway/domain"
	"github.com/pkg/errors"
)

type listingsEnvelope struct {
	Status string                   `json:"status"`
	Result []hostawaydomain.Listing `json:"result"`
}

// ListListings fetches the full listing set.
func (c *HostawayClient) ListListings(ctx context.Context) ([]hostawaydomain.Listing, error) {
	body, err := c.do(ctx, c.limiter, "/listings", nil, defaultMaxRetries)
	if err != nil {
		return nil, err
	}

	var envelope listingsEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, errors.Wrap(err, "decoding listings response")
	}

	return envelope.Result, nil
}
