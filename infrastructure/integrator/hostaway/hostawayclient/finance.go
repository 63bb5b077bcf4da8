package hostawayclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	hostawaydomain "github.com/hostfolio/property-dashboard-api/infrastructure/integrator/hostaway/domain"
	"github.com/pkg/errors"
)

type financeEnvelope struct {
	Status string                 `json:"status"`
	Result hostawaydomain.Finance `json:"result"`
}

// GetReservationFinance fetches the finance fields of one reservation,
// under the stricter finance rate budget. A 404 means the reservation
// simply has no finance data; the second return value is false then.
func (c *HostawayClient) GetReservationFinance(ctx context.Context, reservationID int) (*hostawaydomain.Finance, bool, error) {
	body, err := c.do(ctx, c.financeLimiter, fmt.Sprintf("/reservations/%d/financeField", reservationID), nil, defaultMaxRetries)
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.Code == http.StatusNotFound {
			return nil, false, nil
		}
		return nil, false, err
	}

	var envelope financeEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, false, errors.Wrap(err, "decoding finance response")
	}

	return &envelope.Result, true, nil
}
