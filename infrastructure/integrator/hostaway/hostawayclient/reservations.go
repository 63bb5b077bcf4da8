package hostawayclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	hostawaydomain "github.com/hostfolio/property-dashboard-api/infrastructure/integrator/hostaway/domain"
	"github.com/pkg/errors"
)

const reservationsPageSize = 500

type reservationsEnvelope struct {
	Status string                       `json:"status"`
	Result []hostawaydomain.Reservation `json:"result"`
}

type reservationEnvelope struct {
	Status string                     `json:"status"`
	Result hostawaydomain.Reservation `json:"result"`
}

// ListReservations walks the paginated reservations collection until a
// short page signals the end.
func (c *HostawayClient) ListReservations(ctx context.Context) ([]hostawaydomain.Reservation, error) {
	var all []hostawaydomain.Reservation

	for offset := 0; ; offset += reservationsPageSize {
		query := url.Values{}
		query.Set("limit", strconv.Itoa(reservationsPageSize))
		query.Set("offset", strconv.Itoa(offset))

		body, err := c.do(ctx, c.limiter, "/reservations", query, defaultMaxRetries)
		if err != nil {
			return nil, err
		}

		var envelope reservationsEnvelope
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, errors.Wrap(err, "decoding reservations response")
		}

		all = append(all, envelope.Result...)

		if len(envelope.Result) < reservationsPageSize {
			return all, nil
		}
	}
}

// GetReservation fetches a single reservation with the richer
// include-set (custom field values).
func (c *HostawayClient) GetReservation(ctx context.Context, reservationID int) (*hostawaydomain.Reservation, error) {
	query := url.Values{}
	query.Set("includeResources", "customFieldValues")

	body, err := c.do(ctx, c.limiter, fmt.Sprintf("/reservations/%d", reservationID), query, defaultMaxRetries)
	if err != nil {
		return nil, err
	}

	var envelope reservationEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, errors.Wrap(err, "decoding reservation response")
	}

	return &envelope.Result, nil
}
