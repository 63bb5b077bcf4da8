package hostawayclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	hostawaydomain "github.com/hostfolio/property-dashboard-api/infrastructure/integrator/hostaway/domain"
	"github.com/pkg/errors"
)

type calendarEnvelope struct {
	Status string                       `json:"status"`
	Result []hostawaydomain.CalendarDay `json:"result"`
}

// GetCalendarDay fetches the single-day calendar entry of one listing.
// A day missing from the upstream calendar is reported as available.
func (c *HostawayClient) GetCalendarDay(ctx context.Context, listingID int, date string) (*hostawaydomain.CalendarDay, error) {
	query := url.Values{}
	query.Set("startDate", date)
	query.Set("endDate", date)

	body, err := c.do(ctx, c.limiter, fmt.Sprintf("/listings/%d/calendar", listingID), query, defaultMaxRetries)
	if err != nil {
		return nil, err
	}

	var envelope calendarEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, errors.Wrap(err, "decoding calendar response")
	}

	if len(envelope.Result) == 0 {
		return &hostawaydomain.CalendarDay{Date: date, Status: "available"}, nil
	}

	return &envelope.Result[0], nil
}
