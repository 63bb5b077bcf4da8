package domain

// FinanceRecord carries the per-reservation monetary fields, denominated
// in the channel's native currency.
type FinanceRecord struct {
	ReservationID    int     `json:"reservation_id"`
	BaseRate         float64 `json:"base_rate"`
	ChannelPayoutSum float64 `json:"channel_payout_sum"`
}

// BaseAmount returns the amount revenue is computed from: the channel
// payout sum for Airbnb reservations, the base rate for everything else.
func (f FinanceRecord) BaseAmount(channelID int) float64 {
	if channelID == ChannelAirbnb {
		return f.ChannelPayoutSum
	}
	return f.BaseRate
}

// FinanceResult is the typed outcome of a finance lookup. A reservation
// without finance data (upstream 404) yields Missing=true, an exhausted
// retry budget yields Err. Neither aborts the aggregation run; both
// contribute zero revenue.
type FinanceResult struct {
	Record  *FinanceRecord
	Missing bool
	Err     error
}
