package domain

// Finance carries the per-reservation monetary fields, in the channel's
// native currency.
type Finance struct {
	BaseRate       float64         `json:"baseRate"`
	ChannelPayouts []ChannelPayout `json:"channelPayouts"`
}

type ChannelPayout struct {
	Amount float64 `json:"amount"`
}

// PayoutSum returns the sum of the channel payout line items.
func (f Finance) PayoutSum() float64 {
	var sum float64
	for _, payout := range f.ChannelPayouts {
		sum += payout.Amount
	}
	return sum
}
