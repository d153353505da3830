package domain

// Donation is a single contribution recorded against a campaign, net of
// any fee. It is identified by its position in the campaign's ordered
// donation list and is never mutated or removed.
type Donation struct {
	CampaignID uint64    `json:"campaign_id"`
	Seq        uint64    `json:"seq"`
	Donor      Principal `json:"donor"`
	NetAmount  uint64    `json:"net_amount"`
}
