package domain

// Principal is an authenticated caller identity (creator, donor, or owner)
// as supplied by the execution environment. The empty string means the
// caller is anonymous.
type Principal string

// Asset identifies what a campaign accepts. The zero value is the native
// currency sentinel; anything else names a fungible token contract.
type Asset string

// AssetNative is the sentinel for native-currency campaigns.
const AssetNative Asset = ""

// IsNative reports whether the asset is the native currency.
func (a Asset) IsNative() bool { return a == AssetNative }

// Campaign is a fundraising effort with a goal, a deadline, and an
// accepted asset. Identifiers are assigned sequentially starting at 0 and
// never reused, even after removal.
type Campaign struct {
	ID              uint64    `json:"id"`
	Creator         Principal `json:"creator"`
	AcceptedAsset   Asset     `json:"accepted_asset"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	ImageURL        string    `json:"image_url"`
	TargetAmount    uint64    `json:"target_amount"`
	Deadline        int64     `json:"deadline"`
	AmountCollected uint64    `json:"amount_collected"`
}

// Exists reports whether the record is live. Removal zeroes the record in
// place, so an empty creator doubles as the tombstone marker.
func (c Campaign) Exists() bool { return c.Creator != "" }

// Status is a campaign lifecycle state derived from the record.
type Status string

const (
	StatusActive      Status = "active"
	StatusEnded       Status = "ended"
	StatusGoalReached Status = "goal_reached"
	StatusRemoved     Status = "removed"
)

// StatusAt derives the lifecycle state at the given unix second. The
// deadline is exclusive: a campaign is already ended at the deadline
// instant itself.
func (c Campaign) StatusAt(now int64) Status {
	if !c.Exists() {
		return StatusRemoved
	}
	if now >= c.Deadline {
		return StatusEnded
	}
	if c.AmountCollected >= c.TargetAmount {
		return StatusGoalReached
	}
	return StatusActive
}
