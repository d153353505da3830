package domain

import "testing"

func TestStatusAt(t *testing.T) {
	live := Campaign{Creator: "alice", TargetAmount: 100, Deadline: 1000}

	tests := []struct {
		name string
		c    Campaign
		now  int64
		want Status
	}{
		{"active before deadline", live, 999, StatusActive},
		{"ended at the deadline instant", live, 1000, StatusEnded},
		{"ended after deadline", live, 1001, StatusEnded},
		{
			"goal reached at exact target",
			Campaign{Creator: "alice", TargetAmount: 100, AmountCollected: 100, Deadline: 1000},
			999,
			StatusGoalReached,
		},
		{
			"deadline takes precedence over goal",
			Campaign{Creator: "alice", TargetAmount: 100, AmountCollected: 100, Deadline: 1000},
			1000,
			StatusEnded,
		},
		{"removed record", Campaign{}, 0, StatusRemoved},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.c.StatusAt(tc.now); got != tc.want {
				t.Fatalf("StatusAt(%d) = %q, want %q", tc.now, got, tc.want)
			}
		})
	}
}

func TestAssetIsNative(t *testing.T) {
	if !AssetNative.IsNative() {
		t.Fatal("the sentinel must report native")
	}
	if Asset("usd-token").IsNative() {
		t.Fatal("a token id must not report native")
	}
}
