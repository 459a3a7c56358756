package main

import "testing"

func TestExtractMeta(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		wantShop string
		wantBay  string
	}{
		{"bay event", `{"shop_id":"shop-1","bay_id":"bay-1","available":true}`, "shop-1", "bay-1"},
		{"order event without bay", `{"shop_id":"shop-1","work_order_id":"wo-1"}`, "shop-1", ""},
		{"invalid json", `not-json`, "", ""},
		{"empty payload", `{}`, "", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			meta := extractMeta([]byte(tc.payload))
			if meta.ShopID != tc.wantShop || meta.BayID != tc.wantBay {
				t.Fatalf("expected shop=%q bay=%q, got shop=%q bay=%q", tc.wantShop, tc.wantBay, meta.ShopID, meta.BayID)
			}
		})
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"Bearer abc123", "abc123"},
		{"bearer abc123", "abc123"},
		{"Basic abc123", ""},
		{"Bearer", ""},
		{"", ""},
	}
	for _, tc := range tests {
		if got := bearerToken(tc.header); got != tc.want {
			t.Fatalf("bearerToken(%q) = %q, want %q", tc.header, got, tc.want)
		}
	}
}
