package qr

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePositional(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Payload
	}{
		{
			name: "points without description",
			raw:  "points:shop123:10:qr456",
			want: Payload{Kind: KindPoints, ShopID: "shop123", Value: 10, ID: "qr456"},
		},
		{
			name: "points with description",
			raw:  "points:shop123:10:qr456:Morning coffee",
			want: Payload{Kind: KindPoints, ShopID: "shop123", Value: 10, ID: "qr456", Description: "Morning coffee"},
		},
		{
			name: "reward",
			raw:  "reward:shop-1:0:reward-9",
			want: Payload{Kind: KindReward, ShopID: "shop-1", Value: 0, ID: "reward-9"},
		},
		{
			name: "zero value points",
			raw:  "points:s:0:i",
			want: Payload{Kind: KindPoints, ShopID: "s", Value: 0, ID: "i"},
		},
		{
			name: "legacy vendor kind maps to points",
			raw:  "loyalt-points:shop123:25:qr1",
			want: Payload{Kind: KindPoints, ShopID: "shop123", Value: 25, ID: "qr1"},
		},
		{
			// no escaping is defined, so everything past the 4th
			// field is description
			name: "description keeps embedded colons",
			raw:  "points:shop123:10:qr456:happy hour: two for one",
			want: Payload{Kind: KindPoints, ShopID: "shop123", Value: 10, ID: "qr456", Description: "happy hour: two for one"},
		},
		{
			name: "surrounding whitespace trimmed",
			raw:  "  points:shop123:10:qr456\n",
			want: Payload{Kind: KindPoints, ShopID: "shop123", Value: 10, ID: "qr456"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want error
	}{
		{"empty", "", ErrMalformedPayload},
		{"one field", "points", ErrMalformedPayload},
		{"two fields", "points:shop123", ErrMalformedPayload},
		{"three fields", "points:shop123:10", ErrMalformedPayload},
		{"unknown kind", "coupon:shop123:10:qr456", ErrInvalidType},
		{"empty kind", ":shop123:10:qr456", ErrInvalidType},
		{"non numeric value", "points:shop123:ten:qr456", ErrInvalidValue},
		{"negative value", "points:shop123:-5:qr456", ErrInvalidValue},
		{"float value", "points:shop123:1.5:qr456", ErrInvalidValue},
		{"broken json", `{"type":"loyalt-points"`, ErrMalformedPayload},
		{"json unknown type", `{"type":"voucher","shopId":"s","points":5}`, ErrInvalidType},
		{"json negative points", `{"type":"loyalt-points","shopId":"s","points":-3}`, ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.raw)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDecodeVendorJSON(t *testing.T) {
	raw := `{"type":"loyalt-points","shopId":"shop123","points":15,"description":"Earn 15 points at Cafe Uno","timestamp":"2025-03-01T10:00:00Z"}`

	got, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, KindPoints, got.Kind)
	assert.Equal(t, "shop123", got.ShopID)
	assert.Equal(t, 15, got.Value)
	assert.Equal(t, "Earn 15 points at Cafe Uno", got.Description)
	assert.Empty(t, got.ID)
}

func TestEncodeRoundTrip(t *testing.T) {
	p := &Payload{Kind: KindReward, ShopID: "shop-1", Value: 0, ID: "reward-9"}

	raw, err := p.Encode()
	require.NoError(t, err)
	assert.Equal(t, "reward:shop-1:0:reward-9", raw)

	back, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, *p, *back)
}

func TestEncodeRejectsColonDescription(t *testing.T) {
	p := &Payload{Kind: KindPoints, ShopID: "s", Value: 1, ID: "i", Description: "a:b"}
	_, err := p.Encode()
	assert.ErrorIs(t, err, ErrMalformedPayload)
}

func TestEncodeVendorJSONRoundTrip(t *testing.T) {
	ts := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	raw, err := EncodeVendorJSON("shop123", "code-7", 15, "fifteen", ts)
	require.NoError(t, err)

	got, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, KindPoints, got.Kind)
	assert.Equal(t, 15, got.Value)
	assert.Equal(t, "shop123", got.ShopID)
	assert.Equal(t, "code-7", got.ID)
}

func TestEncodeVendorJSONNoCodeID(t *testing.T) {
	raw, err := EncodeVendorJSON("shop123", "", 5, "", time.Now())
	require.NoError(t, err)

	got, err := Decode(raw)
	require.NoError(t, err)
	assert.Empty(t, got.ID)
}
