// Package qr parses and produces the loyalty QR payload formats.
//
// Two wire forms exist: the positional form
// "kind:shopId:value:id[:description]" printed on shop counter codes, and a
// JSON object emitted by the vendor dashboard generator. Decoding has no
// side effects.
package qr

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	KindPoints = "points"
	KindReward = "reward"

	// vendorJSONType is the historical type tag the dashboard generator
	// writes into JSON payloads.
	vendorJSONType = "loyalt-points"
)

var (
	ErrMalformedPayload = errors.New("invalid QR code format")
	ErrInvalidType      = errors.New("invalid QR code type")
	ErrInvalidValue     = errors.New("invalid QR code value")
)

type Payload struct {
	Kind        string `json:"kind"`
	ShopID      string `json:"shop_id"`
	Value       int    `json:"value"`
	ID          string `json:"id"`
	Description string `json:"description,omitempty"`
}

type vendorPayload struct {
	Type        string `json:"type"`
	ShopID      string `json:"shopId"`
	CodeID      string `json:"codeId,omitempty"`
	Points      int    `json:"points"`
	Description string `json:"description"`
	Timestamp   string `json:"timestamp"`
}

// Decode parses either payload form. The positional form needs at least 4
// colon-delimited fields; any colons past the 4th belong to the description,
// since the format defines no escaping.
func Decode(raw string) (*Payload, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrMalformedPayload
	}

	if strings.HasPrefix(raw, "{") {
		return decodeJSON(raw)
	}

	parts := strings.Split(raw, ":")
	if len(parts) < 4 {
		return nil, ErrMalformedPayload
	}

	kind, err := normalizeKind(parts[0])
	if err != nil {
		return nil, err
	}

	value, err := strconv.Atoi(parts[2])
	if err != nil || value < 0 {
		return nil, ErrInvalidValue
	}

	return &Payload{
		Kind:        kind,
		ShopID:      parts[1],
		Value:       value,
		ID:          parts[3],
		Description: strings.Join(parts[4:], ":"),
	}, nil
}

func decodeJSON(raw string) (*Payload, error) {
	var vp vendorPayload
	if err := json.Unmarshal([]byte(raw), &vp); err != nil {
		return nil, ErrMalformedPayload
	}

	kind, err := normalizeKind(vp.Type)
	if err != nil {
		return nil, err
	}

	if vp.Points < 0 {
		return nil, ErrInvalidValue
	}

	return &Payload{
		Kind:        kind,
		ShopID:      vp.ShopID,
		Value:       vp.Points,
		ID:          vp.CodeID,
		Description: vp.Description,
	}, nil
}

func normalizeKind(kind string) (string, error) {
	switch kind {
	case KindPoints, vendorJSONType:
		return KindPoints, nil
	case KindReward:
		return KindReward, nil
	default:
		return "", ErrInvalidType
	}
}

// Encode emits the canonical positional form. Descriptions containing a
// colon cannot round-trip positionally and are rejected.
func (p *Payload) Encode() (string, error) {
	switch p.Kind {
	case KindPoints, KindReward:
	default:
		return "", ErrInvalidType
	}

	if p.Value < 0 {
		return "", ErrInvalidValue
	}

	if p.Description == "" {
		return fmt.Sprintf("%s:%s:%d:%s", p.Kind, p.ShopID, p.Value, p.ID), nil
	}

	if strings.Contains(p.Description, ":") {
		return "", ErrMalformedPayload
	}

	return fmt.Sprintf("%s:%s:%d:%s:%s", p.Kind, p.ShopID, p.Value, p.ID, p.Description), nil
}

// EncodeVendorJSON emits the JSON payload the vendor dashboard puts into
// generated point-grant codes. codeID ties the payload back to the stored
// code record so single-use codes can be consumed on scan.
func EncodeVendorJSON(shopID, codeID string, points int, description string, ts time.Time) (string, error) {
	if points < 0 {
		return "", ErrInvalidValue
	}

	b, err := json.Marshal(vendorPayload{
		Type:        vendorJSONType,
		ShopID:      shopID,
		CodeID:      codeID,
		Points:      points,
		Description: description,
		Timestamp:   ts.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return "", err
	}

	return string(b), nil
}
