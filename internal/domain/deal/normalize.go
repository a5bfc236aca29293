// internal/domain/deal/normalize.go
package deal

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// PayloadKind discriminates the two shapes GET /deals/:id can return.
type PayloadKind int

const (
	// PayloadFlat is the deal object itself with its collections inline.
	PayloadFlat PayloadKind = iota + 1
	// PayloadWrapped is {"deal": {...}, "owners": [...], ...}.
	PayloadWrapped
)

// Payload is the decoded, tagged form of a deal response.
type Payload struct {
	Kind PayloadKind

	// Flat holds the deal for PayloadFlat.
	Flat *Deal

	// Wrapped fields for PayloadWrapped. Top-level collections win over
	// the ones nested in Deal.
	Deal      *Deal
	Owners    []Party
	Buyers    []Party
	Investors []Party
	Documents []Document
}

type wrappedWire struct {
	Deal      *Deal      `json:"deal"`
	Owners    []Party    `json:"owners"`
	Buyers    []Party    `json:"buyers"`
	Investors []Party    `json:"investors"`
	Documents []Document `json:"documents"`
}

// Decode classifies raw JSON into a Payload.
func Decode(raw []byte) (*Payload, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, fmt.Errorf("deal payload must be a JSON object")
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, fmt.Errorf("failed to decode deal payload: %w", err)
	}

	if inner := bytes.TrimSpace(top["deal"]); len(inner) > 0 && inner[0] == '{' {
		var w wrappedWire
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, fmt.Errorf("failed to decode wrapped deal: %w", err)
		}
		return &Payload{
			Kind:      PayloadWrapped,
			Deal:      w.Deal,
			Owners:    w.Owners,
			Buyers:    w.Buyers,
			Investors: w.Investors,
			Documents: w.Documents,
		}, nil
	}

	var d Deal
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("failed to decode deal: %w", err)
	}
	return &Payload{Kind: PayloadFlat, Flat: &d}, nil
}

// Normalize turns either payload shape into the canonical Deal. Collections
// are never nil in the result.
func Normalize(p *Payload) (*Deal, error) {
	if p == nil {
		return nil, fmt.Errorf("nil deal payload")
	}

	var out Deal
	switch p.Kind {
	case PayloadFlat:
		if p.Flat == nil {
			return nil, fmt.Errorf("flat payload without deal")
		}
		out = *p.Flat
	case PayloadWrapped:
		if p.Deal == nil {
			return nil, fmt.Errorf("wrapped payload without deal")
		}
		out = *p.Deal
		out.Owners = preferParties(p.Owners, out.Owners)
		out.Buyers = preferParties(p.Buyers, out.Buyers)
		out.Investors = preferParties(p.Investors, out.Investors)
		if p.Documents != nil {
			out.Documents = p.Documents
		}
	default:
		return nil, fmt.Errorf("unknown deal payload kind %d", p.Kind)
	}

	if out.Owners == nil {
		out.Owners = []Party{}
	}
	if out.Buyers == nil {
		out.Buyers = []Party{}
	}
	if out.Investors == nil {
		out.Investors = []Party{}
	}
	if out.Documents == nil {
		out.Documents = []Document{}
	}
	return &out, nil
}

// Parse is Decode followed by Normalize.
func Parse(raw []byte) (*Deal, error) {
	p, err := Decode(raw)
	if err != nil {
		return nil, err
	}
	return Normalize(p)
}

func preferParties(top, nested []Party) []Party {
	if top != nil {
		return top
	}
	return nested
}
