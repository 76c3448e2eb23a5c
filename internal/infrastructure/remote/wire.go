package remote

import (
	"bytes"
	"context"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"compras/internal/core/security"
	"compras/internal/core/types"
)

// The store is loose about scalar types: monetary fields and counters arrive
// as JSON numbers or as quoted strings depending on the endpoint, and dates
// mix plain yyyy-MM-dd with full timestamps. The wire types below absorb that
// so the domain layer only ever sees clean values. Unparseable numbers read
// as zero rather than failing the whole payload.

// flexNumber is a decimal that accepts both quoted and bare numbers and
// always writes a bare number.
type flexNumber decimal.Decimal

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(bytes.TrimSpace(data), `"`))
	if s == "" || s == "null" {
		*n = flexNumber(decimal.Zero)
		return nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		*n = flexNumber(decimal.Zero)
		return nil
	}

	*n = flexNumber(d)
	return nil
}

func (n flexNumber) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(n).String()), nil
}

func (n flexNumber) money() types.Money {
	return decimal.Decimal(n)
}

func toFlex(m types.Money) flexNumber {
	return flexNumber(m)
}

// flexInt is an integer that accepts quoted digits.
type flexInt int64

func (n *flexInt) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(bytes.TrimSpace(data), `"`))
	if s == "" || s == "null" {
		*n = 0
		return nil
	}

	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		*n = 0
		return nil
	}

	*n = flexInt(v)
	return nil
}

func (n flexInt) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(int64(n), 10)), nil
}

const wireDateLayout = "2006-01-02"

// Layouts the store has been seen emitting, most specific first.
var wireDateReadLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	wireDateLayout,
}

// wireDate is a calendar date written as yyyy-MM-dd. Reads tolerate full
// timestamps; an unparseable value reads as the zero time.
type wireDate struct {
	time.Time
}

func (d *wireDate) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(bytes.TrimSpace(data), `"`))
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}

	for _, layout := range wireDateReadLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}

	d.Time = time.Time{}
	return nil
}

func (d wireDate) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Time.Format(wireDateLayout) + `"`), nil
}

func optionalDate(t *time.Time) *wireDate {
	if t == nil {
		return nil
	}
	return &wireDate{Time: *t}
}

func optionalTime(d *wireDate) *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

// fallbackActorID is stamped when a write happens outside an authenticated
// request, matching what the store historically received.
const fallbackActorID int64 = 1

// actorID resolves the acting user for audit stamping on store writes.
func actorID(ctx context.Context) int64 {
	if id := security.GetActorID(ctx); id != 0 {
		return id
	}
	return fallbackActorID
}
