package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Side is the direction of a P2P trade.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// Source labels used by the dashboard feed.
const (
	LabelBuy  = "COMPRA"
	LabelSell = "VENTA"
)

// NormalizeSide maps a feed label (COMPRA/VENTA or BUY/SELL, any case) to a Side.
// Unknown labels are returned upper-cased so validation can reject them.
func NormalizeSide(label string) Side {
	switch s := strings.ToUpper(strings.TrimSpace(label)); s {
	case LabelBuy, string(SideBuy):
		return SideBuy
	case LabelSell, string(SideSell):
		return SideSell
	default:
		return Side(s)
	}
}

// Label returns the feed label of s (COMPRA or VENTA).
func (s Side) Label() string {
	switch s {
	case SideBuy:
		return LabelBuy
	case SideSell:
		return LabelSell
	}
	return string(s)
}

// TradeRecord is one completed or pending P2P trade.
//
// Date keeps the boundary form (YYYY-MM-DD); it is parsed strictly wherever
// it is used. Amount and Profit are independent of each other: nothing derives
// one from the other.
type TradeRecord struct {
	ID     int64           `json:"id"`
	Date   string          `json:"date"`
	Asset  string          `json:"asset" validate:"required"`
	Side   Side            `json:"side" validate:"oneof=BUY SELL"`
	Amount decimal.Decimal `json:"amount"` // >= 0, checked by the loader
	Profit decimal.Decimal `json:"profit"`
	Status string          `json:"status"`
}

// TradeSet is an ordered snapshot of trade records for one render pass.
// It is replaced wholesale on refresh and never mutated in place.
type TradeSet []TradeRecord

// Clone returns a copy that callers may modify freely.
func (s TradeSet) Clone() TradeSet {
	out := make(TradeSet, len(s))
	copy(out, s)
	return out
}
