package loader

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/guttosm/p2pulse/internal/domain/models"
)

// DefaultKey is the top-level key the dashboard feed stores its operations under.
const DefaultKey = "operaciones"

// rawOperation is one element of the feed array, with the feed's own field names.
// monto and ganancia accept JSON numbers and numeric strings; a missing one is zero.
type rawOperation struct {
	ID       *int64          `json:"id" validate:"required"`
	Fecha    string          `json:"fecha"`
	Activo   string          `json:"activo"`
	Tipo     string          `json:"tipo"`
	Monto    decimal.Decimal `json:"monto"`
	Ganancia decimal.Decimal `json:"ganancia"`
	Estado   string          `json:"estado"`
}

var validate = newValidator()

// newValidator returns the record validator. Amounts are checked on the
// decimal itself: converting to float64 would round tiny negatives to -0.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		r := sl.Current().Interface().(models.TradeRecord)
		if r.Amount.IsNegative() {
			sl.ReportError(r.Amount, "Amount", "Amount", "nonnegative", "")
		}
	}, models.TradeRecord{})
	return v
}

// Decode parses a feed document and returns its validated trade set.
//
// Behavior:
//   - data must be a JSON object; the operations array lives under key.
//   - A missing key or a null array yields an empty, non-nil set.
//   - COMPRA/VENTA labels are mapped to BUY/SELL.
//   - The first bad element rejects the whole document.
func Decode(data []byte, key string) (models.TradeSet, error) {
	if key == "" {
		key = DefaultKey
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}

	raw, ok := doc[key]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return models.TradeSet{}, nil
	}

	var ops []rawOperation
	if err := json.Unmarshal(raw, &ops); err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrMalformedDocument, key, err)
	}

	set := make(models.TradeSet, 0, len(ops))
	for i, op := range ops {
		if err := validate.Struct(op); err != nil {
			return nil, fmt.Errorf("%w: element %d: %w", ErrInvalidRecord, i, err)
		}
		set = append(set, models.TradeRecord{
			ID:     *op.ID,
			Date:   op.Fecha,
			Asset:  op.Activo,
			Side:   models.NormalizeSide(op.Tipo),
			Amount: op.Monto,
			Profit: op.Ganancia,
			Status: op.Estado,
		})
	}

	if err := Validate(set); err != nil {
		return nil, err
	}
	return set, nil
}

// Validate applies the record checks shared by every source: field rules,
// strict date parsing and id uniqueness. It stops at the first failure.
func Validate(set models.TradeSet) error {
	seen := make(map[int64]struct{}, len(set))
	for _, r := range set {
		if err := validate.Struct(r); err != nil {
			return fmt.Errorf("%w: record %d: %w", ErrInvalidRecord, r.ID, err)
		}
		if _, err := models.ParseDay(r.Date); err != nil {
			return fmt.Errorf("record %d: %w", r.ID, err)
		}
		if _, dup := seen[r.ID]; dup {
			return fmt.Errorf("%w: %d", ErrDuplicateID, r.ID)
		}
		seen[r.ID] = struct{}{}
	}
	return nil
}
