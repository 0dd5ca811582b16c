package normalize

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bankfeed-dev/bankfeed/internal/model"
)

// MalformedRecordError reports a required field that is absent or unparsable
// during normalization.
type MalformedRecordError struct {
	Field string
	Err   error
}

func (e *MalformedRecordError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("malformed record: missing field %q", e.Field)
	}
	return fmt.Sprintf("malformed record: field %q: %v", e.Field, e.Err)
}

func (e *MalformedRecordError) Unwrap() error { return e.Err }

// Record converts a raw field mapping into a typed Transaction. Keys may be
// aggregator camelCase (with nested/dotted amount paths) or already
// normalized snake_case; values may be strings or already-typed, so
// normalizing a normalized record is a no-op.
//
// Required fields: transaction_id, status, amount, booking_date. Everything
// else defaults to its zero value (merchant_category_code to the -1
// sentinel).
func Record(raw map[string]any) (model.Transaction, error) {
	fields := CleanKeys(raw)

	var t model.Transaction
	var err error

	if t.TransactionID, err = requireString(fields, "transaction_id"); err != nil {
		return model.Transaction{}, err
	}
	status, err := requireString(fields, "status")
	if err != nil {
		return model.Transaction{}, err
	}
	t.Status = model.Status(status)

	if t.Amount, err = requireDecimal(fields, "amount"); err != nil {
		return model.Transaction{}, err
	}
	if t.BookingDate, err = requireDate(fields, "booking_date"); err != nil {
		return model.Transaction{}, err
	}

	t.InternalTransactionID = optionalString(fields, "internal_transaction_id")
	t.AccountID = optionalString(fields, "account_id")
	t.AccountType = model.AccountType(optionalString(fields, "account_type"))
	t.AccountName = optionalString(fields, "account_name")
	t.Currency = optionalString(fields, "currency")
	t.Description = optionalString(fields, "remittance_information_unstructured")
	t.ProprietaryCode = optionalString(fields, "proprietary_bank_transaction_code")
	t.CreditorName = optionalString(fields, "creditor_name")
	t.DebtorName = optionalString(fields, "debtor_name")

	if t.ValueDate, err = optionalDate(fields, "value_date"); err != nil {
		return model.Transaction{}, err
	}
	if t.BookingDateTime, err = optionalDateTime(fields, "booking_date_time"); err != nil {
		return model.Transaction{}, err
	}
	if t.MerchantCategoryCode, err = optionalInt(fields, "merchant_category_code", model.MCCNone); err != nil {
		return model.Transaction{}, err
	}

	// Pass enrichment fields through so re-normalizing an enriched record
	// loses nothing.
	t.Counterparty = optionalString(fields, "counterparty")
	t.Category = optionalString(fields, "category")
	t.Flow = model.Flow(optionalString(fields, "flow"))

	return t, nil
}

// Records normalizes a batch, failing on the first malformed record.
func Records(raws []map[string]any) ([]model.Transaction, error) {
	txns := make([]model.Transaction, 0, len(raws))
	for i, raw := range raws {
		t, err := Record(raw)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		txns = append(txns, t)
	}
	return txns, nil
}

func requireString(fields map[string]any, key string) (string, error) {
	v, ok := fields[key]
	if !ok || v == nil {
		return "", &MalformedRecordError{Field: key}
	}
	s, err := asString(v)
	if err != nil {
		return "", &MalformedRecordError{Field: key, Err: err}
	}
	if s == "" {
		return "", &MalformedRecordError{Field: key}
	}
	return s, nil
}

func optionalString(fields map[string]any, key string) string {
	v, ok := fields[key]
	if !ok || v == nil {
		return ""
	}
	s, err := asString(v)
	if err != nil {
		return ""
	}
	return s
}

func requireDecimal(fields map[string]any, key string) (decimal.Decimal, error) {
	v, ok := fields[key]
	if !ok || v == nil {
		return decimal.Zero, &MalformedRecordError{Field: key}
	}
	d, err := asDecimal(v)
	if err != nil {
		return decimal.Zero, &MalformedRecordError{Field: key, Err: err}
	}
	return d, nil
}

func requireDate(fields map[string]any, key string) (time.Time, error) {
	v, ok := fields[key]
	if !ok || v == nil {
		return time.Time{}, &MalformedRecordError{Field: key}
	}
	d, err := asTime(v, model.DateFormat)
	if err != nil {
		return time.Time{}, &MalformedRecordError{Field: key, Err: err}
	}
	return d, nil
}

func optionalDate(fields map[string]any, key string) (time.Time, error) {
	v, ok := fields[key]
	if !ok || v == nil || v == "" {
		return time.Time{}, nil
	}
	d, err := asTime(v, model.DateFormat)
	if err != nil {
		return time.Time{}, &MalformedRecordError{Field: key, Err: err}
	}
	return d, nil
}

func optionalDateTime(fields map[string]any, key string) (time.Time, error) {
	v, ok := fields[key]
	if !ok || v == nil || v == "" {
		return time.Time{}, nil
	}
	d, err := asTime(v, model.DateTimeFormat)
	if err != nil {
		return time.Time{}, &MalformedRecordError{Field: key, Err: err}
	}
	return d, nil
}

func optionalInt(fields map[string]any, key string, missing int) (int, error) {
	v, ok := fields[key]
	if !ok || v == nil {
		return missing, nil
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case float64:
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, &MalformedRecordError{Field: key, Err: err}
		}
		return int(i), nil
	case string:
		if n == "" {
			return missing, nil
		}
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0, &MalformedRecordError{Field: key, Err: err}
		}
		return i, nil
	default:
		return 0, &MalformedRecordError{Field: key, Err: fmt.Errorf("unexpected type %T", v)}
	}
}

func asString(v any) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case model.Status:
		return string(s), nil
	case model.AccountType:
		return string(s), nil
	case model.Flow:
		return string(s), nil
	default:
		return "", fmt.Errorf("unexpected type %T", v)
	}
}

func asDecimal(v any) (decimal.Decimal, error) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, nil
	case string:
		return decimal.NewFromString(n)
	case float64:
		return decimal.NewFromFloat(n), nil
	case json.Number:
		return decimal.NewFromString(n.String())
	default:
		return decimal.Zero, fmt.Errorf("unexpected type %T", v)
	}
}

func asTime(v any, layout string) (time.Time, error) {
	switch d := v.(type) {
	case time.Time:
		return d, nil
	case string:
		return time.Parse(layout, d)
	default:
		return time.Time{}, fmt.Errorf("unexpected type %T", v)
	}
}
