package store

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankfeed-dev/bankfeed/internal/model"
)

func TestWriteEnriched(t *testing.T) {
	txns := []model.Transaction{{
		TransactionID:        "txn-1",
		AccountID:            "acct-1",
		AccountType:          model.AccountTypeCurrent,
		AccountName:          "everyday current",
		Status:               model.StatusBooked,
		Amount:               decimal.RequireFromString("-6.99"),
		Currency:             "GBP",
		BookingDate:          time.Date(2023, 4, 21, 0, 0, 0, 0, time.UTC),
		BookingDateTime:      time.Date(2023, 4, 21, 9, 30, 0, 0, time.UTC),
		Description:          "recurrent transaction at apple.com/bil irl",
		ProprietaryCode:      "RECURRENT TRANSACTION",
		MerchantCategoryCode: model.MCCNone,
		Counterparty:         "apple.com/bil",
		Category:             "unlabelled",
		Flow:                 model.FlowDebit,
		BookingYear:          2023,
		BookingMonth:         4,
		YearMonth:            "2023-04",
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteEnriched(&buf, txns))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)

	rec := decoded[0]
	assert.Equal(t, "txn-1", rec["transaction_id"])
	assert.Equal(t, "booked", rec["status"])
	assert.Equal(t, -6.99, rec["amount"])
	assert.Equal(t, "2023-04-21", rec["booking_date"])
	assert.Equal(t, "2023-04-21T09:30:00Z", rec["booking_date_time"])
	assert.Equal(t, "apple.com/bil", rec["counterparty"])
	assert.Equal(t, "unlabelled", rec["category"])
	assert.Equal(t, "debit", rec["flow"])
	assert.Equal(t, float64(2023), rec["booking_year"])
	assert.Equal(t, float64(4), rec["booking_month"])
	assert.Equal(t, "2023-04", rec["year_month"])
	assert.Equal(t, float64(-1), rec["merchant_category_code"])

	// Optional fields absent from the source stay out of the payload.
	assert.NotContains(t, rec, "value_date")
	assert.NotContains(t, rec, "creditor_name")
	assert.NotContains(t, rec, "debtor_name")
	assert.NotContains(t, rec, "internal_transaction_id")
}

func TestWriteEnriched_EmptyBatch(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteEnriched(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestWriteEnriched_AmountRendersTwoDecimals(t *testing.T) {
	txns := []model.Transaction{{
		TransactionID: "txn-1",
		Status:        model.StatusBooked,
		Amount:        decimal.RequireFromString("2500"),
		BookingDate:   time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC),
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteEnriched(&buf, txns))
	assert.Contains(t, buf.String(), `"amount": 2500.00`)
}
