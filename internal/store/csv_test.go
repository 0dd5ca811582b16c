package store

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankfeed-dev/bankfeed/internal/model"
)

func sampleTransactions(t *testing.T) []model.Transaction {
	t.Helper()
	return []model.Transaction{
		{
			TransactionID:         "txn-1",
			InternalTransactionID: "int-1",
			AccountID:             "acct-1",
			AccountType:           model.AccountTypeCurrent,
			AccountName:           "everyday current",
			Status:                model.StatusBooked,
			Amount:                decimal.RequireFromString("-6.99"),
			Currency:              "GBP",
			BookingDate:           time.Date(2023, 4, 21, 0, 0, 0, 0, time.UTC),
			ValueDate:             time.Date(2023, 4, 21, 0, 0, 0, 0, time.UTC),
			BookingDateTime:       time.Date(2023, 4, 21, 9, 30, 0, 0, time.UTC),
			Description:           "recurrent transaction at apple.com/bil irl",
			ProprietaryCode:       "RECURRENT TRANSACTION",
			MerchantCategoryCode:  model.MCCNone,
		},
		{
			TransactionID:        "txn-2",
			AccountID:            "acct-2",
			AccountType:          model.AccountTypeCard,
			Status:               model.StatusBooked,
			Amount:               decimal.RequireFromString("-41.07"),
			Currency:             "GBP",
			BookingDate:          time.Date(2023, 4, 19, 0, 0, 0, 0, time.UTC),
			CreditorName:         "aldi stores",
			MerchantCategoryCode: 5411,
		},
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	in := sampleTransactions(t)

	var buf bytes.Buffer
	require.NoError(t, WriteTransactions(&buf, in))

	out, err := ReadTransactions(&buf)
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, "txn-1", out[0].TransactionID)
	assert.Equal(t, "int-1", out[0].InternalTransactionID)
	assert.Equal(t, model.AccountTypeCurrent, out[0].AccountType)
	assert.Equal(t, model.StatusBooked, out[0].Status)
	assert.True(t, out[0].Amount.Equal(in[0].Amount))
	assert.True(t, out[0].BookingDate.Equal(in[0].BookingDate))
	assert.True(t, out[0].ValueDate.Equal(in[0].ValueDate))
	assert.True(t, out[0].BookingDateTime.Equal(in[0].BookingDateTime))
	assert.Equal(t, model.MCCNone, out[0].MerchantCategoryCode)

	assert.Equal(t, "aldi stores", out[1].CreditorName)
	assert.True(t, out[1].ValueDate.IsZero())
	assert.True(t, out[1].BookingDateTime.IsZero())
	assert.Equal(t, 5411, out[1].MerchantCategoryCode)
}

func TestReadTransactions_RawAggregatorHeader(t *testing.T) {
	// A raw aggregator dump: camelCase columns and a dotted amount path. The
	// header normalization boundary makes it read the same as the canonical
	// export.
	raw := strings.Join([]string{
		"transactionId,status,transactionAmount.amount,transactionAmount.currency,bookingDate,remittanceInformationUnstructured",
		`txn-9,booked,-12.50,GBP,2023-05-02,CARD PAYMENT TO TESCO STORES`,
	}, "\n")

	out, err := ReadTransactions(strings.NewReader(raw))
	require.NoError(t, err)
	require.Len(t, out, 1)

	assert.Equal(t, "txn-9", out[0].TransactionID)
	assert.Equal(t, model.StatusBooked, out[0].Status)
	assert.True(t, out[0].Amount.Equal(decimal.RequireFromString("-12.50")))
	assert.Equal(t, "GBP", out[0].Currency)
	assert.Equal(t, "CARD PAYMENT TO TESCO STORES", out[0].Description)
}

func TestReadTransactions_Empty(t *testing.T) {
	out, err := ReadTransactions(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestReadTransactions_BadRowReportsLine(t *testing.T) {
	raw := strings.Join([]string{
		"transaction_id,status,amount,booking_date",
		"txn-1,booked,10.00,2023-01-01",
		"txn-2,booked,not-a-number,2023-01-02",
	}, "\n")

	_, err := ReadTransactions(strings.NewReader(raw))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 3")
}

func TestMarshalTransaction_EmptyOptionalDates(t *testing.T) {
	row := MarshalTransaction(model.Transaction{
		TransactionID: "txn-1",
		Status:        model.StatusPending,
		Amount:        decimal.RequireFromString("3.5"),
		BookingDate:   time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
	})

	assert.Equal(t, "3.50", row[colAmount])
	assert.Equal(t, "2023-01-01", row[colBookDate])
	assert.Equal(t, "", row[colValueDate])
	assert.Equal(t, "", row[colBookTime])
}
