package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToSnakeCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"bookingDate", "booking_date"},
		{"remittanceInformationUnstructured", "remittance_information_unstructured"},
		{"proprietaryBankTransactionCode", "proprietary_bank_transaction_code"},
		{"transactionAmount.amount", "transaction_amount.amount"},
		{"already_snake", "already_snake"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ToSnakeCase(tt.in), tt.in)
	}
}

func TestCleanKey(t *testing.T) {
	assert.Equal(t, "amount", CleanKey("transactionAmount.amount"))
	assert.Equal(t, "currency", CleanKey("transactionAmount.currency"))
	assert.Equal(t, "booking_date", CleanKey("bookingDate"))
	assert.Equal(t, "booking_date", CleanKey("booking_date"))
}

func TestFlatten(t *testing.T) {
	raw := map[string]any{
		"transactionId": "t1",
		"transactionAmount": map[string]any{
			"amount":   "-6.99",
			"currency": "GBP",
		},
	}
	flat := Flatten(raw)
	assert.Equal(t, "t1", flat["transactionId"])
	assert.Equal(t, "-6.99", flat["transactionAmount.amount"])
	assert.Equal(t, "GBP", flat["transactionAmount.currency"])
}

func TestCleanKeys(t *testing.T) {
	raw := map[string]any{
		"transactionId": "t1",
		"bookingDate":   "2023-04-21",
		"transactionAmount": map[string]any{
			"amount": "-6.99",
		},
	}
	fields := CleanKeys(raw)
	assert.Equal(t, "t1", fields["transaction_id"])
	assert.Equal(t, "2023-04-21", fields["booking_date"])
	assert.Equal(t, "-6.99", fields["amount"])
}
