package ingest

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankfeed-dev/bankfeed/internal/bankdata"
	"github.com/bankfeed-dev/bankfeed/internal/model"
)

func currentAccountPayload() bankdata.AccountPayload {
	return bankdata.AccountPayload{
		Account: map[string]any{
			"resourceId":      "res-1",
			"currency":        "GBP",
			"cashAccountType": "CACC",
			"name":            "everyday current",
		},
		Balances: []map[string]any{
			{
				"balanceAmount": map[string]any{"amount": "1250.00", "currency": "GBP"},
				"balanceType":   "interimBooked",
			},
			{
				"balanceAmount": map[string]any{"amount": "1190.55", "currency": "GBP"},
				"balanceType":   "interimAvailable",
			},
		},
		Transactions: bankdata.TransactionLists{
			Booked: []map[string]any{
				{
					"transactionId": "txn-1",
					"transactionAmount": map[string]any{
						"amount":   "-6.99",
						"currency": "GBP",
					},
					"bookingDate":                       "2023-04-21",
					"remittanceInformationUnstructured": "RECURRENT TRANSACTION AT APPLE.COM/BIL IRL OF 6.99 GBP",
					"proprietaryBankTransactionCode":    "RECURRENT TRANSACTION",
				},
			},
			Pending: []map[string]any{
				{
					"transactionId": "txn-2",
					"transactionAmount": map[string]any{
						"amount":   "-12.50",
						"currency": "GBP",
					},
					"bookingDate": "2023-04-22",
				},
			},
		},
	}
}

func cardAccountPayload() bankdata.AccountPayload {
	return bankdata.AccountPayload{
		Account: map[string]any{
			"maskedPan":       "************1234",
			"currency":        "GBP",
			"cashAccountType": "CARD",
			"details":         "cashback credit card",
		},
		Balances: []map[string]any{
			{
				"balanceAmount": map[string]any{"amount": "-210.40", "currency": "GBP"},
				"balanceType":   "interimBooked",
			},
			{
				"balanceAmount": map[string]any{"amount": "4789.60", "currency": "GBP"},
				"balanceType":   "forwardAvailable",
			},
			{
				"balanceAmount": map[string]any{"amount": "-210.40", "currency": "GBP"},
				"balanceType":   "openingCleared",
			},
		},
		Transactions: bankdata.TransactionLists{
			Booked: []map[string]any{
				{
					"transactionId": "txn-3",
					"transactionAmount": map[string]any{
						"amount":   "-41.07",
						"currency": "GBP",
					},
					"bookingDate":  "2023-04-19",
					"creditorName": "ALDI STORES",
				},
			},
		},
	}
}

func userPayload() bankdata.UserPayload {
	return bankdata.UserPayload{
		Requisition: bankdata.Requisition{
			ID:       "req-1",
			Accounts: []string{"acct-1", "acct-2"},
		},
		Accounts: map[string]bankdata.AccountPayload{
			"acct-1": currentAccountPayload(),
			"acct-2": cardAccountPayload(),
		},
	}
}

func TestBuildAccounts(t *testing.T) {
	accounts, err := BuildAccounts(userPayload())
	require.NoError(t, err)
	require.Len(t, accounts, 2)

	current := accounts[0]
	assert.Equal(t, "acct-1", current.AccountID)
	assert.Equal(t, model.AccountTypeCurrent, current.AccountType)
	assert.Equal(t, "everyday current", current.AccountName)
	assert.Equal(t, "GBP", current.Currency)
	assert.True(t, current.InterimBooked.Equal(decimal.RequireFromString("1250.00")))
	assert.True(t, current.InterimAvailable.Equal(decimal.RequireFromString("1190.55")))

	require.Len(t, current.Booked, 1)
	require.Len(t, current.Pending, 1)
	booked := current.Booked[0]
	assert.Equal(t, "txn-1", booked.TransactionID)
	assert.Equal(t, model.StatusBooked, booked.Status)
	assert.Equal(t, "acct-1", booked.AccountID)
	assert.Equal(t, model.AccountTypeCurrent, booked.AccountType)
	assert.Equal(t, "everyday current", booked.AccountName)
	assert.True(t, booked.Amount.Equal(decimal.RequireFromString("-6.99")))
	assert.Equal(t, "RECURRENT TRANSACTION", booked.ProprietaryCode)
	assert.Equal(t, model.StatusPending, current.Pending[0].Status)

	card := accounts[1]
	assert.Equal(t, model.AccountTypeCard, card.AccountType)
	assert.Equal(t, "cashback credit card", card.AccountName)
	assert.Equal(t, "************1234", card.MaskedPAN)
	assert.True(t, card.ForwardAvailable.Equal(decimal.RequireFromString("4789.60")))
	require.Len(t, card.Booked, 1)
	assert.Equal(t, "ALDI STORES", card.Booked[0].CreditorName)

	limit, ok := card.CreditLimit()
	require.True(t, ok)
	assert.True(t, limit.Equal(decimal.RequireFromString("5000.00")))
}

func TestBuildAccounts_MissingAccount(t *testing.T) {
	payload := userPayload()
	delete(payload.Accounts, "acct-2")

	_, err := BuildAccounts(payload)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "acct-2")
}

func TestBuildAccounts_UnknownAccountType(t *testing.T) {
	payload := userPayload()
	acct := payload.Accounts["acct-1"]
	acct.Account["cashAccountType"] = "SVGS"
	payload.Accounts["acct-1"] = acct

	_, err := BuildAccounts(payload)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown account type")
}

func TestBuildAccounts_BadTransactionReportsStatusAndIndex(t *testing.T) {
	payload := userPayload()
	acct := payload.Accounts["acct-1"]
	acct.Transactions.Pending[0]["transactionAmount"] = map[string]any{"amount": "oops"}
	payload.Accounts["acct-1"] = acct

	_, err := BuildAccounts(payload)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pending record 0")
}

func TestTransactions_FlattensBookedThenPending(t *testing.T) {
	accounts, err := BuildAccounts(userPayload())
	require.NoError(t, err)

	txns := Transactions(accounts)
	require.Len(t, txns, 3)
	assert.Equal(t, "txn-1", txns[0].TransactionID)
	assert.Equal(t, "txn-2", txns[1].TransactionID)
	assert.Equal(t, "txn-3", txns[2].TransactionID)
}
