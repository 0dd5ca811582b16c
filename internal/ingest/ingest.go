// Package ingest turns raw cached aggregator payloads into per-account
// transaction ledgers.
package ingest

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/bankfeed-dev/bankfeed/internal/bankdata"
	"github.com/bankfeed-dev/bankfeed/internal/ledger"
	"github.com/bankfeed-dev/bankfeed/internal/model"
	"github.com/bankfeed-dev/bankfeed/internal/normalize"
)

// Balance types reported by the aggregator.
const (
	balanceInterimBooked    = "interimBooked"
	balanceInterimAvailable = "interimAvailable"
	balanceForwardAvailable = "forwardAvailable"
	balanceOpeningCleared   = "openingCleared"
)

// BuildAccounts parses every account in the payload into a ledger, with its
// transactions normalized and added in booked-then-pending order.
func BuildAccounts(payload bankdata.UserPayload) ([]*ledger.Account, error) {
	accounts := make([]*ledger.Account, 0, len(payload.Requisition.Accounts))
	for _, accountID := range payload.Requisition.Accounts {
		raw, ok := payload.Accounts[accountID]
		if !ok {
			return nil, fmt.Errorf("account %s: missing from payload", accountID)
		}
		account, err := buildAccount(accountID, raw)
		if err != nil {
			return nil, fmt.Errorf("account %s: %w", accountID, err)
		}
		accounts = append(accounts, account)
	}
	return accounts, nil
}

// Transactions flattens all account ledgers into one live transaction set,
// booked before pending within each account.
func Transactions(accounts []*ledger.Account) []model.Transaction {
	var out []model.Transaction
	for _, a := range accounts {
		out = append(out, a.Transactions()...)
	}
	return out
}

func buildAccount(accountID string, raw bankdata.AccountPayload) (*ledger.Account, error) {
	details := normalize.CleanKeys(raw.Account)

	accountType := model.AccountType(stringField(details, "cash_account_type"))
	name, err := accountName(accountType, details)
	if err != nil {
		return nil, err
	}

	account := &ledger.Account{
		AccountID:   accountID,
		AccountName: name,
		AccountType: accountType,
		Currency:    stringField(details, "currency"),
		MaskedPAN:   stringField(details, "masked_pan"),
	}
	if err := applyBalances(account, raw.Balances); err != nil {
		return nil, err
	}

	txns, err := normalizeLists(accountID, raw.Transactions)
	if err != nil {
		return nil, err
	}
	if err := account.AddTransactions(txns); err != nil {
		return nil, err
	}
	return account, nil
}

// accountName resolves the display name per variant: current accounts carry
// a "name" field, cards describe themselves in "details".
func accountName(accountType model.AccountType, details map[string]any) (string, error) {
	switch accountType {
	case model.AccountTypeCurrent:
		return stringField(details, "name"), nil
	case model.AccountTypeCard:
		return stringField(details, "details"), nil
	default:
		return "", fmt.Errorf("unknown account type %q", accountType)
	}
}

func applyBalances(account *ledger.Account, balances []map[string]any) error {
	for _, raw := range balances {
		b := normalize.CleanKeys(raw)
		balanceType, _ := b["balance_type"].(string)

		amount, err := balanceAmount(b)
		if err != nil {
			return fmt.Errorf("balance %q: %w", balanceType, err)
		}

		switch balanceType {
		case balanceInterimBooked:
			account.InterimBooked = amount
		case balanceInterimAvailable:
			account.InterimAvailable = amount
		case balanceForwardAvailable:
			account.ForwardAvailable = amount
		case balanceOpeningCleared:
			account.OpeningCleared = amount
		}
	}
	return nil
}

func balanceAmount(b map[string]any) (decimal.Decimal, error) {
	// CleanKeys flattens balanceAmount.amount to "amount".
	switch v := b["amount"].(type) {
	case string:
		return decimal.NewFromString(v)
	case float64:
		return decimal.NewFromFloat(v), nil
	case nil:
		return decimal.Zero, nil
	default:
		return decimal.Zero, fmt.Errorf("unexpected amount type %T", v)
	}
}

// normalizeLists stamps status and account id onto each raw record, then
// runs it through the normalization boundary.
func normalizeLists(accountID string, lists bankdata.TransactionLists) ([]model.Transaction, error) {
	normalizeOne := func(raw map[string]any, status model.Status, i int) (model.Transaction, error) {
		fields := make(map[string]any, len(raw)+2)
		for k, v := range raw {
			fields[k] = v
		}
		fields["status"] = string(status)
		fields["account_id"] = accountID

		t, err := normalize.Record(fields)
		if err != nil {
			return model.Transaction{}, fmt.Errorf("%s record %d: %w", status, i, err)
		}
		return t, nil
	}

	txns := make([]model.Transaction, 0, len(lists.Booked)+len(lists.Pending))
	for i, raw := range lists.Booked {
		t, err := normalizeOne(raw, model.StatusBooked, i)
		if err != nil {
			return nil, err
		}
		txns = append(txns, t)
	}
	for i, raw := range lists.Pending {
		t, err := normalizeOne(raw, model.StatusPending, i)
		if err != nil {
			return nil, err
		}
		txns = append(txns, t)
	}
	return txns, nil
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}
