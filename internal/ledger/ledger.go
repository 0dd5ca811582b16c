package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/bankfeed-dev/bankfeed/internal/model"
)

// MismatchError reports a transaction whose account id disagrees with the
// ledger it was added to.
type MismatchError struct {
	TransactionID string
	Got           string
	Want          string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("transaction %s: account_id %q does not match account %q", e.TransactionID, e.Got, e.Want)
}

// InvalidStatusError reports a transaction status outside {pending, booked}.
type InvalidStatusError struct {
	TransactionID string
	Status        model.Status
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("transaction %s: invalid status %q", e.TransactionID, e.Status)
}

// Account owns the pending and booked transaction sets for one bank account.
// It is a single-writer structure: callers must serialize AddTransaction if
// they ingest from multiple sources.
type Account struct {
	AccountID   string
	AccountName string
	AccountType model.AccountType
	Currency    string

	// Current-account balances.
	InterimBooked    decimal.Decimal
	InterimAvailable decimal.Decimal

	// Card balances.
	MaskedPAN        string
	ForwardAvailable decimal.Decimal
	OpeningCleared   decimal.Decimal

	Pending []model.Transaction
	Booked  []model.Transaction
}

// CreditLimit derives the card credit limit from the forward-available and
// opening-cleared balances. ok is false for current accounts or when either
// balance is missing.
func (a *Account) CreditLimit() (decimal.Decimal, bool) {
	if a.AccountType != model.AccountTypeCard {
		return decimal.Zero, false
	}
	if a.ForwardAvailable.IsZero() && a.OpeningCleared.IsZero() {
		return decimal.Zero, false
	}
	return a.ForwardAvailable.Sub(a.OpeningCleared), true
}

// AddTransaction inserts t into the account ledger.
//
// A pending transaction upserts: any pending entry with the same transaction
// id is replaced. A booked transaction promotes: it is appended to the booked
// set and any pending entry with the same id is removed. After any sequence
// of calls no transaction id is present in both sets.
//
// The account's name and type are stamped onto the stored copy.
func (a *Account) AddTransaction(t model.Transaction) error {
	if t.AccountID != a.AccountID {
		return &MismatchError{TransactionID: t.TransactionID, Got: t.AccountID, Want: a.AccountID}
	}

	switch t.Status {
	case model.StatusPending, model.StatusBooked:
	default:
		return &InvalidStatusError{TransactionID: t.TransactionID, Status: t.Status}
	}

	t.AccountName = a.AccountName
	t.AccountType = a.AccountType

	a.removePending(t.TransactionID)

	if t.Status == model.StatusBooked {
		a.Booked = append(a.Booked, t)
		return nil
	}

	// A pending record whose id was already booked is stale; inserting it
	// would put the id in both sets.
	if a.hasBooked(t.TransactionID) {
		return nil
	}
	a.Pending = append(a.Pending, t)
	return nil
}

func (a *Account) hasBooked(transactionID string) bool {
	for _, t := range a.Booked {
		if t.TransactionID == transactionID {
			return true
		}
	}
	return false
}

// AddTransactions applies AddTransaction in input order, so later entries
// override earlier ones sharing an id.
func (a *Account) AddTransactions(txns []model.Transaction) error {
	for _, t := range txns {
		if err := a.AddTransaction(t); err != nil {
			return err
		}
	}
	return nil
}

// Transactions returns booked followed by pending entries as one slice.
func (a *Account) Transactions() []model.Transaction {
	out := make([]model.Transaction, 0, len(a.Booked)+len(a.Pending))
	out = append(out, a.Booked...)
	out = append(out, a.Pending...)
	return out
}

func (a *Account) removePending(transactionID string) {
	for i, t := range a.Pending {
		if t.TransactionID == transactionID {
			a.Pending = append(a.Pending[:i], a.Pending[i+1:]...)
			return
		}
	}
}
