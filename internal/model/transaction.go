package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the settlement state of a transaction.
type Status string

const (
	StatusPending Status = "pending"
	StatusBooked  Status = "booked"
)

// AccountType distinguishes current accounts from card accounts, using the
// cash-account-type codes the aggregator reports.
type AccountType string

const (
	AccountTypeCurrent AccountType = "CACC"
	AccountTypeCard    AccountType = "CARD"
)

// Flow is the direction of money movement, derived from the amount sign.
type Flow string

const (
	FlowCredit Flow = "credit"
	FlowDebit  Flow = "debit"
)

// MCCNone is the sentinel for a missing merchant category code.
const MCCNone = -1

// DateFormat renders date-only fields.
const DateFormat = "2006-01-02"

// DateTimeFormat renders timestamp fields.
const DateTimeFormat = "2006-01-02T15:04:05Z"

// Transaction is one normalized bank transaction. All fields are typed at the
// normalization boundary; downstream components never re-coerce.
type Transaction struct {
	TransactionID         string
	InternalTransactionID string // optional secondary key

	AccountID   string
	AccountType AccountType
	AccountName string

	Status   Status
	Amount   decimal.Decimal // negative = expense, positive = income
	Currency string

	BookingDate     time.Time // date only
	ValueDate       time.Time // date only
	BookingDateTime time.Time

	Description          string // remittance information, free text
	ProprietaryCode      string // bank-assigned transaction-type code
	CreditorName         string // card transactions only
	DebtorName           string // card transactions only
	MerchantCategoryCode int    // MCCNone when absent

	// Derived by enrichment.
	Counterparty string
	Category     string
	Flow         Flow
	BookingYear  int
	BookingMonth int
	YearMonth    string // "YYYY-MM"
}
