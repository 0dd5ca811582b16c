package store

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/bankfeed-dev/bankfeed/internal/model"
)

// enrichedRecord is the flat JSON shape handed to external collaborators.
// Dates render as YYYY-MM-DD, timestamps as YYYY-MM-DDTHH:MM:SSZ.
type enrichedRecord struct {
	TransactionID         string      `json:"transaction_id"`
	InternalTransactionID string      `json:"internal_transaction_id,omitempty"`
	AccountID             string      `json:"account_id"`
	AccountType           string      `json:"account_type"`
	AccountName           string      `json:"account_name,omitempty"`
	Status                string      `json:"status"`
	Amount                json.Number `json:"amount"`
	Currency              string      `json:"currency,omitempty"`
	BookingDate           string      `json:"booking_date"`
	ValueDate             string      `json:"value_date,omitempty"`
	BookingDateTime       string      `json:"booking_date_time,omitempty"`
	Description           string      `json:"remittance_information_unstructured"`
	ProprietaryCode       string      `json:"proprietary_bank_transaction_code"`
	CreditorName          string      `json:"creditor_name,omitempty"`
	DebtorName            string      `json:"debtor_name,omitempty"`
	MerchantCategoryCode  int         `json:"merchant_category_code"`
	Counterparty          string      `json:"counterparty"`
	Category              string      `json:"category"`
	Flow                  string      `json:"flow"`
	BookingYear           int         `json:"booking_year"`
	BookingMonth          int         `json:"booking_month"`
	YearMonth             string      `json:"year_month"`
}

// WriteEnriched writes the enriched batch as a JSON array of flat records.
func WriteEnriched(w io.Writer, txns []model.Transaction) error {
	records := make([]enrichedRecord, len(txns))
	for i, t := range txns {
		records[i] = toEnrichedRecord(t)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encoding enriched transactions: %w", err)
	}
	return nil
}

func toEnrichedRecord(t model.Transaction) enrichedRecord {
	rec := enrichedRecord{
		TransactionID:         t.TransactionID,
		InternalTransactionID: t.InternalTransactionID,
		AccountID:             t.AccountID,
		AccountType:           string(t.AccountType),
		AccountName:           t.AccountName,
		Status:                string(t.Status),
		Amount:                json.Number(t.Amount.StringFixed(2)),
		Currency:              t.Currency,
		BookingDate:           t.BookingDate.Format(model.DateFormat),
		Description:           t.Description,
		ProprietaryCode:       t.ProprietaryCode,
		CreditorName:          t.CreditorName,
		DebtorName:            t.DebtorName,
		MerchantCategoryCode:  t.MerchantCategoryCode,
		Counterparty:          t.Counterparty,
		Category:              t.Category,
		Flow:                  string(t.Flow),
		BookingYear:           t.BookingYear,
		BookingMonth:          t.BookingMonth,
		YearMonth:             t.YearMonth,
	}
	if !t.ValueDate.IsZero() {
		rec.ValueDate = t.ValueDate.Format(model.DateFormat)
	}
	if !t.BookingDateTime.IsZero() {
		rec.BookingDateTime = t.BookingDateTime.Format(model.DateTimeFormat)
	}
	return rec
}
