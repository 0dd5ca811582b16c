// Package store reads and writes the collaborator-owned flat record formats:
// the historic transaction ledger as CSV and the enriched output as JSON.
package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bankfeed-dev/bankfeed/internal/model"
	"github.com/bankfeed-dev/bankfeed/internal/normalize"
)

// Header is the CSV header for the historic transaction ledger.
const Header = "transaction_id,internal_transaction_id,account_id,account_type,account_name,status,amount,currency,booking_date,value_date,booking_date_time,remittance_information_unstructured,proprietary_bank_transaction_code,creditor_name,debtor_name,merchant_category_code"

const (
	numFields     = 16
	colTxnID      = 0
	colInternalID = 1
	colAccountID  = 2
	colAcctType   = 3
	colAcctName   = 4
	colStatus     = 5
	colAmount     = 6
	colCurrency   = 7
	colBookDate   = 8
	colValueDate  = 9
	colBookTime   = 10
	colDesc       = 11
	colCode       = 12
	colCreditor   = 13
	colDebtor     = 14
	colMCC        = 15
)

// ReadTransactions reads a historic ledger CSV. Column names are taken from
// the header row and run through the normalization boundary, so both
// canonical snake_case exports and raw aggregator dumps (camelCase, dotted
// amount paths) parse identically.
func ReadTransactions(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading transactions CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := records[0]
	var txns []model.Transaction
	for i, rec := range records[1:] {
		raw := make(map[string]any, len(header))
		for j, col := range header {
			if j >= len(rec) || rec[j] == "" {
				continue
			}
			raw[col] = rec[j]
		}
		t, err := normalize.Record(raw)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, t)
	}
	return txns, nil
}

// WriteTransactions writes the canonical ledger CSV (including header).
func WriteTransactions(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, t := range txns {
		if err := cw.Write(MarshalTransaction(t)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalTransaction converts a Transaction to a CSV row ([]string).
func MarshalTransaction(t model.Transaction) []string {
	row := make([]string, numFields)
	row[colTxnID] = t.TransactionID
	row[colInternalID] = t.InternalTransactionID
	row[colAccountID] = t.AccountID
	row[colAcctType] = string(t.AccountType)
	row[colAcctName] = t.AccountName
	row[colStatus] = string(t.Status)
	row[colAmount] = t.Amount.StringFixed(2)
	row[colCurrency] = t.Currency
	row[colBookDate] = t.BookingDate.Format(model.DateFormat)

	if !t.ValueDate.IsZero() {
		row[colValueDate] = t.ValueDate.Format(model.DateFormat)
	}
	if !t.BookingDateTime.IsZero() {
		row[colBookTime] = t.BookingDateTime.Format(model.DateTimeFormat)
	}

	row[colDesc] = t.Description
	row[colCode] = t.ProprietaryCode
	row[colCreditor] = t.CreditorName
	row[colDebtor] = t.DebtorName
	row[colMCC] = strconv.Itoa(t.MerchantCategoryCode)
	return row
}
