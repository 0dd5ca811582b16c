// Package reconcile combines a historic transaction set with a freshly
// fetched one into a single deduplicated, time-ordered set.
package reconcile

import (
	"sort"
	"strconv"
	"strings"

	"github.com/bankfeed-dev/bankfeed/internal/model"
)

// Provenance values used internally during the merge; dropped from the
// output.
const (
	sourceHistoric = "historic"
	sourceLive     = "live"
)

type tagged struct {
	tx     model.Transaction
	source string
}

// Merge combines historic transactions (from a prior persisted run) with
// live transactions (freshly fetched, pending and booked). Historic records
// are filtered to booked-only first: a pending record that only exists in a
// past snapshot is stale.
//
// Duplicates are removed on full-record equality, not transaction id, so a
// live record that differs from its historic counterpart in any field (for
// example a freshly populated optional field, or corrected remittance text)
// is retained alongside the historic copy. Callers needing strict
// one-record-per-id must dedup by id themselves.
//
// The result is ordered by booking date descending; the sort is stable, so
// records sharing a booking date keep their historic-then-live concatenation
// order. Inputs are never mutated.
func Merge(historic, live []model.Transaction) []model.Transaction {
	combined := make([]tagged, 0, len(historic)+len(live))
	for _, t := range historic {
		if t.Status != model.StatusBooked {
			continue
		}
		combined = append(combined, tagged{tx: t, source: sourceHistoric})
	}
	for _, t := range live {
		combined = append(combined, tagged{tx: t, source: sourceLive})
	}

	seen := make(map[string]bool, len(combined))
	deduped := combined[:0:0]
	for _, item := range combined {
		k := recordKey(item.tx)
		if seen[k] {
			continue
		}
		seen[k] = true
		deduped = append(deduped, item)
	}

	sort.SliceStable(deduped, func(i, j int) bool {
		return deduped[i].tx.BookingDate.After(deduped[j].tx.BookingDate)
	})

	out := make([]model.Transaction, len(deduped))
	for i, item := range deduped {
		out[i] = item.tx
	}
	return out
}

// recordKey renders every normalized field into a canonical form so that two
// transactions collide iff they are field-for-field equal. Amounts are
// rendered at fixed precision so equal values with different decimal scales
// compare equal.
func recordKey(t model.Transaction) string {
	parts := []string{
		t.TransactionID,
		t.InternalTransactionID,
		t.AccountID,
		string(t.AccountType),
		t.AccountName,
		string(t.Status),
		t.Amount.StringFixed(4),
		t.Currency,
		t.BookingDate.Format(model.DateFormat),
		t.ValueDate.Format(model.DateFormat),
		t.BookingDateTime.Format(model.DateTimeFormat),
		t.Description,
		t.ProprietaryCode,
		t.CreditorName,
		t.DebtorName,
		strconv.Itoa(t.MerchantCategoryCode),
		t.Counterparty,
		t.Category,
		string(t.Flow),
	}
	return strings.Join(parts, "\x1f")
}
