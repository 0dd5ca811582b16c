package enrich

import (
	"strings"

	"github.com/bankfeed-dev/bankfeed/internal/model"
)

// unknownText fills missing free-text fields so downstream matching treats
// them as a groupable value rather than missing data.
const unknownText = "unknown"

var boilerplate = strings.NewReplacer(
	"description:", "",
	"ref.", "ref ",
	"&amp;", " ",
)

// CleanText strips boilerplate tokens from a free-text field and lowercases
// it.
func CleanText(text string) string {
	return strings.ToLower(boilerplate.Replace(text))
}

// Clean returns a copy of t with text fields normalized for matching: missing
// description, code and party names filled with "unknown", text lowercased,
// amount rounded to 2 decimal places and the merchant category code coerced
// to the -1 sentinel when missing. The input is not modified.
func Clean(t model.Transaction) model.Transaction {
	t.Description = cleanTextField(t.Description)
	t.CreditorName = cleanTextField(t.CreditorName)
	t.DebtorName = cleanTextField(t.DebtorName)

	if t.ProprietaryCode == "" {
		t.ProprietaryCode = unknownText
	}

	t.Amount = t.Amount.Round(2)

	if t.MerchantCategoryCode == 0 {
		t.MerchantCategoryCode = model.MCCNone
	}
	return t
}

// CleanBatch applies Clean to every transaction, returning a new slice.
func CleanBatch(txns []model.Transaction) []model.Transaction {
	out := make([]model.Transaction, len(txns))
	for i, t := range txns {
		out[i] = Clean(t)
	}
	return out
}

func cleanTextField(text string) string {
	if text == "" {
		return unknownText
	}
	return CleanText(text)
}
