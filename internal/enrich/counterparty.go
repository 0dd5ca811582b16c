package enrich

import (
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/bankfeed-dev/bankfeed/internal/model"
)

// Extraction patterns operate on cleaned (lowercased) descriptions. They are
// anchored on the textual conventions of the bank's remittance text, not on
// any standard scheme.
var (
	// "recurrent transaction at apple.com/bil irl of 6.99 gbp on ..." ->
	// "apple.com/bil irl" (trailing country code stripped by the strategy).
	atOfPattern = regexp.MustCompile(`\bat\s+(.*?)\sof\b`)

	// Incoming transfer: party between "from"/"ref " and a trailing
	// "reference"/"ref" anchor.
	fromRefPattern = regexp.MustCompile(`(?:from|ref.)\s+(.*?)\s+(?:reference|ref)`)

	// Fallback for incoming faster payments with no trailing anchor.
	fromPattern = regexp.MustCompile(`from\s+(.+)`)

	// Outgoing payment: party between "to" and a reference/date boundary.
	toBoundaryPattern = regexp.MustCompile(`to\s+(.*?)\s+(reference|on|,|ref)`)

	// "transfer to <party>" with no boundary.
	transferToPattern = regexp.MustCompile(`transfer to\s(.*)`)

	// Bank giro credit: party between "ref " and a comma.
	refCommaPattern = regexp.MustCompile(`ref\s(.*),`)
)

// ResolverConfig carries the account-holder specifics the extraction table
// needs.
type ResolverConfig struct {
	// BankName is reported as the counterparty for the bank's own credits
	// (cashback, interest).
	BankName string
	// OwnerName is reported for same-owner transfers such as credit card
	// payments.
	OwnerName string
	// StemAliases maps any counterparty containing the alias to the alias
	// itself ("amazon payments uk" -> "amazon").
	StemAliases []string
	// AfterStarAliases keeps the portion after the first '*' for acquirer
	// prefixes like "zpos" and "paypal"; other starred names keep the
	// portion before it.
	AfterStarAliases []string
}

// Resolver derives a human-readable counterparty from a transaction's code
// and free text. Resolution never fails: unknown codes degrade to the
// "unknown" sentinel with a warning.
type Resolver struct {
	cfg        ResolverConfig
	log        zerolog.Logger
	strategies map[string]func(description string) string
}

// NewResolver builds a Resolver with the fixed per-code extraction table.
func NewResolver(cfg ResolverConfig, log zerolog.Logger) *Resolver {
	r := &Resolver{cfg: cfg, log: log}
	r.strategies = map[string]func(string) string{
		"CASHBACK":                    func(string) string { return cfg.BankName },
		"CREDIT INTEREST":             func(string) string { return cfg.BankName },
		"DEBIT CARD CASH WITHDRAWAL":  func(string) string { return "cash withdrawal" },
		"CHEQUE DEPOSIT":              func(string) string { return "cheque unknown" },
		"ACCOUNT CANCELLATION CREDIT": func(string) string { return "account closure transfer" },
		"FASTER PAYMENT RECEIPT":      extractCreditFasterPayments,
		"PURCHASE - DOMESTIC":         extractCardPresent,
		"RECURRENT TRANSACTION":       extractCardPresent,
		"APPLE PAY IN-APP":            extractCardPresent,
		"BANK TRANSFER CREDIT":        extractGiroCredit,
		"EXTERNAL DIRECT DEBIT":       extractDebit,
		"OTT DEBIT":                   extractDebit,
		"OTT CREDIT":                  extractCredit,
		"BANK TRANSFER DEBIT":         r.extractBankTransferDebit,
	}
	return r
}

// Resolve returns the counterparty for t, canonicalized. Expects a cleaned
// transaction (lowercased description and party names).
func (r *Resolver) Resolve(t model.Transaction) string {
	var counterparty string
	switch t.AccountType {
	case model.AccountTypeCard:
		counterparty = r.resolveCard(t)
	case model.AccountTypeCurrent:
		counterparty = r.resolveCurrent(t)
	default:
		r.log.Warn().
			Str("transaction_id", t.TransactionID).
			Str("account_type", string(t.AccountType)).
			Msg("unknown account type")
	}
	if counterparty == "" {
		counterparty = unknownText
	}
	return r.Canonicalize(counterparty)
}

func (r *Resolver) resolveCard(t model.Transaction) string {
	if t.CreditorName == "" || t.CreditorName == unknownText {
		return unknownText
	}
	return strings.ToLower(t.CreditorName)
}

func (r *Resolver) resolveCurrent(t model.Transaction) string {
	strategy, ok := r.strategies[t.ProprietaryCode]
	if !ok {
		r.log.Warn().
			Str("transaction_id", t.TransactionID).
			Str("code", t.ProprietaryCode).
			Msg("unknown proprietary bank transaction code")
		return unknownText
	}
	return strategy(t.Description)
}

// Canonicalize stems known merchant variants, handles card-acquirer '*'
// descriptors and collapses whitespace. An empty counterparty canonicalizes
// to the "n/a" sentinel, which downstream categorization treats as a valid
// groupable value.
func (r *Resolver) Canonicalize(counterparty string) string {
	if counterparty == "" {
		return "n/a"
	}

	for _, stem := range r.cfg.StemAliases {
		if strings.Contains(counterparty, stem) {
			return stem
		}
	}

	for _, prefix := range r.cfg.AfterStarAliases {
		if strings.Contains(counterparty, prefix) {
			if _, after, ok := strings.Cut(counterparty, "*"); ok {
				return after
			}
		}
	}

	if before, _, ok := strings.Cut(counterparty, "*"); ok {
		counterparty = before
	}

	return strings.Join(strings.Fields(counterparty), " ")
}

// extractCardPresent pulls the merchant between "at " and " of "; the
// trailing 3 characters are a country code and are stripped.
func extractCardPresent(description string) string {
	m := atOfPattern.FindStringSubmatch(description)
	if m == nil {
		return ""
	}
	merchant := m[1]
	if len(merchant) <= 3 {
		return ""
	}
	return merchant[:len(merchant)-3]
}

func extractCreditFasterPayments(description string) string {
	if m := fromRefPattern.FindStringSubmatch(description); m != nil {
		return m[1]
	}
	if m := fromPattern.FindStringSubmatch(description); m != nil {
		return m[1]
	}
	return ""
}

func extractCredit(description string) string {
	if m := fromRefPattern.FindStringSubmatch(description); m != nil {
		return m[1]
	}
	return ""
}

func extractDebit(description string) string {
	if m := toBoundaryPattern.FindStringSubmatch(description); m != nil {
		return m[1]
	}
	return ""
}

func extractGiroCredit(description string) string {
	if m := refCommaPattern.FindStringSubmatch(description); m != nil {
		return m[1]
	}
	return ""
}

func (r *Resolver) extractBankTransferDebit(description string) string {
	if description == "credit card payment" {
		return r.cfg.OwnerName
	}
	if strings.Contains(description, "transfer to") {
		if m := transferToPattern.FindStringSubmatch(description); m != nil {
			return m[1]
		}
		return ""
	}
	return extractDebit(description)
}
