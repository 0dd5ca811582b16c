// Package enrich derives counterparty, category, flow and time features for
// normalized transactions. Every transform is pure: inputs are never mutated.
package enrich

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bankfeed-dev/bankfeed/internal/model"
)

// AmbiguousFlowError reports a zero-amount transaction, whose flow direction
// cannot be derived. Zero amounts are not representable by this pipeline and
// must be rejected upstream.
type AmbiguousFlowError struct {
	TransactionID string
}

func (e *AmbiguousFlowError) Error() string {
	return fmt.Sprintf("transaction %s: zero amount, flow is ambiguous", e.TransactionID)
}

// RecordError ties a per-record enrichment failure to its transaction. A
// failed record is dropped from the output; the rest of the batch still
// enriches.
type RecordError struct {
	TransactionID string
	Err           error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("enriching transaction %s: %v", e.TransactionID, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

// Options configures the enrichment pipeline for one account holder.
type Options struct {
	Resolver ResolverConfig
	Rules    RulesConfig
}

// Enricher sequences cleaning, counterparty resolution, categorization and
// flow/time derivation over a batch.
type Enricher struct {
	resolver   *Resolver
	classifier *Classifier
}

// New builds an Enricher with the default rule chain.
func New(opts Options, log zerolog.Logger) *Enricher {
	return &Enricher{
		resolver:   NewResolver(opts.Resolver, log),
		classifier: NewClassifier(DefaultRules(opts.Rules)),
	}
}

// NewWithRules builds an Enricher over a custom ordered rule chain, for
// callers that need a reduced or reordered set.
func NewWithRules(opts Options, rules []Rule, log zerolog.Logger) *Enricher {
	return &Enricher{
		resolver:   NewResolver(opts.Resolver, log),
		classifier: NewClassifier(rules),
	}
}

// Enrich returns a new batch of enriched transactions plus per-record
// failures. The input batch is left untouched; output order follows input
// order minus failed records.
func (e *Enricher) Enrich(batch []model.Transaction) ([]model.Transaction, []*RecordError) {
	out := make([]model.Transaction, 0, len(batch))
	var errs []*RecordError

	for _, t := range batch {
		enriched, err := e.enrichOne(t)
		if err != nil {
			errs = append(errs, &RecordError{TransactionID: t.TransactionID, Err: err})
			continue
		}
		out = append(out, enriched)
	}
	return out, errs
}

func (e *Enricher) enrichOne(t model.Transaction) (model.Transaction, error) {
	t = Clean(t)
	t.Counterparty = e.resolver.Resolve(t)
	t.Category = e.classifier.Classify(t)

	flow, err := DeriveFlow(t)
	if err != nil {
		return model.Transaction{}, err
	}
	t.Flow = flow

	t.BookingYear = t.BookingDate.Year()
	t.BookingMonth = int(t.BookingDate.Month())
	t.YearMonth = t.BookingDate.Format("2006-01")
	return t, nil
}

// DeriveFlow maps the amount sign to a flow direction.
func DeriveFlow(t model.Transaction) (model.Flow, error) {
	switch t.Amount.Sign() {
	case 1:
		return model.FlowCredit, nil
	case -1:
		return model.FlowDebit, nil
	default:
		return "", &AmbiguousFlowError{TransactionID: t.TransactionID}
	}
}
