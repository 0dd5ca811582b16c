package enrich

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/bankfeed-dev/bankfeed/internal/model"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"description: CARD PAYMENT", " card payment"},
		{"Description: CARD PAYMENT", "description: card payment"},
		{"ref.ABC123", "ref abc123"},
		{"MARKS &amp; SPENCER", "marks   spencer"},
		{"TESCO STORES 2045", "tesco stores 2045"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanText(tt.in), tt.in)
	}
}

func TestClean_FillsMissingTextFields(t *testing.T) {
	out := Clean(model.Transaction{})
	assert.Equal(t, "unknown", out.Description)
	assert.Equal(t, "unknown", out.ProprietaryCode)
	assert.Equal(t, "unknown", out.CreditorName)
	assert.Equal(t, "unknown", out.DebtorName)
}

func TestClean_RoundsAmount(t *testing.T) {
	out := Clean(model.Transaction{Amount: decimal.RequireFromString("-6.999")})
	assert.Equal(t, "-7.00", out.Amount.StringFixed(2))
}

func TestClean_MerchantCategoryCodeSentinel(t *testing.T) {
	out := Clean(model.Transaction{})
	assert.Equal(t, model.MCCNone, out.MerchantCategoryCode)

	out = Clean(model.Transaction{MerchantCategoryCode: 5411})
	assert.Equal(t, 5411, out.MerchantCategoryCode)
}

func TestClean_DoesNotMutateInput(t *testing.T) {
	in := model.Transaction{Description: "CARD PAYMENT"}
	Clean(in)
	assert.Equal(t, "CARD PAYMENT", in.Description)
}

func TestCleanBatch(t *testing.T) {
	batch := []model.Transaction{
		{Description: "COSTA COFFEE"},
		{},
	}
	out := CleanBatch(batch)
	assert.Equal(t, "costa coffee", out[0].Description)
	assert.Equal(t, "unknown", out[1].Description)
}
