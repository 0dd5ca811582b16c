package enrich

import (
	"strings"

	"github.com/bankfeed-dev/bankfeed/internal/model"
)

// Category labels assigned by the default rule set.
const (
	CategorySalary              = "salary"
	CategoryInterest            = "interest"
	CategoryOwnAccountTransfer  = "own account transfer"
	CategoryFasterPaymentsIn    = "faster_payments_receipt"
	CategoryUtilities           = "utilities"
	CategoryChildcare           = "childcare"
	CategoryHomeServices        = "home services"
	CategoryGroceries           = "groceries"
	CategoryEatingOut           = "eating out"
	CategoryHousing             = "housing"
	CategoryDebt                = "debt"
	CategoryTransport           = "transport"
	CategoryTravel              = "travel"
	CategoryShopping            = "shopping"
	CategoryHealthcare          = "healthcare"
	CategoryPetcare             = "petcare"
	CategorySavings             = "savings"
	CategoryEntertainment       = "entertainment"
)

// Keyword tables are matched as lowercase substrings against the cleaned
// description, except where a rule states otherwise.

var utilityProviders = []string{
	"scottishpower",
	"ee limited",
	"seethelight",
	"thames water",
	"apple.com/bill",
	"chatgpt subscription",
	"tv licence",
}

var homeServiceProviders = []string{
	"mr dax baker",
	"townsends cleani",
	"cerisa sansum",
}

var eatingOutProviders = []string{
	"mcdonalds",
	"kfc",
	"burger king",
	"bk",
	"five guys",
	"zpos* swindon",
	"dominos",
	"costa",
	"subway",
	"costa coffee",
	"coffee",
	"pizza hut",
	"blundson arms",
	"harvester",
	"greek olive",
	"greggs",
	"starbucks",
	"just eat",
	"uber eats",
	"sims chippy",
	"goddard arms",
	"olive tree",
	"nandos",
	"itsu",
	"benugo",
	"pret a manger",
	"gulshan brasserie",
	"sq *balulas",
	"pizza",
	"pizzaexpress",
	"swindon rendezvous",
	"frosts garden",
	"cornish bakehouse bath gb",
	"project coffee",
	"greek euros ltd",
	"fratellos swindon",
	"sweet little thing",
	"hall and woodhouse",
	"*eat",
	"mollies",
}

var groceryProviders = []string{
	"co-operative",
	"co operative food",
	"sainsburys",
	"sainsbury's",
	"s pubs",
	"marks & spencer",
	"marks&spencer",
	"tesco stores",
	"tesco subscription",
	"icelandfood",
	"iceland foods",
	"aldi stores",
	"lidl",
	"aldi",
	"gousto",
	"asda stores",
	"asda",
}

var housingProviders = []string{
	"virgin money",
	"swindon bc central",
}

var debtProviders = []string{
	"slc receipts",
	"creation.co.uk",
	"student loans co",
}

var transportProviders = []string{
	"hcp capital uk",
	"fish brothers kia",
	"applegreen swindon",
	"waves at",
	"bucksrailcentre",
	"trainline",
	"hks saxon bletchley",
	"tfl london",
	"tfl travel",
	"holmrook  s.stn",
	"parking",
	"go south coast",
	"apcoa parking",
	"thamesdown tyres",
	"esso",
	"first york",
	"garage",
	"shell",
	"ref mmv310288591",
}

var travelProviders = []string{
	"paris 2024",
	"doubletree",
	"holiday inn",
	"gwr swindon",
	"big bus tours",
	"hm passport office",
	"ravenglass & eskdale r",
	"scottish seabird centr",
	"airbnb",
	"roves farm swindon gb",
	"roman baths",
	"seton sand",
	"barnestravel",
	"booking.com",
	"kinggeorge-eskdale.com",
	"b h inn",
	"jubilee garage",
	"king george iv inn holmrook",
}

var entertainmentProviders = []string{
	"microsoft*xbox",
	"microsoft*subscription",
	"voucher express",
	"blizzard entertainment",
	"cotswold wildlife park",
	"theatre by the lake",
	"steamgames",
	"gymcastic",
	"stretches & strokes",
	"unite the union",
	"steam purchase",
	"the spectator",
	"toddler town",
	"lw theatres group",
	"microsoft*ultim msbill",
	"rookery farm",
	"party warehouse",
	"games lore",
	"event attractions",
	"firestorm cards",
	"uk games expo",
	"jagex.com",
	"sp computers",
}

var shoppingProviders = []string{
	"amazon",
	"amznmktplace",
	"faceface",
	"under armour",
	"clarks outlet",
	"fatface",
	"poundland",
	"frosts",
	"photobox",
	"the entertainer",
	"next retail",
	"hobbycraft",
	"babysensory",
	"amazon.co.uk",
	"claybearofficial",
	"argos",
	"dobbies",
	"sp close parent",
	"nappy den",
	"dunelm",
	"littlelamb nappie",
	"ikea",
	"paypal",
	"vinted",
	"adidas",
	"sumup",
	"next online",
	"the works",
	"etsy.com",
	"homesense",
	"mixtiles",
	"smyths toys",
	"snappy snaps",
	"bookshop",
	"wh smith",
	"wickes",
	"post office",
}

var petcareProviders = []string{
	"butternut box",
	"butternut",
	"lilys kitchen limited",
	"pets at home",
	"ifl pet insurance",
}

var healthcareProviders = []string{
	"smiles centre swindon",
	"moveology",
	"david lloyd leisur",
	"vitabiotics",
	"jessicas hair",
	"boots",
	"pharmacy",
	"smilescentre",
	"david lloyd",
	"great western hospital swindon",
	"great western h",
}

var savingsProviders = []string{
	"winterflood",
}

// Counterparties whose incoming payments are transfers from the owner's own
// investment accounts rather than income.
var (
	investmentFasterPayments = []string{"vanguard asset management"}
	investmentBankCredits    = []string{"solium capital"}
)

// RulesConfig carries the account-holder specifics the default rules need.
type RulesConfig struct {
	// Employers matched as substrings of the counterparty for salary
	// detection.
	Employers []string
	// OwnerFullName as it appears in transfer descriptions, lowercased
	// ("mr matthew david stewart"). Used to spot own-account transfers.
	OwnerFullName string
	// ChildcareReference is the payment reference of the childcare
	// provider. Empty disables the childcare rule.
	ChildcareReference string
}

// DefaultRules returns the full categorization chain in its contractual
// order. First match wins; reordering changes results.
func DefaultRules(cfg RulesConfig) []Rule {
	return []Rule{
		{Name: "salary", Apply: ruleSalary(cfg.Employers)},
		{Name: "interest", Apply: ruleInterest},
		{Name: "own-account-transfer", Apply: ruleOwnAccountTransfer(cfg.OwnerFullName)},
		{Name: "utilities", Apply: counterpartyRule(CategoryUtilities, utilityProviders)},
		{Name: "childcare", Apply: ruleChildcare(cfg.ChildcareReference)},
		{Name: "home-services", Apply: descriptionRule(CategoryHomeServices, homeServiceProviders)},
		{Name: "groceries", Apply: ruleGroceries},
		{Name: "eating-out", Apply: descriptionRule(CategoryEatingOut, eatingOutProviders)},
		{Name: "housing", Apply: descriptionRule(CategoryHousing, housingProviders)},
		{Name: "debt", Apply: descriptionRule(CategoryDebt, debtProviders)},
		{Name: "transport", Apply: ruleTransport},
		{Name: "travel", Apply: descriptionRule(CategoryTravel, travelProviders)},
		{Name: "shopping", Apply: descriptionRule(CategoryShopping, shoppingProviders)},
		{Name: "healthcare", Apply: descriptionRule(CategoryHealthcare, healthcareProviders)},
		{Name: "petcare", Apply: descriptionRule(CategoryPetcare, petcareProviders)},
		{Name: "savings", Apply: descriptionRule(CategorySavings, savingsProviders)},
		{Name: "entertainment", Apply: descriptionRule(CategoryEntertainment, entertainmentProviders)},
	}
}

// descriptionRule matches any provider keyword against the cleaned
// description.
func descriptionRule(category string, providers []string) func(model.Transaction) (string, bool) {
	return func(t model.Transaction) (string, bool) {
		if containsAny(t.Description, providers) {
			return category, true
		}
		return "", false
	}
}

// counterpartyRule matches any provider keyword against the resolved
// counterparty.
func counterpartyRule(category string, providers []string) func(model.Transaction) (string, bool) {
	return func(t model.Transaction) (string, bool) {
		if containsAny(t.Counterparty, providers) {
			return category, true
		}
		return "", false
	}
}

func ruleSalary(employers []string) func(model.Transaction) (string, bool) {
	return func(t model.Transaction) (string, bool) {
		if t.ProprietaryCode == "BANK TRANSFER CREDIT" && containsAny(t.Counterparty, employers) {
			return CategorySalary, true
		}
		return "", false
	}
}

func ruleInterest(t model.Transaction) (string, bool) {
	if strings.Contains(t.Description, "interest paid") ||
		strings.Contains(t.Description, "credit interest") ||
		strings.Contains(t.Description, "cashback") ||
		strings.Contains(t.ProprietaryCode, "CASHBACK") {
		return CategoryInterest, true
	}
	return "", false
}

// ruleOwnAccountTransfer labels movements between the owner's own accounts.
// Incoming faster payments that are not recognisably the owner's fall
// through to a distinct "faster_payments_receipt" label so they stay visible
// for manual review.
func ruleOwnAccountTransfer(ownerFullName string) func(model.Transaction) (string, bool) {
	return func(t model.Transaction) (string, bool) {
		code := strings.ToLower(t.ProprietaryCode)

		ccPayment := strings.Contains(t.Description, "credit card payment")
		transferOut := ownerFullName != "" && strings.Contains(t.Description, "transfer to "+ownerFullName)
		transferIn := ownerFullName != "" && strings.Contains(t.Description, "transfer from "+ownerFullName)
		fasterPayment := strings.Contains(t.Description, "faster payment")
		received := strings.Contains(code, "faster payment received")
		receipt := strings.Contains(code, "faster payment receipt")
		bankCredit := strings.Contains(t.ProprietaryCode, "BANK TRANSFER CREDIT")
		investmentFP := containsAny(t.Counterparty, investmentFasterPayments)
		investmentBC := containsAny(t.Counterparty, investmentBankCredits)

		switch {
		case ccPayment || transferOut || transferIn:
			return CategoryOwnAccountTransfer, true
		case fasterPayment && received:
			return CategoryOwnAccountTransfer, true
		case investmentFP && receipt:
			return CategoryOwnAccountTransfer, true
		case investmentBC && bankCredit:
			return CategoryOwnAccountTransfer, true
		case receipt:
			return CategoryFasterPaymentsIn, true
		}
		return "", false
	}
}

func ruleChildcare(reference string) func(model.Transaction) (string, bool) {
	return func(t model.Transaction) (string, bool) {
		if reference == "" {
			return "", false
		}
		if strings.Contains(t.Description, "gov") && strings.Contains(t.Description, reference) {
			return CategoryChildcare, true
		}
		return "", false
	}
}

// ruleGroceries excludes fuel purchases: supermarket forecourts match
// grocery keywords but carry fuel/petrol wording.
func ruleGroceries(t model.Transaction) (string, bool) {
	if !containsAny(t.Description, groceryProviders) {
		return "", false
	}
	if strings.Contains(t.Description, "fuel") || strings.Contains(t.Description, "petr") {
		return "", false
	}
	return CategoryGroceries, true
}

// ruleTransport is additive: a provider keyword match OR fuel/petrol wording.
func ruleTransport(t model.Transaction) (string, bool) {
	if containsAny(t.Description, transportProviders) ||
		strings.Contains(t.Description, "fuel") ||
		strings.Contains(t.Description, "petrol") {
		return CategoryTransport, true
	}
	return "", false
}
