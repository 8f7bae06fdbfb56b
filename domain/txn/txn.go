// Package txn defines the gateway's transaction messages: the typed request
// and result value types, the supported transaction types and currencies,
// message schemas, and decoding of the gateway's replies.
package txn

import (
	"sort"
	"strconv"
)

// Type is a supported transaction type.
type Type string

const (
	// Auth places a hold on the card without capturing funds.
	Auth Type = "Auth"
	// Purchase authorises and captures in one step.
	Purchase Type = "Purchase"
)

// ValidType reports whether t is a supported transaction type.
func ValidType(t Type) bool {
	return t == Auth || t == Purchase
}

// Credentials identify the merchant account at the gateway.
type Credentials struct {
	UserID string
	Key    string
}

// CreateRequest carries the caller-supplied fields of a transaction-creation
// message. It is a plain value type; nothing is validated until the message
// is built.
type CreateRequest struct {
	TxnType           Type
	Amount            string // decimal amount, e.g. "19.95"
	Currency          string
	MerchantReference string
	EmailAddress      string
	TxnData1          string
	TxnData2          string
	TxnData3          string
	TxnID             string // left empty, the service generates one
	BillingID         string // merchant-chosen token for card-on-file
	EnableAddBillCard bool   // ask the gateway to store the card
	URLFail           string
	URLSuccess        string
	Opt               string
}

// Result is the decoded outcome of a completed (or abandoned) transaction.
// Every field except Valid and Success is optional: a field the gateway did
// not return stays at its zero value. A Result is never mutated after decode.
type Result struct {
	// Valid reports whether the gateway accepted the decode request itself.
	Valid bool
	// Success reports whether the transaction was approved.
	Success bool

	TxnType            string
	CurrencyInput      string
	MerchantReference  string
	TxnData1           string
	TxnData2           string
	TxnData3           string
	AuthCode           string
	CardName           string
	CardHolderName     string
	CardNumber         string
	CardNumber2        string
	DateExpiry         string
	Cvc2ResultCode     string
	TxnID              string
	TxnRef             string
	EmailAddress       string
	BillingID          string
	BillingToken       string
	AmountSettlement   string
	CurrencySettlement string
	ClientInfo         string
	ResponseText       string
	TxnMac             string
}

// currencies is the fixed set of currency codes the gateway settles in.
var currencies = map[string]struct{}{
	"AUD": {}, "CAD": {}, "CHF": {}, "DKK": {}, "EUR": {}, "FJD": {},
	"FRF": {}, "GBP": {}, "HKD": {}, "JPY": {}, "KWD": {}, "MYR": {},
	"NZD": {}, "PGK": {}, "SBD": {}, "SEK": {}, "SGD": {}, "THB": {},
	"TOP": {}, "USD": {}, "VUV": {}, "WST": {}, "ZAR": {},
}

// SupportedCurrency reports whether code is in the gateway's currency set.
// Lookup is exact and case-sensitive.
func SupportedCurrency(code string) bool {
	_, ok := currencies[code]
	return ok
}

// Currencies returns the supported currency codes, sorted.
func Currencies() []string {
	out := make([]string, 0, len(currencies))
	for c := range currencies {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// FormatAmount renders a decimal amount string to exactly two decimal
// places, fixed-point, no thousands separator.
func FormatAmount(amount string) (string, error) {
	f, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return "", err
	}
	return strconv.FormatFloat(f, 'f', 2, 64), nil
}
