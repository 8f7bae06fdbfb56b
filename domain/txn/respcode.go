package txn

// responseMessages maps the gateway's 2-character rejection codes to
// explanatory text. The table is fixed for the life of the process; lookup
// is exact and case-sensitive. A code outside the table is itself an error
// condition, handled in DecodeRedirect.
var responseMessages = map[string]string{
	"IA": "invalid amount format",
	"IC": "currency code is invalid or not enabled for this account",
	"ID": "duplicate transaction id: a transaction with this id was already submitted",
	"IK": "invalid gateway key for the supplied user id",
	"IM": "message authentication code mismatch",
	"IP": "invalid request parameter",
	"IQ": "request contained no transaction details",
	"IT": "invalid transaction type",
	"IU": "invalid or unknown user id",
	"NF": "user id not found or account disabled",
	"NL": "amount is below the minimum the account allows",
	"NM": "merchant reference was rejected by the gateway",
	"NP": "no hosted payment page could be allocated, try again later",
	"NT": "result token has expired or was already processed",
	"QD": "gateway is temporarily unable to process requests",
	"U5": "account is not enabled for hosted payment pages",
	"U9": "request timed out before the gateway could respond",
	"UK": "unsupported character encoding in request",
	"UU": "fail and success urls must be absolute urls",
}

// ResponseMessage resolves a gateway response code to its explanatory text.
func ResponseMessage(code string) (string, bool) {
	msg, ok := responseMessages[code]
	return msg, ok
}
