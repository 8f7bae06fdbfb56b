package txn

import (
	"fmt"

	"github.com/artpar/hostedpay/domain/tagstream"
)

// ProtocolError reports that the gateway rejected a request or returned an
// outcome the client does not recognise. It is surfaced to the caller and
// never retried.
type ProtocolError struct {
	// Code is the gateway response code, when one was returned.
	Code string
	// Message is the human-readable classification.
	Message string
}

func (e *ProtocolError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("gateway: %s (code %s)", e.Message, e.Code)
	}
	return "gateway: " + e.Message
}

// DecodeRedirect extracts the hosted-payment-page URL from the gateway's
// reply to a transaction-creation message.
//
// The reply's top-level Request element carries a valid attribute: when it
// is not truthy the creation attempt itself was rejected. Otherwise the URI
// child holds the redirect URL; in its absence the Reco child carries a
// response code resolved through the code table.
func DecodeRedirect(r *tagstream.Reader) (string, error) {
	valid, ok := r.GetAttribute("Request", "valid")
	if !ok || valid != "1" {
		return "", &ProtocolError{Message: "request invalid"}
	}

	if uri, ok := r.GetValue("Request/URI"); ok {
		return uri, nil
	}

	code, ok := r.GetValue("Request/Reco")
	if !ok {
		return "", &ProtocolError{Message: "reply carried neither a redirect URI nor a response code"}
	}
	if msg, ok := ResponseMessage(code); ok {
		return "", &ProtocolError{Code: code, Message: msg}
	}
	return "", &ProtocolError{Code: code, Message: "unknown response code: " + code}
}

// DecodeResult populates a Result from the gateway's reply to a
// result-decoding message. Every field is an independent path lookup; a
// missing field simply stays at its zero value. A false valid attribute is
// data on the result, not an error.
func DecodeResult(r *tagstream.Reader) *Result {
	res := &Result{}

	if v, ok := r.GetAttribute("Response", "valid"); ok {
		res.Valid = v == "1"
	}
	if v, ok := r.GetValue("Response/Success"); ok {
		res.Success = v == "1"
	}

	assign := func(dst *string, path string) {
		if v, ok := r.GetValue(path); ok {
			*dst = v
		}
	}
	assign(&res.TxnType, "Response/TxnType")
	assign(&res.CurrencyInput, "Response/CurrencyInput")
	assign(&res.MerchantReference, "Response/MerchantReference")
	assign(&res.TxnData1, "Response/TxnData1")
	assign(&res.TxnData2, "Response/TxnData2")
	assign(&res.TxnData3, "Response/TxnData3")
	assign(&res.AuthCode, "Response/AuthCode")
	assign(&res.CardName, "Response/CardName")
	assign(&res.CardHolderName, "Response/CardHolderName")
	assign(&res.CardNumber, "Response/CardNumber")
	assign(&res.CardNumber2, "Response/CardNumber2")
	assign(&res.DateExpiry, "Response/DateExpiry")
	assign(&res.Cvc2ResultCode, "Response/Cvc2ResultCode")
	assign(&res.TxnID, "Response/TxnId")
	assign(&res.TxnRef, "Response/TxnRef")
	assign(&res.EmailAddress, "Response/EmailAddress")
	assign(&res.BillingID, "Response/BillingId")
	assign(&res.BillingToken, "Response/BillingToken")
	assign(&res.AmountSettlement, "Response/AmountSettlement")
	assign(&res.CurrencySettlement, "Response/CurrencySettlement")
	assign(&res.ClientInfo, "Response/ClientInfo")
	assign(&res.ResponseText, "Response/ResponseText")
	assign(&res.TxnMac, "Response/TxnMac")

	return res
}
