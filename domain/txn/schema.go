package txn

import (
	"strconv"

	"github.com/artpar/hostedpay/domain/message"
)

// Logical field names shared by the schemas and the service layer.
const (
	FieldUserID            = "UserId"
	FieldKey               = "Key"
	FieldTxnType           = "TxnType"
	FieldAmount            = "Amount"
	FieldCurrency          = "Currency"
	FieldMerchantReference = "MerchantReference"
	FieldEmailAddress      = "EmailAddress"
	FieldTxnData1          = "TxnData1"
	FieldTxnData2          = "TxnData2"
	FieldTxnData3          = "TxnData3"
	FieldTxnID             = "TxnId"
	FieldBillingID         = "BillingId"
	FieldEnableAddBillCard = "EnableAddBillCard"
	FieldURLFail           = "UrlFail"
	FieldURLSuccess        = "UrlSuccess"
	FieldOpt               = "Opt"
	FieldResponse          = "Response"
)

// GenerateSchema describes the transaction-creation message.
// Field order is the wire order; the Amount and Currency fields travel
// under different wire names than their logical ones.
var GenerateSchema = message.Schema{
	Root: "GenerateRequest",
	Fields: []message.FieldSpec{
		{Name: FieldUserID, Wire: "UserId", Max: 32, Required: true},
		{Name: FieldKey, Wire: "Key", Max: 64, Required: true},
		{Name: FieldTxnType, Wire: "TxnType", Max: 8, Required: true},
		{Name: FieldAmount, Wire: "AmountInput", Max: 13, Required: true},
		{Name: FieldCurrency, Wire: "CurrencyInput", Max: 4, Required: true},
		{Name: FieldMerchantReference, Wire: "MerchantReference", Max: 64},
		{Name: FieldEmailAddress, Wire: "EmailAddress", Max: 255},
		{Name: FieldTxnData1, Wire: "TxnData1", Max: 255},
		{Name: FieldTxnData2, Wire: "TxnData2", Max: 255},
		{Name: FieldTxnData3, Wire: "TxnData3", Max: 255},
		{Name: FieldTxnID, Wire: "TxnId", Max: 16},
		{Name: FieldBillingID, Wire: "BillingId", Max: 32},
		{Name: FieldEnableAddBillCard, Wire: "EnableAddBillCard", Max: 1},
		{Name: FieldURLFail, Wire: "UrlFail", Max: 255, Required: true},
		{Name: FieldURLSuccess, Wire: "UrlSuccess", Max: 255, Required: true},
		{Name: FieldOpt, Wire: "Opt", Max: 64},
	},
	Checks: []message.Check{
		checkAmountNumeric,
		checkCurrencySupported,
		checkTxnType,
	},
}

// ProcessSchema describes the result-decoding message, which exchanges an
// opaque result token for the transaction outcome.
var ProcessSchema = message.Schema{
	Root: "ProcessResponse",
	Fields: []message.FieldSpec{
		{Name: FieldUserID, Wire: "UserId", Max: 32, Required: true},
		{Name: FieldKey, Wire: "Key", Max: 64, Required: true},
		{Name: FieldResponse, Wire: "Response", Required: true},
	},
}

func checkAmountNumeric(fields map[string]string) error {
	if _, err := strconv.ParseFloat(fields[FieldAmount], 64); err != nil {
		return &message.ValidationError{Field: FieldAmount, Reason: "not numeric"}
	}
	return nil
}

func checkCurrencySupported(fields map[string]string) error {
	if !SupportedCurrency(fields[FieldCurrency]) {
		return &message.ValidationError{Field: FieldCurrency, Reason: "unsupported currency"}
	}
	return nil
}

func checkTxnType(fields map[string]string) error {
	if !ValidType(Type(fields[FieldTxnType])) {
		return &message.ValidationError{Field: FieldTxnType, Reason: "unsupported transaction type"}
	}
	return nil
}

// BuildGenerate validates the creation request against GenerateSchema and
// serializes it. The amount is re-rendered to two decimal places after
// validation so the wire value is always fixed-point.
func BuildGenerate(creds Credentials, req CreateRequest) (string, error) {
	fields := map[string]string{
		FieldUserID:            creds.UserID,
		FieldKey:               creds.Key,
		FieldTxnType:           string(req.TxnType),
		FieldAmount:            req.Amount,
		FieldCurrency:          req.Currency,
		FieldMerchantReference: req.MerchantReference,
		FieldEmailAddress:      req.EmailAddress,
		FieldTxnData1:          req.TxnData1,
		FieldTxnData2:          req.TxnData2,
		FieldTxnData3:          req.TxnData3,
		FieldTxnID:             req.TxnID,
		FieldBillingID:         req.BillingID,
		FieldURLFail:           req.URLFail,
		FieldURLSuccess:        req.URLSuccess,
		FieldOpt:               req.Opt,
	}
	if req.EnableAddBillCard {
		fields[FieldEnableAddBillCard] = "1"
	}

	if err := GenerateSchema.Validate(fields); err != nil {
		return "", err
	}

	formatted, err := FormatAmount(fields[FieldAmount])
	if err != nil {
		// Unreachable after validation; keep the error path honest anyway.
		return "", &message.ValidationError{Field: FieldAmount, Reason: "not numeric"}
	}
	fields[FieldAmount] = formatted

	return GenerateSchema.Serialize(fields), nil
}

// BuildProcess validates and serializes the result-decoding request.
func BuildProcess(creds Credentials, token string) (string, error) {
	fields := map[string]string{
		FieldUserID:   creds.UserID,
		FieldKey:      creds.Key,
		FieldResponse: token,
	}
	if err := ProcessSchema.Validate(fields); err != nil {
		return "", err
	}
	return ProcessSchema.Serialize(fields), nil
}
