// Package app wires the protocol engine to the transport: it owns the
// merchant credentials and sequences build -> post -> decode for both
// gateway flows.
package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/artpar/hostedpay/adapters/metrics"
	"github.com/artpar/hostedpay/domain/message"
	"github.com/artpar/hostedpay/domain/tagstream"
	"github.com/artpar/hostedpay/domain/txn"
	"github.com/artpar/hostedpay/ports"
	"github.com/rs/zerolog"
)

// ErrNoResult is returned by DecodeResult when there is no token to
// process. This is a legitimate no-op state (the shopper reached the
// return URL without completing payment), not a failure; callers must be
// able to tell it apart from a protocol error, so it is a sentinel.
var ErrNoResult = errors.New("no result to process")

// Flow labels for metrics.
const (
	flowCreate = "create"
	flowDecode = "decode"
)

// PaymentService drives the two protocol flows against the gateway.
// It is stateless across invocations and safe for concurrent use.
type PaymentService struct {
	transport ports.Transport
	ids       ports.IDGenerator
	creds     txn.Credentials
	endpoint  string
	logger    zerolog.Logger
	metrics   *metrics.Collector
}

// PaymentDeps contains dependencies for the payment service.
type PaymentDeps struct {
	Transport   ports.Transport
	IDs         ports.IDGenerator
	Credentials txn.Credentials
	Endpoint    string
	Logger      zerolog.Logger
	Metrics     *metrics.Collector // optional
}

// NewPaymentService creates a payment service.
func NewPaymentService(deps PaymentDeps) *PaymentService {
	return &PaymentService{
		transport: deps.Transport,
		ids:       deps.IDs,
		creds:     deps.Credentials,
		endpoint:  deps.Endpoint,
		logger:    deps.Logger,
		metrics:   deps.Metrics,
	}
}

// CreateTransaction registers a pending transaction with the gateway and
// returns the redirect URL of its hosted payment page.
//
// A missing TxnID is filled from the id generator before validation.
// Validation failures are returned without any gateway call.
func (s *PaymentService) CreateTransaction(ctx context.Context, req txn.CreateRequest) (string, error) {
	if req.TxnID == "" && s.ids != nil {
		req.TxnID = s.ids.New()
	}

	doc, err := txn.BuildGenerate(s.creds, req)
	if err != nil {
		var ve *message.ValidationError
		if errors.As(err, &ve) && s.metrics != nil {
			s.metrics.ValidationFailures.WithLabelValues(ve.Field).Inc()
		}
		s.logger.Warn().Err(err).Str("txn_id", req.TxnID).Msg("creation request failed validation")
		return "", err
	}

	body, err := s.post(ctx, flowCreate, doc)
	if err != nil {
		return "", err
	}

	reader, err := tagstream.NewReader(body)
	if err != nil {
		s.observe(flowCreate, "parse_error")
		s.logger.Error().Err(err).Msg("gateway reply is not well-formed")
		return "", err
	}

	uri, err := txn.DecodeRedirect(reader)
	if err != nil {
		s.observe(flowCreate, "protocol_error")
		var pe *txn.ProtocolError
		if errors.As(err, &pe) && pe.Code != "" && s.metrics != nil {
			s.metrics.GatewayRejections.WithLabelValues(pe.Code).Inc()
		}
		s.logger.Warn().Err(err).Str("txn_id", req.TxnID).Msg("gateway rejected creation request")
		return "", err
	}

	s.observe(flowCreate, "ok")
	s.logger.Info().
		Str("txn_id", req.TxnID).
		Str("txn_type", string(req.TxnType)).
		Str("currency", req.Currency).
		Msg("hosted payment page issued")
	return uri, nil
}

// DecodeResult exchanges the opaque result token from the merchant's return
// URL for the structured transaction outcome. An empty or whitespace-only
// token short-circuits to ErrNoResult without touching the transport.
func (s *PaymentService) DecodeResult(ctx context.Context, token string) (*txn.Result, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrNoResult
	}

	doc, err := txn.BuildProcess(s.creds, token)
	if err != nil {
		return nil, err
	}

	body, err := s.post(ctx, flowDecode, doc)
	if err != nil {
		return nil, err
	}

	reader, err := tagstream.NewReader(body)
	if err != nil {
		s.observe(flowDecode, "parse_error")
		s.logger.Error().Err(err).Msg("gateway reply is not well-formed")
		return nil, err
	}

	res := txn.DecodeResult(reader)
	s.observe(flowDecode, "ok")
	s.logger.Info().
		Bool("valid", res.Valid).
		Bool("success", res.Success).
		Str("txn_id", res.TxnID).
		Str("response_text", res.ResponseText).
		Msg("transaction result decoded")
	return res, nil
}

// post performs one gateway round trip with timing and outcome metrics.
// Transport errors propagate unchanged; the core does not retry.
func (s *PaymentService) post(ctx context.Context, flow, doc string) (string, error) {
	start := time.Now()
	body, err := s.transport.Post(ctx, s.endpoint, doc)
	if s.metrics != nil {
		s.metrics.GatewayDuration.WithLabelValues(flow).Observe(time.Since(start).Seconds())
	}
	if err != nil {
		s.observe(flow, "transport_error")
		return "", err
	}
	return body, nil
}

func (s *PaymentService) observe(flow, outcome string) {
	if s.metrics != nil {
		s.metrics.GatewayRequestsTotal.WithLabelValues(flow, outcome).Inc()
	}
}
