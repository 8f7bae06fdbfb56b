// Package web provides the demo merchant endpoints: a payment form, the
// creation redirect, and the return-URL handler that decodes the gateway's
// result token.
package web

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"sync"

	"github.com/artpar/hostedpay/app"
	"github.com/artpar/hostedpay/domain/message"
	"github.com/artpar/hostedpay/domain/txn"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// PaymentService is the slice of app.PaymentService the handlers need.
type PaymentService interface {
	CreateTransaction(ctx context.Context, req txn.CreateRequest) (string, error)
	DecodeResult(ctx context.Context, token string) (*txn.Result, error)
}

// Handler serves the demo merchant pages.
type Handler struct {
	mu      sync.RWMutex
	service PaymentService
	logger  zerolog.Logger
	metrics http.Handler // optional, mounted when non-nil
}

// Deps contains dependencies for the web handler.
type Deps struct {
	Service PaymentService
	Logger  zerolog.Logger
	Metrics http.Handler
}

// New creates the web handler.
func New(deps Deps) *Handler {
	return &Handler{
		service: deps.Service,
		logger:  deps.Logger,
		metrics: deps.Metrics,
	}
}

// SetService swaps the payment service. Used by config hot reload when
// gateway credentials change.
func (h *Handler) SetService(s PaymentService) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.service = s
}

func (h *Handler) getService() PaymentService {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.service
}

// Routes returns the router for the demo merchant site.
func (h *Handler) Routes(metricsPath string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", h.handleForm)
	r.Post("/pay", h.handlePay)
	r.Get("/return", h.handleReturn)
	r.Get("/healthz", h.handleHealth)
	if h.metrics != nil {
		r.Handle(metricsPath, h.metrics)
	}
	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (h *Handler) handleForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, formTemplate, map[string]any{
		"Currencies": txn.Currencies(),
	})
}

func (h *Handler) handlePay(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	base := "http://" + r.Host
	req := txn.CreateRequest{
		TxnType:           txn.Purchase,
		Amount:            r.PostFormValue("amount"),
		Currency:          r.PostFormValue("currency"),
		MerchantReference: r.PostFormValue("reference"),
		EmailAddress:      r.PostFormValue("email"),
		URLFail:           base + "/return",
		URLSuccess:        base + "/return",
	}
	if r.PostFormValue("type") == string(txn.Auth) {
		req.TxnType = txn.Auth
	}

	uri, err := h.getService().CreateTransaction(r.Context(), req)
	if err != nil {
		h.renderError(w, err)
		return
	}
	http.Redirect(w, r, uri, http.StatusSeeOther)
}

func (h *Handler) handleReturn(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("result")

	res, err := h.getService().DecodeResult(r.Context(), token)
	if errors.Is(err, app.ErrNoResult) {
		h.render(w, noResultTemplate, nil)
		return
	}
	if err != nil {
		h.renderError(w, err)
		return
	}
	h.render(w, resultTemplate, res)
}

func (h *Handler) renderError(w http.ResponseWriter, err error) {
	status := http.StatusBadGateway
	var ve *message.ValidationError
	if errors.As(err, &ve) {
		status = http.StatusBadRequest
	}
	w.WriteHeader(status)
	h.render(w, errorTemplate, map[string]any{"Error": err.Error()})
}

func (h *Handler) render(w http.ResponseWriter, t *template.Template, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.Execute(w, data); err != nil {
		h.logger.Error().Err(err).Str("template", t.Name()).Msg("render failed")
	}
}

var formTemplate = template.Must(template.New("form").Parse(`<!doctype html>
<html><head><title>Demo shop</title></head><body>
<h1>Demo shop</h1>
<form method="post" action="/pay">
  <label>Amount <input name="amount" value="19.95"></label>
  <label>Currency <select name="currency">
    {{range .Currencies}}<option{{if eq . "NZD"}} selected{{end}}>{{.}}</option>{{end}}
  </select></label>
  <label>Type <select name="type"><option>Purchase</option><option>Auth</option></select></label>
  <label>Reference <input name="reference" value="order-1001"></label>
  <label>Email <input name="email"></label>
  <button type="submit">Pay now</button>
</form>
</body></html>
`))

var resultTemplate = template.Must(template.New("result").Parse(`<!doctype html>
<html><head><title>Payment result</title></head><body>
{{if .Success}}<h1>Payment approved</h1>{{else}}<h1>Payment declined</h1>{{end}}
<dl>
  <dt>Response</dt><dd>{{.ResponseText}}</dd>
  <dt>Reference</dt><dd>{{.MerchantReference}}</dd>
  <dt>Amount</dt><dd>{{.AmountSettlement}} {{.CurrencySettlement}}</dd>
  <dt>Auth code</dt><dd>{{.AuthCode}}</dd>
  <dt>Card</dt><dd>{{.CardName}} {{.CardNumber}}</dd>
</dl>
<a href="/">Back to shop</a>
</body></html>
`))

var noResultTemplate = template.Must(template.New("noresult").Parse(`<!doctype html>
<html><head><title>Nothing to process</title></head><body>
<h1>Nothing to process</h1>
<p>No payment result was returned. If you cancelled the payment you can try again.</p>
<a href="/">Back to shop</a>
</body></html>
`))

var errorTemplate = template.Must(template.New("error").Parse(`<!doctype html>
<html><head><title>Payment error</title></head><body>
<h1>Payment error</h1>
<p>{{.Error}}</p>
<a href="/">Back to shop</a>
</body></html>
`))
