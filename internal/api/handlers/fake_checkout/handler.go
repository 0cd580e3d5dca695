package fake_checkout

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CleaningBooking/internal/api/handlers"
)

const msgSessionNotFound = "Payment session not found"

var page = template.Must(template.New("checkout").Parse(`<!doctype html>
<html><head><title>Test checkout</title></head>
<body>
<h1>Test checkout</h1>
<p>Session {{.ID}}: {{.Amount}} {{.Currency}} ({{.Status}})</p>
<p><a href="?action=pay">Pay</a> | <a href="?action=cancel">Cancel</a></p>
</body></html>`))

type Handler struct {
	provider FakeProvider
	logger   Logger
}

func NewHandler(provider FakeProvider, logger Logger) *Handler {
	return &Handler{
		provider: provider,
		logger:   logger,
	}
}

// Handle GET /api/checkout/fake/{sessionId}
// Query params: action=pay|cancel; без action отдаёт страницу с выбором
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var (
		target string
		err    error
	)

	switch r.URL.Query().Get("action") {
	case "pay":
		target, err = h.provider.Complete(sessionID)
	case "cancel":
		target, err = h.provider.Cancel(sessionID)
	default:
		h.renderPage(w, r, sessionID)
		return
	}

	if err != nil {
		h.logger.Warn("GET /checkout/fake/{id} - session_id=%s: %v", sessionID, err)
		handlers.RespondNotFound(w, msgSessionNotFound)
		return
	}

	h.logger.Info("GET /checkout/fake/{id} - session_id=%s resolved, redirect to %s", sessionID, target)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *Handler) renderPage(w http.ResponseWriter, r *http.Request, sessionID string) {
	status, err := h.provider.GetCheckoutStatus(r.Context(), sessionID)
	if err != nil {
		handlers.RespondNotFound(w, msgSessionNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = page.Execute(w, struct {
		ID       string
		Amount   string
		Currency string
		Status   string
	}{
		ID:       status.SessionID,
		Amount:   fmt.Sprintf("%.2f", float64(status.AmountTotal)/100),
		Currency: status.Currency,
		Status:   string(status.Status),
	})
}
