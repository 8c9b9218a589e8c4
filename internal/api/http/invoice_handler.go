package http

import (
	"net/http"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/service"
)

type InvoiceHandler struct {
	invoiceSvc service.InvoiceService
}

func NewInvoiceHandler(invoiceSvc service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceSvc: invoiceSvc}
}

func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	invoice, err := h.invoiceSvc.GetInvoice(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, invoice)
}

func (h *InvoiceHandler) GetByRental(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	invoice, err := h.invoiceSvc.GetInvoiceByRental(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, invoice)
}

func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	paymentStatus := domain.PaymentStatus(r.URL.Query().Get("payment_status"))
	invoices, err := h.invoiceSvc.ListInvoices(r.Context(), paymentStatus)
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, invoices)
}

func (h *InvoiceHandler) UpdateFees(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var patch domain.InvoicePatch
	if err := decodeBody(r, &patch); err != nil {
		writeError(w, err)
		return
	}
	invoice, err := h.invoiceSvc.UpdateInvoiceFees(r.Context(), id, patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, invoice)
}

type paymentRequest struct {
	Status domain.PaymentStatus `json:"status"`
	Method string               `json:"method"`
}

func (h *InvoiceHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req paymentRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	invoice, err := h.invoiceSvc.RecordPayment(r.Context(), id, req.Status, req.Method)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, invoice)
}
