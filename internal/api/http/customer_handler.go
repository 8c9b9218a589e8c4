package http

import (
	"net/http"

	"carrental-backend/internal/service"
)

type CustomerHandler struct {
	customerSvc service.CustomerService
}

func NewCustomerHandler(customerSvc service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerSvc: customerSvc}
}

func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	customers, err := h.customerSvc.ListCustomers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, customers)
}

func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	customer, err := h.customerSvc.GetCustomer(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, customer)
}

func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	customer, err := h.customerSvc.GetCustomer(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := decodeBody(r, customer); err != nil {
		writeError(w, err)
		return
	}
	customer.ID = id

	if err := h.customerSvc.UpdateCustomer(r.Context(), customer); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, customer)
}

type activeRequest struct {
	Active bool `json:"active"`
}

func (h *CustomerHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req activeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := h.customerSvc.SetCustomerActive(r.Context(), id, req.Active); err != nil {
		writeError(w, err)
		return
	}
	if req.Active {
		writeMessage(w, http.StatusOK, "customer reactivated")
		return
	}
	writeMessage(w, http.StatusOK, "customer deactivated")
}
