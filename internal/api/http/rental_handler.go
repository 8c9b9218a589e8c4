package http

import (
	"net/http"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/service"
)

type RentalHandler struct {
	rentalSvc  service.RentalService
	invoiceSvc service.InvoiceService
	authSvc    service.AuthService
}

func NewRentalHandler(rentalSvc service.RentalService, invoiceSvc service.InvoiceService, authSvc service.AuthService) *RentalHandler {
	return &RentalHandler{rentalSvc: rentalSvc, invoiceSvc: invoiceSvc, authSvc: authSvc}
}

func (h *RentalHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req service.CheckoutRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	req.StaffID = claimsFrom(r.Context()).UserID

	rental, err := h.rentalSvc.Checkout(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, rental)
}

type checkinResponse struct {
	Rental  *domain.Rental  `json:"rental"`
	Invoice *domain.Invoice `json:"invoice"`
}

func (h *RentalHandler) Checkin(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req service.CheckinRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	req.RentalID = id
	req.StaffID = claimsFrom(r.Context()).UserID

	rental, invoice, err := h.rentalSvc.Checkin(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, checkinResponse{Rental: rental, Invoice: invoice})
}

func (h *RentalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	rental, err := h.rentalSvc.GetRental(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, rental)
}

func (h *RentalHandler) List(w http.ResponseWriter, r *http.Request) {
	status := domain.RentalStatus(r.URL.Query().Get("status"))
	rentals, err := h.rentalSvc.ListRentals(r.Context(), status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, rentals)
}

func (h *RentalHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	rentals, err := h.rentalSvc.ListRentals(r.Context(), domain.RentalStatusActive)
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, rentals)
}

func (h *RentalHandler) ListByCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	rentals, err := h.rentalSvc.ListCustomerRentals(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, rentals)
}

func (h *RentalHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	_, customer, err := h.authSvc.GetProfile(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	if customer == nil {
		writeError(w, domain.NewValidationError("only customer accounts have rentals"))
		return
	}
	rentals, err := h.rentalSvc.ListCustomerRentals(r.Context(), customer.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, rentals)
}

func (h *RentalHandler) Invoice(w http.ResponseWriter, r *http.Request) {
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
