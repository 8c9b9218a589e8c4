package http

import (
	"net/http"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/service"
)

type BookingHandler struct {
	bookingSvc service.BookingService
	authSvc    service.AuthService
}

func NewBookingHandler(bookingSvc service.BookingService, authSvc service.AuthService) *BookingHandler {
	return &BookingHandler{bookingSvc: bookingSvc, authSvc: authSvc}
}

// currentCustomer resolves the customer profile behind the authenticated
// user. Returns nil for staff and manager accounts.
func (h *BookingHandler) currentCustomer(r *http.Request) (*domain.Customer, error) {
	claims := claimsFrom(r.Context())
	if claims.Role != domain.UserRoleCustomer {
		return nil, nil
	}
	_, customer, err := h.authSvc.GetProfile(r.Context(), claims.UserID)
	return customer, err
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.CreateBookingRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	// Customers always book for themselves; staff may book on behalf of
	// any customer.
	customer, err := h.currentCustomer(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if customer != nil {
		req.CustomerID = customer.ID
	}

	booking, err := h.bookingSvc.CreateBooking(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, booking)
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	booking, err := h.bookingSvc.GetBooking(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	customer, err := h.currentCustomer(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if customer != nil && booking.CustomerID != customer.ID {
		// Hide other customers' bookings rather than confirming they exist.
		writeError(w, domain.NewNotFoundError("booking %d not found", id))
		return
	}
	writeData(w, http.StatusOK, booking)
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	status := domain.BookingStatus(r.URL.Query().Get("status"))
	bookings, err := h.bookingSvc.ListBookings(r.Context(), status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, bookings)
}

func (h *BookingHandler) ListByCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	bookings, err := h.bookingSvc.ListCustomerBookings(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, bookings)
}

func (h *BookingHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	customer, err := h.currentCustomer(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if customer == nil {
		writeError(w, domain.NewValidationError("only customer accounts have bookings"))
		return
	}
	bookings, err := h.bookingSvc.ListCustomerBookings(r.Context(), customer.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, bookings)
}

func (h *BookingHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var patch domain.BookingPatch
	if err := decodeBody(r, &patch); err != nil {
		writeError(w, err)
		return
	}

	if err := h.authorizeBookingAccess(r, id); err != nil {
		writeError(w, err)
		return
	}
	booking, err := h.bookingSvc.UpdateBooking(r.Context(), id, patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, booking)
}

func (h *BookingHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	booking, err := h.bookingSvc.ConfirmBooking(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, booking)
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.authorizeBookingAccess(r, id); err != nil {
		writeError(w, err)
		return
	}
	booking, err := h.bookingSvc.CancelBooking(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, booking)
}

// authorizeBookingAccess verifies a customer account only touches its own
// bookings. Staff and manager accounts pass through.
func (h *BookingHandler) authorizeBookingAccess(r *http.Request, bookingID int32) error {
	customer, err := h.currentCustomer(r)
	if err != nil {
		return err
	}
	if customer == nil {
		return nil
	}
	booking, err := h.bookingSvc.GetBooking(r.Context(), bookingID)
	if err != nil {
		return err
	}
	if booking.CustomerID != customer.ID {
		return domain.NewNotFoundError("booking %d not found", bookingID)
	}
	return nil
}
