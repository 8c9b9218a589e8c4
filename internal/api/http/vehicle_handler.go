package http

import (
	"net/http"
	"strconv"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/service"
)

type VehicleHandler struct {
	vehicleSvc     service.VehicleService
	maintenanceSvc service.MaintenanceService
}

func NewVehicleHandler(vehicleSvc service.VehicleService, maintenanceSvc service.MaintenanceService) *VehicleHandler {
	return &VehicleHandler{vehicleSvc: vehicleSvc, maintenanceSvc: maintenanceSvc}
}

func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var vehicle domain.Vehicle
	if err := decodeBody(r, &vehicle); err != nil {
		writeError(w, err)
		return
	}
	if err := h.vehicleSvc.AddVehicle(r.Context(), &vehicle); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, vehicle)
}

func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	vehicle, err := h.vehicleSvc.GetVehicle(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, vehicle)
}

func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.VehicleFilter{
		Category: q.Get("category"),
		Status:   domain.VehicleStatus(q.Get("status")),
	}
	if raw := q.Get("min_rate_cents"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			writeError(w, domain.NewValidationError("invalid min_rate_cents %q", raw))
			return
		}
		filter.MinRateCents = int32(v)
	}
	if raw := q.Get("max_rate_cents"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			writeError(w, domain.NewValidationError("invalid max_rate_cents %q", raw))
			return
		}
		filter.MaxRateCents = int32(v)
	}

	vehicles, err := h.vehicleSvc.ListVehicles(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, vehicles)
}

func (h *VehicleHandler) SearchAvailable(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	vehicles, err := h.vehicleSvc.SearchAvailable(r.Context(), q.Get("start_date"), q.Get("end_date"), q.Get("category"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, vehicles)
}

type availabilityResponse struct {
	VehicleID int32  `json:"vehicle_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Available bool   `json:"available"`
}

func (h *VehicleHandler) Availability(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	q := r.URL.Query()
	start, end := q.Get("start_date"), q.Get("end_date")
	available, err := h.vehicleSvc.CheckAvailability(r.Context(), id, start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, availabilityResponse{
		VehicleID: id, StartDate: start, EndDate: end, Available: available,
	})
}

func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var patch domain.VehiclePatch
	if err := decodeBody(r, &patch); err != nil {
		writeError(w, err)
		return
	}
	vehicle, err := h.vehicleSvc.UpdateVehicle(r.Context(), id, patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, vehicle)
}

func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.vehicleSvc.DeleteVehicle(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "vehicle deleted")
}

func (h *VehicleHandler) MaintenanceHistory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	records, err := h.maintenanceSvc.ListVehicleMaintenance(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, records)
}
