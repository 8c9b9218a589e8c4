package http

import (
	"net/http"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/service"
)

type MaintenanceHandler struct {
	maintenanceSvc service.MaintenanceService
}

func NewMaintenanceHandler(maintenanceSvc service.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{maintenanceSvc: maintenanceSvc}
}

func (h *MaintenanceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var record domain.Maintenance
	if err := decodeBody(r, &record); err != nil {
		writeError(w, err)
		return
	}
	if err := h.maintenanceSvc.ScheduleMaintenance(r.Context(), &record); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, record)
}

func (h *MaintenanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	record, err := h.maintenanceSvc.GetMaintenance(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, record)
}

func (h *MaintenanceHandler) List(w http.ResponseWriter, r *http.Request) {
	status := domain.MaintenanceStatus(r.URL.Query().Get("status"))
	records, err := h.maintenanceSvc.ListMaintenance(r.Context(), status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, records)
}

func (h *MaintenanceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var patch domain.MaintenancePatch
	if err := decodeBody(r, &patch); err != nil {
		writeError(w, err)
		return
	}
	record, err := h.maintenanceSvc.UpdateMaintenance(r.Context(), id, patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, record)
}

func (h *MaintenanceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.maintenanceSvc.DeleteMaintenance(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "maintenance record deleted")
}
