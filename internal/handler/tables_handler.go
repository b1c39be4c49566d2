package handlers

import (
	"net/http"
)

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	status, err := h.TablesService.Health(r.Context())
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	writeSuccess(w, map[string]interface{}{
		"status":       status.Status,
		"count_tables": status.CountTables,
	}, http.StatusOK)
}

func HomeHandler(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/global", http.StatusFound)
}
