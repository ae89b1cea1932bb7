package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"calouros-backend/services/ingest"
)

func registerRoutes(mux *http.ServeMux, service *ingest.Service) {
	mux.HandleFunc("POST /api/parse", func(w http.ResponseWriter, r *http.Request) {
		var req ingest.ParseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		result, err := service.Parse(r.Context(), req)
		if err != nil {
			writeError(w, parseStatus(err), err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	})

	mux.HandleFunc("POST /api/confirm/{id}", func(w http.ResponseWriter, r *http.Request) {
		result, err := service.Confirm(r.Context(), r.PathValue("id"))
		if err != nil {
			writeError(w, batchStatus(err), err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	})

	mux.HandleFunc("POST /api/cancel/{id}", func(w http.ResponseWriter, r *http.Request) {
		if err := service.Cancel(r.Context(), r.PathValue("id")); err != nil {
			writeError(w, batchStatus(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"batch_id": r.PathValue("id"), "status": "cancelled"})
	})

	mux.HandleFunc("GET /api/status/{id}", func(w http.ResponseWriter, r *http.Request) {
		result, err := service.Status(r.Context(), r.PathValue("id"))
		if err != nil {
			writeError(w, batchStatus(err), err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	})

	mux.HandleFunc("GET /api/cities/{institution}", func(w http.ResponseWriter, r *http.Request) {
		cities, err := service.Store().Cities(r.Context(), r.PathValue("institution"))
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, cities)
	})

	mux.HandleFunc("GET /api/records/{institution}/{city}", func(w http.ResponseWriter, r *http.Request) {
		records, err := service.Store().CityRecords(r.Context(), r.PathValue("institution"), r.PathValue("city"))
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, records)
	})

	mux.HandleFunc("GET /api/calls/{institution}/{call}", func(w http.ResponseWriter, r *http.Request) {
		call, err := strconv.Atoi(r.PathValue("call"))
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		records, err := service.Store().CallDump(r.Context(), r.PathValue("institution"), call)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, records)
	})
}

func parseStatus(err error) int {
	if errors.Is(err, ingest.ErrNoRecords) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadGateway
}

func batchStatus(err error) int {
	switch {
	case errors.Is(err, ingest.ErrBatchNotFound):
		return http.StatusNotFound
	case errors.Is(err, ingest.ErrBatchFinalized):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
