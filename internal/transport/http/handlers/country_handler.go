package handlers

import (
	"net/http"

	"github.com/vedran77/circle/internal/service"
)

type CountryHandler struct {
	countryService *service.CountryService
}

func NewCountryHandler(countryService *service.CountryService) *CountryHandler {
	return &CountryHandler{countryService: countryService}
}

func (h *CountryHandler) List(w http.ResponseWriter, r *http.Request) {
	countries, err := h.countryService.List(r.Context(), r.URL.Query().Get("region"))
	if err != nil {
		writeServiceError(w, r, "list countries", err)
		return
	}

	writeJSON(w, http.StatusOK, countries)
}

func (h *CountryHandler) Get(w http.ResponseWriter, r *http.Request) {
	country, err := h.countryService.Get(r.Context(), r.PathValue("alpha2"))
	if err != nil {
		writeServiceError(w, r, "get country", err)
		return
	}

	writeJSON(w, http.StatusOK, country)
}

func Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusOK)
}
