package handlers

import (
	"delivery-cost-service/internal/api/dto"
	"delivery-cost-service/internal/domain"
	"net/http"
)

// Tariff serves the price list used by the calculator.
func Tariff(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	res := dto.TariffResponse{
		FragileCost:          domain.FragileCost,
		MinimumCost:          domain.MinimumCost,
		MaxFragileDistanceKm: domain.MaxFragileDistanceKm,
		SizeCosts: map[string]float64{
			string(domain.SizeSmall): domain.SizeSmall.Cost(),
			string(domain.SizeLarge): domain.SizeLarge.Cost(),
		},
		LoadMultipliers: make(map[string]float64, len(domain.Loads)),
	}

	for _, t := range domain.DistanceTiers() {
		res.DistanceTiers = append(res.DistanceTiers, dto.DistanceTierResponse{
			AboveKm: t.AboveKm,
			UpToKm:  t.UpToKm,
			Cost:    t.Cost,
		})
	}
	for _, l := range domain.Loads {
		res.LoadMultipliers[string(l)] = multiplier(l)
	}

	writeJSON(w, r, http.StatusOK, res)
}
