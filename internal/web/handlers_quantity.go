package web

import (
	"net/http"

	"github.com/JonMunkholm/pharmastock/internal/quantity"
)

// ResolveRequest is a packaging breakdown with an optional unit price.
type ResolveRequest struct {
	quantity.Breakdown
	UnitPrice string `json:"unitPrice,omitempty"`
}

// ResolveResponse carries the derived unit count and, when a price was
// given, the stock value as a decimal string.
type ResolveResponse struct {
	TotalUnits int64  `json:"totalUnits"`
	StockValue string `json:"stockValue,omitempty"`
}

// handleResolveQuantity turns a packaging breakdown into a unit count.
func (s *Server) handleResolveQuantity(w http.ResponseWriter, r *http.Request) {
	var req ResolveRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		s.respondError(w, r, err, http.StatusUnprocessableEntity)
		return
	}

	total, err := quantity.TotalUnits(req.Breakdown)
	if err != nil {
		s.respondError(w, r, err, http.StatusUnprocessableEntity)
		return
	}

	resp := ResolveResponse{TotalUnits: total}
	if req.UnitPrice != "" {
		value, err := quantity.StockValue(resp.TotalUnits, req.UnitPrice)
		if err != nil {
			s.respondError(w, r, err, http.StatusUnprocessableEntity)
			return
		}
		resp.StockValue = value.StringFixed(2)
	}

	writeJSON(w, r, http.StatusOK, resp)
}

// DraftRequest applies one form step to the caller's draft. Clear wins over
// the patches; the quantity patch is applied before the medicine patch.
type DraftRequest struct {
	Draft    quantity.Draft          `json:"draft"`
	Quantity *quantity.QuantityPatch `json:"quantity,omitempty"`
	Medicine *quantity.MedicinePatch `json:"medicine,omitempty"`
	Clear    bool                    `json:"clear,omitempty"`
}

// handleUpdateDraft merges a form step into the add-medicine draft. The
// server keeps no draft state; the client sends its draft with every step.
// The returned TotalUnits is always derived from the returned Quantity.
func (s *Server) handleUpdateDraft(w http.ResponseWriter, r *http.Request) {
	var req DraftRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	d := req.Draft
	if req.Clear {
		writeJSON(w, r, http.StatusOK, d.Clear())
		return
	}
	if req.Quantity != nil {
		d = d.UpdateQuantity(*req.Quantity)
	}
	if req.Medicine != nil {
		d = d.UpdateMedicine(*req.Medicine)
	}

	total, err := quantity.TotalUnits(d.Quantity)
	if err != nil {
		s.respondError(w, r, err, http.StatusUnprocessableEntity)
		return
	}
	d.TotalUnits = total

	writeJSON(w, r, http.StatusOK, d)
}
