package web

import (
	"net/http"

	"github.com/JonMunkholm/pharmastock/internal/core"
	"github.com/JonMunkholm/pharmastock/internal/web/templates"
	"github.com/go-chi/chi/v5"
)

// ImportResponse is the success half of the import API's result.
// Medicines and Total are what the stock screen renders; the rest is for the
// import history and the row problem list.
type ImportResponse struct {
	Medicines []core.MedicineImportRow `json:"medicines"`
	Total     int                      `json:"total"`
	Dropped   int                      `json:"dropped"`
	ImportID  string                   `json:"importId,omitempty"`
	Errors    []core.RowError          `json:"errors"`
}

func newImportResponse(importID string, result core.ImportResult) ImportResponse {
	resp := ImportResponse{
		Medicines: result.Rows,
		Total:     result.TotalAccepted,
		Dropped:   result.Dropped,
		ImportID:  importID,
		Errors:    result.ParseErrors,
	}
	if resp.Medicines == nil {
		resp.Medicines = []core.MedicineImportRow{}
	}
	if resp.Errors == nil {
		resp.Errors = []core.RowError{}
	}
	return resp
}

func rowIssues(errs []core.RowError) []templates.RowIssue {
	issues := make([]templates.RowIssue, len(errs))
	for i, e := range errs {
		issues[i] = templates.RowIssue{Row: e.Row, Message: e.Message}
	}
	return issues
}

// handleImport ingests an uploaded CSV and stores the accepted rows.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	fileName, data, err := s.readUpload(w, r)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	outcome, err := s.service.Import(r.Context(), fileName, data)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	if isHTMX(r) {
		res := outcome.Result
		renderFragment(w, r, http.StatusOK, templates.ImportSummary(fileName, outcome.ImportID, res.TotalAccepted, res.Dropped, rowIssues(res.ParseErrors)))
		return
	}

	status := http.StatusOK
	if outcome.ImportID != "" {
		status = http.StatusCreated
	}
	writeJSON(w, r, status, newImportResponse(outcome.ImportID, outcome.Result))
}

// PreviewResponse is an import response plus the header report.
type PreviewResponse struct {
	ImportResponse
	Header core.HeaderMatch `json:"header"`
}

// handlePreview runs an import without storing anything.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	fileName, data, err := s.readUpload(w, r)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	preview, err := s.service.Preview(fileName, data)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	if isHTMX(r) {
		res := preview.Result
		renderFragment(w, r, http.StatusOK, templates.ImportSummary(fileName, "", res.TotalAccepted, res.Dropped, rowIssues(res.ParseErrors)))
		return
	}

	writeJSON(w, r, http.StatusOK, PreviewResponse{
		ImportResponse: newImportResponse("", preview.Result),
		Header:         preview.Header,
	})
}

// handleDownloadTemplate returns the sample import CSV.
func (s *Server) handleDownloadTemplate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="medicine_import_template.csv"`)
	_, _ = w.Write(core.SampleTemplate())
}

// handleImportHistory lists stored imports, newest first.
func (s *Server) handleImportHistory(w http.ResponseWriter, r *http.Request) {
	records, err := s.service.History(r.Context(), parseIntParam(r, "limit", 0))
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	if records == nil {
		records = []core.ImportRecord{}
	}
	writeJSON(w, r, http.StatusOK, records)
}

// handleRollbackImport deletes a stored import and its medicines.
func (s *Server) handleRollbackImport(w http.ResponseWriter, r *http.Request) {
	importID := chi.URLParam(r, "importID")

	removed, err := s.service.Rollback(r.Context(), importID)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{
		"importId": importID,
		"removed":  removed,
	})
}

// handleUploadQueueStatus reports import concurrency.
func (s *Server) handleUploadQueueStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.service.UploadLimiterStatus())
}

// handleHealth reports liveness plus import concurrency.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]any{
		"status":  "ok",
		"uploads": s.service.UploadLimiterStatus(),
	})
}
