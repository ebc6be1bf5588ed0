package web

import (
	"encoding/json"
	"fmt"
	"net/http"

	chi "github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pcmon/catalog/internal/core"
	"github.com/pcmon/catalog/internal/export"
	"github.com/pcmon/catalog/internal/logging"
)

// tableInfoResponse describes one editable table for the UI.
type tableInfoResponse struct {
	Key     string   `json:"key"`
	Label   string   `json:"label"`
	Columns []string `json:"columns"`
}

// batchRequest is the save payload: the edited grid in display shape.
type batchRequest struct {
	Columns []string         `json:"columns"`
	Records []map[string]any `json:"records"`
}

// saveResponse reports the outcome of a save or import.
type saveResponse struct {
	Valid            bool     `json:"valid"`
	BatchID          string   `json:"batchId,omitempty"`
	Saved            int      `json:"saved"`
	Errors           []string `json:"errors,omitempty"`
	DeleteCandidates []string `json:"deleteCandidates,omitempty"`
}

// tableFromRequest resolves the {tableKey} URL parameter against the registry.
func tableFromRequest(r *http.Request) (core.TableDefinition, error) {
	key := chi.URLParam(r, "tableKey")
	def, ok := core.Get(key)
	if !ok {
		return core.TableDefinition{}, fmt.Errorf("unknown table %q", key)
	}
	return def, nil
}

// handleListTables returns the registered tables with their display columns.
func (s *Server) handleListTables(w http.ResponseWriter, r *http.Request) {
	defs := core.All()
	infos := make([]tableInfoResponse, len(defs))
	for i, def := range defs {
		infos[i] = tableInfoResponse{
			Key:     def.Info.Key,
			Label:   def.Info.Label,
			Columns: def.DisplayColumns(),
		}
	}
	writeJSON(w, http.StatusOK, infos)
}

// handleSummary returns the dashboard aggregates.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := s.store.Summary(r.Context())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

// handleFetchTable returns the persisted rows shaped for the editing grid.
func (s *Server) handleFetchTable(w http.ResponseWriter, r *http.Request) {
	def, err := tableFromRequest(r)
	if err != nil {
		writeError(w, r, http.StatusNotFound, err)
		return
	}

	batch, err := s.store.ListBatch(r.Context(), def)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	if err := s.pipeline.PrepareForDisplay(r.Context(), def, batch); err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, batchRequest{
		Columns: batch.Columns,
		Records: recordsToMaps(batch.Records),
	})
}

// handleSaveTable validates an edited batch and, when clean, upserts it in
// one write. Saving is all-or-nothing: any violation blocks the whole batch.
func (s *Server) handleSaveTable(w http.ResponseWriter, r *http.Request) {
	def, err := tableFromRequest(r)
	if err != nil {
		writeError(w, r, http.StatusNotFound, err)
		return
	}

	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "request body must be a JSON batch")
		return
	}
	if len(req.Columns) == 0 {
		writeBadRequest(w, "batch columns are required")
		return
	}

	batch := &core.Batch{Columns: req.Columns, Records: mapsToRecords(req.Records)}
	s.finishSave(w, r, def, batch)
}

// handleImportCSV validates an uploaded CSV file and, when clean, upserts it.
func (s *Server) handleImportCSV(w http.ResponseWriter, r *http.Request) {
	def, err := tableFromRequest(r)
	if err != nil {
		writeError(w, r, http.StatusNotFound, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Upload.MaxFileSize)
	file, _, err := r.FormFile("file")
	if err != nil {
		writeBadRequest(w, "no file provided: attach a CSV file as \"file\"")
		return
	}
	defer file.Close()

	batch, err := core.ReadBatch(file)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}
	s.finishSave(w, r, def, batch)
}

// finishSave runs the save pipeline on a batch and persists it if clean.
func (s *Server) finishSave(w http.ResponseWriter, r *http.Request, def core.TableDefinition, batch *core.Batch) {
	batchID := uuid.NewString()
	logger := logging.WithFields(r.Context(), "batch_id", batchID, "table", def.Info.Key)

	report, err := s.pipeline.PrepareForSave(r.Context(), def, batch)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	if !report.Empty() {
		logger.Info("batch rejected", "rows", batch.Len(), "violations", report.Len())
		writeJSON(w, http.StatusUnprocessableEntity, saveResponse{
			Valid:   false,
			BatchID: batchID,
			Errors:  report.Messages(),
		})
		return
	}

	persistedKeys, err := s.store.ListKeys(r.Context(), def)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	saved, err := s.store.UpsertBatch(r.Context(), def, batch)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	logger.Info("batch saved", "rows", saved)
	writeJSON(w, http.StatusOK, saveResponse{
		Valid:            true,
		BatchID:          batchID,
		Saved:            saved,
		DeleteCandidates: core.DeleteCandidates(persistedKeys, batch, def.PrimaryKey),
	})
}

// handleDeleteRows deletes explicitly confirmed primary keys.
func (s *Server) handleDeleteRows(w http.ResponseWriter, r *http.Request) {
	def, err := tableFromRequest(r)
	if err != nil {
		writeError(w, r, http.StatusNotFound, err)
		return
	}

	var req struct {
		Keys []string `json:"keys"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "request body must list keys to delete")
		return
	}
	if len(req.Keys) == 0 {
		writeBadRequest(w, "keys are required")
		return
	}

	deleted, err := s.store.DeleteByKeys(r.Context(), def, req.Keys)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	logging.FromContext(r.Context()).Info("rows deleted",
		"table", def.Info.Key, "rows", deleted)
	writeJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}

// handleResetTable truncates a table.
func (s *Server) handleResetTable(w http.ResponseWriter, r *http.Request) {
	def, err := tableFromRequest(r)
	if err != nil {
		writeError(w, r, http.StatusNotFound, err)
		return
	}

	if err := s.store.Reset(r.Context(), def); err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	logging.FromContext(r.Context()).Warn("table reset", "table", def.Info.Key)
	writeJSON(w, http.StatusOK, map[string]bool{"reset": true})
}

// handleExportTable streams the display-shaped table as an XLSX download.
func (s *Server) handleExportTable(w http.ResponseWriter, r *http.Request) {
	def, err := tableFromRequest(r)
	if err != nil {
		writeError(w, r, http.StatusNotFound, err)
		return
	}

	batch, err := s.store.ListBatch(r.Context(), def)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	if err := s.pipeline.PrepareForDisplay(r.Context(), def, batch); err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	data, err := export.BatchBytes(batch)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", def.Info.Key+".xlsx"))
	_, _ = w.Write(data)
}

// recordsToMaps converts pipeline records to plain maps for JSON encoding.
func recordsToMaps(records []core.Record) []map[string]any {
	out := make([]map[string]any, len(records))
	for i, rec := range records {
		out[i] = map[string]any(rec)
	}
	return out
}

// mapsToRecords converts decoded JSON rows to pipeline records.
func mapsToRecords(rows []map[string]any) []core.Record {
	out := make([]core.Record, len(rows))
	for i, row := range rows {
		out[i] = core.Record(row)
	}
	return out
}
