package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/codec"
	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/common"
	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/filter"
	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/model"
)

// criteriaFromQuery reads filter fields from the query string. Absent
// fields pass everything through.
func criteriaFromQuery(r *http.Request) model.FilterCriteria {
	criteria := model.DefaultCriteria()
	q := r.URL.Query()
	if v := q.Get("status"); v != "" {
		criteria.Status = v
	}
	if v := q.Get("source"); v != "" {
		criteria.Source = v
	}
	if v := q.Get("tag"); v != "" {
		criteria.Tag = v
	}
	if v := q.Get("date"); v != "" {
		criteria.Date = v
	}
	criteria.Search = q.Get("search")
	return criteria
}

func (s *Server) handleListLeads(w http.ResponseWriter, r *http.Request) {
	leads, err := s.storage.GetLeads(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	filtered := filter.Apply(leads, criteriaFromQuery(r), s.now)
	writeJSON(w, http.StatusOK, filtered)
}

func (s *Server) handleGetLead(w http.ResponseWriter, r *http.Request) {
	lead, err := s.storage.GetLeadByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

func (s *Server) handleCreateLeads(w http.ResponseWriter, r *http.Request) {
	var leads []model.Lead
	if err := json.NewDecoder(r.Body).Decode(&leads); err != nil {
		writeError(w, fmt.Errorf("%w: %v", common.ErrParse, err))
		return
	}

	if err := s.storage.SaveLeads(r.Context(), leads); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int{"created": len(leads)})
}

type idsRequest struct {
	IDs []string `json:"ids"`
	Tag string   `json:"tag,omitempty"`
}

func decodeIDs(r *http.Request) (idsRequest, error) {
	var req idsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, fmt.Errorf("%w: %v", common.ErrParse, err)
	}
	if len(req.IDs) == 0 {
		return req, fmt.Errorf("%w: no leads selected", common.ErrValidation)
	}
	return req, nil
}

func (s *Server) handleDeleteLeads(w http.ResponseWriter, r *http.Request) {
	req, err := decodeIDs(r)
	if err != nil {
		writeError(w, err)
		return
	}

	deleted, err := s.storage.DeleteLeads(r.Context(), req.IDs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"deleted": deleted})
}

func (s *Server) handleTagLeads(w http.ResponseWriter, r *http.Request) {
	req, err := decodeIDs(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if req.Tag == "" {
		writeError(w, fmt.Errorf("%w: tag name is empty", common.ErrValidation))
		return
	}

	tagged, err := s.storage.AddTagToLeads(r.Context(), req.IDs, req.Tag)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"tagged": tagged})
}

func (s *Server) handleEmailLeads(w http.ResponseWriter, r *http.Request) {
	req, err := decodeIDs(r)
	if err != nil {
		writeError(w, err)
		return
	}

	leads, err := s.storage.GetLeadsByIDs(r.Context(), req.IDs)
	if err != nil {
		writeError(w, err)
		return
	}

	queued, err := s.dispatcher.QueueEmails(r.Context(), leads)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"queued": queued})
}

// handleImport accepts the raw file body; the filename query parameter
// selects the format by extension, exactly like a file picker would.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	filename := r.URL.Query().Get("filename")
	if filename == "" {
		writeError(w, fmt.Errorf("%w: filename query parameter is required", common.ErrValidation))
		return
	}

	content, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, fmt.Errorf("failed to read request body: %w", err))
		return
	}

	leads, err := codec.ImportLeads(filename, content, s.now())
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.storage.SaveLeads(r.Context(), leads); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int{"imported": len(leads)})
}

// handleExport streams a CSV attachment. With an ids parameter it exports
// those leads in the given order; without, the filtered view.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var leads []model.Lead
	var err error

	if ids := r.URL.Query()["id"]; len(ids) > 0 {
		leads, err = s.storage.GetLeadsByIDs(r.Context(), ids)
	} else {
		leads, err = s.storage.GetLeads(r.Context())
		if err == nil {
			leads = filter.Apply(leads, criteriaFromQuery(r), s.now)
		}
	}
	if err != nil {
		writeError(w, err)
		return
	}

	out, err := codec.ExportCSV(leads)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", codec.ExportFilename(s.now())))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	lead, err := s.storage.GetLeadByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"summary": s.generator.Summarize(r.Context(), lead),
	})
}

func (s *Server) handleDraft(w http.ResponseWriter, r *http.Request) {
	lead, err := s.storage.GetLeadByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	var req struct {
		Tone string `json:"tone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: %v", common.ErrParse, err))
		return
	}
	if req.Tone == "" {
		req.Tone = "professional"
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"draft": s.generator.DraftEmail(r.Context(), lead, req.Tone),
	})
}
