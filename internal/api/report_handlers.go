package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/chessinsight/internal/errors"
	"github.com/vytor/chessinsight/internal/models"
	"github.com/vytor/chessinsight/internal/services"
)

type listReportsResponse struct {
	Reports []models.StoredReport `json:"reports"`
	Total   int                   `json:"total"`
	Limit   int                   `json:"limit"`
	Offset  int                   `json:"offset"`
}

type mistakesResponse struct {
	ReportID int64               `json:"report_id"`
	Mistakes []models.MistakeRow `json:"mistakes"`
}

// analyzeRequest accepts either a JSON document or raw PGN with the other
// fields in the query string.
func analyzeRequest(r *http.Request) (services.AnalyzeRequest, error) {
	var req services.AnalyzeRequest
	if !isPGNBody(r) {
		return req, decodeJSON(r, &req)
	}
	pgnText, err := readPGN(r)
	if err != nil {
		return req, err
	}
	q := r.URL.Query()
	req.PGN = pgnText
	req.Player = q.Get("player")
	req.Color = q.Get("color")
	if req.MaxMove, err = queryInt(r, "max_move"); err != nil {
		return req, err
	}
	if req.TopMistakes, err = queryInt(r, "top"); err != nil {
		return req, err
	}
	return req, nil
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	req, err := analyzeRequest(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	report, err := s.Reports.Analyze(r.Context(), req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, report)
}

func (s *Server) handleSubmitReport(w http.ResponseWriter, r *http.Request) {
	req, err := analyzeRequest(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	stored, err := s.Reports.Submit(r.Context(), req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/reports/"+strconv.FormatInt(stored.ID, 10))
	writeJSON(w, r, http.StatusAccepted, stored)
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		handleError(w, r, err)
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		handleError(w, r, err)
		return
	}
	filter := models.ReportFilter{
		Player: r.URL.Query().Get("player"),
		Status: r.URL.Query().Get("status"),
		Limit:  limit,
		Offset: offset,
	}
	list, total, err := s.Reports.List(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, listReportsResponse{Reports: list, Total: total, Limit: limit, Offset: offset})
}

func reportID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewValidationError("id", "must be a positive integer")
	}
	return id, nil
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	id, err := reportID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	stored, err := s.Reports.Get(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, stored)
}

func (s *Server) handleReportMistakes(w http.ResponseWriter, r *http.Request) {
	id, err := reportID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		handleError(w, r, err)
		return
	}
	rows, err := s.Reports.Mistakes(r.Context(), models.MistakeFilter{
		ReportID: id,
		Kind:     strings.TrimSpace(r.URL.Query().Get("kind")),
		Theme:    strings.TrimSpace(r.URL.Query().Get("theme")),
		Limit:    limit,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, mistakesResponse{ReportID: id, Mistakes: rows})
}

func (s *Server) handleStructures(w http.ResponseWriter, r *http.Request) {
	var req services.StructuresRequest
	if isPGNBody(r) {
		pgnText, err := readPGN(r)
		if err != nil {
			handleError(w, r, err)
			return
		}
		req.PGN = pgnText
		req.Player = r.URL.Query().Get("player")
		req.Color = r.URL.Query().Get("color")
		if req.MoveNumber, err = queryInt(r, "move"); err != nil {
			handleError(w, r, err)
			return
		}
	} else if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	report, err := s.Reports.Structures(r.Context(), req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, report)
}
