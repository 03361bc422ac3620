package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"jadwalku/internal/export"
	"jadwalku/internal/metrics"
	"jadwalku/internal/models"
	"jadwalku/internal/pdf"
)

// DocumentRequest is the body for the PDF and XLSX export endpoints.
type DocumentRequest struct {
	Timetable []models.Timetable `json:"timetable"`
	Schedule  []models.DayDetail `json:"schedule"`
	IsClass   *bool              `json:"is_class"`
	PDFData   struct {
		Title  string `json:"title"`
		Detail string `json:"detail"`
	} `json:"pdf_data"`
}

// decodeDocumentRequest parses and validates an export body. All four
// parts must be present and non-empty.
func decodeDocumentRequest(r *http.Request) (*DocumentRequest, error) {
	var req DocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, fmt.Errorf("invalid JSON body")
	}
	if req.IsClass == nil ||
		req.PDFData.Title == "" || req.PDFData.Detail == "" ||
		len(req.Schedule) == 0 || len(req.Timetable) == 0 {
		return nil, fmt.Errorf("missing title or content")
	}
	return &req, nil
}

// handleGeneratePDF renders the posted weekly view as a PDF.
// POST /api/generate-pdf
func (s *Server) handleGeneratePDF(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("generate_pdf")
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	req, err := decodeDocumentRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing title or content")
		return
	}

	doc, err := pdf.Generate(pdf.Props{
		Timetable: req.Timetable,
		Schedule:  req.Schedule,
		IsClass:   *req.IsClass,
		Title:     req.PDFData.Title,
		Detail:    req.PDFData.Detail,
	})
	if err != nil {
		s.log.Error().Err(err).Msg("pdf generation failed")
		writeError(w, http.StatusInternalServerError, "failed to generate document")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("inline; filename=%q", fmt.Sprintf("Jadwal_%s_%s.pdf", req.PDFData.Title, req.PDFData.Detail)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

// handleExportExcel renders the posted weekly view as an XLSX workbook.
// POST /api/export-excel
func (s *Server) handleExportExcel(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("export_excel")
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	req, err := decodeDocumentRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing title or content")
		return
	}

	book, err := export.Generate(export.Props{
		Timetable: req.Timetable,
		Schedule:  req.Schedule,
		IsClass:   *req.IsClass,
		Title:     req.PDFData.Title,
		Detail:    req.PDFData.Detail,
	})
	if err != nil {
		s.log.Error().Err(err).Msg("excel generation failed")
		writeError(w, http.StatusInternalServerError, "failed to generate document")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("Jadwal_%s_%s.xlsx", req.PDFData.Title, req.PDFData.Detail)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(book)
}
