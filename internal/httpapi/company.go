package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/alexanderramin/brieflist/internal/domain"
	"github.com/alexanderramin/brieflist/internal/intelligence"
	"go.uber.org/zap"
)

// CompanyInfoRequest is the body of POST /api/company-info.
type CompanyInfoRequest struct {
	CompanyName string `json:"companyName"`
}

// CompanyInfoResponse is a successful lookup: exactly one field is set.
type CompanyInfoResponse struct {
	Financials *domain.FinancialPayload `json:"financials,omitempty"`
	Summary    string                   `json:"summary,omitempty"`
}

const (
	msgNotConfigured = "OpenAI API key not configured"
	msgNameRequired  = "Company name is required"
	msgFetchFailed   = "Failed to fetch company information"
	msgEmpty         = "No response from completion provider"
	msgBadFormat     = "Invalid response format from completion provider"
	msgBadBody       = "Invalid request body"
)

func (s *Server) handleCompanyInfo(w http.ResponseWriter, r *http.Request) {
	if s.company == nil {
		writeError(w, http.StatusServiceUnavailable, "company research is not enabled")
		return
	}
	// The credential check comes first so a missing key is reported
	// regardless of the body.
	if err := s.company.Ready(); err != nil {
		s.writeCompanyError(w, r, err)
		return
	}

	var req CompanyInfoRequest
	if err := decodeJSON(w, r, &req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field == "companyName" {
			writeError(w, http.StatusBadRequest, msgNameRequired)
			return
		}
		writeError(w, http.StatusBadRequest, msgBadBody)
		return
	}

	res, err := s.company.Lookup(r.Context(), req.CompanyName)
	if err != nil {
		s.writeCompanyError(w, r, err)
		return
	}

	if res.Variant == intelligence.VariantFreeText {
		writeJSON(w, http.StatusOK, CompanyInfoResponse{Summary: res.Summary})
		return
	}
	writeJSON(w, http.StatusOK, CompanyInfoResponse{Financials: res.Financials})
}

func (s *Server) writeCompanyError(w http.ResponseWriter, r *http.Request, err error) {
	var uerr *intelligence.UpstreamError
	switch {
	case errors.Is(err, intelligence.ErrConfiguration):
		s.logger.Error("completion credential missing", zap.String("request_id", RequestID(r.Context())))
		writeError(w, http.StatusInternalServerError, msgNotConfigured)
	case errors.Is(err, intelligence.ErrValidation):
		writeError(w, http.StatusBadRequest, msgNameRequired)
	case errors.As(err, &uerr):
		writeJSON(w, http.StatusInternalServerError, errorBody{
			Error:   msgFetchFailed,
			Details: uerr.Message,
			Type:    uerr.Type,
			Code:    uerr.Code,
		})
	case errors.Is(err, intelligence.ErrEmptyResponse):
		writeError(w, http.StatusInternalServerError, msgEmpty)
	case errors.Is(err, intelligence.ErrFormat):
		writeError(w, http.StatusInternalServerError, msgBadFormat)
	default:
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: msgFetchFailed, Details: err.Error()})
	}
}
