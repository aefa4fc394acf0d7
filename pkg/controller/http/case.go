package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/secmon-lab/supportcase/pkg/domain/model"
	"github.com/secmon-lab/supportcase/pkg/usecase"
)

// caseIDParam parses {case_id} and answers 400 when it is not a UUID.
func caseIDParam(w http.ResponseWriter, r *http.Request) (model.CaseID, bool) {
	id, err := model.ParseCaseID(chi.URLParam(r, "case_id"))
	if err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, msgInvalidUUID)
		return "", false
	}
	return id, true
}

func decodeCaseInput(w http.ResponseWriter, r *http.Request) (*model.CaseInput, bool) {
	var input model.CaseInput
	if err := decodeBody(r, &input); err != nil {
		rejectPayload(r.Context(), w, err, msgInvalidCaseData)
		return nil, false
	}
	if err := input.Validate(); err != nil {
		rejectPayload(r.Context(), w, err, msgInvalidCaseData)
		return nil, false
	}
	return &input, true
}

func (s *Server) listCasesHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cases, err := s.uc.Case.ListCases(ctx)
	if err != nil {
		writeInternalError(ctx, w, err)
		return
	}

	resp := make([]caseResponse, 0, len(cases))
	for _, c := range cases {
		resp = append(resp, toCaseResponse(c))
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}

func (s *Server) createCaseHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	input, ok := decodeCaseInput(w, r)
	if !ok {
		return
	}

	c, err := s.uc.Case.CreateCase(ctx, input.Summary, input.Description, input.CustomerID)
	if err != nil {
		writeInternalError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusCreated, toCaseResponse(c))
}

func (s *Server) getCaseHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := caseIDParam(w, r)
	if !ok {
		return
	}

	c, err := s.uc.Case.GetCase(ctx, id)
	if err != nil {
		if errors.Is(err, usecase.ErrCaseNotFound) {
			writeError(ctx, w, http.StatusNotFound, msgCaseNotFound)
			return
		}
		writeInternalError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, toCaseResponse(c))
}

func (s *Server) updateCaseHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := caseIDParam(w, r)
	if !ok {
		return
	}
	input, ok := decodeCaseInput(w, r)
	if !ok {
		return
	}

	c, err := s.uc.Case.UpdateCase(ctx, id, input.Summary, input.Description, input.CustomerID)
	if err != nil {
		if errors.Is(err, usecase.ErrCaseNotFound) {
			writeError(ctx, w, http.StatusNotFound, msgCaseNotFound)
			return
		}
		writeInternalError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, toCaseResponse(c))
}

func (s *Server) deleteCaseHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := caseIDParam(w, r)
	if !ok {
		return
	}

	deleted, err := s.uc.Case.DeleteCase(ctx, id)
	if err != nil {
		writeInternalError(ctx, w, err)
		return
	}
	if !deleted {
		writeError(ctx, w, http.StatusNotFound, msgCaseNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
