package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/secmon-lab/supportcase/pkg/domain/model"
	"github.com/secmon-lab/supportcase/pkg/usecase"
)

// pageParams reads limit and offset from the query string. A missing limit
// is reported as nil so that the page policy can apply its default.
func pageParams(r *http.Request) (*int, int, error) {
	q := r.URL.Query()

	var limit *int
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, 0, err
		}
		limit = &n
	}

	offset := 0
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, 0, err
		}
		offset = n
	}

	return limit, offset, nil
}

// requireCase answers 404 when the case does not exist. Message listing in
// the use case layer treats a missing case as empty, so the transport checks
// before reading the query or body.
func (s *Server) requireCase(w http.ResponseWriter, r *http.Request, id model.CaseID) bool {
	ctx := r.Context()

	exists, err := s.uc.Case.CaseExists(ctx, id)
	if err != nil {
		writeInternalError(ctx, w, err)
		return false
	}
	if !exists {
		writeError(ctx, w, http.StatusNotFound, msgCaseNotFound)
		return false
	}
	return true
}

func (s *Server) listMessagesHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caseID, ok := caseIDParam(w, r)
	if !ok {
		return
	}

	if !s.requireCase(w, r, caseID) {
		return
	}

	rawLimit, rawOffset, err := pageParams(r)
	if err != nil {
		writeError(ctx, w, http.StatusBadRequest, msgInvalidPagination)
		return
	}
	limit, offset := s.policy.Clamp(rawLimit, rawOffset)

	msgs, total, err := s.uc.Message.GetCaseMessages(ctx, caseID, limit, offset)
	if err != nil {
		writeInternalError(ctx, w, err)
		return
	}

	resp := messageListResponse{
		Messages: make([]messageResponse, 0, len(msgs)),
		Pagination: paginationResponse{
			Total:  total,
			Offset: offset,
			Limit:  limit,
		},
	}
	for _, m := range msgs {
		resp.Messages = append(resp.Messages, toMessageResponse(m))
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}

func (s *Server) addMessageHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caseID, ok := caseIDParam(w, r)
	if !ok {
		return
	}

	if !s.requireCase(w, r, caseID) {
		return
	}

	var input model.MessageInput
	if err := decodeBody(r, &input); err != nil {
		rejectPayload(ctx, w, err, msgInvalidMsgData)
		return
	}
	if err := input.Validate(); err != nil {
		rejectPayload(ctx, w, err, msgInvalidMsgData)
		return
	}

	msg, err := s.uc.Message.AddMessage(ctx, caseID, input.Content)
	if err != nil {
		if errors.Is(err, usecase.ErrCaseNotFound) {
			writeError(ctx, w, http.StatusNotFound, msgCaseNotFound)
			return
		}
		writeInternalError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusCreated, toMessageResponse(msg))
}

func (s *Server) deleteMessageHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caseID, ok := caseIDParam(w, r)
	if !ok {
		return
	}
	messageID, err := model.ParseMessageID(chi.URLParam(r, "message_id"))
	if err != nil {
		writeError(ctx, w, http.StatusBadRequest, msgInvalidUUID)
		return
	}

	if !s.requireCase(w, r, caseID) {
		return
	}

	deleted, err := s.uc.Message.DeleteMessage(ctx, caseID, messageID)
	if err != nil {
		writeInternalError(ctx, w, err)
		return
	}
	if !deleted {
		writeError(ctx, w, http.StatusNotFound, msgMessageNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
