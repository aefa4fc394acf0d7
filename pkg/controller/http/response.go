package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/supportcase/pkg/domain/model"
	"github.com/secmon-lab/supportcase/pkg/utils/errutil"
	"github.com/secmon-lab/supportcase/pkg/utils/logging"
	"github.com/secmon-lab/supportcase/pkg/utils/safe"
)

const (
	msgInvalidUUID       = "Invalid UUID format"
	msgInvalidPagination = "Invalid pagination parameters"
	msgInvalidCaseData   = "Invalid support case data"
	msgInvalidMsgData    = "Invalid message data"
	msgCaseNotFound      = "Support case not found"
	msgMessageNotFound   = "Message not found"
	msgResourceNotFound  = "Resource not found"
	msgMethodNotAllowed  = "Method not allowed"
)

type caseResponse struct {
	ID          string    `json:"id"`
	Summary     string    `json:"summary"`
	Description string    `json:"description"`
	CustomerID  int64     `json:"customer_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func toCaseResponse(c *model.Case) caseResponse {
	return caseResponse{
		ID:          c.ID.String(),
		Summary:     c.Summary,
		Description: c.Description,
		CustomerID:  c.CustomerID,
		CreatedAt:   c.CreatedAt.UTC(),
	}
}

type messageResponse struct {
	ID        string    `json:"id"`
	CaseID    string    `json:"case_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func toMessageResponse(m *model.Message) messageResponse {
	return messageResponse{
		ID:        m.ID.String(),
		CaseID:    m.CaseID.String(),
		Content:   m.Content,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

type paginationResponse struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type messageListResponse struct {
	Messages   []messageResponse  `json:"messages"`
	Pagination paginationResponse `json:"pagination"`
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.EncodeJSON(ctx, w, v)
}

func writeError(ctx context.Context, w http.ResponseWriter, status int, msg string) {
	errutil.HandleHTTP(ctx, w, errors.New(msg), status)
}

func writeInternalError(ctx context.Context, w http.ResponseWriter, err error) {
	errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
}

// decodeBody reads a single JSON object into v, rejecting unknown fields
// and trailing data.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return goerr.Wrap(model.ErrInvalidPayload, "failed to decode request body", goerr.V("cause", err.Error()))
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return goerr.Wrap(model.ErrInvalidPayload, "unexpected data after request body")
	}
	return nil
}

// rejectPayload answers 400 with msg. The failing fields or decode error
// only go to the log.
func rejectPayload(ctx context.Context, w http.ResponseWriter, err error, msg string) {
	attrs := []any{"error", err.Error()}
	var ge *goerr.Error
	if errors.As(err, &ge) {
		values := ge.Values()
		if fields, ok := values[model.FieldKey]; ok {
			attrs = append(attrs, "fields", fields)
		}
		if cause, ok := values["cause"]; ok {
			attrs = append(attrs, "cause", cause)
		}
	}
	logging.From(ctx).Warn("rejected request payload", attrs...)

	writeError(ctx, w, http.StatusBadRequest, msg)
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	writeError(r.Context(), w, http.StatusNotFound, msgResourceNotFound)
}

func methodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	writeError(r.Context(), w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
}
