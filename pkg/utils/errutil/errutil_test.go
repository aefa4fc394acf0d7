package errutil_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/supportcase/pkg/utils/errutil"
)

func TestHandle(t *testing.T) {
	gt.NoError(t, errutil.Handle(context.Background(), nil, "nothing"))

	base := errors.New("disk full")
	err := errutil.Handle(context.Background(), goerr.Wrap(base, "failed to save", goerr.V("id", "x")), "save failed")
	gt.Error(t, err).Is(base)
}

func TestHandleHTTP(t *testing.T) {
	t.Run("server error is masked", func(t *testing.T) {
		w := httptest.NewRecorder()
		errutil.HandleHTTP(context.Background(), w, goerr.New("connection refused to 10.0.0.1"), http.StatusInternalServerError)

		gt.Number(t, w.Code).Equal(http.StatusInternalServerError)
		gt.String(t, w.Header().Get("Content-Type")).Equal("application/json")
		gt.String(t, w.Body.String()).Equal("{\"error\":\"Internal server error\"}\n")
	})

	t.Run("client error keeps message", func(t *testing.T) {
		w := httptest.NewRecorder()
		errutil.HandleHTTP(context.Background(), w, errors.New("Invalid UUID format"), http.StatusBadRequest)

		gt.Number(t, w.Code).Equal(http.StatusBadRequest)
		gt.String(t, w.Body.String()).Equal("{\"error\":\"Invalid UUID format\"}\n")
	})

	t.Run("nil error writes nothing", func(t *testing.T) {
		w := httptest.NewRecorder()
		errutil.HandleHTTP(context.Background(), w, nil, http.StatusInternalServerError)
		gt.Number(t, w.Body.Len()).Equal(0)
	})
}

func TestHandle_ReportsToSentry(t *testing.T) {
	transport := &sentry.MockTransport{}
	client, err := sentry.NewClient(sentry.ClientOptions{Transport: transport})
	gt.NoError(t, err).Required()

	hub := sentry.NewHub(client, sentry.NewScope())
	ctx := sentry.SetHubOnContext(context.Background(), hub)

	cause := goerr.New("failed to save case", goerr.V("case_id", "c-1"), goerr.V("attempt", 3))
	_ = errutil.Handle(ctx, cause, "save failed")

	events := transport.Events()
	gt.Array(t, events).Length(1).Required()

	ev := events[0]
	gt.Value(t, ev.Tags["message"]).Equal("save failed")

	values, ok := ev.Contexts["goerr"]
	gt.Bool(t, ok).True().Required()
	gt.Value(t, values["case_id"]).Equal(any("c-1"))
	gt.Value(t, values["attempt"]).Equal(any("3"))
}

func TestHandle_WithoutSentryClient(t *testing.T) {
	hub := sentry.NewHub(nil, sentry.NewScope())
	ctx := sentry.SetHubOnContext(context.Background(), hub)

	base := errors.New("timeout")
	gt.Error(t, errutil.Handle(ctx, goerr.Wrap(base, "failed"), "no client")).Is(base)
}
