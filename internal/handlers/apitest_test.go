package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/partwall/partwall-golang/internal/events"
	"github.com/partwall/partwall-golang/internal/handlers"
	"github.com/partwall/partwall-golang/internal/routes"
)

// newTestAPI wires the real router and middleware around a sqlmock
// database so tests exercise the full request path.
func newTestAPI(t *testing.T) (*gin.Engine, sqlmock.Sqlmock, *events.Hub) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	hub := events.NewHub()
	h := &handlers.Handlers{DB: db, Hub: hub, Logger: zerolog.Nop()}
	return routes.SetupRouter(h), mock, hub
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "body: %s", w.Body.String())
	return env
}

// decodeData unmarshals the envelope's data payload into out.
func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	env := decodeEnvelope(t, w)
	require.True(t, env.Success, "body: %s", w.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, out))
}
