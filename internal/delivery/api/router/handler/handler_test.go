package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"jobhub/internal/delivery/api/response"
	"jobhub/internal/delivery/api/validator"
	deliverycontext "jobhub/internal/delivery/context"
	"jobhub/internal/domain/entity"
	domainerrors "jobhub/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRequest struct {
	method    string
	target    string
	body      string
	principal *entity.User
	params    map[string]string
}

func newTestContext(tr testRequest) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = validator.New()

	var req *http.Request
	if tr.body != "" {
		req = httptest.NewRequest(tr.method, tr.target, strings.NewReader(tr.body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(tr.method, tr.target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	deliverycontext.SetRequestID(c, "req-test")

	if tr.principal != nil {
		deliverycontext.SetPrincipal(c, tr.principal)
	}
	if len(tr.params) > 0 {
		names := make([]string, 0, len(tr.params))
		values := make([]string, 0, len(tr.params))
		for name, value := range tr.params {
			names = append(names, name)
			values = append(values, value)
		}
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}

	return c, rec
}

// decodeData unmarshals the data member of the success envelope into out.
func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()

	var envelope struct {
		Data json.RawMessage   `json:"data"`
		Meta response.MetaInfo `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "req-test", envelope.Meta.RequestID)
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func assertErrorCode(t *testing.T, err error, code string) {
	t.Helper()

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.ErrorCode())
}

func TestPathID(t *testing.T) {
	jobID := uuid.New()
	userID := uuid.New()

	c, _ := newTestContext(testRequest{
		method: http.MethodGet,
		target: "/",
		params: map[string]string{"id": jobID.String(), "userId": userID.String(), "bad": "not-a-uuid"},
	})

	got, err := pathID(c, "id")
	require.NoError(t, err)
	assert.Equal(t, jobID, got)

	got, err = pathID(c, "userId")
	require.NoError(t, err)
	assert.Equal(t, userID, got)

	_, err = pathID(c, "bad")
	assertErrorCode(t, err, "VALIDATION_FAILED")

	_, err = pathID(c, "missing")
	assertErrorCode(t, err, "VALIDATION_FAILED")
}
