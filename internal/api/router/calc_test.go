package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/infix-calc/internal/apperr"
	"github.com/DjordjeVuckovic/infix-calc/internal/calc"
	"github.com/DjordjeVuckovic/infix-calc/internal/domain"
	"github.com/DjordjeVuckovic/infix-calc/internal/dto"
	"github.com/DjordjeVuckovic/infix-calc/internal/storage/in_mem"
	"github.com/DjordjeVuckovic/infix-calc/pkg/pagination"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenStorer struct{}

func (brokenStorer) Save(ctx context.Context, evaluation domain.Evaluation) (uuid.UUID, error) {
	return uuid.Nil, errors.New("disk full")
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = apperr.GlobalErrorHandler()
	return e
}

func newTestRouter(t *testing.T) (*echo.Echo, *in_mem.InMemStorer) {
	t.Helper()
	store := in_mem.NewInMemStorer()

	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	tick := 0
	clock := func() time.Time {
		tick++
		return start.Add(time.Duration(tick) * time.Second)
	}

	e := newEcho()
	svc := calc.New(calc.WithStorer(store), calc.WithClock(clock))
	NewCalcRouter(e, svc, WithHistoryReader(store)).Bind()
	return e, store
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCalcRouter_Tokenize(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := do(e, http.MethodPost, "/api/v1/tokenize", `{"expression":"12*3"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.TokenizeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "12*3", resp.Expression)
	require.Len(t, resp.Tokens, 3)
	assert.Equal(t, "value", resp.Tokens[0].Type)
	assert.Equal(t, int64(12), *resp.Tokens[0].Value)
	assert.Equal(t, "symbol", resp.Tokens[1].Type)
	assert.Equal(t, "*", resp.Tokens[1].Operator)
}

func TestCalcRouter_TokenizeRejected(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := do(e, http.MethodPost, "/api/v1/tokenize", `{"expression":"3&4"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "bad_token", body["kind"])
	assert.Equal(t, "tokenize", body["stage"])
	assert.Equal(t, "Encountered an invalid token: &", body["error"])
}

func TestCalcRouter_Evaluate(t *testing.T) {
	e, store := newTestRouter(t)

	rec := do(e, http.MethodPost, "/api/v1/evaluate", `{"expression":"1+2*3-4"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.EvaluationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Result)
	assert.Equal(t, int64(3), *resp.Result)
	assert.Len(t, resp.Tokens, 7)
	assert.Nil(t, resp.Failure)

	saved, err := store.Get(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "1+2*3-4", saved.Expression)
}

func TestCalcRouter_EvaluateRejected(t *testing.T) {
	tests := []struct {
		expr  string
		stage string
		kind  string
	}{
		{expr: "5/0", stage: "evaluate", kind: "divide_by_zero"},
		{expr: "3+", stage: "tokenize", kind: "end_on_infix_symbol"},
		{expr: "-5", stage: "evaluate", kind: "symbol_value_mismatch"},
		{expr: "", stage: "tokenize", kind: "end_on_infix_symbol"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			e, store := newTestRouter(t)

			rec := do(e, http.MethodPost, "/api/v1/evaluate", `{"expression":"`+tt.expr+`"}`)
			require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.stage, body["stage"])
			assert.Equal(t, tt.kind, body["kind"])

			// rejected expressions are still recorded
			page, err := store.List(context.Background(), nil, 10)
			require.NoError(t, err)
			require.Len(t, page.Items, 1)
			require.NotNil(t, page.Items[0].Failure)
			assert.Equal(t, domain.ErrorKind(tt.kind), page.Items[0].Failure.Kind)
		})
	}
}

func TestCalcRouter_EvaluateMalformedBody(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := do(e, http.MethodPost, "/api/v1/evaluate", `{"expression":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCalcRouter_EvaluateHistoryFailure(t *testing.T) {
	e := newEcho()
	NewCalcRouter(e, calc.New(calc.WithStorer(brokenStorer{}))).Bind()

	rec := do(e, http.MethodPost, "/api/v1/evaluate", `{"expression":"1+1"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestCalcRouter_ListPaginates(t *testing.T) {
	e, _ := newTestRouter(t)

	for _, expr := range []string{"1+1", "2+2", "3+3"} {
		rec := do(e, http.MethodPost, "/api/v1/evaluate", `{"expression":"`+expr+`"}`)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := do(e, http.MethodGet, "/api/v1/evaluations?size=2", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var first pagination.CursorResult[dto.EvaluationResponse]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &first))
	require.Len(t, first.Items, 2)
	assert.True(t, first.HasMore)
	require.NotNil(t, first.NextCursor)
	assert.Equal(t, "3+3", first.Items[0].Expression)
	assert.Equal(t, "2+2", first.Items[1].Expression)

	rec = do(e, http.MethodGet, "/api/v1/evaluations?size=2&cursor="+*first.NextCursor, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var second pagination.CursorResult[dto.EvaluationResponse]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &second))
	require.Len(t, second.Items, 1)
	assert.False(t, second.HasMore)
	assert.Nil(t, second.NextCursor)
	assert.Equal(t, "1+1", second.Items[0].Expression)
}

func TestCalcRouter_ListBadCursor(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := do(e, http.MethodGet, "/api/v1/evaluations?cursor=not-a-cursor", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCalcRouter_Get(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := do(e, http.MethodPost, "/api/v1/evaluate", `{"expression":"8-3-2"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var created dto.EvaluationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = do(e, http.MethodGet, "/api/v1/evaluations/"+created.ID.String(), "")
	require.Equal(t, http.StatusOK, rec.Code)
	var fetched dto.EvaluationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, int64(3), *fetched.Result)

	rec = do(e, http.MethodGet, "/api/v1/evaluations/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(e, http.MethodGet, "/api/v1/evaluations/42", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCalcRouter_HistoryDisabled(t *testing.T) {
	e := newEcho()
	NewCalcRouter(e, calc.New()).Bind()

	assert.Equal(t, http.StatusNotImplemented, do(e, http.MethodGet, "/api/v1/evaluations", "").Code)
	assert.Equal(t, http.StatusNotImplemented, do(e, http.MethodGet, "/api/v1/evaluations/"+uuid.NewString(), "").Code)
	assert.Equal(t, http.StatusOK, do(e, http.MethodPost, "/api/v1/evaluate", `{"expression":"2*2"}`).Code)
}
