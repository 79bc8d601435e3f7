package es

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/infix-calc/internal/domain"
	"github.com/DjordjeVuckovic/infix-calc/internal/token"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_RoundTrip(t *testing.T) {
	result := int64(3)
	ev := domain.Evaluation{
		ID:         uuid.New(),
		Expression: "1+2",
		Tokens:     []token.Token{token.NewValue(1), token.NewSymbol(token.Add), token.NewValue(2)},
		Result:     &result,
		CreatedAt:  time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(toDocument(ev))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"created_at":"2025-02-01T10:00:00Z"`)
	assert.NotContains(t, string(data), "failure_kind")

	var doc Document
	require.NoError(t, json.Unmarshal(data, &doc))
	back, err := doc.toEvaluation()
	require.NoError(t, err)
	assert.Equal(t, ev, back)
}

func TestDocument_Failure(t *testing.T) {
	ev := domain.Evaluation{
		ID:         uuid.New(),
		Expression: "3&4",
		Failure: &domain.Failure{
			Stage:   domain.StageTokenize,
			Kind:    domain.KindBadToken,
			Message: "invalid token '&' at offset 1",
		},
		CreatedAt: time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC),
	}

	doc := toDocument(ev)
	assert.Equal(t, "bad_token", doc.FailureKind)
	assert.Nil(t, doc.Result)

	back, err := doc.toEvaluation()
	require.NoError(t, err)
	assert.Equal(t, ev, back)
}

func TestDocument_InvalidID(t *testing.T) {
	_, err := Document{ID: "not-a-uuid"}.toEvaluation()
	assert.Error(t, err)
}
