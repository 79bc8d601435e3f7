//go:build integration

package pg

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/infix-calc/internal/domain"
	"github.com/DjordjeVuckovic/infix-calc/internal/storage"
	"github.com/DjordjeVuckovic/infix-calc/internal/token"
	pkgtesting "github.com/DjordjeVuckovic/infix-calc/pkg/testing"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
)

var (
	testCtx    context.Context
	testPool   *ConnectionPool
	testStorer *Storer
)

func TestMain(m *testing.M) {
	testCtx = context.Background()

	pg, err := pkgtesting.NewPGContainer(testCtx, pkgtesting.PGConfig{
		Database: "calc_test_db",
		Username: "test",
		Password: "test",
	})
	if err != nil {
		panic(err)
	}

	testPool, err = NewConnectionPool(testCtx, PoolConfig{ConnStr: pg.ConnString})
	if err != nil {
		_ = testcontainers.TerminateContainer(pg.Container)
		panic(err)
	}

	testStorer, err = NewStorer(testPool)
	if err != nil {
		panic(err)
	}

	code := m.Run()

	testPool.Close()
	_ = testcontainers.TerminateContainer(pg.Container)
	os.Exit(code)
}

func truncateTable(t *testing.T) {
	t.Helper()
	_, err := testPool.Pool().Exec(testCtx, "TRUNCATE TABLE evaluations")
	if err != nil {
		t.Fatalf("failed to truncate table: %v", err)
	}
}

func TestStorer_SaveAndGet(t *testing.T) {
	truncateTable(t)
	defer truncateTable(t)

	result := int64(3)
	id, err := testStorer.Save(testCtx, domain.Evaluation{
		Expression: "1+2",
		Tokens:     []token.Token{token.NewValue(1), token.NewSymbol(token.Add), token.NewValue(2)},
		Result:     &result,
	})
	require.NoError(t, err)

	got, err := testStorer.Get(testCtx, id)
	require.NoError(t, err)
	assert.Equal(t, "1+2", got.Expression)
	require.NotNil(t, got.Result)
	assert.Equal(t, int64(3), *got.Result)
	assert.Nil(t, got.Failure)
	assert.Equal(t, token.NewSymbol(token.Add), got.Tokens[1])
}

func TestStorer_SaveFailure(t *testing.T) {
	truncateTable(t)
	defer truncateTable(t)

	id, err := testStorer.Save(testCtx, domain.Evaluation{
		Expression: "3+",
		Failure: &domain.Failure{
			Stage:   domain.StageTokenize,
			Kind:    domain.KindEndOnInfixSymbol,
			Message: "expression ended on an infix symbol",
		},
	})
	require.NoError(t, err)

	got, err := testStorer.Get(testCtx, id)
	require.NoError(t, err)
	assert.Nil(t, got.Result)
	require.NotNil(t, got.Failure)
	assert.Equal(t, domain.KindEndOnInfixSymbol, got.Failure.Kind)
	assert.Equal(t, domain.StageTokenize, got.Failure.Stage)
}

func TestStorer_GetNotFound(t *testing.T) {
	_, err := testStorer.Get(testCtx, uuid.New())
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStorer_List(t *testing.T) {
	truncateTable(t)
	defer truncateTable(t)

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		v := int64(i)
		id, err := testStorer.Save(testCtx, domain.Evaluation{
			Expression: "1",
			Result:     &v,
			CreatedAt:  base.Add(time.Duration(i) * time.Second),
		})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	page, err := testStorer.List(testCtx, nil, 2)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, ids[2], page.Items[0].ID)
	assert.True(t, page.HasMore)

	rest, err := testStorer.List(testCtx, page.NextCursor, 2)
	require.NoError(t, err)
	require.Len(t, rest.Items, 1)
	assert.Equal(t, ids[0], rest.Items[0].ID)
	assert.False(t, rest.HasMore)
}

func TestHealthChecker(t *testing.T) {
	assert.True(t, NewHealthChecker(testPool).Healthy(testCtx))
	assert.False(t, NewHealthChecker(nil).Healthy(testCtx))
}
