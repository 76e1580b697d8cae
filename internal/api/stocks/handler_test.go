package stocks

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "excer/internal/domain/stocks"
	"excer/pkg/errors"
	"excer/pkg/logger"
)

type stubRepo struct {
	snapshot *domain.Snapshot
	err      error
}

func (r *stubRepo) Save(ctx context.Context, snapshot *domain.Snapshot) error { return nil }

func (r *stubRepo) Load(ctx context.Context) (*domain.Snapshot, error) {
	return r.snapshot, r.err
}

func TestHandleStocks_ServesSnapshot(t *testing.T) {
	repo := &stubRepo{
		snapshot: &domain.Snapshot{
			Stocks: []domain.StockAggregate{
				{Symbol: "GME", Mentions: 5, UniquePosts: 3, TrendingScore: 12.5},
			},
			LastUpdated:  1700000000000,
			TotalSources: 4,
			DataSource:   domain.DataSourceReddit,
		},
	}
	handler := New(repo, logger.Get())

	rec := httptest.NewRecorder()
	handler.HandleStocks(rec, httptest.NewRequest(http.MethodGet, "/api/stocks", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got domain.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, int64(1700000000000), got.LastUpdated)
	require.Len(t, got.Stocks, 1)
	assert.Equal(t, "GME", got.Stocks[0].Symbol)
}

func TestHandleStocks_EmptyStoreServesEmptySnapshot(t *testing.T) {
	handler := New(&stubRepo{}, logger.Get())

	rec := httptest.NewRecorder()
	handler.HandleStocks(rec, httptest.NewRequest(http.MethodGet, "/api/stocks", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.JSONEq(t, "[]", string(got["stocks"]))
	assert.JSONEq(t, "0", string(got["lastUpdated"]))
}

func TestHandleStocks_LoadFailure(t *testing.T) {
	handler := New(&stubRepo{err: errors.Wrapf(errors.ErrPersistence, "redis down")}, logger.Get())

	rec := httptest.NewRecorder()
	handler.HandleStocks(rec, httptest.NewRequest(http.MethodGet, "/api/stocks", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandleStocks_RejectsNonGet(t *testing.T) {
	handler := New(&stubRepo{}, logger.Get())

	rec := httptest.NewRecorder()
	handler.HandleStocks(rec, httptest.NewRequest(http.MethodPost, "/api/stocks", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
