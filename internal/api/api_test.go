package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"hamming-numbers/internal/store"
)

// setupTestDB creates a temporary SQLite database for testing
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	db, err := store.InitDB(dbPath)
	require.NoError(t, err)

	// Close database when test is done
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func ptr[T any](v T) *T {
	return &v
}

func decodeError(t *testing.T, body io.Reader) Error {
	t.Helper()
	var errResp Error
	require.NoError(t, json.NewDecoder(body).Decode(&errResp))
	return errResp
}

func TestServer_GetCount(t *testing.T) {
	tests := []struct {
		name           string
		params         GetCountParams
		closeDB        bool
		expectedStatus int
		expectedCount  int64
		expectedError  string
	}{
		{
			name:           "Success",
			params:         GetCountParams{Type: 5, Threshold: 100},
			expectedStatus: http.StatusOK,
			expectedCount:  34,
		},
		{
			name:           "Success_Naive",
			params:         GetCountParams{Type: 5, Threshold: 100, Strategy: ptr(GetCountParamsStrategyNaive)},
			expectedStatus: http.StatusOK,
			expectedCount:  34,
		},
		{
			name:           "Success_FirstN",
			params:         GetCountParams{Type: 1, Threshold: 100, Basis: ptr(GetCountParamsBasisFirstN)},
			expectedStatus: http.StatusOK,
			expectedCount:  7,
		},
		{
			name:           "Success_ZeroThreshold",
			params:         GetCountParams{Type: 5, Threshold: 0},
			expectedStatus: http.StatusOK,
			expectedCount:  0,
		},
		{
			name:           "Success_DBErrorFallsBackToComputing",
			params:         GetCountParams{Type: 3, Threshold: 100},
			closeDB:        true,
			expectedStatus: http.StatusOK,
			expectedCount:  20,
		},
		{
			name:           "BadRequest_UnknownStrategy",
			params:         GetCountParams{Type: 5, Threshold: 100, Strategy: ptr(GetCountParamsStrategy("sieve"))},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "unknown strategy",
		},
		{
			name:           "BadRequest_UnknownBasis",
			params:         GetCountParams{Type: 5, Threshold: 100, Basis: ptr(GetCountParamsBasis("odd"))},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "unknown prime basis",
		},
		{
			name:           "BadRequest_TypeTooLarge",
			params:         GetCountParams{Type: 1_000_000, Threshold: 100},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "type must not exceed",
		},
		{
			name:           "BadRequest_ThresholdTooLarge",
			params:         GetCountParams{Type: 5, Threshold: 1_000_000_000_001},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "threshold must not exceed",
		},
		{
			name:           "BadRequest_NaiveThresholdTooLarge",
			params:         GetCountParams{Type: 5, Threshold: 100_000_000, Strategy: ptr(GetCountParamsStrategyNaive)},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "naive strategy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDB(t)
			if tt.closeDB {
				db.Close()
			}
			server := NewServer(db, nil, DefaultLimits())
			s := server.(*Server)

			req := httptest.NewRequest(http.MethodGet, "/count", nil)
			w := httptest.NewRecorder()

			s.GetCount(w, req, tt.params)

			resp := w.Result()
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedError != "" {
				errResp := decodeError(t, resp.Body)
				assert.Contains(t, errResp.Error, tt.expectedError)
				assert.Equal(t, "INVALID_PARAMETER", errResp.Code)
				return
			}

			var countResp CountResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&countResp))
			assert.Equal(t, tt.expectedCount, countResp.Count)
			assert.Equal(t, tt.params.Type, countResp.Type)
			assert.Equal(t, tt.params.Threshold, countResp.Threshold)
			assert.False(t, countResp.Cached)
		})
	}
}

func TestServer_GetCount_Cached(t *testing.T) {
	db := setupTestDB(t)
	s := NewServer(db, nil, DefaultLimits()).(*Server)
	params := GetCountParams{Type: 7, Threshold: 1000}

	var responses []CountResponse
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		s.GetCount(w, httptest.NewRequest(http.MethodGet, "/count", nil), params)
		require.Equal(t, http.StatusOK, w.Code)

		var countResp CountResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&countResp))
		responses = append(responses, countResp)
	}

	assert.False(t, responses[0].Cached)
	assert.True(t, responses[1].Cached)
	assert.Equal(t, responses[0].Count, responses[1].Count)
	assert.Equal(t, "enumeration", responses[1].Strategy)
	assert.Equal(t, "bound", responses[1].Basis)
}

func TestServer_GetCount_WithoutStore(t *testing.T) {
	s := NewServer(nil, nil, DefaultLimits()).(*Server)

	w := httptest.NewRecorder()
	s.GetCount(w, httptest.NewRequest(http.MethodGet, "/count", nil), GetCountParams{Type: 2, Threshold: 100})
	require.Equal(t, http.StatusOK, w.Code)

	var countResp CountResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&countResp))
	assert.Equal(t, int64(7), countResp.Count)
}

func TestServer_CountAborted(t *testing.T) {
	tests := []struct {
		name   string
		limits Limits
	}{
		{name: "RequestCanceled", limits: DefaultLimits()},
		{name: "NoTimeout_RequestCanceled", limits: Limits{MaxType: 100_000, MaxThreshold: 1_000_000_000_000, MaxNaive: 10_000_000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDB(t)
			s := NewServer(db, nil, tt.limits).(*Server)

			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			req := httptest.NewRequest(http.MethodGet, "/count", nil).WithContext(ctx)
			w := httptest.NewRecorder()

			s.GetCount(w, req, GetCountParams{Type: 100_000, Threshold: 1_000_000_000_000})

			assert.Equal(t, http.StatusServiceUnavailable, w.Code)
			assert.Equal(t, "TIMEOUT", decodeError(t, w.Body).Code)

			_, found, err := store.GetCount(db, store.CountKey{Type: 100_000, Threshold: 1_000_000_000_000, Strategy: "enumeration", Basis: "bound"})
			require.NoError(t, err)
			assert.False(t, found, "aborted counts are not cached")
		})
	}
}

func TestServer_CreateSweepAborted(t *testing.T) {
	db := setupTestDB(t)
	s := NewServer(db, nil, DefaultLimits()).(*Server)

	body, err := json.Marshal(SweepParams{MaxType: 35, MaxThreshold: 1_200, Granularity: 11})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodPost, "/sweeps", bytes.NewReader(body)).WithContext(ctx)
	w := httptest.NewRecorder()

	s.CreateSweep(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "TIMEOUT", decodeError(t, w.Body).Code)

	stored, err := store.ListSweeps(db)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestServer_ListPrimes(t *testing.T) {
	tests := []struct {
		name           string
		bound          int64
		expectedStatus int
		expectedPrimes []int64
	}{
		{name: "Success", bound: 10, expectedStatus: http.StatusOK, expectedPrimes: []int64{2, 3, 5, 7}},
		{name: "Success_Empty", bound: 1, expectedStatus: http.StatusOK, expectedPrimes: []int64{}},
		{name: "BadRequest_TooLarge", bound: 10_000_000, expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewServer(nil, nil, DefaultLimits()).(*Server)

			w := httptest.NewRecorder()
			s.ListPrimes(w, httptest.NewRequest(http.MethodGet, "/primes", nil), ListPrimesParams{Bound: tt.bound})

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus != http.StatusOK {
				return
			}

			var primesResp PrimesResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&primesResp))
			assert.Equal(t, tt.expectedPrimes, primesResp.Primes)
		})
	}
}

func TestServer_ListNumbers(t *testing.T) {
	tests := []struct {
		name            string
		params          ListNumbersParams
		expectedStatus  int
		expectedNumbers []int64
	}{
		{
			name:            "Success",
			params:          ListNumbersParams{Type: 3, Threshold: 20},
			expectedStatus:  http.StatusOK,
			expectedNumbers: []int64{1, 2, 3, 4, 6, 8, 9, 12, 16, 18},
		},
		{
			name:            "Success_FirstN",
			params:          ListNumbersParams{Type: 1, Threshold: 20, Basis: ptr(ListNumbersParamsBasisFirstN)},
			expectedStatus:  http.StatusOK,
			expectedNumbers: []int64{1, 2, 4, 8, 16},
		},
		{
			name:           "BadRequest_ThresholdTooLarge",
			params:         ListNumbersParams{Type: 3, Threshold: 2_000_000},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "BadRequest_UnknownBasis",
			params:         ListNumbersParams{Type: 3, Threshold: 20, Basis: ptr(ListNumbersParamsBasis("odd"))},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewServer(nil, nil, DefaultLimits()).(*Server)

			w := httptest.NewRecorder()
			s.ListNumbers(w, httptest.NewRequest(http.MethodGet, "/numbers", nil), tt.params)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus != http.StatusOK {
				return
			}

			var numbersResp NumbersResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&numbersResp))
			assert.Equal(t, tt.expectedNumbers, numbersResp.Numbers)
		})
	}
}

func TestServer_CreateSweep(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    any
		closeDB        bool
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "Success",
			requestBody:    SweepParams{MaxType: 35, MaxThreshold: 1_200, Granularity: 11},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Success_ExplicitMinimums",
			requestBody: SweepParams{
				MinType: ptr(int64(1)), MaxType: 23,
				MinThreshold: ptr(int64(1)), MaxThreshold: 1_101,
				Granularity: 11, Basis: ptr(SweepParamsBasisFirstN),
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "BadRequest_InvalidJSON",
			requestBody:    "{invalid-json",
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid request body",
		},
		{
			name:           "BadRequest_GranularityTooLow",
			requestBody:    SweepParams{MaxType: 35, MaxThreshold: 1_200, Granularity: 10},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "granularity too low",
		},
		{
			name:           "BadRequest_MaxTypeTooLow",
			requestBody:    SweepParams{MaxType: 2, MaxThreshold: 1_200, Granularity: 11},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "max type too low",
		},
		{
			name:           "BadRequest_MaxThresholdTooLow",
			requestBody:    SweepParams{MaxType: 35, MaxThreshold: 100, Granularity: 11},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "max threshold too low",
		},
		{
			name:           "BadRequest_TooManyCells",
			requestBody:    SweepParams{MaxType: 100_000, MaxThreshold: 1_000_000_000_000, Granularity: 50_000},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "exceeds the limit of 10000 cells",
		},
		{
			name:           "BadRequest_ThresholdAxisAtInt64Limit",
			requestBody:    SweepParams{MaxType: 35, MaxThreshold: 9_223_372_036_854_775_807, Granularity: 11},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "threshold must not exceed",
		},
		{
			name:           "InternalServerError_DBError",
			requestBody:    SweepParams{MaxType: 35, MaxThreshold: 1_200, Granularity: 11},
			closeDB:        true,
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "Failed to save sweep",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDB(t)
			if tt.closeDB {
				db.Close()
			}
			s := NewServer(db, nil, DefaultLimits()).(*Server)

			var body []byte
			var err error
			if reqStr, ok := tt.requestBody.(string); ok {
				body = []byte(reqStr)
			} else {
				body, err = json.Marshal(tt.requestBody)
				require.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/sweeps", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			s.CreateSweep(w, req)

			resp := w.Result()
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedError != "" {
				errResp := decodeError(t, resp.Body)
				assert.Contains(t, errResp.Error, tt.expectedError)
				return
			}

			var sweepResp Sweep
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&sweepResp))
			assert.NotEqual(t, uuid.Nil, sweepResp.Id)
			require.NotNil(t, sweepResp.Grid)
			assert.Len(t, sweepResp.Grid.Counts, 12)
			assert.Len(t, sweepResp.Grid.Counts[0], 12)
		})
	}
}

func TestServer_GetSweep(t *testing.T) {
	db := setupTestDB(t)
	s := NewServer(db, nil, DefaultLimits()).(*Server)

	body, err := json.Marshal(SweepParams{MaxType: 35, MaxThreshold: 1_200, Granularity: 11})
	require.NoError(t, err)
	w := httptest.NewRecorder()
	s.CreateSweep(w, httptest.NewRequest(http.MethodPost, "/sweeps", bytes.NewReader(body)))
	require.Equal(t, http.StatusCreated, w.Code)

	var created Sweep
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))

	t.Run("Found", func(t *testing.T) {
		w := httptest.NewRecorder()
		s.GetSweep(w, httptest.NewRequest(http.MethodGet, "/sweeps/"+created.Id.String(), nil), created.Id)
		require.Equal(t, http.StatusOK, w.Code)

		var got Sweep
		require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
		assert.Equal(t, created.Id, got.Id)
		assert.Equal(t, created.Grid, got.Grid)
		require.NotNil(t, got.Params.MinType)
		assert.Equal(t, int64(2), *got.Params.MinType)
	})

	t.Run("NotFound", func(t *testing.T) {
		w := httptest.NewRecorder()
		s.GetSweep(w, httptest.NewRequest(http.MethodGet, "/sweeps/x", nil), uuid.New())
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "NOT_FOUND", decodeError(t, w.Body).Code)
	})

	t.Run("ListSweeps", func(t *testing.T) {
		w := httptest.NewRecorder()
		s.ListSweeps(w, httptest.NewRequest(http.MethodGet, "/sweeps", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var list []Sweep
		require.NoError(t, json.NewDecoder(w.Body).Decode(&list))
		require.Len(t, list, 1)
		assert.Equal(t, created.Id, list[0].Id)
		assert.Nil(t, list[0].Grid)
	})

	t.Run("InternalServerError_DBError", func(t *testing.T) {
		db.Close()
		w := httptest.NewRecorder()
		s.GetSweep(w, httptest.NewRequest(http.MethodGet, "/sweeps/x", nil), created.Id)
		assert.Equal(t, http.StatusInternalServerError, w.Code)

		w = httptest.NewRecorder()
		s.ListSweeps(w, httptest.NewRequest(http.MethodGet, "/sweeps", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestServer_SweepsWithoutStore(t *testing.T) {
	s := NewServer(nil, nil, DefaultLimits()).(*Server)

	w := httptest.NewRecorder()
	s.ListSweeps(w, httptest.NewRequest(http.MethodGet, "/sweeps", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRouter(t *testing.T) {
	db := setupTestDB(t)
	handler := NewRouter(NewServer(db, nil, DefaultLimits()), RouterConfig{RateLimit: 1000, RateLimitBurst: 1000})
	ts := httptest.NewServer(handler)
	defer ts.Close()

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		expectedStatus int
		expectedBody   string
	}{
		{name: "Count", method: http.MethodGet, path: "/count?type=5&threshold=100", expectedStatus: http.StatusOK, expectedBody: `"count":34`},
		{name: "Count_MissingThreshold", method: http.MethodGet, path: "/count?type=5", expectedStatus: http.StatusBadRequest, expectedBody: "INVALID_PARAMETER"},
		{name: "Count_NonNumericType", method: http.MethodGet, path: "/count?type=abc&threshold=100", expectedStatus: http.StatusBadRequest, expectedBody: "type"},
		{name: "Primes", method: http.MethodGet, path: "/primes?bound=10", expectedStatus: http.StatusOK, expectedBody: `[2,3,5,7]`},
		{name: "Numbers", method: http.MethodGet, path: "/numbers?type=2&threshold=10", expectedStatus: http.StatusOK, expectedBody: `[1,2,4,8]`},
		{name: "Sweeps_Empty", method: http.MethodGet, path: "/sweeps", expectedStatus: http.StatusOK, expectedBody: `[]`},
		{name: "Sweep_InvalidID", method: http.MethodGet, path: "/sweeps/not-a-uuid", expectedStatus: http.StatusBadRequest, expectedBody: "sweepId"},
		{name: "Sweep_Create", method: http.MethodPost, path: "/sweeps", body: `{"maxType":35,"maxThreshold":1200,"granularity":11}`, expectedStatus: http.StatusCreated, expectedBody: `"grid"`},
		{name: "Metrics", method: http.MethodGet, path: "/metrics", expectedStatus: http.StatusOK, expectedBody: "hamming_http_requests_total"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, ts.URL+tt.path, strings.NewReader(tt.body))
			require.NoError(t, err)

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			data, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			assert.Equal(t, tt.expectedStatus, resp.StatusCode, string(data))
			assert.Contains(t, string(data), tt.expectedBody)
			assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))
		})
	}
}

func TestRouter_RequestIDPassthrough(t *testing.T) {
	handler := NewRouter(NewServer(nil, nil, DefaultLimits()), RouterConfig{RateLimit: 1000, RateLimitBurst: 1000})

	id := uuid.New().String()
	req := httptest.NewRequest(http.MethodGet, "/primes?bound=5", nil)
	req.Header.Set("X-Request-Id", id)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, id, w.Header().Get("X-Request-Id"))

	req = httptest.NewRequest(http.MethodGet, "/primes?bound=5", nil)
	req.Header.Set("X-Request-Id", "not-a-uuid")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	_, err := uuid.Parse(w.Header().Get("X-Request-Id"))
	assert.NoError(t, err, "invalid request IDs are replaced")
}

func TestRouter_RateLimit(t *testing.T) {
	handler := NewRouter(NewServer(nil, nil, DefaultLimits()), RouterConfig{RateLimit: rate.Limit(0.001), RateLimitBurst: 1})

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/primes?bound=5", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/primes?bound=5", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
	assert.Equal(t, "RATE_LIMIT_EXCEEDED", decodeError(t, w.Body).Code)
}
