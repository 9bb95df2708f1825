package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fundchain/campaign-engine/internal/auth"
	campaignhttp "github.com/fundchain/campaign-engine/internal/campaigns/http"

	"github.com/fundchain/campaign-engine/internal/campaigns/engine"
	"github.com/fundchain/campaign-engine/internal/campaigns/events"
	"github.com/fundchain/campaign-engine/internal/campaigns/payout"
	"github.com/fundchain/campaign-engine/internal/campaigns/store"
)

const (
	creatorAddr = "0xAAaaAAaaAAaaAAaaAAaaAAaaAAaaAAaaAAaaAAaa"
	backerAddr  = "0xBBbbBBbbBBbbBBbbBBbbBBbbBBbbBBbbBBbbBBbb"
)

func setupRouter(t *testing.T) (*gin.Engine, func(time.Duration)) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	st := store.NewMemory()
	eng := engine.New(st, payout.Noop{}, events.NewEmitter(st)).
		WithClock(func() time.Time { return now })

	r := gin.New()
	api := r.Group("/api/v1")
	api.Use(auth.WithAccount())
	campaignhttp.Register(api.Group("/projects"), eng, nil)

	advance := func(d time.Duration) { now = now.Add(d) }
	return r, advance
}

func doJSON(t *testing.T, r *gin.Engine, method, path, wallet string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if wallet != "" {
		req.Header.Set("X-Wallet-Address", wallet)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createProject(t *testing.T, r *gin.Engine, goal int64, deadline time.Time) int64 {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/v1/projects", creatorAddr, gin.H{
		"title":        "solar farm",
		"description":  "community solar installation",
		"funding_goal": goal,
		"deadline":     deadline.Unix(),
		"category":     "energy",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		ProjectID int64 `json:"project_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.ProjectID
}

func TestCreateProjectEndpoint(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("creates and returns id", func(t *testing.T) {
		r, _ := setupRouter(t)
		id := createProject(t, r, 1000, base.Add(24*time.Hour))
		assert.Equal(t, int64(1), id)
	})

	t.Run("requires wallet address", func(t *testing.T) {
		r, _ := setupRouter(t)
		w := doJSON(t, r, http.MethodPost, "/api/v1/projects", "", gin.H{"title": "x"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects malformed wallet address", func(t *testing.T) {
		r, _ := setupRouter(t)
		w := doJSON(t, r, http.MethodPost, "/api/v1/projects", "not-an-address", gin.H{"title": "x"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects missing title", func(t *testing.T) {
		r, _ := setupRouter(t)
		w := doJSON(t, r, http.MethodPost, "/api/v1/projects", creatorAddr, gin.H{"funding_goal": 100})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects past deadline", func(t *testing.T) {
		r, _ := setupRouter(t)
		w := doJSON(t, r, http.MethodPost, "/api/v1/projects", creatorAddr, gin.H{
			"title":        "stale",
			"funding_goal": 100,
			"deadline":     base.Add(-time.Hour).Unix(),
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestFundEndpoint(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("funds a project", func(t *testing.T) {
		r, _ := setupRouter(t)
		id := createProject(t, r, 1000, base.Add(24*time.Hour))

		w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/projects/%d/fund", id), backerAddr, gin.H{"amount": 600})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/projects/%d", id), "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Project struct {
				CurrentFunding int64  `json:"current_funding"`
				Status         string `json:"status"`
			} `json:"project"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(600), resp.Project.CurrentFunding)
		assert.Equal(t, "active", resp.Project.Status)
	})

	t.Run("unknown project is 404", func(t *testing.T) {
		r, _ := setupRouter(t)
		w := doJSON(t, r, http.MethodPost, "/api/v1/projects/42/fund", backerAddr, gin.H{"amount": 10})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("self funding is 409", func(t *testing.T) {
		r, _ := setupRouter(t)
		id := createProject(t, r, 1000, base.Add(24*time.Hour))
		w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/projects/%d/fund", id), creatorAddr, gin.H{"amount": 10})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("expired project is 409", func(t *testing.T) {
		r, advance := setupRouter(t)
		id := createProject(t, r, 1000, base.Add(time.Hour))
		advance(2 * time.Hour)
		w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/projects/%d/fund", id), backerAddr, gin.H{"amount": 10})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("zero amount is 400", func(t *testing.T) {
		r, _ := setupRouter(t)
		id := createProject(t, r, 1000, base.Add(24*time.Hour))
		w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/projects/%d/fund", id), backerAddr, gin.H{"amount": 0})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestWithdrawEndpoint(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("creator withdraws a funded campaign", func(t *testing.T) {
		r, _ := setupRouter(t)
		id := createProject(t, r, 1000, base.Add(24*time.Hour))
		w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/projects/%d/fund", id), backerAddr, gin.H{"amount": 1100})
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/projects/%d/withdraw", id), creatorAddr, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		// Second withdrawal conflicts: nothing left.
		w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/projects/%d/withdraw", id), creatorAddr, nil)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("non-creator is 403", func(t *testing.T) {
		r, _ := setupRouter(t)
		id := createProject(t, r, 100, base.Add(24*time.Hour))
		w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/projects/%d/fund", id), backerAddr, gin.H{"amount": 100})
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/projects/%d/withdraw", id), backerAddr, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("still active campaign is 409", func(t *testing.T) {
		r, _ := setupRouter(t)
		id := createProject(t, r, 1000, base.Add(24*time.Hour))
		w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/projects/%d/fund", id), backerAddr, gin.H{"amount": 100})
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/projects/%d/withdraw", id), creatorAddr, nil)
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestReadEndpoints(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("list and status checks", func(t *testing.T) {
		r, advance := setupRouter(t)
		id := createProject(t, r, 1000, base.Add(time.Hour))

		w := doJSON(t, r, http.MethodGet, "/api/v1/projects", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var listResp struct {
			Projects []json.RawMessage `json:"projects"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
		assert.Len(t, listResp.Projects, 1)

		advance(2 * time.Hour)
		w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/projects/%d/expired", id), "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var expResp struct {
			Expired bool `json:"expired"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &expResp))
		assert.True(t, expResp.Expired)

		w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/projects/%d/funded", id), "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var fundResp struct {
			Funded bool `json:"funded"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fundResp))
		assert.False(t, fundResp.Funded)
	})

	t.Run("backers and caller checks", func(t *testing.T) {
		r, _ := setupRouter(t)
		id := createProject(t, r, 1000, base.Add(24*time.Hour))
		w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/projects/%d/fund", id), backerAddr, gin.H{"amount": 250})
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/projects/%d/backers", id), "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var backersResp struct {
			Backers []struct {
				Backer string `json:"backer"`
				Amount int64  `json:"amount"`
			} `json:"backers"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &backersResp))
		require.Len(t, backersResp.Backers, 1)
		assert.Equal(t, int64(250), backersResp.Backers[0].Amount)

		w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/projects/%d/creator", id), creatorAddr, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var creatorResp struct {
			Creator bool `json:"creator"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &creatorResp))
		assert.True(t, creatorResp.Creator)

		w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/projects/%d/backer", id), backerAddr, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var backerResp struct {
			Backer bool `json:"backer"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &backerResp))
		assert.True(t, backerResp.Backer)

		// Caller checks need an identity.
		w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/projects/%d/backer", id), "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown project is 404, bad id is 400", func(t *testing.T) {
		r, _ := setupRouter(t)
		w := doJSON(t, r, http.MethodGet, "/api/v1/projects/42", "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		w = doJSON(t, r, http.MethodGet, "/api/v1/projects/abc", "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
