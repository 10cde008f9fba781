package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"agent_arena/internal/arena"
	"agent_arena/internal/config"
	"agent_arena/internal/http/middleware"
	"agent_arena/internal/ranking"
	"agent_arena/internal/service"

	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T) (*gin.Engine, *arena.MemoryStore) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	service.InitJWT()
	gin.SetMode(gin.TestMode)

	store := arena.NewMemoryStore()
	scheduler := arena.NewScheduler(store, config.DefaultTiming(), config.DefaultRules(), nil, ranking.NewUpdater(store))
	t.Cleanup(scheduler.Close)
	matchmaker := arena.NewMatchmaker(store, scheduler, config.DefaultRules())

	h := NewHandler(store, scheduler, matchmaker)

	r := gin.New()
	r.POST("/agents", h.Register)
	r.GET("/me", middleware.JWT(), h.Me)
	r.POST("/queue", middleware.JWT(), h.JoinQueue)
	r.GET("/matches/current", middleware.JWT(), h.CurrentMatch)
	r.POST("/matches/:id/ready", middleware.JWT(), h.Ready)
	r.GET("/matches/:id", h.GetMatch)
	r.GET("/rankings", h.Rankings)
	return r, store
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerAgent(t *testing.T, r *gin.Engine, name string) (id, token string) {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/agents", "", gin.H{"name": name})
	if w.Code != http.StatusCreated {
		t.Fatalf("register status = %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Agent struct {
			ID string `json:"id"`
		} `json:"agent"`
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	return resp.Agent.ID, resp.Token
}

func TestRegisterIssuesUsableToken(t *testing.T) {
	r, _ := newTestRouter(t)
	id, token := registerAgent(t, r, "crusher-9000")

	w := doJSON(t, r, http.MethodGet, "/me", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("me status = %d: %s", w.Code, w.Body.String())
	}
	var agent struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &agent); err != nil {
		t.Fatal(err)
	}
	if agent.ID != id || agent.Name != "crusher-9000" {
		t.Fatalf("agent = %+v", agent)
	}
}

func TestMeRejectsMissingToken(t *testing.T) {
	r, _ := newTestRouter(t)
	if w := doJSON(t, r, http.MethodGet, "/me", "", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d; want 401", w.Code)
	}
}

func TestQueueFlowCreatesMatch(t *testing.T) {
	r, store := newTestRouter(t)
	idA, tokenA := registerAgent(t, r, "alpha")
	_, tokenB := registerAgent(t, r, "beta")

	if w := doJSON(t, r, http.MethodPost, "/queue", tokenA, nil); w.Code != http.StatusOK {
		t.Fatalf("queue A status = %d: %s", w.Code, w.Body.String())
	}
	if w := doJSON(t, r, http.MethodPost, "/queue", tokenB, nil); w.Code != http.StatusOK {
		t.Fatalf("queue B status = %d: %s", w.Code, w.Body.String())
	}

	// Pairing happened inline on the second join.
	agentA, _ := store.GetAgent(idA)
	if agentA.Status != "IN_MATCH" {
		t.Fatalf("agent status = %s; want IN_MATCH", agentA.Status)
	}

	// Double join while paired is refused.
	if w := doJSON(t, r, http.MethodPost, "/queue", tokenA, nil); w.Code != http.StatusConflict {
		t.Fatalf("re-join status = %d; want 409", w.Code)
	}
}

func TestReadyRejectsNonParticipant(t *testing.T) {
	r, _ := newTestRouter(t)
	_, tokenA := registerAgent(t, r, "alpha")
	_, tokenB := registerAgent(t, r, "beta")
	_, tokenC := registerAgent(t, r, "gamma")

	doJSON(t, r, http.MethodPost, "/queue", tokenA, nil)
	doJSON(t, r, http.MethodPost, "/queue", tokenB, nil)

	// Discover the paired match through the participant's view.
	w := doJSON(t, r, http.MethodGet, "/matches/current", tokenA, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("current match status = %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Match struct {
			ID string `json:"id"`
		} `json:"match"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}

	w = doJSON(t, r, http.MethodPost, "/matches/"+resp.Match.ID+"/ready", tokenC, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d; want 403 for outsider", w.Code)
	}
}

func TestGetMatchUnknownID(t *testing.T) {
	r, _ := newTestRouter(t)
	if w := doJSON(t, r, http.MethodGet, "/matches/ghost", "", nil); w.Code != http.StatusNotFound {
		t.Fatalf("status = %d; want 404", w.Code)
	}
}

func TestRankingsOrdering(t *testing.T) {
	r, store := newTestRouter(t)
	idA, _ := registerAgent(t, r, "alpha")
	idB, _ := registerAgent(t, r, "beta")

	a, _ := store.GetAgent(idA)
	a.Elo = 1400
	store.PutAgent(a)
	b, _ := store.GetAgent(idB)
	b.Elo = 1100
	store.PutAgent(b)

	w := doJSON(t, r, http.MethodGet, "/rankings", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp struct {
		Rankings []struct {
			ID  string `json:"id"`
			Elo int    `json:"elo"`
		} `json:"rankings"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Rankings) != 2 || resp.Rankings[0].ID != idA {
		t.Fatalf("rankings = %+v; want alpha first", resp.Rankings)
	}
}
