package riot

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// testClient returns a Client pointed at a local test server.
func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &Client{
		apiKey:  "test-key",
		baseURL: srv.URL,
		http:    srv.Client(),
	}
}

func TestNewClient_UnknownRegion(t *testing.T) {
	if _, err := NewClient("key", "narnia"); err == nil {
		t.Error("expected error for unknown region")
	}
	if _, err := NewClient("", "americas"); err == nil {
		t.Error("expected error for empty API key")
	}
}

func TestGetMatch_SendsTokenHeader(t *testing.T) {
	var gotToken, gotPath string
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-Riot-Token")
		gotPath = r.URL.Path
		w.Write([]byte(`{"metadata":{"matchId":"NA1_42"},"info":{"queueId":420}}`))
	})

	match, err := client.GetMatch(context.Background(), "NA1_42")
	if err != nil {
		t.Fatalf("GetMatch: %v", err)
	}
	if gotToken != "test-key" {
		t.Errorf("expected API key header, got %q", gotToken)
	}
	if gotPath != "/lol/match/v5/matches/NA1_42" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if match.Metadata.MatchID != "NA1_42" || match.Info.QueueID != 420 {
		t.Errorf("unexpected payload %+v", match)
	}
}

func TestGetMatchIDs_QueryParams(t *testing.T) {
	var gotQuery string
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`["NA1_1","NA1_2"]`))
	})

	ids, err := client.GetMatchIDs(context.Background(), "some-puuid", 2, 1700000000)
	if err != nil {
		t.Fatalf("GetMatchIDs: %v", err)
	}
	if len(ids) != 2 || ids[0] != "NA1_1" {
		t.Errorf("unexpected ids %v", ids)
	}
	if gotQuery != "count=2&startTime=1700000000" {
		t.Errorf("unexpected query %q", gotQuery)
	}
}

func TestGet_RetriesServerErrors(t *testing.T) {
	calls := 0
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"puuid":"p","gameName":"Name","tagLine":"TAG"}`))
	})

	account, err := client.GetAccountByRiotID(context.Background(), "Name", "TAG")
	if err != nil {
		t.Fatalf("expected retries to recover: %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 attempts, got %d", calls)
	}
	if account.PUUID != "p" {
		t.Errorf("unexpected account %+v", account)
	}
}

func TestGet_NotFoundIsPermanent(t *testing.T) {
	calls := 0
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	})

	if _, err := client.GetMatch(context.Background(), "NA1_MISSING"); err == nil {
		t.Fatal("expected error for 404")
	}
	if calls != 1 {
		t.Errorf("404 should not be retried, got %d attempts", calls)
	}
}

func TestGet_GivesUpAfterMaxAttempts(t *testing.T) {
	calls := 0
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	})

	if _, err := client.GetMatch(context.Background(), "NA1_42"); err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if calls != maxAttempts {
		t.Errorf("expected %d attempts, got %d", maxAttempts, calls)
	}
}

func TestWaitForRateLimit_PrunesWindow(t *testing.T) {
	c := &Client{}
	old := time.Now().Add(-2 * time.Minute)
	for i := 0; i < callsPerMinute; i++ {
		c.window = append(c.window, old)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := c.waitForRateLimit(ctx); err != nil {
		t.Fatalf("expected stale window entries to be pruned: %v", err)
	}
	if len(c.window) != 1 {
		t.Errorf("expected 1 live entry after pruning, got %d", len(c.window))
	}
}
