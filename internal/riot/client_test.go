package riot

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(url string) *Client {
	c := NewClientWithKey("RGAPI-test", url)
	c.sleep = func(context.Context, time.Duration) error { return nil }
	return c
}

func TestGetMatch_DecodesPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Riot-Token") != "RGAPI-test" {
			t.Errorf("missing api key header")
		}
		w.Write([]byte(`{"metadata":{"matchId":"NA1_1"},"info":{"gameDuration":1800,"participants":[{"participantId":1,"puuid":"p1","teamId":100,"kills":4}]}}`))
	}))
	defer srv.Close()

	m, err := newTestClient(srv.URL).GetMatch(context.Background(), "NA1_1")
	if err != nil {
		t.Fatalf("GetMatch: %v", err)
	}
	if m.Metadata.MatchID != "NA1_1" || m.Info.GameDuration != 1800 {
		t.Errorf("unexpected match %+v", m.Metadata)
	}
	if len(m.Info.Participants) != 1 || m.Info.Participants[0].Kills != 4 {
		t.Errorf("participants not decoded: %+v", m.Info.Participants)
	}
}

func TestDoRequest_RetriesOn429(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`["NA1_1","NA1_2"]`))
	}))
	defer srv.Close()

	ids, err := newTestClient(srv.URL).GetMatchIDs(context.Background(), "p1", 2)
	if err != nil {
		t.Fatalf("GetMatchIDs: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 calls (one retry), got %d", calls)
	}
	if len(ids) != 2 {
		t.Errorf("expected 2 ids, got %v", ids)
	}
}

func TestDoRequest_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).GetTimeline(context.Background(), "NA1_404")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestReserve_ShortWindow(t *testing.T) {
	c := NewClientWithKey("k", "")
	now := time.Unix(1000, 0)
	for i := 0; i < requestsPerSecond; i++ {
		if wait := c.reserve(now); wait != 0 {
			t.Fatalf("request %d should not wait, got %v", i, wait)
		}
	}
	if wait := c.reserve(now); wait <= 0 {
		t.Error("expected a wait once the per-second budget is spent")
	}
	if wait := c.reserve(now.Add(2 * time.Second)); wait != 0 {
		t.Errorf("expected window to clear after 2s, got wait %v", wait)
	}
}
