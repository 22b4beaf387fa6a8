package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/decker502/slingmath/pkg/player"
)

func newTestServer() (*Server, *player.LocalService) {
	svc := player.NewLocalService(nil, rand.New(rand.NewSource(1)))
	return NewServer(svc), svc
}

func TestHealthEndpoint(t *testing.T) {
	server, _ := newTestServer()

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	server.Routes().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
}

func TestRootEndpoint(t *testing.T) {
	server, _ := newTestServer()

	req := httptest.NewRequest("GET", "/api/", nil)
	w := httptest.NewRecorder()
	server.Routes().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body["message"] != "SlingMath API" {
		t.Errorf("unexpected message %q", body["message"])
	}
}

func TestQuestionEndpoint(t *testing.T) {
	server, _ := newTestServer()

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{"valid level", "/api/question/7", http.StatusOK},
		{"non numeric level", "/api/question/abc", http.StatusBadRequest},
		{"zero level", "/api/question/0", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			w := httptest.NewRecorder()
			server.Routes().ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("Expected status %d, got %d (%s)", tt.wantStatus, w.Code, w.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				return
			}
			var q player.Question
			if err := json.NewDecoder(w.Body).Decode(&q); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if q.Operation != player.OperationSubtraction || len(q.Options) != 3 {
				t.Errorf("unexpected question %+v", q)
			}
		})
	}
}

func TestAnswerEndpoint(t *testing.T) {
	server, svc := newTestServer()
	if _, err := svc.CreateOrGetPlayer(context.Background(), "p1"); err != nil {
		t.Fatal(err)
	}

	body, _ := json.Marshal(player.AnswerRequest{PlayerID: "p1", SelectedAnswer: 12, CorrectAnswer: 12, Level: 1})
	req := httptest.NewRequest("POST", "/api/answer", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	server.Routes().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d (%s)", w.Code, w.Body.String())
	}
	var res player.AnswerResult
	if err := json.NewDecoder(w.Body).Decode(&res); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !res.Correct || res.CoinsEarned != 5 || res.NewLevel != 2 || res.TotalCoins != 5 {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestAnswerEndpointErrors(t *testing.T) {
	server, _ := newTestServer()

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"invalid json", "{", http.StatusUnprocessableEntity},
		{"missing player", `{"selectedAnswer":1}`, http.StatusUnprocessableEntity},
		{"unknown player", `{"playerId":"ghost","selectedAnswer":1,"correctAnswer":1,"level":1}`, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/answer", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()
			server.Routes().ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func TestSelectSkinEndpoint(t *testing.T) {
	server, svc := newTestServer()
	ctx := context.Background()
	if _, err := svc.CreateOrGetPlayer(ctx, "p2"); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("POST", "/api/select-skin/p2/3", nil)
	w := httptest.NewRecorder()
	server.Routes().ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("selecting a locked skin: expected 400, got %d", w.Code)
	}

	if _, err := svc.UnlockSkin(ctx, "p2", 3); err != nil {
		t.Fatal(err)
	}
	w = httptest.NewRecorder()
	server.Routes().ServeHTTP(w, httptest.NewRequest("POST", "/api/select-skin/p2/3", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d (%s)", w.Code, w.Body.String())
	}
	var p player.Profile
	if err := json.NewDecoder(w.Body).Decode(&p); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if p.SelectedSkin != 3 {
		t.Errorf("expected selected skin 3, got %d", p.SelectedSkin)
	}
}

func TestUnlockSkinEndpoint(t *testing.T) {
	server, svc := newTestServer()
	ts := httptest.NewServer(server.Routes())
	defer ts.Close()

	ctx := context.Background()
	client := player.NewHTTPClient(ts.URL, 2*time.Second)
	if _, err := svc.CreateOrGetPlayer(ctx, "p3"); err != nil {
		t.Fatal(err)
	}

	p, err := client.UnlockSkin(ctx, "p3", 6)
	if err != nil {
		t.Fatalf("UnlockSkin() error = %v", err)
	}
	if !p.HasSkin(6) {
		t.Errorf("expected skin 6 unlocked, got %v", p.UnlockedSkins)
	}
	if _, err := client.SelectSkin(ctx, "p3", 6); err != nil {
		t.Fatalf("SelectSkin() after unlock error = %v", err)
	}

	w := httptest.NewRecorder()
	server.Routes().ServeHTTP(w, httptest.NewRequest("POST", "/api/unlock-skin/p3/abc", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("non numeric skin: expected 400, got %d", w.Code)
	}

	if _, err := client.UnlockSkin(ctx, "nobody", 1); !errors.Is(err, player.ErrPlayerNotFound) {
		t.Errorf("unknown player: expected ErrPlayerNotFound, got %v", err)
	}
}

// TestHTTPClientRoundTrip 通过 HTTPClient 访问真实路由
func TestHTTPClientRoundTrip(t *testing.T) {
	server, _ := newTestServer()
	ts := httptest.NewServer(server.Routes())
	defer ts.Close()

	ctx := context.Background()
	client := player.NewHTTPClient(ts.URL, 2*time.Second)

	p, err := client.CreateOrGetPlayer(ctx, "")
	if err != nil {
		t.Fatalf("CreateOrGetPlayer() error = %v", err)
	}
	if p.PlayerID == "" {
		t.Fatal("expected generated player id")
	}

	q, err := client.GetQuestion(ctx, p.QuestionLevel)
	if err != nil {
		t.Fatalf("GetQuestion() error = %v", err)
	}

	res, err := client.SubmitAnswer(ctx, player.AnswerRequest{
		PlayerID:       p.PlayerID,
		SelectedAnswer: q.CorrectAnswer,
		CorrectAnswer:  q.CorrectAnswer,
		Level:          q.Level,
	})
	if err != nil {
		t.Fatalf("SubmitAnswer() error = %v", err)
	}
	if !res.Correct || res.NewLevel != 2 {
		t.Errorf("unexpected result %+v", res)
	}

	skin, err := client.GetEquippedSkin(ctx, p.PlayerID)
	if err != nil {
		t.Fatalf("GetEquippedSkin() error = %v", err)
	}
	if skin != 0 {
		t.Errorf("expected default skin 0, got %d", skin)
	}

	if _, err := client.GetPlayer(ctx, "nobody"); !errors.Is(err, player.ErrPlayerNotFound) {
		t.Errorf("expected ErrPlayerNotFound, got %v", err)
	}
	if _, err := client.SelectSkin(ctx, p.PlayerID, 6); !errors.Is(err, player.ErrSkinNotOwned) {
		t.Errorf("expected ErrSkinNotOwned, got %v", err)
	}
}
