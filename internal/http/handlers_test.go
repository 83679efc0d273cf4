package http

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/airflow-ai/congestion-dashboard/internal/controller"
	"github.com/airflow-ai/congestion-dashboard/internal/domain"
	"github.com/airflow-ai/congestion-dashboard/internal/web"
)

type stubService struct {
	mu       sync.Mutex
	healthy  bool
	err      error
	points   int
	requests []domain.AnalyzeRequest
}

func (s *stubService) Health(context.Context) (*domain.Health, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.healthy {
		return &domain.Health{Status: "down"}, nil
	}
	return &domain.Health{Status: "healthy"}, nil
}

func (s *stubService) Analyze(_ context.Context, in domain.AnalyzeRequest) (*domain.AnalysisResult, error) {
	s.mu.Lock()
	s.requests = append(s.requests, in)
	s.mu.Unlock()
	return s.result()
}

func (s *stubService) Simulate(context.Context) (*domain.AnalysisResult, error) { return s.result() }

func (s *stubService) result() (*domain.AnalysisResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	start := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	f := make(domain.Forecast, s.points)
	for i := range f {
		f[i] = domain.ForecastPoint{
			Timestamp:          start.Add(time.Duration(i) * 15 * time.Minute).Format(time.RFC3339),
			PredictedCount:     700,
			UtilizationRate:    70,
			RiskLevel:          domain.RiskMedium,
			ConfidenceInterval: domain.ConfidenceInterval{Lower: 650, Upper: 750},
		}
	}
	return &domain.AnalysisResult{
		CurrentMetrics:  domain.CurrentMetrics{CCTVCount: 450, TerminalCapacity: 1000, UtilizationRate: 45},
		Forecast:        f,
		InsightsText:    "steady flow",
		RiskLevel:       domain.RiskMedium,
		Recommendations: []string{"keep lanes open"},
	}, nil
}

func newTestApp(t *testing.T, svc controller.Service) (*fiber.App, *controller.Controller) {
	t.Helper()
	ctl := controller.New(svc, controller.Options{RevealStep: time.Millisecond, Location: time.UTC})
	ctl.CheckHealth(context.Background())
	t.Cleanup(ctl.Close)

	app := fiber.New()
	Register(app, ctl, web.NewRenderer())
	return app, ctl
}

func doRequest(t *testing.T, app *fiber.App, req *http.Request) *http.Response {
	t.Helper()
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp
}

func decodeError(t *testing.T, resp *http.Response) errorResponse {
	t.Helper()
	defer resp.Body.Close()
	var e errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return e
}

func TestHealthzReportsConnectivity(t *testing.T) {
	svc := &stubService{healthy: false}
	app, ctl := newTestApp(t, svc)

	resp := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `"offline"`) {
		t.Fatalf("body = %s, want offline", body)
	}

	svc.mu.Lock()
	svc.healthy = true
	svc.mu.Unlock()
	ctl.CheckHealth(context.Background())

	resp = doRequest(t, app, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	body, _ = io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `"online"`) {
		t.Fatalf("body = %s, want online", body)
	}
}

func TestSimulateWhileDisconnectedConflicts(t *testing.T) {
	app, _ := newTestApp(t, &stubService{healthy: false, points: 4})

	resp := doRequest(t, app, httptest.NewRequest(http.MethodPost, "/api/simulate", nil))
	if resp.StatusCode != fiber.StatusConflict {
		t.Fatalf("status = %d, want 409", resp.StatusCode)
	}
	if e := decodeError(t, resp); e.Code != codeServiceUnavailable {
		t.Fatalf("code = %q", e.Code)
	}
}

func TestSimulateReturnsState(t *testing.T) {
	app, _ := newTestApp(t, &stubService{healthy: true, points: 4})

	resp := doRequest(t, app, httptest.NewRequest(http.MethodPost, "/api/simulate", nil))
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var st struct {
		Connected bool `json:"connected"`
		View      *struct {
			Heatmap struct {
				TimeSlots []string          `json:"time_slots"`
				Rows      []json.RawMessage `json:"rows"`
			} `json:"heatmap"`
		} `json:"view"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		t.Fatal(err)
	}
	if !st.Connected || st.View == nil {
		t.Fatal("expected a connected state with a view")
	}
	if got := len(st.View.Heatmap.TimeSlots); got != 4 {
		t.Fatalf("time slots = %d, want 4", got)
	}
	if got := len(st.View.Heatmap.Rows); got != 5 {
		t.Fatalf("rows = %d, want 5", got)
	}
}

func TestSimulateFailureIsBadGateway(t *testing.T) {
	app, _ := newTestApp(t, &stubService{healthy: true, err: errors.New("boom")})

	resp := doRequest(t, app, httptest.NewRequest(http.MethodPost, "/api/simulate", nil))
	if resp.StatusCode != fiber.StatusBadGateway {
		t.Fatalf("status = %d, want 502", resp.StatusCode)
	}
	if e := decodeError(t, resp); e.Code != codeAnalysisFailed || !strings.Contains(e.Error, "boom") {
		t.Fatalf("error = %+v", e)
	}
}

func TestAnalyzeJSONForwardsInput(t *testing.T) {
	svc := &stubService{healthy: true, points: 3}
	app, _ := newTestApp(t, svc)

	body := `{"cctv_count":"500","terminal_capacity":"1200","active_flights":"20","arriving_flights":"12","departing_flights":"8"}`
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := doRequest(t, app, req)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()
	if len(svc.requests) != 1 {
		t.Fatalf("requests = %d, want 1", len(svc.requests))
	}
	got := svc.requests[0]
	if got.CCTVCount == nil || *got.CCTVCount != 500 {
		t.Fatalf("cctv_count = %v", got.CCTVCount)
	}
	if got.FlightSchedule.DepartingFlights == nil || *got.FlightSchedule.DepartingFlights != 8 {
		t.Fatalf("departing = %v", got.FlightSchedule.DepartingFlights)
	}
}

func TestFormPostsRedirectHome(t *testing.T) {
	app, ctl := newTestApp(t, &stubService{healthy: true, points: 3})

	form := url.Values{"mode": {"simulated"}}
	req := httptest.NewRequest(http.MethodPost, "/mode", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp := doRequest(t, app, req)
	if resp.StatusCode != fiber.StatusSeeOther || resp.Header.Get("Location") != "/" {
		t.Fatalf("status = %d location = %q", resp.StatusCode, resp.Header.Get("Location"))
	}
	if ctl.State().Mode != controller.ModeSimulated {
		t.Fatalf("mode = %q", ctl.State().Mode)
	}

	resp = doRequest(t, app, httptest.NewRequest(http.MethodPost, "/simulate", nil))
	if resp.StatusCode != fiber.StatusSeeOther {
		t.Fatalf("simulate status = %d", resp.StatusCode)
	}
	if ctl.State().View == nil {
		t.Fatal("simulate form did not produce a view")
	}
}

func TestDashboardPage(t *testing.T) {
	app, _ := newTestApp(t, &stubService{healthy: true, points: 3})

	resp := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/", nil))
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content type = %q", ct)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `value="450"`) {
		t.Fatal("manual form is not pre-filled with defaults")
	}
}

func TestHeatmapAndChartsNeedAView(t *testing.T) {
	app, _ := newTestApp(t, &stubService{healthy: true, points: 4})

	resp := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/api/heatmap", nil))
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("heatmap status = %d, want 404", resp.StatusCode)
	}
	resp = doRequest(t, app, httptest.NewRequest(http.MethodGet, "/charts/forecast.svg", nil))
	if resp.StatusCode != fiber.StatusNoContent {
		t.Fatalf("chart status = %d, want 204", resp.StatusCode)
	}

	doRequest(t, app, httptest.NewRequest(http.MethodPost, "/api/simulate", nil))

	resp = doRequest(t, app, httptest.NewRequest(http.MethodGet, "/api/charts", nil))
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("charts status = %d", resp.StatusCode)
	}
	for _, path := range []string{"/charts/forecast.svg", "/charts/utilization.svg", "/charts/risk.svg"} {
		resp = doRequest(t, app, httptest.NewRequest(http.MethodGet, path, nil))
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("%s status = %d", path, resp.StatusCode)
		}
		if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
			t.Fatalf("%s content type = %q", path, ct)
		}
	}
}

func TestRequestIDHeader(t *testing.T) {
	app, _ := newTestApp(t, &stubService{healthy: true})

	req := httptest.NewRequest(http.MethodGet, "/api/state", nil)
	req.Header.Set(fiber.HeaderXRequestID, "abc-123")
	resp := doRequest(t, app, req)
	if got := resp.Header.Get(fiber.HeaderXRequestID); got != "abc-123" {
		t.Fatalf("request id = %q", got)
	}
}

type breakerService struct {
	*stubService
	state string
}

func (b breakerService) BreakerState() string { return b.state }

func TestHealthzIncludesBreakerState(t *testing.T) {
	app, _ := newTestApp(t, breakerService{stubService: &stubService{healthy: true}, state: "half-open"})

	resp := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "online" || body["breaker"] != "half-open" {
		t.Fatalf("body = %v", body)
	}
}

func TestEventsStreamRevealFrames(t *testing.T) {
	app, ctl := newTestApp(t, &stubService{healthy: true, points: 2})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.ShutdownWithTimeout(time.Second) })

	resp, err := http.Get("http://" + ln.Addr().String() + "/api/events")
	if err != nil {
		t.Fatalf("GET /api/events: %v", err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("content type = %q", ct)
	}

	frames := make(chan string, 256)
	go func() {
		defer close(frames)
		sc := bufio.NewScanner(resp.Body)
		for sc.Scan() {
			if line := sc.Text(); strings.HasPrefix(line, "data: ") {
				frames <- strings.TrimPrefix(line, "data: ")
			}
		}
	}()

	next := func() string {
		t.Helper()
		select {
		case f, ok := <-frames:
			if !ok {
				t.Fatal("event stream closed")
			}
			return f
		case <-time.After(3 * time.Second):
			t.Fatal("timed out waiting for an event frame")
		}
		return ""
	}

	if first := next(); !strings.Contains(first, `"type":"status"`) || !strings.Contains(first, `"connected":true`) {
		t.Fatalf("first frame = %s", first)
	}

	if err := ctl.Simulate(context.Background()); err != nil {
		t.Fatalf("Simulate: %v", err)
	}

	want := map[string]bool{
		`"zone":0,"slot":0`: false,
		`"zone":0,"slot":1`: false,
		`"zone":4,"slot":0`: false,
	}
	reveals := 0
	for reveals < 10 {
		f := next()
		if !strings.Contains(f, `"type":"reveal"`) {
			continue
		}
		reveals++
		for k := range want {
			if strings.Contains(f, k) {
				want[k] = true
			}
		}
	}
	for k, seen := range want {
		if !seen {
			t.Errorf("no reveal frame containing %s", k)
		}
	}
}
