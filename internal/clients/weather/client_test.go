package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("lang") != "de" {
			t.Errorf("expected German descriptions, got lang=%q", r.URL.Query().Get("lang"))
		}
		if r.URL.Query().Get("units") != "metric" {
			t.Errorf("expected metric units, got units=%q", r.URL.Query().Get("units"))
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestForecast(t *testing.T) {
	srv := testServer(t, http.StatusOK, `{"weather":[{"description":"klarer himmel"}],"main":{"temp":21.4}}`)

	c := NewClient("key", "Berlin", false, false)
	c.baseURL = srv.URL

	got := c.Forecast(context.Background())
	if got != "Klarer himmel, 21°C" {
		t.Errorf("got %q", got)
	}
}

func TestForecastWithExtras(t *testing.T) {
	srv := testServer(t, http.StatusOK, `{"weather":[{"description":"leichter regen"}],"main":{"temp":10.0}}`)

	c := NewClient("key", "Berlin", true, true)
	c.baseURL = srv.URL

	got := c.Forecast(context.Background())
	if !strings.Contains(got, "Kostenlos duschen heute") {
		t.Errorf("missing rain joke:\n%s", got)
	}
	if !strings.Contains(got, "Hinweis: Vergiss den Regenschirm nicht") {
		t.Errorf("missing outfit tip:\n%s", got)
	}
}

func TestForecastAPIError(t *testing.T) {
	srv := testServer(t, http.StatusUnauthorized, `{"cod":401}`)

	c := NewClient("bad-key", "Berlin", false, false)
	c.baseURL = srv.URL

	if got := c.Forecast(context.Background()); got != unavailable {
		t.Errorf("API errors should yield the fixed sentence, got %q", got)
	}
}

func TestForecastMalformedBody(t *testing.T) {
	srv := testServer(t, http.StatusOK, `{`)

	c := NewClient("key", "Berlin", false, false)
	c.baseURL = srv.URL

	if got := c.Forecast(context.Background()); got != unavailable {
		t.Errorf("malformed bodies should yield the fixed sentence, got %q", got)
	}
}

func TestIsConfigured(t *testing.T) {
	if NewClient("", "Berlin", false, false).IsConfigured() {
		t.Error("client without API key should not be configured")
	}
	if !NewClient("key", "Berlin", false, false).IsConfigured() {
		t.Error("client with API key should be configured")
	}
}
