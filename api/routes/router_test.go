package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/leadflow-backend/internal/analytics"
	"github.com/angelmondragon/leadflow-backend/internal/auth"
	"github.com/angelmondragon/leadflow-backend/internal/export"
	"github.com/angelmondragon/leadflow-backend/internal/leads"
	"github.com/angelmondragon/leadflow-backend/internal/records"
	"github.com/angelmondragon/leadflow-backend/internal/users"
	"github.com/angelmondragon/leadflow-backend/internal/webhook"
	"github.com/angelmondragon/leadflow-backend/pkg/config"
	"github.com/angelmondragon/leadflow-backend/pkg/db/dbtest"
	"github.com/angelmondragon/leadflow-backend/pkg/enums"
	"github.com/angelmondragon/leadflow-backend/pkg/logger"
	"github.com/angelmondragon/leadflow-backend/pkg/metrics"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := &config.Config{
		App:      config.AppConfig{Env: "test"},
		JWT:      config.JWTConfig{Secret: "router-secret", Issuer: "leadflow", ExpirationMinutes: 60},
		Password: config.PasswordConfig{ArgonMemoryKB: 8 * 1024, ArgonTime: 1, ArgonParallelism: 1, ArgonSaltLen: 16, ArgonKeyLen: 32},
		CORS:     config.CORSConfig{AllowedOrigins: []string{"*"}},
		Webhook:  config.WebhookConfig{DefaultSource: "doubletick"},
	}
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	client := dbtest.New(t)
	conn := client.DB()
	registry := prometheus.NewRegistry()
	crm := metrics.NewCRMMetrics(registry)
	statuses := enums.NewLeadStatusSet(nil)

	userRepo := users.NewRepository(conn)
	leadRepo := leads.NewRepository(conn)

	authSvc, err := auth.NewService(auth.ServiceParams{DB: client, UserRepo: userRepo, JWTConfig: cfg.JWT, PasswordConfig: cfg.Password})
	if err != nil {
		t.Fatalf("auth service: %v", err)
	}
	userSvc, err := users.NewService(userRepo, cfg.Password)
	if err != nil {
		t.Fatalf("user service: %v", err)
	}
	leadSvc, err := leads.NewService(leads.ServiceParams{DB: client, Repo: leadRepo, Users: userRepo, Statuses: statuses, Metrics: crm})
	if err != nil {
		t.Fatalf("lead service: %v", err)
	}
	hookSvc, err := webhook.NewService(webhook.ServiceParams{Leads: leadRepo, Users: userRepo, Config: cfg.Webhook, Statuses: statuses, Metrics: crm, Logger: logg})
	if err != nil {
		t.Fatalf("webhook service: %v", err)
	}
	analyticsSvc, err := analytics.NewService(analytics.NewRepository(conn))
	if err != nil {
		t.Fatalf("analytics service: %v", err)
	}
	exportSvc, err := export.NewService(leadRepo)
	if err != nil {
		t.Fatalf("export service: %v", err)
	}

	handler := NewRouter(cfg, logg, Deps{
		DBPinger:    client,
		UserLoader:  userRepo,
		HTTPMetrics: metrics.NewHTTPMetrics(registry),
		Gatherer:    registry,
		Auth:        authSvc,
		Users:       userSvc,
		Leads:       leadSvc,
		Webhook:     hookSvc,
		Records:     records.NewRegistry(conn, nil),
		Analytics:   analyticsSvc,
		Export:      exportSvc,
	})
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func call(t *testing.T, srv *httptest.Server, method, path, token, body string) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequestWithContext(context.Background(), method, srv.URL+path, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	out, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, out
}

func login(t *testing.T, srv *httptest.Server, email, password string) string {
	t.Helper()
	status, body := call(t, srv, http.MethodPost, "/auth/login", "", `{"email":"`+email+`","password":"`+password+`"}`)
	if status != http.StatusOK {
		t.Fatalf("login %s: %d %s", email, status, body)
	}
	var envelope struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	return envelope.Data.Token
}

func TestRouterRoleGuardsAndFlow(t *testing.T) {
	srv := newTestServer(t)

	if status, _ := call(t, srv, http.MethodGet, "/health", "", ""); status != http.StatusOK {
		t.Fatalf("health: %d", status)
	}
	if status, _ := call(t, srv, http.MethodGet, "/health/ready", "", ""); status != http.StatusOK {
		t.Fatalf("ready: %d", status)
	}

	status, body := call(t, srv, http.MethodPost, "/auth/bootstrap", "", `{"name":"Root","email":"root@example.com","password":"rootpass1"}`)
	if status != http.StatusCreated {
		t.Fatalf("bootstrap: %d %s", status, body)
	}
	if status, _ := call(t, srv, http.MethodPost, "/auth/bootstrap", "", `{"name":"Again","email":"again@example.com","password":"rootpass1"}`); status != http.StatusForbidden {
		t.Fatalf("second bootstrap: expected 403 got %d", status)
	}

	admin := login(t, srv, "root@example.com", "rootpass1")
	status, body = call(t, srv, http.MethodPost, "/auth/register", admin, `{"name":"Agent","email":"agent@example.com","password":"agentpass1","role":"AGENT"}`)
	if status != http.StatusCreated {
		t.Fatalf("register: %d %s", status, body)
	}
	agent := login(t, srv, "agent@example.com", "agentpass1")

	if status, _ := call(t, srv, http.MethodGet, "/leads", "", ""); status != http.StatusUnauthorized {
		t.Fatalf("no token: expected 401 got %d", status)
	}
	adminRoutes := []struct{ method, path, body string }{
		{http.MethodGet, "/leads", ""},
		{http.MethodGet, "/users", ""},
		{http.MethodGet, "/analytics/overview", ""},
		{http.MethodGet, "/export/all", ""},
		{http.MethodPost, "/customers", `{"customerId":"C-1"}`},
		{http.MethodPost, "/auth/register", `{"name":"x","email":"x@example.com","password":"xxxxxxxx","role":"AGENT"}`},
	}
	for _, rt := range adminRoutes {
		if status, _ := call(t, srv, rt.method, rt.path, agent, rt.body); status != http.StatusForbidden {
			t.Fatalf("agent %s %s: expected 403 got %d", rt.method, rt.path, status)
		}
	}

	status, body = call(t, srv, http.MethodPost, "/customers", admin, `{"customerId":"C-1","name":"Ana"}`)
	if status != http.StatusCreated {
		t.Fatalf("create customer: %d %s", status, body)
	}
	status, body = call(t, srv, http.MethodGet, "/customers", agent, "")
	if status != http.StatusOK || !bytes.Contains(body, []byte(`"customerId":"C-1"`)) {
		t.Fatalf("agent list customers: %d %s", status, body)
	}

	status, body = call(t, srv, http.MethodPost, "/integrations/webhook", "", `{"lead":{"id":"x1","name":"Hook","phone":"555"},"agent":{"email":"agent@example.com"}}`)
	if status != http.StatusCreated {
		t.Fatalf("webhook: %d %s", status, body)
	}
	status, body = call(t, srv, http.MethodGet, "/leads/my", agent, "")
	if status != http.StatusOK || !bytes.Contains(body, []byte(`"customerName":"Hook"`)) {
		t.Fatalf("agent leads: %d %s", status, body)
	}

	status, body = call(t, srv, http.MethodGet, "/metrics", "", "")
	if status != http.StatusOK || !bytes.Contains(body, []byte("leadflow_webhook_events_total")) {
		t.Fatalf("metrics: %d", status)
	}
}
