package bootstrap

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
)

func newTestApp(t *testing.T, h *Handler) *fiber.App {
	t.Helper()
	app := fiber.New()
	admin := app.Group("/admin")
	admin.Post("/bootstrap", h.HandleBootstrap)
	admin.Get("/bootstrap/status/:jobId", h.HandleStatus)
	admin.Get("/bootstrap/stream/:jobId", h.HandleStream)
	return app
}

func TestHandleBootstrapRequiresToken(t *testing.T) {
	svc, jobs, _ := newTestService(t, "http://127.0.0.1:1/?page={page}")
	app := newTestApp(t, NewHandler(svc, jobs, "sekret"))

	req := httptest.NewRequest(http.MethodPost, "/admin/bootstrap", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401 without token", res.StatusCode)
	}

	req = httptest.NewRequest(http.MethodPost, "/admin/bootstrap", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-admin-token", "wrong")
	res, err = app.Test(req, -1)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401 for a mismatched token", res.StatusCode)
	}
}

func TestHandleBootstrapSync(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, listingPage(4, "Widget"))
	}))
	defer srv.Close()

	svc, jobs, _ := newTestService(t, srv.URL+"/?page={page}")
	app := newTestApp(t, NewHandler(svc, jobs, ""))

	body := `{"categories":["widgets"],"totalPages":1,"perPageDelayMs":0,"persist":false}`
	req := httptest.NewRequest(http.MethodPost, "/admin/bootstrap", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", res.StatusCode)
	}

	var out struct {
		Success  bool `json:"success"`
		Scraped  int  `json:"scraped"`
		Inserted int  `json:"inserted"`
	}
	raw, _ := io.ReadAll(res.Body)
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
	if !out.Success || out.Scraped != 4 || out.Inserted != 0 {
		t.Fatalf("response = %+v", out)
	}
}

func TestHandleStatusUnknownJob(t *testing.T) {
	svc, jobs, _ := newTestService(t, "http://127.0.0.1:1/?page={page}")
	app := newTestApp(t, NewHandler(svc, jobs, ""))

	req := httptest.NewRequest(http.MethodGet, "/admin/bootstrap/status/no-such-job", nil)
	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", res.StatusCode)
	}
}

func TestHandleStreamUnknownJob(t *testing.T) {
	svc, jobs, _ := newTestService(t, "http://127.0.0.1:1/?page={page}")
	app := newTestApp(t, NewHandler(svc, jobs, ""))

	req := httptest.NewRequest(http.MethodGet, "/admin/bootstrap/stream/no-such-job", nil)
	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", res.StatusCode)
	}
}

func TestHandleStatusDoneJobCarriesResult(t *testing.T) {
	svc, jobs, _ := newTestService(t, "http://127.0.0.1:1/?page={page}")
	app := newTestApp(t, NewHandler(svc, jobs, ""))

	jobID, _ := jobs.Create()
	svc.Run(jobID, Request{Categories: []string{"laptops"}, TotalPages: 1, Persist: boolPtr(false)})

	req := httptest.NewRequest(http.MethodGet, "/admin/bootstrap/status/"+jobID, nil)
	res, err := app.Test(req, int(5*time.Second/time.Millisecond))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", res.StatusCode)
	}

	var out struct {
		Status string `json:"status"`
		Result *struct {
			Success bool `json:"success"`
		} `json:"result"`
	}
	raw, _ := io.ReadAll(res.Body)
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
	if out.Status != "done" || out.Result == nil || !out.Result.Success {
		t.Fatalf("response = %+v", out)
	}
}
