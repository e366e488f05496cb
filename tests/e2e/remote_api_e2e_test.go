//go:build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"
)

func TestRemoteAPI_MainEndpoints(t *testing.T) {
	baseURL := strings.TrimRight(envOr("E2E_BASE_URL", "http://localhost:8080"), "/")
	client := &http.Client{Timeout: 20 * time.Second}

	t.Run("kpi endpoint", func(t *testing.T) {
		status, body, err := doRequest(client, http.MethodGet, baseURL+"/ops/kpi", nil)
		if err != nil {
			t.Fatalf("kpi request: %v", err)
		}
		if status != http.StatusOK {
			t.Fatalf("kpi status=%d body=%s", status, string(body))
		}
		var snapshot map[string]any
		if err := json.Unmarshal(body, &snapshot); err != nil {
			t.Fatalf("unmarshal kpi: %v body=%s", err, string(body))
		}
	})

	t.Run("dry-run problem pass", func(t *testing.T) {
		status, body, err := doRequest(client, http.MethodPost, baseURL+"/ops/pass/problems", map[string]any{
			"dry_run": true,
		})
		if err != nil {
			t.Fatalf("pass request: %v", err)
		}
		if status != http.StatusOK {
			t.Fatalf("pass status=%d body=%s", status, string(body))
		}
		var summary map[string]any
		if err := json.Unmarshal(body, &summary); err != nil {
			t.Fatalf("unmarshal summary: %v body=%s", err, string(body))
		}
	})

	t.Run("unknown pass rejected", func(t *testing.T) {
		status, body, err := doRequest(client, http.MethodPost, baseURL+"/ops/pass/weather", nil)
		if err != nil {
			t.Fatalf("pass request: %v", err)
		}
		if status != http.StatusNotFound {
			t.Fatalf("expected 404, got %d body=%s", status, string(body))
		}
	})

	t.Run("stratagem submit and fetch", func(t *testing.T) {
		suffix := time.Now().UTC().Format("20060102150405")
		status, body, err := doRequest(client, http.MethodPost, baseURL+"/api/stratagems", map[string]any{
			"initiator":     "e2e-initiator-" + suffix,
			"supplier":      "e2e-supplier-" + suffix,
			"resource_type": "e2e-resource",
		})
		if err != nil {
			t.Fatalf("submit request: %v", err)
		}
		if status != http.StatusCreated {
			t.Fatalf("submit status=%d body=%s", status, string(body))
		}
		var created struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		}
		if err := json.Unmarshal(body, &created); err != nil {
			t.Fatalf("unmarshal stratagem: %v body=%s", err, string(body))
		}
		if created.ID == "" || created.Status != "proposed" {
			t.Fatalf("unexpected created stratagem: %+v", created)
		}

		status, body, err = doRequest(client, http.MethodGet, baseURL+"/api/stratagems/"+created.ID, nil)
		if err != nil {
			t.Fatalf("fetch request: %v", err)
		}
		if status != http.StatusOK {
			t.Fatalf("fetch status=%d body=%s", status, string(body))
		}
	})
}

func doRequest(client *http.Client, method, url string, payload map[string]any) (int, []byte, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return 0, nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, b, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
