//go:build contract

package tests

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"testing"
	"time"
)

// Contract checks run against a live ordersvc instance and verify that
// the wire-level status codes follow the error classification.

func contractBaseURL() string {
	if v := os.Getenv("CONTRACT_BASE_URL"); v != "" {
		return v
	}
	return "http://localhost:8080"
}

func doJSON(t *testing.T, client *http.Client, method, url, payload string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, bytes.NewBufferString(payload))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestContractOrderStatusCodes(t *testing.T) {
	baseURL := contractBaseURL()
	client := &http.Client{Timeout: 10 * time.Second}

	t.Run("GetOrder_unknown_id_is_404", func(t *testing.T) {
		resp := doJSON(t, client, "GET", baseURL+"/orders/00000000-0000-0000-0000-000000000000", "")
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			body, _ := io.ReadAll(resp.Body)
			t.Fatalf("expected 404, got %d: %s", resp.StatusCode, string(body))
		}
		var parsed struct {
			Kind string `json:"kind"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
			t.Fatal(err)
		}
		if parsed.Kind != "not_found" {
			t.Fatalf("expected kind not_found, got %q", parsed.Kind)
		}
	})

	t.Run("CreateOrder_empty_body_is_422", func(t *testing.T) {
		resp := doJSON(t, client, "POST", baseURL+"/orders", "{}")
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusUnprocessableEntity {
			body, _ := io.ReadAll(resp.Body)
			t.Fatalf("expected 422, got %d: %s", resp.StatusCode, string(body))
		}
	})

	t.Run("CreateOrder_bad_id_is_422", func(t *testing.T) {
		resp := doJSON(t, client, "GET", baseURL+"/orders/not-a-uuid", "")
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusUnprocessableEntity {
			body, _ := io.ReadAll(resp.Body)
			t.Fatalf("expected 422, got %d: %s", resp.StatusCode, string(body))
		}
	})

	t.Run("GetInvoice_unknown_id_is_404", func(t *testing.T) {
		resp := doJSON(t, client, "GET", baseURL+"/orders/00000000-0000-0000-0000-000000000000/invoice", "")
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			body, _ := io.ReadAll(resp.Body)
			t.Fatalf("expected 404, got %d: %s", resp.StatusCode, string(body))
		}
	})
}
