package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"stocktake/internal/inventory"
	"stocktake/internal/kvstore"
	"stocktake/internal/model"
)

const testSecret = "test-secret"

func setupTestServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()

	kv := kvstore.NewTestStore(t)
	repo := inventory.New(kv)
	if err := repo.Load(context.Background()); err != nil {
		t.Fatalf("loading repository: %v", err)
	}

	router := NewRouter(repo, testSecret)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	// Open a session.
	body, _ := json.Marshal(map[string]string{"name": "tester"})
	resp, err := http.Post(server.URL+"/api/session", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("session request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("session failed: %d", resp.StatusCode)
	}

	var sessionResp map[string]string
	json.NewDecoder(resp.Body).Decode(&sessionResp)
	token := sessionResp["token"]
	if token == "" {
		t.Fatal("empty token from session")
	}

	return server, token
}

func authRequest(method, url, token string, body any) (*http.Request, error) {
	var bodyReader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(data)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func validItemBody(name string) map[string]any {
	return map[string]any{
		"item_name":        name,
		"sku":              "SKU100",
		"quantity_counted": 12,
		"category":         model.CategoryEquipment,
		"last_count_date":  "2024-02-01",
		"reorder_level":    4,
	}
}

func TestSessionRequiresName(t *testing.T) {
	server, _ := setupTestServer(t)

	body, _ := json.Marshal(map[string]string{"name": "  "})
	resp, _ := http.Post(server.URL+"/api/session", "application/json", bytes.NewReader(body))
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for blank name, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestUnauthenticatedAccess(t *testing.T) {
	server, _ := setupTestServer(t)

	resp, _ := http.Get(server.URL + "/api/items")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for unauthenticated request, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestItemsAPIFlow(t *testing.T) {
	server, token := setupTestServer(t)

	// The seeded collection is served.
	req, _ := authRequest("GET", server.URL+"/api/items", token, nil)
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var items []model.InventoryItem
	json.NewDecoder(resp.Body).Decode(&items)
	resp.Body.Close()
	if len(items) != 5 {
		t.Fatalf("expected 5 seeded items, got %d", len(items))
	}

	// Create an item.
	req, _ = authRequest("POST", server.URL+"/api/items", token, validItemBody("Pallet Wrap"))
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var created model.InventoryItem
	json.NewDecoder(resp.Body).Decode(&created)
	resp.Body.Close()
	if created.ID == "" {
		t.Fatal("expected an assigned id")
	}

	// Update it.
	update := validItemBody("Pallet Wrap Heavy")
	update["quantity_counted"] = 2
	req, _ = authRequest("PUT", server.URL+"/api/items/"+created.ID, token, update)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var updated model.InventoryItem
	json.NewDecoder(resp.Body).Decode(&updated)
	resp.Body.Close()
	if updated.ID != created.ID {
		t.Errorf("update must preserve the id: %q vs %q", updated.ID, created.ID)
	}
	if updated.Name != "Pallet Wrap Heavy" {
		t.Errorf("expected updated name, got %q", updated.Name)
	}

	// Fetch it.
	req, _ = authRequest("GET", server.URL+"/api/items/"+created.ID, token, nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Delete it, twice: deletion is idempotent.
	for i := 0; i < 2; i++ {
		req, _ = authRequest("DELETE", server.URL+"/api/items/"+created.ID, token, nil)
		resp, _ = http.DefaultClient.Do(req)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200 on delete #%d, got %d", i+1, resp.StatusCode)
		}
		resp.Body.Close()
	}

	req, _ = authRequest("GET", server.URL+"/api/items/"+created.ID, token, nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestCreateValidationErrors(t *testing.T) {
	server, token := setupTestServer(t)

	body := validItemBody("")
	body["quantity_counted"] = -3
	req, _ := authRequest("POST", server.URL+"/api/items", token, body)
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}

	var payload struct {
		Errors map[string]string `json:"errors"`
	}
	json.NewDecoder(resp.Body).Decode(&payload)
	resp.Body.Close()

	if payload.Errors["item_name"] == "" {
		t.Error("expected an item_name error")
	}
	if payload.Errors["quantity_counted"] == "" {
		t.Error("expected a quantity_counted error")
	}
}

func TestUpdateMissingItem(t *testing.T) {
	server, token := setupTestServer(t)

	req, _ := authRequest("PUT", server.URL+"/api/items/no-such-id", token, validItemBody("X"))
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestListSearchAndSort(t *testing.T) {
	server, token := setupTestServer(t)

	req, _ := authRequest("GET", server.URL+"/api/items?q=glove", token, nil)
	resp, _ := http.DefaultClient.Do(req)
	var items []model.InventoryItem
	json.NewDecoder(resp.Body).Decode(&items)
	resp.Body.Close()
	if len(items) != 1 || items[0].Name != "Heavy Duty Work Gloves" {
		t.Fatalf("expected the gloves only, got %d items", len(items))
	}

	req, _ = authRequest("GET", server.URL+"/api/items?sort=quantity_counted&dir=desc", token, nil)
	resp, _ = http.DefaultClient.Do(req)
	json.NewDecoder(resp.Body).Decode(&items)
	resp.Body.Close()
	if items[0].SKU != "SKU004" {
		t.Errorf("expected the boxes (qty 500) first, got %q", items[0].SKU)
	}
}

func TestAlerts(t *testing.T) {
	server, token := setupTestServer(t)

	req, _ := authRequest("GET", server.URL+"/api/alerts", token, nil)
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var payload struct {
		Count int                   `json:"count"`
		Items []model.InventoryItem `json:"items"`
	}
	json.NewDecoder(resp.Body).Decode(&payload)
	resp.Body.Close()

	// Only the gloves are low in the seed.
	if payload.Count != 1 {
		t.Errorf("expected 1 low-stock item, got %d", payload.Count)
	}
	if len(payload.Items) != 1 || payload.Items[0].SKU != "SKU002" {
		t.Errorf("expected SKU002 in alerts, got %+v", payload.Items)
	}
}
