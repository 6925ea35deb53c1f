package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/parthgupta9/splitr/internal/auth"
	"github.com/parthgupta9/splitr/internal/seed"
	"github.com/parthgupta9/splitr/internal/service"
	"github.com/parthgupta9/splitr/internal/storage/sqlite"
)

func amt(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	tempDir, err := os.MkdirTemp("", "splitr-api-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	groupService := service.NewGroupService(store)
	ledgerService := service.NewLedgerService(store)
	api := New(
		service.NewAuthService(auth.NewPasswordAuthenticator(store), jwtManager, store),
		groupService,
		ledgerService,
		service.NewContactService(store),
		seed.New(store, groupService, ledgerService),
		jwtManager,
	)

	server := httptest.NewServer(api.Router())
	t.Cleanup(server.Close)
	return server
}

// call sends a JSON request and decodes the response body into out.
func call(t *testing.T, server *httptest.Server, method, path, token string, body, out any) int {
	t.Helper()

	var reqBody bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&reqBody).Encode(body); err != nil {
			t.Fatalf("failed to encode request: %v", err)
		}
	}

	req, err := http.NewRequest(method, server.URL+path, &reqBody)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("failed to decode %s %s response: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

func registerUser(t *testing.T, server *httptest.Server, email, name string) (userDTO, string) {
	t.Helper()
	var resp authResponse
	status := call(t, server, "POST", "/api/register", "", registerRequest{
		Email:    email,
		Name:     name,
		Password: "hunter2hunter2",
	}, &resp)
	if status != http.StatusCreated {
		t.Fatalf("register %s returned %d", email, status)
	}
	return resp.User, resp.Token
}

func TestAPIExpenseFlow(t *testing.T) {
	server := newTestServer(t)

	u1, token1 := registerUser(t, server, "rahul@example.com", "Rahul")
	u2, token2 := registerUser(t, server, "priya@example.com", "Priya")

	t.Run("record one-on-one expense", func(t *testing.T) {
		var created expenseDTO
		status := call(t, server, "POST", "/api/expenses", token1, map[string]any{
			"description":  "Dinner",
			"amount":       "1250.00",
			"category":     "foodDrink",
			"paidByUserId": u1.ID,
			"splitType":    "equal",
			"splits": []map[string]any{
				{"userId": u1.ID, "amount": "625.00"},
				{"userId": u2.ID, "amount": "625.00"},
			},
		}, &created)
		if status != http.StatusCreated {
			t.Fatalf("status = %d, want 201", status)
		}
		if created.ID == "" || !created.Amount.Equal(amt("1250.00")) {
			t.Errorf("created = %+v", created)
		}
	})

	t.Run("pair ledger shows the debt", func(t *testing.T) {
		var led pairLedgerResponse
		status := call(t, server, "GET", "/api/expenses/user/"+u1.ID, token2, nil, &led)
		if status != http.StatusOK {
			t.Fatalf("status = %d, want 200", status)
		}
		if len(led.Expenses) != 1 {
			t.Fatalf("got %d expenses, want 1", len(led.Expenses))
		}
		// Priya owes Rahul her dinner share.
		if !led.NetBalance.Equal(amt("625.00")) {
			t.Errorf("NetBalance = %s, want 625.00", led.NetBalance)
		}
	})

	t.Run("contacts include the counterparty", func(t *testing.T) {
		var contacts contactsResponse
		status := call(t, server, "GET", "/api/contacts", token1, nil, &contacts)
		if status != http.StatusOK {
			t.Fatalf("status = %d, want 200", status)
		}
		if len(contacts.Users) != 1 || contacts.Users[0].ID != u2.ID {
			t.Errorf("contacts = %+v, want just %s", contacts.Users, u2.ID)
		}
	})

	t.Run("split mismatch surfaces its code", func(t *testing.T) {
		var body struct {
			Error struct {
				Code string `json:"code"`
			} `json:"error"`
		}
		status := call(t, server, "POST", "/api/expenses", token1, map[string]any{
			"description":  "Broken",
			"amount":       "100.00",
			"paidByUserId": u1.ID,
			"splitType":    "equal",
			"splits": []map[string]any{
				{"userId": u1.ID, "amount": "40.00"},
				{"userId": u2.ID, "amount": "40.00"},
			},
		}, &body)
		if status != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", status)
		}
		if body.Error.Code != "SPLIT_MISMATCH" {
			t.Errorf("error code = %s, want SPLIT_MISMATCH", body.Error.Code)
		}
	})

	t.Run("settlement settles the pair", func(t *testing.T) {
		status := call(t, server, "POST", "/api/settlements", token2, map[string]any{
			"amount":           "625.00",
			"paidByUserId":     u2.ID,
			"receivedByUserId": u1.ID,
		}, nil)
		if status != http.StatusCreated {
			t.Fatalf("status = %d, want 201", status)
		}

		var led pairLedgerResponse
		if status := call(t, server, "GET", "/api/expenses/user/"+u1.ID, token2, nil, &led); status != http.StatusOK {
			t.Fatalf("status = %d, want 200", status)
		}
		if !led.NetBalance.IsZero() {
			t.Errorf("NetBalance = %s, want 0 after settlement", led.NetBalance)
		}
	})
}

func TestAPIGroupFlow(t *testing.T) {
	server := newTestServer(t)

	u1, token1 := registerUser(t, server, "g1@example.com", "One")
	u2, _ := registerUser(t, server, "g2@example.com", "Two")
	_, token3 := registerUser(t, server, "g3@example.com", "Outsider")

	var group groupDTO
	status := call(t, server, "POST", "/api/groups", token1, createGroupRequest{
		Name:      "Weekend Trip",
		MemberIDs: []string{u2.ID},
	}, &group)
	if status != http.StatusCreated {
		t.Fatalf("create group status = %d, want 201", status)
	}
	if len(group.Members) != 2 {
		t.Fatalf("got %d members, want 2", len(group.Members))
	}

	t.Run("non-member gets 403", func(t *testing.T) {
		status := call(t, server, "GET", "/api/groups/"+group.ID, token3, nil, nil)
		if status != http.StatusForbidden {
			t.Errorf("status = %d, want 403", status)
		}
	})

	t.Run("group ledger aggregates balances", func(t *testing.T) {
		status := call(t, server, "POST", "/api/expenses", token1, map[string]any{
			"description":  "Hotel",
			"amount":       "9500.00",
			"paidByUserId": u1.ID,
			"splitType":    "equal",
			"groupId":      group.ID,
			"participants": []string{u1.ID, u2.ID},
		}, nil)
		if status != http.StatusCreated {
			t.Fatalf("record group expense status = %d, want 201", status)
		}

		var led groupLedgerResponse
		if status := call(t, server, "GET", "/api/groups/"+group.ID+"/expenses", token1, nil, &led); status != http.StatusOK {
			t.Fatalf("status = %d, want 200", status)
		}
		if len(led.Expenses) != 1 || len(led.Balances) != 2 {
			t.Fatalf("expenses=%d balances=%d, want 1 and 2", len(led.Expenses), len(led.Balances))
		}
		if len(led.Debts) != 1 || led.Debts[0].From != u2.ID || led.Debts[0].To != u1.ID {
			t.Errorf("debts = %+v, want %s owes %s", led.Debts, u2.ID, u1.ID)
		}
	})
}

func TestAPIAuthBoundary(t *testing.T) {
	server := newTestServer(t)

	tests := []struct {
		name   string
		token  string
		status int
	}{
		{"missing token", "", http.StatusUnauthorized},
		{"garbage token", "not-a-jwt", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if status := call(t, server, "GET", "/api/contacts", tt.token, nil, nil); status != tt.status {
				t.Errorf("status = %d, want %d", status, tt.status)
			}
		})
	}

	t.Run("healthz is public", func(t *testing.T) {
		if status := call(t, server, "GET", "/healthz", "", nil, nil); status != http.StatusOK {
			t.Errorf("status = %d, want 200", status)
		}
	})
}

func TestAPISeedEndpoint(t *testing.T) {
	server := newTestServer(t)

	var tokens []string
	for i := 1; i <= 3; i++ {
		_, token := registerUser(t, server, fmt.Sprintf("seed%d@example.com", i), fmt.Sprintf("Seed %d", i))
		tokens = append(tokens, token)
	}

	var first seedResponse
	if status := call(t, server, "POST", "/api/seed", tokens[0], nil, &first); status != http.StatusOK {
		t.Fatalf("seed status = %d, want 200", status)
	}
	if first.Skipped || first.Stats == nil {
		t.Fatalf("first seed = %+v, want a full run", first)
	}
	if first.Stats.Groups != 3 || first.Stats.OneOnOneExpenses != 5 || first.Stats.GroupExpenses != 8 {
		t.Errorf("stats = %+v", first.Stats)
	}

	var second seedResponse
	if status := call(t, server, "POST", "/api/seed", tokens[0], nil, &second); status != http.StatusOK {
		t.Fatalf("seed status = %d, want 200", status)
	}
	if !second.Skipped {
		t.Error("second seed run was not skipped")
	}
}
