package agent_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resto/internal/agent"
	authDto "resto/internal/domains/auth/model/dto"
	tableDto "resto/internal/domains/table/model/dto"
	"resto/transport/http/response"
)

func writeData(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(response.Data[any]{Data: &payload})
}

func TestAPIClient_WalksEveryPage(t *testing.T) {
	var auth []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = append(auth, r.Header.Get("Authorization"))

		switch r.URL.Path {
		case "/v1/auth/login":
			writeData(w, http.StatusOK, authDto.LoginResponse{AccessToken: "token-1", Role: "cashier"})
		case "/v1/tables":
			page, _ := strconv.Atoi(r.URL.Query().Get("page"))
			assert.Equal(t, "100", r.URL.Query().Get("limit"))
			assert.Equal(t, "true", r.URL.Query().Get("available"))

			writeData(w, http.StatusOK, tableDto.GetTablesResponse{
				Tables:    []tableDto.TableResponse{{ID: "t" + strconv.Itoa(page)}},
				TotalPage: 3,
				TotalData: 3,
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := agent.NewAPIClient(server.URL+"/v1/", "")

	login, err := client.Login(context.Background(), "rina", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "cashier", login.Role)

	tables, err := client.Tables(context.Background(), url.Values{"available": {"true"}})
	require.NoError(t, err)

	require.Len(t, tables, 3)
	assert.Equal(t, "t3", tables[2].ID)
	assert.Equal(t, "", auth[0])
	assert.Equal(t, "Bearer token-1", auth[1])
}

func TestAPIClient_MapsErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		message := "order not found"

		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(response.Error{Error: &message})
	}))
	defer server.Close()

	client := agent.NewAPIClient(server.URL, "token")

	_, err := client.UpdateOrderStatus(context.Background(), "missing", "cooking")

	var apiErr *agent.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "order not found", apiErr.Message)
}
