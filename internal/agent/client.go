package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	authDto "resto/internal/domains/auth/model/dto"
	menuDto "resto/internal/domains/menuitem/model/dto"
	orderDto "resto/internal/domains/order/model/dto"
	tableDto "resto/internal/domains/table/model/dto"
	"resto/shared/constant"
	"resto/transport/http/response"
)

const (
	pageSize       = 100
	requestTimeout = 15 * time.Second
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api returned %d: %s", e.Status, e.Message)
}

// APIClient fetches the lists agents mirror. Base is the versioned root, e.g. http://host/v1.
type APIClient struct {
	base string
	http *http.Client

	mu    sync.RWMutex
	token string
}

func NewAPIClient(base, token string) *APIClient {
	return &APIClient{
		base:  strings.TrimRight(base, "/"),
		http:  &http.Client{Timeout: requestTimeout},
		token: token,
	}
}

// Login exchanges credentials for a token pair and keeps the access token for later calls.
func (c *APIClient) Login(ctx context.Context, username, password string) (authDto.LoginResponse, error) {
	var res authDto.LoginResponse

	err := c.do(ctx, http.MethodPost, "/auth/login", nil, authDto.LoginRequest{Username: username, Password: password}, &res)
	if err != nil {
		return res, err
	}

	c.mu.Lock()
	c.token = res.AccessToken
	c.mu.Unlock()

	return res, nil
}

func (c *APIClient) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.token
}

func (c *APIClient) Orders(ctx context.Context, query url.Values) ([]orderDto.OrderResponse, error) {
	return fetchAll(ctx, c, "/orders", query, func(page orderDto.GetOrdersResponse) ([]orderDto.OrderResponse, int) {
		return page.Orders, page.TotalPage
	})
}

func (c *APIClient) Tables(ctx context.Context, query url.Values) ([]tableDto.TableResponse, error) {
	return fetchAll(ctx, c, "/tables", query, func(page tableDto.GetTablesResponse) ([]tableDto.TableResponse, int) {
		return page.Tables, page.TotalPage
	})
}

func (c *APIClient) MenuItems(ctx context.Context, query url.Values) ([]menuDto.MenuItemResponse, error) {
	return fetchAll(ctx, c, "/menu-items", query, func(page menuDto.GetMenuItemsResponse) ([]menuDto.MenuItemResponse, int) {
		return page.MenuItems, page.TotalPage
	})
}

func (c *APIClient) CreateOrder(ctx context.Context, req orderDto.CreateOrderRequest) (orderDto.OrderResponse, error) {
	var res orderDto.OrderResponse

	err := c.do(ctx, http.MethodPost, "/orders", nil, req, &res)

	return res, err
}

func (c *APIClient) UpdateOrderStatus(ctx context.Context, id, status string) (orderDto.OrderResponse, error) {
	var res orderDto.OrderResponse

	err := c.do(ctx, http.MethodPatch, "/orders/"+url.PathEscape(id)+"/status", nil, map[string]string{"status": status}, &res)

	return res, err
}

// fetchAll walks every page so the agent always holds the complete list.
func fetchAll[P any, T any](ctx context.Context, c *APIClient, path string, query url.Values, extract func(P) ([]T, int)) ([]T, error) {
	params := url.Values{}
	for key, values := range query {
		params[key] = values
	}

	params.Set(constant.RequestParamLimit, strconv.Itoa(pageSize))

	var all []T

	for page := 1; ; page++ {
		params.Set(constant.RequestParamPage, strconv.Itoa(page))

		var body P
		if err := c.do(ctx, http.MethodGet, path, params, nil, &body); err != nil {
			return nil, err
		}

		items, totalPage := extract(body)
		all = append(all, items...)

		if page >= totalPage || len(items) == 0 {
			return all, nil
		}
	}
}

func (c *APIClient) do(ctx context.Context, method, path string, query url.Values, payload, out any) error {
	target := c.base + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader

	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}

		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr response.Error
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)

		message := http.StatusText(resp.StatusCode)
		if apiErr.Error != nil {
			message = *apiErr.Error
		}

		return &APIError{Status: resp.StatusCode, Message: message}
	}

	envelope := response.Data[json.RawMessage]{}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}

	if envelope.Data == nil || out == nil {
		return nil
	}

	if err := json.Unmarshal(*envelope.Data, out); err != nil {
		return fmt.Errorf("failed to decode %s data: %w", path, err)
	}

	return nil
}
