// Package bankdata talks to the open-banking aggregator and caches its raw
// JSON payloads on disk. The pipeline core never touches the network; it
// consumes the cached payloads.
package bankdata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Requisition links one end-user bank connection to its account ids.
type Requisition struct {
	ID            string   `json:"id"`
	InstitutionID string   `json:"institution_id"`
	Status        string   `json:"status"`
	Accounts      []string `json:"accounts"`
}

// TransactionLists are the two raw transaction lists of one account payload.
type TransactionLists struct {
	Booked  []map[string]any `json:"booked"`
	Pending []map[string]any `json:"pending"`
}

// AccountPayload is the raw per-account data as fetched: details, balances,
// metadata and transactions, untyped until normalization.
type AccountPayload struct {
	Account      map[string]any   `json:"account"`
	Balances     []map[string]any `json:"balances"`
	Metadata     map[string]any   `json:"metadata"`
	Transactions TransactionLists `json:"transactions"`
}

// UserPayload is everything fetched for one requisition.
type UserPayload struct {
	Requisition Requisition               `json:"requisition"`
	FetchedAt   time.Time                 `json:"fetched_at"`
	Accounts    map[string]AccountPayload `json:"accounts"`
}

// Client is a minimal aggregator API client.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	log     zerolog.Logger
}

// NewClient returns a Client for the given API base URL.
func NewClient(baseURL string, log zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		log:     log,
	}
}

// Authenticate exchanges the secret pair for an access token and stores it
// on the client.
func (c *Client) Authenticate(ctx context.Context, secretID, secretKey string) error {
	body, err := json.Marshal(map[string]string{
		"secret_id":  secretID,
		"secret_key": secretKey,
	})
	if err != nil {
		return fmt.Errorf("encoding credentials: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/token/new/", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("requesting token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("token endpoint returned %s", resp.Status)
	}

	var token struct {
		Access string `json:"access"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return fmt.Errorf("decoding token response: %w", err)
	}
	c.token = token.Access
	return nil
}

// Requisition fetches the requisition, including its account ids.
func (c *Client) Requisition(ctx context.Context, requisitionID string) (Requisition, error) {
	var req Requisition
	if err := c.get(ctx, fmt.Sprintf("/requisitions/%s/", requisitionID), &req); err != nil {
		return Requisition{}, err
	}
	return req, nil
}

// FetchAccount pulls details, balances, metadata and transactions for one
// account.
func (c *Client) FetchAccount(ctx context.Context, accountID string) (AccountPayload, error) {
	c.log.Debug().Str("account_id", accountID).Msg("fetching account data")

	var payload AccountPayload

	var details struct {
		Account map[string]any `json:"account"`
	}
	if err := c.get(ctx, fmt.Sprintf("/accounts/%s/details/", accountID), &details); err != nil {
		return AccountPayload{}, fmt.Errorf("details: %w", err)
	}
	payload.Account = details.Account

	var balances struct {
		Balances []map[string]any `json:"balances"`
	}
	if err := c.get(ctx, fmt.Sprintf("/accounts/%s/balances/", accountID), &balances); err != nil {
		return AccountPayload{}, fmt.Errorf("balances: %w", err)
	}
	payload.Balances = balances.Balances

	if err := c.get(ctx, fmt.Sprintf("/accounts/%s/", accountID), &payload.Metadata); err != nil {
		return AccountPayload{}, fmt.Errorf("metadata: %w", err)
	}

	var transactions struct {
		Transactions TransactionLists `json:"transactions"`
	}
	if err := c.get(ctx, fmt.Sprintf("/accounts/%s/transactions/", accountID), &transactions); err != nil {
		return AccountPayload{}, fmt.Errorf("transactions: %w", err)
	}
	payload.Transactions = transactions.Transactions

	return payload, nil
}

// FetchUser pulls the requisition and every account under it.
func (c *Client) FetchUser(ctx context.Context, requisitionID string) (UserPayload, error) {
	requisition, err := c.Requisition(ctx, requisitionID)
	if err != nil {
		return UserPayload{}, fmt.Errorf("requisition %s: %w", requisitionID, err)
	}

	payload := UserPayload{
		Requisition: requisition,
		FetchedAt:   time.Now().UTC(),
		Accounts:    make(map[string]AccountPayload, len(requisition.Accounts)),
	}
	for _, accountID := range requisition.Accounts {
		account, err := c.FetchAccount(ctx, accountID)
		if err != nil {
			return UserPayload{}, fmt.Errorf("account %s: %w", accountID, err)
		}
		payload.Accounts[accountID] = account
	}
	return payload, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s returned %s: %s", path, resp.Status, body)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}
