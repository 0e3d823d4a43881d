package xrpl

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Sentinel-Intelligence/sentinel-public/pkg/shared"
)

const (
	MainnetURL = "https://s1.ripple.com:51234/"
	TestnetURL = "https://s.altnet.rippletest.net:51234/"
	DevnetURL  = "https://s.devnet.rippletest.net:51234/"
)

type Config struct {
	Network    string
	URL        string
	HTTPClient *http.Client
	Headers    map[string]string
}

// Client is a rippled JSON-RPC client.
type Client struct {
	url        string
	httpClient *http.Client
	headers    map[string]string
}

// NewClient creates a new Client.
func NewClient(config Config) (*Client, error) {
	network, err := shared.NormalizeLedgerNetwork(shared.LedgerXRPL, config.Network)
	if err != nil {
		return nil, err
	}

	endpoint := strings.TrimSpace(config.URL)
	if endpoint == "" {
		switch network {
		case shared.NetworkTestnet:
			endpoint = TestnetURL
		case shared.NetworkDevnet:
			endpoint = DevnetURL
		default:
			endpoint = MainnetURL
		}
	}
	parsedURL, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid rippled URL: %w", err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return nil, fmt.Errorf("invalid rippled URL: scheme must be http or https")
	}
	if strings.TrimSpace(parsedURL.Host) == "" {
		return nil, fmt.Errorf("invalid rippled URL: host is required")
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	headers := map[string]string{}
	for key, value := range config.Headers {
		headers[key] = value
	}

	return &Client{
		url:        parsedURL.String(),
		httpClient: httpClient,
		headers:    headers,
	}, nil
}

func (c *Client) URL() string {
	return c.url
}

// AccountInfo returns the account root as of the current open ledger.
func (c *Client) AccountInfo(ctx context.Context, address string) (AccountInfoResult, error) {
	var result AccountInfoResult
	if strings.TrimSpace(address) == "" {
		return result, fmt.Errorf("account is required")
	}
	err := c.call(ctx, "account_info", map[string]any{
		"account":      strings.TrimSpace(address),
		"ledger_index": "current",
		"strict":       true,
	}, &result)
	return result, err
}

// Fee returns the current transaction cost.
func (c *Client) Fee(ctx context.Context) (FeeResult, error) {
	var result FeeResult
	err := c.call(ctx, "fee", map[string]any{}, &result)
	return result, err
}

// Submit sends a signed blob.
func (c *Client) Submit(ctx context.Context, signedBlob []byte) (SubmitResult, error) {
	var result SubmitResult
	if len(signedBlob) == 0 {
		return result, fmt.Errorf("signed blob is required")
	}
	err := c.call(ctx, "submit", map[string]any{
		"tx_blob": strings.ToUpper(fmt.Sprintf("%x", signedBlob)),
	}, &result)
	return result, err
}

// Tx looks up a transaction by hash.
func (c *Client) Tx(ctx context.Context, hash string) (TxResult, error) {
	var result TxResult
	if strings.TrimSpace(hash) == "" {
		return result, fmt.Errorf("transaction hash is required")
	}
	err := c.call(ctx, "tx", map[string]any{
		"transaction": strings.TrimSpace(hash),
		"binary":      false,
	}, &result)
	return result, err
}

// ValidatedLedgerIndex returns the sequence of the latest validated ledger.
func (c *Client) ValidatedLedgerIndex(ctx context.Context) (uint32, error) {
	var result LedgerResult
	if err := c.call(ctx, "ledger", map[string]any{"ledger_index": "validated"}, &result); err != nil {
		return 0, err
	}
	return result.LedgerIndex, nil
}

func (c *Client) call(ctx context.Context, method string, params map[string]any, target any) error {
	body, err := json.Marshal(rpcRequest{Method: method, Params: []any{params}})
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", method, err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")
	for key, value := range c.headers {
		request.Header.Set(key, value)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return &RequestError{Method: method, Cause: err}
	}
	defer response.Body.Close()

	payload, err := io.ReadAll(response.Body)
	if err != nil {
		return &RequestError{Method: method, Cause: fmt.Errorf("failed to read response: %w", err)}
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return &RequestError{
			Method:     method,
			StatusCode: response.StatusCode,
			Message:    strings.TrimSpace(string(payload)),
		}
	}

	var envelope rpcResponse
	if err := json.Unmarshal(payload, &envelope); err != nil || len(envelope.Result) == 0 {
		return &RequestError{Method: method, Message: "response has no result"}
	}

	var status rpcStatus
	if err := json.Unmarshal(envelope.Result, &status); err != nil {
		return &RequestError{Method: method, Message: fmt.Sprintf("failed to decode result status: %v", err)}
	}
	if status.Status == "error" || status.Error != "" {
		return &ResponseError{Method: method, Code: status.Error, Message: status.ErrorMessage}
	}

	if err := json.Unmarshal(envelope.Result, target); err != nil {
		return &RequestError{Method: method, Message: fmt.Sprintf("failed to decode result: %v", err)}
	}
	return nil
}

// AnchorMemo returns the first memo of a validated, successful transaction.
func (c *Client) AnchorMemo(ctx context.Context, hash string) (string, []byte, error) {
	tx, err := c.Tx(ctx, hash)
	if err != nil {
		return "", nil, err
	}
	if !tx.Validated {
		return "", nil, fmt.Errorf("transaction %s is not validated yet", hash)
	}
	if result := tx.TransactionResult(); result != "tesSUCCESS" {
		return "", nil, fmt.Errorf("transaction %s has result %q", hash, result)
	}
	if len(tx.Memos) == 0 {
		return "", nil, fmt.Errorf("transaction %s carries no memo", hash)
	}

	memo := tx.Memos[0].Memo
	memoType, err := hex.DecodeString(memo.MemoType)
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode memo type: %w", err)
	}
	memoData, err := hex.DecodeString(memo.MemoData)
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode memo data: %w", err)
	}
	return string(memoType), memoData, nil
}
