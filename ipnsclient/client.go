// Package ipnsclient is a thin HTTP adapter between the ipns codec and
// a remote IPNS publishing service: it materializes a Revision into a
// signed wire record and POSTs it, and it GETs and validates records
// back into Revisions. It performs no retries; callers that want the
// trustless-gateway fallback implement it themselves (the CLI does,
// per SPEC_FULL.md §7).
package ipnsclient

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/primal-host/ipnsgo/ipns"
	"github.com/primal-host/ipnsgo/ipns/ipnspb"
)

// ErrTransport is the sentinel wrapped by every network or JSON
// parsing failure. Use errors.Is(err, ErrTransport) to distinguish it
// from an APIError.
var ErrTransport = errors.New("ipnsclient: transport error")

// DefaultBaseURL is the production publishing service used when no
// base URL is configured.
const DefaultBaseURL = "https://name.web3.storage/"

// APIError is returned for a non-2xx HTTP response. Callers inspect
// StatusCode to distinguish "no record yet" (404) from fatal failures.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ipnsclient: api error %d: %s", e.StatusCode, e.Message)
}

func wrapTransport(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrTransport, op, err)
}

// Client publishes and resolves IPNS records against a remote naming
// service over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the default publishing service URL.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithHTTPClient overrides the underlying *http.Client, e.g. to set a
// custom timeout or transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New creates a Client configured against DefaultBaseURL unless
// overridden with WithBaseURL.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type publishRequest struct {
	Name   string `json:"name"`
	Record string `json:"record"`
}

type resolveResponse struct {
	Value  string `json:"value"`
	Record string `json:"record"`
}

// Publish builds and signs an Entry for rev, protobuf-serializes and
// base64-encodes it, and POSTs it to /name/{name}.
func (c *Client) Publish(ctx context.Context, wn *ipns.WritableName, rev ipns.Revision) error {
	name, err := wn.ToName()
	if err != nil {
		return fmt.Errorf("ipnsclient: publish: derive name: %w", err)
	}

	entry, err := ipns.BuildEntry(rev, wn.Keypair())
	if err != nil {
		return fmt.Errorf("ipnsclient: publish: build entry: %w", err)
	}

	record := base64.StdEncoding.EncodeToString(entry.Marshal())
	body, err := json.Marshal(publishRequest{Name: name.String(), Record: record})
	if err != nil {
		return fmt.Errorf("ipnsclient: publish: marshal request: %w", err)
	}

	url := c.baseURL + "name/" + name.String()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return wrapTransport("build request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return wrapTransport("POST "+url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apiErrorFromResponse(resp)
	}
	return nil
}

// Resolve GETs /name/{name}, decodes and validates the returned
// record, and projects it to a Revision.
func (c *Client) Resolve(ctx context.Context, name ipns.Name) (ipns.Revision, error) {
	url := c.baseURL + "name/" + name.String()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ipns.Revision{}, wrapTransport("build request", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return ipns.Revision{}, wrapTransport("GET "+url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ipns.Revision{}, apiErrorFromResponse(resp)
	}

	var rr resolveResponse
	if err := json.NewDecoder(resp.Body).Decode(&rr); err != nil {
		return ipns.Revision{}, wrapTransport("decode response JSON", err)
	}

	raw, err := base64.StdEncoding.DecodeString(rr.Record)
	if err != nil {
		return ipns.Revision{}, wrapTransport("base64 decode record", err)
	}

	entry, err := ipnspb.Unmarshal(raw)
	if err != nil {
		return ipns.Revision{}, fmt.Errorf("ipnsclient: resolve: %w", err)
	}

	pub, err := publicKeyFor(name, entry)
	if err != nil {
		return ipns.Revision{}, fmt.Errorf("ipnsclient: resolve: %w", err)
	}

	if err := ipns.Validate(entry, pub); err != nil {
		return ipns.Revision{}, fmt.Errorf("ipnsclient: resolve: %w", err)
	}

	rev, err := ipns.Project(entry, name)
	if err != nil {
		return ipns.Revision{}, fmt.Errorf("ipnsclient: resolve: %w", err)
	}
	return rev, nil
}

// publicKeyFor recovers the public key needed to validate entry: from
// the identity-hashed Name when possible, falling back to the entry's
// pub_key field.
func publicKeyFor(name ipns.Name, entry *ipnspb.Entry) (*ipns.PublicKey, error) {
	if pub, err := name.PublicKey(); err == nil {
		return pub, nil
	}
	if len(entry.PubKey) == 0 {
		return nil, fmt.Errorf("public key not embedded in name and entry carries no pub_key")
	}
	return ipns.ParsePublicKeyProto(entry.PubKey)
}

func apiErrorFromResponse(resp *http.Response) error {
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return &APIError{StatusCode: resp.StatusCode, Message: string(msg)}
}
