package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/primal-host/ipnsgo/ipns"
	"github.com/primal-host/ipnsgo/ipns/ipnspb"
)

// trustlessGatewayBase is the fixed fallback endpoint publish consults
// when a direct resolve against the publishing service fails for a
// reason other than "no record yet".
const trustlessGatewayBase = "https://trustless-gateway.link"

// resolveFromGateway fetches a raw IPNS record from the trustless
// gateway, validates it, and projects it to a Revision. This is the
// CLI's only retry-like behavior, bounded to one alternate endpoint.
func resolveFromGateway(ctx context.Context, name ipns.Name) (ipns.Revision, error) {
	url := trustlessGatewayBase + "/ipns/" + name.String()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ipns.Revision{}, fmt.Errorf("gateway: build request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.ipfs.ipns-record")

	hc := &http.Client{Timeout: 30 * time.Second}
	resp, err := hc.Do(req)
	if err != nil {
		return ipns.Revision{}, fmt.Errorf("gateway: GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ipns.Revision{}, fmt.Errorf("gateway: %s returned %d", url, resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return ipns.Revision{}, fmt.Errorf("gateway: read body: %w", err)
	}

	entry, err := ipnspb.Unmarshal(raw)
	if err != nil {
		return ipns.Revision{}, fmt.Errorf("gateway: decode entry: %w", err)
	}

	pub, err := publicKeyForName(name, entry)
	if err != nil {
		return ipns.Revision{}, fmt.Errorf("gateway: %w", err)
	}
	if err := ipns.Validate(entry, pub); err != nil {
		return ipns.Revision{}, fmt.Errorf("gateway: %w", err)
	}
	return ipns.Project(entry, name)
}

// publicKeyForName recovers the public key needed to validate entry:
// from the identity-hashed name when possible, falling back to the
// entry's pub_key field.
func publicKeyForName(name ipns.Name, entry *ipnspb.Entry) (*ipns.PublicKey, error) {
	if pub, err := name.PublicKey(); err == nil {
		return pub, nil
	}
	if len(entry.PubKey) == 0 {
		return nil, fmt.Errorf("public key not embedded in name and entry carries no pub_key")
	}
	return ipns.ParsePublicKeyProto(entry.PubKey)
}
