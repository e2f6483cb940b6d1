package ipnsclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/primal-host/ipnsgo/ipns"
)

func newTestWritableName(t *testing.T) *ipns.WritableName {
	t.Helper()
	wn, err := ipns.NewWritableName()
	require.NoError(t, err)
	return wn
}

func TestClient_PublishResolve_RoundTrip(t *testing.T) {
	var stored string
	var storedName string

	mux := http.NewServeMux()
	mux.HandleFunc("/name/", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			var req publishRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			storedName = req.Name
			stored = req.Record
			w.WriteHeader(http.StatusOK)
		case http.MethodGet:
			if stored == "" {
				http.Error(w, "not found", http.StatusNotFound)
				return
			}
			_ = json.NewEncoder(w).Encode(resolveResponse{Record: stored})
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	wn := newTestWritableName(t)
	name, err := wn.ToName()
	require.NoError(t, err)

	client := New(WithBaseURL(srv.URL + "/"))

	rev := ipns.V0(name, "/ipfs/bafyabc")
	require.NoError(t, client.Publish(context.Background(), wn, rev))
	require.Equal(t, name.String(), storedName)

	got, err := client.Resolve(context.Background(), name)
	require.NoError(t, err)
	require.Equal(t, rev.Value, got.Value)
	require.Equal(t, rev.Sequence, got.Sequence)
}

func TestClient_Resolve_404ReturnsAPIError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/name/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such name", http.StatusNotFound)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	wn := newTestWritableName(t)
	name, err := wn.ToName()
	require.NoError(t, err)

	client := New(WithBaseURL(srv.URL + "/"))
	_, err = client.Resolve(context.Background(), name)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestClient_PublishThenIncrementSequence(t *testing.T) {
	var stored string

	mux := http.NewServeMux()
	mux.HandleFunc("/name/", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			var req publishRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			stored = req.Record
			w.WriteHeader(http.StatusOK)
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode(resolveResponse{Record: stored})
		}
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	wn := newTestWritableName(t)
	name, err := wn.ToName()
	require.NoError(t, err)
	client := New(WithBaseURL(srv.URL + "/"))

	first := ipns.V0(name, "/ipfs/v1")
	require.NoError(t, client.Publish(context.Background(), wn, first))

	resolved, err := client.Resolve(context.Background(), name)
	require.NoError(t, err)
	require.Equal(t, uint64(0), resolved.Sequence)

	next := resolved.Increment("/ipfs/v2")
	require.NoError(t, client.Publish(context.Background(), wn, next))

	final, err := client.Resolve(context.Background(), name)
	require.NoError(t, err)
	require.Equal(t, uint64(1), final.Sequence)
	require.Equal(t, "/ipfs/v2", final.Value)
}

func TestClient_Publish_TransportErrorWrapsSentinel(t *testing.T) {
	wn := newTestWritableName(t)
	rev := ipns.V0(mustName(t, wn), "/ipfs/x")

	client := New(WithBaseURL("http://127.0.0.1:0/"))
	err := client.Publish(context.Background(), wn, rev)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrTransport)
}

func mustName(t *testing.T, wn *ipns.WritableName) ipns.Name {
	t.Helper()
	name, err := wn.ToName()
	require.NoError(t, err)
	return name
}
