package tron

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tron-wallet-service/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPrivKeyHex = "0101010101010101010101010101010101010101010101010101010101010101"

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(config.TronConfig{
		Node:    srv.URL,
		Timeout: 5 * time.Second,
	}, zerolog.Nop())
}

func TestClient_FetchBalance(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wallet/getaccount", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "TR7NHqjeKQxGTCi8q8ZY4pL8otSzgjLj6t", body["address"])
		assert.Equal(t, true, body["visible"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"balance": 12345678}`))
	}))

	balance, err := client.FetchBalance(context.Background(), "TR7NHqjeKQxGTCi8q8ZY4pL8otSzgjLj6t")
	require.NoError(t, err)
	assert.InDelta(t, 12.345678, balance, 1e-9)
}

func TestClient_FetchBalance_UnknownAccountIsZero(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// TronGrid returns an empty object for accounts the chain has
		// never seen.
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))

	balance, err := client.FetchBalance(context.Background(), "TR7NHqjeKQxGTCi8q8ZY4pL8otSzgjLj6t")
	require.NoError(t, err)
	assert.Zero(t, balance)
}

func TestClient_FetchBalance_NodeError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	_, err := client.FetchBalance(context.Background(), "TR7NHqjeKQxGTCi8q8ZY4pL8otSzgjLj6t")
	assert.Error(t, err)
}

func TestClient_Execute(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/wallet/createtransaction":
			_, _ = w.Write([]byte(`{"txID":"abc123","raw_data_hex":"deadbeef","raw_data":{}}`))
		case "/wallet/broadcasttransaction":
			var tx map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&tx))

			// The signed transaction carries exactly one 65-byte
			// recoverable signature.
			sigs, ok := tx["signature"].([]any)
			require.True(t, ok)
			require.Len(t, sigs, 1)
			sigBytes, err := hex.DecodeString(sigs[0].(string))
			require.NoError(t, err)
			assert.Len(t, sigBytes, 65)

			_, _ = w.Write([]byte(`{"result":true,"txid":"abc123"}`))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))

	receipt, err := client.Execute(context.Background(),
		"TR7NHqjeKQxGTCi8q8ZY4pL8otSzgjLj6t", "TNPZvTs4KjB7kKDQmb2uGxvyNC6DGbGW1d",
		2.5, testPrivKeyHex)
	require.NoError(t, err)
	assert.Equal(t, "abc123", receipt.TxID)
}

func TestClient_Execute_CreateRejected(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"Error":"Contract validate error : Validate TransferContract error, balance is not sufficient."}`))
	}))

	_, err := client.Execute(context.Background(), "Tfrom", "Tto", 2.5, testPrivKeyHex)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "balance is not sufficient")
}

func TestClient_Execute_BroadcastRejectedDecodesHexMessage(t *testing.T) {
	reason := hex.EncodeToString([]byte("Dup transaction"))
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/wallet/createtransaction":
			_, _ = w.Write([]byte(`{"txID":"abc123","raw_data_hex":"deadbeef"}`))
		case "/wallet/broadcasttransaction":
			_, _ = w.Write([]byte(`{"result":false,"code":"DUP_TRANSACTION_ERROR","message":"` + reason + `"}`))
		}
	}))

	_, err := client.Execute(context.Background(), "Tfrom", "Tto", 2.5, testPrivKeyHex)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DUP_TRANSACTION_ERROR")
	assert.Contains(t, err.Error(), "Dup transaction")
}

func TestClient_Execute_BadPrivateKey(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"txID":"abc123","raw_data_hex":"deadbeef"}`))
	}))

	_, err := client.Execute(context.Background(), "Tfrom", "Tto", 2.5, "zz-not-hex")
	assert.Error(t, err)
}

func TestClient_SendsAPIKeyHeader(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("TRON-PRO-API-KEY")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewClient(config.TronConfig{Node: srv.URL, APIKey: "secret-key", Timeout: time.Second}, zerolog.Nop())
	_, err := client.FetchBalance(context.Background(), "Taddr")
	require.NoError(t, err)
	assert.Equal(t, "secret-key", gotKey)
}
