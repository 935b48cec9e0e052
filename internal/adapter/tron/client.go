package tron

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math"

	"tron-wallet-service/config"
	"tron-wallet-service/internal/core/ports"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// sunPerTRX converts between TRX and the node's integer sun amounts.
const sunPerTRX = 1_000_000

// Client talks to a TronGrid-compatible node over its HTTP wallet API.
// It implements ports.BalanceSource and ports.TransferExecutor.
type Client struct {
	http *resty.Client
	log  zerolog.Logger
}

// NewClient creates a node client from config.
func NewClient(cfg config.TronConfig, log zerolog.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(cfg.Node).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json")
	if cfg.APIKey != "" {
		httpClient.SetHeader("TRON-PRO-API-KEY", cfg.APIKey)
	}
	return &Client{http: httpClient, log: log}
}

type accountResponse struct {
	Balance int64  `json:"balance"`
	Error   string `json:"Error"`
}

// FetchBalance returns the address's TRX balance. An account the chain
// has never seen comes back as an empty object, which reads as zero.
func (c *Client) FetchBalance(ctx context.Context, address string) (float64, error) {
	var out accountResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]any{"address": address, "visible": true}).
		SetResult(&out).
		Post("/wallet/getaccount")
	if err != nil {
		return 0, fmt.Errorf("getaccount: %w", err)
	}
	if resp.IsError() {
		return 0, fmt.Errorf("getaccount: node returned %s", resp.Status())
	}
	if out.Error != "" {
		return 0, fmt.Errorf("getaccount: %s", out.Error)
	}
	return float64(out.Balance) / sunPerTRX, nil
}

type broadcastResponse struct {
	Result  bool   `json:"result"`
	TxID    string `json:"txid"`
	Code    string `json:"code"`
	Message string `json:"message"` // hex-encoded reason text
}

// reason renders the node's rejection in readable form.
func (r broadcastResponse) reason() string {
	msg := r.Message
	if decoded, err := hex.DecodeString(r.Message); err == nil {
		msg = string(decoded)
	}
	switch {
	case r.Code != "" && msg != "":
		return r.Code + ": " + msg
	case msg != "":
		return msg
	case r.Code != "":
		return r.Code
	}
	return "transaction rejected"
}

// Execute builds, signs and broadcasts a TRX transfer. The returned
// error carries the node's rejection reason when the broadcast fails.
func (c *Client) Execute(ctx context.Context, fromAddress, toAddress string, amount float64, privateKeyHex string) (*ports.TransferReceipt, error) {
	sun := int64(math.Round(amount * sunPerTRX))

	var tx map[string]any
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"owner_address": fromAddress,
			"to_address":    toAddress,
			"amount":        sun,
			"visible":       true,
		}).
		SetResult(&tx).
		Post("/wallet/createtransaction")
	if err != nil {
		return nil, fmt.Errorf("createtransaction: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("createtransaction: node returned %s", resp.Status())
	}
	if errMsg, ok := tx["Error"].(string); ok && errMsg != "" {
		return nil, errors.New(errMsg)
	}

	rawDataHex, ok := tx["raw_data_hex"].(string)
	if !ok || rawDataHex == "" {
		return nil, errors.New("createtransaction: missing raw_data_hex")
	}

	signature, err := signRawData(rawDataHex, privateKeyHex)
	if err != nil {
		return nil, err
	}
	tx["signature"] = []string{signature}

	var receipt broadcastResponse
	resp, err = c.http.R().
		SetContext(ctx).
		SetBody(tx).
		SetResult(&receipt).
		Post("/wallet/broadcasttransaction")
	if err != nil {
		return nil, fmt.Errorf("broadcasttransaction: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("broadcasttransaction: node returned %s", resp.Status())
	}
	if !receipt.Result {
		return nil, errors.New(receipt.reason())
	}

	txID := receipt.TxID
	if txID == "" {
		txID, _ = tx["txID"].(string)
	}

	c.log.Debug().Str("txid", txID).Msg("transaction broadcast accepted")
	return &ports.TransferReceipt{TxID: txID}, nil
}

// signRawData signs sha256(raw_data) with the secp256k1 key, producing
// the 65-byte recoverable signature the node expects, hex encoded.
func signRawData(rawDataHex, privateKeyHex string) (string, error) {
	raw, err := hex.DecodeString(rawDataHex)
	if err != nil {
		return "", fmt.Errorf("decode raw_data_hex: %w", err)
	}
	keyBytes, err := hex.DecodeString(privateKeyHex)
	if err != nil {
		return "", fmt.Errorf("decode private key: %w", err)
	}
	privKey, err := crypto.ToECDSA(keyBytes)
	if err != nil {
		return "", fmt.Errorf("parse private key: %w", err)
	}

	hash := sha256.Sum256(raw)
	sig, err := crypto.Sign(hash[:], privKey)
	if err != nil {
		return "", fmt.Errorf("sign transaction: %w", err)
	}
	return hex.EncodeToString(sig), nil
}
