// Package iso8583 implements the acquiring-bank connection for banks that
// speak ISO 8583 over TCP instead of JSON over HTTP.
package iso8583

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"time"

	"github.com/alovak/payment-gateway/bank"
	"github.com/moov-io/iso8583"
	connection "github.com/moov-io/iso8583-connection"
)

// approvalCodeApproved is the field 39 value for an approved authorization.
const approvalCodeApproved = "00"

// Client authorizes payments over a persistent ISO 8583 connection.
type Client struct {
	conn *connection.Connection
	stan uint32
}

// NewClient connects to the bank at addr. Responses are awaited up to timeout.
func NewClient(addr string, timeout time.Duration) (*Client, error) {
	conn, err := connection.New(
		addr,
		spec,
		readMessageLength,
		writeMessageLength,
		connection.SendTimeout(timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("creating iso8583 connection: %w", err)
	}

	if err := conn.Connect(); err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", addr, err)
	}

	return &Client{conn: conn}, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

type authorizationRequest struct {
	MTI        string `index:"0"`
	PAN        string `index:"2"`
	Amount     string `index:"4"`
	STAN       string `index:"11"`
	Expiration string `index:"14"`
	Currency   string `index:"49"`
}

type authorizationResponse struct {
	AuthorizationCode string `index:"38"`
	ResponseCode      string `index:"39"`
}

func (c *Client) Authorize(ctx context.Context, req bank.AuthorizationRequest) (bank.AuthorizationResult, error) {
	msg := iso8583.NewMessage(spec)

	err := msg.Marshal(&authorizationRequest{
		MTI:        "0100",
		PAN:        req.CardNumber,
		// The STAN is marshaled unpadded: the spec pads field 11 at pack
		// time, and the connection matches responses to requests by the
		// unpacked (unpadded) value.
		Amount:     fmt.Sprintf("%d", req.Amount),
		STAN:       fmt.Sprintf("%d", c.nextSTAN()),
		Expiration: fmt.Sprintf("%02d%02d", req.ExpiryYear%100, req.ExpiryMonth),
		Currency:   strings.ToUpper(req.Currency),
	})
	if err != nil {
		return bank.AuthorizationResult{}, &bank.GatewayError{Reason: fmt.Sprintf("building authorization message: %v", err)}
	}

	response, err := c.conn.Send(msg)
	if err != nil {
		return bank.AuthorizationResult{}, &bank.GatewayError{Reason: fmt.Sprintf("sending authorization message: %v", err)}
	}

	res := authorizationResponse{}
	if err := response.Unmarshal(&res); err != nil {
		return bank.AuthorizationResult{}, &bank.GatewayError{Reason: fmt.Sprintf("decoding authorization response: %v", err)}
	}

	return bank.AuthorizationResult{
		Authorized:        res.ResponseCode == approvalCodeApproved,
		AuthorizationCode: res.AuthorizationCode,
	}, nil
}

// nextSTAN returns the next systems trace audit number, wrapping at 6 digits.
func (c *Client) nextSTAN() uint32 {
	return atomic.AddUint32(&c.stan, 1) % 1_000_000
}

// Messages are framed with a 2-byte big endian length header.
func readMessageLength(r io.Reader) (int, error) {
	header := make([]byte, 2)
	if _, err := io.ReadFull(r, header); err != nil {
		return 0, fmt.Errorf("reading message length header: %w", err)
	}
	return int(binary.BigEndian.Uint16(header)), nil
}

func writeMessageLength(w io.Writer, length int) (int, error) {
	header := make([]byte, 2)
	binary.BigEndian.PutUint16(header, uint16(length))
	return w.Write(header)
}
