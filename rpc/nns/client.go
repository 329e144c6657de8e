/*
Package nns provides a client of the Neo Name Service contract.

Every [Client] method maps to a single NNS contract call. Read methods only
test-invoke the contract. State-changing methods always simulate the call
first and broadcast a transaction only when asked to by the [Mode] argument.
*/
package nns

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"github.com/nspcc-dev/nns-client/rpc/gateway"
	"github.com/nspcc-dev/nns-client/rpc/invocation"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Errors returned by the [Client].
var (
	ErrAlreadyInitialized = errors.New("NNS client already initialized")
	ErrNotInitialized     = errors.New("NNS client is not initialized")
	ErrEmptyResult        = errors.New("empty invocation result")
	ErrInvalidAddress     = errors.New("invalid Neo address")
	ErrRecordNotFound     = errors.New("record not found")
	ErrUnexpectedItem     = errors.New("unexpected stack item")
	ErrTruncatedIterator  = errors.New("iterator values are truncated")
	ErrNoTransaction      = errors.New("no transaction hash returned")
)

// Gateway is the blockchain access the [Client] needs. It's implemented by
// [gateway.RPC].
type Gateway interface {
	// Simulate test-invokes invs on behalf of signers.
	Simulate(signers []transaction.Signer, invs ...invocation.Invocation) (*result.Invoke, error)
	// Execute sends the transaction calling invs and returns its hash and
	// ValidUntilBlock.
	Execute(signers []transaction.Signer, invs ...invocation.Invocation) (util.Uint256, uint32, error)
	// AwaitLog waits for the application log of the sent transaction.
	AwaitLog(ctx context.Context, txHash util.Uint256, vub uint32) (*state.AppExecResult, error)
	// Confirm checks the application log of the transaction.
	Confirm(log *state.AppExecResult) error
	TraverseIterator(sessionID uuid.UUID, iterator *result.Iterator, num int) ([]stackitem.Item, error)
	TerminateSession(sessionID uuid.UUID) error
}

// Mode defines how far a state-changing call goes.
type Mode uint8

const (
	// ModeSimulate only test-invokes the call, nothing is sent.
	ModeSimulate Mode = iota
	// ModeExecute sends the transaction if simulation succeeded.
	ModeExecute
	// ModeExecuteAndWait additionally waits for the transaction to be
	// accepted and checks its result.
	ModeExecuteAndWait
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case ModeSimulate:
		return "simulate"
	case ModeExecute:
		return "execute"
	case ModeExecuteAndWait:
		return "execute-and-wait"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// Result is a result of the state-changing call.
type Result struct {
	// Test invocation result, always set.
	Invoke *result.Invoke
	// Success is true if the test invocation halted and emitted at least one
	// notification.
	Success bool

	// Set for ModeExecute and ModeExecuteAndWait only if Success.
	TxHash          util.Uint256
	ValidUntilBlock uint32

	// Set for ModeExecuteAndWait only if Success.
	AppLog *state.AppExecResult
}

// Sent checks whether the transaction has been sent.
func (r *Result) Sent() bool {
	return !r.TxHash.Equals(util.Uint256{})
}

// Prm groups [Client] parameters.
type Prm struct {
	// Optional, zap.NewNop is used if not set.
	Logger *zap.Logger

	// NNS contract hash, MainNetHash if not set.
	Contract util.Uint160

	// Timeouts of the RPC connection opened by [Client.Init]. Defaults are
	// used if not set.
	DialTimeout    time.Duration
	RequestTimeout time.Duration

	// Optional registry of RPC metrics.
	Registerer prometheus.Registerer
}

// Client is a client of the NNS contract. It must be initialized either by
// [NewWithGateway] or by [Client.Init] before use. Client is safe for
// concurrent use.
type Client struct {
	contract util.Uint160
	log      *zap.Logger
	prm      Prm

	mtx    sync.RWMutex
	gw     Gateway
	closer func()
	closed bool
}

// New returns uninitialized Client, [Client.Init] must be called before use.
func New(prm Prm) *Client {
	if prm.Logger == nil {
		prm.Logger = zap.NewNop()
	}
	if prm.Contract.Equals(util.Uint160{}) {
		prm.Contract = MainNetHash
	}

	return &Client{
		contract: prm.Contract,
		log:      prm.Logger,
		prm:      prm,
	}
}

// NewWithGateway returns Client working through the given Gateway.
func NewWithGateway(gw Gateway, prm Prm) *Client {
	c := New(prm)
	c.gw = gw
	return c
}

// Init connects to the Neo RPC server at endpoint. The accounts are used to
// sign transactions of state-changing calls, they must be decrypted. Init
// returns [ErrAlreadyInitialized] if the client has already been initialized,
// even if it has been closed since.
func (c *Client) Init(ctx context.Context, endpoint string, accounts ...*wallet.Account) error {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	if c.gw != nil || c.closed {
		return ErrAlreadyInitialized
	}

	rpc, err := gateway.Dial(ctx, gateway.Prm{
		Endpoint:       endpoint,
		Accounts:       accounts,
		DialTimeout:    c.prm.DialTimeout,
		RequestTimeout: c.prm.RequestTimeout,
		Logger:         c.log,
		Registerer:     c.prm.Registerer,
	})
	if err != nil {
		return fmt.Errorf("open RPC gateway: %w", err)
	}

	c.gw = rpc
	c.closer = rpc.Close

	c.log.Info("NNS client initialized", zap.String("endpoint", endpoint),
		zap.Stringer("contract", c.contract))

	return nil
}

// Close releases the RPC connection opened by [Client.Init]. Calls made
// after Close return [ErrNotInitialized].
func (c *Client) Close() {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	if c.gw == nil {
		return
	}
	if c.closer != nil {
		c.closer()
		c.closer = nil
	}
	c.gw = nil
	c.closed = true
}

// Contract returns hash of the NNS contract the client works with.
func (c *Client) Contract() util.Uint160 {
	return c.contract
}

func (c *Client) gateway() (Gateway, error) {
	c.mtx.RLock()
	defer c.mtx.RUnlock()

	if c.gw == nil {
		return nil, ErrNotInitialized
	}
	return c.gw, nil
}
