/*
Package gateway provides access to a Neo blockchain for the NNS client. It
wraps neo-go RPC client, invoker, actor and waiter into a narrow set of
operations: test invocation, transaction sending, waiting for an
application log and iterator traversal.
*/
package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/invoker"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/waiter"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"github.com/nspcc-dev/nns-client/rpc/invocation"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Default timeouts of the RPC connection.
const (
	DefaultDialTimeout    = 15 * time.Second
	DefaultRequestTimeout = 15 * time.Second
)

var (
	// ErrUnknownSigner is returned when a transaction must be signed by an
	// account the gateway has no key for.
	ErrUnknownSigner = errors.New("no account for signer")
	// ErrTxFault is returned by [RPC.Confirm] for transactions which were
	// accepted to the chain, but failed.
	ErrTxFault = errors.New("transaction execution failed")
)

// Prm groups parameters of [Dial].
type Prm struct {
	// Neo RPC server address, e.g. https://mainnet1.neo.coz.io:443.
	Endpoint string

	// Accounts used to sign transactions. Must be decrypted. May be empty
	// if only test invocations are made.
	Accounts []*wallet.Account

	// Zero values are replaced with DefaultDialTimeout and
	// DefaultRequestTimeout.
	DialTimeout    time.Duration
	RequestTimeout time.Duration

	// Optional, zap.NewNop is used if not set.
	Logger *zap.Logger

	// Optional registry of the gateway metrics.
	Registerer prometheus.Registerer
}

// RPC is a gateway to the blockchain served by a Neo RPC node.
type RPC struct {
	client   *rpcclient.Client
	version  *result.Version
	accounts []*wallet.Account
	log      *zap.Logger
	metrics  *metrics
}

// Dial connects to the Neo RPC server and returns RPC gateway based on the
// opened connection.
func Dial(ctx context.Context, prm Prm) (*RPC, error) {
	if prm.Endpoint == "" {
		return nil, errors.New("missing RPC endpoint")
	}
	if prm.DialTimeout == 0 {
		prm.DialTimeout = DefaultDialTimeout
	}
	if prm.RequestTimeout == 0 {
		prm.RequestTimeout = DefaultRequestTimeout
	}
	if prm.Logger == nil {
		prm.Logger = zap.NewNop()
	}

	m, err := newMetrics(prm.Registerer)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	c, err := rpcclient.New(ctx, prm.Endpoint, rpcclient.Options{
		DialTimeout:    prm.DialTimeout,
		RequestTimeout: prm.RequestTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("RPC client dial: %w", err)
	}

	err = c.Init()
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("RPC client init: %w", err)
	}

	v, err := c.GetVersion()
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("get RPC server version: %w", err)
	}

	prm.Logger.Debug("connected to Neo RPC server",
		zap.String("endpoint", prm.Endpoint), zap.Uint32("magic", uint32(v.Protocol.Network)),
		zap.Int("accounts", len(prm.Accounts)))

	return &RPC{
		client:   c,
		version:  v,
		accounts: prm.Accounts,
		log:      prm.Logger,
		metrics:  m,
	}, nil
}

// Close closes the RPC connection.
func (x *RPC) Close() {
	x.client.Close()
}

// Simulate test-invokes the given invocations on behalf of signers. Nothing
// is sent to the network and the chain state is not changed.
func (x *RPC) Simulate(signers []transaction.Signer, invs ...invocation.Invocation) (*result.Invoke, error) {
	defer x.metrics.observe("simulate", time.Now())

	script, err := invocation.Script(invs...)
	if err != nil {
		x.metrics.fail("simulate")
		return nil, fmt.Errorf("build script: %w", err)
	}

	res, err := invoker.New(x.client, signers).Run(script)
	if err != nil {
		x.metrics.fail("simulate")
		return nil, err
	}

	x.metrics.succeed("simulate")
	return res, nil
}

// Execute signs the transaction calling the given invocations with the
// accounts matching signers and sends it to the network. The values returned
// are its hash, ValidUntilBlock value and error if any.
func (x *RPC) Execute(signers []transaction.Signer, invs ...invocation.Invocation) (util.Uint256, uint32, error) {
	defer x.metrics.observe("execute", time.Now())

	h, vub, err := x.execute(signers, invs)
	if err != nil {
		x.metrics.fail("execute")
		return util.Uint256{}, 0, err
	}

	x.metrics.succeed("execute")
	x.log.Info("transaction sent", zap.Stringer("hash", h), zap.Uint32("vub", vub))

	return h, vub, nil
}

func (x *RPC) execute(signers []transaction.Signer, invs []invocation.Invocation) (util.Uint256, uint32, error) {
	script, err := invocation.Script(invs...)
	if err != nil {
		return util.Uint256{}, 0, fmt.Errorf("build script: %w", err)
	}

	signerAccs, err := signerAccounts(x.accounts, signers)
	if err != nil {
		return util.Uint256{}, 0, err
	}

	act, err := actor.New(x.client, signerAccs)
	if err != nil {
		return util.Uint256{}, 0, fmt.Errorf("init actor: %w", err)
	}

	return act.SendRun(script)
}

// signerAccounts pairs every signer with the account having the same script
// hash.
func signerAccounts(accs []*wallet.Account, signers []transaction.Signer) ([]actor.SignerAccount, error) {
	if len(signers) == 0 {
		return nil, errors.New("no signers")
	}

	res := make([]actor.SignerAccount, 0, len(signers))

loop:
	for i := range signers {
		for _, acc := range accs {
			if acc.ScriptHash().Equals(signers[i].Account) {
				res = append(res, actor.SignerAccount{
					Signer:  signers[i],
					Account: acc,
				})
				continue loop
			}
		}
		return nil, fmt.Errorf("%w %s", ErrUnknownSigner, signers[i].Account.StringLE())
	}

	return res, nil
}

// AwaitLog blocks until the application log of the transaction is available
// or the transaction expires (vub is passed) or ctx is done.
func (x *RPC) AwaitLog(ctx context.Context, txHash util.Uint256, vub uint32) (*state.AppExecResult, error) {
	defer x.metrics.observe("await", time.Now())

	res, err := waiter.New(x.client, x.version).WaitAny(ctx, vub, txHash)
	if err != nil {
		x.metrics.fail("await")
		return nil, fmt.Errorf("wait for transaction %s: %w", txHash.StringLE(), err)
	}

	x.metrics.succeed("await")
	return res, nil
}

// Confirm checks that the logged transaction has been executed successfully
// and returns [ErrTxFault] otherwise.
func (x *RPC) Confirm(log *state.AppExecResult) error {
	err := Confirm(log)
	if err != nil {
		return err
	}

	x.log.Info("transaction confirmed", zap.Stringer("hash", log.Container),
		zap.Int64("gas", log.GasConsumed), zap.Int("events", len(log.Events)))

	return nil
}

// Confirm checks that the logged transaction has been executed successfully.
func Confirm(log *state.AppExecResult) error {
	if log == nil {
		return errors.New("missing application log")
	}
	if log.VMState != vmstate.Halt {
		return fmt.Errorf("%w: %s: %s", ErrTxFault, log.VMState, log.FaultException)
	}
	return nil
}

// TraverseIterator returns up to num next items of the iterator returned by
// a previous test invocation.
func (x *RPC) TraverseIterator(sessionID uuid.UUID, iterator *result.Iterator, num int) ([]stackitem.Item, error) {
	defer x.metrics.observe("traverse", time.Now())

	items, err := invoker.New(x.client, nil).TraverseIterator(sessionID, iterator, num)
	if err != nil {
		x.metrics.fail("traverse")
		return nil, err
	}

	x.metrics.succeed("traverse")
	return items, nil
}

// TerminateSession closes the iterator session on the server.
func (x *RPC) TerminateSession(sessionID uuid.UUID) error {
	return invoker.New(x.client, nil).TerminateSession(sessionID)
}

// GetContractStateByHash returns network state of the smart contract.
func (x *RPC) GetContractStateByHash(h util.Uint160) (*state.Contract, error) {
	return x.client.GetContractStateByHash(h)
}
