package nns

import (
	"context"
	"fmt"

	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/nspcc-dev/nns-client/nns"
	"github.com/nspcc-dev/nns-client/rpc/invocation"
	"go.uber.org/zap"
)

// Buy registers the name for the owner.
func (c *Client) Buy(ctx context.Context, name string, owner util.Uint160, signer transaction.Signer, mode Mode) (*Result, error) {
	return c.invoke(ctx, invocation.Register(c.contract, name, owner), signer, mode)
}

// Renew prolongs registration of the name for the given number of years.
func (c *Client) Renew(ctx context.Context, name string, years int, signer transaction.Signer, mode Mode) (*Result, error) {
	return c.invoke(ctx, invocation.Renew(c.contract, name, years), signer, mode)
}

// SetAdmin sets the account with the given Neo address as the name admin.
func (c *Client) SetAdmin(ctx context.Context, name string, admin string, signer transaction.Signer, mode Mode) (*Result, error) {
	h, err := scriptHash(admin)
	if err != nil {
		return nil, err
	}
	return c.invoke(ctx, invocation.SetAdmin(c.contract, name, h), signer, mode)
}

// Transfer transfers the name to the account with the given Neo address. Data
// is passed to the receiver contract as is.
func (c *Client) Transfer(ctx context.Context, to string, name string, data string, signer transaction.Signer, mode Mode) (*Result, error) {
	h, err := scriptHash(to)
	if err != nil {
		return nil, err
	}
	return c.invoke(ctx, invocation.Transfer(c.contract, h, name, data), signer, mode)
}

// SetRecord sets the record of the given type.
func (c *Client) SetRecord(ctx context.Context, name string, typ nns.RecordType, data string, signer transaction.Signer, mode Mode) (*Result, error) {
	return c.invoke(ctx, invocation.SetRecord(c.contract, name, typ, data), signer, mode)
}

// DeleteRecord deletes the record of the given type.
func (c *Client) DeleteRecord(ctx context.Context, name string, typ nns.RecordType, signer transaction.Signer, mode Mode) (*Result, error) {
	return c.invoke(ctx, invocation.DeleteRecord(c.contract, name, typ), signer, mode)
}

// invoke simulates inv and, depending on mode and simulation result, sends
// it and waits for it.
func (c *Client) invoke(ctx context.Context, inv invocation.Invocation, signer transaction.Signer, mode Mode) (*Result, error) {
	gw, err := c.gateway()
	if err != nil {
		return nil, err
	}

	signers := []transaction.Signer{signer}

	res, err := gw.Simulate(signers, inv)
	if err != nil {
		return nil, fmt.Errorf("simulate %s: %w", inv.Operation, err)
	}
	if res == nil {
		return nil, fmt.Errorf("simulate %s: %w", inv.Operation, ErrEmptyResult)
	}

	r := &Result{
		Invoke:  res,
		Success: succeeded(res),
	}

	c.log.Debug("state-changing call simulated", zap.String("method", inv.Operation),
		zap.Stringer("mode", mode), zap.String("state", res.State),
		zap.Int("notifications", len(res.Notifications)), zap.Bool("success", r.Success))

	if mode == ModeSimulate || !r.Success {
		return r, nil
	}

	r.TxHash, r.ValidUntilBlock, err = gw.Execute(signers, inv)
	if err != nil {
		return nil, fmt.Errorf("execute %s: %w", inv.Operation, err)
	}
	if !r.Sent() {
		return nil, fmt.Errorf("execute %s: %w", inv.Operation, ErrNoTransaction)
	}

	c.log.Info("transaction sent", zap.String("method", inv.Operation),
		zap.Stringer("hash", r.TxHash), zap.Uint32("vub", r.ValidUntilBlock))

	if mode != ModeExecuteAndWait {
		return r, nil
	}

	r.AppLog, err = gw.AwaitLog(ctx, r.TxHash, r.ValidUntilBlock)
	if err != nil {
		return nil, fmt.Errorf("await %s transaction %s: %w", inv.Operation, r.TxHash.StringLE(), err)
	}

	if err = gw.Confirm(r.AppLog); err != nil {
		return nil, fmt.Errorf("confirm %s transaction %s: %w", inv.Operation, r.TxHash.StringLE(), err)
	}

	return r, nil
}

// succeeded checks that the test invocation halted and emitted a notification.
// NNS contract always notifies about the real state change.
func succeeded(res *result.Invoke) bool {
	return res.State == vmstate.Halt.String() && len(res.Notifications) > 0
}
