package nns

import (
	"fmt"
	"math/big"

	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/nspcc-dev/nns-client/nns"
	"github.com/nspcc-dev/nns-client/rpc/invocation"
	"go.uber.org/zap"
)

// GetPrice returns price of the name registration in GAS. The name is checked
// with [nns.CheckName] before the contract is called. [nns.ErrInvalidName] is
// returned if the contract refuses to price the name.
func (c *Client) GetPrice(name string) (float64, error) {
	if err := nns.CheckName(name); err != nil {
		return 0, err
	}

	res, err := c.call(invocation.GetPrice(c.contract, nns.LabelLength(name)))
	if err != nil {
		return 0, fmt.Errorf("get price of %s: %w", name, err)
	}

	raw, err := unwrap.BigInt(res, nil)
	if err != nil {
		return 0, fmt.Errorf("get price of %s: %w: %w", name, ErrUnexpectedItem, err)
	}

	price, err := nns.PriceFromRaw(raw)
	if err != nil {
		return 0, fmt.Errorf("get price of %s: %w", name, err)
	}
	return price, nil
}

// GetBalance returns the number of names owned by the account with the given
// Neo address.
func (c *Client) GetBalance(addr string) (*big.Int, error) {
	owner, err := scriptHash(addr)
	if err != nil {
		return nil, err
	}

	res, err := c.call(invocation.BalanceOf(c.contract, owner))
	if err != nil {
		return nil, fmt.Errorf("get balance of %s: %w", addr, err)
	}

	b, err := unwrap.BigInt(res, nil)
	if err != nil {
		return nil, fmt.Errorf("get balance of %s: %w: %w", addr, ErrUnexpectedItem, err)
	}
	return b, nil
}

// GetOwner returns Neo address of the name owner.
func (c *Client) GetOwner(name string) (string, error) {
	res, err := c.call(invocation.OwnerOf(c.contract, name))
	if err != nil {
		return "", fmt.Errorf("get owner of %s: %w", name, err)
	}

	owner, err := unwrap.Uint160(res, nil)
	if err != nil {
		return "", fmt.Errorf("get owner of %s: %w: %w", name, ErrUnexpectedItem, err)
	}
	return address.Uint160ToString(owner), nil
}

// GetRecord returns the record of the given type. [ErrRecordNotFound] is
// returned if there is no such record.
func (c *Client) GetRecord(name string, typ nns.RecordType) (string, error) {
	res, err := c.call(invocation.GetRecord(c.contract, name, typ))
	if err != nil {
		return "", fmt.Errorf("get %s record of %s: %w", typ, name, err)
	}

	rec, err := record(res)
	if err != nil {
		return "", fmt.Errorf("get %s record of %s: %w", typ, name, err)
	}
	return rec, nil
}

// Resolve resolves the name to the record of the given type following CNAME
// records. [ErrRecordNotFound] is returned if there is no such record.
func (c *Client) Resolve(name string, typ nns.RecordType) (string, error) {
	res, err := c.call(invocation.Resolve(c.contract, name, typ))
	if err != nil {
		return "", fmt.Errorf("resolve %s record of %s: %w", typ, name, err)
	}

	rec, err := record(res)
	if err != nil {
		return "", fmt.Errorf("resolve %s record of %s: %w", typ, name, err)
	}
	return rec, nil
}

// GetAllRecords returns all records of the name. Fields of every record are
// placed one after another in the order the contract returns them.
func (c *Client) GetAllRecords(name string) ([]string, error) {
	res, err := c.enumerate(invocation.GetAllRecords(c.contract, name))
	if err != nil {
		return nil, fmt.Errorf("get records of %s: %w", name, err)
	}
	return res, nil
}

// IsAvailable checks whether the name can be registered.
func (c *Client) IsAvailable(name string) (bool, error) {
	res, err := c.call(invocation.IsAvailable(c.contract, name))
	if err != nil {
		return false, fmt.Errorf("check availability of %s: %w", name, err)
	}

	ok, err := unwrap.Bool(res, nil)
	if err != nil {
		return false, fmt.Errorf("check availability of %s: %w: %w", name, ErrUnexpectedItem, err)
	}
	return ok, nil
}

// GetProperties returns properties of the registered name.
func (c *Client) GetProperties(name string) (*nns.Properties, error) {
	res, err := c.call(invocation.Properties(c.contract, name))
	if err != nil {
		return nil, fmt.Errorf("get properties of %s: %w", name, err)
	}

	m, err := unwrap.Map(res, nil)
	if err != nil {
		return nil, fmt.Errorf("get properties of %s: %w: %w", name, ErrUnexpectedItem, err)
	}

	var p nns.Properties
	if err = p.FromStackItem(m); err != nil {
		return nil, fmt.Errorf("get properties of %s: %w: %w", name, ErrUnexpectedItem, err)
	}
	return &p, nil
}

// GetRoots returns all registered root names.
func (c *Client) GetRoots() ([]string, error) {
	res, err := c.enumerate(invocation.Roots(c.contract))
	if err != nil {
		return nil, fmt.Errorf("get roots: %w", err)
	}
	return res, nil
}

// GetAllNames returns all registered names.
func (c *Client) GetAllNames() ([]string, error) {
	res, err := c.enumerate(invocation.Tokens(c.contract))
	if err != nil {
		return nil, fmt.Errorf("get names: %w", err)
	}
	return res, nil
}

// GetTokensOf returns names owned by the account with the given Neo address.
func (c *Client) GetTokensOf(addr string) ([]string, error) {
	owner, err := scriptHash(addr)
	if err != nil {
		return nil, err
	}

	res, err := c.enumerate(invocation.TokensOf(c.contract, owner))
	if err != nil {
		return nil, fmt.Errorf("get names of %s: %w", addr, err)
	}
	return res, nil
}

// call test-invokes inv without signers. Missing, faulted and empty results
// are reported as [ErrEmptyResult].
func (c *Client) call(inv invocation.Invocation) (*result.Invoke, error) {
	gw, err := c.gateway()
	if err != nil {
		return nil, err
	}

	res, err := gw.Simulate(nil, inv)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, ErrEmptyResult
	}

	c.log.Debug("contract called", zap.String("method", inv.Operation),
		zap.String("state", res.State), zap.Int64("gas", res.GasConsumed))

	_, err = unwrap.Item(res, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEmptyResult, err)
	}
	return res, nil
}

func (c *Client) enumerate(inv invocation.Invocation) ([]string, error) {
	res, err := c.call(inv)
	if err != nil {
		return nil, err
	}

	if !isIterator(res.Stack[0]) {
		c.log.Warn("contract returned no iterator", zap.String("method", inv.Operation),
			zap.Stringer("type", res.Stack[0].Type()))
		return []string{}, nil
	}

	session, iter, err := unwrap.SessionIterator(res, nil)
	if err != nil {
		return nil, err
	}

	gw, err := c.gateway()
	if err != nil {
		return nil, err
	}

	items, err := drain(gw, session, &iter, c.log)
	if err != nil {
		return nil, err
	}

	strs := make([]string, 0, len(items))
	for i := range items {
		strs, err = appendStrings(strs, items[i])
		if err != nil {
			return nil, fmt.Errorf("item #%d: %w", i, err)
		}
	}

	c.log.Debug("contract iterator drained", zap.String("method", inv.Operation),
		zap.Int("items", len(items)))

	return strs, nil
}

// record returns the string record, Null result means there is no record.
func record(res *result.Invoke) (string, error) {
	if res.Stack[0].Type() == stackitem.AnyT {
		return "", ErrRecordNotFound
	}

	s, err := unwrap.UTF8String(res, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnexpectedItem, err)
	}
	return s, nil
}

func scriptHash(addr string) (util.Uint160, error) {
	h, err := address.StringToUint160(addr)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("%w %q: %w", ErrInvalidAddress, addr, err)
	}
	return h, nil
}
