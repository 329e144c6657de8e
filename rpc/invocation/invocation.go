/*
Package invocation builds typed descriptors of NNS contract calls.

Every builder is a pure function of its arguments: it neither validates them
nor touches the network, the contract is the only authority on what is
acceptable. Descriptors are turned into a VM script with [Script].
*/
package invocation

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/nspcc-dev/neo-go/pkg/smartcontract"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

// Invocation describes a single contract method call.
type Invocation struct {
	Contract  util.Uint160
	Operation string
	Args      []smartcontract.Parameter
}

// New creates an Invocation of the given contract method.
func New(contract util.Uint160, operation string, args ...smartcontract.Parameter) Invocation {
	return Invocation{
		Contract:  contract,
		Operation: operation,
		Args:      args,
	}
}

// Integer makes Integer parameter.
func Integer(v int64) smartcontract.Parameter {
	return smartcontract.Parameter{Type: smartcontract.IntegerType, Value: big.NewInt(v)}
}

// String makes String parameter.
func String(s string) smartcontract.Parameter {
	return smartcontract.Parameter{Type: smartcontract.StringType, Value: s}
}

// ByteArray makes ByteArray parameter.
func ByteArray(b []byte) smartcontract.Parameter {
	return smartcontract.Parameter{Type: smartcontract.ByteArrayType, Value: b}
}

// Hash160 makes Hash160 parameter.
func Hash160(u util.Uint160) smartcontract.Parameter {
	return smartcontract.Parameter{Type: smartcontract.Hash160Type, Value: u}
}

// Any makes Any parameter. Only nil and string values are supported.
func Any(v any) smartcontract.Parameter {
	return smartcontract.Parameter{Type: smartcontract.AnyType, Value: v}
}

// Params returns invocation arguments in the form accepted by the script
// emitter.
func (i Invocation) Params() ([]any, error) {
	res := make([]any, len(i.Args))
	for j, p := range i.Args {
		v, err := emitable(p)
		if err != nil {
			return nil, fmt.Errorf("argument #%d of %s: %w", j, i.Operation, err)
		}
		res[j] = v
	}
	return res, nil
}

func emitable(p smartcontract.Parameter) (any, error) {
	switch p.Type {
	case smartcontract.IntegerType:
		v, ok := p.Value.(*big.Int)
		if !ok {
			return nil, fmt.Errorf("unexpected %s value %T", p.Type, p.Value)
		}
		return v, nil
	case smartcontract.StringType:
		v, ok := p.Value.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected %s value %T", p.Type, p.Value)
		}
		return v, nil
	case smartcontract.ByteArrayType:
		v, ok := p.Value.([]byte)
		if !ok {
			return nil, fmt.Errorf("unexpected %s value %T", p.Type, p.Value)
		}
		return v, nil
	case smartcontract.Hash160Type:
		v, ok := p.Value.(util.Uint160)
		if !ok {
			return nil, fmt.Errorf("unexpected %s value %T", p.Type, p.Value)
		}
		return v, nil
	case smartcontract.AnyType:
		switch v := p.Value.(type) {
		case nil:
			return nil, nil
		case string:
			return v, nil
		default:
			return nil, fmt.Errorf("unexpected %s value %T", p.Type, p.Value)
		}
	default:
		return nil, fmt.Errorf("unsupported parameter type %s", p.Type)
	}
}

// Script creates a VM script calling all the given invocations one after
// another. Results of all calls are left on the stack in the same order.
func Script(invs ...Invocation) ([]byte, error) {
	if len(invs) == 0 {
		return nil, errors.New("no invocations")
	}

	b := smartcontract.NewBuilder()
	for _, inv := range invs {
		params, err := inv.Params()
		if err != nil {
			return nil, err
		}
		b.InvokeMethod(inv.Contract, inv.Operation, params...)
	}
	return b.Script()
}
