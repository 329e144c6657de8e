package nns

import (
	"errors"
	"fmt"
	"slices"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/nns-client/rpc/invocation"
)

// MainNetHash is the hash of NNS contract deployed in Neo N3 main network.
var MainNetHash = util.Uint160{
	0xde, 0x46, 0x5f, 0x5d, 0x50, 0x57, 0xcf, 0x33, 0x28, 0x47,
	0x94, 0xc5, 0xcf, 0xc2, 0x0c, 0x69, 0x37, 0x1c, 0xac, 0x50,
}

// ErrABIMismatch is returned by [CheckABI] if the deployed contract misses
// some method used by the [Client].
var ErrABIMismatch = errors.New("NNS contract ABI mismatch")

// ContractStateGetter is the interface required for contract state resolution
// using a known contract hash.
type ContractStateGetter interface {
	GetContractStateByHash(util.Uint160) (*state.Contract, error)
}

// CheckABI checks that the contract deployed with the given hash has all the
// methods called by the [Client] with the expected number of parameters.
func CheckABI(sg ContractStateGetter, h util.Uint160) error {
	c, err := sg.GetContractStateByHash(h)
	if err != nil {
		return fmt.Errorf("get contract %s state: %w", h.StringLE(), err)
	}

	var missing []string
	for name, paramCount := range invocation.Methods {
		if c.Manifest.ABI.GetMethod(name, paramCount) == nil {
			missing = append(missing, fmt.Sprintf("%s/%d", name, paramCount))
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return fmt.Errorf("%w: contract %s has no methods %v", ErrABIMismatch, h.StringLE(), missing)
	}

	return nil
}
