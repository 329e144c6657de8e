package nns

import (
	"errors"
	"math/big"
	"strconv"

	"github.com/nspcc-dev/neo-go/pkg/encoding/fixedn"
)

// PriceDecimals is the precision of prices returned by the contract (GAS
// fractions).
const PriceDecimals = 8

// ErrInvalidName is returned when the contract reports the name as invalid
// while calculating its price.
var ErrInvalidName = errors.New("invalid domain name")

// invalidPrice is the value getPrice returns for names it can't price.
var invalidPrice = big.NewInt(-1)

// PriceFromRaw converts fixed-point price returned by the contract into GAS
// amount. The -1 sentinel is reported as [ErrInvalidName].
func PriceFromRaw(raw *big.Int) (float64, error) {
	if raw.Cmp(invalidPrice) == 0 {
		return 0, ErrInvalidName
	}
	return strconv.ParseFloat(fixedn.ToString(raw, PriceDecimals), 64)
}
