package invocation

import (
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/nns-client/nns"
)

// Various methods of the NNS contract.
const (
	MethodGetPrice      = "getPrice"
	MethodBalanceOf     = "balanceOf"
	MethodGetRecord     = "getRecord"
	MethodGetAllRecords = "getAllRecords"
	MethodSetRecord     = "setRecord"
	MethodDeleteRecord  = "deleteRecord"
	MethodOwnerOf       = "ownerOf"
	MethodProperties    = "properties"
	MethodIsAvailable   = "isAvailable"
	MethodRegister      = "register"
	MethodRenew         = "renew"
	MethodResolve       = "resolve"
	MethodRoots         = "roots"
	MethodTokens        = "tokens"
	MethodSetAdmin      = "setAdmin"
	MethodTokensOf      = "tokensOf"
	MethodTransfer      = "transfer"
)

// Methods maps every NNS method used by this package to the number of its
// parameters.
var Methods = map[string]int{
	MethodGetPrice:      1,
	MethodBalanceOf:     1,
	MethodGetRecord:     2,
	MethodGetAllRecords: 1,
	MethodSetRecord:     3,
	MethodDeleteRecord:  2,
	MethodOwnerOf:       1,
	MethodProperties:    1,
	MethodIsAvailable:   1,
	MethodRegister:      2,
	MethodRenew:         2,
	MethodResolve:       2,
	MethodRoots:         0,
	MethodTokens:        0,
	MethodSetAdmin:      2,
	MethodTokensOf:      1,
	MethodTransfer:      3,
}

// GetPrice returns invocation of [MethodGetPrice] for names with the label of
// the given length.
func GetPrice(contract util.Uint160, length int) Invocation {
	return New(contract, MethodGetPrice, Integer(int64(length)))
}

// BalanceOf returns invocation of [MethodBalanceOf].
func BalanceOf(contract util.Uint160, owner util.Uint160) Invocation {
	return New(contract, MethodBalanceOf, Hash160(owner))
}

// GetRecord returns invocation of [MethodGetRecord].
func GetRecord(contract util.Uint160, name string, typ nns.RecordType) Invocation {
	return New(contract, MethodGetRecord, String(name), Integer(int64(typ)))
}

// GetAllRecords returns invocation of [MethodGetAllRecords].
func GetAllRecords(contract util.Uint160, name string) Invocation {
	return New(contract, MethodGetAllRecords, String(name))
}

// SetRecord returns invocation of [MethodSetRecord].
func SetRecord(contract util.Uint160, name string, typ nns.RecordType, data string) Invocation {
	return New(contract, MethodSetRecord, String(name), Integer(int64(typ)), String(data))
}

// DeleteRecord returns invocation of [MethodDeleteRecord].
func DeleteRecord(contract util.Uint160, name string, typ nns.RecordType) Invocation {
	return New(contract, MethodDeleteRecord, String(name), Integer(int64(typ)))
}

// OwnerOf returns invocation of [MethodOwnerOf].
func OwnerOf(contract util.Uint160, name string) Invocation {
	return New(contract, MethodOwnerOf, String(name))
}

// Properties returns invocation of [MethodProperties]. The name is passed as
// a binary token ID.
func Properties(contract util.Uint160, name string) Invocation {
	return New(contract, MethodProperties, ByteArray([]byte(name)))
}

// IsAvailable returns invocation of [MethodIsAvailable].
func IsAvailable(contract util.Uint160, name string) Invocation {
	return New(contract, MethodIsAvailable, String(name))
}

// Register returns invocation of [MethodRegister].
func Register(contract util.Uint160, name string, owner util.Uint160) Invocation {
	return New(contract, MethodRegister, String(name), Hash160(owner))
}

// Renew returns invocation of [MethodRenew].
func Renew(contract util.Uint160, name string, years int) Invocation {
	return New(contract, MethodRenew, String(name), Integer(int64(years)))
}

// Resolve returns invocation of [MethodResolve].
func Resolve(contract util.Uint160, name string, typ nns.RecordType) Invocation {
	return New(contract, MethodResolve, String(name), Integer(int64(typ)))
}

// Roots returns invocation of [MethodRoots].
func Roots(contract util.Uint160) Invocation {
	return New(contract, MethodRoots)
}

// Tokens returns invocation of [MethodTokens].
func Tokens(contract util.Uint160) Invocation {
	return New(contract, MethodTokens)
}

// SetAdmin returns invocation of [MethodSetAdmin].
func SetAdmin(contract util.Uint160, name string, admin util.Uint160) Invocation {
	return New(contract, MethodSetAdmin, String(name), Hash160(admin))
}

// TokensOf returns invocation of [MethodTokensOf].
func TokensOf(contract util.Uint160, owner util.Uint160) Invocation {
	return New(contract, MethodTokensOf, Hash160(owner))
}

// Transfer returns invocation of [MethodTransfer]. Data is passed to the
// receiver's onNEP11Payment as is.
func Transfer(contract util.Uint160, to util.Uint160, name string, data string) Invocation {
	return New(contract, MethodTransfer, Hash160(to), String(name), Any(data))
}
