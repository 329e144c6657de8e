/*
Package nns contains client-side model of the Neo Name Service: domain name
constraints, record types and name properties as they are returned by the NNS
contract deployed to Neo N3 networks.

Nothing in this package talks to the network, see rpc/nns for the client.
*/
package nns

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// Suffix is the root every domain name served by the contract ends with.
const Suffix = ".neo"

// MinLabelLength is the minimum length of the domain name without [Suffix].
const MinLabelLength = 3

// Errors returned by [CheckName].
var (
	// ErrMissingSuffix is returned for names that don't end with [Suffix].
	ErrMissingSuffix = errors.New(`domain name should end with "` + Suffix + `"`)
	// ErrNameTooShort is returned for names with a label shorter than
	// [MinLabelLength].
	ErrNameTooShort = errors.New("domain name should be at least 3 characters long")
)

// LabelLength returns the number of characters in name excluding [Suffix].
// It doesn't check whether name really has the suffix.
func LabelLength(name string) int {
	return utf8.RuneCountInString(name) - utf8.RuneCountInString(Suffix)
}

// CheckName checks the local preconditions of a domain name: it must end with
// [Suffix] and have at least [MinLabelLength] characters before it. The rest
// of the format (allowed characters, fragments) is checked by the contract.
func CheckName(name string) error {
	if !strings.HasSuffix(name, Suffix) {
		return ErrMissingSuffix
	}
	if LabelLength(name) < MinLabelLength {
		return ErrNameTooShort
	}
	return nil
}
