package nns

import (
	"fmt"
	"strconv"
	"strings"

	neonns "github.com/nspcc-dev/neo-go/pkg/rpcclient/nns"
)

// RecordType is a type of the domain name record. Its values match
// [neonns.RecordType] and are passed to the contract as integers.
type RecordType byte

// Record types supported by the contract.
const (
	A     = RecordType(neonns.A)
	CNAME = RecordType(neonns.CNAME)
	TXT   = RecordType(neonns.TXT)
	AAAA  = RecordType(neonns.AAAA)
)

var recordTypeNames = map[RecordType]string{
	A:     "A",
	CNAME: "CNAME",
	TXT:   "TXT",
	AAAA:  "AAAA",
}

// String implements fmt.Stringer.
func (t RecordType) String() string {
	if s, ok := recordTypeNames[t]; ok {
		return s
	}
	return "RecordType(" + strconv.Itoa(int(t)) + ")"
}

// IsValid checks whether t is one of the types supported by the contract.
func (t RecordType) IsValid() bool {
	_, ok := recordTypeNames[t]
	return ok
}

// ParseRecordType parses record type from its name (case-insensitive, "IPv4"
// and "IPv6" aliases are accepted) or its decimal code.
func ParseRecordType(s string) (RecordType, error) {
	switch strings.ToUpper(s) {
	case "A", "IPV4":
		return A, nil
	case "CNAME":
		return CNAME, nil
	case "TXT":
		return TXT, nil
	case "AAAA", "IPV6":
		return AAAA, nil
	}

	n, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("unknown record type %q", s)
	}

	t := RecordType(n)
	if !t.IsValid() {
		return 0, fmt.Errorf("unsupported record type %d", n)
	}
	return t, nil
}
