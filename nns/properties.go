package nns

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// Properties are the NEP-11 properties of a registered domain name.
type Properties struct {
	Name       string
	Expiration time.Time
	// Admin is nil if the name has no admin set.
	Admin *util.Uint160
	Image string
}

// Keys of the properties map.
const (
	propName       = "name"
	propExpiration = "expiration"
	propAdmin      = "admin"
	propImage      = "image"
)

// FromStackItem retrieves fields of Properties from the given
// [stackitem.Item] or returns an error if it's not possible to do so. The
// item must be a map with at least "name" and "expiration" keys, unknown keys
// are ignored.
func (p *Properties) FromStackItem(item stackitem.Item) error {
	m, ok := item.Value().([]stackitem.MapElement)
	if !ok || item.Type() != stackitem.MapT {
		return errors.New("not a map")
	}

	var seenName, seenExpiration bool

	for i := range m {
		k, err := m[i].Key.TryBytes()
		if err != nil {
			return fmt.Errorf("key %d: %w", i, err)
		}

		v := m[i].Value
		switch string(k) {
		case propName:
			p.Name, err = utf8String(v)
			if err != nil {
				return fmt.Errorf("field Name: %w", err)
			}
			seenName = true
		case propExpiration:
			exp, err := v.TryInteger()
			if err != nil {
				return fmt.Errorf("field Expiration: %w", err)
			}
			if !exp.IsInt64() {
				return errors.New("field Expiration: value overflows int64")
			}
			p.Expiration = time.UnixMilli(exp.Int64())
			seenExpiration = true
		case propAdmin:
			p.Admin, err = optionalUint160(v)
			if err != nil {
				return fmt.Errorf("field Admin: %w", err)
			}
		case propImage:
			if v.Type() == stackitem.AnyT {
				continue
			}
			p.Image, err = utf8String(v)
			if err != nil {
				return fmt.Errorf("field Image: %w", err)
			}
		}
	}

	if !seenName {
		return errors.New("missing name")
	}
	if !seenExpiration {
		return errors.New("missing expiration")
	}
	return nil
}

func utf8String(item stackitem.Item) (string, error) {
	b, err := item.TryBytes()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", errors.New("not a UTF-8 string")
	}
	return string(b), nil
}

func optionalUint160(item stackitem.Item) (*util.Uint160, error) {
	if item.Type() == stackitem.AnyT {
		return nil, nil
	}
	b, err := item.TryBytes()
	if err != nil {
		return nil, err
	}
	u, err := util.Uint160DecodeBytesBE(b)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
