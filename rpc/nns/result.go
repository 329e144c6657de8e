package nns

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"go.uber.org/zap"
)

// iteratorBatch is the number of items requested per iterator traversal.
const iteratorBatch = 100

// isIterator checks whether the item holds an iterator. Contracts may return
// other interop values, they are not enumerated.
func isIterator(item stackitem.Item) bool {
	if item.Type() != stackitem.InteropT {
		return false
	}
	_, ok := item.Value().(result.Iterator)
	return ok
}

// drain reads all values of the iterator. Session-backed iterators are read
// in batches until an empty one, then the session is terminated.
func drain(gw Gateway, session uuid.UUID, iter *result.Iterator, log *zap.Logger) ([]stackitem.Item, error) {
	if iter.ID == nil && iter.Truncated {
		return nil, ErrTruncatedIterator
	}

	if iter.ID != nil {
		defer func() {
			if err := gw.TerminateSession(session); err != nil {
				log.Warn("failed to terminate iterator session",
					zap.Stringer("session", session), zap.Error(err))
			}
		}()
	}

	var res []stackitem.Item

	items, err := gw.TraverseIterator(session, iter, iteratorBatch)
	for ; err == nil && len(items) > 0; items, err = gw.TraverseIterator(session, iter, iteratorBatch) {
		res = append(res, items...)
	}
	if err != nil {
		return nil, fmt.Errorf("traverse iterator: %w", err)
	}

	return res, nil
}

// appendStrings appends string form of the item to dst. Arrays and structs
// are flattened in order.
func appendStrings(dst []string, item stackitem.Item) ([]string, error) {
	switch item.Type() {
	case stackitem.ByteArrayT, stackitem.BufferT:
		b, err := item.TryBytes()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnexpectedItem, err)
		}
		return append(dst, string(b)), nil
	case stackitem.IntegerT:
		i, err := item.TryInteger()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnexpectedItem, err)
		}
		return append(dst, i.String()), nil
	case stackitem.BooleanT:
		b, err := item.TryBool()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnexpectedItem, err)
		}
		return append(dst, strconv.FormatBool(b)), nil
	case stackitem.ArrayT, stackitem.StructT:
		var err error
		for _, sub := range item.Value().([]stackitem.Item) {
			dst, err = appendStrings(dst, sub)
			if err != nil {
				return nil, err
			}
		}
		return dst, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedItem, item.Type())
	}
}
