package audit

import "encoding/binary"

// Keyspace helpers for Pebble keys.
//
// Layout (byte-wise, lexicographically sortable so a range scan over a
// namespace and node yields entries in generation order):
// - ns/{ns}/audit/{node}/e/{seq_be8}
// - ns/{ns}/audit/{node}/m

var (
	nsPrefix   = []byte("ns/")
	auditSeg   = []byte("/audit/")
	entrySeg   = []byte("/e/")
	metaSuffix = []byte("/m")
)

func appendBE8(dst []byte, v uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return append(dst, b[:]...)
}

// keyEntry builds the key for a single audit record.
func keyEntry(namespace, node string, seq uint64) []byte {
	k := make([]byte, 0, len(namespace)+len(node)+40)
	k = append(k, nsPrefix...)
	k = append(k, namespace...)
	k = append(k, auditSeg...)
	k = append(k, node...)
	k = append(k, entrySeg...)
	k = appendBE8(k, seq)
	return k
}

// keyMeta builds the key for a namespace/node's running sequence counter.
func keyMeta(namespace, node string) []byte {
	k := make([]byte, 0, len(namespace)+len(node)+24)
	k = append(k, nsPrefix...)
	k = append(k, namespace...)
	k = append(k, auditSeg...)
	k = append(k, node...)
	k = append(k, metaSuffix...)
	return k
}

// keyEntryPrefix returns the range prefix that bounds all entries for a
// namespace/node pair, for use as an iterator's lower/upper bound.
func keyEntryPrefix(namespace, node string) []byte {
	k := make([]byte, 0, len(namespace)+len(node)+24)
	k = append(k, nsPrefix...)
	k = append(k, namespace...)
	k = append(k, auditSeg...)
	k = append(k, node...)
	k = append(k, entrySeg...)
	return k
}

// prefixUpperBound returns the smallest key that is strictly greater than
// every key with the given prefix, for use as an iterator upper bound.
func prefixUpperBound(prefix []byte) []byte {
	ub := append([]byte(nil), prefix...)
	for i := len(ub) - 1; i >= 0; i-- {
		if ub[i] < 0xff {
			ub[i]++
			return ub[:i+1]
		}
	}
	return nil
}
