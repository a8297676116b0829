package audit

import (
	"encoding/json"
	"time"

	"github.com/cockroachdb/pebble"
	pebblestore "github.com/sazikov-a/userver/internal/storage/pebble"
)

// Record is a single generation event recorded to the ledger.
type Record struct {
	ID           string `json:"id"`
	Namespace    string `json:"namespace"`
	Node         string `json:"node"`
	Sequence     uint64 `json:"sequence"`
	RecordedAtMs int64  `json:"recordedAtMs"`
}

// Ledger is an append-only log of generated identifiers, keyed by namespace
// and node so a single Pebble instance can serve many generator nodes
// without their sequence counters colliding.
type Ledger struct {
	db *pebblestore.DB
}

// Open returns a Ledger backed by db.
func Open(db *pebblestore.DB) *Ledger {
	return &Ledger{db: db}
}

// nextSequence loads and increments the running counter for namespace/node.
func (l *Ledger) nextSequence(namespace, node string) (uint64, error) {
	key := keyMeta(namespace, node)
	b, err := l.db.Get(key)
	var seq uint64
	if err == nil && len(b) == 8 {
		seq = decodeBE8(b)
	}
	seq++
	if err := l.db.Set(key, encodeBE8(seq)); err != nil {
		return 0, err
	}
	return seq, nil
}

// Record appends a generation event for id under namespace/node and returns
// the assigned sequence number.
func (l *Ledger) Record(namespace, node, id string) (uint64, error) {
	seq, err := l.nextSequence(namespace, node)
	if err != nil {
		return 0, err
	}
	rec := Record{
		ID:           id,
		Namespace:    namespace,
		Node:         node,
		Sequence:     seq,
		RecordedAtMs: time.Now().UnixMilli(),
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return 0, err
	}
	if err := l.db.Set(keyEntry(namespace, node, seq), b); err != nil {
		return 0, err
	}
	return seq, nil
}

// Tail returns up to limit of the most recently recorded entries for
// namespace/node, newest first.
func (l *Ledger) Tail(namespace, node string, limit int) ([]Record, error) {
	prefix := keyEntryPrefix(namespace, node)
	upper := prefixUpperBound(prefix)

	it, err := l.db.NewIter(&pebble.IterOptions{LowerBound: prefix, UpperBound: upper})
	if err != nil {
		return nil, err
	}
	defer it.Close()

	var records []Record
	for valid := it.Last(); valid && (limit <= 0 || len(records) < limit); valid = it.Prev() {
		var rec Record
		if err := json.Unmarshal(it.Value(), &rec); err != nil {
			continue
		}
		records = append(records, rec)
	}
	return records, it.Error()
}

// Prune deletes entries for namespace/node recorded before olderThan and
// reports how many were removed. Entries are stored in ascending sequence
// (and therefore ascending recording time) order, so the scan stops at the
// first entry that is not yet expired.
func (l *Ledger) Prune(namespace, node string, olderThan time.Time) (int, error) {
	prefix := keyEntryPrefix(namespace, node)
	upper := prefixUpperBound(prefix)

	it, err := l.db.NewIter(&pebble.IterOptions{LowerBound: prefix, UpperBound: upper})
	if err != nil {
		return 0, err
	}
	defer it.Close()

	cutoffMs := olderThan.UnixMilli()
	var expired [][]byte
	for valid := it.First(); valid; valid = it.Next() {
		var rec Record
		if err := json.Unmarshal(it.Value(), &rec); err != nil {
			continue
		}
		if rec.RecordedAtMs >= cutoffMs {
			break
		}
		expired = append(expired, append([]byte(nil), it.Key()...))
	}
	if err := it.Error(); err != nil {
		return 0, err
	}

	for _, key := range expired {
		if err := l.db.Delete(key); err != nil {
			return len(expired), err
		}
	}
	return len(expired), nil
}

func encodeBE8(v uint64) []byte {
	b := make([]byte, 8)
	for i := 7; i >= 0; i-- {
		b[i] = byte(v)
		v >>= 8
	}
	return b
}

func decodeBE8(b []byte) uint64 {
	var v uint64
	for _, x := range b {
		v = v<<8 | uint64(x)
	}
	return v
}
