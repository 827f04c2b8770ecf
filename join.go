package compgraph

import (
	"iter"

	"github.com/flowgraph/compgraph/record"
)

// joinStream implements a sorted-merge join of upstream (the left side)
// against other (the right side), both assumed non-decreasing by key; a
// violation fails the run with an *OrderError naming the offending side.
// Matched key groups are combined as a full cross product, so a join where
// both sides have repeated keys fans out accordingly — the same tradeoff a
// sort-merge join always makes in exchange for needing only one buffered
// group per side rather than the whole input.
//
// joinOther's stream is obtained through buildGraph, which memoizes it per
// run; a join against a graph used elsewhere in the same run therefore
// never re-executes it.
func joinStream(ec *execContext, upstream Stream, node opNode) Stream {
	key := node.joinKey
	strategy := node.joinStrategy
	other := buildGraph(ec, node.joinOther)

	return func(yield func(record.Record) bool) {
		failure := ec.failure
		leftNext, leftStop := iter.Pull(upstream)
		defer leftStop()
		rightNext, rightStop := iter.Pull(other)
		defer rightStop()

		var lastLeftKey, lastRightKey record.KeyValue
		var lastLeftSet, lastRightSet bool

		// advance pulls the next record from one side and checks it against
		// the last key seen on that side, the same ascending-order precondition
		// collect enforces within a matched group — so every record crossing
		// this join, not just ones that land in a matched group, is validated.
		advance := func(side string, next func() (record.Record, bool), lastKey *record.KeyValue, lastSet *bool) (record.Record, bool, bool) {
			rec, ok := next()
			if !ok {
				return rec, ok, true
			}
			kv := key.ValueOf(rec)
			if *lastSet {
				cmp, cok := (*lastKey).Compare(kv)
				if !cok {
					failure.set(orderErrorf("join: %s values for key %v are not comparable", side, []string(key)))
					return rec, ok, false
				}
				if cmp > 0 {
					failure.set(orderErrorf("join: %s input not sorted ascending by key %v", side, []string(key)))
					return rec, ok, false
				}
			}
			*lastKey = kv
			*lastSet = true
			return rec, ok, true
		}

		lRec, lOK, lGood := advance("left", leftNext, &lastLeftKey, &lastLeftSet)
		if !lGood {
			return
		}
		rRec, rOK, rGood := advance("right", rightNext, &lastRightKey, &lastRightSet)
		if !rGood {
			return
		}

		collect := func(side string, rec record.Record, ok bool, next func() (record.Record, bool)) ([]record.Record, record.KeyValue, record.Record, bool, bool) {
			groupKey := key.ValueOf(rec)
			members := []record.Record{rec}
			rec, ok = next()
			for ok {
				kv := key.ValueOf(rec)
				cmp, cok := groupKey.Compare(kv)
				if !cok {
					failure.set(orderErrorf("join: %s values for key %v are not comparable", side, []string(key)))
					return nil, groupKey, rec, ok, false
				}
				if cmp != 0 {
					if cmp > 0 {
						failure.set(orderErrorf("join: %s input not sorted ascending by key %v", side, []string(key)))
						return nil, groupKey, rec, ok, false
					}
					break
				}
				members = append(members, rec)
				rec, ok = next()
			}
			return members, groupKey, rec, ok, true
		}

		for lOK || rOK {
			if failure.failed() {
				return
			}

			switch {
			case lOK && !rOK:
				if strategy.addLeftOnly() {
					if !yield(lRec) {
						return
					}
				}
				var good bool
				lRec, lOK, good = advance("left", leftNext, &lastLeftKey, &lastLeftSet)
				if !good {
					return
				}

			case !lOK && rOK:
				if strategy.addRightOnly() {
					if !yield(rRec) {
						return
					}
				}
				var good bool
				rRec, rOK, good = advance("right", rightNext, &lastRightKey, &lastRightSet)
				if !good {
					return
				}

			default:
				leftKey := key.ValueOf(lRec)
				rightKey := key.ValueOf(rRec)
				cmp, cok := leftKey.Compare(rightKey)
				if !cok {
					failure.set(orderErrorf("join: left and right key values for %v are not comparable", []string(key)))
					return
				}

				switch {
				case cmp < 0:
					if strategy.addLeftOnly() {
						if !yield(lRec) {
							return
						}
					}
					var good bool
					lRec, lOK, good = advance("left", leftNext, &lastLeftKey, &lastLeftSet)
					if !good {
						return
					}

				case cmp > 0:
					if strategy.addRightOnly() {
						if !yield(rRec) {
							return
						}
					}
					var good bool
					rRec, rOK, good = advance("right", rightNext, &lastRightKey, &lastRightSet)
					if !good {
						return
					}

				default:
					var leftGroup, rightGroup []record.Record
					var ok bool
					leftGroup, _, lRec, lOK, ok = collect("left", lRec, lOK, leftNext)
					if !ok {
						return
					}
					if lOK {
						lastLeftKey = key.ValueOf(lRec)
						lastLeftSet = true
					}
					rightGroup, _, rRec, rOK, ok = collect("right", rRec, rOK, rightNext)
					if !ok {
						return
					}
					if rOK {
						lastRightKey = key.ValueOf(rRec)
						lastRightSet = true
					}

					for _, l := range leftGroup {
						for _, r := range rightGroup {
							if !yield(mergeJoined(l, r, key)) {
								return
							}
						}
					}
				}
			}
		}
	}
}

// mergeJoined combines a matched left/right pair into one record. Join key
// fields are taken once from the left side; a non-key field name present on
// both sides keeps its left value under its own name and its right value
// under a "."-prefixed name, so neither side's data is silently dropped.
func mergeJoined(left, right record.Record, key record.Key) record.Record {
	out := left.Clone()
	for field, v := range right {
		if key.Contains(field) {
			continue
		}
		if _, collide := out[field]; collide {
			out["."+field] = v
			continue
		}
		out[field] = v
	}
	return out
}
