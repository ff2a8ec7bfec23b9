package query

import (
	"fmt"
	"reflect"
)

// Selector derives a value from an element, for projection or as a group key
type Selector[T, U any] func(T) U

// groupRecords partitions records by keys[0], then each bucket by keys[1], and
// so on. Groups appear in first-seen key order and buckets keep input order.
// keys is only read, never consumed.
//
// Keys compare with ==, so pointer or interface keys group by identity. Keys
// of a non-comparable dynamic type (slices, maps, funcs) are rejected.
func groupRecords[T any](records []T, keys []Selector[T, any]) (Collection[T], error) {
	if len(keys) == 0 {
		return Flat(records), nil
	}

	key := keys[0]
	index := make(map[any]int)
	var order []any
	var buckets [][]T
	for _, record := range records {
		k := key(record)
		if !comparableKey(k) {
			return Collection[T]{}, fmt.Errorf("%w: %T is not comparable", ErrInvalidGroupKey, k)
		}
		pos, ok := index[k]
		if !ok {
			pos = len(buckets)
			index[k] = pos
			order = append(order, k)
			buckets = append(buckets, nil)
		}
		buckets[pos] = append(buckets[pos], record)
	}

	groups := make([]Group[T], len(buckets))
	for i, bucket := range buckets {
		values, err := groupRecords(bucket, keys[1:])
		if err != nil {
			return Collection[T]{}, err
		}
		groups[i] = Group[T]{Key: order[i], Values: values}
	}
	return Grouped(groups), nil
}

func comparableKey(k any) bool {
	if k == nil {
		return true
	}
	return reflect.ValueOf(k).Comparable()
}
