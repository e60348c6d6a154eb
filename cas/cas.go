package cas

import (
	"bytes"
	"fmt"
	"io"
	"reflect"
)

// CAS is a content-addressed store: items are keyed by the hash of their
// serialized bytes, so equal items share one entry.
type CAS interface {
	Put(item Hashable) (Hash, error)
	Has(hash Hash) bool
	Len() int
}

type Serde interface {
	Serialize(w io.Writer) error
	Deserialize(r io.Reader) error
}

type Hashable interface {
	Serde
}

type directStore interface {
	getValue(h Hash) (bool, []byte, error)
}

type Hash uint64

// Retrieve loads the item stored under hash. T must be a pointer type whose
// pointee can be zero-initialized and then deserialized into.
func Retrieve[T Hashable](c CAS, hash Hash) (T, error) {
	var t T
	v, ok := c.(directStore)
	if !ok {
		return t, fmt.Errorf("CAS %T does not support direct retrieval", c)
	}

	has, data, err := v.getValue(hash)
	if err != nil {
		return t, err
	}
	if !has {
		return t, fmt.Errorf("hash not found in CAS: %d", hash)
	}

	targetType := reflect.TypeOf(t)
	if targetType == nil || targetType.Kind() != reflect.Ptr {
		return t, fmt.Errorf("cannot retrieve into non-pointer type %v", targetType)
	}
	instance := reflect.New(targetType.Elem()).Interface().(T)
	if err := instance.Deserialize(bytes.NewReader(data)); err != nil {
		return t, fmt.Errorf("deserializing %T: %w", instance, err)
	}
	return instance, nil
}
