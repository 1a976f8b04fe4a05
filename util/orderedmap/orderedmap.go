// Package orderedmap provides a map with deterministic iteration order. The analyses use it
// wherever map contents feed reported output or a serialized artifact, so that identical
// inputs always produce identical results.
package orderedmap

import (
	"bytes"
	"encoding/gob"
	"io"
	"slices"
)

// OrderedMap is a map that remembers insertion order. The zero value is not usable; call New.
type OrderedMap[K comparable, V any] struct {
	inner map[K]V
	keys  []K
}

func New[K comparable, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{inner: make(map[K]V)}
}

func (m *OrderedMap[K, V]) Load(key K) (V, bool) {
	v, ok := m.inner[key]
	return v, ok
}

// Value returns the value for key, or the zero value if absent.
func (m *OrderedMap[K, V]) Value(key K) V {
	return m.inner[key]
}

func (m *OrderedMap[K, V]) Store(key K, value V) {
	if _, ok := m.inner[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.inner[key] = value
}

// Delete removes key from the map. Deleting an absent key is a no-op.
func (m *OrderedMap[K, V]) Delete(key K) {
	if _, ok := m.inner[key]; !ok {
		return
	}
	delete(m.inner, key)
	if i := slices.Index(m.keys, key); i >= 0 {
		m.keys = slices.Delete(m.keys, i, i+1)
	}
}

func (m *OrderedMap[K, V]) Len() int {
	return len(m.keys)
}

// Keys returns the keys in insertion order. The returned slice is owned by the map.
func (m *OrderedMap[K, V]) Keys() []K {
	return m.keys
}

// OrderedRange calls f for each entry in insertion order until f returns false.
func (m *OrderedMap[K, V]) OrderedRange(f func(key K, value V) bool) {
	for _, k := range m.keys {
		if !f(k, m.inner[k]) {
			return
		}
	}
}

func (m *OrderedMap[K, V]) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	for _, k := range m.keys {
		if err := enc.Encode(k); err != nil {
			return nil, err
		}
		if err := enc.Encode(m.inner[k]); err != nil {
			return nil, err
		}
	}

	if buf.Len() == 0 {
		return nil, nil
	}
	return buf.Bytes(), nil
}

func (m *OrderedMap[K, V]) GobDecode(b []byte) error {
	if m.inner == nil {
		m.inner = make(map[K]V)
	}
	dec := gob.NewDecoder(bytes.NewBuffer(b))
	for {
		var k K
		if err := dec.Decode(&k); err == io.EOF {
			break
		} else if err != nil {
			return err
		}
		var v V
		if err := dec.Decode(&v); err != nil {
			return err
		}
		if _, ok := m.inner[k]; !ok {
			m.keys = append(m.keys, k)
		}
		m.inner[k] = v
	}

	return nil
}
