/*
 * © 2026 Snyk Limited
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package data_structure

type orderedMapEntry[K comparable, V any] struct {
	key   K
	value V
}

// OrderedMap is a map that remembers insertion order. Adding an existing key replaces its value in place.
type OrderedMap[K comparable, V any] struct {
	m     []orderedMapEntry[K, V]
	index map[K]int
}

func NewOrderedMap[K comparable, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{
		m:     make([]orderedMapEntry[K, V], 0),
		index: make(map[K]int),
	}
}

func (m *OrderedMap[K, V]) Add(key K, value V) {
	if i, ok := m.index[key]; ok {
		m.m[i].value = value
		return
	}
	m.index[key] = len(m.m)
	m.m = append(m.m, orderedMapEntry[K, V]{
		key:   key,
		value: value,
	})
}

func (m *OrderedMap[K, V]) Get(key K) (value V, ok bool) {
	if m == nil {
		return value, false
	}
	i, ok := m.index[key]
	if !ok {
		return value, false
	}
	return m.m[i].value, true
}

func (m *OrderedMap[K, V]) Keys() []K {
	if m == nil {
		return []K{}
	}
	keys := make([]K, 0, len(m.m))
	for _, entry := range m.m {
		keys = append(keys, entry.key)
	}
	return keys
}

func (m *OrderedMap[K, V]) Values() []V {
	if m == nil {
		return []V{}
	}
	values := make([]V, 0, len(m.m))
	for _, entry := range m.m {
		values = append(values, entry.value)
	}
	return values
}

func (m *OrderedMap[K, V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.m)
}
