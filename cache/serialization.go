// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package cache

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/pinpoint/core"
)

// MarshalResults serializes a ranked result list to MUS-encoded bytes.
func MarshalResults(results []*core.SearchResult) []byte {
	size := varint.PositiveInt.Size(len(results))
	for _, r := range results {
		size += sizeResult(r)
	}

	bs := make([]byte, size)
	n := varint.PositiveInt.Marshal(len(results), bs)
	for _, r := range results {
		n += marshalResult(r, bs[n:])
	}
	return bs
}

// UnmarshalResults decodes a result list produced by MarshalResults.
func UnmarshalResults(bs []byte) ([]*core.SearchResult, error) {
	count, n, err := varint.PositiveInt.Unmarshal(bs)
	if err != nil {
		return nil, err
	}

	results := make([]*core.SearchResult, 0, count)
	for i := 0; i < count; i++ {
		r, consumed, err := unmarshalResult(bs[n:])
		if err != nil {
			return nil, err
		}
		n += consumed
		results = append(results, r)
	}
	return results, nil
}

func sizeResult(r *core.SearchResult) int {
	size := varint.Uint64.Size(uint64(r.Id)) +
		ord.String.Size(r.Label) +
		ord.String.Size(r.Value) +
		varint.Int.Size(int(r.Type)) +
		varint.Int.Size(r.Rank) +
		raw.Float64.Size(r.Score) +
		varint.PositiveInt.Size(len(r.Matches))
	for i := range r.Matches {
		size += sizeMatch(&r.Matches[i])
	}
	return size
}

func marshalResult(r *core.SearchResult, bs []byte) int {
	n := varint.Uint64.Marshal(uint64(r.Id), bs)
	n += ord.String.Marshal(r.Label, bs[n:])
	n += ord.String.Marshal(r.Value, bs[n:])
	n += varint.Int.Marshal(int(r.Type), bs[n:])
	n += varint.Int.Marshal(r.Rank, bs[n:])
	n += raw.Float64.Marshal(r.Score, bs[n:])
	n += varint.PositiveInt.Marshal(len(r.Matches), bs[n:])
	for i := range r.Matches {
		n += marshalMatch(&r.Matches[i], bs[n:])
	}
	return n
}

func unmarshalResult(bs []byte) (*core.SearchResult, int, error) {
	r := &core.SearchResult{}

	id, n, err := varint.Uint64.Unmarshal(bs)
	if err != nil {
		return nil, n, err
	}
	r.Id = core.ID(id)

	var consumed int
	if r.Label, consumed, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return nil, n, err
	}
	n += consumed
	if r.Value, consumed, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return nil, n, err
	}
	n += consumed

	vt, consumed, err := varint.Int.Unmarshal(bs[n:])
	if err != nil {
		return nil, n, err
	}
	n += consumed
	r.Type = core.ValueType(vt)

	if r.Rank, consumed, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return nil, n, err
	}
	n += consumed
	if r.Score, consumed, err = raw.Float64.Unmarshal(bs[n:]); err != nil {
		return nil, n, err
	}
	n += consumed

	count, consumed, err := varint.PositiveInt.Unmarshal(bs[n:])
	if err != nil {
		return nil, n, err
	}
	n += consumed

	r.Matches = make([]core.SearchMatch, 0, count)
	for i := 0; i < count; i++ {
		m, c, err := unmarshalMatch(bs[n:])
		if err != nil {
			return nil, n, err
		}
		n += c
		r.Matches = append(r.Matches, m)
	}
	return r, n, nil
}

func sizeMatch(m *core.SearchMatch) int {
	return varint.PositiveInt.Size(m.Start) +
		varint.PositiveInt.Size(m.End) +
		ord.String.Size(m.Text) +
		raw.Float64.Size(m.Score) +
		raw.Float64.Size(m.Confidence) +
		varint.Int.Size(int(m.Type)) +
		varint.Int.Size(int(m.Algorithm)) +
		ord.String.Size(m.Context)
}

func marshalMatch(m *core.SearchMatch, bs []byte) int {
	n := varint.PositiveInt.Marshal(m.Start, bs)
	n += varint.PositiveInt.Marshal(m.End, bs[n:])
	n += ord.String.Marshal(m.Text, bs[n:])
	n += raw.Float64.Marshal(m.Score, bs[n:])
	n += raw.Float64.Marshal(m.Confidence, bs[n:])
	n += varint.Int.Marshal(int(m.Type), bs[n:])
	n += varint.Int.Marshal(int(m.Algorithm), bs[n:])
	n += ord.String.Marshal(m.Context, bs[n:])
	return n
}

func unmarshalMatch(bs []byte) (core.SearchMatch, int, error) {
	var m core.SearchMatch
	var consumed int

	start, n, err := varint.PositiveInt.Unmarshal(bs)
	if err != nil {
		return m, n, err
	}
	m.Start = start

	if m.End, consumed, err = varint.PositiveInt.Unmarshal(bs[n:]); err != nil {
		return m, n, err
	}
	n += consumed
	if m.Text, consumed, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return m, n, err
	}
	n += consumed
	if m.Score, consumed, err = raw.Float64.Unmarshal(bs[n:]); err != nil {
		return m, n, err
	}
	n += consumed
	if m.Confidence, consumed, err = raw.Float64.Unmarshal(bs[n:]); err != nil {
		return m, n, err
	}
	n += consumed

	vt, consumed, err := varint.Int.Unmarshal(bs[n:])
	if err != nil {
		return m, n, err
	}
	n += consumed
	m.Type = core.ValueType(vt)

	alg, consumed, err := varint.Int.Unmarshal(bs[n:])
	if err != nil {
		return m, n, err
	}
	n += consumed
	m.Algorithm = core.Algorithm(alg)

	if m.Context, consumed, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return m, n, err
	}
	n += consumed
	return m, n, nil
}
