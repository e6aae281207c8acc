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


// Package normalize builds a search-friendly view of a document together
// with a coordinate mapping back to the original text.
//
// Normalization happens in two composed passes:
//
//  1. Markdown syntax (emphasis markers, inline code, headers, list markers,
//     blockquotes, link syntax) is stripped while tracking, for every
//     surviving byte, its offset in the original text.
//  2. Diacritics are folded away (Unicode NFD decomposition with combining
//     marks removed) and the text is lowercased, composing the offsets from
//     the first pass into the final index map.
//
// The resulting NormalizedDocument lets matchers search the folded text and
// report spans in original-document coordinates, so callers can highlight
// the unmodified source.
package normalize
