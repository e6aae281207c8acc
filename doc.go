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

// Package pinpoint locates values in Czech legal and financial documents and
// maps every hit back to exact offsets in the original text.
//
// The Engine normalizes the document (markdown stripped, diacritics folded,
// lowercased) while keeping a bidirectional index map, then runs exact,
// fuzzy, and pattern matchers concurrently, fuses their candidates, and
// ranks them. An optional AI provider proposes additional (label, value)
// candidates; those are re-verified positionally against the document and
// never trusted as-is. Ranked results can be rendered back onto the original
// text with the highlight package, which guarantees the concatenated
// segments reproduce the input byte for byte.
//
// Typical use:
//
//	engine, err := pinpoint.NewEngine()
//	if err != nil {
//		return err
//	}
//	defer engine.Close()
//
//	results, err := engine.Search(ctx, document, "rodné číslo", core.ValueTypeBirthNumber)
//
// Subpackages can also be used on their own: normalize for reversible text
// normalization, match and fuzzy for the matchers, extract for typed entity
// extraction, rank for result fusion, and highlight for rendering.
package pinpoint
