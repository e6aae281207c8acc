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


// Package extract provides regex-driven extraction of typed entities from
// document text: birth numbers, IBANs, bank accounts, amounts, dates,
// percentages, phone numbers, names, and addresses.
//
// Extraction is driven by a registry of entries, each pairing regex patterns
// with a validator and a canonicalizer for one value type. A pattern hit that
// fails validation is dropped silently: a string that merely looks like a
// birth number is not a birth number. Confidence is a fixed prior per type,
// since these are format-driven extractions rather than scored matches.
package extract
