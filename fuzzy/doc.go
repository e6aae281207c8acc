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


// Package fuzzy implements approximate substring search over normalized
// document text using Levenshtein, Jaro, Jaro-Winkler, and a hybrid blend of
// the two families.
//
// Candidate generation slides windows of the query length (plus a small
// length tolerance) across the document and scores each window against the
// query. Surviving candidates are filtered so that accepted spans do not
// overlap, then mapped back to original-document coordinates.
package fuzzy
