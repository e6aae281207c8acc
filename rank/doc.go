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


// Package rank fuses the heterogeneous outputs of the exact, fuzzy, and
// pattern matchers into one ordered result list.
//
// Each result's total score is a weighted sum of independent component
// scores: lexical relevance against the query, source confidence as reported
// by the producing matcher, contextual quality, freshness, and an optional
// external feedback signal. Near-duplicate results from different strategies
// collapse to a canonical signature, keeping the stronger instance.
package rank
