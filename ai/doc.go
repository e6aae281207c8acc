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


// Package ai defines the interfaces and configuration for the external AI
// oracle that proposes (label, value) candidates for a query against a
// document.
//
// The oracle is advisory only: every candidate it returns is re-localized
// and validated against the original document text before it may appear in
// search results. A candidate that cannot be positionally verified is
// dropped, never echoed back to the caller.
package ai
