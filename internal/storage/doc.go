/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package storage persists layout documents as opaque blobs under a key.
// The builder document is encoded as JSON and validated against an embedded
// JSON schema on load. Two Store implementations exist: a directory of JSON
// files with transactional writes and timestamped backups, and an embedded
// SQLite database holding the current blob plus a short history per key.
// A corrupt or oversized stored document never blocks startup; callers get a
// fresh default and a warning instead.
package storage
