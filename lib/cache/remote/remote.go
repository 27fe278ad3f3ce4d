/*
 * Copyright 2022 Medicines Discovery Catapult
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *     http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package remote

import (
	"errors"
	"time"
)

// ErrNotFound distinguishes an absent key from a store failure.
var ErrNotFound = errors.New("cache entry not found")

// Client is a string-keyed store with per-entry expiry. Implementations hold
// one shared connection (or pool) per process and must be safe for
// concurrent use. Callers treat every failure as a cache miss or no-op;
// nothing here is allowed to affect request correctness.
type Client interface {
	Get(key string) ([]byte, error)
	Set(key string, data []byte, ttl time.Duration) error
	Delete(key string) (bool, error)
	Ready() bool
}
