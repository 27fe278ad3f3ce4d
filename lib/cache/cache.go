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

package cache

import (
	"crypto/md5"
	"fmt"
	"sort"
	"strings"

	"gitlab.mdcatapult.io/informatics/software-engineering/text-analysis/lib/text"
)

// Type selects the backend store for cached results.
type Type string

const (
	Redis         Type = "redis"
	Elasticsearch Type = "elasticsearch"
	None          Type = "none"
)

// Fingerprint derives the cache key for a task invocation. The input text is
// trimmed and stripped of surrounding quotes before hashing, and options are
// serialised with sorted keys so that equivalent requests collide. The active
// model appears both in the readable key prefix and inside the hashed
// payload: switching models invalidates old entries even if the hash input
// format ever changes, and the keys stay self-describing for inspection.
func Fingerprint(prefix, model, rawText string, options map[string]interface{}) string {
	parts := []string{model, text.NormalizeText(rawText)}

	keys := make([]string, 0, len(options))
	for k := range options {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", k, options[k]))
	}

	sum := md5.Sum([]byte(strings.Join(parts, "|")))
	return fmt.Sprintf("%s:%s:%x", prefix, model, sum)
}
