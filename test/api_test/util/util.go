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

package util

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	. "github.com/onsi/gomega"
	"gitlab.mdcatapult.io/informatics/software-engineering/text-analysis/lib"
)

// Analyze posts a task request to a running analysis API and decodes the
// response body, whatever the status code.
func Analyze(host, port, task string, body map[string]interface{}) (int, map[string]interface{}) {
	encoded, err := json.Marshal(body)
	Expect(err).Should(BeNil())

	res, err := http.Post(fmt.Sprintf("http://%s:%s/%s", host, port, task), "application/json", bytes.NewBuffer(encoded))
	Expect(err).Should(BeNil())
	defer res.Body.Close()

	var decoded map[string]interface{}
	Expect(json.NewDecoder(res.Body).Decode(&decoded)).Should(BeNil())
	return res.StatusCode, decoded
}

// UniqueText appends a random token so that repeated runs never hit entries
// cached by a previous run.
func UniqueText(text string) string {
	return fmt.Sprintf("%s (ref %s)", text, lib.RandomLowercaseString(8))
}
