/*
 * Copyright (c) 2021, NVIDIA CORPORATION.  All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package util

import (
	"fmt"
	"strconv"
	"strings"
)

func Any(set []bool) bool {
	for _, s := range set {
		if s {
			return true
		}
	}
	return false
}

func CountTrue(set []bool) int {
	count := 0
	for _, s := range set {
		if s {
			count++
		}
	}
	return count
}

func Capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[0:1]) + s[1:]
}

// ParsePair parses a "<a>,<b>" pair of integers such as a matrix size or a
// value range.
func ParsePair(s string) ([2]int, error) {
	var pair [2]int
	split := strings.Split(s, ",")
	if len(split) != 2 {
		return pair, fmt.Errorf("malformed pair '%s': expected two comma separated integers", s)
	}
	for i, field := range split {
		v, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return pair, fmt.Errorf("malformed pair '%s': %v", s, err)
		}
		pair[i] = v
	}
	return pair, nil
}
