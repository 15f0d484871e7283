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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePair(t *testing.T) {
	testCases := []struct {
		description     string
		input           string
		expected        [2]int
		expectedFailure bool
	}{
		{"positive", "128,256", [2]int{128, 256}, false},
		{"negative", "-100,100", [2]int{-100, 100}, false},
		{"spaces", " 32, 16 ", [2]int{32, 16}, false},
		{"single", "32", [2]int{}, true},
		{"triple", "1,2,3", [2]int{}, true},
		{"not a number", "a,2", [2]int{}, true},
		{"empty", "", [2]int{}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			pair, err := ParsePair(tc.input)
			if tc.expectedFailure {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expected, pair)
		})
	}
}

func TestCapitalize(t *testing.T) {
	require.Equal(t, "Error parsing", Capitalize("error parsing"))
	require.Equal(t, "", Capitalize(""))
}

func TestCountTrue(t *testing.T) {
	require.Equal(t, 0, CountTrue(nil))
	require.Equal(t, 2, CountTrue([]bool{true, false, true}))
	require.True(t, Any([]bool{false, true}))
	require.False(t, Any([]bool{false, false}))
}
