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

package prof

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseExportOptions(t *testing.T) {
	testCases := []struct {
		description   string
		input         string
		expected      ExportOptions
		expectedError bool
	}{
		{
			"empty document keeps defaults",
			"",
			DefaultExportOptions(),
			false,
		},
		{
			"every field",
			"separator: ','\n" +
				"newline: \"\\r\\n\"\n" +
				"queue-delim: \"'\"\n" +
				"event-name-delim: '\"'\n" +
				"zero-start: false\n",
			ExportOptions{
				Separator:   ",",
				Newline:     "\r\n",
				QueueDelim:  "'",
				EvNameDelim: "\"",
				ZeroStart:   false,
			},
			false,
		},
		{
			"partial document",
			"separator: ';'\nnewline: \"\\n\"\n",
			ExportOptions{
				Separator: ";",
				Newline:   "\n",
				ZeroStart: true,
			},
			false,
		},
		{
			"empty separator",
			"separator: ''\n",
			ExportOptions{},
			true,
		},
		{
			"unsupported newline",
			"newline: \"\\r\"\n",
			ExportOptions{},
			true,
		},
		{
			"unknown field",
			"delimiter: ','\n",
			ExportOptions{},
			true,
		},
		{
			"malformed document",
			"separator: [\n",
			ExportOptions{},
			true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			options, err := ParseExportOptions([]byte(tc.input))
			if tc.expectedError {
				require.NotNil(t, err)
				return
			}
			require.Nil(t, err)
			require.Equal(t, tc.expected, options)
		})
	}
}

func TestNewExportOptions(t *testing.T) {
	options, err := NewExportOptions()
	require.Nil(t, err)
	require.Equal(t, DefaultExportOptions(), options)
	require.Equal(t, "\t", options.Separator)
	require.True(t, options.ZeroStart)

	options, err = NewExportOptions(
		WithSeparator(" "),
		WithNewline("\r\n"),
		WithQueueDelim("["),
		WithEvNameDelim("*"),
		WithZeroStart(false),
	)
	require.Nil(t, err)
	require.Equal(t, ExportOptions{" ", "\r\n", "[", "*", false}, options)

	_, err = NewExportOptions(WithNewline("\r"))
	require.NotNil(t, err)
	_, err = NewExportOptions(WithSeparator(""))
	require.NotNil(t, err)

	p := New()
	require.Equal(t, DefaultExportOptions(), p.ExportOptions())
	p.SetExportOptions(options)
	require.Equal(t, options, p.ExportOptions())
}

func TestLoadExportOptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.yaml")
	require.Nil(t, os.WriteFile(path, []byte("separator: ','\nzero-start: false\n"), 0600))

	options, err := LoadExportOptions(path)
	require.Nil(t, err)
	require.Equal(t, ",", options.Separator)
	require.False(t, options.ZeroStart)

	_, err = LoadExportOptions(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NotNil(t, err)
}
