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
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/clwrap/internal/cl"
)

func TestSummary(t *testing.T) {
	p, release := newCalculatedProfile(t)
	defer release()

	summary, err := p.Summary(AggSortTime|SortDesc, OverlapSortDuration|SortDesc)
	require.Nil(t, err)

	lines := strings.Split(summary, "\n")
	expectedAggs := []string{
		"   | Event1                         |       51.4286 |    3.6000e-08 |",
		"   | Event3                         |       18.5714 |    1.3000e-08 |",
		"   | Event5                         |       15.7143 |    1.1000e-08 |",
		"   | Event4                         |        8.5714 |    6.0000e-09 |",
		"   | Event2                         |        5.7143 |    4.0000e-09 |",
	}
	require.Equal(t, expectedAggs, lines[5:10])

	require.Contains(t, summary, "                                    |         Total |    7.0000e-08 |\n")
	require.Contains(t, summary, "   | Event3                 | Event4                 |   6.0000e-09 |\n")
	require.Contains(t, summary, "                            |                  Total |   1.7000e-08 |\n")
	require.Contains(t, summary, " Tot. of all events (eff.) : 5.300000e-08s\n")
	require.NotContains(t, summary, "Total elapsed time")
	require.Less(t,
		strings.Index(summary, "| Event3                 | Event4"),
		strings.Index(summary, "| Event1                 | Event5"))

	p.Start()
	p.Stop()
	summary, err = p.Summary(AggSortName|SortAsc, OverlapSortName|SortAsc)
	require.Nil(t, err)
	require.Contains(t, summary, " Total elapsed time        : ")
	require.Contains(t, summary, " Time spent in device      : ")

	var sb strings.Builder
	require.Nil(t, p.PrintSummary(&sb))
	require.Contains(t, sb.String(), expectedAggs[0])
}

func TestSummaryWithoutOverlaps(t *testing.T) {
	s := newTestSetup(t, cl.QUEUE_PROFILING_ENABLE, "Q1")
	defer s.destroy()
	s.enqueue(t, []testEvent{
		{"Read", "Q1", 1000, 3000},
		{"Kernel", "Q1", 3000, 4000},
	})

	p := New()
	defer p.Destroy()
	require.Nil(t, p.AddQueue("Q1", s.queues["Q1"]))
	require.Nil(t, p.Calc())

	summary, err := p.Summary(AggSortName|SortAsc, OverlapSortName|SortAsc)
	require.Nil(t, err)
	require.Contains(t, summary, " Event overlaps            : None\n")
	require.Contains(t, summary, "   | Kernel                         |       33.3333 |    1.0000e-06 |\n")
	require.Equal(t, p.TotalEventsTime(), p.TotalEventsEffTime())
}
