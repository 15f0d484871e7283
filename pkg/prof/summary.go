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
	"fmt"
	"io"
	"strings"

	"github.com/NVIDIA/clwrap/pkg/ccl"
)

// Summary renders the aggregate times sorted by aggSort and the overlaps
// sorted by ovlpSort as a text table.
func (p *Profile) Summary(aggSort Sort, ovlpSort Sort) (string, error) {
	if !p.calculated {
		return "", ccl.NewError(ccl.CodeOther, "unable to summarize profile: profile not calculated")
	}

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(" Aggregate times by event  :\n")
	sb.WriteString("   ------------------------------------------------------------------\n")
	sb.WriteString("   | Event name                     | Rel. time (%) | Abs. time (s) |\n")
	sb.WriteString("   ------------------------------------------------------------------\n")
	aggs := p.IterAgg(aggSort)
	for agg := aggs.Next(); agg != nil; agg = aggs.Next() {
		fmt.Fprintf(&sb, "   | %-30.30s | %13.4f | %13.4e |\n",
			agg.EventName, agg.RelativeTime*100.0, seconds(agg.AbsoluteTime))
	}
	sb.WriteString("   ------------------------------------------------------------------\n")

	if p.totalEventsTime > 0 {
		fmt.Fprintf(&sb, "                                    |         Total | %13.4e |\n", seconds(p.totalEventsTime))
		sb.WriteString("                                    ---------------------------------\n")
	}

	if len(p.overlaps) > 0 {
		sb.WriteString(" Event overlaps            :\n")
		sb.WriteString("   ------------------------------------------------------------------\n")
		sb.WriteString("   | Event 1                | Event2                 | Overlap (s)  |\n")
		sb.WriteString("   ------------------------------------------------------------------\n")
		overlaps := p.IterOverlap(ovlpSort)
		for o := overlaps.Next(); o != nil; o = overlaps.Next() {
			fmt.Fprintf(&sb, "   | %-22.22s | %-22.22s | %12.4e |\n",
				o.Event1Name, o.Event2Name, seconds(o.Duration))
		}
		sb.WriteString("   ------------------------------------------------------------------\n")
		fmt.Fprintf(&sb, "                            |                  Total | %12.4e |\n",
			seconds(p.totalEventsTime-p.totalEventsEffTime))
		sb.WriteString("                            -----------------------------------------\n")
		fmt.Fprintf(&sb, " Tot. of all events (eff.) : %es\n", seconds(p.totalEventsEffTime))
	} else {
		sb.WriteString(" Event overlaps            : None\n")
	}

	if p.timerStarted() {
		elapsed := p.Elapsed().Seconds()
		device := 0.0
		if elapsed > 0 {
			device = seconds(p.totalEventsEffTime) * 100 / elapsed
		}
		fmt.Fprintf(&sb, " Total elapsed time        : %es\n", elapsed)
		fmt.Fprintf(&sb, " Time spent in device      : %.2f%%\n", device)
		fmt.Fprintf(&sb, " Time spent in host        : %.2f%%\n", 100-device)
	}
	sb.WriteString("\n")

	return sb.String(), nil
}

// PrintSummary writes the summary with aggregates and overlaps sorted by
// decreasing time.
func (p *Profile) PrintSummary(w io.Writer) error {
	summary, err := p.Summary(AggSortTime|SortDesc, OverlapSortDuration|SortDesc)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, summary); err != nil {
		return ccl.NewError(ccl.CodeStreamWrite, "error while printing profile summary: %v", err)
	}
	return nil
}

func seconds(ns uint64) float64 {
	return float64(ns) / 1e9
}
