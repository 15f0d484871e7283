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
	"bufio"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/NVIDIA/clwrap/pkg/ccl"
)

// Export writes one line per event to w, in event ID order, formatted
// according to the export options of the profile.
func (p *Profile) Export(w io.Writer) error {
	if !p.calculated {
		return ccl.NewError(ccl.CodeOther, "unable to export profile: profile not calculated")
	}

	o := p.exportOptions
	var t0 uint64
	if o.ZeroStart {
		t0 = p.startTime
	}

	// Events that started before the first timed instant are clamped to it.
	rel := func(t uint64) uint64 {
		if t < t0 {
			return 0
		}
		return t - t0
	}

	bw := bufio.NewWriter(w)
	for _, info := range p.infos {
		_, err := fmt.Fprintf(bw, "%s%s%s%s%d%s%d%s%s%s%s%s",
			o.QueueDelim, info.QueueName, o.QueueDelim,
			o.Separator, rel(info.TStart),
			o.Separator, rel(info.TEnd),
			o.Separator, o.EvNameDelim, info.EventName, o.EvNameDelim,
			o.Newline)
		if err != nil {
			return ccl.NewError(ccl.CodeStreamWrite, "error while exporting profiling information: %v", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return ccl.NewError(ccl.CodeStreamWrite, "error while exporting profiling information: %v", err)
	}
	return nil
}

// ExportToFile writes the export to the file at path, replacing it.
func (p *Profile) ExportToFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return ccl.NewError(ccl.CodeOpenFile, "unable to open file '%s' for exporting: %v", path, err)
	}
	defer f.Close()

	if err := p.Export(f); err != nil {
		return err
	}
	log.Debugf("Exported %d events to %s", len(p.instants)/2, path)
	return nil
}
