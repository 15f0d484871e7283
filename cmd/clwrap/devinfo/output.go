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

package devinfo

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	yaml "gopkg.in/yaml.v2"

	"github.com/NVIDIA/clwrap/pkg/devquery"
)

// WriteOutput writes the report in the format selected by the flags.
func WriteOutput(w io.Writer, report *Report, f *Flags) error {
	switch f.OutputFormat {
	case YAMLFormat:
		output, err := yaml.Marshal(report)
		if err != nil {
			return fmt.Errorf("error marshaling device info to YAML: %v", err)
		}
		if _, err := w.Write(output); err != nil {
			return fmt.Errorf("error writing YAML output: %w", err)
		}
	case JSONFormat:
		output, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("error marshaling device info to JSON: %v", err)
		}
		if _, err := w.Write(output); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	default:
		if err := writeText(w, report, f); err != nil {
			return fmt.Errorf("error writing text output: %w", err)
		}
	}
	return nil
}

func writeText(w io.Writer, report *Report, f *Flags) error {
	bw := bufio.NewWriter(w)

	if f.NoPlatform {
		for _, d := range report.Devices {
			writeDevice(bw, &d, f)
		}
		fmt.Fprintf(bw, "\n")
	}

	for _, p := range report.Platforms {
		fmt.Fprintf(bw, "\n* Platform #%d: %s (%s)\n               %s, %s\n",
			p.Index, p.Name, p.Vendor, p.Version, p.Profile)
		for _, d := range p.Devices {
			writeDevice(bw, &d, f)
		}
		fmt.Fprintf(bw, "\n")
	}

	return bw.Flush()
}

func writeDevice(w io.Writer, d *DeviceReport, f *Flags) {
	fmt.Fprintf(w, "\n    [ Device #%d: %s ]\n\n", d.Index, d.Name)
	for _, p := range d.Params {
		if f.Verbose {
			fmt.Fprintf(w, "\t\t   Parameter : %s\n\t\t Description : %s\n\t\t       Value : %s\n\n",
				p.Name, p.Description, p.Value)
			continue
		}
		fmt.Fprintf(w, "        %-36.36s | %s\n", p.Name, p.Value)
	}
}

// WriteParamList writes the names of the known parameters, with their
// descriptions when verbose.
func WriteParamList(w io.Writer, f *Flags) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "\nKnown information parameters:\n\n")
	for _, p := range devquery.Catalog() {
		if f.Verbose {
			fmt.Fprintf(bw, "\t%s\n\t\t%s.\n\n", p.Name, p.Description)
		} else {
			fmt.Fprintf(bw, "\t%s\n", p.Name)
		}
	}
	fmt.Fprintf(bw, "\n")
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("error writing parameter list: %w", err)
	}
	return nil
}
