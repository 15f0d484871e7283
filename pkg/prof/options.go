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
	"os"
	"runtime"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"
)

// ExportOptions controls the format of Export. Each exported line reads
// <QueueDelim><queue><QueueDelim><Separator><start><Separator><end><Separator><EvNameDelim><event><EvNameDelim><Newline>
type ExportOptions struct {
	Separator   string `yaml:"separator" validate:"required"`
	Newline     string `yaml:"newline" validate:"newline"`
	QueueDelim  string `yaml:"queue-delim"`
	EvNameDelim string `yaml:"event-name-delim"`
	// ZeroStart makes timestamps relative to the start of the first event.
	ZeroStart bool `yaml:"zero-start"`
}

// An ExportOption modifies ExportOptions.
type ExportOption func(*ExportOptions)

// DefaultExportOptions returns tab separated lines with undelimited names,
// timestamps relative to the first event and the newline of the host
// platform.
func DefaultExportOptions() ExportOptions {
	return ExportOptions{
		Separator: "\t",
		Newline:   platformNewline(),
		ZeroStart: true,
	}
}

func platformNewline() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}

// NewExportOptions applies opts to the default export options.
func NewExportOptions(opts ...ExportOption) (ExportOptions, error) {
	o := DefaultExportOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.Validate(); err != nil {
		return ExportOptions{}, err
	}
	return o, nil
}

// Functional options for the above members, sorted alphabetically.
func WithEvNameDelim(delim string) ExportOption {
	return func(o *ExportOptions) {
		o.EvNameDelim = delim
	}
}

func WithNewline(newline string) ExportOption {
	return func(o *ExportOptions) {
		o.Newline = newline
	}
}

func WithQueueDelim(delim string) ExportOption {
	return func(o *ExportOptions) {
		o.QueueDelim = delim
	}
}

func WithSeparator(separator string) ExportOption {
	return func(o *ExportOptions) {
		o.Separator = separator
	}
}

func WithZeroStart(zeroStart bool) ExportOption {
	return func(o *ExportOptions) {
		o.ZeroStart = zeroStart
	}
}

// ParseExportOptions reads export options from YAML. Fields missing from
// data keep their default value.
func ParseExportOptions(data []byte) (ExportOptions, error) {
	o := DefaultExportOptions()
	if err := yaml.UnmarshalStrict(data, &o); err != nil {
		return ExportOptions{}, fmt.Errorf("error parsing export options: %v", err)
	}
	if err := o.Validate(); err != nil {
		return ExportOptions{}, err
	}
	return o, nil
}

// LoadExportOptions reads export options from a YAML file.
func LoadExportOptions(path string) (ExportOptions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ExportOptions{}, fmt.Errorf("error reading export options file: %v", err)
	}
	return ParseExportOptions(data)
}

// Validate checks that the options produce parsable output.
func (o ExportOptions) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())

	err := validate.RegisterValidation("newline", validateNewline)
	if err != nil {
		return fmt.Errorf("unable to register newline validator: %w", err)
	}
	return validate.Struct(o)
}

// validateNewline accepts Unix and Windows line endings.
func validateNewline(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "\n", "\r\n":
		return true
	}
	return false
}
