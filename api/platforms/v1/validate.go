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

package v1

import (
	"fmt"
	"os"
	"regexp"

	"github.com/go-playground/validator/v10"
	"sigs.k8s.io/yaml"
)

var openCLVersionRegex = regexp.MustCompile(`^OpenCL [0-9]+\.[0-9]+( |$)`)

// Validate checks the structural constraints of the spec that are not
// enforced while unmarshalling.
func (s *Spec) Validate() error {
	if s.Version != Version {
		return fmt.Errorf("unknown version: %v", s.Version)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	err := validate.RegisterValidation("opencl_version", validateOpenCLVersion)
	if err != nil {
		return fmt.Errorf("unable to register opencl_version validator: %w", err)
	}

	return validate.Struct(s)
}

// validateOpenCLVersion accepts strings of the form
// "OpenCL <major>.<minor> <platform-specific information>".
func validateOpenCLVersion(fl validator.FieldLevel) bool {
	return openCLVersionRegex.MatchString(fl.Field().String())
}

// Parse unmarshals and validates a YAML or JSON platforms spec.
func Parse(data []byte) (*Spec, error) {
	var spec Spec
	err := yaml.Unmarshal(data, &spec)
	if err != nil {
		return nil, fmt.Errorf("error parsing platforms spec: %v", err)
	}

	err = spec.Validate()
	if err != nil {
		return nil, fmt.Errorf("error validating platforms spec: %w", err)
	}

	return &spec, nil
}

// Load reads a platforms spec from a file.
func Load(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading platforms spec file: %v", err)
	}
	return Parse(data)
}
