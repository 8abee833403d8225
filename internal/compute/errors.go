// Copyright 2025 The compute-mcp Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package compute

import "fmt"

// InvalidActionError reports an action string outside the accepted set.
type InvalidActionError struct {
	Action string
}

func (e *InvalidActionError) Error() string {
	return fmt.Sprintf("Invalid action '%s'. Valid actions are: START, STOP, RESET", e.Action)
}

// InvalidOCIDError reports an instance OCID too short to carry a region
// segment.
type InvalidOCIDError struct {
	ID string
}

func (e *InvalidOCIDError) Error() string {
	return "Invalid instance_id format. Cannot extract region."
}

// CompartmentNotFoundError reports a compartment name with no match in
// the tenancy.
type CompartmentNotFoundError struct {
	Name string
}

func (e *CompartmentNotFoundError) Error() string {
	return fmt.Sprintf("Compartment '%s' not found. Use list_compartments() to see available compartments.", e.Name)
}

// InstanceNotFoundError reports a display name with no match in the
// compartment.
type InstanceNotFoundError struct {
	Name        string
	Compartment string
}

func (e *InstanceNotFoundError) Error() string {
	return fmt.Sprintf("Instance '%s' not found in compartment '%s'", e.Name, e.Compartment)
}

// BackendError wraps a failed OCI API call with the operation that
// issued it.
type BackendError struct {
	Op  string
	Err error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}
