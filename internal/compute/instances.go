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

import (
	"context"
	"strings"

	"github.com/oracle/oci-go-sdk/v65/core"
)

// InstanceLister lists compute instances in a compartment.
type InstanceLister interface {
	ListInstances(ctx context.Context, compartmentID string) ([]core.Instance, error)
}

// FindInstanceByName resolves an instance by display name within a
// compartment, case-insensitively. compartmentName is only used in the
// not-found message.
func FindInstanceByName(ctx context.Context, lister InstanceLister, compartmentID, compartmentName, name string) (core.Instance, error) {
	instances, err := lister.ListInstances(ctx, compartmentID)
	if err != nil {
		return core.Instance{}, &BackendError{Op: "list instances", Err: err}
	}

	for _, i := range instances {
		if i.DisplayName != nil && strings.EqualFold(*i.DisplayName, name) {
			return i, nil
		}
	}

	return core.Instance{}, &InstanceNotFoundError{Name: name, Compartment: compartmentName}
}
