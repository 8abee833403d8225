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

	"github.com/oracle/oci-go-sdk/v65/identity"
)

// IdentityBackend is the capability set the compartment directory needs
// from the identity service. ListCompartments returns one page plus the
// continuation token for the next, or nil when the listing is complete.
type IdentityBackend interface {
	ListCompartments(ctx context.Context, tenancyID string, page *string) ([]identity.Compartment, *string, error)
	GetCompartment(ctx context.Context, compartmentID string) (identity.Compartment, error)
}

// Directory resolves compartments within a tenancy. It keeps no cache:
// every lookup walks the backend again.
type Directory struct {
	backend   IdentityBackend
	tenancyID string
}

// NewDirectory returns a directory rooted at the given tenancy.
func NewDirectory(backend IdentityBackend, tenancyID string) *Directory {
	return &Directory{backend: backend, tenancyID: tenancyID}
}

// All lists every compartment in the tenancy subtree, following the
// continuation token until exhausted, then appends the root (tenancy)
// compartment itself, which the subtree listing does not include.
func (d *Directory) All(ctx context.Context) ([]identity.Compartment, error) {
	var all []identity.Compartment

	var page *string
	for {
		items, next, err := d.backend.ListCompartments(ctx, d.tenancyID, page)
		if err != nil {
			return nil, &BackendError{Op: "list compartments", Err: err}
		}
		all = append(all, items...)
		if next == nil || *next == "" {
			break
		}
		page = next
	}

	root, err := d.backend.GetCompartment(ctx, d.tenancyID)
	if err != nil {
		return nil, &BackendError{Op: "get root compartment", Err: err}
	}
	all = append(all, root)

	return all, nil
}

// FindByName resolves a compartment by name, case-insensitively.
func (d *Directory) FindByName(ctx context.Context, name string) (identity.Compartment, error) {
	compartments, err := d.All(ctx)
	if err != nil {
		return identity.Compartment{}, err
	}

	for _, c := range compartments {
		if c.Name != nil && strings.EqualFold(*c.Name, name) {
			return c, nil
		}
	}

	return identity.Compartment{}, &CompartmentNotFoundError{Name: name}
}
