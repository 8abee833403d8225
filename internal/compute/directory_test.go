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
	"errors"
	"testing"

	"github.com/oracle/oci-go-sdk/v65/common"
	"github.com/oracle/oci-go-sdk/v65/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeIdentityBackend serves compartments in fixed-size pages keyed by
// continuation token.
type fakeIdentityBackend struct {
	pages   map[string][]identity.Compartment
	next    map[string]string
	root    identity.Compartment
	listErr error
	getErr  error
}

func (f *fakeIdentityBackend) ListCompartments(ctx context.Context, tenancyID string, page *string) ([]identity.Compartment, *string, error) {
	if f.listErr != nil {
		return nil, nil, f.listErr
	}
	key := ""
	if page != nil {
		key = *page
	}
	items := f.pages[key]
	if next, ok := f.next[key]; ok {
		return items, common.String(next), nil
	}
	return items, nil, nil
}

func (f *fakeIdentityBackend) GetCompartment(ctx context.Context, compartmentID string) (identity.Compartment, error) {
	if f.getErr != nil {
		return identity.Compartment{}, f.getErr
	}
	return f.root, nil
}

func namedCompartment(id, name string) identity.Compartment {
	return identity.Compartment{Id: common.String(id), Name: common.String(name)}
}

func TestDirectoryAll_FollowsPagination(t *testing.T) {
	backend := &fakeIdentityBackend{
		pages: map[string][]identity.Compartment{
			"":      {namedCompartment("c1", "dev"), namedCompartment("c2", "staging")},
			"page2": {namedCompartment("c3", "prod")},
		},
		next: map[string]string{"": "page2"},
		root: namedCompartment("ocid1.tenancy.oc1..root", "root"),
	}
	directory := NewDirectory(backend, "ocid1.tenancy.oc1..root")

	all, err := directory.All(context.Background())
	require.NoError(t, err)

	// Three paginated compartments plus the root appended last.
	require.Len(t, all, 4)
	assert.Equal(t, "c1", *all[0].Id)
	assert.Equal(t, "c3", *all[2].Id)
	assert.Equal(t, "ocid1.tenancy.oc1..root", *all[3].Id)
}

func TestDirectoryAll_ListFails(t *testing.T) {
	backend := &fakeIdentityBackend{listErr: errors.New("not authorized")}
	directory := NewDirectory(backend, "ocid1.tenancy.oc1..root")

	_, err := directory.All(context.Background())
	var backendErr *BackendError
	require.ErrorAs(t, err, &backendErr)
	assert.Contains(t, err.Error(), "not authorized")
}

func TestDirectoryFindByName(t *testing.T) {
	backend := &fakeIdentityBackend{
		pages: map[string][]identity.Compartment{
			"": {namedCompartment("c1", "Dev"), namedCompartment("c2", "Prod")},
		},
		root: namedCompartment("ocid1.tenancy.oc1..root", "root"),
	}
	directory := NewDirectory(backend, "ocid1.tenancy.oc1..root")

	t.Run("case-insensitive match", func(t *testing.T) {
		c, err := directory.FindByName(context.Background(), "dev")
		require.NoError(t, err)
		assert.Equal(t, "c1", *c.Id)
	})

	t.Run("root compartment resolvable by name", func(t *testing.T) {
		c, err := directory.FindByName(context.Background(), "ROOT")
		require.NoError(t, err)
		assert.Equal(t, "ocid1.tenancy.oc1..root", *c.Id)
	})

	t.Run("miss", func(t *testing.T) {
		_, err := directory.FindByName(context.Background(), "sandbox")
		var notFound *CompartmentNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Contains(t, err.Error(), "Use list_compartments()")
	})
}

func TestFindInstanceByName(t *testing.T) {
	lister := &fakeInstanceLister{}

	t.Run("case-insensitive match", func(t *testing.T) {
		instance, err := FindInstanceByName(context.Background(), lister, "c1", "dev", "WEB-1")
		require.NoError(t, err)
		assert.Equal(t, "i1", *instance.Id)
	})

	t.Run("miss names instance and compartment", func(t *testing.T) {
		_, err := FindInstanceByName(context.Background(), lister, "c1", "dev", "db-9")
		var notFound *InstanceNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "Instance 'db-9' not found in compartment 'dev'", err.Error())
	})
}
