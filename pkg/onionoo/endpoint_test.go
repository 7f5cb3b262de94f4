package onionoo

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEndpointCatalog(t *testing.T) {
	type testcase struct {
		endpoint Endpoint
		name     string
		relays   bool
		bridges  bool
	}

	cases := []testcase{
		{Summary, "summary", true, true},
		{Details, "details", true, true},
		{Bandwidth, "bandwidth", true, true},
		{Weights, "weights", true, false},
		{Clients, "clients", false, true},
		{Uptime, "uptime", true, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.endpoint.Name() != tc.name {
				t.Fatal("unexpected name", tc.endpoint.Name())
			}
			if tc.endpoint.String() != tc.name {
				t.Fatal("unexpected string", tc.endpoint.String())
			}
			if tc.endpoint.Path() != "/"+tc.name {
				t.Fatal("unexpected path", tc.endpoint.Path())
			}
			if tc.endpoint.Method() != "GET" {
				t.Fatal("unexpected method", tc.endpoint.Method())
			}
			if tc.endpoint.Description() == "" {
				t.Fatal("empty description")
			}
			if tc.endpoint.AppliesToRelays() != tc.relays {
				t.Fatal("unexpected relays applicability")
			}
			if tc.endpoint.AppliesToBridges() != tc.bridges {
				t.Fatal("unexpected bridges applicability")
			}
		})
	}
}

func TestFindByName(t *testing.T) {
	for _, name := range []string{"weights", "Weights", "WEIGHTS"} {
		endpoint, found := FindByName(name)
		if !found {
			t.Fatal("not found", name)
		}
		if endpoint != Weights {
			t.Fatal("unexpected endpoint", endpoint)
		}
	}

	if _, found := FindByName("nonexistent"); found {
		t.Fatal("expected not found")
	}
}

func TestEndpointGroups(t *testing.T) {
	t.Run("the groups have the expected content", func(t *testing.T) {
		if diff := cmp.Diff([]Endpoint{Summary, Details, Bandwidth, Weights, Clients, Uptime}, AllEndpoints()); diff != "" {
			t.Fatal(diff)
		}
		if diff := cmp.Diff([]Endpoint{Summary, Details, Bandwidth, Uptime}, RelayAndBridgeEndpoints()); diff != "" {
			t.Fatal(diff)
		}
		if diff := cmp.Diff([]Endpoint{Weights}, RelayOnlyEndpoints()); diff != "" {
			t.Fatal(diff)
		}
		if diff := cmp.Diff([]Endpoint{Clients}, BridgeOnlyEndpoints()); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("callers cannot modify the catalog", func(t *testing.T) {
		all := AllEndpoints()
		all[0] = Uptime
		if AllEndpoints()[0] != Summary {
			t.Fatal("the catalog has been modified")
		}
	})
}

func TestInvalidEndpoint(t *testing.T) {
	endpoint := Endpoint(17)
	if endpoint.Valid() {
		t.Fatal("expected invalid")
	}
	if endpoint.String() != "Endpoint(17)" {
		t.Fatal("unexpected string", endpoint.String())
	}

	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic")
		}
	}()
	_ = endpoint.Path()
}
