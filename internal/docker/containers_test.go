package docker

import (
	"testing"
)

func TestContainerName(t *testing.T) {
	tests := []struct {
		name     string
		names    []string
		expected string
	}{
		{"leading slash stripped", []string{"/web"}, "web"},
		{"only one slash stripped", []string{"//web"}, "/web"},
		{"no slash", []string{"web"}, "web"},
		{"first name wins", []string{"/web", "/web-alias"}, "web"},
		{"empty list", []string{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ContainerName(tt.names)
			if got != tt.expected {
				t.Errorf("ContainerName(%v) = %q, want %q", tt.names, got, tt.expected)
			}
		})
	}
}

func TestFilter(t *testing.T) {
	containers := []Container{
		{ID: "1", Name: "a"},
		{ID: "2", Name: "b"},
		{ID: "3", Name: "c"},
	}

	t.Run("allow-list keeps members only", func(t *testing.T) {
		got := Filter(containers, []string{"a", "c"})
		if len(got) != 2 {
			t.Fatalf("expected 2 containers, got %d", len(got))
		}
		if got[0].Name != "a" || got[1].Name != "c" {
			t.Errorf("expected [a c], got [%s %s]", got[0].Name, got[1].Name)
		}
	})

	t.Run("empty allow-list keeps all", func(t *testing.T) {
		got := Filter(containers, nil)
		if len(got) != 3 {
			t.Errorf("expected 3 containers, got %d", len(got))
		}
	})

	t.Run("allow-list entry not running", func(t *testing.T) {
		got := Filter(containers, []string{"z"})
		if len(got) != 0 {
			t.Errorf("expected 0 containers, got %d", len(got))
		}
	})
}
