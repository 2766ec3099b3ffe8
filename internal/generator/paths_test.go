package generator

import (
	"reflect"
	"testing"
)

func TestBuildOutputPath(t *testing.T) {
	cases := []struct {
		name  string
		route string
		want  string
	}{
		{name: "root", route: "", want: "index.html"},
		{name: "slash_only", route: "/", want: "index.html"},
		{name: "single_segment", route: "tutorial", want: "tutorial/index.html"},
		{name: "nested_with_slashes", route: "/tutorial/setup/", want: "tutorial/setup/index.html"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := buildOutputPath(tc.route); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestNormalizeRoutes(t *testing.T) {
	got := normalizeRoutes([]string{"/tutorial", "tutorial/", " /glossary ", "/tutorial"})
	want := []string{"tutorial", "glossary"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
