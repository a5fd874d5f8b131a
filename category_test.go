package jsbld

import (
	"slices"
	"testing"
)

func TestSubtract(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		include []Category
		exclude []Category
		want    []Category
	}{
		{
			name:    "no exclusions keeps order",
			include: []Category{NPM, ESLint, Git},
			want:    []Category{NPM, ESLint, Git},
		},
		{
			name:    "excluded categories are removed",
			include: []Category{Electron, ESDoc, ESLint, NPM},
			exclude: []Category{ESDoc, NPM},
			want:    []Category{Electron, ESLint},
		},
		{
			name:    "exclusions not in include are ignored",
			include: []Category{ESLint},
			exclude: []Category{Git, "bogus"},
			want:    []Category{ESLint},
		},
		{
			name:    "duplicates are dropped",
			include: []Category{NPM, ESLint, NPM},
			want:    []Category{NPM, ESLint},
		},
		{
			name:    "everything excluded",
			include: []Category{NPM},
			exclude: []Category{NPM},
			want:    []Category{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Subtract(tt.include, tt.exclude)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Subtract(%v, %v) = %v, want %v", tt.include, tt.exclude, got, tt.want)
			}
		})
	}
}

func TestSubtract_DoesNotMutateInput(t *testing.T) {
	t.Parallel()
	include := []Category{NPM, Git, ESLint}
	_ = Subtract(include, []Category{Git})
	if !slices.Equal(include, []Category{NPM, Git, ESLint}) {
		t.Errorf("input modified: %v", include)
	}
}

func TestWithout(t *testing.T) {
	t.Parallel()
	in := []Category{NPM, NPMScripts, Git}
	got := Without(in, NPM, NPMScripts)
	if !slices.Equal(got, []Category{Git}) {
		t.Errorf("Without() = %v, want [git]", got)
	}
	if len(in) != 3 {
		t.Errorf("input modified: %v", in)
	}
}

func TestParseCategories(t *testing.T) {
	t.Parallel()
	got := ParseCategories([]string{" eslint", "", "npm ", "unknown"})
	want := []Category{ESLint, NPM, "unknown"}
	if !slices.Equal(got, want) {
		t.Errorf("ParseCategories() = %v, want %v", got, want)
	}
	if Category("unknown").Known() {
		t.Error("unknown category reported as known")
	}
	for _, c := range AllCategories() {
		if !c.Known() {
			t.Errorf("%q not reported as known", c)
		}
	}
}
