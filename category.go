package jsbld

import (
	"slices"
	"strings"
)

// Category identifies a group of related tasks.
type Category string

// Known task categories.
const (
	Electron   Category = "electron"
	ESDoc      Category = "esdoc"
	ESLint     Category = "eslint"
	Git        Category = "git"
	JSPM       Category = "jspm"
	JSPMTest   Category = "jspm-test"
	NPM        Category = "npm"
	NPMScripts Category = "npm-scripts"
	Test       Category = "test"
)

// AllCategories returns every known category in dispatch order.
func AllCategories() []Category {
	return []Category{Electron, ESDoc, ESLint, Git, JSPM, JSPMTest, NPM, NPMScripts, Test}
}

// ParseCategories converts category identifiers to Categories.
// Blank entries are dropped; unknown identifiers are kept and later ignored
// by the registrar.
func ParseCategories(names []string) []Category {
	var out []Category
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		out = append(out, Category(n))
	}
	return out
}

// Known reports whether c is one of the built-in categories.
func (c Category) Known() bool {
	return slices.Contains(AllCategories(), c)
}

// Subtract returns include minus exclude, keeping the order of include and
// dropping duplicates.
func Subtract(include, exclude []Category) []Category {
	seen := make(map[Category]bool, len(include))
	out := make([]Category, 0, len(include))
	for _, c := range include {
		if seen[c] || slices.Contains(exclude, c) {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// Without returns cs with every category in drop removed.
func Without(cs []Category, drop ...Category) []Category {
	return slices.DeleteFunc(slices.Clone(cs), func(c Category) bool {
		return slices.Contains(drop, c)
	})
}
