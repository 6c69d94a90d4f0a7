package main

import (
	"testing"

	"github.com/hyperifyio/autotitle/internal/template"
)

func TestCannedTitle(t *testing.T) {
	cases := []struct {
		name, prompt, want string
	}{
		{"empty", "", "Untitled note"},
		{"instructions then note", "Title this.\n\nPack water and snacks for the hike", `"Pack water and snacks"`},
		{"no blank line", "one two", `"one two"`},
		{"note with paragraphs", "Title this.\n\nFirst para here\n\nsecond para", `"First para here second"`},
		{"default template", template.Render("", "Pack water and snacks for the hike"), `"Pack water and snacks"`},
	}
	for _, tc := range cases {
		if got := cannedTitle(tc.prompt); got != tc.want {
			t.Fatalf("%s: cannedTitle=%q, want %q", tc.name, got, tc.want)
		}
	}
}
