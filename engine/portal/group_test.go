package portal

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveGroup(t *testing.T) {
	cases := map[string]string{
		"portal-to__panorama": "panorama",
		"panorama":            "panorama",
		"a__b__c":             "c",
		"trailing__":          "",
		"__lead":              "lead",
		"":                    "",
		"single_underscore":   "single_underscore",
	}
	for label, want := range cases {
		assert.Equal(t, want, DeriveGroup(label), "label %q", label)
	}
}

func TestDeriveGroupMatchesLastSeparator(t *testing.T) {
	labels := []string{"x", "x__y", "one__two__three", "___", "a_b__c_d"}
	for _, l := range labels {
		got := DeriveGroup(l)
		if !strings.Contains(l, GroupSeparator) {
			assert.Equal(t, l, got)
			continue
		}
		assert.Equal(t, l[strings.LastIndex(l, GroupSeparator)+2:], got)
		assert.NotContains(t, got, GroupSeparator)
	}
}
