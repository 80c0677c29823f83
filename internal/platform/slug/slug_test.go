package slug_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"climblog/internal/platform/slug"
)

func TestMake(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"North Wall s1":           "north-wall-s1",
		"  Boulder -- Bar!! ":     "boulder-bar",
		"Kletterhalle Münster":    "kletterhalle-munster",
		"Café Crux / 2nd floor":   "cafe-crux-2nd-floor",
		"":                        "untitled",
		"!!!":                     "untitled",
		"V13+ project":            "v13-project",
	}
	for in, want := range cases {
		assert.Equal(t, want, slug.Make(in), "input %q", in)
	}
}

func TestMakeBoundsLength(t *testing.T) {
	t.Parallel()
	got := slug.Make(strings.Repeat("crimp ", 30))
	assert.LessOrEqual(t, len(got), slug.MaxLen)
	assert.False(t, strings.HasSuffix(got, "-"))
	assert.True(t, strings.HasPrefix(got, "crimp-crimp"))
}
