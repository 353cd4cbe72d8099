package taskquery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecompress(t *testing.T) {
	cases := map[string]string{
		"RaniKawale":      "Rani Kawale",
		"Rani Kawale":     "Rani Kawale",
		"  InProgress ":   "In Progress",
		"ToDo":            "To Do",
		"Completed":       "Completed",
		"aliceBobCharlie": "alice Bob Charlie",
		"JSONParser":      "JSONParser",
		"":                "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Decompress(in), "input %q", in)
	}
}

func TestDecompress_Idempotent(t *testing.T) {
	inputs := []string{"RaniKawale", "Rani Kawale", "aBcDeF", "InProgress", "x", "MaryJaneWatson"}
	for _, in := range inputs {
		once := Decompress(in)
		assert.Equal(t, once, Decompress(once), "input %q", in)
	}
}

func TestSplitCompact(t *testing.T) {
	assert.Nil(t, SplitCompact(""))
	assert.Nil(t, SplitCompact("   "))
	assert.Equal(t, []string{}, SplitCompact(" , ,"))
	assert.Equal(t,
		[]string{"Rani Kawale", "Amit Shah"},
		SplitCompact("RaniKawale, AmitShah,,RaniKawale"),
	)
}
