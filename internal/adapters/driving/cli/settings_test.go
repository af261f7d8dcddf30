package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseChoice(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		maxVal     int
		defaultVal int
		expected   int
	}{
		{"empty uses default", "", 3, 2, 2},
		{"valid choice", "1", 3, 2, 1},
		{"upper bound", "3", 3, 2, 3},
		{"zero uses default", "0", 3, 2, 2},
		{"out of range uses default", "4", 3, 2, 2},
		{"not a number uses default", "abc", 3, 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseChoice(tt.input, tt.maxVal, tt.defaultVal))
		})
	}
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "****", maskAPIKey(""))
	assert.Equal(t, "****", maskAPIKey("short"))
	assert.Equal(t, "sk-a...wxyz", maskAPIKey("sk-abcdefghijklmnopqrstuvwxyz"))
}

func TestSettingsCmd_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, sub := range settingsCmd.Commands() {
		names[sub.Name()] = true
	}

	assert.True(t, names["show"])
	assert.True(t, names["mode"])
	assert.True(t, names["embedding"])
	assert.True(t, names["backend"])
}
