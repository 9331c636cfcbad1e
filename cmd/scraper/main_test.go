package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveHeadless(t *testing.T) {
	tests := []struct {
		name         string
		flagExplicit bool
		flagValue    bool
		envValue     bool
		want         bool
	}{
		{name: "explicit flag overrides env false", flagExplicit: true, flagValue: true, envValue: false, want: true},
		{name: "explicit flag overrides env true", flagExplicit: true, flagValue: false, envValue: true, want: false},
		{name: "env wins when flag unset", flagExplicit: false, flagValue: true, envValue: false, want: false},
		{name: "env true when flag unset", flagExplicit: false, flagValue: true, envValue: true, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveHeadless(tt.flagExplicit, tt.flagValue, tt.envValue))
		})
	}
}
