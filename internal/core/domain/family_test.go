package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/relo/internal/core/domain"
)

func TestNamingTable_FamilyOf(t *testing.T) {
	table := domain.DefaultNamingTable()

	tests := []struct {
		name     string
		fileName string
		want     string
	}{
		{name: "unversioned", fileName: "libavcodec.dylib", want: "libavcodec"},
		{name: "major version", fileName: "libavcodec.61.dylib", want: "libavcodec"},
		{name: "full version chain", fileName: "libavcodec.61.19.101.dylib", want: "libavcodec"},
		{name: "hyphenated exception", fileName: "libSDL2-2.0.0.dylib", want: "libSDL2"},
		{name: "hyphenated exception unversioned", fileName: "libSDL2.dylib", want: "libSDL2"},
		{name: "no extension", fileName: "ffmpeg", want: "ffmpeg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, table.FamilyOf(tt.fileName))
		})
	}
}

func TestNamingTable_FamilyOf_CustomRule(t *testing.T) {
	table := domain.NamingTable{
		{Marker: "libfoo-bar", Family: "libfoo-bar"},
	}

	assert.Equal(t, "libfoo-bar", table.FamilyOf("libfoo-bar-1.2.dylib"))
	// The default first-dot strip still applies to everything else.
	assert.Equal(t, "libbaz", table.FamilyOf("libbaz.3.dylib"))
}
