package closure_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/relo/internal/core/domain"
	"go.trai.ch/relo/internal/engine/closure"
)

func TestClassify(t *testing.T) {
	c := closure.NewClassifier("/work/build/lib", []string{"/usr/local", "/opt/homebrew"})

	tests := []struct {
		name string
		ref  string
		want domain.Scope
	}{
		{"workspace library", "/work/build/lib/libavcodec.58.dylib", domain.ScopeWorkspace},
		{"lib dir itself", "/work/build/lib", domain.ScopeWorkspace},
		{"prefix but not boundary", "/work/build/libextra/lib.dylib", domain.ScopeSystem},
		{"foreign package manager", "/usr/local/opt/xz/lib/liblzma.5.dylib", domain.ScopeForeign},
		{"second foreign prefix", "/opt/homebrew/lib/libfoo.dylib", domain.ScopeForeign},
		{"system library", "/usr/lib/libSystem.B.dylib", domain.ScopeSystem},
		{"system framework", "/System/Library/Frameworks/CoreFoundation.framework/CoreFoundation", domain.ScopeSystem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.ref))
		})
	}
}

func TestNormalize(t *testing.T) {
	c := closure.NewClassifier("/work/build/lib", nil)

	abs, rewritten := c.Normalize("@rpath/libavutil.56.dylib")
	assert.Equal(t, "/work/build/lib/libavutil.56.dylib", abs)
	assert.True(t, rewritten)

	abs, rewritten = c.Normalize("/usr/lib/libSystem.B.dylib")
	assert.Equal(t, "/usr/lib/libSystem.B.dylib", abs)
	assert.False(t, rewritten)
}

func TestNormalizeThenClassify(t *testing.T) {
	c := closure.NewClassifier("/work/build/lib", nil)

	abs, _ := c.Normalize("@rpath/libswscale.5.dylib")
	assert.Equal(t, domain.ScopeWorkspace, c.Classify(abs))
}
