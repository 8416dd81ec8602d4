package macho

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/relo/internal/core/domain"
)

func TestParseDependencies(t *testing.T) {
	out := "build/lib/libavcodec.58.dylib:\n" +
		"\t/work/build/lib/libavcodec.58.dylib (compatibility version 58.0.0, current version 58.134.100)\n" +
		"\t@rpath/libavutil.56.dylib (compatibility version 56.0.0, current version 56.70.100)\n" +
		"\t/usr/local/opt/xz/lib/liblzma.5.dylib (compatibility version 6.0.0, current version 6.3.0)\n" +
		"\t/usr/lib/libSystem.B.dylib (compatibility version 1.0.0, current version 1311.0.0)\n"

	refs := parseDependencies(out)

	assert.Equal(t, []domain.Reference{
		"/work/build/lib/libavcodec.58.dylib",
		"@rpath/libavutil.56.dylib",
		"/usr/local/opt/xz/lib/liblzma.5.dylib",
		"/usr/lib/libSystem.B.dylib",
	}, refs)
}

func TestParseDependencies_Empty(t *testing.T) {
	assert.Empty(t, parseDependencies("bin/tool:\n"))
	assert.Empty(t, parseDependencies(""))
}

func TestParseDeploymentTarget_BuildVersion(t *testing.T) {
	out := "Load command 9\n" +
		"      cmd LC_BUILD_VERSION\n" +
		"  cmdsize 32\n" +
		" platform 1\n" +
		"    minos 11.0\n" +
		"      sdk 12.1\n"

	assert.Equal(t, "11.0", parseDeploymentTarget(out))
}

func TestParseDeploymentTarget_VersionMin(t *testing.T) {
	out := "Load command 8\n" +
		"          cmd LC_VERSION_MIN_MACOSX\n" +
		"      cmdsize 16\n" +
		"  version 10.13\n" +
		"      sdk 12.1\n"

	assert.Equal(t, "10.13", parseDeploymentTarget(out))
}

func TestParseDeploymentTarget_OtherCommandsIgnored(t *testing.T) {
	// A version field under an unrelated load command must not be read as
	// the deployment target.
	out := "Load command 3\n" +
		"      cmd LC_SOURCE_VERSION\n" +
		"  version 4.2\n" +
		"Load command 9\n" +
		"      cmd LC_BUILD_VERSION\n" +
		"    minos 10.11\n"

	assert.Equal(t, "10.11", parseDeploymentTarget(out))
}

func TestParseDeploymentTarget_Missing(t *testing.T) {
	assert.Equal(t, "", parseDeploymentTarget("Load command 0\n      cmd LC_SEGMENT_64\n"))
}
