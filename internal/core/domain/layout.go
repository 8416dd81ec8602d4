package domain

const (
	// ConfigFileName is the name of the bundle configuration file.
	ConfigFileName = "relo.yaml"

	// ManifestFileName is the name of the checksum manifest written into the
	// output directory.
	ManifestFileName = "SHAMSUM256.txt"

	// SymbolBundleSuffix is appended to a binary's file name to form the
	// name of its debug-symbol bundle.
	SymbolBundleSuffix = ".dSYM"

	// LibraryExtension is the shared-library file extension the resolver
	// globs for when expanding a version family.
	LibraryExtension = ".dylib"

	// PlaceholderPrefix is the search-path placeholder token that some load
	// commands use instead of an absolute path. It is substituted with the
	// workspace lib directory before classification.
	PlaceholderPrefix = "@rpath/"

	// LoaderPrefix is the location-relative prefix used for every rewritten
	// identifier and reference, resolved by the loader against the directory
	// containing the consuming binary.
	LoaderPrefix = "@loader_path/"

	// DirPerm is the default permission for created directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for non-executable files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// SymbolBundleName returns the fixed debug-symbol bundle name for a binary
// file name, e.g. "libavcodec.61.dylib.dSYM" for "libavcodec.61.dylib".
func SymbolBundleName(binaryName string) string {
	return binaryName + SymbolBundleSuffix
}

// LoaderRelative returns the loader-relative form of a bundled file name.
func LoaderRelative(name string) string {
	return LoaderPrefix + name
}
