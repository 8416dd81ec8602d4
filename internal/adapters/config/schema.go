package config

// Relofile represents the structure of the relo.yaml configuration file.
type Relofile struct {
	Version          string      `yaml:"version"`
	Root             string      `yaml:"root"`
	LibDir           string      `yaml:"libDir"`
	BinDir           string      `yaml:"binDir"`
	IncludeDir       string      `yaml:"includeDir"`
	Output           string      `yaml:"output"`
	Executables      []string    `yaml:"executables"`
	ForeignPrefixes  []string    `yaml:"foreignPrefixes"`
	Naming           []NamingDTO `yaml:"naming"`
	DeploymentTarget string      `yaml:"deploymentTarget"`
	Tools            ToolsDTO    `yaml:"tools"`
	Archive          string      `yaml:"archive"`
	Checksum         *bool       `yaml:"checksum"`
	SmokeTest        bool        `yaml:"smokeTest"`
}

// NamingDTO is one family naming exception.
type NamingDTO struct {
	Marker string `yaml:"marker"`
	Family string `yaml:"family"`
}

// ToolsDTO overrides the external tool locations.
type ToolsDTO struct {
	Otool           string `yaml:"otool"`
	InstallNameTool string `yaml:"installNameTool"`
	Dsymutil        string `yaml:"dsymutil"`
}
