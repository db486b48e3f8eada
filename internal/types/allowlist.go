package types

// AllowlistFile is the on-disk format for extra system library names.
type AllowlistFile struct {
	SystemLibs []string `yaml:"system_libs"`
}
