package app

import "link-audit/internal/types"

type AuditRequest struct {
	Profile           string
	StoreRoot         string
	Enumerator        string
	EnumeratorCommand []string
	ProfilesDir       string
	LddPath           string
	Workers           int
	AllowlistFile     string
	ExtraSystemLibs   []string
	Verbose           bool
}

type AuditResult struct {
	Result types.ProfileAuditResult
}

func (r AuditResult) AllClean() bool {
	return r.Result.AllClean()
}

type AllowlistRequest struct {
	AllowlistFile   string
	ExtraSystemLibs []string
}

type AllowlistResult struct {
	Entries []string
}
