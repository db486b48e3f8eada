package ports

import "link-audit/internal/types"

type AuditReportPort interface {
	WriteReport(result types.ProfileAuditResult) error
}

type AllowlistSourcePort interface {
	LoadAllowlist(path string) ([]string, error)
}
