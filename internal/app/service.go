package app

import (
	"io"
	"os"

	"link-audit/internal/adapters"
	"link-audit/internal/ports"
)

type Service struct {
	Allowlist    ports.AllowlistSourcePort
	Out          io.Writer
	Introspector func(lddPath string) ports.DependencyIntrospectorPort
	Enumerator   func(req AuditRequest) (ports.BinaryEnumeratorPort, error)
}

func NewService() Service {
	return Service{
		Allowlist: adapters.NewAllowlistFileAdapter(),
		Out:       os.Stdout,
		Introspector: func(lddPath string) ports.DependencyIntrospectorPort {
			return adapters.NewLddAdapter(lddPath)
		},
		Enumerator: buildEnumerator,
	}
}
