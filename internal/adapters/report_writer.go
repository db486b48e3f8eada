package adapters

import (
	"fmt"
	"io"
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"link-audit/internal/ports"
	"link-audit/internal/types"
)

// ReportWriterAdapter prints one block per dirty binary followed by a
// summary line. Verbose also lists the clean binaries.
type ReportWriterAdapter struct {
	Out     io.Writer
	Verbose bool
}

func NewReportWriterAdapter(out io.Writer, verbose bool) ReportWriterAdapter {
	if out == nil {
		out = os.Stdout
	}
	return ReportWriterAdapter{Out: out, Verbose: verbose}
}

func (a ReportWriterAdapter) WriteReport(result types.ProfileAuditResult) error {
	for _, verdict := range result.Verdicts {
		if verdict.IsClean() {
			if a.Verbose {
				if err := a.printf("ok %s\n", verdict.TargetPath); err != nil {
					return err
				}
			}
			continue
		}
		if err := a.printf("%s\n", verdict.TargetPath); err != nil {
			return err
		}
		for _, entry := range verdict.OffendingEntries {
			if err := a.printf("  %s %s %s\n", entry.DeclaredName, entry.ResolvedPath, entry.LoadAddress); err != nil {
				return err
			}
		}
	}
	status := "PASS"
	if !result.AllClean() {
		status = "FAIL"
	}
	return a.printf("link audit: profile=%s binaries=%d offending=%d: %s\n",
		result.Profile, len(result.Verdicts), result.OffendingCount(), status)
}

func (a ReportWriterAdapter) printf(format string, args ...any) error {
	if _, err := fmt.Fprintf(a.Out, format, args...); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write audit report").
			WithCause(err)
	}
	return nil
}

var _ ports.AuditReportPort = ReportWriterAdapter{}
