package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"link-audit/internal/app"
)

type allowlistOptions struct {
	AllowlistFile   string
	ExtraSystemLibs []string
}

func newAllowlistCommand() *cobra.Command {
	opts := allowlistOptions{}
	cmd := &cobra.Command{
		Use:   "allowlist",
		Short: "Print the effective system library allowlist",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAllowlist(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.AllowlistFile, "allowlist", "", "YAML file with extra system libraries")
	cmd.Flags().StringSliceVar(&opts.ExtraSystemLibs, "system-lib", nil, "Extra system library base name")
	return cmd
}

func runAllowlist(cmd *cobra.Command, opts allowlistOptions) error {
	service := newAppService()
	result, err := service.SystemAllowlist(app.AllowlistRequest{
		AllowlistFile:   resolveString(cmd, opts.AllowlistFile, "allowlist_file", "allowlist"),
		ExtraSystemLibs: resolveStrings(cmd, opts.ExtraSystemLibs, "extra_system_libs", "system-lib"),
	})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, entry := range result.Entries {
		fmt.Fprintf(out, "%s.so*\n", entry)
	}
	return nil
}
