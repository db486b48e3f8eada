package cli

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"link-audit/internal/app"
)

type auditOptions struct {
	Profile           string
	StoreRoot         string
	Enumerator        string
	EnumeratorCommand []string
	ProfilesDir       string
	LddPath           string
	Workers           int
	AllowlistFile     string
	ExtraSystemLibs   []string
}

func newAuditCommand() *cobra.Command {
	opts := auditOptions{}
	cmd := &cobra.Command{
		Use:   "audit [profile]",
		Short: "Check that every shared library of a profile links only system or store libraries",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.Profile = args[0]
				_ = cmd.Flags().Set("profile", args[0])
			}
			cmd.SilenceUsage = true
			return runAudit(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Profile, "profile", "", "Profile to audit")
	cmd.Flags().StringVar(&opts.StoreRoot, "store-root", "", "Artifact store root")
	cmd.Flags().StringVar(&opts.Enumerator, "enumerator", "command", "How to list profile libraries (command or dir)")
	cmd.Flags().StringSliceVar(&opts.EnumeratorCommand, "enumerator-command", nil, "Command printing the shared libraries of a profile")
	cmd.Flags().StringVar(&opts.ProfilesDir, "profiles-dir", "", "Directory holding installed profiles for the dir enumerator")
	cmd.Flags().StringVar(&opts.LddPath, "ldd", "ldd", "ldd executable")
	cmd.Flags().IntVar(&opts.Workers, "workers", 1, "Binaries audited in parallel")
	cmd.Flags().StringVar(&opts.AllowlistFile, "allowlist", "", "YAML file with extra system libraries")
	cmd.Flags().StringSliceVar(&opts.ExtraSystemLibs, "system-lib", nil, "Extra system library base name")
	_ = viper.BindPFlag("profile", cmd.Flags().Lookup("profile"))
	_ = viper.BindPFlag("store_root", cmd.Flags().Lookup("store-root"))
	_ = viper.BindPFlag("enumerator", cmd.Flags().Lookup("enumerator"))
	_ = viper.BindPFlag("enumerator_command", cmd.Flags().Lookup("enumerator-command"))
	_ = viper.BindPFlag("profiles_dir", cmd.Flags().Lookup("profiles-dir"))
	_ = viper.BindPFlag("ldd_path", cmd.Flags().Lookup("ldd"))
	_ = viper.BindPFlag("workers", cmd.Flags().Lookup("workers"))
	_ = viper.BindPFlag("allowlist_file", cmd.Flags().Lookup("allowlist"))
	_ = viper.BindPFlag("extra_system_libs", cmd.Flags().Lookup("system-lib"))
	return cmd
}

func runAudit(ctx context.Context, cmd *cobra.Command, opts auditOptions) error {
	service := newAppService()
	if cmd != nil {
		service.Out = cmd.OutOrStdout()
	}
	result, err := service.Audit(ctx, auditRequest(cmd, opts))
	if err != nil {
		return err
	}
	if !result.AllClean() {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("link contamination found in %d of %d binaries",
				len(result.Result.DirtyVerdicts()), len(result.Result.Verdicts)))
	}
	return nil
}

func auditRequest(cmd *cobra.Command, opts auditOptions) app.AuditRequest {
	return app.AuditRequest{
		Profile:           resolveString(cmd, opts.Profile, "profile", "profile"),
		StoreRoot:         resolveString(cmd, opts.StoreRoot, "store_root", "store-root"),
		Enumerator:        resolveString(cmd, opts.Enumerator, "enumerator", "enumerator"),
		EnumeratorCommand: resolveStrings(cmd, opts.EnumeratorCommand, "enumerator_command", "enumerator-command"),
		ProfilesDir:       resolveString(cmd, opts.ProfilesDir, "profiles_dir", "profiles-dir"),
		LddPath:           resolveString(cmd, opts.LddPath, "ldd_path", "ldd"),
		Workers:           resolveInt(cmd, opts.Workers, "workers", "workers"),
		AllowlistFile:     resolveString(cmd, opts.AllowlistFile, "allowlist_file", "allowlist"),
		ExtraSystemLibs:   resolveStrings(cmd, opts.ExtraSystemLibs, "extra_system_libs", "system-lib"),
		Verbose:           resolveBool(cmd, verboseFlag(cmd), "verbose", "verbose"),
	}
}

// verboseFlag reads the inherited root flag from the subcommand's merged set.
func verboseFlag(cmd *cobra.Command) bool {
	if cmd == nil {
		return false
	}
	verbose, _ := cmd.Flags().GetBool("verbose")
	return verbose
}
