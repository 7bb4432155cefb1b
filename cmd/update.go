package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/SebastiaanZ/cpx-pomodoro/internal/logging"
	"github.com/SebastiaanZ/cpx-pomodoro/internal/updater"
)

// CreateUpdateCmd creates the update command.
func CreateUpdateCmd() *cobra.Command {
	var checkOnly bool
	var rollback bool
	var prerelease bool
	var repository string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update to the latest release",
		Long: `Checks GitHub for a newer release and replaces the running binary with it. ` +
			`The previous binary is kept as a backup; --rollback restores it.`,
		Run: func(cmd *cobra.Command, _ []string) {
			logging.Initialize(logging.Config{Level: "warn", Format: "text"})

			u, err := updater.New(&updater.Options{
				Repository: repository,
				Prerelease: prerelease,
			})
			if err != nil {
				fmt.Fprintf(os.Stderr, "updater unavailable: %v\n", err)
				os.Exit(1)
			}

			if rollback {
				if err := u.Rollback(); err != nil {
					fmt.Fprintf(os.Stderr, "rollback failed: %v\n", err)
					os.Exit(1)
				}
				fmt.Printf("Rolled back to %s\n", u.BackupVersion())
				return
			}

			if checkOnly {
				info, err := u.Check(cmd.Context())
				if err != nil {
					fmt.Fprintf(os.Stderr, "check failed: %v\n", err)
					os.Exit(1)
				}
				if !info.UpdateAvailable {
					fmt.Printf("Already up to date (%s)\n", info.CurrentVersion)
					return
				}
				fmt.Printf("Update available: %s -> %s\n", info.CurrentVersion, info.LatestVersion)
				fmt.Printf("  released: %s\n", info.PublishedAt.Format("2006-01-02"))
				fmt.Printf("  notes:    %s\n", info.ReleaseURL)
				return
			}

			info, err := u.Apply(cmd.Context())
			if err != nil {
				fmt.Fprintf(os.Stderr, "update failed: %v\n", err)
				os.Exit(1)
			}
			if !info.UpdateAvailable {
				fmt.Printf("Already up to date (%s)\n", info.CurrentVersion)
				return
			}
			fmt.Printf("Updated %s -> %s\n", info.CurrentVersion, info.LatestVersion)
		},
	}

	cmd.Flags().BoolVar(&checkOnly, "check", false, "Only check for a newer release")
	cmd.Flags().BoolVar(&rollback, "rollback", false, "Restore the previously installed binary")
	cmd.Flags().BoolVar(&prerelease, "prerelease", false, "Include prereleases")
	cmd.Flags().StringVar(&repository, "repository", "SebastiaanZ/cpx-pomodoro",
		"GitHub repository to update from")

	return cmd
}
