package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show your progress",
	Long:  `Shows today's question count against your daily target, your streak and your badges.`,
	Args:  cobra.NoArgs,
	RunE:  runProfileShow,
}

var profileNameCmd = &cobra.Command{
	Use:   "name <name>",
	Short: "Set your display name",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runProfileName,
}

var profileTargetCmd = &cobra.Command{
	Use:   "target <questions>",
	Short: "Set your daily question target",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileTarget,
}

func init() {
	profileCmd.AddCommand(profileNameCmd)
	profileCmd.AddCommand(profileTargetCmd)
	rootCmd.AddCommand(profileCmd)
}

func runProfileShow(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errLibraryNotConfigured
	}

	p, err := libraryService.Profile(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("failed to get profile: %w", err)
	}

	cmd.Printf("Name:    %s\n", p.Name)
	cmd.Printf("Today:   %d/%d questions\n", p.TodayCount, p.DailyTarget)
	cmd.Printf("Streak:  %d day(s)\n", p.Streak)
	if p.LastActive != "" {
		cmd.Printf("Active:  %s\n", p.LastActive)
	}
	if len(p.Badges) == 0 {
		cmd.Println("Badges:  none yet")
	} else {
		cmd.Printf("Badges:  %s\n", strings.Join(p.Badges, ", "))
	}
	return nil
}

func runProfileName(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errLibraryNotConfigured
	}

	name := strings.Join(args, " ")
	if err := libraryService.SetName(commandContext(cmd), name); err != nil {
		return fmt.Errorf("failed to set name: %w", err)
	}

	cmd.Printf("Name set to %s.\n", strings.TrimSpace(name))
	return nil
}

func runProfileTarget(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errLibraryNotConfigured
	}

	target, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid target %q: must be a number", args[0])
	}
	if err := libraryService.SetDailyTarget(commandContext(cmd), target); err != nil {
		return fmt.Errorf("failed to set target: %w", err)
	}

	cmd.Printf("Daily target set to %d questions.\n", target)
	return nil
}
