package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage stored sessions",
	Long:  `List, inspect, and remove sessions in the configured storage backend.`,
}

var sessionLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List the user's sessions, most recent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		service, err := openService(cfg)
		if err != nil {
			return err
		}
		defer service.Close()

		sessions, err := service.List(cmd.Context(), cfg.App.Name, cfg.App.UserID)
		if err != nil {
			return err
		}

		if len(sessions) == 0 {
			fmt.Println("No sessions found.")
			return nil
		}
		for _, s := range sessions {
			fmt.Printf("%s  created=%s  updated=%s\n",
				s.ID,
				s.CreatedAt.Format("2006-01-02 15:04:05"),
				s.UpdatedAt.Format("2006-01-02 15:04:05"),
			)
		}
		return nil
	},
}

var sessionInspectCmd = &cobra.Command{
	Use:   "inspect <session-id>",
	Short: "Dump a session's state and events as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		service, err := openService(cfg)
		if err != nil {
			return err
		}
		defer service.Close()

		sess, err := service.Get(cmd.Context(), cfg.App.Name, cfg.App.UserID, args[0])
		if err != nil {
			return err
		}

		data, err := json.MarshalIndent(sess, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}

var sessionRmCmd = &cobra.Command{
	Use:   "rm <session-id>...",
	Short: "Remove one or more sessions",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		service, err := openService(cfg)
		if err != nil {
			return err
		}
		defer service.Close()

		var failed bool
		for _, sessionID := range args {
			if err := service.Delete(cmd.Context(), cfg.App.Name, cfg.App.UserID, sessionID); err != nil {
				fmt.Printf("Error removing %q: %v\n", sessionID, err)
				failed = true
				continue
			}
			fmt.Printf("Removed session %q\n", sessionID)
		}
		if failed {
			return errors.New("failed to remove some sessions")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionLsCmd, sessionInspectCmd, sessionRmCmd)
}
