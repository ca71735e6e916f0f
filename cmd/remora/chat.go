package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/remora-ai/remora/internal/agent"
	"github.com/remora-ai/remora/internal/agents"
	"github.com/remora-ai/remora/internal/session"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with an agent in an interactive terminal session",
	Long: `Starts an interactive conversation with the chosen agent. The most
recent session for the user is continued when one exists, so reminders
and other state survive across invocations. Type "exit" or "quit" to
end the conversation.`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().String("agent", "memory_agent", "Agent to talk to")
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	service, err := openService(cfg)
	if err != nil {
		return err
	}
	defer service.Close()

	catalog, runner, err := buildStack(cfg, service)
	if err != nil {
		return err
	}

	agentName, _ := cmd.Flags().GetString("agent")
	ag, err := catalog.Get(agentName)
	if err != nil {
		return err
	}
	ag.MaxIterations = cfg.App.MaxIterations

	ctx := cmd.Context()

	sess, created, err := session.FindOrCreate(ctx, service, cfg.App.Name, cfg.App.UserID, nil)
	if err != nil {
		return err
	}
	if created {
		fmt.Printf("Created new session: %s\n", sess.ID)
		fmt.Println("Welcome! Starting fresh with a new session.")
	} else {
		fmt.Printf("Continuing existing session: %s\n", sess.ID)
		fmt.Println("Your previous data and reminders have been restored!")
	}

	fmt.Printf("\nWelcome to %s!\n", ag.Name)
	fmt.Println("Your data will be remembered across conversations.")
	fmt.Println("Type 'exit' or 'quit' to end the conversation.")
	fmt.Println()

	out := termenv.NewOutput(os.Stdout)
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("You: ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if isTerminator(input) {
			fmt.Println("Ending conversation. Your data has been saved.")
			break
		}

		displayState(ctx, out, service, cfg.App.Name, cfg.App.UserID, sess.ID, "State BEFORE processing")

		result, err := runner.Run(ctx, ag, cfg.App.Name, cfg.App.UserID, sess.ID, input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}

		printResponse(out, ag, result)

		displayState(ctx, out, service, cfg.App.Name, cfg.App.UserID, sess.ID, "State AFTER processing")
	}

	return scanner.Err()
}

// isTerminator reports whether the input ends the conversation.
func isTerminator(input string) bool {
	switch strings.ToLower(input) {
	case "exit", "quit":
		return true
	}
	return false
}

func printResponse(out *termenv.Output, ag *agent.Agent, result *agent.RunResult) {
	profile := out.ColorProfile()

	for _, call := range result.ToolCalls {
		line := fmt.Sprintf("  [tool] %s", call.ToolName)
		if call.IsError {
			line += " (failed)"
		}
		fmt.Fprintln(out, out.String(line).Foreground(profile.Color("8")).String())
	}

	label := out.String(ag.Name + ":").Foreground(profile.Color("6")).Bold().String()
	content := result.Content

	// Structured-output agents answer in JSON; render it readably.
	if len(ag.OutputSchema) > 0 {
		if email, err := agents.ParseEmail(content); err == nil && ag.Name == "email_agent" {
			content = fmt.Sprintf("Subject: %s\n\n%s", email.Subject, email.Body)
		}
	}

	fmt.Fprintf(out, "%s %s\n", label, content)
}

// displayState dumps the user's name and numbered reminders, before and
// after each turn, so state changes made by tools are visible.
func displayState(ctx context.Context, out *termenv.Output, service session.Service, appName, userID, sessionID, label string) {
	sess, err := service.Get(ctx, appName, userID, sessionID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error displaying state: %v\n", err)
		return
	}

	profile := out.ColorProfile()
	header := fmt.Sprintf("%s %s %s", strings.Repeat("-", 10), label, strings.Repeat("-", 10))
	fmt.Fprintln(out, out.String(header).Foreground(profile.Color("3")).String())

	userName := session.UserName(sess.State)
	if userName == "" {
		userName = "Unknown"
	}
	fmt.Fprintf(out, "User: %s\n", userName)

	reminders := session.Reminders(sess.State)
	if len(reminders) == 0 {
		fmt.Fprintln(out, "Reminders: None")
	} else {
		fmt.Fprintln(out, "Reminders:")
		for i, reminder := range reminders {
			fmt.Fprintf(out, "  %d. %s\n", i+1, reminder)
		}
	}

	fmt.Fprintln(out, out.String(strings.Repeat("-", 22+len(label))).Foreground(profile.Color("3")).String())
}
