// Copyright (c) Nimbus AI. All rights reserved.

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	ak "github.com/nimbus-ai/weather-agent/agentkit"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the weather agent in the terminal",
	RunE:  runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	session, err := a.agent.NewSession()
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	fmt.Println("Chat with the weather agent (type 'quit' to exit, 'stream' prefix for streaming)")
	fmt.Println()

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
		if input == "quit" || input == "exit" {
			break
		}

		ctx := cmd.Context()

		if rest, ok := strings.CutPrefix(input, "stream "); ok {
			stream, err := a.agent.RunStream(ctx,
				[]ak.Message{ak.NewUserMessage(rest)},
				ak.WithSession(session),
			)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				continue
			}

			fmt.Print("Agent: ")
			for {
				update, ok, err := stream.Next(ctx)
				if err != nil {
					fmt.Fprintf(os.Stderr, "\nStream error: %v\n", err)
					break
				}
				if !ok {
					break
				}
				fmt.Print(update.Text())
			}
			fmt.Println()
			stream.Close()
		} else {
			resp, err := a.agent.Run(ctx,
				[]ak.Message{ak.NewUserMessage(input)},
				ak.WithSession(session),
			)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				continue
			}

			fmt.Printf("Agent: %s\n", resp.Text())
			if resp.Usage.TotalTokens > 0 {
				fmt.Printf("  [tokens: %d in, %d out]\n",
					resp.Usage.InputTokens, resp.Usage.OutputTokens)
			}
		}
		fmt.Println()
	}

	return scanner.Err()
}
