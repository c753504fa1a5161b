package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

func newPlayCmd() *cobra.Command {
	var username string
	var asAdmin bool

	cmd := &cobra.Command{
		Use:   "play <code>",
		Short: "Join a room and play interactively",
		Long: `Connect to a room over websocket and play from the terminal.

Typed lines are sent as guesses; wrong guesses show up as chat for
everyone. Commands:
  /start    start a round (admin only)
  /quit     leave the room

Press Ctrl+C to disconnect.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := strings.ToUpper(args[0])
			return play(code, username, asAdmin)
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Username to join with (required)")
	cmd.Flags().BoolVar(&asAdmin, "admin", false, "Request admin if the room has none")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}

func play(code, username string, asAdmin bool) error {
	conn, resp, err := websocket.DefaultDialer.Dial(client.WebsocketURL(code), nil)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	if resp != nil {
		defer func() { _ = resp.Body.Close() }()
	}
	defer func() { _ = conn.Close() }()

	if err := conn.WriteJSON(map[string]any{
		"type":     "join",
		"username": username,
		"as_admin": asAdmin,
	}); err != nil {
		return fmt.Errorf("failed to join: %w", err)
	}

	// Print events as they arrive
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			var event playEvent
			if err := conn.ReadJSON(&event); err != nil {
				return
			}
			printEvent(event)
		}
	}()

	// Disconnect on Ctrl+C
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		_ = conn.WriteJSON(map[string]string{"type": "leave"})
		_ = conn.Close()
	}()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "/quit":
			_ = conn.WriteJSON(map[string]string{"type": "leave"})
			<-done
			return nil
		case line == "/start":
			if err := conn.WriteJSON(map[string]string{"type": "start_round"}); err != nil {
				return err
			}
		case strings.TrimSpace(line) == "":
			// Skip blank lines
		default:
			if err := conn.WriteJSON(map[string]string{"type": "guess", "guess": line}); err != nil {
				return err
			}
		}
	}

	<-done
	return scanner.Err()
}

// playEvent mirrors the server's outbound envelope with the payload kept
// raw so each event type can pick out its own fields
type playEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func printEvent(event playEvent) {
	switch event.Type {
	case "joined":
		var data struct {
			Code     string `json:"code"`
			Username string `json:"username"`
			IsAdmin  bool   `json:"is_admin"`
		}
		_ = json.Unmarshal(event.Data, &data)
		if data.IsAdmin {
			fmt.Printf("* joined %s as %s (admin)\n", data.Code, data.Username)
		} else {
			fmt.Printf("* joined %s as %s\n", data.Code, data.Username)
		}

	case "join_error", "error":
		var data struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(event.Data, &data)
		fmt.Fprintf(os.Stderr, "! %s\n", data.Message)

	case "roster":
		var data struct {
			Players []RoomPlayer `json:"players"`
		}
		_ = json.Unmarshal(event.Data, &data)
		names := make([]string, 0, len(data.Players))
		for _, p := range data.Players {
			name := fmt.Sprintf("%s (%d)", p.Username, p.Score)
			if p.IsAdmin {
				name += " [admin]"
			}
			names = append(names, name)
		}
		fmt.Printf("* players: %s\n", strings.Join(names, ", "))

	case "player_left":
		var data struct {
			Username string `json:"username"`
		}
		_ = json.Unmarshal(event.Data, &data)
		fmt.Printf("* %s left\n", data.Username)

	case "round_started":
		var data struct {
			Drawer string `json:"drawer"`
		}
		_ = json.Unmarshal(event.Data, &data)
		fmt.Printf("* round started, %s is drawing\n", data.Drawer)

	case "your_word":
		var data struct {
			Word string `json:"word"`
		}
		_ = json.Unmarshal(event.Data, &data)
		fmt.Printf("* you are drawing: %s\n", data.Word)

	case "chat":
		var data struct {
			From    string `json:"from"`
			Message string `json:"message"`
		}
		_ = json.Unmarshal(event.Data, &data)
		fmt.Printf("<%s> %s\n", data.From, data.Message)

	case "correct_guess":
		var data struct {
			Username string `json:"username"`
			Score    int    `json:"score"`
		}
		_ = json.Unmarshal(event.Data, &data)
		fmt.Printf("* %s guessed it! (%d points)\n", data.Username, data.Score)

	case "round_over":
		var data struct {
			Word string `json:"word"`
		}
		_ = json.Unmarshal(event.Data, &data)
		fmt.Printf("* round over, the word was %q\n", data.Word)

	case "round_abandoned":
		fmt.Println("* round abandoned, the drawer left")

	case "draw":
		// Canvas data is not rendered in the terminal
	}
}
