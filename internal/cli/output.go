package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Room:
		o.printRoom(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Room response type (matches API)
type Room struct {
	Code        string       `json:"code"`
	Players     []RoomPlayer `json:"players"`
	RoundActive bool         `json:"round_active"`
	CreatedAt   string       `json:"created_at"`
}

// RoomPlayer response type
type RoomPlayer struct {
	Username string `json:"username"`
	Score    int    `json:"score"`
	IsAdmin  bool   `json:"is_admin"`
}

// HealthResult response type
type HealthResult struct {
	Status    string `json:"status"`
	WordCount int    `json:"word_count"`
}

func (o *Output) printRoom(r Room) {
	fmt.Printf("Room: %s\n", r.Code)
	if r.RoundActive {
		fmt.Println("Round: in progress")
	} else {
		fmt.Println("Round: idle")
	}
	fmt.Printf("Players (%d):\n", len(r.Players))
	for _, p := range r.Players {
		adminStr := ""
		if p.IsAdmin {
			adminStr = " [admin]"
		}
		fmt.Printf("  - %s - %d points%s\n", p.Username, p.Score, adminStr)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
	fmt.Printf("Words: %d\n", h.WordCount)
}
