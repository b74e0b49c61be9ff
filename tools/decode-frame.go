//go:build ignore

// Decode-frame is a debugging aid for captured EMA8314 traffic: give it a
// command code and a hex dump of a 34-byte response frame and it prints the
// decoded fields and the status flag.
//
// Usage:
//
//	go run tools/decode-frame.go 0x50 00000000 00003cbc 41000000 ...
//
// Hex may be one blob or whitespace separated groups, with or without a 0x
// prefix on the command code.
package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/emalab/ema8314/internal/protocol"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: decode-frame <command-code> <response-hex...>")
		fmt.Println("Example: decode-frame 0x07 " + strings.Repeat("00", 32) + "6300")
		os.Exit(1)
	}

	code, err := parseCode(os.Args[1])
	if err != nil {
		fmt.Printf("Bad command code: %v\n", err)
		os.Exit(1)
	}

	blob := strings.Join(os.Args[2:], "")
	blob = strings.ReplaceAll(blob, ":", "")
	frame, err := hex.DecodeString(blob)
	if err != nil {
		fmt.Printf("Bad hex: %v\n", err)
		os.Exit(1)
	}

	cmd, err := protocol.Lookup(code)
	if err != nil {
		fmt.Printf("Unknown command 0x%02X\n", code)
		os.Exit(1)
	}

	fmt.Printf("=== EMA8314 Frame Decoder ===\n")
	fmt.Printf("Command: 0x%02X (%s)\n", code, cmd.Name)
	fmt.Printf("Length:  %d bytes\n\n", len(frame))

	values, flag, err := protocol.DecodeResponse(code, frame)
	if err != nil {
		fmt.Printf("Decode failed: %v\n", err)
		os.Exit(1)
	}

	status := "rejected"
	if flag == protocol.FlagSuccess {
		status = "success"
	}
	fmt.Printf("Flag:    %d (%s)\n", flag, status)

	if len(values) == 0 {
		fmt.Println("Fields:  none")
		return
	}

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("Fields:")
	for _, name := range names {
		fmt.Printf("  %-12s %v\n", name, values[name])
	}
}

func parseCode(arg string) (byte, error) {
	arg = strings.TrimPrefix(strings.ToLower(arg), "0x")
	n, err := strconv.ParseUint(arg, 16, 8)
	if err != nil {
		return 0, err
	}
	return byte(n), nil
}
