package main

import (
	"bufio"
	"fmt"
	"strings"
	"syscall"

	"golang.org/x/term"
)

// askLine prints a prompt and reads one line; an empty answer returns def.
func askLine(r *bufio.Reader, prompt, def string) (string, error) {
	if def != "" {
		fmt.Printf("%s [%s]: ", prompt, def)
	} else {
		fmt.Printf("%s: ", prompt)
	}
	line, err := r.ReadString('\n')
	if err != nil {
		return "", err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return def, nil
	}
	return line, nil
}

// askYesNo keeps asking until it gets y/yes/n/no or an empty answer, which
// takes the default.
func askYesNo(r *bufio.Reader, prompt string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	for {
		fmt.Printf("%s [%s]: ", prompt, hint)
		line, err := r.ReadString('\n')
		if err != nil {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Println("Please answer y or n.")
	}
}

// askSecret reads a password without echo when stdin is a terminal, falling
// back to a plain line read when it is not (piped input in tests and
// scripts). An empty answer returns def so edit flows can keep the current
// secret.
func askSecret(r *bufio.Reader, prompt, def string) (string, error) {
	fmt.Printf("%s: ", prompt)
	if term.IsTerminal(int(syscall.Stdin)) {
		raw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return "", err
		}
		if len(raw) == 0 {
			return def, nil
		}
		return string(raw), nil
	}
	line, err := r.ReadString('\n')
	if err != nil {
		return "", err
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return def, nil
	}
	return line, nil
}

// maskSecret renders a stored secret for display without revealing it.
// Short secrets are fully starred; longer ones keep the first, middle, and
// last characters visible so the owner can recognize which password it is.
func maskSecret(secret string) string {
	if secret == "" {
		return "(not set)"
	}
	runes := []rune(secret)
	if len(runes) <= 4 {
		return strings.Repeat("*", len(runes))
	}
	masked := make([]rune, len(runes))
	mid := len(runes) / 2
	for i := range runes {
		switch i {
		case 0, mid, len(runes) - 1:
			masked[i] = runes[i]
		default:
			masked[i] = '*'
		}
	}
	return string(masked)
}
