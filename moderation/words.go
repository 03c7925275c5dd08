package moderation

import (
	"bufio"
	"embed"
	"fmt"
	"strings"

	"skillswap/errors"
)

//go:embed censored/*
var censoredFolder embed.FS

// LoadCensoredWords reads the embedded banned word lists, one word per
// line, '#' starting a comment.
func LoadCensoredWords() ([]string, error) {
	entries, err := censoredFolder.ReadDir("censored")
	if err != nil {
		return nil, err
	}

	var words []string
	for _, entry := range entries {
		if entry.IsDir() {
			return nil, errors.ErrNotFound
		}
		f, err := censoredFolder.Open("censored/" + entry.Name())
		if err != nil {
			return nil, err
		}
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			words = append(words, line)
		}
		if err := scanner.Err(); err != nil {
			_ = f.Close()
			return nil, err
		}
		_ = f.Close()
	}

	if len(words) == 0 {
		return nil, fmt.Errorf("no censored words found")
	}
	return words, nil
}
