package brute

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DefaultWordlist is used when no dictionary is given, resolved
// relative to the executable.
const DefaultWordlist = "data/subdomains-top1mil-5000.txt"

// LoadWordlist reads candidate labels, one per line. Blank lines and
// # comments are skipped.
func LoadWordlist(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading wordlist: %w", err)
	}
	return words, nil
}

func LoadWordlistFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening wordlist: %w", err)
	}
	defer f.Close()
	return LoadWordlist(f)
}

// ResolveWordlistPath maps a possibly relative wordlist path to a real
// file. Relative paths are tried next to the executable and one level
// up (installs that put the binary in bin/), falling back to the
// working directory.
func ResolveWordlistPath(path string) string {
	if path == "" {
		path = DefaultWordlist
	}
	if filepath.IsAbs(path) {
		return path
	}

	if exe, err := os.Executable(); err == nil {
		dir := filepath.Dir(exe)
		for _, base := range []string{dir, filepath.Dir(dir)} {
			candidate := filepath.Join(base, path)
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}
	}

	return path
}
