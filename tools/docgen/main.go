// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	md2man "github.com/cpuguy83/go-md2man/v2/md2man"
)

// docgen reads docs/commands/*.md and generates:
//   - docs/man/share/man1/todoctl-<cmd>.1 via md2man
//   - docs/tldr/todoctl-<cmd>.md from the short description and quick examples

const project = "https://github.com/staranto/todoctl"

type example struct {
	Desc string
	Cmd  string
}

// page is one parsed command document.
type page struct {
	Cmd      string
	Title    string
	Short    string
	Examples []example
	Raw      []byte
}

func main() {
	var (
		repoRoot           string
		writeOnlyIfChanged bool
	)

	flag.StringVar(&repoRoot, "root", ".", "repo root (default current dir)")
	flag.BoolVar(&writeOnlyIfChanged, "only-if-changed", true, "only write files if content changed")
	flag.Parse()

	if err := generate(repoRoot, writeOnlyIfChanged); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func generate(repoRoot string, onlyIfChanged bool) error {
	commandsDir := filepath.Join(repoRoot, "docs", "commands")
	manOutDir := filepath.Join(repoRoot, "docs", "man", "share", "man1")
	tldrOutDir := filepath.Join(repoRoot, "docs", "tldr")

	for _, dir := range []string{manOutDir, tldrOutDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output dir %s: %w", dir, err)
		}
	}

	pages, err := readPages(commandsDir)
	if err != nil {
		return err
	}
	if len(pages) == 0 {
		return fmt.Errorf("no command markdown found under %s", commandsDir)
	}

	for _, p := range pages {
		manPath := filepath.Join(manOutDir, fmt.Sprintf("todoctl-%s.1", p.Cmd))
		if err := writeFileIfChanged(manPath, md2man.Render(p.Raw), onlyIfChanged); err != nil {
			return fmt.Errorf("writing man page for %s: %w", p.Cmd, err)
		}

		tldrPath := filepath.Join(tldrOutDir, fmt.Sprintf("todoctl-%s.md", p.Cmd))
		if err := writeFileIfChanged(tldrPath, []byte(p.TLDR()), onlyIfChanged); err != nil {
			return fmt.Errorf("writing TLDR for %s: %w", p.Cmd, err)
		}
	}

	return nil
}

func readPages(dir string) ([]page, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading commands dir %s: %w", dir, err)
	}

	var pages []page
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		pages = append(pages, parsePage(strings.TrimSuffix(e.Name(), ".md"), raw))
	}
	return pages, nil
}

func parsePage(cmd string, raw []byte) page {
	md := string(raw)
	p := page{Cmd: cmd, Raw: raw, Examples: extractQuickExamples(md)}
	p.Title, p.Short = extractTitleAndShortDesc(md)
	return p
}

func writeFileIfChanged(path string, new []byte, onlyIfChanged bool) error {
	if !onlyIfChanged {
		return os.WriteFile(path, new, 0o644)
	}
	old, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return os.WriteFile(path, new, 0o644)
		}
		return err
	}
	if bytes.Equal(bytes.TrimSpace(old), bytes.TrimSpace(new)) {
		return nil
	}
	return os.WriteFile(path, new, 0o644)
}

var h1Re = regexp.MustCompile(`(?m)^#\s+(.+)$`)

func extractTitleAndShortDesc(md string) (title, short string) {
	if m := h1Re.FindStringSubmatch(md); m != nil {
		title = strings.TrimSpace(m[1])
	}

	// The first paragraph after the "Short description" header.
	idx := strings.Index(strings.ToLower(md), "short description")
	if idx >= 0 {
		rest := md[idx:]
		if nl := strings.Index(rest, "\n"); nl >= 0 {
			rest = rest[nl+1:]
		}
		var parts []string
		for _, ln := range strings.Split(rest, "\n") {
			s := strings.TrimSpace(ln)
			if s == "" {
				if len(parts) > 0 {
					break
				}
				continue
			}
			if strings.HasPrefix(s, "#") || strings.HasSuffix(s, ":") {
				break
			}
			parts = append(parts, s)
		}
		short = strings.Join(parts, " ")
	}

	if short == "" && title != "" {
		short = title + "."
	}
	return
}

// extractQuickExamples pairs each "# description" comment in the first code
// fence after "Quick examples" with the command line that follows it.
func extractQuickExamples(md string) []example {
	idx := strings.Index(strings.ToLower(md), "quick examples")
	if idx < 0 {
		return nil
	}
	rest := md[idx:]

	const fence = "```"
	start := strings.Index(rest, fence)
	if start < 0 {
		return nil
	}
	rest = rest[start+len(fence):]
	// Drop the info string, if any.
	if nl := strings.Index(rest, "\n"); nl >= 0 {
		rest = rest[nl+1:]
	}
	end := strings.Index(rest, fence)
	if end < 0 {
		return nil
	}

	var (
		exs  []example
		desc string
	)
	for _, ln := range strings.Split(rest[:end], "\n") {
		s := strings.TrimSpace(ln)
		switch {
		case s == "":
		case strings.HasPrefix(s, "#"):
			desc = strings.TrimSpace(strings.TrimPrefix(s, "#"))
		default:
			if desc == "" {
				desc = "Example"
			}
			exs = append(exs, example{Desc: desc, Cmd: strings.Join(strings.Fields(s), " ")})
			desc = ""
		}
	}
	return exs
}

// TLDR renders the page in tldr-pages format.
func (p page) TLDR() string {
	var b strings.Builder

	b.WriteString("# todoctl-" + p.Cmd + "\n\n")
	switch {
	case p.Short != "":
		b.WriteString("> " + p.Short + "\n")
	case p.Title != "":
		b.WriteString("> " + p.Title + "\n")
	default:
		b.WriteString("> todoctl " + p.Cmd + "\n")
	}
	b.WriteString("> More information: " + project + ".\n\n")

	exs := p.Examples
	if len(exs) == 0 {
		exs = []example{{Desc: "Show help for the command", Cmd: "todoctl " + p.Cmd + " --help"}}
	}
	for i, ex := range exs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("- " + ex.Desc + ":\n\n")
		b.WriteString("`" + ex.Cmd + "`\n")
	}
	return b.String()
}
