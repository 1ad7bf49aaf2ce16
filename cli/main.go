package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"descsync"
	"descsync/auth"
	"descsync/catalog"
	"descsync/config"
	"descsync/storage"
)

func main() {
	command := "update"
	args := os.Args[1:]
	if len(args) > 0 {
		command = args[0]
		args = args[1:]
	}

	switch command {
	case "update":
		cmdUpdate(args)
	case "tracks":
		cmdTracks(args)
	case "auth":
		cmdAuth(args)
	case "history":
		cmdHistory(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command %q\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `descsync - push generated descriptions to YouTube videos

Usage:
  descsync [update]             Interactive update workflow (default)
  descsync tracks               List offerable tracks and videos
  descsync auth                 Run the OAuth authorization flow
  descsync history [flags]      Show push history
  descsync help                 Show this help message

Examples:
  descsync                            # Pick a track and video, push its description
  descsync tracks                     # See what can be updated
  descsync auth --force               # Re-authorize even with a cached token
  descsync history --video dQw4w9WgXcQ

For help on specific command: descsync <command> -h
`)
}

func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func cmdUpdate(args []string) {
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	forceAuth := fs.Bool("reauth", false, "Run the interactive authorization even with a cached token")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: descsync update [flags]\n\nFlags:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	cfg := loadConfig()

	session := descsync.NewSession(cfg)
	session.Selector = newConsoleSelector()
	session.ForceAuth = *forceAuth

	if err := session.Run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func cmdTracks(args []string) {
	fs := flag.NewFlagSet("tracks", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: descsync tracks\n")
	}
	fs.Parse(args)

	cfg := loadConfig()

	tracks, _, err := descsync.Candidates(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TRACK\tVIDEO ID\tTITLE\tSLUG")
	for _, track := range tracks {
		for _, v := range track.Videos {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", track.Title, v.ID, truncate(v.Title, 50), v.Slug)
		}
	}
	w.Flush()

	total := 0
	for _, track := range tracks {
		total += len(track.Videos)
	}
	fmt.Fprintf(os.Stderr, "\nTotal: %d videos in %d tracks\n", total, len(tracks))
}

func cmdAuth(args []string) {
	fs := flag.NewFlagSet("auth", flag.ExitOnError)
	force := fs.Bool("force", false, "Re-authorize even when a cached token exists")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: descsync auth [flags]\n\nFlags:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	cfg := loadConfig()

	_, err := descsync.Authorize(context.Background(), cfg, auth.NewConsolePrompter(), *force)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Authorized. Token cached at %s\n", cfg.TokenCachePath())
}

func cmdHistory(args []string) {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	videoID := fs.String("video", "", "Only show pushes for this video ID")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: descsync history [flags]\n\nFlags:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	cfg := loadConfig()

	history, err := storage.NewJSONHistory(cfg.HistoryPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening history: %v\n", err)
		os.Exit(1)
	}
	defer history.Close()

	ctx := context.Background()
	var pushes []*storage.PushRecord
	if *videoID != "" {
		pushes, err = history.ListPushesByVideo(ctx, *videoID)
	} else {
		pushes, err = history.ListPushes(ctx)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading history: %v\n", err)
		os.Exit(1)
	}

	if len(pushes) == 0 {
		fmt.Println("No pushes recorded.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PUSHED AT\tVIDEO ID\tTRACK\tSLUG")
	for _, p := range pushes {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.PushedAt.Format("2006-01-02 15:04"), p.VideoID, p.TrackSlug, p.Slug)
	}
	w.Flush()
}

// consoleSelector prompts for numbered track and video choices on stdio.
type consoleSelector struct {
	in  *bufio.Reader
	out io.Writer
}

func newConsoleSelector() *consoleSelector {
	return &consoleSelector{
		in:  bufio.NewReader(os.Stdin),
		out: os.Stderr,
	}
}

func (s *consoleSelector) SelectTrack(tracks []catalog.Track) (int, error) {
	fmt.Fprintln(s.out, "Tracks:")
	for i, track := range tracks {
		fmt.Fprintf(s.out, "  %d) %s (%d videos)\n", i+1, track.Title, len(track.Videos))
	}
	return s.choose("Track", len(tracks))
}

func (s *consoleSelector) SelectVideo(track catalog.Track) (int, error) {
	fmt.Fprintf(s.out, "Videos in %s:\n", track.Title)
	for i, v := range track.Videos {
		fmt.Fprintf(s.out, "  %d) %s [%s]\n", i+1, truncate(v.Title, 60), v.ID)
	}
	return s.choose("Video", len(track.Videos))
}

// choose reads a 1-based selection and returns the 0-based index.
func (s *consoleSelector) choose(label string, n int) (int, error) {
	for {
		fmt.Fprintf(s.out, "%s [1-%d]: ", label, n)

		line, err := s.in.ReadString('\n')
		if err != nil {
			return 0, fmt.Errorf("read selection: %w", err)
		}

		choice, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil || choice < 1 || choice > n {
			fmt.Fprintf(s.out, "Please enter a number between 1 and %d.\n", n)
			continue
		}
		return choice - 1, nil
	}
}

// truncate shortens s to at most maxLen runes, cutting on rune boundaries
// so multi-byte titles never produce invalid UTF-8 in listings.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
