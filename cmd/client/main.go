// Command client is a polling terminal client: it logs in, shows the
// room table, then tails a room and posts whatever is typed on stdin.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"

	"parley/domain"
	"parley/projection"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()
	config, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return err
	}
	client := &http.Client{Jar: jar, Timeout: 10 * time.Second}

	if err := login(client, config); err != nil {
		return err
	}

	rooms, err := fetchRooms(client, config.ServerURL)
	if err != nil {
		return err
	}
	printRoomTable(rooms)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	header := fmt.Sprintf(" Tailing room %d, type to post, Ctrl-C to quit ", config.Room)
	if config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	fmt.Println(header)

	go postLoop(ctx, client, config)

	return pollLoop(ctx, client, config)
}

// login submits the login form; the session cookie lands in the jar.
func login(client *http.Client, config Config) error {
	form := url.Values{}
	form.Set("login", config.Login)
	form.Set("secret", config.Secret)

	resp, err := client.PostForm(config.ServerURL+"/login", form)
	if err != nil {
		return fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()

	// A rejected login redirects back to the login screen.
	if strings.Contains(resp.Request.URL.Path, "/login") {
		return fmt.Errorf("login rejected for %q", config.Login)
	}
	return nil
}

type roomSummary struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Messages int    `json:"messages"`
}

func fetchRooms(client *http.Client, serverURL string) ([]roomSummary, error) {
	resp, err := client.Get(serverURL + "/rooms")
	if err != nil {
		return nil, fmt.Errorf("room listing failed: %w", err)
	}
	defer resp.Body.Close()

	var rooms []roomSummary
	if err := json.NewDecoder(resp.Body).Decode(&rooms); err != nil {
		return nil, fmt.Errorf("room listing decode failed: %w", err)
	}
	return rooms, nil
}

func printRoomTable(rooms []roomSummary) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Name", "Messages"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, r := range rooms {
		table.Append([]string{strconv.Itoa(r.ID), r.Name, strconv.Itoa(r.Messages)})
	}
	table.Render()
}

// pollLoop repeatedly fetches new messages and renders the ones the
// timeline has not seen yet. The first round bootstraps from the full
// list because the since endpoint needs a positive lastSeenId.
func pollLoop(ctx context.Context, client *http.Client, config Config) error {
	timeline := projection.NewTimeline(domain.RoomID(config.Room))
	ticker := time.NewTicker(config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			fmt.Println("\nBye.")
			return nil
		case <-ticker.C:
			batch, err := fetchMessages(client, config, timeline.LastSeenID())
			if err != nil {
				fmt.Fprintf(os.Stderr, "poll failed: %v\n", err)
				continue
			}
			for _, m := range timeline.Consume(batch) {
				printMessage(m, config.Colours)
			}
		}
	}
}

func fetchMessages(client *http.Client, config Config, lastSeen int) ([]domain.Message, error) {
	path := fmt.Sprintf("%s/chat/%d/messages", config.ServerURL, config.Room)
	if lastSeen > 0 {
		path = fmt.Sprintf("%s/chat/%d/since/%d", config.ServerURL, config.Room, lastSeen)
	}

	resp, err := client.Get(path)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("room %d does not exist", config.Room)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	var messages []domain.Message
	if err := json.NewDecoder(resp.Body).Decode(&messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func printMessage(m domain.Message, colours bool) {
	author := m.Author.Name
	stamp := m.Time.Formatted()
	if colours {
		author = color.New(color.FgGreen).Render(author)
		stamp = color.New(color.FgGray).Render(stamp)
	}
	fmt.Printf("[%s] %s: %s\n", stamp, author, m.Text)
}

// postLoop reads stdin lines and posts each one as a message.
func postLoop(ctx context.Context, client *http.Client, config Config) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		text := scanner.Text()
		if text == "" {
			continue
		}
		path := fmt.Sprintf("%s/chat/%d", config.ServerURL, config.Room)
		resp, err := client.Post(path, "text/plain", strings.NewReader(text))
		if err != nil {
			fmt.Fprintf(os.Stderr, "post failed: %v\n", err)
			continue
		}
		resp.Body.Close()
	}
}
