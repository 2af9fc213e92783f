package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/clubworks/clubd/internal/model"
	"github.com/clubworks/clubd/internal/ui"
)

func printEventJSON(event *model.Event) {
	data, err := json.MarshalIndent(event, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func printEventTable(event *model.Event) {
	fmt.Printf("ID:          %s\n", ui.RenderAccent(event.ID))
	fmt.Printf("Name:        %s\n", event.Name)
	if event.Description != "" {
		fmt.Printf("Description: %s\n", event.Description)
	}
	if event.Location != "" {
		fmt.Printf("Location:    %s\n", event.Location)
	}
	if event.Date != "" {
		fmt.Printf("Date:        %s\n", event.Date)
	}
	fmt.Printf("Image:       %s\n", event.Image)
	if len(event.Perks) > 0 {
		fmt.Printf("Perks:       %s\n", strings.Join(event.Perks, ", "))
	}
	if event.Pinned {
		fmt.Printf("Pinned:      %s\n", ui.RenderPinned("yes"))
	}
	if !event.CreatedAt.IsZero() {
		fmt.Printf("Created At:  %s\n", ui.RenderMuted(event.CreatedAt.Format("2006-01-02 15:04:05")))
	}
	if !event.UpdatedAt.IsZero() {
		fmt.Printf("Updated At:  %s\n", ui.RenderMuted(event.UpdatedAt.Format("2006-01-02 15:04:05")))
	}
	if len(event.RSVPs) > 0 {
		fmt.Println()
		fmt.Printf("Going (%d):\n", len(event.RSVPs))
		for _, id := range event.RSVPs {
			fmt.Printf("  %s\n", id)
		}
	}
}

func printEventListJSON(events []*model.Event) {
	data, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func printEventListTable(events []*model.Event) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tNAME\tLOCATION\tPINNED")
	for _, e := range events {
		name := e.Name
		if len(name) > 50 {
			name = name[:47] + "..."
		}
		pinned := ""
		if e.Pinned {
			pinned = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", e.ID, e.Date, name, e.Location, pinned)
	}
	w.Flush()
	fmt.Printf("\n%d events\n", len(events))
}

func printMembersJSON(members []*model.User) {
	data, err := json.MarshalIndent(members, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func printMembersTable(members []*model.User) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLES")
	for _, m := range members {
		roles := make([]string, len(m.Roles))
		for i, r := range m.Roles {
			roles[i] = string(r)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", m.ID, m.Name, m.Email, strings.Join(roles, ", "))
	}
	w.Flush()
	fmt.Printf("\n%d members\n", len(members))
}

// imageContentType guesses a content type from the file extension.
func imageContentType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
