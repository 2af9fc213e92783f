package main

import (
	"fmt"
	"os"

	"github.com/clubworks/clubd/internal/client"
	"github.com/clubworks/clubd/internal/lifecycle"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List events",
	GroupID: "events",
	RunE: func(cmd *cobra.Command, args []string) error {
		search, _ := cmd.Flags().GetString("search")
		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")

		req := &client.ListEventsRequest{Search: search, Limit: limit, Offset: offset}
		if cmd.Flags().Changed("pinned") {
			pinned, _ := cmd.Flags().GetBool("pinned")
			req.Pinned = &pinned
		}

		events, err := apiClient.ListEvents(cmd.Context(), req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printEventListJSON(events)
		} else {
			printEventListTable(events)
		}
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:     "show <id>",
	Short:   "Show details of an event",
	GroupID: "events",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		event, err := apiClient.GetEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("getting event %s: %w", id, err)
		}

		if jsonOutput {
			printEventJSON(event)
		} else {
			printEventTable(event)
		}
		return nil
	},
}

var createCmd = &cobra.Command{
	Use:     "create <name>",
	Short:   "Create an event",
	GroupID: "events",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		description, _ := cmd.Flags().GetString("description")
		location, _ := cmd.Flags().GetString("location")
		date, _ := cmd.Flags().GetString("date")
		perks, _ := cmd.Flags().GetStringSlice("perk")
		pinned, _ := cmd.Flags().GetBool("pinned")
		imagePath, _ := cmd.Flags().GetString("image")

		in := &lifecycle.EventInput{
			Name:        args[0],
			Description: description,
			Location:    location,
			Date:        date,
			Perks:       perks,
			Pinned:      pinned,
		}
		if imagePath != "" {
			data, err := os.ReadFile(imagePath)
			if err != nil {
				return fmt.Errorf("reading image: %w", err)
			}
			in.ImageData = data
			in.ImageType = imageContentType(imagePath)
		}

		event, err := apiClient.CreateEvent(cmd.Context(), in)
		if err != nil {
			return fmt.Errorf("creating event: %w", err)
		}

		if jsonOutput {
			printEventJSON(event)
		} else {
			fmt.Printf("Created %s\n", event.ID)
		}
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:     "delete <id>...",
	Short:   "Delete one or more events",
	GroupID: "events",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, id := range args {
			if err := apiClient.DeleteEvent(cmd.Context(), id); err != nil {
				return fmt.Errorf("deleting %s: %w", id, err)
			}
			fmt.Printf("Deleted %s\n", id)
		}
		return nil
	},
}

var rsvpCmd = &cobra.Command{
	Use:     "rsvp <id>",
	Short:   "RSVP to an event",
	GroupID: "events",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		event, err := apiClient.AddRSVP(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("adding rsvp: %w", err)
		}
		fmt.Printf("RSVP'd to %s (%d going)\n", event.Name, len(event.RSVPs))
		return nil
	},
}

var membersCmd = &cobra.Command{
	Use:     "members",
	Short:   "List club members",
	GroupID: "events",
	RunE: func(cmd *cobra.Command, args []string) error {
		members, err := apiClient.ListMembers(cmd.Context())
		if err != nil {
			return fmt.Errorf("listing members: %w", err)
		}

		if jsonOutput {
			printMembersJSON(members)
		} else {
			printMembersTable(members)
		}
		return nil
	},
}

var healthCmd = &cobra.Command{
	Use:     "health",
	Short:   "Check server health",
	GroupID: "system",
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := apiClient.Health(cmd.Context())
		if err != nil {
			return fmt.Errorf("checking health: %w", err)
		}
		fmt.Println(status)
		return nil
	},
}

func init() {
	listCmd.Flags().Bool("pinned", false, "only pinned events (or --pinned=false for unpinned)")
	listCmd.Flags().String("search", "", "substring match on name and description")
	listCmd.Flags().Int("limit", 20, "maximum number of events to return")
	listCmd.Flags().Int("offset", 0, "offset for pagination")

	createCmd.Flags().String("description", "", "event description")
	createCmd.Flags().String("location", "", "event location")
	createCmd.Flags().String("date", "", "event date")
	createCmd.Flags().StringSlice("perk", nil, "a perk of attending (repeatable)")
	createCmd.Flags().Bool("pinned", false, "pin the event")
	createCmd.Flags().String("image", "", "path to an image file to upload")
}
