package cli

import (
	"fmt"
	"strconv"

	"github.com/okian/roster/internal/client"
	"github.com/okian/roster/internal/domain/model"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List players one page at a time",
		RunE: func(cmd *cobra.Command, args []string) error {
			var params client.ListParams
			params.Search, _ = cmd.Flags().GetString("search")
			params.Column, _ = cmd.Flags().GetString("column")
			params.Operator, _ = cmd.Flags().GetString("operator")
			params.Value, _ = cmd.Flags().GetString("value")
			params.Page, _ = cmd.Flags().GetInt("page")
			params.PageSize, _ = cmd.Flags().GetInt("page-size")

			page, err := clientFromCmd(cmd).List(cmd.Context(), params)
			if err != nil {
				return err
			}
			p := printerFromCmd(cmd)
			if outputFormat(cmd) == "json" {
				return p.json(page)
			}
			rows := make([][]string, 0, len(page.Items))
			for _, v := range page.Items {
				rows = append(rows, playerRow(v))
			}
			p.table(playerHeader, rows)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\npage %d of %d (%d players)\n", page.Page, page.PageCount, page.Total)
			return nil
		},
	}
	cmd.Flags().String("search", "", "case-insensitive search over every field")
	cmd.Flags().String("column", "", "filter column: id, name, dateOfBirth, leagues, status, height, position")
	cmd.Flags().String("operator", "", "filter operator: contains, equals, startsWith")
	cmd.Flags().String("value", "", "filter value")
	cmd.Flags().Int("page", 0, "page number, starting at 1")
	cmd.Flags().Int("page-size", 0, "rows per page (server default when 0)")
	return cmd
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			v, err := clientFromCmd(cmd).Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			p := printerFromCmd(cmd)
			if outputFormat(cmd) == "json" {
				return p.json(v)
			}
			p.kv(playerPairs(v))
			return nil
		},
	}
}

func addFormFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "player name")
	cmd.Flags().String("dob", "", "date of birth, YYYY-MM-DD")
	cmd.Flags().StringSlice("league", nil, "league membership (repeatable)")
	cmd.Flags().String("status", "", "status: "+model.StatusList())
	cmd.Flags().String("height", "", "height in metres")
	cmd.Flags().String("position", "", "position: "+model.PositionList())
}

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a player",
		RunE: func(cmd *cobra.Command, args []string) error {
			var d model.Draft
			d.Name, _ = cmd.Flags().GetString("name")
			d.DateOfBirth, _ = cmd.Flags().GetString("dob")
			d.Leagues, _ = cmd.Flags().GetStringSlice("league")
			d.Status, _ = cmd.Flags().GetString("status")
			height, _ := cmd.Flags().GetString("height")
			d.Height = model.NumberText(height)
			d.Position, _ = cmd.Flags().GetString("position")
			if d.Leagues == nil {
				d.Leagues = []string{}
			}

			created, err := clientFromCmd(cmd).Create(cmd.Context(), d)
			if err != nil {
				return err
			}
			if outputFormat(cmd) == "json" {
				return printerFromCmd(cmd).json(created)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added player %q with id %d\n", created.Name, created.ID)
			return nil
		},
	}
	addFormFlags(cmd)
	return cmd
}

func newUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change the given fields of a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c := clientFromCmd(cmd)

			dp := patchFromFlags(cmd)
			if toggle, _ := cmd.Flags().GetStringSlice("toggle-league"); len(toggle) > 0 {
				var leagues []string
				if dp.Leagues != nil {
					leagues = *dp.Leagues
				} else {
					cur, err := c.Get(cmd.Context(), id)
					if err != nil {
						return err
					}
					leagues = cur.Leagues
				}
				for _, l := range toggle {
					leagues = model.ToggleLeague(leagues, l)
				}
				dp.Leagues = &leagues
			}

			updated, err := c.Patch(cmd.Context(), id, dp)
			if err != nil {
				return err
			}
			if outputFormat(cmd) == "json" {
				return printerFromCmd(cmd).json(updated)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated player %d\n", updated.ID)
			return nil
		},
	}
	addFormFlags(cmd)
	cmd.Flags().StringSlice("toggle-league", nil, "add the league if absent, remove it if present (repeatable)")
	return cmd
}

// patchFromFlags sets only the fields whose flags were given.
func patchFromFlags(cmd *cobra.Command) model.DraftPatch {
	var dp model.DraftPatch
	str := func(flag string) *string {
		if !cmd.Flags().Changed(flag) {
			return nil
		}
		v, _ := cmd.Flags().GetString(flag)
		return &v
	}
	dp.Name = str("name")
	dp.DateOfBirth = str("dob")
	dp.Status = str("status")
	dp.Position = str("position")
	if h := str("height"); h != nil {
		n := model.NumberText(*h)
		dp.Height = &n
	}
	if cmd.Flags().Changed("league") {
		leagues, _ := cmd.Flags().GetStringSlice("league")
		dp.Leagues = &leagues
	}
	return dp
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := clientFromCmd(cmd).Delete(cmd.Context(), id); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted player %d\n", id)
			return nil
		},
	}
}

func newLeaguesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leagues",
		Short: "List the league options",
		RunE: func(cmd *cobra.Command, args []string) error {
			leagues, err := clientFromCmd(cmd).Leagues(cmd.Context())
			if err != nil {
				return err
			}
			p := printerFromCmd(cmd)
			if outputFormat(cmd) == "json" {
				return p.json(leagues)
			}
			rows := make([][]string, 0, len(leagues))
			for _, l := range leagues {
				rows = append(rows, []string{l})
			}
			p.table([]string{"LEAGUE"}, rows)
			return nil
		},
	}
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid player id %q", s)
	}
	return id, nil
}
