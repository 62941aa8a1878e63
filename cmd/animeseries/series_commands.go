package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"animeseries/internal/store"
	"animeseries/internal/textutil"
)

func newSeriesCommand(ctx *commandContext) *cobra.Command {
	seriesCmd := &cobra.Command{
		Use:   "series",
		Short: "Browse consolidated series",
	}
	seriesCmd.AddCommand(newSeriesListCommand(ctx))
	seriesCmd.AddCommand(newSeriesShowCommand(ctx))
	seriesCmd.AddCommand(newSeriesSearchCommand(ctx))
	seriesCmd.AddCommand(newSeriesUnlinkedCommand(ctx))
	return seriesCmd
}

func newSeriesListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every series",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store) error {
				all, err := st.ListSeries(cmd.Context())
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, seriesViews(all))
				}
				stats, err := st.Stats(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(all) == 0 {
					fmt.Fprintln(out, "No series yet; run `animeseries consolidate` first.")
					return nil
				}
				fmt.Fprintln(out, renderSeriesTable(all, shouldColorize(out)))
				fmt.Fprintf(out, "%d series, %d anime (%d linked, %d unlinked)\n",
					stats.Series, stats.Anime, stats.LinkedAnime, stats.UnlinkedAnime)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newSeriesShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a series and its members",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(strings.TrimSpace(args[0]), 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid series id %q", args[0])
			}
			return ctx.withStore(func(st *store.Store) error {
				series, members, err := loadSeries(cmd.Context(), st, id)
				if err != nil {
					return err
				}
				if asJSON {
					view := newSeriesView(series)
					view.Members = memberViews(members)
					return writeJSON(cmd, view)
				}
				renderSeriesDetail(cmd, series, members)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newSeriesSearchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Find series whose title contains the query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.TrimSpace(strings.Join(args, " "))
			if query == "" {
				return errors.New("search query is required")
			}
			return ctx.withStore(func(st *store.Store) error {
				found, err := st.FindSeriesByTitleContains(cmd.Context(), query)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(found) == 0 {
					fmt.Fprintf(out, "No series match %q\n", query)
					return nil
				}
				fmt.Fprintln(out, renderSeriesTable(found, shouldColorize(out)))
				return nil
			})
		},
	}
}

func newSeriesUnlinkedCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "unlinked",
		Short: "List stored anime that belong to no series",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store) error {
				orphans, err := st.ListUnlinkedAnime(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(orphans) == 0 {
					fmt.Fprintln(out, "Every stored anime belongs to a series.")
					return nil
				}
				rows := make([][]string, 0, len(orphans))
				for _, a := range orphans {
					rows = append(rows, []string{
						strconv.FormatInt(a.ExternalID, 10),
						a.Title,
						a.CatalogType,
						textutil.Ternary(a.Year > 0, strconv.Itoa(a.Year), "-"),
					})
				}
				fmt.Fprintln(out, renderTable(tableSpec{
					Headers:  []string{"MAL ID", "Title", "Type", "Year"},
					Aligns:   []columnAlignment{alignRight, alignLeft, alignLeft, alignRight},
					Rows:     rows,
					Footer:   []string{"", fmt.Sprintf("%d unlinked", len(orphans)), "", ""},
					Colorize: shouldColorize(out),
				}))
				return nil
			})
		},
	}
}

func loadSeries(ctx context.Context, st *store.Store, id int64) (*store.Series, []*store.Anime, error) {
	series, err := st.FindSeriesByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if series == nil {
		return nil, nil, fmt.Errorf("series %d not found", id)
	}
	members, err := st.ListAnimeBySeries(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return series, members, nil
}

func renderSeriesTable(all []*store.Series, colorize bool) string {
	rows := make([][]string, 0, len(all))
	for _, s := range all {
		rows = append(rows, []string{
			strconv.FormatInt(s.ID, 10),
			s.Title,
			s.Status,
			yearRange(s.StartYear, s.EndYear),
			strconv.Itoa(s.TotalEpisodes),
			formatScore(s.AverageScore),
			textutil.Ternary(s.IsMainEntry, "yes", "no"),
		})
	}
	return renderTable(tableSpec{
		Headers:  []string{"ID", "Title", "Status", "Years", "Episodes", "Score", "Main"},
		Aligns:   []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
		Rows:     rows,
		Colorize: colorize,
	})
}

func renderSeriesDetail(cmd *cobra.Command, series *store.Series, members []*store.Anime) {
	out := cmd.OutOrStdout()
	rep := newReport(out)
	rep.section(series.Title)
	rep.note("Status", series.Status)
	rep.note("Years", yearRange(series.StartYear, series.EndYear))
	rep.note("Episodes", strconv.Itoa(series.TotalEpisodes))
	rep.note("Average score", formatScore(series.AverageScore))
	if series.TitleEnglish != "" && series.TitleEnglish != series.Title {
		rep.note("English title", series.TitleEnglish)
	}

	rows := make([][]string, 0, len(members))
	for _, m := range members {
		rows = append(rows, []string{
			strconv.Itoa(m.SeriesOrder),
			strconv.FormatInt(m.ExternalID, 10),
			m.Title,
			m.SeriesType,
			textutil.Ternary(m.Year > 0, strconv.Itoa(m.Year), "-"),
			strconv.Itoa(m.Episodes),
			formatScore(m.Score),
		})
	}
	fmt.Fprintln(out, renderTable(tableSpec{
		Title:    "Members",
		Headers:  []string{"#", "MAL ID", "Title", "Type", "Year", "Episodes", "Score"},
		Aligns:   []columnAlignment{alignRight, alignRight, alignLeft, alignLeft, alignRight, alignRight, alignRight},
		Rows:     rows,
		Footer:   []string{"", "", fmt.Sprintf("%d members", len(members)), "", "", strconv.Itoa(series.TotalEpisodes), ""},
		Colorize: rep.colorize,
	}))
}

func yearRange(start, end int) string {
	switch {
	case start == 0:
		return "-"
	case end == 0 || end == start:
		return strconv.Itoa(start)
	default:
		return fmt.Sprintf("%d-%d", start, end)
	}
}

func formatScore(score float64) string {
	return textutil.Ternary(score > 0, strconv.FormatFloat(score, 'f', 2, 64), "-")
}

type memberView struct {
	ExternalID  int64   `json:"external_id"`
	Title       string  `json:"title"`
	Type        string  `json:"series_type"`
	Order       int     `json:"series_order"`
	Year        int     `json:"year,omitempty"`
	Episodes    int     `json:"episodes,omitempty"`
	Score       float64 `json:"score,omitempty"`
	CatalogType string  `json:"catalog_type,omitempty"`
}

type seriesView struct {
	ID            int64        `json:"id"`
	Title         string       `json:"title"`
	TitleEnglish  string       `json:"title_english,omitempty"`
	TitleJapanese string       `json:"title_japanese,omitempty"`
	Status        string       `json:"status"`
	StartYear     int          `json:"start_year,omitempty"`
	EndYear       int          `json:"end_year,omitempty"`
	TotalEpisodes int          `json:"total_episodes"`
	AverageScore  float64      `json:"average_score,omitempty"`
	Popularity    float64      `json:"popularity,omitempty"`
	IsMainEntry   bool         `json:"is_main_entry"`
	Members       []memberView `json:"members,omitempty"`
}

func newSeriesView(s *store.Series) seriesView {
	return seriesView{
		ID:            s.ID,
		Title:         s.Title,
		TitleEnglish:  s.TitleEnglish,
		TitleJapanese: s.TitleJapanese,
		Status:        s.Status,
		StartYear:     s.StartYear,
		EndYear:       s.EndYear,
		TotalEpisodes: s.TotalEpisodes,
		AverageScore:  s.AverageScore,
		Popularity:    s.Popularity,
		IsMainEntry:   s.IsMainEntry,
	}
}

func seriesViews(all []*store.Series) []seriesView {
	views := make([]seriesView, 0, len(all))
	for _, s := range all {
		views = append(views, newSeriesView(s))
	}
	return views
}

func memberViews(members []*store.Anime) []memberView {
	views := make([]memberView, 0, len(members))
	for _, m := range members {
		views = append(views, memberView{
			ExternalID:  m.ExternalID,
			Title:       m.Title,
			Type:        m.SeriesType,
			Order:       m.SeriesOrder,
			Year:        m.Year,
			Episodes:    m.Episodes,
			Score:       m.Score,
			CatalogType: m.CatalogType,
		})
	}
	return views
}
