package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/sobatoken/burn-backend/client"
)

const defaultTimeout = 15 * time.Second

func newClient(c *cli.Context) *client.Client {
	return client.NewClient(c.String("server-url"), &http.Client{Timeout: c.Duration("timeout")}, nil)
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func healthCommand() *cli.Command {
	return &cli.Command{
		Name:  "health",
		Usage: "Check server health",
		Action: func(c *cli.Context) error {
			status, err := newClient(c).Health(c.Context)
			if err != nil {
				return fmt.Errorf("health check failed: %w", err)
			}
			if c.Bool("json") {
				return printJSON(c.App.Writer, status)
			}
			fmt.Fprintf(c.App.Writer, "Server is %s\n", status.Status)
			fmt.Fprintf(c.App.Writer, "  RPC:   %s\n", status.Solana.RPC)
			fmt.Fprintf(c.App.Writer, "  Token: %s\n", status.Solana.TokenAddress)
			fmt.Fprintf(c.App.Writer, "  Time:  %s\n", status.Timestamp.Format(time.RFC3339))
			return nil
		},
	}
}

func tokenomicsCommand() *cli.Command {
	return &cli.Command{
		Name:  "tokenomics",
		Usage: "Show supply, burned amount and holders",
		Action: func(c *cli.Context) error {
			view, err := newClient(c).Tokenomics(c.Context)
			if err != nil {
				return err
			}
			if c.Bool("json") {
				return printJSON(c.App.Writer, view)
			}
			w := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Total supply\t%s\n", view.TotalSupply)
			fmt.Fprintf(w, "Circulating supply\t%s\n", view.CirculatingSupply)
			fmt.Fprintf(w, "Burned\t%s\n", view.BurnedTokens)
			fmt.Fprintf(w, "Holders\t%d\n", view.Holders)
			fmt.Fprintf(w, "Price\t%g\n", view.Price)
			fmt.Fprintf(w, "Market cap\t%g\n", view.MarketCap)
			return w.Flush()
		},
	}
}

func burnStatsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Show burned total and recent burn transactions",
		Action: func(c *cli.Context) error {
			stats, err := newClient(c).BurnStats(c.Context)
			if err != nil {
				return err
			}
			if c.Bool("json") {
				return printJSON(c.App.Writer, stats)
			}
			fmt.Fprintf(c.App.Writer, "Burned: %s\n\n", stats.BurnedTokens)
			w := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "SIGNATURE\tTIME\tAMOUNT")
			for _, h := range stats.History {
				fmt.Fprintf(w, "%s\t%s\t%d\n", h.Signature, h.Timestamp.Format(time.RFC3339), h.Amount)
			}
			return w.Flush()
		},
	}
}

func burnHistoryCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List recent burn wallet transactions",
		Action: func(c *cli.Context) error {
			history, err := newClient(c).BurnHistory(c.Context)
			if err != nil {
				return err
			}
			if c.Bool("json") {
				return printJSON(c.App.Writer, history)
			}
			w := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "SIGNATURE\tTIME\tAMOUNT")
			for _, h := range history {
				fmt.Fprintf(w, "%s\t%s\t%d\n", h.Signature, h.Timestamp.Format(time.RFC3339), h.Amount)
			}
			return w.Flush()
		},
	}
}

func burnWalletCommand() *cli.Command {
	return &cli.Command{
		Name:  "wallet",
		Usage: "List tokens held by the burn wallet",
		Action: func(c *cli.Context) error {
			tokens, err := newClient(c).BurnWalletTokens(c.Context)
			if err != nil {
				return err
			}
			if c.Bool("json") {
				return printJSON(c.App.Writer, tokens)
			}
			w := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TOKEN\tSYMBOL\tAMOUNT")
			for _, t := range tokens {
				fmt.Fprintf(w, "%s\t%s\t%g\n", t.TokenAddress, t.TokenSymbol, t.UIAmount)
			}
			return w.Flush()
		},
	}
}

func burnArchiveCommand() *cli.Command {
	return &cli.Command{
		Name:  "archive",
		Usage: "List archived burn transactions",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of burns",
				Value: 100,
			},
		},
		Action: func(c *cli.Context) error {
			burns, total, err := newClient(c).BurnArchive(c.Context, c.Int("limit"))
			if err != nil {
				return err
			}
			if c.Bool("json") {
				return printJSON(c.App.Writer, burns)
			}
			w := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TX\tTIME\tAMOUNT")
			for _, b := range burns {
				fmt.Fprintf(w, "%s\t%s\t%d\n", b.TxHash, b.Timestamp.Format(time.RFC3339), b.BurnAmount)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "showing %d of %d archived burns\n", len(burns), total)
			return nil
		},
	}
}

func roadmapCommand() *cli.Command {
	return &cli.Command{
		Name:  "roadmap",
		Usage: "Show roadmap progress",
		Action: func(c *cli.Context) error {
			progress, err := newClient(c).Roadmap(c.Context)
			if err != nil {
				return err
			}
			if c.Bool("json") {
				return printJSON(c.App.Writer, progress)
			}
			fmt.Fprintf(c.App.Writer, "Current phase: %d\n", progress.CurrentPhase)
			for _, p := range progress.Phases {
				fmt.Fprintf(c.App.Writer, "  [%s] %s: %s\n", p.Status, p.Title, p.Objective)
			}
			return nil
		},
	}
}
