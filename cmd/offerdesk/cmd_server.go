package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/offerdesk/config"
	"github.com/shashiranjanraj/offerdesk/pkg/app"
	"github.com/shashiranjanraj/offerdesk/pkg/cache"
)

var (
	hostFlag string
	portFlag string
)

// offerdesk serve
var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"run", "start"},
	Short:   "Migrate, seed and start the HTTP server",
	RunE:    runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	if hostFlag != "" {
		config.Set("APP_HOST", hostFlag)
	}
	if portFlag != "" {
		config.Set("APP_PORT", portFlag)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.Boot(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	return a.Serve(ctx, cmd.OutOrStdout())
}

// offerdesk route:list
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered named routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return listRoutes(cmd.OutOrStdout())
	},
}

// listRoutes prints the route table of a fully wired kernel. Handlers are
// never invoked, so no database is opened.
func listRoutes(out io.Writer) error {
	a := &app.Application{}
	a.Wire(cache.Nop{})

	k, err := a.Kernel()
	if err != nil {
		return err
	}

	infos := k.Router().Routes()
	if len(infos) == 0 {
		fmt.Fprintln(out, "No named routes registered.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "METHOD\tPATH\tNAME")
	fmt.Fprintln(w, "------\t----\t----")
	for _, ri := range infos {
		fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
	}
	return w.Flush()
}
