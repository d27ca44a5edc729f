package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/graph-gophers/graphql-go"
	"github.com/spf13/cobra"

	"github.com/rhanlin/graphql-demo/internal/server"
	"github.com/rhanlin/graphql-demo/internal/ui"
)

var (
	servePort         int
	serveNoPlayground bool
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"s"},
	Short:   "Start the GraphQL server",
	Long: `Start an HTTP server that serves the GraphQL API.

The server exposes:
  - GraphQL endpoint at /graphql (POST)
  - GraphQL Playground at /graphql (GET) for interactive queries
  - Health check at /healthz

Examples:
  # Start server on the configured port (default 4000)
  graphql-demo serve

  # Start server on a custom port without the playground
  graphql-demo serve --port 3000 --no-playground

  # Serve a different dataset
  graphql-demo serve --seed testdata/seed.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = servePort
		}
		if serveNoPlayground {
			cfg.Server.Playground = false
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		return runServer()
	},
}

func runServer() error {
	log, err := server.NewLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer log.Sync()

	schema, closeIndex, err := newExecutableSchema(graphql.Logger(&server.PanicLogger{Log: log}))
	if err != nil {
		return err
	}
	defer closeIndex()

	gin.SetMode(gin.ReleaseMode)
	srv := server.New(schema, cfg.Server, log)

	// Set up signal handling with context
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	base := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)
	fmt.Println(ui.Header.Render("graphql-demo"))
	fmt.Println(ui.RenderEndpoint("GraphQL", base+server.GraphQLPath))
	if cfg.Server.Playground {
		fmt.Println(ui.RenderEndpoint("Playground", base+server.GraphQLPath))
	}
	fmt.Println(ui.RenderEndpoint("Health", base+server.HealthPath))

	return srv.Run(ctx)
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (overrides server.port)")
	serveCmd.Flags().BoolVar(&serveNoPlayground, "no-playground", false, "Disable the GraphQL Playground")
	rootCmd.AddCommand(serveCmd)
}
