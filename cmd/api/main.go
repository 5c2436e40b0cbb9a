package main

// @title Storefront APIs
// @version 1.0
// @description Product catalog, cart, checkout and shopping assistant.

// @host localhost:9089
// @BasePath /
// @schemes http
import (
	"context"
	"fmt"
	"os"

	_ "github.com/arsmn/fiber-swagger/v2"
	"github.com/spf13/cobra"

	_ "storefront/docs"
	protocol "storefront/protocal"
)

func main() {
	var opts protocol.Options

	rootCmd := &cobra.Command{
		Use:   "storefront",
		Short: "Storefront API with cart, checkout and shopping assistant",
		RunE: func(cmd *cobra.Command, args []string) error {
			return protocol.ServeHTTP(opts)
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "./configs", "directory holding config.yaml")
	rootCmd.PersistentFlags().StringVar(&opts.Env, "env", "", "the environment to use")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return protocol.ServeHTTP(opts)
		},
	})
	rootCmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return protocol.Migrate(opts)
		},
	})
	rootCmd.AddCommand(&cobra.Command{
		Use:   "embed",
		Short: "Embed products that have no embedding yet",
		RunE: func(cmd *cobra.Command, args []string) error {
			return protocol.BackfillEmbeddings(context.Background(), opts)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
