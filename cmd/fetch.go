package cmd

import (
	"encoding/json"
	"fmt"

	"object-fetcher/core/config"
	"object-fetcher/core/logger"
	"object-fetcher/core/storage"
	"object-fetcher/feature/fetch"

	"github.com/spf13/cobra"
)

var csvBucket string
var csvKey string
var csvTable bool

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch and decode an object from storage",
}

// fetchJSONCmd represents the fetch json command
var fetchJSONCmd = &cobra.Command{
	Use:   "json <s3-path>",
	Short: "Read a JSON object and print the decoded mapping",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := bootstrapFetch()
		if err != nil {
			return err
		}

		payload, err := svc.ReadJSON(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		fmt.Println(string(out))
		return nil
	},
}

// fetchCSVCmd represents the fetch csv command
var fetchCSVCmd = &cobra.Command{
	Use:   "csv",
	Short: "Read a CSV object and print its records",
	Long:  `Reads a CSV object from the given bucket and key. Prints header-keyed records by default, or the parsed table with --table.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if csvKey == "" {
			return fmt.Errorf("--key is required")
		}

		cfg, svc, err := bootstrapFetchWithConfig()
		if err != nil {
			return err
		}

		bucket := csvBucket
		if bucket == "" {
			bucket = cfg.Storage.Bucket
		}

		if csvTable {
			df, err := svc.ReadCSVTable(cmd.Context(), bucket, csvKey)
			if err != nil {
				return err
			}
			fmt.Println(df)
			return nil
		}

		records, err := svc.ReadCSVRecords(cmd.Context(), bucket, csvKey)
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(fetchCmd)
	fetchCmd.AddCommand(fetchJSONCmd, fetchCSVCmd)

	fetchCSVCmd.Flags().StringVar(&csvBucket, "bucket", "", "Bucket name (defaults to the configured bucket)")
	fetchCSVCmd.Flags().StringVar(&csvKey, "key", "", "Object key")
	fetchCSVCmd.Flags().BoolVar(&csvTable, "table", false, "Parse into a table instead of records")
}

// bootstrapFetch loads config, logger and storage and builds the fetch service.
func bootstrapFetch() (*fetch.Service, error) {
	_, svc, err := bootstrapFetchWithConfig()
	return svc, err
}

func bootstrapFetchWithConfig() (*config.Config, *fetch.Service, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return cfg, fetch.NewService(client, cfg.Fetch, logg), nil
}
