package main

import (
	"os"

	"pdf2word/internal/http-server/handler/service"

	"github.com/spf13/cobra"
	"github.com/wb-go/wbf/zlog"
)

var rootCmd = &cobra.Command{
	Use:   "pdf2word",
	Short: "Convert PDF documents to Word",
	Long: `pdf2word converts uploaded PDF files into DOCX documents.

Without a subcommand it runs the HTTP service (same as "pdf2word serve").
Configuration is read from the environment, or from the YAML file named by
CONFIG_PATH.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of pdf2word",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("pdf2word %s\n", service.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func main() {
	zlog.Init()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
