package cli

import (
	"fmt"
	"net"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/juris/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Model Context Protocol integration",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Expose the corpus to MCP clients",
	Long: `Serve the legal corpus over the Model Context Protocol.

Clients get three tools (search_documents, similar_documents,
process_documents) and the resources juris://documents, juris://stats and
juris://documents/{documentId}.

Without --port the server speaks JSON-RPC on stdin/stdout, which is what
desktop assistants launch. With --port it serves streamable HTTP instead.

  juris mcp serve
  juris mcp serve --port 8090`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "serve HTTP on this port instead of stdio")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return err
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Search:    searchService,
		Documents: documentService,
		Scheduler: schedulerService,
	}, version)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	if port <= 0 {
		return server.Run(ctx)
	}
	addr := net.JoinHostPort("", strconv.Itoa(port))
	fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
	return server.RunHTTP(ctx, addr)
}
