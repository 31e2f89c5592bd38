package cli

import (
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Werneck0live/painel-contabil/internal/client"
)

const defaultServer = "http://localhost:8080"

type options struct {
	server  string
	timeout time.Duration
}

func (o *options) client() *client.Client {
	return client.New(o.server)
}

// NewRootCmd monta o painelctl. out recebe a saída dos comandos.
func NewRootCmd(out io.Writer) *cobra.Command {
	opts := &options{}

	server := os.Getenv("PAINEL_SERVER")
	if server == "" {
		server = defaultServer
	}

	root := &cobra.Command{
		Use:           "painelctl",
		Short:         "Operações do painel contábil pela linha de comando",
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&opts.server, "server", server, "URL da API (ou PAINEL_SERVER)")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 5*time.Minute, "tempo máximo de cada operação")

	root.AddCommand(
		newPingCmd(opts),
		newImportCmd(opts),
		newExportCmd(opts),
		newDashboardCmd(opts),
	)
	return root
}
