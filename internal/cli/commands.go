package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/Werneck0live/painel-contabil/internal/dashboard"
	"github.com/Werneck0live/painel-contabil/internal/importer"
)

const pingTimeout = 5 * time.Second

func newPingCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Verifica se a API está no ar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), pingTimeout)
			defer cancel()
			d, err := opts.client().Ping(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok %s (%dms)\n", opts.server, d.Milliseconds())
			return nil
		},
	}
}

func newImportCmd(opts *options) *cobra.Command {
	var updateExisting, preview bool

	cmd := &cobra.Command{
		Use:   "import <arquivo.csv>",
		Short: "Importa empresas de um CSV separado por ';'",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			out := cmd.OutOrStdout()
			name := filepath.Base(args[0])
			if preview {
				p, err := opts.client().Preview(ctx, name, f)
				if err != nil {
					return err
				}
				printPreview(cmd, p)
				return nil
			}

			res, err := opts.client().Import(ctx, name, f, updateExisting)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "encoding: %s\n", res.Encoding)
			fmt.Fprintf(out, "importadas: %d  atualizadas: %d  ignoradas: %d  erros: %d\n",
				res.ImportedCount, res.UpdatedCount, res.SkippedCount, len(res.Errors))
			for _, e := range res.Errors {
				fmt.Fprintf(out, "  - %s\n", e)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&updateExisting, "update-existing", false, "atualiza empresas que já existem")
	cmd.Flags().BoolVar(&preview, "preview", false, "só mostra como o arquivo seria lido")
	return cmd
}

func printPreview(cmd *cobra.Command, p *importer.Preview) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "encoding: %s\n", p.Encoding)
	fmt.Fprintf(out, "linhas: %d (válidas: %d)\n", p.TotalRows, p.ValidRows)
	for _, h := range p.Headers {
		switch {
		case h.Field != "":
			fmt.Fprintf(out, "  %-30s -> %s\n", h.Header, h.Field)
		case h.Suggestion != "":
			fmt.Fprintf(out, "  %-30s ?? parecido com %s\n", h.Header, h.Suggestion)
		default:
			fmt.Fprintf(out, "  %-30s (ignorada)\n", h.Header)
		}
	}
}

func newExportCmd(opts *options) *cobra.Command {
	var output, encoding string

	cmd := &cobra.Command{
		Use:       "export csv|xlsx",
		Short:     "Baixa a tabela (csv) ou o relatório financeiro (xlsx)",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"csv", "xlsx"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				return errors.New("-o/--output is required")
			}
			f, err := os.Create(output)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			var n int64
			if args[0] == "csv" {
				n, err = opts.client().ExportCSV(ctx, f, encoding)
			} else {
				n, err = opts.client().ExportXLSX(ctx, f)
			}
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				_ = os.Remove(output)
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d bytes\n", output, n)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "arquivo de saída")
	cmd.Flags().StringVar(&encoding, "encoding", "", "utf-8 (padrão) ou windows-1252, só para csv")
	return cmd
}

func newDashboardCmd(opts *options) *cobra.Command {
	var viewer dashboard.Viewer
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Mostra o resumo do dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()
			ch, err := opts.client().Dashboard(ctx, viewer)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "empresas:           %d\n", ch.TotalCompanies)
			fmt.Fprintf(out, "alta complexidade:  %d\n", ch.HighComplexityCompanies)
			fmt.Fprintf(out, "simples nacional:   %d\n", ch.SimplesNacionalCompanies)
			fmt.Fprintf(out, "lucro presumido:    %d\n", ch.LucroPresumidoCompanies)
			fmt.Fprintf(out, "lucro real:         %d\n", ch.LucroRealCompanies)
			for _, b := range ch.ClientClass {
				fmt.Fprintf(out, "classe %-12s %d\n", b.Name+":", b.Count)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&viewer.Role, "role", dashboard.RoleManager, "papel enviado em X-User-Role (root, manager, collaborator)")
	cmd.Flags().StringVar(&viewer.ID, "user-id", "", "id enviado em X-User-Id")
	return cmd
}
