package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vfg2006/dsp-analytics-api/infrastructure/database"
	"github.com/vfg2006/dsp-analytics-api/infrastructure/migration"
	"github.com/vfg2006/dsp-analytics-api/infrastructure/repository"
	"github.com/vfg2006/dsp-analytics-api/internal/config"
	"github.com/vfg2006/dsp-analytics-api/internal/usecases/importing"
	"github.com/vfg2006/dsp-analytics-api/internal/usecases/summarizing"
	"github.com/vfg2006/dsp-analytics-api/pkg/log"
	"github.com/vfg2006/dsp-analytics-api/pkg/utils"
)

var version = "dev"

var (
	verbose bool
	cfg     *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "analytics",
	Short:         "Importação e consulta de analytics por DSP",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}

		var err error
		cfg, err = config.NewConfig()
		if err != nil {
			return fmt.Errorf("erro ao carregar configuração: %w", err)
		}

		level := cfg.App.LogLevel
		if !verbose {
			level = logrus.WarnLevel.String()
		}
		log.Configure(level)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Exibe os logs no nível de LOG_LEVEL")

	importCmd.Flags().StringVarP(&importArtist, "artist", "a", "", "Artista dos registros (padrão: IMPORT_DEFAULT_ARTIST)")
	importCmd.Flags().IntVarP(&importYear, "year", "y", 0, "Ano aplicado às colunas de data (padrão: IMPORT_DEFAULT_YEAR)")
	cleanCmd.Flags().BoolVar(&cleanConfirmed, "yes", false, "Confirma a remoção de todos os dados")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(cleanCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Exibe a versão",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("analytics", version)
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Cria as tabelas e cadastra o artista padrão",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		conn, err := openDB(ctx)
		if err != nil {
			return err
		}
		defer conn.Close()

		artist, err := migration.Seed(ctx, repository.NewArtistRepository(conn))
		if err != nil {
			return err
		}

		fmt.Printf("Banco inicializado (%s). Artista padrão: %s\n", conn.Driver(), artist.Name)
		return nil
	},
}

// --- import command ---

var (
	importArtist string
	importYear   int
)

var importCmd = &cobra.Command{
	Use:   "import <arquivo>",
	Short: "Importa um arquivo CSV ou XLSX de streams por DSP",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		conn, err := openDB(ctx)
		if err != nil {
			return err
		}
		defer conn.Close()

		estimator, err := importing.EstimatorFromConfig(cfg.Import)
		if err != nil {
			return err
		}

		service := importing.NewService(
			importing.OptionsFromConfig(cfg.Import),
			conn,
			repository.NewArtistRepository(conn),
			repository.NewAnalyticsRepository(conn),
			repository.NewImportAuditRepository(conn),
			importing.DecoderFromConfig(cfg.Import),
			estimator,
		)

		result, err := service.Process(ctx, importing.Request{
			FilePath:   args[0],
			ArtistName: importArtist,
			Year:       importYear,
			ImportedBy: "cli",
		})
		fmt.Println(utils.PrettyJson(result))
		return err
	},
}

// --- summary command ---

var summaryCmd = &cobra.Command{
	Use:   "summary [artista]",
	Short: "Mostra os totais por DSP de um artista",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		conn, err := openDB(ctx)
		if err != nil {
			return err
		}
		defer conn.Close()

		artist := cfg.Import.DefaultArtist
		if len(args) == 1 {
			artist = args[0]
		}

		summary, err := newSummarizer(conn).Summarize(ctx, artist)
		if errors.Is(err, summarizing.ErrArtistNotFound) {
			return fmt.Errorf("artista %s não encontrado", artist)
		}
		if err != nil {
			return err
		}

		fmt.Println(utils.PrettyJson(summary))
		return nil
	},
}

// --- status command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Mostra artistas, registros por DSP e importações",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		conn, err := openDB(ctx)
		if err != nil {
			return err
		}
		defer conn.Close()

		overview, err := newSummarizer(conn).Overview(ctx, summarizing.DefaultImportsLimit)
		if err != nil {
			return err
		}

		fmt.Printf("Artistas (%d):\n", len(overview.Artists))
		for _, artist := range overview.Artists {
			fmt.Printf("  %s: %d registros de analytics\n", artist.Name, artist.RecordsCount)
		}

		fmt.Printf("\nAnalytics: %d registros\n", overview.TotalRecords)
		for _, dsp := range overview.DSPs {
			fmt.Printf("  %s: %d registros, %d streams\n", dsp.DSP, dsp.RecordsCount, dsp.TotalStreams)
		}

		fmt.Printf("\nÚltimas importações (%d):\n", len(overview.Imports))
		for _, imp := range overview.Imports {
			fmt.Printf("  %s (%s) - %d registros\n", imp.Filename, imp.Status, imp.RowsSuccess)
		}
		return nil
	},
}

// --- clean command ---

var cleanConfirmed bool

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove todos os analytics, importações e artistas",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cleanConfirmed {
			return errors.New("operação cancelada: use --yes para confirmar a remoção de todos os dados")
		}

		ctx := cmd.Context()

		conn, err := openDB(ctx)
		if err != nil {
			return err
		}
		defer conn.Close()

		deleted, err := clean(ctx, conn)
		if err != nil {
			return err
		}

		fmt.Println("Banco limpo com sucesso:")
		fmt.Printf("  %d registros de analytics\n", deleted["analytics"])
		fmt.Printf("  %d importações\n", deleted["imports"])
		fmt.Printf("  %d artistas\n", deleted["artists"])
		return nil
	},
}

// clean remove os dados respeitando as chaves estrangeiras
func clean(ctx context.Context, conn *database.Connection) (map[string]int64, error) {
	steps := []struct {
		name   string
		delete func(context.Context) (int64, error)
	}{
		{"analytics", repository.NewAnalyticsRepository(conn).DeleteAll},
		{"imports", repository.NewImportAuditRepository(conn).DeleteAll},
		{"artists", repository.NewArtistRepository(conn).DeleteAll},
	}

	deleted := make(map[string]int64, len(steps))
	for _, step := range steps {
		count, err := step.delete(ctx)
		if err != nil {
			return deleted, fmt.Errorf("erro ao limpar %s: %w", step.name, err)
		}
		deleted[step.name] = count
	}

	return deleted, nil
}

func newSummarizer(conn *database.Connection) summarizing.Summarizer {
	return summarizing.NewService(
		repository.NewArtistRepository(conn),
		repository.NewAnalyticsRepository(conn),
		repository.NewImportAuditRepository(conn),
	)
}

// openDB abre a conexão e garante que o schema existe
func openDB(ctx context.Context) (*database.Connection, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	conn, err := database.NewConnection(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("erro ao conectar ao banco (%s): %w", strings.ToLower(cfg.Database.Driver), err)
	}

	if err := migration.Run(ctx, conn); err != nil {
		conn.Close()
		return nil, err
	}

	return conn, nil
}
