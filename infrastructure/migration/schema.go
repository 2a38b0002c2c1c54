package migration

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/dsp-analytics-api/infrastructure/database"
	"github.com/vfg2006/dsp-analytics-api/internal/config"
)

type step struct {
	description string
	statement   string
}

// idColumn é substituído pelo tipo de chave auto-incremental de cada driver
const idColumn = "{{id}}"

var steps = []step{
	{
		description: "tabela artists",
		statement: `CREATE TABLE IF NOT EXISTS artists (
			id VARCHAR(21) PRIMARY KEY,
			name VARCHAR(200) NOT NULL UNIQUE,
			country VARCHAR(100),
			genre VARCHAR(100),
			biography TEXT,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	},
	{
		description: "tabela analytics",
		statement: `CREATE TABLE IF NOT EXISTS analytics (
			id ` + idColumn + `,
			artist_id VARCHAR(21) NOT NULL REFERENCES artists(id),
			dsp VARCHAR(100) NOT NULL,
			date DATE NOT NULL,
			streams BIGINT NOT NULL DEFAULT 0,
			revenue DOUBLE PRECISION NOT NULL DEFAULT 0,
			territory VARCHAR(50) NOT NULL DEFAULT 'Global',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	},
	{
		description: "chave natural (artist_id, dsp, date) em analytics",
		statement:   `CREATE UNIQUE INDEX IF NOT EXISTS analytics_artist_dsp_date_unique ON analytics (artist_id, dsp, date)`,
	},
	{
		description: "tabela csv_imports",
		statement: `CREATE TABLE IF NOT EXISTS csv_imports (
			id ` + idColumn + `,
			filename VARCHAR(255) NOT NULL,
			distributor VARCHAR(50),
			import_type VARCHAR(50),
			rows_processed INTEGER NOT NULL DEFAULT 0,
			rows_success INTEGER NOT NULL DEFAULT 0,
			rows_error INTEGER NOT NULL DEFAULT 0,
			status VARCHAR(20) NOT NULL,
			error_message TEXT,
			imported_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			finished_at TIMESTAMP,
			imported_by VARCHAR(100)
		)`,
	},
}

// Run cria as tabelas que ainda não existem. Pode ser executado a cada
// inicialização, todos os comandos são idempotentes.
func Run(ctx context.Context, conn *database.Connection) error {
	logrus.Info("Iniciando migração do banco de dados...")
	startTime := time.Now()

	idType := "BIGSERIAL PRIMARY KEY"
	if conn.Driver() == config.DriverSQLite {
		idType = "INTEGER PRIMARY KEY AUTOINCREMENT"
	}

	for i, s := range steps {
		statement := strings.ReplaceAll(s.statement, idColumn, idType)
		if _, err := conn.ExecContext(ctx, statement); err != nil {
			return fmt.Errorf("erro ao aplicar migração %d (%s): %w", i+1, s.description, err)
		}
		logrus.Debugf("Migração %d/%d aplicada: %s", i+1, len(steps), s.description)
	}

	logrus.Infof("Migração concluída em %v", time.Since(startTime))
	return nil
}
