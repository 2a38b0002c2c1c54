package scheduler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/dsp-analytics-api/internal/config"
	"github.com/vfg2006/dsp-analytics-api/internal/usecases/importing"
)

const (
	processedDir = "processed"
	failedDir    = "failed"
)

var supportedExtensions = map[string]bool{
	".csv":  true,
	".xlsx": true,
}

// FolderImportSyncConfig representa a configuração do agendador de importação por pasta
type FolderImportSyncConfig struct {
	CronSchedule string
	UploadDir    string
	Artist       string
	Year         int
	SyncEnabled  bool
}

// FolderImportSummary resume uma varredura da pasta de uploads
type FolderImportSummary struct {
	Files     int `json:"files"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// FolderImportSyncService importa periodicamente os arquivos deixados na pasta de uploads
type FolderImportSyncService struct {
	scheduler           *gocron.Scheduler
	config              FolderImportSyncConfig
	importer            importing.Importer
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSummary         FolderImportSummary
}

// NewFolderImportSyncService cria uma nova instância do serviço de importação por pasta
func NewFolderImportSyncService(importer importing.Importer, appConfig *config.Config) *FolderImportSyncService {
	syncConfig := FolderImportSyncConfig{
		CronSchedule: appConfig.FolderImport.CronSchedule,
		UploadDir:    appConfig.Import.UploadDir,
		Artist:       appConfig.Import.DefaultArtist,
		Year:         appConfig.Import.DefaultYear,
		SyncEnabled:  appConfig.FolderImport.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"upload_dir":    syncConfig.UploadDir,
		"artist":        syncConfig.Artist,
		"year":          syncConfig.Year,
		"sync_enabled":  syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de importação por pasta carregada")

	return &FolderImportSyncService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    syncConfig,
		importer:  importer,
	}
}

// Start inicia o agendador
func (s *FolderImportSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Importação por pasta desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de importação por pasta")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncFolder(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar importação por pasta: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de importação por pasta")
		s.scheduler.Stop()
	}()

	return nil
}

// syncFolder executa uma varredura, ignorando a chamada se outra estiver em andamento
func (s *FolderImportSyncService) syncFolder(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Importação por pasta já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	summary, err := s.SyncOnce(ctx)
	if err != nil {
		logrus.WithError(err).Error("Erro na importação por pasta")
		return
	}

	s.syncMutex.Lock()
	s.lastSummary = summary
	s.lastSyncCompletedAt = time.Now()
	s.syncMutex.Unlock()
}

// SyncOnce importa todos os arquivos suportados da pasta de uploads e os move
// para processed/ ou failed/ conforme o resultado
func (s *FolderImportSyncService) SyncOnce(ctx context.Context) (FolderImportSummary, error) {
	var summary FolderImportSummary

	files, err := s.pendingFiles()
	if err != nil {
		return summary, err
	}

	if len(files) == 0 {
		logrus.Debug("Nenhum arquivo pendente na pasta de uploads")
		return summary, nil
	}

	startTime := time.Now()
	logrus.WithField("files", len(files)).Info("Iniciando importação dos arquivos da pasta de uploads")

	for _, path := range files {
		summary.Files++

		result, err := s.importer.Process(ctx, importing.Request{
			FilePath:   path,
			ArtistName: s.config.Artist,
			Year:       s.config.Year,
			ImportedBy: "scheduler",
		})

		target := processedDir
		if err != nil {
			summary.Failed++
			target = failedDir
			entry := logrus.WithError(err).WithField("file", filepath.Base(path))
			if importing.IsMalformed(err) {
				entry.Warn("Arquivo da pasta de uploads com formato inválido")
			} else {
				entry.Error("Erro ao importar arquivo da pasta de uploads")
			}
		} else {
			summary.Succeeded++
			logrus.WithFields(logrus.Fields{
				"file":         result.File,
				"rows_success": result.RowsSuccess,
				"rows_error":   result.RowsError,
			}).Info("Arquivo da pasta de uploads importado")
		}

		if err := s.moveFile(path, target); err != nil {
			logrus.WithError(err).WithField("file", filepath.Base(path)).Error("Erro ao mover arquivo importado")
		}
	}

	logrus.WithFields(logrus.Fields{
		"duration":  time.Since(startTime).String(),
		"files":     summary.Files,
		"succeeded": summary.Succeeded,
		"failed":    summary.Failed,
	}).Info("Importação por pasta concluída")

	return summary, nil
}

// pendingFiles lista os arquivos suportados do primeiro nível da pasta, em ordem alfabética
func (s *FolderImportSyncService) pendingFiles() ([]string, error) {
	entries, err := os.ReadDir(s.config.UploadDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao listar pasta de uploads: %w", err)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if !supportedExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		files = append(files, filepath.Join(s.config.UploadDir, entry.Name()))
	}

	sort.Strings(files)
	return files, nil
}

func (s *FolderImportSyncService) moveFile(path, target string) error {
	dir := filepath.Join(s.config.UploadDir, target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	name := fmt.Sprintf("%s_%s", time.Now().Format("20060102150405"), filepath.Base(path))
	return os.Rename(path, filepath.Join(dir, name))
}

// TriggerManualSync inicia manualmente uma importação por pasta
func (s *FolderImportSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Importação por pasta já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando importação manual da pasta de uploads")
	go s.syncFolder(context.Background())
}

// IsRunning indica se há uma varredura em andamento
func (s *FolderImportSyncService) IsRunning() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()
	return s.syncRunning
}

// GetStatus retorna o status atual do agendador
func (s *FolderImportSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"upload_dir":             s.config.UploadDir,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_sync_summary":      s.lastSummary,
	}
}
