package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/dsp-analytics-api/internal/scheduler"
	"github.com/vfg2006/dsp-analytics-api/pkg/apiErrors"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeFolderImport = "folder-import"
	CronJobTypeAll          = "all"
)

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	FolderImportSyncService *scheduler.FolderImportSyncService
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		switch cronType {
		case CronJobTypeFolderImport, CronJobTypeAll:
			if services.FolderImportSyncService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de importação por pasta não disponível", nil)
				return
			}
			if services.FolderImportSyncService.IsRunning() {
				apiErrors.WriteError(w, apiErrors.ErrImportRunning, "Importação por pasta já em andamento", nil)
				return
			}
			services.FolderImportSyncService.TriggerManualSync()
		default:
			apiErrors.WriteError(w, apiErrors.ErrUnknownCronType, "Tipo de cron job inválido. Valores aceitos: folder-import, all", nil)
			return
		}

		writeJSON(w, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	})
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCronStatus")

		status := map[string]any{}
		if services.FolderImportSyncService != nil {
			status[CronJobTypeFolderImport] = services.FolderImportSyncService.GetStatus()
		}

		writeJSON(w, http.StatusOK, status)
	})
}
