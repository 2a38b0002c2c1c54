package handler

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/dsp-analytics-api/internal/usecases/summarizing"
	"github.com/vfg2006/dsp-analytics-api/pkg/apiErrors"
	"github.com/vfg2006/dsp-analytics-api/pkg/log"
)

// GetAnalyticsSummary retorna os totais por DSP de um artista
func GetAnalyticsSummary(service summarizing.Summarizer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		name := httprouter.ParamsFromContext(r.Context()).ByName("name")

		summary, err := service.Summarize(r.Context(), name)
		if err != nil {
			switch {
			case errors.Is(err, summarizing.ErrArtistNameRequired):
				apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Nome do artista não informado", nil)
			case errors.Is(err, summarizing.ErrArtistNotFound):
				apiErrors.WriteError(w, apiErrors.ErrArtistNotFound, "Artista "+name+" não encontrado", nil)
			default:
				logger.WithError(err).WithField("artist", name).Error("analytics: erro ao calcular resumo")
				apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar analytics no banco de dados", nil)
			}
			return
		}

		writeJSON(w, http.StatusOK, summary)
	})
}

// GetAnalyticsOverview retorna artistas, estatísticas por DSP e últimas importações
func GetAnalyticsOverview(service summarizing.Summarizer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit, err := parseLimit(r.URL.Query().Get("imports"), summarizing.DefaultImportsLimit)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro imports inválido", nil)
			return
		}

		overview, err := service.Overview(r.Context(), limit)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("analytics: erro ao montar visão geral")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar analytics no banco de dados", nil)
			return
		}

		writeJSON(w, http.StatusOK, overview)
	})
}
