package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/vfg2006/dsp-analytics-api/infrastructure/repository"
	"github.com/vfg2006/dsp-analytics-api/internal/domain"
	"github.com/vfg2006/dsp-analytics-api/internal/usecases/importing"
	"github.com/vfg2006/dsp-analytics-api/pkg/apiErrors"
	"github.com/vfg2006/dsp-analytics-api/pkg/log"
)

const (
	maxUploadSize = 32 << 20
	// uploads da API ficam fora do primeiro nível da pasta monitorada pelo agendador
	apiUploadSubdir = "api"
)

type uploadForm struct {
	Artist string `validate:"omitempty,max=200"`
	Year   int    `validate:"omitempty,gte=1900,lte=9999"`
}

var validate = validator.New()

// UploadAnalytics recebe um arquivo multipart (campo "file") e executa a importação
func UploadAnalytics(importer importing.Importer, uploadDir string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formulário multipart inválido", err.Error())
			return
		}

		form := uploadForm{Artist: strings.TrimSpace(r.FormValue("artist"))}
		if year := strings.TrimSpace(r.FormValue("year")); year != "" {
			parsed, err := strconv.Atoi(year)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Ano inválido. Use formato de quatro dígitos (ex: 2025)", nil)
				return
			}
			form.Year = parsed
		}

		if err := validate.Struct(form); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Parâmetros de importação inválidos", err.Error())
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Arquivo não informado no campo file", nil)
			return
		}
		defer file.Close()

		path, err := saveUpload(file, filepath.Join(uploadDir, apiUploadSubdir), header.Filename)
		if err != nil {
			logger.WithError(err).Error("imports: erro ao salvar arquivo enviado")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao salvar arquivo enviado", nil)
			return
		}
		defer os.Remove(path)

		logger.WithFields(log.Fields{
			"file":   header.Filename,
			"size":   header.Size,
			"artist": form.Artist,
			"year":   form.Year,
		}).Info("imports: arquivo recebido")

		result, err := importer.Process(r.Context(), importing.Request{
			FilePath:   path,
			SourceName: filepath.Base(header.Filename),
			ArtistName: form.Artist,
			Year:       form.Year,
			ImportedBy: "api",
		})
		if err != nil {
			logger.WithError(err).Error("imports: erro ao importar arquivo")

			var importErr *importing.ImportError
			if errors.As(err, &importErr) {
				apiErrors.WriteError(w, importErr.Code, importErr.Error(), result)
				return
			}
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao importar arquivo", result)
			return
		}

		writeJSON(w, http.StatusOK, result)
	})
}

// ListImports devolve o histórico de importações, mais recentes primeiro
func ListImports(audits repository.ImportAuditRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit, err := parseLimit(r.URL.Query().Get("limit"), 50)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro limit inválido", nil)
			return
		}

		imports, err := audits.List(r.Context(), limit)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("imports: erro ao listar importações")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar importações no banco de dados", nil)
			return
		}

		if imports == nil {
			imports = []*domain.ImportAudit{}
		}
		writeJSON(w, http.StatusOK, imports)
	})
}

func parseLimit(raw string, fallback uint64) (uint64, error) {
	if raw == "" {
		return fallback, nil
	}
	limit, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || limit == 0 {
		return 0, fmt.Errorf("limit inválido: %s", raw)
	}
	return limit, nil
}

func saveUpload(src io.Reader, dir, filename string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s_%s", time.Now().Format("20060102150405"), filepath.Base(filename))
	path := filepath.Join(dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", err
	}

	return path, nil
}
