package export

import (
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dodd623/lucidscript/errors"
	"github.com/dodd623/lucidscript/logger"
	"github.com/dodd623/lucidscript/server"
	"github.com/dodd623/lucidscript/storage"
)

// Handler exposes the export pipeline over HTTP.
type Handler struct {
	svc       *Service
	uploadDir string
	log       *logger.Logger
}

// NewHandler creates the HTTP handler. Uploaded files are spooled to
// uploadDir (os.TempDir when empty) for the duration of the export. A nil
// log falls back to the global logger.
func NewHandler(svc *Service, uploadDir string, log *logger.Logger) *Handler {
	if uploadDir == "" {
		uploadDir = os.TempDir()
	}
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Handler{
		svc:       svc,
		uploadDir: uploadDir,
		log:       log.WithComponent("export-api"),
	}
}

// Register mounts the export routes on the router.
func (h *Handler) Register(r gin.IRouter) {
	v1 := r.Group("/v1")
	v1.POST("/exports", h.create)
	v1.GET("/exports", h.list)
	v1.GET("/exports/:name", h.download)
}

// create handles POST /v1/exports. The request is multipart form data with
// either a "file" part or a "source_url" field, plus the export options.
func (h *Handler) create(c *gin.Context) {
	opts := Options{
		SourceURL:   strings.TrimSpace(c.PostForm("source_url")),
		Language:    strings.TrimSpace(c.PostForm("language")),
		Translate:   formBool(c, "translate"),
		Diarize:     formBool(c, "diarize"),
		Style:       strings.TrimSpace(c.PostForm("style")),
		Format:      strings.TrimSpace(c.PostForm("format")),
		NumSpeakers: formInt(c, "num_speakers"),
	}

	file, err := c.FormFile("file")
	if err == nil && file != nil {
		path, saveErr := h.saveUpload(c, file)
		if saveErr != nil {
			server.RespondWithError(c, errors.Internal(saveErr))
			return
		}
		defer os.Remove(path)
		opts.AudioPath = path
	}

	result, err := h.svc.Export(c.Request.Context(), opts)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondCreated(c, result)
}

// list handles GET /v1/exports and returns stored artifact metadata.
func (h *Handler) list(c *gin.Context) {
	files, err := h.svc.ListArtifacts(c.Request.Context())
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	if files == nil {
		files = []storage.FileInfo{}
	}
	server.RespondOK(c, files)
}

// download handles GET /v1/exports/:name and streams the artifact.
func (h *Handler) download(c *gin.Context) {
	name := c.Param("name")

	rc, contentType, err := h.svc.Artifact(c.Request.Context(), name)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	defer rc.Close()

	c.DataFromReader(200, -1, contentType, rc, map[string]string{
		"Content-Disposition": `attachment; filename="` + name + `"`,
	})
}

// saveUpload spools the multipart file to the upload directory, keeping the
// original extension so the media tools can sniff the container format.
func (h *Handler) saveUpload(c *gin.Context, file *multipart.FileHeader) (string, error) {
	ext := filepath.Ext(file.Filename)
	name := "upload_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:8] + ext
	path := filepath.Join(h.uploadDir, name)
	if err := c.SaveUploadedFile(file, path); err != nil {
		return "", err
	}
	return path, nil
}

func formBool(c *gin.Context, key string) bool {
	return strings.EqualFold(strings.TrimSpace(c.PostForm(key)), "true")
}

func formInt(c *gin.Context, key string) int {
	v, err := strconv.Atoi(strings.TrimSpace(c.PostForm(key)))
	if err != nil {
		return 0
	}
	return v
}
