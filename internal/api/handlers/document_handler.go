package handlers

import (
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"mudarris/internal/config"
	db "mudarris/internal/core/database"
	"mudarris/internal/core/extractor"
	"mudarris/internal/core/storage"
	"mudarris/internal/models"
)

// uploadWorkers bounds how many files of one request are extracted at once.
const uploadWorkers = 4

type DocumentHandler struct {
	dbclient  db.DbClient
	files     storage.FileStore
	extractor *extractor.Extractor
	cfg       *config.Config
}

func NewDocumentHandler(dbclient db.DbClient, files storage.FileStore, ex *extractor.Extractor, cfg *config.Config) *DocumentHandler {
	return &DocumentHandler{dbclient: dbclient, files: files, extractor: ex, cfg: cfg}
}

type uploadedFile struct {
	ID               string `json:"id"`
	Filename         string `json:"filename"`
	OriginalFilename string `json:"original_filename"`
	Size             int64  `json:"size"`
	WordCount        int    `json:"word_count"`
}

// Upload accepts one or more files under the "files" multipart field,
// extracts their text synchronously and stores document rows. Per-file
// failures land in the errors list; only an empty request fails outright.
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadSize)
	if err := r.ParseMultipartForm(h.cfg.MaxUploadSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "الملف كبير جداً. الحد الأقصى 16 ميجابايت")
			return
		}
		writeError(w, http.StatusBadRequest, "لا توجد ملفات للرفع")
		return
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		writeError(w, http.StatusBadRequest, "لم يتم اختيار أي ملفات")
		return
	}

	var (
		mu       sync.Mutex
		uploaded = make([]*uploadedFile, len(headers))
		errs     []string
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.SetLimit(uploadWorkers)

	for i, header := range headers {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			item, err := h.processUpload(r, header)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err.Error())
				return nil
			}
			uploaded[i] = item
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		writeError(w, http.StatusInternalServerError, "خطأ في رفع الملفات")
		return
	}

	// compact while preserving request order
	files := make([]*uploadedFile, 0, len(uploaded))
	for _, f := range uploaded {
		if f != nil {
			files = append(files, f)
		}
	}

	status := "success"
	if len(files) == 0 {
		status = "error"
	}
	message := fmt.Sprintf("تم رفع %d ملف بنجاح", len(files))
	if len(errs) > 0 {
		message += fmt.Sprintf(" مع %d خطأ", len(errs))
	}

	resp := map[string]any{
		"status":         status,
		"uploaded_files": files,
		"message":        message,
	}
	if len(errs) > 0 {
		resp["errors"] = errs
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *DocumentHandler) processUpload(r *http.Request, header *multipart.FileHeader) (*uploadedFile, error) {
	if header.Filename == "" {
		return nil, errors.New("ملف بدون اسم")
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(header.Filename)), ".")
	if !config.AllowedExtensions[ext] {
		return nil, fmt.Errorf("نوع الملف غير مدعوم: %s", header.Filename)
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("خطأ في رفع الملف %s: %v", header.Filename, err)
	}
	defer src.Close()

	storedName, path, size, err := h.files.Save(header.Filename, src)
	if err != nil {
		return nil, fmt.Errorf("خطأ في رفع الملف %s: %v", header.Filename, err)
	}

	declaredMime := header.Header.Get("Content-Type")
	now := time.Now().UTC()
	doc := &models.Document{
		ID:               uuid.NewString(),
		Filename:         storedName,
		OriginalFilename: header.Filename,
		FilePath:         path,
		FileSize:         size,
		Language:         "ar",
		UploadDate:       now,
		LastAccessed:     now,
		ProcessingStatus: "processing",
	}

	if info, err := extractor.Inspect(path, declaredMime); err == nil {
		doc.MimeType = info.MimeType
		doc.ContentHash = info.MD5
	}

	content, err := h.extractor.Extract(path, declaredMime)
	if err != nil {
		log.Printf("upload: extraction failed for %s: %v", storedName, err)
		doc.ProcessingStatus = "failed"
		doc.ProcessingError = err.Error()
		doc.SetContent(fmt.Sprintf("تم رفع الملف %s ولكن فشل في معالجته", storedName))
	} else {
		doc.ProcessingStatus = "completed"
		doc.SetContent(content)
		doc.Language = extractor.DetectLanguage(content)
	}

	if err := h.dbclient.CreateDocument(r.Context(), doc); err != nil {
		log.Printf("upload: db insert failed for %s: %v", storedName, err)
		_ = h.files.Delete(path)
		return nil, fmt.Errorf("خطأ في رفع الملف %s", header.Filename)
	}

	log.Printf("upload: stored %s (%d words)", storedName, doc.WordCount)
	return &uploadedFile{
		ID:               doc.ID,
		Filename:         doc.Filename,
		OriginalFilename: doc.OriginalFilename,
		Size:             doc.FileSize,
		WordCount:        doc.WordCount,
	}, nil
}

// List returns every document, newest first.
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	docs, err := h.dbclient.ListDocuments(r.Context())
	if err != nil {
		log.Printf("documents: list failed: %v", err)
		writeError(w, http.StatusInternalServerError, "خطأ في جلب المستندات")
		return
	}

	items := make([]map[string]any, 0, len(docs))
	for _, d := range docs {
		items = append(items, map[string]any{
			"id":                d.ID,
			"filename":          d.Filename,
			"original_filename": d.OriginalFilename,
			"file_size":         d.FileSize,
			"word_count":        d.WordCount,
			"upload_date":       d.UploadDate.Format(time.RFC3339),
			"mime_type":         d.MimeType,
			"language":          d.Language,
			"processing_status": d.ProcessingStatus,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "success",
		"documents": items,
		"total":     len(items),
	})
}

// Delete removes a document row and its backing file. A missing file is
// tolerated; a missing row is a 404.
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	doc, err := h.dbclient.GetDocumentByID(r.Context(), id)
	if err != nil {
		log.Printf("documents: lookup %s failed: %v", id, err)
		writeError(w, http.StatusInternalServerError, "خطأ في حذف الملف")
		return
	}
	if doc == nil {
		writeError(w, http.StatusNotFound, "الملف غير موجود")
		return
	}

	if err := h.files.Delete(doc.FilePath); err != nil {
		log.Printf("documents: file delete failed for %s: %v", doc.FilePath, err)
	}

	if err := h.dbclient.DeleteDocument(r.Context(), id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, http.StatusNotFound, "الملف غير موجود")
			return
		}
		log.Printf("documents: delete %s failed: %v", id, err)
		writeError(w, http.StatusInternalServerError, "خطأ في حذف الملف")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": fmt.Sprintf("تم حذف الملف %s بنجاح", doc.Filename),
	})
}
