package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/pribylovaa/wave-feed/internal/service"
)

// formOverheadBytes — запас на текстовые поля и границы multipart сверх лимита файла.
const formOverheadBytes = 1 << 20

type multipartForm struct {
	r     *http.Request
	files []multipart.File
}

// parseMultipart разбирает multipart/form-data с ограничением размера тела.
// Вызывающий обязан вызвать cleanup.
func (h *Handlers) parseMultipart(w http.ResponseWriter, r *http.Request) (*multipartForm, func(), error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.uploadMaxBytes+formOverheadBytes)

	if err := r.ParseMultipartForm(h.uploadMaxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, nil, err
		}

		return nil, nil, invalidArgument("expected multipart/form-data body")
	}

	f := &multipartForm{r: r}
	return f, f.close, nil
}

func (f *multipartForm) Value(name string) string {
	return f.r.PostFormValue(name)
}

// File возвращает файл поля name; nil, если поле не передано.
// Пустой или общий Content-Type уточняется по первым байтам файла.
func (f *multipartForm) File(name string) (*service.Media, error) {
	file, hdr, err := f.r.FormFile(name)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, invalidArgument("unreadable file field " + name)
	}
	f.files = append(f.files, file)

	ct := hdr.Header.Get("Content-Type")
	if ct == "" || ct == "application/octet-stream" {
		var head [512]byte
		n, _ := io.ReadFull(file, head[:])
		ct = http.DetectContentType(head[:n])

		if _, err := file.Seek(0, io.SeekStart); err != nil {
			return nil, invalidArgument("unreadable file field " + name)
		}
	}

	return &service.Media{
		Filename:    hdr.Filename,
		ContentType: ct,
		Size:        hdr.Size,
		Body:        file,
	}, nil
}

func (f *multipartForm) close() {
	for _, file := range f.files {
		_ = file.Close()
	}

	if f.r.MultipartForm != nil {
		_ = f.r.MultipartForm.RemoveAll()
	}
}
