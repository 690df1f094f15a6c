package handler

import (
	"io"
	"mime/multipart"
	"net/http"

	"clinic-booking-service/internal/service"
	"clinic-booking-service/pkg/response"
)

const pictureField = "picture"

// readPicture pulls the picture part of a multipart upload. The caller must
// close the returned file.
func readPicture(w http.ResponseWriter, r *http.Request) (multipart.File, *multipart.FileHeader, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, service.MaxPictureSize+1<<20)
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		response.BadRequest(w, "Picture must be sent as multipart form data of at most 5 MiB")
		return nil, nil, false
	}

	file, header, err := r.FormFile(pictureField)
	if err != nil {
		response.BadRequest(w, "Missing picture file")
		return nil, nil, false
	}
	return file, header, true
}

func contentTypeOf(header *multipart.FileHeader, file io.ReadSeeker) string {
	if ct := header.Header.Get("Content-Type"); ct != "" && ct != "application/octet-stream" {
		return ct
	}
	sniff := make([]byte, 512)
	n, _ := file.Read(sniff)
	_, _ = file.Seek(0, io.SeekStart)
	return http.DetectContentType(sniff[:n])
}
