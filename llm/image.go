package llm

import (
	"encoding/base64"
	"net/http"
)

// ImageDataURI encodes raw image bytes as a data URI suitable for Vision.
// The MIME type is sniffed from the payload, defaulting to image/jpeg.
func ImageDataURI(image []byte) string {
	mime := http.DetectContentType(image)
	if mime == "application/octet-stream" {
		mime = "image/jpeg"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(image)
}
