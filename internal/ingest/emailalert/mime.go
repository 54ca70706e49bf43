package emailalert

import (
	"bytes"
	"encoding/base64"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"strings"
)

const maxBodyBytes = 6 << 20

// htmlPart extracts the text/html body of a raw RFC822 message. A
// single-part HTML message returns its body directly; multipart messages are
// walked for the first html part. No html part means no leads, so empty
// string is fine.
func htmlPart(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}

	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	if err != nil {
		return ""
	}

	body, _ := io.ReadAll(io.LimitReader(msg.Body, maxBodyBytes))

	ct := msg.Header.Get("Content-Type")
	cte := strings.ToLower(strings.TrimSpace(msg.Header.Get("Content-Transfer-Encoding")))

	mediaType, params, err := mime.ParseMediaType(ct)
	if err != nil {
		return ""
	}
	mediaType = strings.ToLower(mediaType)

	switch {
	case mediaType == "text/html":
		return string(decodeTransferEncoding(body, cte))
	case strings.HasPrefix(mediaType, "multipart/"):
		return htmlFromMultipart(body, params["boundary"])
	}
	return ""
}

func htmlFromMultipart(body []byte, boundary string) string {
	if boundary == "" {
		return ""
	}

	mr := multipart.NewReader(bytes.NewReader(body), boundary)
	for {
		part, err := mr.NextPart()
		if err != nil {
			return ""
		}

		ct := part.Header.Get("Content-Type")
		cte := strings.ToLower(strings.TrimSpace(part.Header.Get("Content-Transfer-Encoding")))

		mediaType, params, merr := mime.ParseMediaType(ct)
		if merr != nil {
			continue
		}
		mediaType = strings.ToLower(mediaType)

		pb, _ := io.ReadAll(io.LimitReader(part, maxBodyBytes))

		switch {
		case mediaType == "text/html":
			return string(decodeTransferEncoding(pb, cte))
		case strings.HasPrefix(mediaType, "multipart/"):
			// nested alternative/related
			if s := htmlFromMultipart(pb, params["boundary"]); s != "" {
				return s
			}
		}
	}
}

func decodeTransferEncoding(b []byte, cte string) []byte {
	switch cte {
	case "quoted-printable":
		out, err := io.ReadAll(quotedprintable.NewReader(bytes.NewReader(b)))
		if err == nil {
			return out
		}
	case "base64":
		out, err := io.ReadAll(base64.NewDecoder(base64.StdEncoding, bytes.NewReader(bytes.TrimSpace(b))))
		if err == nil {
			return out
		}
	}
	return b
}
