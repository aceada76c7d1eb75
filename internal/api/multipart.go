package api

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/noah-isme/agrisure-console/internal/models"
)

// encodeMultipart renders plain fields and attachment groups into one
// multipart body. Attachments keep their logical field name; GPS text, when
// present, travels as a sibling field named <field>Gps.
func encodeMultipart(fields map[string]string, attachments map[string][]models.Attachment) (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	for name, value := range fields {
		if value == "" {
			continue
		}
		if err := writer.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", name, err)
		}
	}

	for group, files := range attachments {
		for i, att := range files {
			fieldName := att.FieldName
			if fieldName == "" {
				fieldName = group
			}
			if err := writeAttachment(writer, fieldName, att); err != nil {
				return nil, "", err
			}
			if att.GPS != "" {
				gpsField := fmt.Sprintf("%sGps%d", group, i)
				if err := writer.WriteField(gpsField, att.GPS); err != nil {
					return nil, "", fmt.Errorf("write field %s: %w", gpsField, err)
				}
			}
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("finalise multipart body: %w", err)
	}
	return buf, writer.FormDataContentType(), nil
}

func writeAttachment(writer *multipart.Writer, fieldName string, att models.Attachment) error {
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`,
		escapeQuotes(fieldName), escapeQuotes(att.FileName)))
	contentType := att.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return fmt.Errorf("create part %s: %w", fieldName, err)
	}
	if _, err := part.Write(att.Data); err != nil {
		return fmt.Errorf("write part %s: %w", fieldName, err)
	}
	return nil
}

func escapeQuotes(s string) string {
	return strings.NewReplacer("\\", "\\\\", `"`, "\\\"").Replace(s)
}
