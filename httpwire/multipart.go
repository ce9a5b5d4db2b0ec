package httpwire

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
)

const (
	// Defaults substituted when a section's Content-Disposition cannot
	// be understood; the rest of the body still parses.
	defaultFieldName = "field"
	defaultFilename  = "unknown-file.txt"
)

// ParseMultipart splits a multipart/form-data body into named parts.
// Each section begins after a "--boundary" line, sections separated by
// CRLF + "--boundary", and the body ends at "--boundary--". Malformed
// sections are recovered with default field values; a wrong terminal
// boundary is logged, not fatal.
func ParseMultipart(boundary string, body []byte) Form {
	sep := []byte("--" + boundary)
	sectionStart := []byte("--" + boundary + "\r\n")
	terminal := []byte("--" + boundary + "--\r\n")

	form := Form{}
	rest := body
	for bytes.HasPrefix(rest, sectionStart) {
		rest = rest[len(sectionStart):]

		headBlock, tail, ok := bytes.Cut(rest, []byte("\r\n\r\n"))
		if !ok {
			slog.Error("multipart section has no blank line, discarding remainder")
			return form
		}
		data, afterSep, _ := bytes.Cut(tail, append([]byte("\r\n"), sep...))
		rest = append(append([]byte(nil), sep...), afterSep...)

		headers, err := ParseHeaders(string(headBlock))
		if err != nil {
			slog.Error("multipart section headers unparsable", "err", err)
			headers = Header{}
		}

		name, filename, err := parseContentDisposition(headers.Get("Content-Disposition"))
		if err != nil {
			slog.Error("multipart section recovered with defaults", "err", err)
		}
		slog.Debug("multipart section",
			"name", name, "filename", filename,
			"media_type", headers.Get("Content-Type"), "bytes", len(data))

		form.add(name, FormField{
			Filename:  filename,
			MediaType: headers.Get("Content-Type"),
			Data:      data,
		})
	}

	if !bytes.Equal(rest, terminal) {
		slog.Warn("multipart body missing trailing boundary")
	}
	return form
}

// parseContentDisposition recovers the field name and filename from a
// header like `form-data; name="field1"; filename="foo.pdf"`. On any
// trouble it reports ErrBadContentDisposition and returns the defaults
// so the caller can keep going.
func parseContentDisposition(disp string) (name, filename string, err error) {
	disp = strings.TrimSpace(disp)
	if !strings.HasPrefix(disp, "form-data;") {
		return defaultFieldName, defaultFilename,
			fmt.Errorf("%w: %q", ErrBadContentDisposition, disp)
	}

	name, ok := quotedParam(disp, `name="`)
	if !ok {
		return defaultFieldName, defaultFilename,
			fmt.Errorf("%w: no field name in %q", ErrBadContentDisposition, disp)
	}

	filename = defaultFilename
	if f, ok := quotedParam(disp, `filename="`); ok {
		filename = f
	}
	return name, filename, nil
}

// quotedParam extracts the quoted value following marker, e.g.
// quotedParam(s, `name="`) for `name="value"`.
func quotedParam(s, marker string) (string, bool) {
	i := strings.Index(s, marker)
	if i < 0 {
		return "", false
	}
	rest := s[i+len(marker):]
	j := strings.IndexByte(rest, '"')
	if j < 0 {
		return "", false
	}
	return rest[:j], true
}
