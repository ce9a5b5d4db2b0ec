package httpwire_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hcdrive/hcdrive/httpwire"
)

type testPart struct {
	disposition string
	mediaType   string
	data        string
}

// encodeMultipart builds a multipart/form-data body the way a browser
// would, sections framed by "--boundary" lines.
func encodeMultipart(boundary string, parts []testPart) string {
	var b strings.Builder
	for _, p := range parts {
		b.WriteString("--" + boundary + "\r\n")
		b.WriteString("Content-Disposition: " + p.disposition + "\r\n")
		if p.mediaType != "" {
			b.WriteString("Content-Type: " + p.mediaType + "\r\n")
		}
		b.WriteString("\r\n")
		b.WriteString(p.data)
		b.WriteString("\r\n")
	}
	b.WriteString("--" + boundary + "--\r\n")
	return b.String()
}

func TestParseMultipart_FileAndScalar(t *testing.T) {
	body := encodeMultipart("XYZ", []testPart{
		{`form-data; name="upload"; filename="notes.txt"`, "text/plain", "dear diary"},
		{`form-data; name="label"`, "", "my notes"},
	})

	form := httpwire.ParseMultipart("XYZ", []byte(body))

	file, ok := form.Get("upload")
	require.True(t, ok)
	assert.Equal(t, "notes.txt", file.Filename)
	assert.Equal(t, "text/plain", file.MediaType)
	assert.Equal(t, "dear diary", string(file.Data))

	label, ok := form.Get("label")
	require.True(t, ok)
	assert.Equal(t, "my notes", label.Value())
}

func TestParseMultipart_ArrayConventionAccumulates(t *testing.T) {
	body := encodeMultipart("b1", []testPart{
		{`form-data; name="files[]"; filename="a.txt"`, "text/plain", "AAA"},
		{`form-data; name="files[]"; filename="b.txt"`, "text/plain", "BBB"},
	})

	form := httpwire.ParseMultipart("b1", []byte(body))

	files := form.All("files")
	require.Len(t, files, 2)
	assert.Equal(t, "a.txt", files[0].Filename)
	assert.Equal(t, "b.txt", files[1].Filename)
}

func TestParseMultipart_PlainNameKeepsLast(t *testing.T) {
	body := encodeMultipart("b1", []testPart{
		{`form-data; name="color"`, "", "red"},
		{`form-data; name="color"`, "", "blue"},
	})

	form := httpwire.ParseMultipart("b1", []byte(body))

	require.Len(t, form.All("color"), 1)
	got, _ := form.Get("color")
	assert.Equal(t, "blue", got.Value())
}

func TestParseMultipart_DataMayContainCRLF(t *testing.T) {
	body := encodeMultipart("b1", []testPart{
		{`form-data; name="f"; filename="lines.txt"`, "text/plain", "one\r\ntwo\r\nthree"},
	})

	form := httpwire.ParseMultipart("b1", []byte(body))

	got, ok := form.Get("f")
	require.True(t, ok)
	assert.Equal(t, "one\r\ntwo\r\nthree", string(got.Data))
}

func TestParseMultipart_BadDispositionRecoversWithDefaults(t *testing.T) {
	body := encodeMultipart("b1", []testPart{
		{`attachment; something="else"`, "text/plain", "payload"},
	})

	form := httpwire.ParseMultipart("b1", []byte(body))

	got, ok := form.Get("field")
	require.True(t, ok)
	assert.Equal(t, "unknown-file.txt", got.Filename)
	assert.Equal(t, "payload", string(got.Data))
}

func TestParseMultipart_SectionWithoutBlankLineDiscardsRemainder(t *testing.T) {
	good := encodeMultipart("b1", []testPart{
		{`form-data; name="first"`, "", "ok"},
	})
	// Second section never terminates its headers.
	broken := strings.TrimSuffix(good, "--b1--\r\n") +
		"--b1\r\nContent-Disposition: form-data; name=\"second\""

	form := httpwire.ParseMultipart("b1", []byte(broken))

	_, ok := form.Get("first")
	assert.True(t, ok)
	_, ok = form.Get("second")
	assert.False(t, ok)
}

func TestParseMultipart_MissingTrailingBoundaryTolerated(t *testing.T) {
	body := encodeMultipart("b1", []testPart{
		{`form-data; name="f"`, "", "data"},
	})
	body = strings.TrimSuffix(body, "--b1--\r\n")

	form := httpwire.ParseMultipart("b1", []byte(body))

	got, ok := form.Get("f")
	require.True(t, ok)
	assert.Equal(t, "data", got.Value())
}

// Decoding a body and re-encoding its parts with the same boundary must
// decode to the same set of (name, filename, media type, bytes) tuples.
func TestParseMultipart_Roundtrip(t *testing.T) {
	parts := []testPart{
		{`form-data; name="files[]"; filename="a.bin"`, "application/octet-stream", "\x00\x01\x02"},
		{`form-data; name="files[]"; filename="b.txt"`, "text/plain", "hello\r\nworld"},
		{`form-data; name="note"`, "", "plain value"},
	}
	first := httpwire.ParseMultipart("RT", []byte(encodeMultipart("RT", parts)))

	var reencoded []testPart
	for _, name := range []string{"files", "note"} {
		for _, f := range first.All(name) {
			raw := f.Name
			if len(first.All(name)) > 1 {
				raw += "[]"
			}
			disp := `form-data; name="` + raw + `"`
			if f.Filename != "" {
				disp += `; filename="` + f.Filename + `"`
			}
			reencoded = append(reencoded, testPart{disp, f.MediaType, string(f.Data)})
		}
	}
	second := httpwire.ParseMultipart("RT", []byte(encodeMultipart("RT", reencoded)))

	require.Len(t, second.All("files"), len(first.All("files")))
	for i, want := range first.All("files") {
		got := second.All("files")[i]
		assert.Equal(t, want.Filename, got.Filename)
		assert.Equal(t, want.MediaType, got.MediaType)
		assert.Equal(t, want.Data, got.Data)
	}
	wantNote, _ := first.Get("note")
	gotNote, ok := second.Get("note")
	require.True(t, ok)
	assert.Equal(t, wantNote.Data, gotNote.Data)
}

func TestReadRequest_MultipartUpload(t *testing.T) {
	body := encodeMultipart("----WebKitFormBoundaryAAA", []testPart{
		{`form-data; name="files[]"; filename="hello.txt"`, "text/plain", "hi"},
	})
	raw := "POST /upload HTTP/1.1\r\n" +
		`Content-Type: multipart/form-data; boundary="----WebKitFormBoundaryAAA"` + "\r\n" +
		"Content-Length: " + itoa(len(body)) + "\r\n\r\n" + body

	req := readRequestFrom(t, raw)

	files := req.Form.All("files")
	require.Len(t, files, 1)
	assert.Equal(t, "hello.txt", files[0].Filename)
	assert.Equal(t, "hi", string(files[0].Data))
	assert.True(t, files[0].IsFile())
}

// A split in the middle of the boundary marker must parse the same as
// the unsplit stream; the boundary only exists after reassembly.
func TestReadRequest_MultipartSplitInsideBoundary(t *testing.T) {
	body := encodeMultipart("SplitMe", []testPart{
		{`form-data; name="files[]"; filename="a.txt"`, "text/plain", "AAA"},
		{`form-data; name="files[]"; filename="b.txt"`, "text/plain", "BBB"},
	})
	raw := "POST /upload HTTP/1.1\r\n" +
		"Content-Type: multipart/form-data; boundary=SplitMe\r\n" +
		"Content-Length: " + itoa(len(body)) + "\r\n\r\n" + body

	cut := strings.Index(raw, "--Spl") + 4 // inside the first boundary marker
	f := httpwire.NewFramer(newChunkReader(raw[:cut], raw[cut:]))
	req, err := httpwire.ReadRequest(f)
	require.NoError(t, err)

	files := req.Form.All("files")
	require.Len(t, files, 2)
	assert.Equal(t, "AAA", string(files[0].Data))
	assert.Equal(t, "BBB", string(files[1].Data))
}

func TestReadRequest_MultipartMissingBoundaryLeavesFormEmpty(t *testing.T) {
	raw := "POST /upload HTTP/1.1\r\n" +
		"Content-Type: multipart/form-data\r\n" +
		"Content-Length: 4\r\n\r\njunk"

	req := readRequestFrom(t, raw)

	assert.Empty(t, req.Form)
	assert.Equal(t, "junk", string(req.Body))
}
