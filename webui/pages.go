// Package webui renders the browser-facing HTML pages. Rendering is a
// pure function from a file listing or a statistics snapshot to markup;
// nothing here touches sockets or shared state.
package webui

import (
	"bytes"
	"fmt"
	"html/template"
	"sort"

	"github.com/hcdrive/hcdrive"
)

// Pages renders the shared-files listing and the dashboard for one
// server identity.
type Pages struct {
	Name   string // server address shown on the pages
	Region string // geographic region shown on the pages
}

func New(name, region string) *Pages {
	return &Pages{Name: name, Region: region}
}

var pageFuncs = template.FuncMap{"prettySize": PrettySize}

var mainPageTmpl = template.Must(template.New("main").Funcs(pageFuncs).Parse(`<html>
<head>
  <link rel="stylesheet" href="fileshare.css">
  <link rel="stylesheet" href="https://cdnjs.cloudflare.com/ajax/libs/font-awesome/4.7.0/css/font-awesome.min.css">
  <title>HC Cloud Drive</title>
</head>
<body>
  <h1>HC Cloud Drive</h1>
  <p>Current Server Location: {{.Region}}<br>Current Server Address: {{.Name}}</p>
{{- if .Status}}
  <p><b>{{.Status}}</b></p>
{{- end}}
  <p>Below is a list of your {{len .Listing}} cloud drive files.</p>
  <form id="upload-form" action="/upload" method="POST" enctype="multipart/form-data">
    <input id="upload-button" type="button" value="Upload New Files" />
    <input id="select-button" type="file" style="display: none;" name="files[]" multiple/>
    <input type="submit" style="display: none;" />
    <script>
      var upload = document.getElementById('upload-button');
      var select = document.getElementById('select-button');
      var form = document.getElementById('upload-form');
      upload.onclick = function() { select.click(); }
      select.onchange = function() { if (select.files.length > 0) form.submit(); }
    </script>
  </form>
  <table>
  <thead><tr><th></th><th></th><th>Name</th><th>Size</th></tr></thead>
  <tbody>
{{- if not .Listing}}
  <tr><td></td><td></td><td><i>Sorry, you have no files. Try uploading?</i></td><td></td></tr>
{{- end}}
{{- range .Listing}}
  <tr>
    <td>
      <form action="/delete/{{.Name}}" method="POST">
        <input type="submit" class="trash" value="&#xf1f8;" />
      </form>
    </td>
    <td><a href="/download/{{.Name}}" download><i class="fa fa-download"></i></a></td>
    <td><a href="/view/{{.Name}}">{{.Name}}</a></td>
    <td>{{prettySize .Size}}</td>
  </tr>
{{- end}}
  </tbody>
  </table>
  <footer>
  Go to <a href="/dashboard.html">system dashboard</a>.
  </footer>
</body>
</html>
`))

var dashboardTmpl = template.Must(template.New("dashboard").Parse(`<html>
<head><title>HC Cloud Drive Dashboard</title></head>
<body>
  <h1>Welcome to the HC Cloud Drive dashboard</h1>
  <p><a href="/dashboard.html">REFRESH</a></p>
  Here are some statistics:<br>
  {{.ConnectionsTotal}} http connections so far<br>
  {{.ConnectionsNow}} http connections right now<br>
  {{.LocalFiles}} shared files stored in this server's share folder<br>
  {{.Uploads}} shared files uploaded to this server<br>
  {{.Downloads}} shared files downloaded from this server<br>
  <p>Click <a href="/shared-files.html">HERE</a> to go to the main page.</p>
</body>
</html>
`))

// MainPage renders the shared-files listing, sorted by name, with an
// optional status banner from the last operation.
func (p *Pages) MainPage(listing []hcdrive.FileEntry, status string) string {
	sorted := make([]hcdrive.FileEntry, len(listing))
	copy(sorted, listing)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	var buf bytes.Buffer
	err := mainPageTmpl.Execute(&buf, struct {
		Name    string
		Region  string
		Status  template.HTML
		Listing []hcdrive.FileEntry
	}{p.Name, p.Region, template.HTML(status), sorted})
	if err != nil {
		// Templates are parsed at init and the data is plain values;
		// execution cannot fail on well-formed input.
		return fmt.Sprintf("<html><body>template error: %v</body></html>", err)
	}
	return buf.String()
}

// Dashboard renders the statistics page.
func (p *Pages) Dashboard(stats hcdrive.StatsSnapshot) string {
	var buf bytes.Buffer
	if err := dashboardTmpl.Execute(&buf, stats); err != nil {
		return fmt.Sprintf("<html><body>template error: %v</body></html>", err)
	}
	return buf.String()
}

// PrettySize renders a byte count with 1000-based units, so 1 KB is
// exactly 1000 bytes: PrettySize(71030) == "71.0 KB".
func PrettySize(n int64) string {
	gb := float64(n) / 1e9
	mb := float64(n) / 1e6
	kb := float64(n) / 1e3
	switch {
	case gb >= 100:
		return fmt.Sprintf("%.0f GB", gb)
	case gb >= 10:
		return fmt.Sprintf("%.1f GB", gb)
	case gb >= 1:
		return fmt.Sprintf("%.2f GB", gb)
	case mb >= 100:
		return fmt.Sprintf("%.0f MB", mb)
	case mb >= 10:
		return fmt.Sprintf("%.1f MB", mb)
	case mb >= 1:
		return fmt.Sprintf("%.2f MB", mb)
	case kb >= 100:
		return fmt.Sprintf("%.0f KB", kb)
	case kb >= 10:
		return fmt.Sprintf("%.1f KB", kb)
	case kb >= 1:
		return fmt.Sprintf("%.2f KB", kb)
	default:
		return fmt.Sprintf("%d B", n)
	}
}
