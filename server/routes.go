package server

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/hcdrive/hcdrive/httpwire"
)

const mainPagePath = "/shared-files.html"

// route dispatches one decoded request to application logic and writes
// the response. Application-level failures (missing file, duplicate
// name, unknown route) always come back as a well-formed 404 or a
// redirect carrying a status string; only a failed write is returned.
func (s *Server) route(ctx context.Context, w io.Writer, req *httpwire.Request) error {
	switch {
	case req.Method == "GET" && (req.Path == "/" || req.Path == "/index.html"):
		return s.sendRedirect(w, req, "")

	case req.Method == "GET" && req.Path == mainPagePath:
		return s.sendMainPage(w, req)

	case req.Method == "GET" && strings.HasPrefix(req.Path, "/view/"):
		return s.sendSharedFile(ctx, w, req, strings.TrimPrefix(req.Path, "/view/"), false)

	case req.Method == "GET" && strings.HasPrefix(req.Path, "/download/"):
		return s.sendSharedFile(ctx, w, req, strings.TrimPrefix(req.Path, "/download/"), true)

	case req.Method == "GET" && strings.HasPrefix(req.Path, "/") && s.static.Has(req.Path[1:]):
		return s.sendStaticFile(w, req, req.Path[1:])

	case req.Method == "POST" && req.Path == "/delete":
		field, ok := req.Form.Get("filename")
		if !ok {
			slog.Warn("delete form missing 'filename' field")
			return s.sendRedirect(w, req, "Sorry, form with filename wasn't submitted.")
		}
		return s.sendRedirect(w, req, s.registry.Remove(ctx, field.Value()))

	case req.Method == "POST" && strings.HasPrefix(req.Path, "/delete/"):
		return s.sendRedirect(w, req, s.registry.Remove(ctx, strings.TrimPrefix(req.Path, "/delete/")))

	case req.Method == "POST" && req.Path == "/upload":
		uploads := req.Form.All("files")
		if len(uploads) == 0 {
			slog.Warn("upload form missing 'files' field")
			return s.sendRedirect(w, req, "Sorry, form with file wasn't submitted.")
		}
		statuses := make([]string, 0, len(uploads))
		for _, up := range uploads {
			statuses = append(statuses, s.registry.Add(ctx, up.Filename, up.Data))
		}
		return s.sendRedirect(w, req, strings.Join(statuses, "<br>"))

	case req.Method == "GET" && req.Path == "/dashboard.html":
		return s.sendDashboard(w, req)

	default:
		slog.Warn("unrecognized request", "method", req.Method, "path", req.Path)
		return s.sendNotFound(w, req)
	}
}

func (s *Server) sendNotFound(w io.Writer, req *httpwire.Request) error {
	resp := httpwire.Response{
		Status:      httpwire.StatusNotFound,
		ContentType: "text/plain",
		KeepAlive:   req.KeepAlive,
		Body:        []byte("Sorry, the page you requested could not be found :)"),
	}
	return resp.WriteTo(w)
}

// sendRedirect bounces the browser to the main page, carrying an
// optional status message in the url so the page can display it.
func (s *Server) sendRedirect(w io.Writer, req *httpwire.Request, status string) error {
	location := mainPagePath
	body := "You should go to the main page please!"
	if status != "" {
		location = mainPagePath + "?status=" + url.QueryEscape(status)
		body = fmt.Sprintf("Status of your last request... %s\nNow go back to the main page please!", status)
	}
	resp := httpwire.Response{
		Status:      httpwire.StatusRedirect,
		ContentType: "text/plain",
		Location:    location,
		KeepAlive:   req.KeepAlive,
		Body:        []byte(body),
	}
	return resp.WriteTo(w)
}

func (s *Server) sendMainPage(w io.Writer, req *httpwire.Request) error {
	page := s.render.MainPage(s.registry.List(), req.Params.Get("status"))
	resp := httpwire.Response{
		Status:      httpwire.StatusOK,
		ContentType: "text/html",
		KeepAlive:   req.KeepAlive,
		Body:        []byte(page),
	}
	return resp.WriteTo(w)
}

func (s *Server) sendDashboard(w io.Writer, req *httpwire.Request) error {
	page := s.render.Dashboard(s.stats.Snapshot())
	resp := httpwire.Response{
		Status:      httpwire.StatusOK,
		ContentType: "text/html",
		KeepAlive:   req.KeepAlive,
		Body:        []byte(page),
	}
	return resp.WriteTo(w)
}

// sendSharedFile sends a registered file inline, or as an attachment so
// browsers pop a save-as dialog.
func (s *Server) sendSharedFile(ctx context.Context, w io.Writer, req *httpwire.Request, name string, asAttachment bool) error {
	data, err := s.registry.Read(ctx, name)
	if err != nil {
		slog.Warn("shared file not available", "name", name, "err", err)
		return s.sendNotFound(w, req)
	}
	s.stats.DownloadServed()

	resp := httpwire.Response{
		Status:      httpwire.StatusOK,
		ContentType: contentTypeFor(name),
		KeepAlive:   req.KeepAlive,
		Body:        data,
	}
	if asAttachment {
		resp.Disposition = fmt.Sprintf("attachment; filename=%q", name)
	}
	return resp.WriteTo(w)
}

func (s *Server) sendStaticFile(w io.Writer, req *httpwire.Request, name string) error {
	data, err := s.static.Read(name)
	if err != nil {
		slog.Error("static file unreadable", "name", name, "err", err)
		return s.sendNotFound(w, req)
	}
	resp := httpwire.Response{
		Status:      httpwire.StatusOK,
		ContentType: contentTypeFor(name),
		KeepAlive:   req.KeepAlive,
		Body:        data,
	}
	return resp.WriteTo(w)
}

func contentTypeFor(name string) string {
	if t := mime.TypeByExtension(filepath.Ext(name)); t != "" {
		return t
	}
	return "application/octet-stream"
}
