package server

import (
	"context"
	"errors"
	"log/slog"
	"net"

	"github.com/hcdrive/hcdrive/httpwire"
)

// handleHTTP drives one browser connection: decode a request, dispatch
// it, write the response, and repeat while the client asks to keep the
// connection alive. Framing and decode errors close this connection
// only; the rest of the server is unaffected.
func (s *Server) handleHTTP(ctx context.Context, c net.Conn) {
	log := slog.With("remote", c.RemoteAddr().String())
	log.Debug("browser connection opened")

	s.stats.ConnectionOpened()
	defer s.stats.ConnectionClosed()
	defer func() { _ = c.Close() }()

	framer := httpwire.NewFramer(c)
	requests := 0
	for {
		req, err := httpwire.ReadRequest(framer)
		if err != nil {
			if errors.Is(err, httpwire.ErrConnectionClosed) {
				log.Debug("browser connection closed", "requests", requests)
			} else {
				log.Warn("dropping connection", "err", err, "requests", requests)
			}
			return
		}
		requests++
		log.Info("request", "method", req.Method, "path", req.Path, "n", requests)

		if err := s.route(ctx, c, req); err != nil {
			log.Warn("response write failed", "err", err)
			return
		}
		if !req.KeepAlive {
			log.Debug("closing connection, keep-alive not requested", "requests", requests)
			return
		}
	}
}
