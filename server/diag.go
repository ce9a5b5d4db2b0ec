package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"strings"

	"github.com/hcdrive/hcdrive/httpwire"
)

// handleDiagnostic serves the back-end line protocol: a banner on
// connect, then one newline-terminated command per turn. Connect to it
// with netcat or telnet. "die" drains the whole process.
func (s *Server) handleDiagnostic(ctx context.Context, c net.Conn) {
	log := slog.With("remote", c.RemoteAddr().String())
	log.Info("diagnostic connection opened")
	defer func() {
		log.Info("diagnostic connection closed")
		_ = c.Close()
	}()

	var banner strings.Builder
	banner.WriteString("Hello! Welcome to the secret diagnostic port!\n")
	fmt.Fprintf(&banner, "  Your address is %s\n", c.RemoteAddr())
	fmt.Fprintf(&banner, "  name = '%s'\n", s.cfg.Name)
	fmt.Fprintf(&banner, "  region = '%s'\n", s.cfg.Region)
	banner.WriteString("Here are the things I know how to do:\n")
	banner.WriteString("  list-files    -- get list of local shared files\n")
	banner.WriteString("  stats         -- get load statistics\n")
	banner.WriteString("  bye           -- disconnect from diagnostic port\n")
	banner.WriteString("  die           -- causes entire server to exit\n")
	if _, err := fmt.Fprint(c, banner.String()); err != nil {
		return
	}

	framer := httpwire.NewFramer(c)
	for {
		if _, err := fmt.Fprint(c, "What do you want to do?\n"); err != nil {
			return
		}
		line, err := framer.ReadUntil([]byte{'\n'})
		if err != nil {
			return
		}
		cmd := strings.TrimSpace(string(line))
		log.Info("diagnostic command", "cmd", cmd)

		var reply strings.Builder
		switch {
		case cmd == "list-files":
			listing := s.registry.List()
			fmt.Fprintf(&reply, "There are %d shared files stored here:\n", len(listing))
			for _, e := range listing {
				fmt.Fprintf(&reply, "  %s (%d bytes)\n", e.Name, e.Size)
			}

		case strings.HasPrefix(cmd, "stats"):
			snap := s.stats.Snapshot()
			reply.WriteString("Here are some statistics:\n")
			fmt.Fprintf(&reply, "   %6d http connections so far\n", snap.ConnectionsTotal)
			fmt.Fprintf(&reply, "   %6d http connections right now\n", snap.ConnectionsNow)
			fmt.Fprintf(&reply, "   %6d shared files stored on this server\n", snap.LocalFiles)
			fmt.Fprintf(&reply, "   %6d shared files uploaded to this server\n", snap.Uploads)
			fmt.Fprintf(&reply, "   %6d shared files downloaded from this server\n", snap.Downloads)

		case strings.HasPrefix(cmd, "bye"):
			_, _ = fmt.Fprint(c, "See you later!\n")
			return

		case strings.HasPrefix(cmd, "die"):
			_, _ = fmt.Fprint(c, "This server is shutting down now!\n")
			log.Warn("shutdown requested from diagnostic port")
			s.shutdown()
			return

		default:
			fmt.Fprintf(&reply, "I don't understand '%s'\n", cmd)
		}

		if _, err := fmt.Fprint(c, reply.String()); err != nil {
			return
		}
		if ctx.Err() != nil {
			return
		}
	}
}
