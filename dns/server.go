package dns

import (
	"errors"
	"net"

	"github.com/miekg/dns"
	"github.com/sirupsen/logrus"
)

var errNoOverride = errors.New("no override")

// Handler answers a query or returns an error to pass it on.
type Handler interface {
	Lookup(r *dns.Msg) (*dns.Msg, error)
	String() string
}

// Server tries its handlers in order; the first answer wins.
type Server struct {
	handlers []Handler
	server   *dns.Server
}

func New(addr string, handlers ...Handler) *Server {
	s := &Server{
		handlers: handlers,
	}
	s.server = &dns.Server{
		Addr:    addr,
		Net:     "udp",
		Handler: s,
	}
	return s
}

func (s *Server) Listen() error {
	return s.server.ListenAndServe()
}

// Serve answers queries arriving on pc.
func (s *Server) Serve(pc net.PacketConn) error {
	s.server.PacketConn = pc
	return s.server.ActivateAndServe()
}

func (s *Server) Shutdown() error {
	return s.server.Shutdown()
}

func (s *Server) ServeDNS(w dns.ResponseWriter, r *dns.Msg) {
	if len(r.Question) == 0 {
		handleFailed(w, r, dns.RcodeFormatError)
		return
	}
	name := r.Question[0].Name

	for _, h := range s.handlers {
		answer, err := h.Lookup(r)
		if err != nil {
			logrus.Debugf("dns %s: %s: %v", name, h, err)
			continue
		}
		logrus.Infof("dns %s answered by %s", name, h)
		w.WriteMsg(answer)
		return
	}

	handleFailed(w, r, dns.RcodeServerFailure)
}

func handleFailed(w dns.ResponseWriter, r *dns.Msg, code int) {
	m := new(dns.Msg)
	m.SetRcode(r, code)
	w.WriteMsg(m)
}
