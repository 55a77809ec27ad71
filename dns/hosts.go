package dns

import (
	"fmt"
	"net"
	"strings"

	"github.com/fanpei91/hostshook/hosts"
	"github.com/miekg/dns"
)

// HandlerOverHosts answers from the override files found from dir upward.
// A name with an override is answered authoritatively even when the
// address family does not fit the query type; the answer is then empty.
type HandlerOverHosts struct {
	dir string
	env string
}

func NewHandlerOverHosts(dir, env string) HandlerOverHosts {
	return HandlerOverHosts{
		dir: dir,
		env: env,
	}
}

func (h HandlerOverHosts) Lookup(r *dns.Msg) (*dns.Msg, error) {
	q := r.Question[0]
	host := strings.TrimSuffix(q.Name, ".")

	m, ok := hosts.LookupFrom(h.dir, host, h.env)
	if !ok {
		return nil, errNoOverride
	}

	answer := new(dns.Msg)
	answer.SetReply(r)
	answer.Authoritative = true
	answer.RecursionAvailable = true

	hdr := dns.RR_Header{Name: q.Name, Class: dns.ClassINET, Ttl: 0}
	switch {
	case q.Qtype == dns.TypeA && m.Addr.Is4():
		hdr.Rrtype = dns.TypeA
		answer.Answer = append(answer.Answer, &dns.A{Hdr: hdr, A: net.IP(m.Addr.AsSlice())})
	case q.Qtype == dns.TypeAAAA && m.Addr.Is6():
		hdr.Rrtype = dns.TypeAAAA
		answer.Answer = append(answer.Answer, &dns.AAAA{Hdr: hdr, AAAA: net.IP(m.Addr.AsSlice())})
	}

	return answer, nil
}

func (h HandlerOverHosts) String() string {
	return fmt.Sprintf("HOSTS[dir: %s, env: %q]", h.dir, h.env)
}
