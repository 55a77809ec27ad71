package hosts

import (
	"bufio"
	"io"
	"net/netip"
	"strings"
)

// Record is one line of an override file.
type Record struct {
	Addr      netip.Addr
	Hostnames []string
}

// ParseRecord parses "<address> <hostname> [<token>...]". Comments, blank
// lines and lines whose address does not parse are rejected.
func ParseRecord(line string) (Record, bool) {
	if line == "" || line[0] == '#' {
		return Record{}, false
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Record{}, false
	}

	addr, err := netip.ParseAddr(fields[0])
	if err != nil || addr.Zone() != "" {
		return Record{}, false
	}

	return Record{
		Addr:      addr,
		Hostnames: fields[1:],
	}, true
}

// Scan returns the address of the first record whose first hostname equals
// hostname, and its 1-based line number. Further hostnames on a line are not
// compared. Lines may be of any length.
func Scan(r io.Reader, hostname string) (netip.Addr, int, bool) {
	br := bufio.NewReader(r)
	line := 0
	for {
		text, err := br.ReadString('\n')
		if text != "" {
			line++
			rec, ok := ParseRecord(strings.TrimRight(text, "\r\n"))
			if ok && len(rec.Hostnames) > 0 && rec.Hostnames[0] == hostname {
				return rec.Addr, line, true
			}
		}
		if err != nil {
			return netip.Addr{}, 0, false
		}
	}
}
