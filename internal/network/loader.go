// internal/network/loader.go
//
// Peer-topology file loader.
//
// Context
// -------
// The topology file is line oriented:
//
//	net-main
//	206.189.11.155 9999 256
//	206.189.11.153 9999 256
//
// The first non-blank line is the network name, taken verbatim.  Every
// later line is split on whitespace; the first two fields must be an IPv4
// dotted quad and a decimal port.  A third field (weight) is allowed and
// ignored.  Lines that do not match are skipped without error so operators
// can keep comments and extra columns in the file.
//
// Instrumentation
// ---------------
//   - INFO  "network"  once, with the network name.
//   - INFO  "peer"     once per accepted endpoint.
//   - DEBUG "peer line skipped" for rejected lines.
package network

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/netip"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// ErrIO marks a topology file that could not be opened or read.
var ErrIO = errors.New("network file io")

// maxFields is the number of whitespace fields considered on a peer line.
const maxFields = 3

// maxLineSize bounds a single line; the default scanner limit is 64 KiB.
const maxLineSize = 1 << 20

/*──────────────────────────────── loader ──────────────────────────────────*/

// Load opens path and parses it with Parse.  A nil log falls back to the
// global sugared logger.
func Load(path string, log *zap.SugaredLogger) (Topology, error) {
	if log == nil {
		log = zap.S()
	}
	log.Infow("load network file", "file", path)

	f, err := os.Open(path)
	if err != nil {
		return Topology{}, fmt.Errorf("%w: open %s: %w", ErrIO, path, err)
	}
	defer f.Close()

	topo, err := Parse(f, log)
	if err != nil {
		return Topology{}, fmt.Errorf("%s: %w", path, err)
	}
	return topo, nil
}

// Parse reads a topology from r.  The only error it returns is a read
// failure; malformed peer lines never fail the parse.
func Parse(r io.Reader, log *zap.SugaredLogger) (Topology, error) {
	if log == nil {
		log = zap.S()
	}

	var topo Topology
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLineSize)

	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		if topo.Name == "" {
			topo.Name = line
			log.Infow("network", "name", topo.Name)
			continue
		}

		ep, ok := parsePeer(line)
		if !ok {
			log.Debugw("peer line skipped", "line", line)
			continue
		}
		log.Infow("peer", "addr", ep.Addr.String(), "port", ep.Port)
		topo.Peers = append(topo.Peers, ep)
	}
	if err := sc.Err(); err != nil {
		return Topology{}, fmt.Errorf("%w: read: %w", ErrIO, err)
	}
	return topo, nil
}

/*──────────────────────────── helpers ─────────────────────────────────────*/

// parsePeer accepts "<ipv4> <port> [<weight>]".
func parsePeer(line string) (Endpoint, bool) {
	fields := strings.Fields(line)
	if len(fields) > maxFields {
		fields = fields[:maxFields]
	}
	if len(fields) < 2 {
		return Endpoint{}, false
	}

	addr, err := netip.ParseAddr(fields[0])
	if err != nil || !addr.Is4() {
		return Endpoint{}, false
	}

	port, err := strconv.ParseUint(fields[1], 10, 16)
	if err != nil {
		return Endpoint{}, false
	}

	return NewEndpoint(addr, uint16(port)), true
}
