// Package netconn is the convenience transport layer that sits outside the
// core command pipeline: dialing a real PostgreSQL server, running the
// startup handshake and trust/cleartext/MD5 authentication, and exposing
// the resulting byte stream as a scheduler.Transport.
//
// The core pipeline itself never negotiates transport, SSL, or
// authentication; this package exists so the module is still usable
// end-to-end without forcing every caller to hand-roll the handshake. It
// inverts the accept-a-client shape of a server-side handshake/auth/SSL
// implementation into dial-a-server.
package netconn

import (
	"context"
	"crypto/md5"
	"crypto/tls"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net"

	"github.com/pgpipe/pgpipe/internal/wireframe"
	"github.com/pgpipe/pgpipe/protocol"
)

// Params configures a Dial.
type Params struct {
	Network  string // "tcp" or "unix"
	Address  string
	Database string
	User     string
	Password string
	TLS      *tls.Config // nil disables SSL negotiation entirely
	Logger   *slog.Logger
}

// Conn is a dialed, authenticated, ready-for-query connection. It
// implements scheduler.Transport.
type Conn struct {
	netConn net.Conn
	reader  *wireframe.Reader
	logger  *slog.Logger
}

// Dial opens network/address, negotiates SSL if p.TLS is set, sends the
// startup message, completes authentication, and consumes backend
// parameter-status/backend-key-data chatter up through the first
// ReadyForQuery.
func Dial(ctx context.Context, p Params) (*Conn, error) {
	var d net.Dialer
	raw, err := d.DialContext(ctx, p.Network, p.Address)
	if err != nil {
		return nil, fmt.Errorf("netconn: dial: %w", err)
	}

	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	netConn := raw
	if p.TLS != nil {
		netConn, err = negotiateTLS(raw, p.TLS)
		if err != nil {
			raw.Close()
			return nil, err
		}
	}

	c := &Conn{netConn: netConn, reader: wireframe.NewReader(logger, netConn, 0), logger: logger}

	if err := c.sendStartup(p.Database, p.User); err != nil {
		netConn.Close()
		return nil, err
	}
	if err := c.authenticate(p.User, p.Password); err != nil {
		netConn.Close()
		return nil, err
	}
	if err := c.awaitStartupComplete(); err != nil {
		netConn.Close()
		return nil, err
	}
	return c, nil
}

// negotiateTLS sends an SSLRequest and, if the server accepts it ('S'),
// upgrades raw to a TLS connection.
func negotiateTLS(raw net.Conn, cfg *tls.Config) (net.Conn, error) {
	frame, err := wireframe.NewUntaggedFrame().Int32(int32(protocol.VersionSSLRequest)).FinishUntagged()
	if err != nil {
		return nil, err
	}
	if _, err := raw.Write(frame); err != nil {
		return nil, err
	}
	reply := make([]byte, 1)
	if _, err := raw.Read(reply); err != nil {
		return nil, err
	}
	if reply[0] != 'S' {
		return nil, errors.New("netconn: server declined SSL negotiation")
	}
	return tls.Client(raw, cfg), nil
}

func (c *Conn) sendStartup(database, user string) error {
	b := wireframe.NewUntaggedFrame().
		Int32(int32(protocol.Version30)).
		CString("user").CString(user)
	if database != "" {
		b = b.CString("database").CString(database)
	}
	b = b.CString("") // trailing empty-key terminator
	frame, err := b.FinishUntagged()
	if err != nil {
		return err
	}
	_, err = c.netConn.Write(frame)
	return err
}

func (c *Conn) authenticate(user, password string) error {
	tag, fr, err := c.reader.ReadFrame()
	if err != nil {
		return err
	}
	if tag != protocol.BackendTag(protocol.Authentication) {
		return fmt.Errorf("netconn: expected Authentication frame, got %v", tag)
	}
	kind, err := fr.Int32()
	if err != nil {
		return err
	}
	switch kind {
	case 0: // AuthenticationOk
		return nil
	case 3: // AuthenticationCleartextPassword
		return c.sendPassword(password)
	case 5: // AuthenticationMD5Password
		salt, err := fr.Bytes(4)
		if err != nil {
			return err
		}
		return c.sendPassword(hashMD5(user, password, salt))
	default:
		return fmt.Errorf("netconn: unsupported authentication method %d", kind)
	}
}

func (c *Conn) sendPassword(password string) error {
	frame, err := wireframe.NewFrame(protocol.Password).CString(password).FinishTagged()
	if err != nil {
		return err
	}
	if _, err := c.netConn.Write(frame); err != nil {
		return err
	}
	tag, _, err := c.reader.ReadFrame()
	if err != nil {
		return err
	}
	if tag != protocol.BackendTag(protocol.Authentication) {
		return fmt.Errorf("netconn: expected Authentication frame after password, got %v", tag)
	}
	return nil
}

func hashMD5(user, password string, salt []byte) string {
	inner := md5.Sum([]byte(password + user))
	innerHex := hex.EncodeToString(inner[:])
	outer := md5.Sum(append([]byte(innerHex), salt...))
	return "md5" + hex.EncodeToString(outer[:])
}

// awaitStartupComplete consumes BackendKeyData/ParameterStatus chatter up to
// the first ReadyForQuery.
func (c *Conn) awaitStartupComplete() error {
	for {
		tag, _, err := c.reader.ReadFrame()
		if err != nil {
			return err
		}
		if tag == protocol.BackendTag(protocol.ReadyForQuery) {
			return nil
		}
	}
}

// Send writes frame verbatim to the socket.
func (c *Conn) Send(frame []byte) error {
	_, err := c.netConn.Write(frame)
	return err
}

// Recv reads the next backend frame.
func (c *Conn) Recv() (protocol.BackendTag, *wireframe.FieldReader, error) {
	return c.reader.ReadFrame()
}

// Close closes the underlying socket.
func (c *Conn) Close() error { return c.netConn.Close() }
