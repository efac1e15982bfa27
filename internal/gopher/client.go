package gopher

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/proxy"
)

// ErrUnsupportedType marks item types the client cannot open
// (CSO entities, mirrors, tn3270).
var ErrUnsupportedType = errors.New("unsupported item type")

// Transport reports how a response was carried.
type Transport int

const (
	TransportPlain Transport = iota
	TransportTLS
	TransportTor
)

// Response is a fetched Gopher resource plus its connection-security
// classification.
type Response struct {
	Body      string
	Transport Transport
}

// TLS reports whether the response arrived over an encrypted
// connection.
func (r Response) TLS() bool { return r.Transport == TransportTLS }

// Tor reports whether the response was tunneled through the
// anonymizing proxy.
func (r Response) Tor() bool { return r.Transport == TransportTor }

// Options configures how the client connects.
type Options struct {
	// TLS upgrades connections opportunistically: the TLS handshake
	// is attempted first and the request falls back to a plain
	// connection if the host does not speak TLS.
	TLS bool
	// Tor routes every connection through the SOCKS5 proxy at
	// ProxyAddr.
	Tor       bool
	ProxyAddr string
	Timeout   time.Duration
}

// Client fetches Gopher resources. The zero value is usable with
// plain connections and a default timeout.
type Client struct {
	opts Options
}

const defaultTimeout = 10 * time.Second

// NewClient returns a client with the given connection options.
func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.ProxyAddr == "" {
		opts.ProxyAddr = "127.0.0.1:9050"
	}
	return &Client{opts: opts}
}

// Fetch requests the URL's selector and reads the response until the
// peer closes the connection. There is no retry: any connect, DNS,
// TLS, or read failure is returned as a single error.
func (c *Client) Fetch(ctx context.Context, u URL) (Response, error) {
	conn, transport, err := c.dial(ctx, u)
	if err != nil {
		return Response{}, err
	}
	defer conn.Close()

	body, err := c.request(ctx, conn, u)
	if err != nil {
		return Response{}, err
	}
	return Response{Body: string(body), Transport: transport}, nil
}

// Download streams the URL's response into a file under dir, named
// after the selector's last path segment. An existing file is never
// clobbered; a numeric suffix is appended instead. It returns the
// path written and the byte count.
func (c *Client) Download(ctx context.Context, u URL, dir string) (string, int64, error) {
	conn, _, err := c.dial(ctx, u)
	if err != nil {
		return "", 0, err
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	} else {
		_ = conn.SetDeadline(time.Now().Add(c.timeout()))
	}
	if _, err := io.WriteString(conn, u.Selector+"\r\n"); err != nil {
		return "", 0, fmt.Errorf("send selector to %s: %w", u.Addr(), err)
	}

	path, err := downloadPath(dir, u.Selector)
	if err != nil {
		return "", 0, err
	}
	f, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("create download file: %w", err)
	}
	n, err := io.Copy(f, conn)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return "", 0, fmt.Errorf("download %s: %w", u.String(), err)
	}
	return path, n, nil
}

func (c *Client) timeout() time.Duration {
	if c.opts.Timeout > 0 {
		return c.opts.Timeout
	}
	return defaultTimeout
}

// dial opens the transport connection, classifying it as plain, TLS,
// or Tor. With the TLS option set the handshake is attempted first
// and a failed handshake degrades to a plain connection.
func (c *Client) dial(ctx context.Context, u URL) (net.Conn, Transport, error) {
	if c.opts.Tor {
		conn, err := c.dialTor(ctx, u)
		if err != nil {
			return nil, 0, err
		}
		return conn, TransportTor, nil
	}

	if c.opts.TLS {
		if conn, err := c.dialTLS(ctx, u); err == nil {
			return conn, TransportTLS, nil
		}
		// Fall through: host does not speak TLS.
	}

	dialer := net.Dialer{Timeout: c.timeout()}
	conn, err := dialer.DialContext(ctx, "tcp", u.Addr())
	if err != nil {
		return nil, 0, fmt.Errorf("connect to %s: %w", u.Addr(), err)
	}
	return conn, TransportPlain, nil
}

func (c *Client) dialTLS(ctx context.Context, u URL) (net.Conn, error) {
	dialer := tls.Dialer{
		NetDialer: &net.Dialer{Timeout: c.timeout()},
		Config:    &tls.Config{ServerName: u.Host},
	}
	conn, err := dialer.DialContext(ctx, "tcp", u.Addr())
	if err != nil {
		return nil, fmt.Errorf("tls connect to %s: %w", u.Addr(), err)
	}
	return conn, nil
}

func (c *Client) dialTor(ctx context.Context, u URL) (net.Conn, error) {
	socks, err := proxy.SOCKS5("tcp", c.opts.ProxyAddr, nil, &net.Dialer{Timeout: c.timeout()})
	if err != nil {
		return nil, fmt.Errorf("socks proxy %s: %w", c.opts.ProxyAddr, err)
	}
	cd, ok := socks.(proxy.ContextDialer)
	if !ok {
		conn, err := socks.Dial("tcp", u.Addr())
		if err != nil {
			return nil, fmt.Errorf("connect to %s via proxy: %w", u.Addr(), err)
		}
		return conn, nil
	}
	conn, err := cd.DialContext(ctx, "tcp", u.Addr())
	if err != nil {
		return nil, fmt.Errorf("connect to %s via proxy: %w", u.Addr(), err)
	}
	return conn, nil
}

func (c *Client) request(ctx context.Context, conn net.Conn, u URL) ([]byte, error) {
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	} else {
		_ = conn.SetDeadline(time.Now().Add(c.timeout()))
	}

	if _, err := io.WriteString(conn, u.Selector+"\r\n"); err != nil {
		return nil, fmt.Errorf("send selector to %s: %w", u.Addr(), err)
	}
	body, err := io.ReadAll(conn)
	if err != nil {
		return nil, fmt.Errorf("read response from %s: %w", u.Addr(), err)
	}
	return body, nil
}

// downloadPath picks a non-clobbering file path for a selector.
func downloadPath(dir, selector string) (string, error) {
	name := selector
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	// Search selectors carry an embedded query.
	if i := strings.IndexByte(name, '\t'); i >= 0 {
		name = name[:i]
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = "gopher.bin"
	}

	path := filepath.Join(dir, name)
	for i := 1; ; i++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		} else if err != nil && !os.IsExist(err) {
			return "", fmt.Errorf("stat download path: %w", err)
		}
		ext := filepath.Ext(name)
		base := strings.TrimSuffix(name, ext)
		path = filepath.Join(dir, base+"."+strconv.Itoa(i)+ext)
	}
}
