package mpv

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"
)

const (
	// DefaultSocketPath is the default Unix socket path for mpv IPC.
	DefaultSocketPath = "/tmp/vidnotes-mpv.sock"
	// commandTimeout bounds how long a command waits for its reply.
	commandTimeout = 5 * time.Second
	// dialInterval is the pause between connection attempts while mpv starts.
	dialInterval = 100 * time.Millisecond
)

var (
	// ErrNotConnected is returned when attempting operations on a disconnected client.
	ErrNotConnected = errors.New("mpv: not connected")
	// ErrSocketNotFound is returned when the socket cannot be dialed.
	ErrSocketNotFound = errors.New("mpv: socket not found - is mpv running with --input-ipc-server?")
	// ErrTimeout is returned when mpv does not answer a command in time.
	ErrTimeout = errors.New("mpv: command timed out")
	// requestID is a global counter for generating unique request IDs.
	requestID uint64
)

// ipcRequest represents a JSON IPC request to mpv.
type ipcRequest struct {
	Command   []interface{} `json:"command"`
	RequestID uint64        `json:"request_id"`
}

// ipcMessage is any line mpv writes: a command reply or an event.
type ipcMessage struct {
	Data      interface{} `json:"data"`
	RequestID uint64      `json:"request_id"`
	Error     string      `json:"error"`

	Event     string `json:"event"`
	Reason    string `json:"reason"`
	FileError string `json:"file_error"`
	Name      string `json:"name"`
}

// Event is an asynchronous notification from mpv.
type Event struct {
	// Name is the mpv event name (e.g. "file-loaded", "end-file", "property-change").
	Name string
	// Reason is set on end-file ("eof", "stop", "quit", "error", "redirect").
	Reason string
	// FileError is set on end-file when Reason is "error".
	FileError string
	// Property is the property name of a property-change event.
	Property string
	// Data is the property value of a property-change event.
	Data interface{}
}

type reply struct {
	data interface{}
	err  error
}

// Client is an mpv IPC client that communicates via Unix socket.
// Replies are matched to requests by request_id; every other line is handed to the
// event handler from the client's read goroutine.
type Client struct {
	socketPath string
	onEvent    func(Event)

	mu      sync.Mutex
	writeMu sync.Mutex
	conn    net.Conn
	pending map[uint64]chan reply
	done    chan struct{}
}

// NewClient creates a new mpv IPC client.
// If socketPath is empty, DefaultSocketPath is used.
func NewClient(socketPath string) *Client {
	if socketPath == "" {
		socketPath = DefaultSocketPath
	}
	return &Client{
		socketPath: socketPath,
		pending:    make(map[uint64]chan reply),
	}
}

// OnEvent sets the handler for mpv events. It must be called before Connect.
func (c *Client) OnEvent(handler func(Event)) {
	c.onEvent = handler
}

// Connect establishes a connection to the mpv IPC socket.
// Returns an error if the socket doesn't exist or connection fails.
func (c *Client) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		return nil // Already connected
	}

	conn, err := net.Dial("unix", c.socketPath)
	if err != nil {
		return ErrSocketNotFound
	}

	c.conn = conn
	c.done = make(chan struct{})
	go c.readLoop(conn, c.done)
	return nil
}

// Dial retries Connect until it succeeds or timeout elapses. mpv creates its socket
// a little after the process starts.
func (c *Client) Dial(timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		err := c.Connect()
		if err == nil {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("dial %s: %w", c.socketPath, err)
		}
		time.Sleep(dialInterval)
	}
}

// Close closes the connection to mpv.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil
	}

	err := c.conn.Close()
	c.conn = nil
	return err
}

// IsConnected returns true if the client is connected to mpv.
func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

// SocketPath returns the socket path this client is configured to use.
func (c *Client) SocketPath() string {
	return c.socketPath
}

// GetProperty retrieves the value of an mpv property.
// The property name should be the mpv property name (e.g., "time-pos", "duration", "pause").
func (c *Client) GetProperty(name string) (interface{}, error) {
	return c.sendCommand("get_property", name)
}

// SetProperty sets the value of an mpv property.
// The property name should be the mpv property name (e.g., "pause", "speed").
func (c *Client) SetProperty(name string, value interface{}) error {
	_, err := c.sendCommand("set_property", name, value)
	return err
}

// ObserveProperty asks mpv to emit property-change events for name.
func (c *Client) ObserveProperty(id int, name string) error {
	_, err := c.sendCommand("observe_property", id, name)
	return err
}

// LoadFile replaces the current file with target (a path or URL).
func (c *Client) LoadFile(target string) error {
	_, err := c.sendCommand("loadfile", target, "replace")
	return err
}

// Seek seeks to an absolute position in seconds. With exact false mpv may stop at
// the nearest keyframe.
func (c *Client) Seek(seconds float64, exact bool) error {
	flags := "absolute+keyframes"
	if exact {
		flags = "absolute+exact"
	}
	_, err := c.sendCommand("seek", seconds, flags)
	return err
}

// Quit asks mpv to exit.
func (c *Client) Quit() error {
	_, err := c.sendCommand("quit")
	return err
}

// GetTimePos returns the current playback position in seconds.
func (c *Client) GetTimePos() (float64, error) {
	result, err := c.GetProperty("time-pos")
	if err != nil {
		return 0, err
	}
	return toFloat64(result)
}

// GetDuration returns the total duration of the video in seconds.
func (c *Client) GetDuration() (float64, error) {
	result, err := c.GetProperty("duration")
	if err != nil {
		return 0, err
	}
	return toFloat64(result)
}

// GetMediaTitle returns the title of the loaded media.
func (c *Client) GetMediaTitle() (string, error) {
	result, err := c.GetProperty("media-title")
	if err != nil {
		return "", err
	}
	title, ok := result.(string)
	if !ok {
		return "", fmt.Errorf("mpv: unexpected media-title value type: %T", result)
	}
	return title, nil
}

// GetPaused returns true if playback is paused.
func (c *Client) GetPaused() (bool, error) {
	result, err := c.GetProperty("pause")
	if err != nil {
		return false, err
	}
	paused, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("mpv: unexpected pause value type: %T", result)
	}
	return paused, nil
}

// toFloat64 converts an interface{} to float64.
// JSON numbers from mpv are typically decoded as float64.
func toFloat64(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("mpv: unexpected numeric value type: %T", v)
	}
}

// sendCommand sends a JSON IPC command to mpv and waits for the matching reply.
// The command is formatted as {"command": [command, args...], "request_id": <id>}
// and sent as newline-terminated JSON over the socket.
func (c *Client) sendCommand(command string, args ...interface{}) (interface{}, error) {
	cmdArray := make([]interface{}, 0, len(args)+1)
	cmdArray = append(cmdArray, command)
	cmdArray = append(cmdArray, args...)

	reqID := atomic.AddUint64(&requestID, 1)

	data, err := json.Marshal(ipcRequest{Command: cmdArray, RequestID: reqID})
	if err != nil {
		return nil, fmt.Errorf("mpv: failed to marshal command: %w", err)
	}
	data = append(data, '\n')

	ch := make(chan reply, 1)
	c.mu.Lock()
	conn, done := c.conn, c.done
	if conn == nil {
		c.mu.Unlock()
		return nil, ErrNotConnected
	}
	c.pending[reqID] = ch
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.pending, reqID)
		c.mu.Unlock()
	}()

	c.writeMu.Lock()
	_, err = conn.Write(data)
	c.writeMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("mpv: failed to send command: %w", err)
	}

	select {
	case r := <-ch:
		return r.data, r.err
	case <-done:
		return nil, ErrNotConnected
	case <-time.After(commandTimeout):
		return nil, fmt.Errorf("%w: %s", ErrTimeout, command)
	}
}

// readLoop dispatches replies and events until the connection closes.
func (c *Client) readLoop(conn net.Conn, done chan struct{}) {
	defer close(done)
	reader := bufio.NewReader(conn)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			c.mu.Lock()
			if c.conn == conn {
				c.conn = nil
			}
			c.mu.Unlock()
			return
		}

		var msg ipcMessage
		if err := json.Unmarshal(line, &msg); err != nil {
			// Skip malformed lines
			continue
		}

		if msg.Event != "" {
			if c.onEvent != nil {
				c.onEvent(Event{
					Name:      msg.Event,
					Reason:    msg.Reason,
					FileError: msg.FileError,
					Property:  msg.Name,
					Data:      msg.Data,
				})
			}
			continue
		}

		c.mu.Lock()
		ch, ok := c.pending[msg.RequestID]
		c.mu.Unlock()
		if !ok {
			continue
		}
		if msg.Error != "" && msg.Error != "success" {
			ch <- reply{err: fmt.Errorf("mpv: %s", msg.Error)}
		} else {
			ch <- reply{data: msg.Data}
		}
	}
}
