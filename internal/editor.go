package internal

import (
	"bytes"
	"fmt"
	"net"
	"path/filepath"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Notifier is the board's view of the companion editor. Implementations are
// best effort: a returned error means the notification was dropped, never
// that navigation should stop.
type Notifier interface {
	OpenTask(id string) error
}

// EditorClient sends fire-and-forget msgpack-rpc requests to a Neovim
// instance listening on a unix socket (nvim --listen). No response value is
// used; the reply is read only so the command lands before the connection
// closes.
type EditorClient struct {
	SocketPath string
	DetailDir  string
	Timeout    time.Duration
}

func NewEditorClient(socketPath, detailDir string) *EditorClient {
	return &EditorClient{
		SocketPath: socketPath,
		DetailDir:  detailDir,
		Timeout:    500 * time.Millisecond,
	}
}

// OpenTask tells the editor to open the task's detail file.
func (c *EditorClient) OpenTask(id string) error {
	return c.Notify("e " + filepath.Join(c.DetailDir, id+".md"))
}

// Notify sends one nvim_command request. Connection or write failures are
// returned for logging; the editor being absent is an expected condition.
func (c *EditorClient) Notify(command string) error {
	payload, err := encodeRequest("nvim_command", []any{command})
	if err != nil {
		return err
	}

	conn, err := net.DialTimeout("unix", c.SocketPath, c.Timeout)
	if err != nil {
		return fmt.Errorf("connect editor socket: %w", err)
	}
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(c.Timeout)); err != nil {
		return err
	}
	if _, err := conn.Write(payload); err != nil {
		return fmt.Errorf("send editor command: %w", err)
	}

	// Drain the response within the deadline. A timeout here is fine, the
	// request has already been flushed.
	buf := make([]byte, 512)
	_, _ = conn.Read(buf)
	return nil
}

// encodeRequest builds a msgpack-rpc request frame:
// [type=0, msgid, method, params].
func encodeRequest(method string, params []any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	if err := enc.Encode([]any{0, 1, method, params}); err != nil {
		return nil, fmt.Errorf("encode rpc request: %w", err)
	}
	return buf.Bytes(), nil
}
