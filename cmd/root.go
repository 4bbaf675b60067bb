package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/maedana/torudo/internal"
)

func Execute() {
	var (
		dir     string
		socket  string
		project string
		debug   bool
	)
	flag.StringVar(&dir, "d", "", "Path to the todo directory")
	flag.StringVar(&socket, "nvim", "", "Neovim socket path")
	flag.StringVar(&project, "p", "", "Filter tasks by project (for ls command)")
	flag.BoolVar(&debug, "debug", false, "Write debug logs to <dir>/debug.log")

	flag.Usage = showHelp
	flag.Parse()

	config, err := internal.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if dir == "" {
		dir = config.TodoDir()
	}
	if socket == "" {
		socket = config.EditorSocket()
	}

	logger := newLogger(dir, debug)

	args := flag.Args()
	command := ""
	if len(args) > 0 {
		command = args[0]
		args = args[1:]
	}

	switch command {
	case "":
		err = BoardCommand(dir, socket, config.Board.MaxCardHeight, logger)
	case "add", "a":
		err = AddCommand(dir, args)
	case "ls", "list", "l":
		err = ListCommand(os.Stdout, dir, project)
	case "httpd":
		addr := ""
		if len(args) > 0 {
			addr = args[0]
		}
		err = HttpdCommand(dir, addr)
	case "init-config":
		err = InitConfigCommand()
	case "help", "-h", "--help":
		showHelp()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		showHelp()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger writes to <dir>/debug.log in debug mode; the TUI owns stdout,
// so everything else is discarded.
func newLogger(dir string, debug bool) *log.Logger {
	if !debug {
		return log.New(io.Discard)
	}
	file, err := os.OpenFile(filepath.Join(dir, "debug.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(io.Discard)
	}
	logger := log.New(file)
	logger.SetLevel(log.DebugLevel)
	logger.SetReportTimestamp(true)
	return logger
}

func showHelp() {
	fmt.Println(`torudo - todo.txt board with Neovim integration

Usage:
  torudo [options] [command] [arguments]

Options:
  -d <dir>       Todo directory (default: $TODOTXT_DIR or ~/todotxt)
  -nvim <path>   Neovim socket (default: $NVIM_LISTEN_ADDRESS or config)
  -p <project>   Filter tasks by project (for ls command)
  -debug         Write debug logs to <dir>/debug.log

Commands:
  (none)         Open the project board
  add <title>    Add a task (+project and @context tags recognized,
                 -c sets the creation date, e.g. -c "last monday")
  ls, list       List tasks per project (use -p to filter)
  httpd [addr]   Start the read-only HTTP view (default: 127.0.0.1:7676)
  init-config    Create the default configuration file
  help           Show this help message

Board Keys:
  j/k or ↑/↓    Move within a column
  h/l or ←/→    Change column
  g/G           Jump to first/last card
  x             Complete the selected task (moves it to done.txt)
  c             Create a new task
  r             Reload from disk
  q             Quit

The board keeps a Neovim instance (nvim --listen <socket>) pointed at the
selected task's detail file under <dir>/todos/<id>.md.`)
}
