package main

import (
	"fmt"
	"net/url"
	"os"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/palemoky/blackjack/internal/protocol/codec"
	"github.com/palemoky/blackjack/internal/transport"
	"github.com/palemoky/blackjack/internal/ui"
)

var CLI struct {
	Server  string `short:"s" default:"localhost:8000" help:"服务器地址"`
	Room    string `short:"r" default:"lobby" help:"房间名"`
	Binary  bool   `short:"b" help:"使用二进制帧（protobuf wire 格式）"`
	LogFile string `help:"日志文件路径，默认丢弃日志"`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("blackjack"),
		kong.Description("21 点终端客户端"),
	)

	// 终端被 TUI 占用，日志只能写文件
	if CLI.LogFile != "" {
		f, err := os.OpenFile(CLI.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "打开日志文件失败: %v\n", err)
			kctx.Exit(1)
		}
		defer func() { _ = f.Close() }()
		log.SetOutput(f)
	} else {
		log.SetLevel(log.FatalLevel)
	}

	format := codec.FormatJSON
	if CLI.Binary {
		format = codec.FormatBinary
	}

	serverURL := url.URL{Scheme: "ws", Host: CLI.Server, Path: "/ws/" + CLI.Room}
	client := transport.NewClient(serverURL.String(), format)

	p := tea.NewProgram(ui.NewOnlineModel(client), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "启动客户端时出错: %v\n", err)
		kctx.Exit(1)
	}
}
