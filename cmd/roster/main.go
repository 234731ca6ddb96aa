package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/sysu-ecnc-dev/duty-roster/backend/internal/config"
)

func main() {
	var paths filePaths

	flag.StringVar(&paths.availability, "availability", "", "空闲表 CSV 文件路径")
	flag.StringVar(&paths.attributes, "attributes", "", "属性表 CSV 文件路径")
	flag.StringVar(&paths.out, "out", "", "排班结果 CSV 文件路径")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	marks, err := config.LoadRosterConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 命令行没有给出的路径从标准输入中询问
	if err := paths.prompt(bufio.NewReader(os.Stdin), os.Stdout); err != nil {
		logger.Error("无法读取文件路径", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := run(*marks, paths, os.Stdout); err != nil {
		logger.Error("排班失败", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

type filePaths struct {
	availability string
	attributes   string
	out          string
}

func (p *filePaths) prompt(in *bufio.Reader, out io.Writer) error {
	questions := []struct {
		label string
		value *string
	}{
		{"空闲表文件路径", &p.availability},
		{"属性表文件路径", &p.attributes},
		{"排班结果保存路径", &p.out},
	}

	for _, q := range questions {
		for *q.value == "" {
			fmt.Fprintf(out, "请输入%s: ", q.label)
			line, err := in.ReadString('\n')
			*q.value = strings.TrimSpace(line)
			if err != nil {
				if err == io.EOF && *q.value != "" {
					break
				}
				return fmt.Errorf("%s: %w", q.label, err)
			}
		}
	}

	return nil
}
