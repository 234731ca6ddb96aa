package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/sysu-ecnc-dev/duty-roster/backend/internal/config"
	"github.com/sysu-ecnc-dev/duty-roster/backend/internal/handler"
	"github.com/sysu-ecnc-dev/duty-roster/backend/internal/seed"
)

func main() {
	var op int
	var opts seed.Options

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 生成随机空闲表和属性表, 2: 为初始管理员签发 token)")
	flag.StringVar(&opts.Dir, "dir", ".", "样例数据的输出目录")
	flag.IntVar(&opts.Days, "days", 7, "排班的天数")
	flag.IntVar(&opts.People, "people", 20, "人员数量")
	flag.Float64Var(&opts.AvailableRate, "rate", 0.5, "每个人每天有空的概率")
	flag.StringVar(&opts.EmailDomainName, "email-domain", "", "生成邮箱时使用的域名，为空则不生成邮箱")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 执行操作
	switch op {
	case 0:
		slog.Error("未指定操作")
	case 1:
		marks, err := config.LoadRosterConfig()
		if err != nil {
			logger.Error("无法读取配置文件", slog.String("error", err.Error()))
			os.Exit(1)
		}

		if opts.AvailableRate <= 0 || opts.AvailableRate > 1 {
			slog.Error("请输入合法的概率", slog.Float64("rate", opts.AvailableRate))
			os.Exit(1)
		}

		if err := seed.WriteSampleData(*marks, opts); err != nil {
			slog.Error("无法生成样例数据", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case 2:
		cfg, err := config.LoadConfig()
		if err != nil {
			logger.Error("无法读取配置文件", slog.String("error", err.Error()))
			os.Exit(1)
		}

		token, expiresAt, err := handler.NewAuthToken(cfg, cfg.InitialAdmin.Username)
		if err != nil {
			slog.Error("无法签发 token", slog.String("error", err.Error()))
			os.Exit(1)
		}

		slog.Info("已签发 token", slog.String("username", cfg.InitialAdmin.Username), slog.Time("expires_at", expiresAt))
		fmt.Println(token)
	default:
		slog.Error("指定的操作非法")
	}
}
