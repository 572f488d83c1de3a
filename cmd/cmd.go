package cmd

import (
	"fmt"
	"os"

	"github.com/dszqbsm/jarchive/cmd/parse"
	"github.com/dszqbsm/jarchive/version"
	"github.com/spf13/cobra"
)

// cmd.go借助cobra库定义了命令行界面：parse子命令解析存档页面并写入数据库或标准输出，version子命令打印版本信息

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print version.",
	Long:  "print version.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		version.Printer(cmd.OutOrStdout())
	},
}

func Execute() {
	var rootCmd = &cobra.Command{
		Use:          "jarchive",
		Short:        "Parse games from the J! Archive website.",
		SilenceUsage: true,
	}
	rootCmd.AddCommand(parse.ParseCmd, versionCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
