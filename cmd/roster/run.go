package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/sysu-ecnc-dev/duty-roster/backend/internal/config"
	"github.com/sysu-ecnc-dev/duty-roster/backend/internal/domain"
	"github.com/sysu-ecnc-dev/duty-roster/backend/internal/report"
	"github.com/sysu-ecnc-dev/duty-roster/backend/internal/roster"
	"github.com/sysu-ecnc-dev/duty-roster/backend/internal/sheet"
)

func run(marks config.RosterConfig, paths filePaths, out io.Writer) error {
	availability, err := readAvailability(paths.availability, marks.AvailableMark)
	if err != nil {
		return err
	}

	people, err := readAttributes(paths.attributes, marks.CommitteeMark)
	if err != nil {
		return err
	}

	for _, p := range people {
		if p.Gender != domain.GenderMale && p.Gender != domain.GenderFemale && p.Gender != domain.GenderOther {
			slog.Warn("属性表中的性别无法识别，将不计入男女人数", slog.String("person", p.ID), slog.String("gender", string(p.Gender)))
		}
	}

	input := &domain.RosterInput{
		Days:         availability.Days,
		Availability: availability.ByDay,
		People:       people,
	}
	builder, err := roster.New(input)
	if err != nil {
		return err
	}

	result, err := builder.Build()
	if err != nil {
		return err
	}

	f, err := os.Create(paths.out)
	if err != nil {
		return fmt.Errorf("无法创建排班结果文件: %w", err)
	}
	if err := sheet.WriteSchedule(f, result.Days); err != nil {
		_ = f.Close()
		return fmt.Errorf("无法写入排班结果: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	slog.Info("排班结果已保存", slog.String("path", paths.out), slog.Int("days", len(result.Days)))

	printSummary(out, report.Summarize(result.Days, result.Counts, domain.NewAttributes(people)))
	return nil
}

func readAvailability(path string, mark string) (*sheet.Availability, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("无法打开空闲表: %w", err)
	}
	defer f.Close()

	return sheet.ReadAvailability(f, mark)
}

func readAttributes(path string, mark string) ([]domain.Person, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("无法打开属性表: %w", err)
	}
	defer f.Close()

	return sheet.ReadAttributes(f, mark)
}

func printSummary(out io.Writer, summary *domain.Summary) {
	fmt.Fprintln(out, "每个人的值班次数:")
	for _, id := range report.SortedCounts(summary.MemberCounts) {
		fmt.Fprintf(out, "  %s: %d\n", id, summary.MemberCounts[id])
	}

	fmt.Fprintf(out, "推进委员人数: %d\n", summary.CommitteeMembers)
	fmt.Fprintf(out, "男生人数: %d\n", summary.MaleMembers)
	fmt.Fprintf(out, "女生人数: %d\n", summary.FemaleMembers)
	fmt.Fprintf(out, "平均值班次数: %.2f，标准差: %.2f\n", summary.MeanAssignments, summary.AssignmentStdDev)
	if len(summary.FallbackDays) > 0 {
		fmt.Fprintf(out, "以下日期没有可用的推进委员: %s\n", strings.Join(summary.FallbackDays, ", "))
	}
}
